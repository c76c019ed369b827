//go:build mage

// Package main provides build targets for the casebook project using Mage.
//
// Usage:
//
//	mage build    Compile the casebook binary to bin/
//	mage test     Run all tests
//	mage cover    Run tests with coverage report
//	mage lint     Run golangci-lint
//	mage tidy     Tidy module files
//	mage clean    Remove build artifacts
//	mage install  Install casebook to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "casebook"
	binaryDir  = "bin"
	cmdDir     = "./cmd/casebook"
)

// Build compiles the casebook binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs tests with coverage and prints the summary.
func Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func=coverage.out")
}

// Lint runs golangci-lint over the module.
func Lint() error {
	if _, err := sh.Output("golangci-lint", "version"); err != nil {
		fmt.Println("golangci-lint not found; falling back to go vet")
		return sh.RunV(binGo, "vet", "./...")
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Tidy tidies go.mod and go.sum.
func Tidy() error {
	return sh.RunV(binGo, "mod", "tidy")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	os.Remove("coverage.out")
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
