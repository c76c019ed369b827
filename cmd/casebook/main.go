// Package main provides the casebook CLI, the front end over the
// document codec, the derivation engine and the aggregation layer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
