// File-level wrappers around the codec: load resolves filesystem errors
// into the shared error taxonomy, save writes atomically via the
// temp-file-then-rename pattern.
//
// Document writes follow a read-modify-write cycle with no cross-process
// locking: concurrent writers to the same file race and the last write
// wins. That is a known limitation of the tool, not something this layer
// papers over.
package xmlcodec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/casebook/pkg/types"
)

// LoadTestCase reads and parses one test-case document.
// Returns NotFoundError when the file is absent, ParseError when it is
// malformed.
func LoadTestCase(path string) (*types.TestCase, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return ParseTestCase(data, path)
}

// SaveTestCase writes the canonical encoding of the test case to path.
func SaveTestCase(path string, tc *types.TestCase) error {
	data, err := MarshalTestCase(tc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", tc.ID, err)
	}
	return writeDocument(path, data)
}

// LoadProfileConfiguration reads and parses a profile configuration
// document.
func LoadProfileConfiguration(path string) (*types.ProfileConfiguration, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return ParseProfileConfiguration(data, path)
}

// SaveProfileConfiguration writes the current-shape encoding to path.
func SaveProfileConfiguration(path string, cfg *types.ProfileConfiguration) error {
	data, err := MarshalProfileConfiguration(cfg)
	if err != nil {
		return fmt.Errorf("encoding profile configuration: %w", err)
	}
	return writeDocument(path, data)
}

func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &types.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeDocument writes atomically: temp file in the target directory, then
// rename over the destination.
func writeDocument(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".doc-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
