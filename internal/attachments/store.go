// Package attachments stores attachment payload files. Payloads live
// outside the documents, under <instanceRoot>/_attachments/<cleanId>/;
// the document itself only carries metadata. Removing a document's
// attachment entry must be paired with a Remove here, but orphan payloads
// left behind by the reverse order are tolerated.
package attachments

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/casebook/pkg/types"
)

// AttachmentsDirName is the instance-level payload area. The leading
// underscore keeps tree walks out of it.
const AttachmentsDirName = "_attachments"

// Store writes and removes payloads for one instance.
type Store struct {
	InstanceDir string
}

// NewStore returns a store rooted at the given instance directory.
func NewStore(instanceDir string) *Store {
	return &Store{InstanceDir: instanceDir}
}

// Dir returns the payload directory for one test case.
func (s *Store) Dir(testcaseID string) string {
	return filepath.Join(s.InstanceDir, AttachmentsDirName, CleanID(testcaseID))
}

// Add stores a payload and returns its metadata record. The stored
// filename is time-prefixed and disk-safe; the write is atomic so a
// failed copy never leaves a partial payload behind.
func (s *Store) Add(testcaseID, originalName, description string, r io.Reader) (types.Attachment, error) {
	now := time.Now().UTC()
	stored := fmt.Sprintf("%d-%s", now.UnixMilli(), SafeFilename(originalName))
	dir := s.Dir(testcaseID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.Attachment{}, fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*.tmp")
	if err != nil {
		return types.Attachment{}, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return types.Attachment{}, fmt.Errorf("writing payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return types.Attachment{}, fmt.Errorf("closing payload: %w", err)
	}
	path := filepath.Join(dir, stored)
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return types.Attachment{}, fmt.Errorf("storing payload %s: %w", stored, err)
	}

	return types.Attachment{
		StoredFilename:   stored,
		OriginalFilename: originalName,
		Timestamp:        now,
		Description:      description,
		MimeType:         mimeType(originalName),
		Size:             size,
	}, nil
}

// Remove deletes one stored payload. Returns NotFoundError when no such
// payload exists.
func (s *Store) Remove(testcaseID, storedFilename string) error {
	path := filepath.Join(s.Dir(testcaseID), filepath.Base(storedFilename))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return &types.NotFoundError{Path: path}
		}
		return fmt.Errorf("removing payload %s: %w", path, err)
	}
	return nil
}

// Open returns a reader over one stored payload.
func (s *Store) Open(testcaseID, storedFilename string) (io.ReadCloser, error) {
	path := filepath.Join(s.Dir(testcaseID), filepath.Base(storedFilename))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &types.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("opening payload %s: %w", path, err)
	}
	return f, nil
}

// CleanID reduces a test-case identifier to the characters safe for a
// directory name.
func CleanID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, id)
}

// SafeFilename replaces everything outside a conservative character set
// and strips any path components an upload name might smuggle in.
func SafeFilename(name string) string {
	name = filepath.Base(name)
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-', r == '.':
			return r
		}
		return '_'
	}, name)
	if safe == "" || safe == "." || safe == ".." {
		return "attachment"
	}
	return safe
}

func mimeType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
