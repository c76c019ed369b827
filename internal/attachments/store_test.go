package attachments

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/casebook/pkg/types"
)

func TestAddStoresPayload(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	att, err := store.Add("II_EXF_01", "trace.log", "export trace", strings.NewReader("line1\nline2\n"))
	require.NoError(t, err)

	assert.Equal(t, "trace.log", att.OriginalFilename)
	assert.True(t, strings.HasSuffix(att.StoredFilename, "-trace.log"))
	assert.Equal(t, int64(12), att.Size)
	assert.Equal(t, "export trace", att.Description)
	assert.False(t, att.Timestamp.IsZero())

	payload := filepath.Join(dir, AttachmentsDirName, "II_EXF_01", att.StoredFilename)
	data, err := os.ReadFile(payload)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", string(data))

	// No temp files left in the payload directory.
	entries, err := os.ReadDir(filepath.Dir(payload))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddSanitizesUploadName(t *testing.T) {
	store := NewStore(t.TempDir())

	att, err := store.Add("II_EXF_01", "../../etc/pass wd.txt", "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(att.StoredFilename, "-pass_wd.txt"))
	assert.NotContains(t, att.StoredFilename, "/")
}

func TestOpenAndRemove(t *testing.T) {
	store := NewStore(t.TempDir())

	att, err := store.Add("II_EXF_01", "shot.png", "", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	rc, err := store.Open("II_EXF_01", att.StoredFilename)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove("II_EXF_01", att.StoredFilename))

	_, err = store.Open("II_EXF_01", att.StoredFilename)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	err = store.Remove("II_EXF_01", att.StoredFilename)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestCleanID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"II_EXF_01", "II_EXF_01"},
		{"II_EXF_01_A", "II_EXF_01_A"},
		{"weird id/..\\x", "weirdidx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanID(tt.in))
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"my file (1).pdf", "my_file__1_.pdf"},
		{"../../sneaky", "sneaky"},
		{"", "attachment"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeFilename(tt.in))
	}
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", mimeType("report.pdf"))
	assert.Equal(t, "application/octet-stream", mimeType("noext"))
}
