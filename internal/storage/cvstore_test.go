package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFilename(t *testing.T) {
	tests := []struct {
		name    string
		allowed bool
	}{
		{"resume.pdf", true},
		{"resume.doc", true},
		{"resume.docx", true},
		{"RESUME.PDF", true},
		{"Resume.DocX", true},
		{"resume.exe", false},
		{"resume.pdf.sh", false},
		{"resume", false},
		{"", false},
		{".pdf", true},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.allowed, AllowedFilename(tc.name), "filename %q", tc.name)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"my resume (final).pdf", "my_resume_final_.pdf"},
		{"../../etc/passwd", "passwd"},
		{"/tmp/evil.pdf", "evil.pdf"},
		{"名前.pdf", "pdf"},
		{"////", "file"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}

func TestStoredPathFormat(t *testing.T) {
	store, err := NewCVStore(t.TempDir())
	require.NoError(t, err)

	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	path := store.StoredPath(7, 3, "My Resume.pdf", at)

	assert.Equal(t, store.Dir, filepath.Dir(path))
	assert.Equal(t, "cv_7_3_20250314_150926_My_Resume.pdf", filepath.Base(path))
}

func TestExistsAndRemove(t *testing.T) {
	store, err := NewCVStore(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(store.Dir, "cv_1_1_20250101_000000_a.pdf")
	require.NoError(t, os.WriteFile(path, []byte("doc"), 0o644))

	assert.True(t, store.Exists(path))
	require.NoError(t, store.Remove(path))
	assert.False(t, store.Exists(path))

	// Removing a file that is already gone is not an error.
	assert.NoError(t, store.Remove(path))
}
