package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// CVStore manages the upload directory for submitted CVs. Stored names
// encode the applicant, the advertisement, and a timestamp, so
// concurrent submissions from different pairs never collide and the
// filename alone identifies the row it belongs to.
type CVStore struct {
	Dir string
}

func NewCVStore(dir string) (*CVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &CVStore{Dir: dir}, nil
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// AllowedFilename reports whether the original filename carries one of
// the accepted document extensions. The check is case-insensitive and
// a file without an extension fails it.
func AllowedFilename(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces an uploaded filename to a safe basename:
// path separators and shell-hostile characters collapse to underscores.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")

	if name == "" {
		name = "file"
	}

	return name
}

// StoredPath builds the destination path for a submission:
// cv_{userID}_{adID}_{timestamp}_{sanitizedName} under the store dir.
func (s *CVStore) StoredPath(userID, adID uint, original string, now time.Time) string {
	name := fmt.Sprintf("cv_%d_%d_%s_%s",
		userID, adID, now.Format("20060102_150405"), SanitizeFilename(original))

	return filepath.Join(s.Dir, name)
}

func (s *CVStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes a stored file, tolerating one that is already gone.
func (s *CVStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
