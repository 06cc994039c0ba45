package library

import (
	"fmt"
	"os"
	"path/filepath"
)

// DownloadArchive resolves downloadable copies of books stored as plain PDF
// files named after their book ID.
type DownloadArchive struct {
	dir string
}

// NewDownloadArchive points the archive at dir.
func NewDownloadArchive(dir string) *DownloadArchive {
	return &DownloadArchive{dir: dir}
}

// Resolve returns the path of the downloadable copy for bookID, or
// ErrDownloadUnavailable when no file exists.
func (a *DownloadArchive) Resolve(bookID string) (string, error) {
	path := filepath.Join(a.dir, bookID+".pdf")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("book %s: %w", bookID, ErrDownloadUnavailable)
	}
	return path, nil
}

// Eligible reports whether the user may download books. Authentication and
// payment verification are not implemented; every user is eligible.
func (a *DownloadArchive) Eligible(userID string) bool {
	return true
}
