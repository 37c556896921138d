// Package tempfile names result files so that saved query results never
// collide with each other or with existing files.
package tempfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Prefix starts every generated file name
const Prefix = "csvselect-"

// Name returns a unique path in dir with the given extension.
// An empty dir means os.TempDir().
func Name(dir, ext string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(dir, Prefix+uuid.NewString()+ext)
}

// Create makes a new empty file under a generated name and returns it.
func Create(dir, ext string) (*os.File, error) {
	return os.OpenFile(Name(dir, ext), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
}
