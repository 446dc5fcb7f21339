package util

import (
	"os"
	"path/filepath"
	"strings"
)

// DriverExtensions is the extension set the multi-file driver (C8) walks
// for, per spec.md §4.8. Grounded in the original's find_mimetype().
var DriverExtensions = map[string]bool{
	".mkv":  true,
	".avi":  true,
	".mp4":  true,
	".divx": true,
	".flv":  true,
	".m4v":  true,
	".mov":  true,
	".ogv":  true,
	".ts":   true,
	".webm": true,
	".wmv":  true,
}

// SingleFileExtensions is the extension set accepted when -i/--inputpath
// names a single file, per spec.md §6.
var SingleFileExtensions = map[string]bool{
	".mp4": true,
	".mkv": true,
	".avi": true,
}

// IsVideoFile reports whether path is a regular file whose extension is in
// the driver's accepted set.
func IsVideoFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return DriverExtensions[ext]
}

// GetFilename returns the filename component of path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetFileStem returns the filename without its extension.
func GetFileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// EnsureDirectory creates a directory (and parents) if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0o755)
}

// DirectoryExists reports whether path exists and is a directory.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsZeroLengthFile reports whether path exists and has zero size.
// The finalizer's retry loop (§4.6) does not call it; it checks the
// concat output's size itself.
func IsZeroLengthFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() == 0
}
