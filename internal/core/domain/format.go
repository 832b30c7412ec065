package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// MaxFileSize is the default input size ceiling.
const MaxFileSize = 100 << 20

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".bmp":  {},
	".tiff": {},
	".webp": {},
	".ico":  {},
}

// NormalizedExt returns the lowercased extension of path, including the dot.
func NormalizedExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// ExtensionAllowed reports whether the file extension of path is on the
// accepted format allow-list. The check is case-insensitive.
func ExtensionAllowed(path string) bool {
	_, ok := allowedExtensions[NormalizedExt(path)]
	return ok
}

// AllowedExtensions returns the accepted extensions sorted for display.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}

	sort.Strings(exts)
	return exts
}

// SizeLabel formats a byte count for display: plain bytes below 1 KiB,
// one-decimal KiB below 1 MiB, one-decimal MiB above.
func SizeLabel(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/float64(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
