// Package attachment defines how uploaded ticket files are named and stored.
package attachment

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// AllowedExtensions are the file types accepted on ticket submission.
var AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".pdf"}

// Store keeps attachment bytes in a flat namespace keyed by base filename.
type Store interface {
	// Save writes content under name, overwriting any file of the same name.
	Save(ctx context.Context, name string, content io.Reader) error

	// Open returns the content of name. A missing file yields an error
	// matching fs.ErrNotExist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Exists reports whether name is present.
	Exists(ctx context.Context, name string) (bool, error)
}

// SanitizeName strips any directory component a client sent.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// ValidateName returns the sanitized name or an error when it is empty or
// carries an extension outside AllowedExtensions.
func ValidateName(name string) (string, error) {
	clean := SanitizeName(name)
	if clean == "" {
		return "", fmt.Errorf("attachment name is empty")
	}
	ext := strings.ToLower(filepath.Ext(clean))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return clean, nil
		}
	}
	return "", fmt.Errorf("file type %q not allowed for %s", ext, clean)
}
