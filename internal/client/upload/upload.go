// Package upload validates image files before they are sent to the
// storage endpoint. Validation happens client-side so oversized or
// non-image files are rejected without a network round trip.
package upload

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/odysseyhq/odyssey-cli/internal/client/api"
)

// MaxFileSize is the per-file ceiling accepted by the storage endpoint.
const MaxFileSize = 5 << 20 // 5 MiB

var (
	// ErrFileTooLarge means the file exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("upload: file exceeds 5MB limit")
	// ErrUnsupportedType means the file content is not an accepted image format.
	ErrUnsupportedType = errors.New("upload: unsupported file type")
	// ErrEmptyFile means the file has no content.
	ErrEmptyFile = errors.New("upload: file is empty")
)

// allowedTypes is the accepted set of sniffed MIME types.
var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// Validate checks a file's content against the size ceiling and the
// image-type allow-list. The MIME type is sniffed from the bytes, not
// taken from the file extension.
func Validate(name string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}
	if len(data) > MaxFileSize {
		return fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, name, len(data))
	}
	if _, ok := allowedTypes[http.DetectContentType(data)]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, name)
	}
	return nil
}

// ReadFiles loads and validates the given paths, returning files ready
// for upload. The first invalid file aborts the whole batch so a partial
// upload never starts.
func ReadFiles(paths []string) ([]api.ImageFile, error) {
	files := make([]api.ImageFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("upload: read %s: %w", p, err)
		}
		name := filepath.Base(p)
		if err := Validate(name, data); err != nil {
			return nil, err
		}
		files = append(files, api.ImageFile{Name: name, Data: data})
	}
	return files, nil
}
