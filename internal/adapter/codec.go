package adapter

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FileFormat is an encoding that Write can produce.
type FileFormat string

const (
	PNG  FileFormat = "png"
	JPEG FileFormat = "jpeg"
	BMP  FileFormat = "bmp"
	TIFF FileFormat = "tiff"
)

const jpegQuality = 92

// FormatFromPath picks an output encoding from a file extension.
func FormatFromPath(path string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: no encoder for %q", pixbuf.ErrEncode, filepath.Ext(path))
}

// IsImagePath reports whether path has an extension Read understands.
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}

// Read decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func Read(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", pixbuf.ErrDecode, err)
	}
	return img, format, nil
}

// Load reads and decodes the image file at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return img, nil
}

// Write encodes img to w.
func Write(w io.Writer, img image.Image, format FileFormat) error {
	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: unsupported format %q", pixbuf.ErrEncode, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", pixbuf.ErrEncode, err)
	}
	return nil
}

// Save writes img to path, choosing the encoding from the extension. The
// file is written to a temporary name first so a failed encode never leaves
// a partial image behind.
func Save(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), "filter-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := Write(tmpFile, img, format); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false
	return nil
}
