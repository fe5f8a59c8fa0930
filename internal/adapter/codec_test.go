package adapter

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected FileFormat
		wantErr  bool
	}{
		{"out.png", PNG, false},
		{"OUT.JPG", JPEG, false},
		{"a/b/c.jpeg", JPEG, false},
		{"x.bmp", BMP, false},
		{"x.tif", TIFF, false},
		{"x.tiff", TIFF, false},
		{"x.webp", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, pixbuf.ErrEncode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsImagePath(t *testing.T) {
	assert.True(t, IsImagePath("holiday.JPG"))
	assert.True(t, IsImagePath("frame.webp"))
	assert.True(t, IsImagePath("anim.gif"))
	assert.False(t, IsImagePath("notes.txt"))
	assert.False(t, IsImagePath(".png.tmp"))
}

func TestWriteRead(t *testing.T) {
	src := checkerNRGBA(6, 4)

	for _, format := range []FileFormat{PNG, BMP, TIFF} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, src, format))

			img, name, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, string(format), name)
			assert.Equal(t, src.Bounds(), img.Bounds())
		})
	}

	t.Run("png is lossless", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, src, PNG))

		img, _, err := Read(&buf)
		require.NoError(t, err)
		decoded, err := Decode(img)
		require.NoError(t, err)
		out, err := Encode(decoded)
		require.NoError(t, err)
		assert.Equal(t, src.Pix, out.(*image.NRGBA).Pix)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := Write(&bytes.Buffer{}, src, FileFormat("xpm"))
		assert.ErrorIs(t, err, pixbuf.ErrEncode)
	})
}

func TestReadGarbage(t *testing.T) {
	_, _, err := Read(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, pixbuf.ErrDecode)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	require.NoError(t, Save(path, checkerNRGBA(3, 3)))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 3), img.Bounds())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should have been renamed")
}

func TestSaveUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	err := Save(filepath.Join(dir, "out.xyz"), checkerNRGBA(1, 1))
	assert.ErrorIs(t, err, pixbuf.ErrEncode)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
