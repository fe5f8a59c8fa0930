package internal

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rm-hull/photo-filters/internal/adapter"
	"github.com/rm-hull/photo-filters/internal/filter"
	"github.com/rm-hull/photo-filters/internal/photo"
	"github.com/rm-hull/photo-filters/internal/photo/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	require.NoError(t, adapter.Save(path, img))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("out", "holiday-shear.png"),
		OutputPath("out", "/in/holiday.jpg", filter.Shear))
}

func TestNewProcessor(t *testing.T) {
	t.Run("pool size", func(t *testing.T) {
		_, err := NewProcessor(BatchConfig{InDir: t.TempDir(), OutDir: t.TempDir()})
		assert.EqualError(t, err, "pool size must be at least 1")
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewProcessor(BatchConfig{InDir: t.TempDir(), OutDir: t.TempDir(), PoolSize: 1})
		assert.ErrorIs(t, err, ErrNoImages)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewProcessor(BatchConfig{InDir: filepath.Join(t.TempDir(), "nope"), OutDir: t.TempDir(), PoolSize: 1})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("composite needs bottom", func(t *testing.T) {
		_, err := NewProcessor(BatchConfig{
			InDir:    t.TempDir(),
			OutDir:   t.TempDir(),
			PoolSize: 1,
			Request:  filter.Request{Kind: filter.Composite},
		})
		assert.EqualError(t, err, "composite needs a bottom layer image")
	})

	t.Run("ignores non images", func(t *testing.T) {
		in := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("hi"), 0644))
		require.NoError(t, os.Mkdir(filepath.Join(in, "sub.png"), 0755))
		_, err := NewProcessor(BatchConfig{InDir: in, OutDir: t.TempDir(), PoolSize: 1})
		assert.ErrorIs(t, err, ErrNoImages)
	})
}

func TestRunBatch(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "results")
	writeImage(t, filepath.Join(in, "a.png"), 2, 3, color.NRGBA{R: 255, A: 255})
	writeImage(t, filepath.Join(in, "b.bmp"), 4, 1, color.NRGBA{G: 255, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("garbage"), 0644))

	cfg := BatchConfig{
		InDir:    in,
		OutDir:   out,
		PoolSize: 2,
		Request:  filter.Request{Kind: filter.Rotate90},
	}
	errs := RunBatch(cfg)
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "broken.png")

	a, err := adapter.Load(filepath.Join(out, "a-rotate-90.png"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), a.Bounds())

	b, err := adapter.Load(filepath.Join(out, "b-rotate-90.png"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 4), b.Bounds())

	t.Run("skips existing outputs", func(t *testing.T) {
		target := filepath.Join(out, "a-rotate-90.png")
		stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, os.Chtimes(target, stamp, stamp))

		errs := RunBatch(cfg)
		assert.Len(t, errs, 1, "only the broken image is retried")

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(stamp))
	})
}

func TestRunBatchComposite(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	bottom := filepath.Join(t.TempDir(), "bottom.png")
	writeImage(t, filepath.Join(in, "top.png"), 2, 2, color.NRGBA{R: 255, A: 255})
	writeImage(t, bottom, 2, 2, color.NRGBA{B: 255, A: 255})

	errs := RunBatch(BatchConfig{
		InDir:      in,
		OutDir:     out,
		PoolSize:   1,
		Request:    filter.Request{Kind: filter.Composite},
		BottomPath: bottom,
		Extra:      []photo.Stage{&stage.GreyscaleStage{}},
	})
	require.Empty(t, errs)

	img, err := adapter.Load(filepath.Join(out, "top-composite.png"))
	require.NoError(t, err)
	y, _, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(76*0x101), y)
}

func TestRunBatchMaxJobs(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	for _, name := range []string{"1.png", "2.png", "3.png"} {
		writeImage(t, filepath.Join(in, name), 1, 1, color.NRGBA{A: 255})
	}

	errs := RunBatch(BatchConfig{InDir: in, OutDir: out, PoolSize: 3, MaxJobs: 2})
	require.Empty(t, errs)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunBatchEmpty(t *testing.T) {
	assert.Empty(t, RunBatch(BatchConfig{InDir: t.TempDir(), OutDir: t.TempDir(), PoolSize: 1}))
}
