package testutils

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTestGIF writes a small valid animated GIF into dir and returns
// its path.
func WriteTestGIF(t *testing.T, dir, name string) string {
	t.Helper()

	palette := color.Palette{color.Black, color.White}
	frames := make([]*image.Paletted, 2)
	for i := range frames {
		img := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)
		img.SetColorIndex(i, i, 1)
		frames[i] = img
	}

	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image: frames,
		Delay: []int{10, 10},
	})
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

// WriteBogusGIF writes a file with a .gif name that is not decodable
// as a GIF.
func WriteBogusGIF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("definitely not a gif"), 0644))
	return path
}

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}
