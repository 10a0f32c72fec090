// Package imageio writes the debug renders. The format follows the
// file extension: .webp (lossless), .tga or .png.
package imageio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Extensions lists the supported output extensions.
var Extensions = []string{".webp", ".tga", ".png"}

// Supported reports whether path has a supported image extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Encode writes img to w in the format named by ext.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".webp":
		return nativewebp.Encode(w, img, nil)
	case ".tga":
		return tga.Encode(w, img)
	case ".png":
		return png.Encode(w, img)
	}
	return fmt.Errorf("imageio: unsupported format %q", ext)
}

// Save encodes img to path, creating parent directories.
func Save(path string, img image.Image) error {
	ext := filepath.Ext(path)
	if !Supported(path) {
		return fmt.Errorf("imageio: save %s: unsupported format %q", path, ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}
	if err := Encode(f, img, ext); err != nil {
		f.Close()
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return f.Close()
}
