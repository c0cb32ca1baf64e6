package batch

import (
	"fmt"
	"image"
	"io"

	"github.com/DavidArayan/gfx/internal/config"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Encode writes img in the named preview format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case config.FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
	case config.FormatTGA:
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("TGA encode: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}
