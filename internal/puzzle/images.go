package puzzle

import (
	"errors"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// ImageExtensions is the order in which clue image formats are tried.
var ImageExtensions = []string{".png", ".webp", ".jpg"}

// Image describes a resolved clue image.
type Image struct {
	Name   string `json:"name"` // file name inside the clue directory
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ResolveImage finds the first decodable image for base in fsys, trying
// ImageExtensions in order. Missing and undecodable files are skipped.
// ok is false when no candidate works; callers render a placeholder.
func ResolveImage(fsys fs.FS, base string) (img Image, ok bool, err error) {
	if fsys == nil || base == "" {
		return Image{}, false, nil
	}
	for _, ext := range ImageExtensions {
		name := base + ext
		f, openErr := fsys.Open(name)
		if openErr != nil {
			if errors.Is(openErr, fs.ErrNotExist) {
				continue
			}
			return Image{}, false, openErr
		}
		cfg, format, decErr := image.DecodeConfig(f)
		_ = f.Close()
		if decErr != nil {
			continue
		}
		return Image{Name: name, Format: format, Width: cfg.Width, Height: cfg.Height}, true, nil
	}
	return Image{}, false, nil
}
