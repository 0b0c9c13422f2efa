// internal/glyph/raster.go
//
// PNG rasterization of glyphs, for clients that cannot inline SVG
// (link previews, the CLI).
//
// Edges and the heart outline are stroked with freetype's rasterizer; node
// dots are filled polygons; an optional caption is drawn with the Go
// Regular font.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/raster"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// RasterOptions controls Rasterize output.
type RasterOptions struct {
	Size       int         // square edge in pixels; default 128
	Stroke     float64     // line width in glyph units; default 1.6
	Ink        color.Color // default dark green
	Background color.Color // default transparent
	Caption    string      // drawn under the glyph when non-empty
}

func (o RasterOptions) withDefaults() RasterOptions {
	if o.Size <= 0 {
		o.Size = 128
	}
	if o.Stroke <= 0 {
		o.Stroke = 1.6
	}
	if o.Ink == nil {
		o.Ink = color.RGBA{0x2f, 0x5d, 0x3a, 0xff}
	}
	if o.Background == nil {
		o.Background = color.Transparent
	}
	return o
}

var (
	fontOnce sync.Once
	fontFace *truetype.Font
	fontErr  error
)

func captionFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontFace, fontErr = freetype.ParseFont(goregular.TTF)
	})
	return fontFace, fontErr
}

// Rasterize draws g into a new RGBA image. The glyph is placed the way
// Swatch places it: root at 78% height, scaled so 100 units span the image.
func Rasterize(g Geometry, opts RasterOptions) (*image.RGBA, error) {
	opts = opts.withDefaults()
	size := opts.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	scale := float64(size) / 100 * 1.02
	origin := Point{X: float64(size) / 2, Y: float64(size) * 0.78}
	toFixed := func(p Point) fixed.Point26_6 {
		return fixed.Point26_6{
			X: fix(origin.X + p.X*scale),
			Y: fix(origin.Y + p.Y*scale),
		}
	}

	r := raster.NewRasterizer(size, size)
	r.UseNonZeroWinding = true
	width := fix(opts.Stroke * scale)

	strokeLine := func(a, b Point) {
		var path raster.Path
		path.Start(toFixed(a))
		path.Add1(toFixed(b))
		raster.Stroke(r, path, width, raster.RoundCapper, raster.RoundJoiner)
	}

	strokeLine(Point{0, 0}, Point{0, 5.5})
	switch g.Shape {
	case ShapeHeart:
		var path raster.Path
		path.Start(toFixed(Point{0, 0}))
		for _, c := range g.Curves {
			path.Add3(toFixed(c.C1), toFixed(c.C2), toFixed(c.To))
		}
		raster.Stroke(r, path, width, raster.RoundCapper, raster.RoundJoiner)
	default:
		for _, e := range g.Edges {
			from, to := g.Nodes[e.From], g.Nodes[e.To]
			strokeLine(Point{from.X, from.Y}, Point{to.X, to.Y})
		}
		for _, e := range g.Edges {
			n := g.Nodes[e.To]
			radius := 1.4
			if n.Leaf {
				radius = 1.1
			}
			fillCircle(r, toFixed(Point{n.X, n.Y}), radius*scale)
		}
	}

	painter := raster.NewRGBAPainter(img)
	painter.SetColor(opts.Ink)
	r.Rasterize(painter)

	if opts.Caption != "" {
		if err := drawCaption(img, opts); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// fillCircle adds a closed polygon approximating a circle to the rasterizer.
func fillCircle(r *raster.Rasterizer, c fixed.Point26_6, radius float64) {
	const segments = 16
	rad := fix(radius)
	at := func(i int) fixed.Point26_6 {
		a := 2 * math.Pi * float64(i) / segments
		return fixed.Point26_6{
			X: c.X + fixed.Int26_6(float64(rad)*math.Cos(a)),
			Y: c.Y + fixed.Int26_6(float64(rad)*math.Sin(a)),
		}
	}
	r.Start(at(0))
	for i := 1; i <= segments; i++ {
		r.Add1(at(i))
	}
}

func drawCaption(img *image.RGBA, opts RasterOptions) error {
	f, err := captionFont()
	if err != nil {
		return fmt.Errorf("parse caption font: %w", err)
	}
	fontSize := float64(opts.Size) / 10
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(opts.Ink))

	// Rough centering: Go Regular averages a little over half an em per glyph.
	textWidth := int(float64(len([]rune(opts.Caption))) * fontSize * 0.55)
	x := max(2, (opts.Size-textWidth)/2)
	y := opts.Size - int(fontSize/2)
	if _, err := ctx.DrawString(opts.Caption, freetype.Pt(x, y)); err != nil {
		return fmt.Errorf("draw caption: %w", err)
	}
	return nil
}

func fix(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
