// internal/glyph/svg.go
//
// SVG serialization for laid-out glyphs.
// Produces three kinds of markup:
//   - GlyphGroup:   the bare <g> for one word, anchored at its root.
//   - VineSentence: a full <svg> with a baseline vine and one stem per word.
//   - Swatch:       a framed 100×100 <svg> for a single word.
//
// Coordinates are written with two decimals so output is stable across runs.
package glyph

import (
	"fmt"
	"html"
	"strings"
)

const (
	rootTail = "M 0 0 L 0 5.5"

	vineHeight    = 160
	vineMargin    = 24.0
	vineBaselineY = 118.0
	vineStem      = 14.0
	vineScale     = 1.24

	swatchFrame = "M14 53 C16 31, 32 16, 53 18 C77 20, 88 35, 86 57 C84 76, 66 88, 45 86 C25 84, 12 72, 14 53 Z"
)

// GlyphGroup renders g as an SVG group rooted at the origin.
func GlyphGroup(g Geometry) string {
	var b strings.Builder
	writeGroup(&b, g)
	return b.String()
}

func writeGroup(b *strings.Builder, g Geometry) {
	if g.Shape == ShapeHeart {
		b.WriteString(`<g class="heart-glyph">`)
		fmt.Fprintf(b, `<path class="heart-root" d="%s"/>`, rootTail)
		fmt.Fprintf(b, `<path class="heart-edge" d="%s"/>`, CurvePath(g.Curves))
		b.WriteString(`</g>`)
		return
	}

	b.WriteString(`<g class="tree-glyph">`)
	fmt.Fprintf(b, `<path class="tree-root" d="%s"/>`, rootTail)
	for _, e := range g.Edges {
		from, to := g.Nodes[e.From], g.Nodes[e.To]
		fmt.Fprintf(b, `<path class="tree-edge" d="M %.2f %.2f L %.2f %.2f"/>`, from.X, from.Y, to.X, to.Y)
	}
	// Edges are in BFS order, so their targets give the node order too.
	for _, e := range g.Edges {
		n := g.Nodes[e.To]
		class, r := "tree-node", "1.4"
		if n.Leaf {
			class, r = "tree-tip-node", "1.1"
		}
		fmt.Fprintf(b, `<circle class="%s" cx="%.2f" cy="%.2f" r="%s"/>`, class, n.X, n.Y, r)
	}
	b.WriteString(`</g>`)
}

// CurvePath formats a chain of cubic segments starting at the origin as
// SVG path data.
func CurvePath(curves []Cubic) string {
	var b strings.Builder
	b.WriteString("M 0 0")
	for _, c := range curves {
		fmt.Fprintf(&b, " C %s %s %s %s %s %s",
			num(c.C1.X), num(c.C1.Y), num(c.C2.X), num(c.C2.Y), num(c.To.X), num(c.To.Y))
	}
	return b.String()
}

// num trims trailing zeros so integral control points print like "-18".
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// VineWidth is the viewBox width used for a sentence of n words.
func VineWidth(n int) int {
	return max(360, 140+n*120)
}

// VineSentence renders words left to right along a horizontal vine.
func VineSentence(words []string, label string, t Tables) string {
	width := VineWidth(len(words))
	startX, endX := vineMargin, float64(width)-vineMargin
	spread := endX - startX

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="vine-svg" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-label="%s">`,
		width, vineHeight, html.EscapeString(label))

	baseline := fmt.Sprintf("M %.2f %.2f L %.2f %.2f", startX, vineBaselineY, endX, vineBaselineY)
	fmt.Fprintf(&b, `<path class="vine-main" d="%s"/>`, baseline)
	fmt.Fprintf(&b, `<path class="vine-main vine-main-echo" d="%s"/>`, baseline)

	for i, w := range words {
		x := startX + spread*float64(i+1)/float64(len(words)+1)
		top := vineBaselineY - vineStem
		fmt.Fprintf(&b, `<path class="sentence-stem" d="M %.2f %.2f L %.2f %.2f"/>`, x, vineBaselineY, x, top)
		fmt.Fprintf(&b, `<g class="vine-glyph-wrap" transform="translate(%.2f %.2f) scale(%.3f)">`, x, top, vineScale)
		writeGroup(&b, t.Layout(w))
		b.WriteString(`</g>`)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// Swatch renders a single word inside the blob-shaped frame used by the
// lexicon. The label deliberately does not reveal the word.
func Swatch(word string, t Tables) string {
	var b strings.Builder
	b.WriteString(`<svg class="glyph-swatch" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" role="img" aria-label="Unknown glyph word">`)
	fmt.Fprintf(&b, `<path class="glyph-swatch-frame" d="%s"/>`, swatchFrame)
	b.WriteString(`<g class="glyph-swatch-tree" transform="translate(50 78) scale(1.02)">`)
	writeGroup(&b, t.Layout(word))
	b.WriteString(`</g></svg>`)
	return b.String()
}
