// internal/glyph/types.go
//
// Core type definitions for the glyph layout engine.
// Defines:
//   - Signature / LengthProfile: static per-word tree configuration.
//   - Node / Edge / Geometry: derived layout, recomputed per render.
//   - Tables: the word → signature and word → lengths lookups.

package glyph

// Shape distinguishes generated tree glyphs from hardcoded ones.
type Shape string

const (
	ShapeTree  Shape = "tree"
	ShapeHeart Shape = "heart"
)

// Signature lists the node paths present in a word's depth-2 binary tree.
// Paths are strings over {L, R}; the root "" is implied.
type Signature []string

// LengthProfile maps a non-root path to its inbound edge length.
type LengthProfile map[string]float64

// Point is a position in glyph space (y grows downward, as in SVG).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a placed tree node.
type Node struct {
	Path  string  `json:"path"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"` // inbound heading in degrees; root is -90
	Leaf  bool    `json:"leaf"`
}

// Edge connects a parent path to a child path.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Cubic is one cubic Bézier segment continuing from the previous end point.
type Cubic struct {
	C1 Point `json:"c1"`
	C2 Point `json:"c2"`
	To Point `json:"to"`
}

// Geometry is the result of laying out one word.
type Geometry struct {
	Shape  Shape           `json:"shape"`
	Nodes  map[string]Node `json:"nodes"`
	Edges  []Edge          `json:"edges"`
	Curves []Cubic         `json:"curves,omitempty"` // heart outline, starting at the root
}

// Tables bundles the per-word configuration used by LayoutWord.
type Tables struct {
	Trees   map[string]Signature
	Lengths map[string]LengthProfile
}

// Layout lays out word using the tables.
func (t Tables) Layout(word string) Geometry {
	return LayoutWord(word, t.Trees, t.Lengths)
}
