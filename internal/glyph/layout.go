// internal/glyph/layout.go
//
// Glyph layout engine.
// Responsibilities:
//   - Expand a word's tree signature breadth-first into node positions.
//   - Turn every branch exactly 45° left or right of its parent's heading.
//   - Substitute default edge lengths where the profile has none.
//   - Short-circuit the heart glyph for "loves".
//
// Layout never fails: unknown words get a generic two-branch tree.
package glyph

import (
	"math"
	"strings"
)

const (
	// MaxDepth is the deepest path length a signature may use.
	MaxDepth = 2

	rootAngle      = -90.0
	turnAngle      = 45.0
	defaultLength1 = 14.0
	defaultLength2 = 10.0
	heartWord      = "loves"
	sideLeft       = "L"
	sideRight      = "R"
)

// FallbackSignature is used for words with no signature entry.
var FallbackSignature = Signature{"", "L", "R"}

// LayoutWord lays out word from the signature and length tables.
// "loves" always yields the heart; unknown words use FallbackSignature.
func LayoutWord(word string, trees map[string]Signature, lengths map[string]LengthProfile) Geometry {
	if word == heartWord {
		return Heart()
	}
	sig, ok := trees[word]
	if !ok {
		sig = FallbackSignature
	}
	return Layout(sig, lengths[word])
}

// Layout expands sig breadth-first from the root at (0,0) heading straight up.
// A nil lengths profile is treated as empty.
func Layout(sig Signature, lengths LengthProfile) Geometry {
	members := make(map[string]struct{}, len(sig)+1)
	for _, p := range sig {
		members[strings.ToUpper(p)] = struct{}{}
	}
	members[""] = struct{}{}

	nodes := map[string]Node{
		"": {Path: "", X: 0, Y: 0, Angle: rootAngle},
	}
	var edges []Edge
	queue := []string{""}

	for len(queue) > 0 {
		parentPath := queue[0]
		queue = queue[1:]
		if len(parentPath) >= MaxDepth {
			continue
		}
		parent := nodes[parentPath]

		for _, side := range [...]string{sideLeft, sideRight} {
			childPath := parentPath + side
			if _, ok := members[childPath]; !ok {
				continue
			}
			angle := parent.Angle + turnFor(side)
			length := edgeLength(lengths, childPath)
			rad := angle * math.Pi / 180
			nodes[childPath] = Node{
				Path:  childPath,
				X:     parent.X + math.Cos(rad)*length,
				Y:     parent.Y + math.Sin(rad)*length,
				Angle: angle,
			}
			edges = append(edges, Edge{From: parentPath, To: childPath})
			queue = append(queue, childPath)
		}
	}

	for path, n := range nodes {
		_, hasL := members[path+sideLeft]
		_, hasR := members[path+sideRight]
		n.Leaf = !hasL && !hasR
		nodes[path] = n
	}
	return Geometry{Shape: ShapeTree, Nodes: nodes, Edges: edges}
}

// DefaultLength is the edge length used for a path of the given depth
// when the profile has no positive entry for it.
func DefaultLength(depth int) float64 {
	if depth == 1 {
		return defaultLength1
	}
	return defaultLength2
}

func edgeLength(lengths LengthProfile, path string) float64 {
	if l, ok := lengths[path]; ok && l > 0 && !math.IsInf(l, 0) {
		return l
	}
	return DefaultLength(len(path))
}

func turnFor(side string) float64 {
	if side == sideLeft {
		return -turnAngle
	}
	return turnAngle
}
