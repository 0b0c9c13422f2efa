package glyph_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vine-riddle/internal/glyph"
)

var testTables = glyph.Tables{
	Trees: map[string]glyph.Signature{
		"chris":    {"", "L", "R", "LL"},
		"kimberly": {"", "L", "R", "RR"},
		"loves":    {"", "L", "R", "LR", "RL"},
		"creates":  {"", "L", "R", "LL", "LR"},
		"hides":    {"", "L", "R", "RL", "RR"},
		"under":    {"", "L", "LL"},
		"table":    {"", "R", "RR"},
	},
	Lengths: map[string]glyph.LengthProfile{
		"chris":   {"L": 20, "R": 12, "LL": 9},
		"creates": {"L": 18, "R": 10, "LL": 12, "LR": 8},
		"under":   {"L": 17, "LL": 12},
	},
}

func parentOf(path string) string { return path[:len(path)-1] }

func TestLayout_NodeAndEdgeCompleteness(t *testing.T) {
	for word, sig := range testTables.Trees {
		if word == "loves" {
			continue
		}
		g := testTables.Layout(word)
		require.Equal(t, glyph.ShapeTree, g.Shape, word)
		require.Len(t, g.Nodes, len(sig), word)
		require.Len(t, g.Edges, len(sig)-1, word)

		for _, p := range sig {
			_, ok := g.Nodes[p]
			require.True(t, ok, "%s: missing node %q", word, p)
		}
		for _, e := range g.Edges {
			require.Equal(t, parentOf(e.To), e.From, "%s: edge %v", word, e)
		}
	}
}

func TestLayout_TurnsAreExactly45(t *testing.T) {
	for word := range testTables.Trees {
		g := testTables.Layout(word)
		for _, e := range g.Edges {
			delta := g.Nodes[e.To].Angle - g.Nodes[e.From].Angle
			if strings.HasSuffix(e.To, "L") {
				assert.Equal(t, -45.0, delta, "%s %s", word, e.To)
			} else {
				assert.Equal(t, 45.0, delta, "%s %s", word, e.To)
			}
		}
	}
}

func TestLayout_PositionsUseProfileLengths(t *testing.T) {
	g := testTables.Layout("chris")

	root := g.Nodes[""]
	require.Equal(t, 0.0, root.X)
	require.Equal(t, 0.0, root.Y)
	require.Equal(t, -90.0, root.Angle)

	l := g.Nodes["L"]
	assert.InDelta(t, -135.0, l.Angle, 1e-9)
	assert.InDelta(t, 20*math.Cos(-135*math.Pi/180), l.X, 1e-9)
	assert.InDelta(t, 20*math.Sin(-135*math.Pi/180), l.Y, 1e-9)

	ll := g.Nodes["LL"]
	assert.InDelta(t, -180.0, ll.Angle, 1e-9)
	assert.InDelta(t, l.X-9, ll.X, 1e-9)
	assert.InDelta(t, l.Y, ll.Y, 1e-9)
}

func TestLayout_DefaultLengths(t *testing.T) {
	// kimberly has no profile in testTables.
	g := testTables.Layout("kimberly")
	r := g.Nodes["R"]
	assert.InDelta(t, 14.0, math.Hypot(r.X, r.Y), 1e-9)

	rr := g.Nodes["RR"]
	assert.InDelta(t, 10.0, math.Hypot(rr.X-r.X, rr.Y-r.Y), 1e-9)

	// Non-positive entries are ignored rather than trusted.
	g = glyph.Layout(glyph.Signature{"", "L"}, glyph.LengthProfile{"L": 0})
	assert.InDelta(t, 14.0, math.Hypot(g.Nodes["L"].X, g.Nodes["L"].Y), 1e-9)
}

func TestLayout_LeafClassification(t *testing.T) {
	g := testTables.Layout("chris")
	assert.False(t, g.Nodes[""].Leaf)
	assert.False(t, g.Nodes["L"].Leaf)
	assert.True(t, g.Nodes["R"].Leaf)
	assert.True(t, g.Nodes["LL"].Leaf)
}

func TestLayout_UnknownWordFallsBack(t *testing.T) {
	g := testTables.Layout("zebra")
	require.Len(t, g.Nodes, 3)
	require.Equal(t, []glyph.Edge{{From: "", To: "L"}, {From: "", To: "R"}}, g.Edges)
}

func TestLayout_DanglingPathsAreNeverPlaced(t *testing.T) {
	// "RL" has no "R" parent; "LLL" is past the depth cutoff.
	g := glyph.Layout(glyph.Signature{"", "l", "RL", "LL", "LLL"}, nil)
	require.Len(t, g.Nodes, 3)
	_, ok := g.Nodes["RL"]
	assert.False(t, ok)
	_, ok = g.Nodes["LLL"]
	assert.False(t, ok)
}

func TestLayout_EdgesInBreadthFirstOrder(t *testing.T) {
	g := testTables.Layout("creates")
	var order []string
	for _, e := range g.Edges {
		order = append(order, e.To)
	}
	require.Equal(t, []string{"L", "R", "LL", "LR"}, order)
}

func TestLayout_LovesIsHeart(t *testing.T) {
	for _, tables := range []glyph.Tables{testTables, {}} {
		g := tables.Layout("loves")
		require.Equal(t, glyph.ShapeHeart, g.Shape)
		require.Empty(t, g.Edges)
		require.Len(t, g.Curves, 6)
		require.Equal(t, glyph.Point{X: 0, Y: 0}, g.Curves[len(g.Curves)-1].To)
	}
}

func TestDefaultLength(t *testing.T) {
	assert.Equal(t, 14.0, glyph.DefaultLength(1))
	assert.Equal(t, 10.0, glyph.DefaultLength(2))
}
