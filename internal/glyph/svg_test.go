package glyph_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vine-riddle/internal/glyph"
)

func parseSVG(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + markup + "</body></html>"))
	require.NoError(t, err)
	return doc
}

func TestGlyphGroup_Tree(t *testing.T) {
	g := testTables.Layout("chris")
	doc := parseSVG(t, "<svg>"+glyph.GlyphGroup(g)+"</svg>")

	require.Equal(t, 1, doc.Find("g.tree-glyph").Length())
	require.Equal(t, 1, doc.Find("path.tree-root").Length())
	require.Equal(t, 3, doc.Find("path.tree-edge").Length())
	assert.Equal(t, 1, doc.Find("circle.tree-node").Length())
	assert.Equal(t, 2, doc.Find("circle.tree-tip-node").Length())

	r, _ := doc.Find("circle.tree-tip-node").First().Attr("r")
	assert.Equal(t, "1.1", r)

	d, _ := doc.Find("path.tree-edge").First().Attr("d")
	assert.Equal(t, "M 0.00 0.00 L -14.14 -14.14", d)
}

func TestGlyphGroup_Heart(t *testing.T) {
	markup := glyph.GlyphGroup(testTables.Layout("loves"))
	doc := parseSVG(t, "<svg>"+markup+"</svg>")

	require.Equal(t, 1, doc.Find("g.heart-glyph").Length())
	d, _ := doc.Find("path.heart-edge").Attr("d")
	assert.Equal(t,
		"M 0 0 C -7 -7 -18 -14 -18 -24 C -18 -31 -13 -36 -7 -36 C -3 -36 0 -34 0 -29 C 0 -34 3 -36 7 -36 C 13 -36 18 -31 18 -24 C 18 -14 7 -7 0 0",
		d)
	assert.Zero(t, doc.Find("circle").Length())
}

func TestVineSentence(t *testing.T) {
	words := []string{"chris", "hides", "gift", "under", "tv"}
	doc := parseSVG(t, glyph.VineSentence(words, `Final "vine" sentence`, testTables))

	svg := doc.Find("svg.vine-svg")
	require.Equal(t, 1, svg.Length())
	vb, _ := svg.Attr("viewBox")
	assert.Equal(t, "0 0 740 160", vb)
	label, _ := svg.Attr("aria-label")
	assert.Equal(t, `Final "vine" sentence`, label)

	assert.Equal(t, 2, doc.Find("path.vine-main").Length())
	assert.Equal(t, len(words), doc.Find("path.sentence-stem").Length())
	assert.Equal(t, len(words), doc.Find("g.vine-glyph-wrap").Length())

	tr, _ := doc.Find("g.vine-glyph-wrap").First().Attr("transform")
	assert.Equal(t, "translate(139.33 104.00) scale(1.240)", tr)
}

func TestVineWidth(t *testing.T) {
	assert.Equal(t, 360, glyph.VineWidth(0))
	assert.Equal(t, 360, glyph.VineWidth(1))
	assert.Equal(t, 380, glyph.VineWidth(2))
	assert.Equal(t, 620, glyph.VineWidth(4))
}

func TestSwatch(t *testing.T) {
	doc := parseSVG(t, glyph.Swatch("under", testTables))
	require.Equal(t, 1, doc.Find("svg.glyph-swatch").Length())
	require.Equal(t, 1, doc.Find("path.glyph-swatch-frame").Length())
	assert.Equal(t, 2, doc.Find("path.tree-edge").Length())

	label, _ := doc.Find("svg").Attr("aria-label")
	assert.NotContains(t, label, "under")
}

func TestRasterize(t *testing.T) {
	img, err := glyph.Rasterize(testTables.Layout("chris"), glyph.RasterOptions{Size: 64})
	require.NoError(t, err)
	require.Equal(t, 64, img.Bounds().Dx())

	inked := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			inked++
		}
	}
	assert.Positive(t, inked)

	heart, err := glyph.Rasterize(glyph.Heart(), glyph.RasterOptions{Size: 64, Caption: "01"})
	require.NoError(t, err)
	assert.Equal(t, 64, heart.Bounds().Dy())
}
