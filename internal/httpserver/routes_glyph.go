// internal/httpserver/routes_glyph.go
//
// Rendered images.
//   - GET /glyphs/{word}.svg → lexicon swatch
//   - GET /glyphs/{word}.png → raster swatch, ?size=16..512
//   - GET /vines/{id}.svg    → a clue's vine sentence, or "final"
//
// Output is a pure function of the puzzle, so responses carry a strong
// content ETag and honour If-None-Match.

package httpserver

import (
	"bytes"
	"encoding/hex"
	"image/png"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/vine-riddle/internal/glyph"
)

const (
	minRasterSize = 16
	maxRasterSize = 512
	maxWordLen    = 32
)

// validWord reports whether w is a non-empty run of ASCII letters.
func validWord(w string) bool {
	if w == "" || len(w) > maxWordLen {
		return false
	}
	for i := 0; i < len(w); i++ {
		c := w[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// splitFile splits "name.ext" into its lowercase name and extension.
func splitFile(file string) (name, ext string) {
	ext = path.Ext(file)
	return strings.ToLower(strings.TrimSuffix(file, ext)), strings.ToLower(ext)
}

func (s *Server) handleGlyph(w http.ResponseWriter, r *http.Request) {
	word, ext := splitFile(chi.URLParam(r, "file"))
	if !validWord(word) {
		writeError(w, http.StatusBadRequest, "bad_word")
		return
	}
	g := s.puzzle.Tables()

	switch ext {
	case ".svg":
		writeCached(w, r, "image/svg+xml", []byte(glyph.Swatch(word, g)))
	case ".png":
		size := 128
		if v := r.URL.Query().Get("size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "bad_size")
				return
			}
			size = min(max(n, minRasterSize), maxRasterSize)
		}
		img, err := glyph.Rasterize(g.Layout(word), glyph.RasterOptions{Size: size})
		if err != nil {
			log.Error().Err(err).Str("word", word).Msg("rasterize glyph")
			writeError(w, http.StatusInternalServerError, "render_failed")
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			writeError(w, http.StatusInternalServerError, "render_failed")
			return
		}
		writeCached(w, r, "image/png", buf.Bytes())
	default:
		writeError(w, http.StatusNotFound, "not_found")
	}
}

func (s *Server) handleVine(w http.ResponseWriter, r *http.Request) {
	id, ext := splitFile(chi.URLParam(r, "file"))
	if ext != ".svg" {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var words []string
	label := "Final vine sentence"
	if id == "final" {
		words = s.puzzle.Final
	} else {
		c, ok := s.puzzle.Clue(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown_clue")
			return
		}
		words = c.Words
		label = "Vine sentence for clue " + c.ID
	}
	writeCached(w, r, "image/svg+xml", []byte(glyph.VineSentence(words, label, s.puzzle.Tables())))
}

// etag is a quoted 128-bit blake2b digest of body.
func etag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// writeCached writes body with a strong ETag, or 304 when the client
// already holds it.
func writeCached(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	tag := etag(body)
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if match := r.Header.Get("If-None-Match"); match != "" {
		for _, t := range strings.Split(match, ",") {
			if t = strings.TrimSpace(t); t == tag || t == "*" {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}
