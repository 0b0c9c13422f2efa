// internal/httpserver/routes_page.go
//
// Server-rendered puzzle page.
//   - GET  /        → clue cards, final vine sentence, verifier rows
//   - POST /verify  → check one guess from the form, store it, redirect back
//
// Verifier rows restore the visitor's last guess and outcome from the store,
// so the page works without any client script.

package httpserver

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vine-riddle/assets"
	"github.com/robalobadob/vine-riddle/internal/daily"
	"github.com/robalobadob/vine-riddle/internal/glyph"
	"github.com/robalobadob/vine-riddle/internal/puzzle"
	"github.com/robalobadob/vine-riddle/internal/store"
	"github.com/robalobadob/vine-riddle/internal/verifier"
)

var pageTmpl = template.Must(template.ParseFS(assets.FS, "templates/index.html"))

// clueCard is one rendered clue.
type clueCard struct {
	ID       string
	Delay    int // entrance animation stagger in ms
	Image    *clueImage
	Vine     template.HTML
	Featured bool
}

type clueImage struct {
	Src    string
	Width  int
	Height int
}

// lexiconRow is one verifier row.
type lexiconRow struct {
	Glyph   string
	Swatch  template.HTML
	Guess   string
	Outcome verifier.Outcome
	Label   string
}

type pageData struct {
	Title   string
	Clues   []clueCard
	Final   template.HTML
	Lexicon []lexiconRow
}

// handlePage renders the whole puzzle for the current visitor.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListVisitor(r.Context(), visitorID(r))
	if err != nil {
		log.Warn().Err(err).Msg("load guess records")
	}
	byGlyph := make(map[string]store.GuessRecord, len(records))
	for _, rec := range records {
		byGlyph[rec.Glyph] = rec
	}

	data := s.buildPage(byGlyph)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("render page")
	}
}

func (s *Server) buildPage(records map[string]store.GuessRecord) pageData {
	p := s.puzzle
	tables := p.Tables()

	ids := make([]string, len(p.Clues))
	for i, c := range p.Clues {
		ids[i] = c.ID
	}
	featured, _ := daily.Pick(s.now(), s.salt, ids)

	data := pageData{
		Title: p.Title,
		Final: template.HTML(glyph.VineSentence(p.Final, "Final vine sentence", tables)),
	}
	for i, c := range p.Clues {
		data.Clues = append(data.Clues, clueCard{
			ID:       c.ID,
			Delay:    i * 70,
			Image:    s.clueImage(c),
			Vine:     template.HTML(glyph.VineSentence(c.Words, "Vine sentence for clue "+c.ID, tables)),
			Featured: c.ID == featured.ID,
		})
	}
	for _, e := range p.Lexicon {
		row := lexiconRow{
			Glyph:   e.Glyph,
			Swatch:  template.HTML(glyph.Swatch(e.Glyph, tables)),
			Outcome: verifier.OutcomeIdle,
		}
		if rec, ok := records[e.Glyph]; ok {
			row.Guess = rec.Raw
			row.Outcome = verifier.Outcome(rec.Outcome)
		}
		row.Label = row.Outcome.Label()
		data.Lexicon = append(data.Lexicon, row)
	}
	return data
}

// clueImage resolves the png → webp → jpg fallback chain for a clue.
// nil means the page shows a placeholder.
func (s *Server) clueImage(c puzzle.Clue) *clueImage {
	img, ok, err := puzzle.ResolveImage(s.clues, c.Filename)
	if err != nil {
		log.Warn().Err(err).Str("clue", c.ID).Msg("resolve clue image")
		return nil
	}
	if !ok {
		return nil
	}
	return &clueImage{Src: "/clues/" + url.PathEscape(img.Name), Width: img.Width, Height: img.Height}
}

// handleVerifyForm checks a guess submitted from the page form and
// redirects back to the glyph's row.
func (s *Server) handleVerifyForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_form")
		return
	}
	res, err := s.check(r, r.PostForm.Get("glyph"), r.PostForm.Get("guess"))
	if err != nil {
		s.checkError(w, err)
		return
	}
	http.Redirect(w, r, "/#glyph-"+url.PathEscape(res.Glyph), http.StatusSeeOther)
}
