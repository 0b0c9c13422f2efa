// internal/httpserver/routes_api.go
//
// JSON endpoints.
//   - POST /api/verify        → check a guess, store it, return the outcome
//   - GET  /api/guesses       → the visitor's stored guesses
//   - GET  /api/layout/{word} → raw glyph geometry
//   - GET  /daily             → today's featured clue
//   - GET  /stats             → per-glyph aggregates
//   - GET  /stats/export.xlsx → all records as a workbook (admin token)

package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vine-riddle/internal/daily"
	"github.com/robalobadob/vine-riddle/internal/export"
	"github.com/robalobadob/vine-riddle/internal/store"
	"github.com/robalobadob/vine-riddle/internal/verifier"
)

// maxGuessLen bounds stored guess text; real answers are a dozen runes.
const maxGuessLen = 200

// check runs the verifier and stores the visitor's guess.
// Store failures are logged but do not fail the check.
func (s *Server) check(req *http.Request, glyphName, guess string) (verifier.Result, error) {
	if r := []rune(guess); len(r) > maxGuessLen {
		guess = string(r[:maxGuessLen])
	}
	res, err := s.verifier.Check(glyphName, guess)
	if err != nil {
		return res, err
	}
	vid := visitorID(req)
	if _, err := s.store.Save(req.Context(), store.GuessRecord{
		VisitorID: vid,
		Glyph:     res.Glyph,
		Raw:       res.Guess,
		Outcome:   string(res.Outcome),
	}); err != nil {
		log.Warn().Err(err).Str("visitor", vid).Str("glyph", res.Glyph).Msg("save guess")
	}
	log.Debug().Str("visitor", vid).Str("glyph", res.Glyph).Str("outcome", string(res.Outcome)).Msg("verify")
	return res, nil
}

func (s *Server) checkError(w http.ResponseWriter, err error) {
	if errors.Is(err, verifier.ErrUnknownGlyph) {
		writeError(w, http.StatusNotFound, "unknown_glyph")
		return
	}
	log.Error().Err(err).Msg("verify")
	writeError(w, http.StatusInternalServerError, "verify_failed")
}

// verifyReq/Res payloads for POST /api/verify.
type verifyReq struct {
	Glyph string `json:"glyph"`
	Guess string `json:"guess"`
}
type verifyRes struct {
	Glyph    string           `json:"glyph"`
	Outcome  verifier.Outcome `json:"outcome"` // "empty" | "correct" | "wrong"
	Label    string           `json:"label"`
	Accepted bool             `json:"accepted"`
}

func (s *Server) handleVerifyJSON(w http.ResponseWriter, r *http.Request) {
	var req verifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	res, err := s.check(r, req.Glyph, req.Guess)
	if err != nil {
		s.checkError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyRes{
		Glyph:    res.Glyph,
		Outcome:  res.Outcome,
		Label:    res.Label,
		Accepted: res.Accepted(),
	})
}

func (s *Server) handleGuesses(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListVisitor(r.Context(), visitorID(r))
	if err != nil {
		log.Error().Err(err).Msg("list guesses")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	word := strings.ToLower(chi.URLParam(r, "word"))
	if !validWord(word) {
		writeError(w, http.StatusBadRequest, "bad_word")
		return
	}
	writeJSON(w, http.StatusOK, s.puzzle.Tables().Layout(word))
}

// dailyRes is returned by /daily. It names the clue but not its words.
type dailyRes struct {
	daily.Featured
	Vine string `json:"vine"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	ids := make([]string, len(s.puzzle.Clues))
	for i, c := range s.puzzle.Clues {
		ids[i] = c.ID
	}
	f, ok := daily.Pick(s.now(), s.salt, ids)
	if !ok {
		writeError(w, http.StatusNotFound, "no_clues")
		return
	}
	writeJSON(w, http.StatusOK, dailyRes{Featured: f, Vine: "/vines/" + f.ID + ".svg"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, records, stats); err != nil {
		log.Error().Err(err).Msg("export workbook")
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="vine-guesses.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}
