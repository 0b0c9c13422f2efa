// internal/verifier/verifier.go
//
// The glyph verification mini-game.
// Responsibilities:
//   - Look up the accepted answers for a glyph.
//   - Run the guess through the matcher.
//   - Map the verdict onto the outcome and status label the page shows.
//
// Outcomes:
//   - idle:    nothing checked yet.
//   - empty:   the visitor submitted nothing ("Add a guess first").
//   - correct: guess accepted.
//   - wrong:   guess rejected ("Not this one yet").
package verifier

import (
	"errors"

	"github.com/robalobadob/vine-riddle/internal/match"
)

// Outcome is the verifier state for one glyph.
type Outcome string

const (
	OutcomeIdle    Outcome = "idle"
	OutcomeEmpty   Outcome = "empty"
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
)

// Label is the status text announced for o.
func (o Outcome) Label() string {
	switch o {
	case OutcomeEmpty:
		return "Add a guess first"
	case OutcomeCorrect:
		return "Correct"
	case OutcomeWrong:
		return "Not this one yet"
	default:
		return "Unverified"
	}
}

// ErrUnknownGlyph is returned when a glyph has no lexicon entry.
var ErrUnknownGlyph = errors.New("unknown glyph")

// Result is the outcome of one check.
type Result struct {
	Glyph   string  `json:"glyph"`
	Guess   string  `json:"guess"` // raw text as submitted
	Outcome Outcome `json:"outcome"`
	Label   string  `json:"label"`
}

// Accepted reports whether the guess was correct.
func (r Result) Accepted() bool { return r.Outcome == OutcomeCorrect }

// Lexicon resolves the accepted answers for a glyph.
type Lexicon interface {
	Answers(glyph string) ([]string, bool)
}

// Verifier checks guesses against a lexicon.
type Verifier struct {
	lexicon Lexicon
	matcher *match.Matcher
}

// New constructs a Verifier.
func New(lexicon Lexicon, matcher *match.Matcher) *Verifier {
	return &Verifier{lexicon: lexicon, matcher: matcher}
}

// Check evaluates raw as a guess for glyph.
func (v *Verifier) Check(glyph, raw string) (Result, error) {
	answers, ok := v.lexicon.Answers(glyph)
	if !ok {
		return Result{}, ErrUnknownGlyph
	}
	var out Outcome
	switch v.matcher.Check(raw, answers) {
	case match.VerdictEmpty:
		out = OutcomeEmpty
	case match.VerdictAccepted:
		out = OutcomeCorrect
	default:
		out = OutcomeWrong
	}
	return Result{Glyph: glyph, Guess: raw, Outcome: out, Label: out.Label()}, nil
}
