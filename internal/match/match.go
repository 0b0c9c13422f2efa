// internal/match/match.go
//
// Guess acceptance for the glyph verifier.
// Responsibilities:
//   - Normalize free-text guesses (case, punctuation, whitespace).
//   - Canonicalize common variants through a small alias table.
//   - Accept near misses within a length-dependent edit distance.
//
// Two modes are supported:
//   - strict: normalized guess must equal a normalized answer.
//   - fuzzy:  aliases plus bounded Levenshtein distance (the default).
package match

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mode selects how guesses are compared with answers.
type Mode string

const (
	ModeStrict Mode = "strict"
	ModeFuzzy  Mode = "fuzzy"
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("match: unknown mode")

// ParseMode maps a config string to a Mode. Empty means fuzzy.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFuzzy:
		return ModeFuzzy, nil
	case ModeStrict:
		return ModeStrict, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Verdict is the outcome of checking one guess.
type Verdict int

const (
	VerdictEmpty Verdict = iota // nothing left after normalization
	VerdictRejected
	VerdictAccepted
)

func (v Verdict) String() string {
	switch v {
	case VerdictEmpty:
		return "empty"
	case VerdictAccepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// Aliases maps a variant spelling to its canonical form.
type Aliases map[string]string

// DefaultAliases are the variants the lexicon is known to attract.
var DefaultAliases = Aliases{
	"christopher": "chris",
	"christoph":   "chris",
	"presents":    "present",
	"gifts":       "gift",
}

// Canonical returns the alias target for word, or word itself.
func (a Aliases) Canonical(word string) string {
	if c, ok := a[word]; ok {
		return c
	}
	return word
}

// Matcher decides whether a guess matches any of a set of answers.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	mode    Mode
	aliases Aliases
}

// New returns a Matcher. A nil alias table disables aliasing.
func New(mode Mode, aliases Aliases) *Matcher {
	if mode == "" {
		mode = ModeFuzzy
	}
	return &Matcher{mode: mode, aliases: aliases}
}

// Mode reports the comparison mode.
func (m *Matcher) Mode() Mode { return m.mode }

// Accept reports whether raw matches one of answers.
func (m *Matcher) Accept(raw string, answers []string) bool {
	return m.Check(raw, answers) == VerdictAccepted
}

// Check is Accept with the empty-guess case reported separately.
func (m *Matcher) Check(raw string, answers []string) Verdict {
	guess := Normalize(raw)
	if guess == "" {
		return VerdictEmpty
	}
	if m.mode == ModeStrict {
		for _, a := range answers {
			if Normalize(a) == guess {
				return VerdictAccepted
			}
		}
		return VerdictRejected
	}

	guess = m.aliases.Canonical(guess)
	canon := m.canonicalAnswers(answers)
	for _, a := range canon {
		if a == guess {
			return VerdictAccepted
		}
	}
	glen := utf8.RuneCountInString(guess)
	for _, a := range canon {
		limit := max(Threshold(a), Threshold(guess))
		alen := utf8.RuneCountInString(a)
		if abs(alen-glen) > limit {
			continue
		}
		if Distance(guess, a) <= limit {
			return VerdictAccepted
		}
	}
	return VerdictRejected
}

// canonicalAnswers normalizes and aliases answers, dropping duplicates
// while keeping first-seen order.
func (m *Matcher) canonicalAnswers(answers []string) []string {
	seen := make(map[string]struct{}, len(answers))
	out := make([]string, 0, len(answers))
	for _, a := range answers {
		c := m.aliases.Canonical(Normalize(a))
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Threshold is the edit distance tolerated for a word: 1 up to eight
// characters, 2 beyond.
func Threshold(word string) int {
	if utf8.RuneCountInString(word) <= 8 {
		return 1
	}
	return 2
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
