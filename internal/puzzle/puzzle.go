// internal/puzzle/puzzle.go
//
// Puzzle content management.
//
// Responsibilities:
//   - Load the clue list, final sentence, verifier lexicon, alias table and
//     per-word glyph tables from YAML.
//   - Fall back to the copy embedded in the binary when no file is configured.
//   - Validate the content once at load so renderers can trust it.
//
// Environment variables:
//   PUZZLE_FILE=/path/to/puzzle.yaml
//
// Content is immutable after loading and safe to share between requests.

package puzzle

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/vine-riddle/assets"
	"github.com/robalobadob/vine-riddle/internal/glyph"
	"github.com/robalobadob/vine-riddle/internal/match"
)

// ErrInvalidPuzzle wraps every validation failure.
var ErrInvalidPuzzle = errors.New("puzzle: invalid content")

// Clue is one picture clue and the words of its vine sentence.
type Clue struct {
	ID       string   `yaml:"id" json:"id"`
	Filename string   `yaml:"filename" json:"filename"` // image base name, no extension
	Words    []string `yaml:"words" json:"words"`
}

// Entry is one row of the verifier: a glyph and its accepted spellings.
type Entry struct {
	Glyph   string   `yaml:"glyph" json:"glyph"`
	Answers []string `yaml:"answers" json:"answers"`
}

// Puzzle is the full static content of the page.
type Puzzle struct {
	Title   string                         `yaml:"title"`
	Mode    match.Mode                     `yaml:"mode"`
	Clues   []Clue                         `yaml:"clues"`
	Final   []string                       `yaml:"final"`
	Lexicon []Entry                        `yaml:"lexicon"`
	Aliases match.Aliases                  `yaml:"aliases"`
	Trees   map[string]glyph.Signature     `yaml:"trees"`
	Lengths map[string]glyph.LengthProfile `yaml:"lengths"`
}

// Parse decodes and validates a YAML puzzle definition.
func Parse(data []byte) (*Puzzle, error) {
	var p Puzzle
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode puzzle: %w", err)
	}
	if p.Title == "" {
		p.Title = "Vine Riddle"
	}
	mode, err := match.ParseMode(string(p.Mode))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}
	p.Mode = mode
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses the puzzle at path.
func Load(path string) (*Puzzle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(b)
}

var (
	defaultOnce sync.Once
	defaultP    *Puzzle
	defaultErr  error
)

// Default returns the embedded puzzle, parsed once.
func Default() (*Puzzle, error) {
	defaultOnce.Do(func() {
		b, err := assets.Puzzle()
		if err != nil {
			defaultErr = err
			return
		}
		defaultP, defaultErr = Parse(b)
	})
	return defaultP, defaultErr
}

// FromEnv loads PUZZLE_FILE when set, otherwise the embedded default.
func FromEnv() (*Puzzle, error) {
	if path := os.Getenv("PUZZLE_FILE"); path != "" {
		return Load(path)
	}
	return Default()
}

// Validate checks structural invariants of the content.
func (p *Puzzle) Validate() error {
	seen := make(map[string]struct{}, len(p.Clues))
	for i, c := range p.Clues {
		if c.ID == "" {
			return fmt.Errorf("%w: clue %d has no id", ErrInvalidPuzzle, i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate clue id %q", ErrInvalidPuzzle, c.ID)
		}
		seen[c.ID] = struct{}{}
		if len(c.Words) == 0 {
			return fmt.Errorf("%w: clue %q has no words", ErrInvalidPuzzle, c.ID)
		}
	}

	glyphs := make(map[string]struct{}, len(p.Lexicon))
	for _, e := range p.Lexicon {
		if e.Glyph == "" {
			return fmt.Errorf("%w: lexicon entry without glyph", ErrInvalidPuzzle)
		}
		if _, dup := glyphs[e.Glyph]; dup {
			return fmt.Errorf("%w: duplicate lexicon glyph %q", ErrInvalidPuzzle, e.Glyph)
		}
		glyphs[e.Glyph] = struct{}{}
		if len(e.Answers) == 0 {
			return fmt.Errorf("%w: glyph %q has no answers", ErrInvalidPuzzle, e.Glyph)
		}
	}

	for word, sig := range p.Trees {
		if err := validateSignature(sig); err != nil {
			return fmt.Errorf("%w: tree %q: %v", ErrInvalidPuzzle, word, err)
		}
	}
	for word, profile := range p.Lengths {
		for path, l := range profile {
			if !isPath(path) || path == "" {
				return fmt.Errorf("%w: lengths %q: bad path %q", ErrInvalidPuzzle, word, path)
			}
			if l <= 0 {
				return fmt.Errorf("%w: lengths %q: %s must be positive", ErrInvalidPuzzle, word, path)
			}
		}
	}
	return nil
}

// validateSignature rejects paths outside {L,R}, deeper than the layout
// expands, or whose parent is missing.
func validateSignature(sig glyph.Signature) error {
	set := make(map[string]struct{}, len(sig)+1)
	set[""] = struct{}{}
	for _, p := range sig {
		p = strings.ToUpper(p)
		if !isPath(p) {
			return fmt.Errorf("bad path %q", p)
		}
		if len(p) > glyph.MaxDepth {
			return fmt.Errorf("path %q deeper than %d", p, glyph.MaxDepth)
		}
		set[p] = struct{}{}
	}
	for p := range set {
		if p == "" {
			continue
		}
		if _, ok := set[p[:len(p)-1]]; !ok {
			return fmt.Errorf("path %q has no parent", p)
		}
	}
	return nil
}

func isPath(s string) bool {
	for _, r := range strings.ToUpper(s) {
		if r != 'L' && r != 'R' {
			return false
		}
	}
	return true
}

// Tables returns the glyph lookup tables.
func (p *Puzzle) Tables() glyph.Tables {
	return glyph.Tables{Trees: p.Trees, Lengths: p.Lengths}
}

// Matcher builds a guess matcher for this puzzle's mode and aliases.
func (p *Puzzle) Matcher() *match.Matcher {
	return match.New(p.Mode, p.Aliases)
}

// Answers returns the accepted spellings for glyph.
func (p *Puzzle) Answers(g string) ([]string, bool) {
	for _, e := range p.Lexicon {
		if e.Glyph == g {
			return e.Answers, true
		}
	}
	return nil, false
}

// Clue looks up a clue by id.
func (p *Puzzle) Clue(id string) (Clue, bool) {
	for _, c := range p.Clues {
		if c.ID == id {
			return c, true
		}
	}
	return Clue{}, false
}
