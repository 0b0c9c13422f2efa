// internal/store/memory.go
//
// In-memory implementation of Store.
// Characteristics:
//   - Records keyed by visitor and glyph in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"sync"
)

type recordKey struct{ visitor, glyph string }

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex              // guards records
	records map[recordKey]GuessRecord // keyed by visitor and glyph
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[recordKey]GuessRecord)}
}

func (m *memory) Save(ctx context.Context, r GuessRecord) (GuessRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := recordKey{r.VisitorID, r.Glyph}
	prev := m.records[k]
	r.Attempts = prev.Attempts
	if r.Outcome != OutcomeEmpty {
		r.Attempts++
	}
	r.Solved = prev.Solved || r.Outcome == OutcomeCorrect
	r.UpdatedAt = now()
	m.records[k] = r
	return r, nil
}

func (m *memory) Get(ctx context.Context, visitorID, glyph string) (GuessRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.records[recordKey{visitorID, glyph}]; ok {
		return r, nil
	}
	return GuessRecord{}, ErrNotFound
}

func (m *memory) ListVisitor(ctx context.Context, visitorID string) ([]GuessRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []GuessRecord{}
	for k, r := range m.records {
		if k.visitor == visitorID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Glyph < out[j].Glyph })
	return out, nil
}

func (m *memory) All(ctx context.Context) ([]GuessRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]GuessRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VisitorID != out[j].VisitorID {
			return out[i].VisitorID < out[j].VisitorID
		}
		return out[i].Glyph < out[j].Glyph
	})
	return out, nil
}

func (m *memory) Stats(ctx context.Context) ([]GlyphStats, error) {
	m.mu.RLock()
	byGlyph := make(map[string]*GlyphStats)
	for _, r := range m.records {
		s, ok := byGlyph[r.Glyph]
		if !ok {
			s = &GlyphStats{Glyph: r.Glyph}
			byGlyph[r.Glyph] = s
		}
		s.Visitors++
		s.Attempts += r.Attempts
		if r.Solved {
			s.Solved++
		}
	}
	m.mu.RUnlock()

	out := make([]GlyphStats, 0, len(byGlyph))
	for _, s := range byGlyph {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Glyph < out[j].Glyph })
	return out, nil
}

func (m *memory) Close() error { return nil }
