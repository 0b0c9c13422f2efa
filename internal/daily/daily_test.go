package daily_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vine-riddle/internal/daily"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-03-01", daily.DateKey(ts))
}

func TestIndex(t *testing.T) {
	day := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	i := daily.Index(day, "salt", 5)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 5)

	// Stable within a day, independent of time of day.
	assert.Equal(t, i, daily.Index(day.Add(-11*time.Hour), "salt", 5))
	assert.Equal(t, 0, daily.Index(day, "salt", 0))
}

func TestIndex_SaltChangesSequence(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	same := true
	for d := 0; d < 30; d++ {
		day := start.AddDate(0, 0, d)
		if daily.Index(day, "a", 1000) != daily.Index(day, "b", 1000) {
			same = false
			break
		}
	}
	assert.False(t, same)
}

func TestPick(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	ids := []string{"01", "02", "03"}
	f, ok := daily.Pick(day, "salt", ids)
	require.True(t, ok)
	assert.Equal(t, "2026-10-19", f.Date)
	assert.Equal(t, ids[f.Index], f.ID)

	_, ok = daily.Pick(day, "salt", nil)
	assert.False(t, ok)
}
