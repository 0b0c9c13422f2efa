package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vine-riddle/internal/match"
)

func fuzzy() *match.Matcher { return match.New(match.ModeFuzzy, match.DefaultAliases) }

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Watch  ":           "watch",
		"Hello, World!":       "hello world",
		"what?!":              "what",
		"under \t the\n desk": "under the desk",
		"a . b":               "a b",
		"":                    "",
		"   ":                 "",
		"...":                 "",
		"TÉLÉ":                "télé",
	}
	for in, want := range cases {
		assert.Equal(t, want, match.Normalize(in), "Normalize(%q)", in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range []string{"  Christopher!! ", "a  b   c", "Presents.", "tv", "x ? y"} {
		once := match.Normalize(s)
		assert.Equal(t, once, match.Normalize(once), s)
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, match.Distance("watch", "watch"))
	assert.Equal(t, 1, match.Distance("wach", "watch"))
	assert.Equal(t, 1, match.Distance("watch", "wach"))
	assert.Equal(t, 3, match.Distance("kitten", "sitting"))
	assert.Equal(t, 5, match.Distance("", "watch"))
	assert.Equal(t, 2, match.Distance("télé", "tele"))
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 1, match.Threshold("tv"))
	assert.Equal(t, 1, match.Threshold("watch"))
	assert.Equal(t, 1, match.Threshold("kimberly"))
	assert.Equal(t, 2, match.Threshold("christopher"))
	assert.Equal(t, 2, match.Threshold("television"))
}

func TestAccept_Reflexive(t *testing.T) {
	m := fuzzy()
	for _, a := range []string{"kimberly", "watch", "Beneath", "Television!", "gift", "present"} {
		assert.True(t, m.Accept(match.Normalize(a), []string{a}), a)
	}
}

func TestAccept_Aliases(t *testing.T) {
	m := fuzzy()
	assert.True(t, m.Accept("christopher", []string{"chris"}))
	assert.True(t, m.Accept("Christoph", []string{"chris"}))
	assert.True(t, m.Accept("gifts", []string{"gift"}))
	assert.True(t, m.Accept("presents", []string{"gift", "present"}))
	// Alias targets match too, not just alias sources.
	assert.True(t, m.Accept("chris", []string{"christopher"}))
}

func TestAccept_Thresholds(t *testing.T) {
	m := fuzzy()
	assert.True(t, m.Accept("wach", []string{"watch"}))
	assert.True(t, m.Accept("watchh", []string{"watch"}))
	assert.False(t, m.Accept("xyz", []string{"watch"}))
	assert.False(t, m.Accept("wtc", []string{"watch"}))

	// Long answers tolerate two edits; the larger threshold wins.
	assert.True(t, m.Accept("televisoin", []string{"television"}))
	assert.True(t, m.Accept("kimbrly", []string{"kimberly"}))
	assert.False(t, m.Accept("kmbrly", []string{"kimberly"}))
}

func TestAccept_Scenarios(t *testing.T) {
	m := fuzzy()
	assert.True(t, m.Accept("beneath", []string{"under", "beneath"}))
	assert.True(t, m.Accept("desk", []string{"table", "desk"}))
	assert.True(t, m.Accept("television", []string{"tv", "television"}))
	assert.True(t, m.Accept("  Makes! ", []string{"creates", "create", "makes", "make"}))
	assert.False(t, m.Accept("loves", []string{"hides", "hide"}))
}

func TestCheck_Empty(t *testing.T) {
	m := fuzzy()
	for _, raw := range []string{"", "   ", " ?! "} {
		assert.Equal(t, match.VerdictEmpty, m.Check(raw, []string{"watch"}), "%q", raw)
		assert.False(t, m.Accept(raw, []string{"watch"}))
	}
	assert.Equal(t, match.VerdictRejected, m.Check("xyz", []string{"watch"}))
	assert.Equal(t, match.VerdictAccepted, m.Check("watch", []string{"watch"}))
}

func TestStrictMode(t *testing.T) {
	m := match.New(match.ModeStrict, match.DefaultAliases)
	assert.True(t, m.Accept(" Watch! ", []string{"watch"}))
	assert.False(t, m.Accept("wach", []string{"watch"}))
	assert.False(t, m.Accept("christopher", []string{"chris"}))
	assert.Equal(t, match.VerdictEmpty, m.Check("  ", []string{"watch"}))
}

func TestNilAliases(t *testing.T) {
	m := match.New(match.ModeFuzzy, nil)
	assert.False(t, m.Accept("christopher", []string{"chris"}))
	assert.True(t, m.Accept("chriss", []string{"chris"}))
}

func TestParseMode(t *testing.T) {
	mode, err := match.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, match.ModeFuzzy, mode)

	mode, err = match.ParseMode(" STRICT ")
	require.NoError(t, err)
	assert.Equal(t, match.ModeStrict, mode)

	_, err = match.ParseMode("loose")
	require.ErrorIs(t, err, match.ErrUnknownMode)
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "empty", match.VerdictEmpty.String())
	assert.Equal(t, "rejected", match.VerdictRejected.String())
	assert.Equal(t, "accepted", match.VerdictAccepted.String())
}
