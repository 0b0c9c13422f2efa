package verifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/robalobadob/vine-riddle/internal/match"
	"github.com/robalobadob/vine-riddle/internal/puzzle"
	"github.com/robalobadob/vine-riddle/internal/verifier"
)

type VerifierSuite struct {
	suite.Suite
	v *verifier.Verifier
}

func (s *VerifierSuite) SetupTest() {
	p, err := puzzle.Default()
	require.NoError(s.T(), err)
	s.v = verifier.New(p, p.Matcher())
}

func (s *VerifierSuite) check(glyph, guess string) verifier.Result {
	res, err := s.v.Check(glyph, guess)
	require.NoError(s.T(), err)
	return res
}

func (s *VerifierSuite) TestCorrect() {
	res := s.check("watch", "  Wach ")
	s.Equal(verifier.OutcomeCorrect, res.Outcome)
	s.Equal("Correct", res.Label)
	s.Equal("  Wach ", res.Guess)
	s.True(res.Accepted())
}

func (s *VerifierSuite) TestWrong() {
	res := s.check("watch", "xyz")
	s.Equal(verifier.OutcomeWrong, res.Outcome)
	s.Equal("Not this one yet", res.Label)
	s.False(res.Accepted())
}

func (s *VerifierSuite) TestEmpty() {
	res := s.check("tv", "   ")
	s.Equal(verifier.OutcomeEmpty, res.Outcome)
	s.Equal("Add a guess first", res.Label)
}

func (s *VerifierSuite) TestAliases() {
	s.Equal(verifier.OutcomeCorrect, s.check("chris", "Christopher").Outcome)
	s.Equal(verifier.OutcomeCorrect, s.check("gift", "presents").Outcome)
	s.Equal(verifier.OutcomeCorrect, s.check("table", "desk").Outcome)
}

func (s *VerifierSuite) TestUnknownGlyph() {
	_, err := s.v.Check("zebra", "zebra")
	s.ErrorIs(err, verifier.ErrUnknownGlyph)
}

func (s *VerifierSuite) TestStrictMode() {
	p, err := puzzle.Default()
	s.Require().NoError(err)
	strict := verifier.New(p, match.New(match.ModeStrict, p.Aliases))

	res, err := strict.Check("watch", "wach")
	s.Require().NoError(err)
	s.Equal(verifier.OutcomeWrong, res.Outcome)
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierSuite))
}

func TestOutcomeLabel(t *testing.T) {
	require.Equal(t, "Unverified", verifier.OutcomeIdle.Label())
}
