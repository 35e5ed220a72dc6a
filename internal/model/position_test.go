package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PositionSuite struct {
	suite.Suite
}

func TestPositionSuite(t *testing.T) {
	suite.Run(t, new(PositionSuite))
}

func (s *PositionSuite) TestStep() {
	p := Position{X: 7, Y: 7}
	s.Equal(Position{X: 10, Y: 7}, p.Step(DirectionRight, 3))
	s.Equal(Position{X: 7, Y: 5}, p.Step(DirectionDown, -2))
}

func (s *PositionSuite) TestInBounds() {
	s.True(Position{X: 0, Y: 14}.InBounds())
	s.False(Position{X: 15, Y: 0}.InBounds())
	s.False(Position{X: 0, Y: -1}.InBounds())
}

func (s *PositionSuite) TestParseDirection() {
	for _, in := range []string{"right", "r", "R", "rIGHT", " Right "} {
		d, err := ParseDirection(in)
		s.Require().NoError(err)
		s.Equal(DirectionRight, d)
	}
	for _, in := range []string{"down", "d", "D", "DoWn"} {
		d, err := ParseDirection(in)
		s.Require().NoError(err)
		s.Equal(DirectionDown, d)
	}
	_, err := ParseDirection("diagonal")
	s.ErrorIs(err, ErrInvalidPlacement)
}

func (s *PositionSuite) TestPerpendicular() {
	s.Equal(DirectionDown, DirectionRight.Perpendicular())
	s.Equal(DirectionRight, DirectionDown.Perpendicular())
	s.False(Direction("up").Valid())
}
