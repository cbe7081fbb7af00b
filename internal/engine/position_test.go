package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialLayout(t *testing.T) {
	p := NewPosition()
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sq := p.Get(r, c)
			switch {
			case (r+c)%2 != 0:
				assert.True(t, sq.IsEmpty(), "(%d,%d) should be empty", r, c)
			case r < 3:
				assert.Equal(t, Occupied(Dark, Man), sq, "(%d,%d)", r, c)
			case r > 4:
				assert.Equal(t, Occupied(Light, Man), sq, "(%d,%d)", r, c)
			default:
				assert.True(t, sq.IsEmpty(), "(%d,%d) should be empty", r, c)
			}
		}
	}
	assert.Equal(t, 12, p.Count(Dark))
	assert.Equal(t, 12, p.Count(Light))
}

func TestInitializeIsIdempotent(t *testing.T) {
	p := NewPosition()
	p.Set(3, 3, Occupied(Light, King))
	p.Set(0, 0, Empty())

	p.Initialize()
	p.Initialize()

	require.Equal(t, NewPosition().String(), p.String())
}

func TestGetReturnsWhatWasSet(t *testing.T) {
	p := NewPosition()
	cases := []Square{Empty(), Occupied(Dark, Man), Occupied(Dark, King), Occupied(Light, Man), Occupied(Light, King)}
	for _, sq := range cases {
		p.Set(4, 2, sq)
		assert.Equal(t, sq, p.Get(4, 2))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPosition()
	cp := p.Clone()
	cp.Set(2, 0, Empty())

	assert.True(t, p.Get(2, 0).IsSide(Dark))
	assert.True(t, cp.Get(2, 0).IsEmpty())
}

func TestSideHelpers(t *testing.T) {
	assert.Equal(t, Light, Dark.Opponent())
	assert.Equal(t, Dark, Light.Opponent())
	assert.Equal(t, 1, Dark.Forward())
	assert.Equal(t, -1, Light.Forward())
	assert.Equal(t, 7, Dark.PromotionRow())
	assert.Equal(t, 0, Light.PromotionRow())
	assert.Equal(t, "dark", Dark.String())
	assert.Equal(t, "light", Light.String())
}

func TestSquareNumber(t *testing.T) {
	assert.Equal(t, 1, SquareNumber(0, 0))
	assert.Equal(t, 4, SquareNumber(0, 6))
	assert.Equal(t, 5, SquareNumber(1, 1))
	assert.Equal(t, 32, SquareNumber(7, 7))
	assert.Equal(t, 0, SquareNumber(0, 1))
	assert.Equal(t, 0, SquareNumber(8, 0))

	assert.Equal(t, "10-14", NewMove(2, 2, 3, 3).Notation())
	assert.Equal(t, "10x19", NewMove(2, 2, 4, 4).Notation())
}
