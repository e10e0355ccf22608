package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShip(t *testing.T) {
	ship, err := NewShip(3)
	require.NoError(t, err)
	assert.Equal(t, 3, ship.Length())
	assert.Equal(t, 0, ship.HitsTaken())
	assert.Equal(t, Horizontal, ship.Orientation())
	assert.False(t, ship.IsSunk())

	for _, length := range []int{0, -2} {
		_, err := NewShip(length)
		assert.ErrorIs(t, err, ErrInvalidShipLength)
	}
}

func TestShipSinksAfterLengthHits(t *testing.T) {
	ship, err := NewShip(2)
	require.NoError(t, err)

	ship.Hit()
	assert.False(t, ship.IsSunk())
	ship.Hit()
	assert.True(t, ship.IsSunk())
	assert.True(t, ship.IsSunk(), "sunk must stay latched")

	ship.Hit()
	assert.Equal(t, 2, ship.HitsTaken(), "hits never exceed length")
	assert.True(t, ship.IsSunk())
}

func TestShipRotate(t *testing.T) {
	ship, err := NewShip(4)
	require.NoError(t, err)

	ship.Rotate()
	assert.Equal(t, Vertical, ship.Orientation())
	ship.Rotate()
	assert.Equal(t, Horizontal, ship.Orientation())
}
