package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Row int
	Col int
}

func TestUnmarshalJson(t *testing.T) {
	t.Run("typed payload", func(t *testing.T) {
		v, err := UnmarshalJson[point](point{Row: 1, Col: 2})
		require.NoError(t, err)
		assert.Equal(t, point{Row: 1, Col: 2}, v)
	})
	t.Run("generic map", func(t *testing.T) {
		v, err := UnmarshalJson[point](map[string]any{"Row": 3.0, "Col": 4.0})
		require.NoError(t, err)
		assert.Equal(t, point{Row: 3, Col: 4}, v)
	})
	t.Run("nil payload", func(t *testing.T) {
		_, err := UnmarshalJson[point](nil)
		assert.ErrorIs(t, err, ErrNilPayload)
	})
	t.Run("mismatched payload", func(t *testing.T) {
		_, err := UnmarshalJson[point]("B7")
		assert.Error(t, err)
	})
}

func TestMarshalJson(t *testing.T) {
	data, err := MarshalJson(point{Row: 1, Col: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Row":1,"Col":2}`, string(data))

	_, err = MarshalJson(make(chan int))
	assert.Error(t, err)
}
