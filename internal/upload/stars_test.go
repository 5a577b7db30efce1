package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarRating(t *testing.T) {
	var s StarRating
	assert.Equal(t, 0, s.Value())
	assert.Equal(t, "☆☆☆☆☆", s.String())

	require.NoError(t, s.Select(3))
	for i := 1; i <= 5; i++ {
		assert.Equal(t, i <= 3, s.Filled(i), "star %d", i)
	}
	assert.False(t, s.Filled(0))
	assert.Equal(t, "★★★☆☆", s.String())

	require.NoError(t, s.Select(1))
	assert.True(t, s.Filled(1))
	assert.False(t, s.Filled(2))

	s.Reset()
	assert.Equal(t, 0, s.Value())
	assert.False(t, s.Filled(1))
}

func TestStarRating_OutOfRange(t *testing.T) {
	var s StarRating
	require.NoError(t, s.Select(4))

	for _, n := range []int{0, 6, -1} {
		assert.Error(t, s.Select(n))
	}
	assert.Equal(t, 4, s.Value(), "invalid selection keeps the previous value")
}
