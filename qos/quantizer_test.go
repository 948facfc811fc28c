package qos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToCells_RoundsUp(t *testing.T) {
	q, err := NewQuantizer(208)
	require.NoError(t, err)

	tests := []struct {
		bytes int64
		want  int64
	}{
		{0, 0},
		{1, 1},
		{207, 1},
		{208, 1},
		{209, 2},
		{16777216, 80660},
		{1048576, 5042},
	}
	for _, tc := range tests {
		got, err := q.BytesToCells(tc.bytes)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "bytes_to_cells(%d)", tc.bytes)
	}
}

func TestBytesToCells_NeverUndercounts(t *testing.T) {
	// For every cell size and byte count, cells*size covers the bytes and
	// one cell fewer does not.
	for _, size := range []int64{208, 256} {
		q, err := NewQuantizer(size)
		require.NoError(t, err)
		for b := int64(0); b <= 3*size+1; b++ {
			cells, err := q.BytesToCells(b)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, cells*size, b)
			if cells > 0 {
				assert.Less(t, (cells-1)*size, b)
			}
		}
	}
}

func TestBytesToCells_NegativeIsInvalid(t *testing.T) {
	q, err := NewQuantizer(256)
	require.NoError(t, err)

	_, err = q.BytesToCells(-1)
	assert.True(t, errors.Is(err, ErrInvalidSize), "got %v", err)
}

func TestNewQuantizer_RejectsNonPositiveCellSize(t *testing.T) {
	_, err := NewQuantizer(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
