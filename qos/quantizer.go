package qos

import "fmt"

// Quantizer converts byte quantities into whole ASIC memory cells.
type Quantizer struct {
	CellSize int64 // bytes per cell (must be > 0)
}

// NewQuantizer returns a Quantizer for the given cell size.
func NewQuantizer(cellSize int64) (Quantizer, error) {
	if cellSize <= 0 {
		return Quantizer{}, fmt.Errorf("cell size must be > 0, got %d: %w", cellSize, ErrInvalidSize)
	}
	return Quantizer{CellSize: cellSize}, nil
}

// BytesToCells returns ceil(n / CellSize). A partially used cell is a used cell.
func (q Quantizer) BytesToCells(n int64) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("bytes_to_cells(%d): %w", n, ErrInvalidSize)
	}
	return (n + q.CellSize - 1) / q.CellSize, nil
}
