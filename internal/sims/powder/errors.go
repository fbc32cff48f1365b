package powder

import "errors"

var (
	// ErrOutOfBounds reports a cell outside the grid.
	ErrOutOfBounds = errors.New("powder: cell out of bounds")
	// ErrCellOccupied reports a creation target that already holds an element.
	ErrCellOccupied = errors.New("powder: cell occupied")
	// ErrInvalidMaterial reports an unknown or malformed material.
	ErrInvalidMaterial = errors.New("powder: invalid material")
)
