package pathfind

import "errors"

var (
	// ErrInvalidDimension is returned when a grid is created with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("pathfind: invalid grid dimension")

	// ErrOutOfBounds is returned for any coordinate outside the grid.
	// Coordinates are never clamped.
	ErrOutOfBounds = errors.New("pathfind: coordinate out of bounds")

	// ErrEndpointWall is returned by a search configured with EndpointReject
	// when the start or goal cell is a wall.
	ErrEndpointWall = errors.New("pathfind: start or goal is a wall")
)
