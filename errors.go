package gosieray

import "errors"

var (
	ErrInvalidMaterialIndex = errors.New("material index out of range")
	ErrInvalidMesh          = errors.New("invalid triangle mesh")
	ErrDegenerateTriangle   = errors.New("degenerate triangle")
	ErrInvalidPrimitive     = errors.New("invalid primitive")
	ErrNoCamera             = errors.New("scene has no camera")
)
