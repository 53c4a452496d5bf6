package core

import "github.com/pkg/errors"

// Sentinel errors shared by the renderer packages, match with errors.Is
var (
	// ErrOutOfBounds is a coordinate outside the buffer or viewport extent
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrWorkerFailure is a render worker that terminated abnormally
	ErrWorkerFailure = errors.New("render worker failure")

	// ErrIncompleteFrame is a present attempt while cells remain unrendered
	ErrIncompleteFrame = errors.New("incomplete frame")
)
