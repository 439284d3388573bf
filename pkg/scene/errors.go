package scene

import "errors"

var (
	// ErrConstruction: the scene or its worker pool could not be built.
	ErrConstruction = errors.New("scene: construction failed")
	// ErrSpawn: a band task could not be submitted. No pixel was written.
	ErrSpawn = errors.New("scene: task submission failed")
	// ErrRender: one or more band tasks failed before finishing.
	ErrRender = errors.New("scene: render failed")
	// ErrRenderInProgress: the frame buffer is lent to a running render.
	ErrRenderInProgress = errors.New("scene: render in progress")
	ErrInvalidParams    = errors.New("scene: invalid render parameters")
)
