package pipeline

import "errors"

// Sentinel errors for pipeline configuration.
var (
	// ErrUnknownMode is returned by ParseMode for an unrecognized mode.
	ErrUnknownMode = errors.New("pipeline: unknown mode")

	// ErrNilPresenter is returned when a Session is created without a presenter.
	ErrNilPresenter = errors.New("pipeline: presenter is nil")

	// ErrNilPipeline is returned when a Session is created without a pipeline.
	ErrNilPipeline = errors.New("pipeline: pipeline is nil")
)
