package domain

import "errors"

// ============================================================================
// Acquisition Errors
// ============================================================================

var (
	ErrLocalRead         = errors.New("failed to load local model file")
	ErrDownload          = errors.New("failed to download model from URL")
	ErrRemoteDeserialize = errors.New("downloaded model but failed to deserialize it")
)

// ============================================================================
// Inference Errors
// ============================================================================

var (
	ErrModelUnavailable  = errors.New("model not available")
	ErrInvalidInput      = errors.New("inputs are required")
	ErrMissingFeature    = errors.New("missing input feature")
	ErrInvalidModel      = errors.New("invalid model artifact")
	ErrUnsupportedFormat = errors.New("unsupported model format")
	ErrUnsupportedLink   = errors.New("unsupported link function")
)
