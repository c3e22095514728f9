package observability

import "go.uber.org/zap"

// Field aliases keep callers from importing zap directly.
//
//nolint:gochecknoglobals // Re-exported constructors
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Float64  = zap.Float64
	Duration = zap.Duration
	Error    = zap.Error
	Any      = zap.Any
)
