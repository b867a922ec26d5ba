package domain

import (
	"context"
	"errors"
)

type Service interface {
	Record(ctx context.Context, event MetricEvent) error
}

var (
	ErrInvalidEvent          = errors.New("invalid_event")
	ErrMissingMetadata       = errors.New("missing_event_metadata")
	ErrMetadataSerialization = errors.New("failed to serialize metric event metadata")
)
