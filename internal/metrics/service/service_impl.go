package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	metricsdomain "github.com/fortuna-labs/fortuna/internal/metrics/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo metricsdomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo metricsdomain.Repository
}

func New(p Params) metricsdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("metrics.service"),
		repo: p.Repo,
	}
}

// Record serializes the event metadata and persists one row. Every call
// produces a new row; no dedup is attempted.
func (s *Service) Record(ctx context.Context, event metricsdomain.MetricEvent) error {
	if !event.Event.Valid() {
		return metricsdomain.ErrInvalidEvent
	}
	if event.EventMetadata == nil {
		return metricsdomain.ErrMissingMetadata
	}

	metadata, err := json.Marshal(event.EventMetadata)
	if err != nil {
		return fmt.Errorf("%w: %v", metricsdomain.ErrMetadataSerialization, err)
	}

	record := &metricsdomain.MetricEventRecord{
		Event:     string(event.Event),
		EventTime: time.Now().UTC(),
		Metadata:  metadata,
		UserID:    event.UserID,
	}

	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return err
	}

	s.log.Debug("metric event recorded",
		zap.String("event", record.Event),
		zap.Int("metadata_bytes", len(metadata)),
	)
	return nil
}
