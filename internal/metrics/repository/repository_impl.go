package repository

import (
	"context"

	metricsdomain "github.com/fortuna-labs/fortuna/internal/metrics/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() metricsdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *metricsdomain.MetricEventRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO metrics (event, event_time, metadata, user_id)
		 VALUES (?, ?, ?, ?)`,
		record.Event,
		record.EventTime,
		record.Metadata,
		record.UserID,
	).Error
}
