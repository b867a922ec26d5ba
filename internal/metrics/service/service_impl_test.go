package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	metricsdomain "github.com/fortuna-labs/fortuna/internal/metrics/domain"
	metricsrepo "github.com/fortuna-labs/fortuna/internal/metrics/repository"
	metricsservice "github.com/fortuna-labs/fortuna/internal/metrics/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event TEXT NOT NULL,
		event_time TIMESTAMP NOT NULL,
		metadata TEXT NOT NULL,
		user_id INTEGER
	)`).Error)

	return db
}

func newService(t *testing.T, db *gorm.DB) metricsdomain.Service {
	t.Helper()
	return metricsservice.New(metricsservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: metricsrepo.Provide(),
	})
}

type metricRow struct {
	Event    string
	Metadata string
	UserID   *int64
}

func TestRecordPersistsOneRow(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)

	userID := int64(123)
	err := svc.Record(context.Background(), metricsdomain.MetricEvent{
		Event:         metricsdomain.EventButtonClick,
		EventMetadata: map[string]any{"buttonId": "submit", "screen": "login"},
		UserID:        &userID,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(1) FROM metrics").Scan(&count).Error)
	require.EqualValues(t, 1, count)

	var row metricRow
	require.NoError(t, db.Raw("SELECT event, metadata, user_id FROM metrics LIMIT 1").Scan(&row).Error)
	require.Equal(t, "BUTTON_CLICK", row.Event)
	require.NotNil(t, row.UserID)
	require.EqualValues(t, 123, *row.UserID)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(row.Metadata), &parsed))
	require.Equal(t, map[string]any{"buttonId": "submit", "screen": "login"}, parsed)
	require.Contains(t, row.Metadata, "buttonId")
	require.Contains(t, row.Metadata, "submit")
	require.Contains(t, row.Metadata, "login")
}

func TestRecordKeepsUserIDUnsetWhenOmitted(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)

	err := svc.Record(context.Background(), metricsdomain.MetricEvent{
		Event:         metricsdomain.EventPageView,
		EventMetadata: map[string]any{"screen": "home"},
	})
	require.NoError(t, err)

	var row metricRow
	require.NoError(t, db.Raw("SELECT event, metadata, user_id FROM metrics LIMIT 1").Scan(&row).Error)
	require.Equal(t, "PAGE_VIEW", row.Event)
	require.Nil(t, row.UserID)
}

func TestRecordEachCallProducesNewRow(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)

	event := metricsdomain.MetricEvent{
		Event:         metricsdomain.EventButtonClick,
		EventMetadata: map[string]any{"buttonId": "submit"},
	}
	require.NoError(t, svc.Record(context.Background(), event))
	require.NoError(t, svc.Record(context.Background(), event))

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(1) FROM metrics").Scan(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestRecordSerializationFailureWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)

	err := svc.Record(context.Background(), metricsdomain.MetricEvent{
		Event:         metricsdomain.EventButtonClick,
		EventMetadata: map[string]any{"bad": func() {}},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, metricsdomain.ErrMetadataSerialization))

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(1) FROM metrics").Scan(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestRecordRejectsUnknownEvent(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)

	err := svc.Record(context.Background(), metricsdomain.MetricEvent{
		Event:         "LAUNCH_MISSILES",
		EventMetadata: map[string]any{},
	})
	require.ErrorIs(t, err, metricsdomain.ErrInvalidEvent)
}

func TestRecordRejectsMissingMetadata(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)

	err := svc.Record(context.Background(), metricsdomain.MetricEvent{
		Event: metricsdomain.EventButtonClick,
	})
	require.ErrorIs(t, err, metricsdomain.ErrMissingMetadata)
}
