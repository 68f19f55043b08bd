package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestMetricsOldestFirst(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	newest := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{
		"captured_at", "heap_used_bytes", "system_memory_total_bytes", "system_memory_used_bytes",
		"disk_total_bytes", "disk_used_bytes", "process_cpu_load", "system_cpu_load",
	}
	mock.ExpectQuery(`SELECT (.+) FROM server_metric_samples ORDER BY captured_at DESC`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(newest, 100, 0, 0, 0, 0, 0.1, 0.2).
			AddRow(newest.Add(-time.Minute), 90, 0, 0, 0, 0, 0.1, 0.2))

	samples, err := LatestMetrics(db, 2)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, newest.Add(-time.Minute), samples[0].CapturedAt)
	assert.Equal(t, newest, samples[1].CapturedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetricsHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewMetricsHub()
	// No Run loop draining; the buffered channel fills and further sends drop.
	for i := 0; i < 100; i++ {
		hub.Broadcast(MetricSample{CapturedAt: time.Now()})
	}
}
