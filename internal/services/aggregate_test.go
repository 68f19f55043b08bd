package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posture-backend-go/internal/models"
	"posture-backend-go/internal/store/storetest"
)

func tiltReading(deviceID string, tilt *float64, recordedAt time.Time) models.PostureReading {
	return models.PostureReading{
		ID:         "read-" + recordedAt.Format("150405"),
		DeviceID:   deviceID,
		TiltDeg:    tilt,
		RecordedAt: recordedAt,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestClampTiltLimit(t *testing.T) {
	assert.Equal(t, DefaultTiltLimit, ClampTiltLimit(0))
	assert.Equal(t, DefaultTiltLimit, ClampTiltLimit(-5))
	assert.Equal(t, 250, ClampTiltLimit(250))
	assert.Equal(t, MaxTiltLimit, ClampTiltLimit(5000))
}

func TestTiltAverageNoDevices(t *testing.T) {
	st := storetest.New()
	var readingsQueried bool
	st.Readings.(*storetest.Readings).NewestForDevicesFn = func(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error) {
		readingsQueried = true
		return nil, nil
	}
	result, err := TiltAverage(st, "user-1", 0, nil)
	require.NoError(t, err)
	assert.Nil(t, result.AverageTilt)
	assert.Equal(t, 0, result.Count)
	assert.False(t, readingsQueried)
}

func TestTiltAverageNoReadings(t *testing.T) {
	st := storetest.New()
	st.Devices.(*storetest.Devices).IDsByUserFn = func(userID string) ([]string, error) {
		return []string{"dev-1"}, nil
	}
	result, err := TiltAverage(st, "user-1", 0, nil)
	require.NoError(t, err)
	assert.Nil(t, result.AverageTilt)
	assert.Equal(t, 0, result.Count)
	assert.Nil(t, result.From)
	assert.Nil(t, result.To)
}

func TestTiltAverageAcrossFleet(t *testing.T) {
	st := storetest.New()
	st.Devices.(*storetest.Devices).IDsByUserFn = func(userID string) ([]string, error) {
		return []string{"dev-1", "dev-2"}, nil
	}
	newest := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.Readings.(*storetest.Readings).NewestForDevicesFn = func(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error) {
		assert.Equal(t, []string{"dev-1", "dev-2"}, deviceIDs)
		assert.Equal(t, DefaultTiltLimit, limit)
		assert.Nil(t, since)
		return []models.PostureReading{
			tiltReading("dev-1", floatPtr(30), newest),
			tiltReading("dev-2", floatPtr(20), newest.Add(-time.Hour)),
			tiltReading("dev-1", floatPtr(10), newest.Add(-2*time.Hour)),
		}, nil
	}
	result, err := TiltAverage(st, "user-1", 0, nil)
	require.NoError(t, err)
	require.NotNil(t, result.AverageTilt)
	assert.InDelta(t, 20.0, *result.AverageTilt, 1e-9)
	assert.Equal(t, 3, result.Count)
	require.NotNil(t, result.From)
	require.NotNil(t, result.To)
	assert.Equal(t, newest.Add(-2*time.Hour), *result.From)
	assert.Equal(t, newest, *result.To)
}

func TestTiltAverageNilTiltCountsAsZero(t *testing.T) {
	st := storetest.New()
	st.Devices.(*storetest.Devices).IDsByUserFn = func(userID string) ([]string, error) {
		return []string{"dev-1"}, nil
	}
	now := time.Now().UTC()
	st.Readings.(*storetest.Readings).NewestForDevicesFn = func(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error) {
		return []models.PostureReading{
			tiltReading("dev-1", floatPtr(30), now),
			tiltReading("dev-1", nil, now.Add(-time.Minute)),
		}, nil
	}
	result, err := TiltAverage(st, "user-1", 0, nil)
	require.NoError(t, err)
	require.NotNil(t, result.AverageTilt)
	assert.InDelta(t, 15.0, *result.AverageTilt, 1e-9)
	assert.Equal(t, 2, result.Count)
}

func TestTiltAverageHoursWindow(t *testing.T) {
	st := storetest.New()
	st.Devices.(*storetest.Devices).IDsByUserFn = func(userID string) ([]string, error) {
		return []string{"dev-1"}, nil
	}
	var gotSince *time.Time
	st.Readings.(*storetest.Readings).NewestForDevicesFn = func(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error) {
		gotSince = since
		return nil, nil
	}
	hours := 6
	_, err := TiltAverage(st, "user-1", 0, &hours)
	require.NoError(t, err)
	require.NotNil(t, gotSince)
	assert.WithinDuration(t, time.Now().UTC().Add(-6*time.Hour), *gotSince, time.Minute)
}

func TestTiltAverageLimitClamped(t *testing.T) {
	st := storetest.New()
	st.Devices.(*storetest.Devices).IDsByUserFn = func(userID string) ([]string, error) {
		return []string{"dev-1"}, nil
	}
	var gotLimit int
	st.Readings.(*storetest.Readings).NewestForDevicesFn = func(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error) {
		gotLimit = limit
		return nil, nil
	}
	_, err := TiltAverage(st, "user-1", 9999, nil)
	require.NoError(t, err)
	assert.Equal(t, MaxTiltLimit, gotLimit)
}
