package services

import (
	"time"

	"posture-backend-go/internal/store"
)

const (
	DefaultTiltLimit = 100
	MaxTiltLimit     = 1000
)

// TiltAverageResult reports the arithmetic mean of tilt over the fetched set,
// the number of readings used, and the recorded-at bounds of that set.
// AverageTilt is null when no readings were fetched.
type TiltAverageResult struct {
	AverageTilt *float64   `json:"average_tilt"`
	Count       int        `json:"count"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
}

func ClampTiltLimit(limit int) int {
	if limit <= 0 {
		return DefaultTiltLimit
	}
	if limit > MaxTiltLimit {
		return MaxTiltLimit
	}
	return limit
}

// TiltAverage averages tilt over the newest `limit` readings across the
// user's whole fleet (not per device), optionally bounded to the trailing
// `hours` window. A reading with no tilt value counts as zero in the sum and
// still counts toward the divisor.
func TiltAverage(st store.Stores, userID string, limit int, hours *int) (TiltAverageResult, error) {
	limit = ClampTiltLimit(limit)
	deviceIDs, err := st.Devices.IDsByUser(userID)
	if err != nil {
		return TiltAverageResult{}, err
	}
	if len(deviceIDs) == 0 {
		return TiltAverageResult{Count: 0}, nil
	}
	var since *time.Time
	if hours != nil && *hours > 0 {
		cutoff := time.Now().UTC().Add(-time.Duration(*hours) * time.Hour)
		since = &cutoff
	}
	readings, err := st.Readings.NewestForDevices(deviceIDs, since, limit)
	if err != nil {
		return TiltAverageResult{}, err
	}
	count := len(readings)
	if count == 0 {
		return TiltAverageResult{Count: 0}, nil
	}
	sum := 0.0
	for _, reading := range readings {
		if reading.TiltDeg != nil {
			sum += *reading.TiltDeg
		}
	}
	average := sum / float64(count)
	// Readings arrive newest first.
	latest := readings[0].RecordedAt
	earliest := readings[count-1].RecordedAt
	return TiltAverageResult{
		AverageTilt: &average,
		Count:       count,
		From:        &earliest,
		To:          &latest,
	}, nil
}
