package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"posture-backend-go/internal/models"
)

type ReadingStore interface {
	Create(reading models.PostureReading) (models.PostureReading, error)
	GetByID(id string) (models.PostureReading, error)
	List(filter ReadingFilter) ([]models.PostureReading, int, error)
	NewestForDevices(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error)
}

// ReadingFilter scopes a reading listing. Page/Limit paginate; From/To bound
// recorded_at inclusively.
type ReadingFilter struct {
	DeviceID string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

type readingStore struct {
	db *sqlx.DB
}

const readingColumns = `id, id_device, tilt_deg, velocity_m_s, recorded_at, uploaded, uploaded_at, created_at`

func (s *readingStore) Create(reading models.PostureReading) (models.PostureReading, error) {
	now := time.Now().UTC()
	reading.ID = uuid.NewString()
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = now
	}
	reading.CreatedAt = now
	_, err := s.db.Exec(`
INSERT INTO posture_readings (id, id_device, tilt_deg, velocity_m_s, recorded_at, uploaded, uploaded_at, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, reading.ID, reading.DeviceID, reading.TiltDeg, reading.VelocityMS, reading.RecordedAt,
		reading.Uploaded, reading.UploadedAt, now)
	if err != nil {
		return models.PostureReading{}, translate(err)
	}
	return reading, nil
}

func (s *readingStore) GetByID(id string) (models.PostureReading, error) {
	var reading models.PostureReading
	err := s.db.Get(&reading, `SELECT `+readingColumns+` FROM posture_readings WHERE id = $1`, id)
	return reading, translate(err)
}

func (s *readingStore) List(filter ReadingFilter) ([]models.PostureReading, int, error) {
	where := ""
	args := []interface{}{}
	addClause := func(clause string, value interface{}) {
		args = append(args, value)
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, len(args))
	}
	if filter.DeviceID != "" {
		addClause("id_device = $%d", filter.DeviceID)
	}
	if filter.From != nil {
		addClause("recorded_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		addClause("recorded_at <= $%d", *filter.To)
	}
	var total int
	if err := s.db.Get(&total, `SELECT count(*) FROM posture_readings `+where, args...); err != nil {
		return nil, 0, translate(err)
	}
	offset := (filter.Page - 1) * filter.Limit
	readings := []models.PostureReading{}
	query := `SELECT ` + readingColumns + ` FROM posture_readings ` + where +
		` ORDER BY recorded_at DESC LIMIT $%d OFFSET $%d`
	args = append(args, filter.Limit, offset)
	query = fmt.Sprintf(query, len(args)-1, len(args))
	err := s.db.Select(&readings, query, args...)
	return readings, total, translate(err)
}

// NewestForDevices fetches the most recent readings across the whole fleet,
// not per device; the caller's limit is the total row cap.
func (s *readingStore) NewestForDevices(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error) {
	if len(deviceIDs) == 0 {
		return []models.PostureReading{}, nil
	}
	query := `SELECT ` + readingColumns + ` FROM posture_readings WHERE id_device IN (?)`
	args := []interface{}{deviceIDs}
	if since != nil {
		query += ` AND recorded_at >= ?`
		args = append(args, *since)
	}
	query += ` ORDER BY recorded_at DESC LIMIT ?`
	args = append(args, limit)
	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	readings := []models.PostureReading{}
	err = s.db.Select(&readings, s.db.Rebind(query), expanded...)
	return readings, translate(err)
}
