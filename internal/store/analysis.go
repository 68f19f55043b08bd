package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"posture-backend-go/internal/models"
)

type AnalysisStore interface {
	Create(result models.AnalysisResult) (models.AnalysisResult, error)
	GetByID(id string) (models.AnalysisResult, error)
	List(filter AnalysisFilter) ([]models.AnalysisResult, int, error)
}

type AnalysisFilter struct {
	ReadingID string
	DeviceID  string
	Page      int
	Limit     int
}

type analysisStore struct {
	db *sqlx.DB
}

const analysisColumns = `id, id_device, id_reading, analysis_type, result_value, result_unit, result_status, comments, analyzed_at, created_at`

func (s *analysisStore) Create(result models.AnalysisResult) (models.AnalysisResult, error) {
	now := time.Now().UTC()
	result.ID = uuid.NewString()
	if result.AnalyzedAt.IsZero() {
		result.AnalyzedAt = now
	}
	result.CreatedAt = now
	_, err := s.db.Exec(`
INSERT INTO analysis_results (id, id_device, id_reading, analysis_type, result_value, result_unit, result_status, comments, analyzed_at, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, result.ID, result.DeviceID, result.ReadingID, result.AnalysisType, result.ResultValue,
		result.ResultUnit, result.ResultStatus, result.Comments, result.AnalyzedAt, now)
	if err != nil {
		return models.AnalysisResult{}, translate(err)
	}
	return result, nil
}

func (s *analysisStore) GetByID(id string) (models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := s.db.Get(&result, `SELECT `+analysisColumns+` FROM analysis_results WHERE id = $1`, id)
	return result, translate(err)
}

func (s *analysisStore) List(filter AnalysisFilter) ([]models.AnalysisResult, int, error) {
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
	if filter.ReadingID != "" {
		addClause("id_reading = $%d", filter.ReadingID)
	}
	if filter.DeviceID != "" {
		addClause("id_device = $%d", filter.DeviceID)
	}
	var total int
	if err := s.db.Get(&total, `SELECT count(*) FROM analysis_results `+where, args...); err != nil {
		return nil, 0, translate(err)
	}
	offset := (filter.Page - 1) * filter.Limit
	results := []models.AnalysisResult{}
	query := `SELECT ` + analysisColumns + ` FROM analysis_results ` + where +
		` ORDER BY analyzed_at DESC LIMIT $%d OFFSET $%d`
	args = append(args, filter.Limit, offset)
	query = fmt.Sprintf(query, len(args)-1, len(args))
	err := s.db.Select(&results, query, args...)
	return results, total, translate(err)
}
