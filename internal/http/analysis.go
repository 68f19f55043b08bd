package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"posture-backend-go/internal/services"
	"posture-backend-go/internal/store"
)

type AnalysisCreateRequest struct {
	DeviceID     string   `json:"idDevice"`
	ReadingID    string   `json:"idReading"`
	AnalysisType string   `json:"analysisType"`
	ResultValue  *float64 `json:"resultValue"`
	ResultUnit   string   `json:"resultUnit"`
	Status       string   `json:"status"`
	Comments     *string  `json:"comments"`
	AnalyzedAt   *string  `json:"analyzed_at"`
}

func (s *Server) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.DeviceID == "" || req.ReadingID == "" || strings.TrimSpace(req.AnalysisType) == "" ||
		req.ResultValue == nil || strings.TrimSpace(req.ResultUnit) == "" || strings.TrimSpace(req.Status) == "" {
		WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	var analyzedAt *time.Time
	if req.AnalyzedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.AnalyzedAt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid analyzed_at timestamp")
			return
		}
		analyzedAt = &parsed
	}
	result, err := services.CreateAnalysis(s.Stores, services.AnalysisInput{
		DeviceID:     req.DeviceID,
		ReadingID:    req.ReadingID,
		AnalysisType: strings.TrimSpace(req.AnalysisType),
		ResultValue:  *req.ResultValue,
		ResultUnit:   strings.TrimSpace(req.ResultUnit),
		ResultStatus: strings.TrimSpace(req.Status),
		Comments:     req.Comments,
		AnalyzedAt:   analyzedAt,
	})
	if err != nil {
		WriteFailure(w, err, "Error creating analysis")
		return
	}
	WriteData(w, http.StatusCreated, result)
}

func (s *Server) ListAnalysis(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parseInt(query.Get("page"), 1)
	limit := parseInt(query.Get("limit"), 50)
	if limit > 500 {
		limit = 500
	}
	results, total, err := s.Stores.Analysis.List(store.AnalysisFilter{
		ReadingID: strings.TrimSpace(query.Get("idReading")),
		DeviceID:  strings.TrimSpace(query.Get("idDevice")),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		WriteFailure(w, err, "Error listing analysis results")
		return
	}
	WriteList(w, results, Meta{Total: total, Page: page, Limit: limit})
}
