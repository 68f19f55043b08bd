package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"posture-backend-go/internal/services"
	"posture-backend-go/internal/store"
)

type ReadingCreateRequest struct {
	DeviceID   string   `json:"idDevice"`
	TiltDeg    *float64 `json:"tilt_deg"`
	VelocityMS *float64 `json:"velocity_m_s"`
	Uploaded   bool     `json:"uploaded"`
}

type DeviceReadingRequest struct {
	TiltDeg    *float64 `json:"tilt_deg"`
	VelocityMS *float64 `json:"velocity_m_s"`
}

func (s *Server) CreateReading(w http.ResponseWriter, r *http.Request) {
	var req ReadingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.DeviceID == "" || req.TiltDeg == nil || req.VelocityMS == nil {
		WriteError(w, http.StatusBadRequest, "Missing required fields: idDevice, tilt_deg, velocity_m_s")
		return
	}
	reading, err := services.CreateReading(s.Stores, services.ReadingInput{
		DeviceID:   req.DeviceID,
		TiltDeg:    req.TiltDeg,
		VelocityMS: *req.VelocityMS,
		Uploaded:   req.Uploaded,
	})
	if err != nil {
		WriteFailure(w, err, "Error creating reading")
		return
	}
	WriteData(w, http.StatusCreated, reading)
}

func (s *Server) ListReadings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parseInt(query.Get("page"), 1)
	limit := parseInt(query.Get("limit"), 50)
	if limit > 500 {
		limit = 500
	}
	from, err := parseTimeParam(query.Get("from"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid from timestamp")
		return
	}
	to, err := parseTimeParam(query.Get("to"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid to timestamp")
		return
	}
	readings, total, err := s.Stores.Readings.List(store.ReadingFilter{
		DeviceID: strings.TrimSpace(query.Get("idDevice")),
		From:     from,
		To:       to,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		WriteFailure(w, err, "Error listing readings")
		return
	}
	WriteList(w, readings, Meta{Total: total, Page: page, Limit: limit})
}

func (s *Server) GetReading(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	reading, err := s.Stores.Readings.GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Reading not found")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error fetching reading")
		return
	}
	WriteData(w, http.StatusOK, reading)
}

// DeviceReading is the device self-report path; the device identity comes
// from the verified token, never from the body.
func (s *Server) DeviceReading(w http.ResponseWriter, r *http.Request) {
	principal, ok := CurrentPrincipal(r)
	if !ok || principal.Device == nil {
		WriteError(w, http.StatusUnauthorized, "Token is not a device token")
		return
	}
	var req DeviceReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.TiltDeg == nil {
		WriteError(w, http.StatusBadRequest, "tilt_deg is required")
		return
	}
	velocity := 0.0
	if req.VelocityMS != nil {
		velocity = *req.VelocityMS
	}
	reading, err := services.CreateDeviceReading(s.Stores, principal.Device.DeviceID, *req.TiltDeg, velocity)
	if err != nil {
		WriteFailure(w, err, "Error creating device reading")
		return
	}
	WriteData(w, http.StatusCreated, reading)
}
