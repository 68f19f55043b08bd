package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"posture-backend-go/internal/services"
	"posture-backend-go/internal/store"
)

type DeviceCreateRequest struct {
	UserID          string `json:"idUser"`
	DeviceName      string `json:"deviceName"`
	SerialNumber    string `json:"serialNumber"`
	FirmwareVersion string `json:"firmwareVersion"`
	BatteryLevel    *int   `json:"batteryLevel"`
}

type DeviceUpdateRequest struct {
	DeviceName      *string `json:"deviceName"`
	FirmwareVersion *string `json:"firmwareVersion"`
	BatteryLevel    *int    `json:"batteryLevel"`
	IsActive        *bool   `json:"isActive"`
}

func (s *Server) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req DeviceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.UserID == "" || strings.TrimSpace(req.DeviceName) == "" || strings.TrimSpace(req.SerialNumber) == "" {
		WriteError(w, http.StatusBadRequest, "Missing required fields (idUser, deviceName, serialNumber)")
		return
	}
	device, err := services.CreateDevice(s.Stores, services.DeviceInput{
		UserID:          req.UserID,
		DeviceName:      strings.TrimSpace(req.DeviceName),
		SerialNumber:    strings.TrimSpace(req.SerialNumber),
		FirmwareVersion: req.FirmwareVersion,
		BatteryLevel:    req.BatteryLevel,
	})
	if err != nil {
		WriteFailure(w, err, "Error creating device")
		return
	}
	WriteData(w, http.StatusCreated, device)
}

func (s *Server) ListDevices(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("idUser"))
	devices, err := s.Stores.Devices.List(userID)
	if err != nil {
		WriteFailure(w, err, "Error listing devices")
		return
	}
	WriteData(w, http.StatusOK, devices)
}

func (s *Server) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	var req DeviceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.BatteryLevel != nil && (*req.BatteryLevel < 0 || *req.BatteryLevel > 100) {
		WriteError(w, http.StatusBadRequest, "batteryLevel must be between 0 and 100")
		return
	}
	device, err := s.Stores.Devices.Update(id, store.DevicePatch{
		DeviceName:      req.DeviceName,
		FirmwareVersion: req.FirmwareVersion,
		BatteryLevel:    req.BatteryLevel,
		IsActive:        req.IsActive,
	})
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Device not found")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error updating device")
		return
	}
	WriteData(w, http.StatusOK, device)
}

func (s *Server) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	err := s.Stores.Devices.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Device not found")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error deleting device")
		return
	}
	WriteMessage(w, http.StatusOK, "Device deleted")
}
