package services

import (
	"errors"
	"time"

	"posture-backend-go/internal/models"
	"posture-backend-go/internal/store"
)

// Creation flows for the child entities. Each one looks up the declared
// parent first so a dangling reference yields a clear client error instead of
// a generic insert failure; the lookup and the insert are not atomic, so a
// parent deleted in between can still slip through (accepted best-effort
// model). The store's composite unique indexes remain authoritative and are
// surfaced as conflicts.

type UserInput struct {
	AccountID  string
	FirstName  string
	LastName   string
	NationalID int64
	HeightCM   float64
	WeightKG   float64
	Country    string
}

func CreateUser(st store.Stores, input UserInput) (models.User, error) {
	if input.HeightCM < 30 || input.HeightCM > 300 {
		return models.User{}, ErrValidation("height_cm must be between 30 and 300")
	}
	if input.WeightKG < 1 || input.WeightKG > 500 {
		return models.User{}, ErrValidation("weight_kg must be between 1 and 500")
	}
	if _, err := st.Accounts.GetByID(input.AccountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrInvalidReference("idAccount is invalid (account does not exist)")
		}
		return models.User{}, err
	}
	user, err := st.Users.Create(models.User{
		AccountID:  input.AccountID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		NationalID: input.NationalID,
		HeightCM:   input.HeightCM,
		WeightKG:   input.WeightKG,
		Country:    input.Country,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return models.User{}, ErrDuplicate("user already exists for this account (duplicate national_id)")
	}
	return user, err
}

type DeviceInput struct {
	UserID          string
	DeviceName      string
	SerialNumber    string
	FirmwareVersion string
	BatteryLevel    *int
}

func CreateDevice(st store.Stores, input DeviceInput) (models.Device, error) {
	battery := 100
	if input.BatteryLevel != nil {
		battery = *input.BatteryLevel
	}
	if battery < 0 || battery > 100 {
		return models.Device{}, ErrValidation("batteryLevel must be between 0 and 100")
	}
	if _, err := st.Users.GetByID(input.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Device{}, ErrInvalidReference("idUser is invalid (user does not exist)")
		}
		return models.Device{}, err
	}
	device, err := st.Devices.Create(models.Device{
		UserID:          input.UserID,
		DeviceName:      input.DeviceName,
		SerialNumber:    input.SerialNumber,
		FirmwareVersion: input.FirmwareVersion,
		BatteryLevel:    battery,
		IsActive:        true,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return models.Device{}, ErrDuplicate("device already exists for this user (duplicate serialNumber)")
	}
	return device, err
}

type ReadingInput struct {
	DeviceID   string
	TiltDeg    *float64
	VelocityMS float64
	Uploaded   bool
}

func CreateReading(st store.Stores, input ReadingInput) (models.PostureReading, error) {
	if _, err := st.Devices.GetByID(input.DeviceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PostureReading{}, ErrInvalidReference("idDevice is invalid (device does not exist)")
		}
		return models.PostureReading{}, err
	}
	reading := models.PostureReading{
		DeviceID:   input.DeviceID,
		TiltDeg:    input.TiltDeg,
		VelocityMS: input.VelocityMS,
		Uploaded:   input.Uploaded,
	}
	if input.Uploaded {
		now := time.Now().UTC()
		reading.UploadedAt = &now
	}
	return st.Readings.Create(reading)
}

// CreateDeviceReading is the self-report path; the device identity comes from
// the verified device token, so no parent pre-check is needed.
func CreateDeviceReading(st store.Stores, deviceID string, tilt float64, velocity float64) (models.PostureReading, error) {
	return st.Readings.Create(models.PostureReading{
		DeviceID:   deviceID,
		TiltDeg:    &tilt,
		VelocityMS: velocity,
		RecordedAt: time.Now().UTC(),
	})
}

type AnalysisInput struct {
	DeviceID     string
	ReadingID    string
	AnalysisType string
	ResultValue  float64
	ResultUnit   string
	ResultStatus string
	Comments     *string
	AnalyzedAt   *time.Time
}

func CreateAnalysis(st store.Stores, input AnalysisInput) (models.AnalysisResult, error) {
	reading, err := st.Readings.GetByID(input.ReadingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.AnalysisResult{}, ErrInvalidReference("idReading is invalid (reading does not exist)")
		}
		return models.AnalysisResult{}, err
	}
	if _, err := st.Devices.GetByID(input.DeviceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.AnalysisResult{}, ErrInvalidReference("idDevice is invalid (device does not exist)")
		}
		return models.AnalysisResult{}, err
	}
	if reading.DeviceID != input.DeviceID {
		return models.AnalysisResult{}, ErrReferenceMismatch("reading does not belong to the given device")
	}
	result := models.AnalysisResult{
		DeviceID:     input.DeviceID,
		ReadingID:    input.ReadingID,
		AnalysisType: input.AnalysisType,
		ResultValue:  input.ResultValue,
		ResultUnit:   input.ResultUnit,
		ResultStatus: input.ResultStatus,
		Comments:     input.Comments,
	}
	if input.AnalyzedAt != nil {
		result.AnalyzedAt = *input.AnalyzedAt
	}
	created, err := st.Analysis.Create(result)
	if errors.Is(err, store.ErrDuplicate) {
		return models.AnalysisResult{}, ErrDuplicate("an analysis of this type already exists for that reading")
	}
	return created, err
}
