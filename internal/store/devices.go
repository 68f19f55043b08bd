package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"posture-backend-go/internal/models"
)

type DeviceStore interface {
	Create(device models.Device) (models.Device, error)
	GetByID(id string) (models.Device, error)
	GetBySerial(serialNumber string) (models.Device, error)
	List(userID string) ([]models.Device, error)
	IDsByUser(userID string) ([]string, error)
	Update(id string, patch DevicePatch) (models.Device, error)
	Delete(id string) error
}

// DevicePatch carries the whitelisted updatable fields; nil leaves a field
// untouched.
type DevicePatch struct {
	DeviceName      *string
	FirmwareVersion *string
	BatteryLevel    *int
	IsActive        *bool
}

type deviceStore struct {
	db *sqlx.DB
}

const deviceColumns = `id, id_user, device_name, serial_number, firmware_version, battery_level, is_active, registered_at, created_at, updated_at`

func (s *deviceStore) Create(device models.Device) (models.Device, error) {
	now := time.Now().UTC()
	device.ID = uuid.NewString()
	if device.FirmwareVersion == "" {
		device.FirmwareVersion = "1.0.0"
	}
	device.RegisteredAt = now
	device.CreatedAt = now
	device.UpdatedAt = now
	_, err := s.db.Exec(`
INSERT INTO devices (id, id_user, device_name, serial_number, firmware_version, battery_level, is_active, registered_at, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
`, device.ID, device.UserID, device.DeviceName, device.SerialNumber, device.FirmwareVersion,
		device.BatteryLevel, device.IsActive, device.RegisteredAt, now)
	if err != nil {
		return models.Device{}, translate(err)
	}
	return device, nil
}

func (s *deviceStore) GetByID(id string) (models.Device, error) {
	var device models.Device
	err := s.db.Get(&device, `SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id)
	return device, translate(err)
}

func (s *deviceStore) GetBySerial(serialNumber string) (models.Device, error) {
	var device models.Device
	err := s.db.Get(&device, `
SELECT `+deviceColumns+` FROM devices WHERE serial_number = $1 ORDER BY created_at ASC LIMIT 1`, serialNumber)
	return device, translate(err)
}

func (s *deviceStore) List(userID string) ([]models.Device, error) {
	devices := []models.Device{}
	if userID != "" {
		err := s.db.Select(&devices, `
SELECT `+deviceColumns+` FROM devices WHERE id_user = $1 ORDER BY created_at DESC`, userID)
		return devices, translate(err)
	}
	err := s.db.Select(&devices, `SELECT `+deviceColumns+` FROM devices ORDER BY created_at DESC`)
	return devices, translate(err)
}

func (s *deviceStore) IDsByUser(userID string) ([]string, error) {
	ids := []string{}
	err := s.db.Select(&ids, `SELECT id FROM devices WHERE id_user = $1`, userID)
	return ids, translate(err)
}

func (s *deviceStore) Update(id string, patch DevicePatch) (models.Device, error) {
	result, err := s.db.Exec(`
UPDATE devices
SET device_name = COALESCE($2, device_name),
    firmware_version = COALESCE($3, firmware_version),
    battery_level = COALESCE($4, battery_level),
    is_active = COALESCE($5, is_active),
    updated_at = $6
WHERE id = $1
`, id, patch.DeviceName, patch.FirmwareVersion, patch.BatteryLevel, patch.IsActive, time.Now().UTC())
	if err != nil {
		return models.Device{}, translate(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Device{}, ErrNotFound
	}
	return s.GetByID(id)
}

func (s *deviceStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
