// Package storetest provides in-memory fakes for the entity stores. A method
// delegates to its Fn field when set; otherwise lookups miss and writes echo
// their input with a generated id.
package storetest

import (
	"time"

	"github.com/google/uuid"

	"posture-backend-go/internal/models"
	"posture-backend-go/internal/store"
)

func New() store.Stores {
	return store.Stores{
		Accounts: &Accounts{},
		Users:    &Users{},
		Devices:  &Devices{},
		Readings: &Readings{},
		Analysis: &Analysis{},
	}
}

type Accounts struct {
	CreateFn         func(accountName, email, passwordHash, plan string) (models.Account, error)
	GetByIDFn        func(id string) (models.Account, error)
	GetByEmailFn     func(email string) (models.Account, error)
	ListFn           func(page, limit int) ([]models.Account, int, error)
	UpdateFn         func(id string, accountName, email, plan *string) (models.Account, error)
	UpdatePasswordFn func(id, passwordHash string) error
	DeleteFn         func(id string) error
}

func (a *Accounts) Create(accountName, email, passwordHash, plan string) (models.Account, error) {
	if a.CreateFn != nil {
		return a.CreateFn(accountName, email, passwordHash, plan)
	}
	now := time.Now().UTC()
	return models.Account{
		ID:           uuid.NewString(),
		AccountName:  accountName,
		Email:        email,
		PasswordHash: passwordHash,
		Plan:         plan,
		RegisteredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (a *Accounts) GetByID(id string) (models.Account, error) {
	if a.GetByIDFn != nil {
		return a.GetByIDFn(id)
	}
	return models.Account{}, store.ErrNotFound
}

func (a *Accounts) GetByEmail(email string) (models.Account, error) {
	if a.GetByEmailFn != nil {
		return a.GetByEmailFn(email)
	}
	return models.Account{}, store.ErrNotFound
}

func (a *Accounts) List(page, limit int) ([]models.Account, int, error) {
	if a.ListFn != nil {
		return a.ListFn(page, limit)
	}
	return []models.Account{}, 0, nil
}

func (a *Accounts) Update(id string, accountName, email, plan *string) (models.Account, error) {
	if a.UpdateFn != nil {
		return a.UpdateFn(id, accountName, email, plan)
	}
	return models.Account{}, store.ErrNotFound
}

func (a *Accounts) UpdatePassword(id, passwordHash string) error {
	if a.UpdatePasswordFn != nil {
		return a.UpdatePasswordFn(id, passwordHash)
	}
	return nil
}

func (a *Accounts) Delete(id string) error {
	if a.DeleteFn != nil {
		return a.DeleteFn(id)
	}
	return store.ErrNotFound
}

type Users struct {
	CreateFn           func(user models.User) (models.User, error)
	GetByIDFn          func(id string) (models.User, error)
	FirstIDByAccountFn func(accountID string) (string, error)
	ListFn             func(accountID string, page, limit int) ([]models.User, int, error)
	UpdateFn           func(id string, patch store.UserPatch) (models.User, error)
	DeleteFn           func(id string) error
}

func (u *Users) Create(user models.User) (models.User, error) {
	if u.CreateFn != nil {
		return u.CreateFn(user)
	}
	user.ID = uuid.NewString()
	return user, nil
}

func (u *Users) GetByID(id string) (models.User, error) {
	if u.GetByIDFn != nil {
		return u.GetByIDFn(id)
	}
	return models.User{}, store.ErrNotFound
}

func (u *Users) FirstIDByAccount(accountID string) (string, error) {
	if u.FirstIDByAccountFn != nil {
		return u.FirstIDByAccountFn(accountID)
	}
	return "", store.ErrNotFound
}

func (u *Users) List(accountID string, page, limit int) ([]models.User, int, error) {
	if u.ListFn != nil {
		return u.ListFn(accountID, page, limit)
	}
	return []models.User{}, 0, nil
}

func (u *Users) Update(id string, patch store.UserPatch) (models.User, error) {
	if u.UpdateFn != nil {
		return u.UpdateFn(id, patch)
	}
	return models.User{}, store.ErrNotFound
}

func (u *Users) Delete(id string) error {
	if u.DeleteFn != nil {
		return u.DeleteFn(id)
	}
	return store.ErrNotFound
}

type Devices struct {
	CreateFn      func(device models.Device) (models.Device, error)
	GetByIDFn     func(id string) (models.Device, error)
	GetBySerialFn func(serialNumber string) (models.Device, error)
	ListFn        func(userID string) ([]models.Device, error)
	IDsByUserFn   func(userID string) ([]string, error)
	UpdateFn      func(id string, patch store.DevicePatch) (models.Device, error)
	DeleteFn      func(id string) error
}

func (d *Devices) Create(device models.Device) (models.Device, error) {
	if d.CreateFn != nil {
		return d.CreateFn(device)
	}
	device.ID = uuid.NewString()
	return device, nil
}

func (d *Devices) GetByID(id string) (models.Device, error) {
	if d.GetByIDFn != nil {
		return d.GetByIDFn(id)
	}
	return models.Device{}, store.ErrNotFound
}

func (d *Devices) GetBySerial(serialNumber string) (models.Device, error) {
	if d.GetBySerialFn != nil {
		return d.GetBySerialFn(serialNumber)
	}
	return models.Device{}, store.ErrNotFound
}

func (d *Devices) List(userID string) ([]models.Device, error) {
	if d.ListFn != nil {
		return d.ListFn(userID)
	}
	return []models.Device{}, nil
}

func (d *Devices) IDsByUser(userID string) ([]string, error) {
	if d.IDsByUserFn != nil {
		return d.IDsByUserFn(userID)
	}
	return []string{}, nil
}

func (d *Devices) Update(id string, patch store.DevicePatch) (models.Device, error) {
	if d.UpdateFn != nil {
		return d.UpdateFn(id, patch)
	}
	return models.Device{}, store.ErrNotFound
}

func (d *Devices) Delete(id string) error {
	if d.DeleteFn != nil {
		return d.DeleteFn(id)
	}
	return store.ErrNotFound
}

type Readings struct {
	CreateFn           func(reading models.PostureReading) (models.PostureReading, error)
	GetByIDFn          func(id string) (models.PostureReading, error)
	ListFn             func(filter store.ReadingFilter) ([]models.PostureReading, int, error)
	NewestForDevicesFn func(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error)
}

func (r *Readings) Create(reading models.PostureReading) (models.PostureReading, error) {
	if r.CreateFn != nil {
		return r.CreateFn(reading)
	}
	reading.ID = uuid.NewString()
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now().UTC()
	}
	return reading, nil
}

func (r *Readings) GetByID(id string) (models.PostureReading, error) {
	if r.GetByIDFn != nil {
		return r.GetByIDFn(id)
	}
	return models.PostureReading{}, store.ErrNotFound
}

func (r *Readings) List(filter store.ReadingFilter) ([]models.PostureReading, int, error) {
	if r.ListFn != nil {
		return r.ListFn(filter)
	}
	return []models.PostureReading{}, 0, nil
}

func (r *Readings) NewestForDevices(deviceIDs []string, since *time.Time, limit int) ([]models.PostureReading, error) {
	if r.NewestForDevicesFn != nil {
		return r.NewestForDevicesFn(deviceIDs, since, limit)
	}
	return []models.PostureReading{}, nil
}

type Analysis struct {
	CreateFn  func(result models.AnalysisResult) (models.AnalysisResult, error)
	GetByIDFn func(id string) (models.AnalysisResult, error)
	ListFn    func(filter store.AnalysisFilter) ([]models.AnalysisResult, int, error)
}

func (a *Analysis) Create(result models.AnalysisResult) (models.AnalysisResult, error) {
	if a.CreateFn != nil {
		return a.CreateFn(result)
	}
	result.ID = uuid.NewString()
	if result.AnalyzedAt.IsZero() {
		result.AnalyzedAt = time.Now().UTC()
	}
	return result, nil
}

func (a *Analysis) GetByID(id string) (models.AnalysisResult, error) {
	if a.GetByIDFn != nil {
		return a.GetByIDFn(id)
	}
	return models.AnalysisResult{}, store.ErrNotFound
}

func (a *Analysis) List(filter store.AnalysisFilter) ([]models.AnalysisResult, int, error) {
	if a.ListFn != nil {
		return a.ListFn(filter)
	}
	return []models.AnalysisResult{}, 0, nil
}
