package services

import (
	"crypto/subtle"
	"errors"
	"strings"

	"posture-backend-go/internal/models"
	"posture-backend-go/internal/store"
)

type AccountInput struct {
	AccountName string
	Email       string
	Password    string
	Plan        string
}

// CreateAccount hashes the password exactly once and inserts the account.
// The unique email index is the authoritative duplicate defense.
func CreateAccount(st store.Stores, input AccountInput) (models.Account, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.AccountName == "" || input.Email == "" || input.Password == "" {
		return models.Account{}, ErrValidation("accountName, email and password are required")
	}
	plan := input.Plan
	if plan == "" {
		plan = models.PlanFree
	}
	if !models.ValidPlan(plan) {
		return models.Account{}, ErrValidation("plan must be one of free, premium, enterprise")
	}
	hash, err := HashPassword(input.Password)
	if err != nil {
		return models.Account{}, err
	}
	account, err := st.Accounts.Create(input.AccountName, input.Email, hash, plan)
	if errors.Is(err, store.ErrDuplicate) {
		return models.Account{}, ErrDuplicate("email already exists")
	}
	return account, err
}

type LoginResult struct {
	Token     string
	ExpiresAt int64
	Account   models.Account
	// UserID is the first monitored user linked to the account, if any.
	UserID *string
}

func Login(st store.Stores, tokens TokenService, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrValidation("email and password are required")
	}
	account, err := st.Accounts.GetByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, ErrNotFound("account not found")
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !VerifyPassword(password, account.PasswordHash) {
		return LoginResult{}, ErrUnauthorized("incorrect password")
	}
	token, exp, err := tokens.CreateAccountToken(account.ID, account.Email, account.Plan)
	if err != nil {
		return LoginResult{}, err
	}
	result := LoginResult{Token: token, ExpiresAt: exp, Account: account}
	if userID, err := st.Users.FirstIDByAccount(account.ID); err == nil {
		result.UserID = &userID
	}
	return result, nil
}

// ChangePassword is the only path besides creation that hashes a password.
func ChangePassword(st store.Stores, accountID, password string) error {
	if len(password) < 6 {
		return ErrValidation("password is required (minimum 6 characters)")
	}
	if _, err := st.Accounts.GetByID(accountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("account not found")
		}
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := st.Accounts.UpdatePassword(accountID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("account not found")
		}
		return err
	}
	return nil
}

type DeviceLoginResult struct {
	Token     string
	ExpiresAt int64
}

// DeviceLogin authenticates a device by serial number and the shared device
// key. The key compare is constant-time.
func DeviceLogin(st store.Stores, tokens TokenService, deviceKey, serialNumber, password string) (DeviceLoginResult, error) {
	if serialNumber == "" || password == "" {
		return DeviceLoginResult{}, ErrValidation("serialNumber and password are required")
	}
	device, err := st.Devices.GetBySerial(serialNumber)
	if errors.Is(err, store.ErrNotFound) {
		return DeviceLoginResult{}, ErrNotFound("device not found")
	}
	if err != nil {
		return DeviceLoginResult{}, err
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(deviceKey)) != 1 {
		return DeviceLoginResult{}, ErrUnauthorized("incorrect password")
	}
	token, exp, err := tokens.CreateDeviceToken(device.ID, device.SerialNumber)
	if err != nil {
		return DeviceLoginResult{}, err
	}
	return DeviceLoginResult{Token: token, ExpiresAt: exp}, nil
}
