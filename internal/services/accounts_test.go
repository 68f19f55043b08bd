package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posture-backend-go/internal/models"
	"posture-backend-go/internal/store"
	"posture-backend-go/internal/store/storetest"
)

func assertServiceError(t *testing.T, err error, code string, status int) {
	t.Helper()
	var serr ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, code, serr.Code)
	assert.Equal(t, status, serr.Status)
}

func TestCreateAccountHashesPassword(t *testing.T) {
	st := storetest.New()
	var storedHash string
	st.Accounts.(*storetest.Accounts).CreateFn = func(name, email, hash, plan string) (models.Account, error) {
		storedHash = hash
		return models.Account{ID: "acc-1", AccountName: name, Email: email, PasswordHash: hash, Plan: plan}, nil
	}
	account, err := CreateAccount(st, AccountInput{
		AccountName: "Clinic",
		Email:       "Owner@Example.com",
		Password:    "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", account.Email)
	assert.Equal(t, models.PlanFree, account.Plan)
	assert.NotEqual(t, "secret123", storedHash)
	assert.True(t, VerifyPassword("secret123", storedHash))
}

func TestCreateAccountRejectsBadPlan(t *testing.T) {
	st := storetest.New()
	_, err := CreateAccount(st, AccountInput{
		AccountName: "Clinic",
		Email:       "owner@example.com",
		Password:    "secret123",
		Plan:        "platinum",
	})
	assertServiceError(t, err, CodeValidation, 400)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	st := storetest.New()
	st.Accounts.(*storetest.Accounts).CreateFn = func(name, email, hash, plan string) (models.Account, error) {
		return models.Account{}, store.ErrDuplicate
	}
	_, err := CreateAccount(st, AccountInput{
		AccountName: "Clinic",
		Email:       "owner@example.com",
		Password:    "secret123",
	})
	assertServiceError(t, err, CodeDuplicate, 409)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	st := storetest.New()
	st.Accounts.(*storetest.Accounts).GetByEmailFn = func(email string) (models.Account, error) {
		return models.Account{ID: "acc-1", Email: email, PasswordHash: hash, Plan: models.PlanPremium}, nil
	}
	st.Users.(*storetest.Users).FirstIDByAccountFn = func(accountID string) (string, error) {
		return "user-1", nil
	}
	tokens := testTokens()
	result, err := Login(st, tokens, "owner@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, result.UserID)
	assert.Equal(t, "user-1", *result.UserID)

	principal, err := tokens.ParsePrincipal(result.Token)
	require.NoError(t, err)
	assert.Equal(t, PrincipalAccount, principal.Kind)
	assert.Equal(t, "acc-1", principal.Account.AccountID)
	assert.Equal(t, models.PlanPremium, principal.Account.Plan)
}

func TestLoginUnknownAccount(t *testing.T) {
	st := storetest.New()
	_, err := Login(st, testTokens(), "nobody@example.com", "secret123")
	assertServiceError(t, err, CodeNotFound, 404)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	st := storetest.New()
	st.Accounts.(*storetest.Accounts).GetByEmailFn = func(email string) (models.Account, error) {
		return models.Account{ID: "acc-1", Email: email, PasswordHash: hash, Plan: models.PlanFree}, nil
	}
	_, err = Login(st, testTokens(), "owner@example.com", "wrong")
	assertServiceError(t, err, CodeUnauthorized, 401)
}

func TestChangePasswordMinLength(t *testing.T) {
	st := storetest.New()
	err := ChangePassword(st, "acc-1", "short")
	assertServiceError(t, err, CodeValidation, 400)
}

func TestChangePasswordHashesOnce(t *testing.T) {
	st := storetest.New()
	st.Accounts.(*storetest.Accounts).GetByIDFn = func(id string) (models.Account, error) {
		return models.Account{ID: id}, nil
	}
	var storedHash string
	st.Accounts.(*storetest.Accounts).UpdatePasswordFn = func(id, hash string) error {
		storedHash = hash
		return nil
	}
	require.NoError(t, ChangePassword(st, "acc-1", "longenough"))
	assert.True(t, VerifyPassword("longenough", storedHash))
}

func TestDeviceLoginSuccess(t *testing.T) {
	st := storetest.New()
	st.Devices.(*storetest.Devices).GetBySerialFn = func(serial string) (models.Device, error) {
		return models.Device{ID: "dev-1", SerialNumber: serial}, nil
	}
	tokens := testTokens()
	result, err := DeviceLogin(st, tokens, "shared-key", "SN-0001", "shared-key")
	require.NoError(t, err)

	principal, err := tokens.ParsePrincipal(result.Token)
	require.NoError(t, err)
	assert.Equal(t, PrincipalDevice, principal.Kind)
	assert.Equal(t, "dev-1", principal.Device.DeviceID)
	assert.Equal(t, "SN-0001", principal.Device.SerialNumber)
}

func TestDeviceLoginUnknownSerial(t *testing.T) {
	st := storetest.New()
	_, err := DeviceLogin(st, testTokens(), "shared-key", "SN-MISSING", "shared-key")
	assertServiceError(t, err, CodeNotFound, 404)
}

func TestDeviceLoginWrongKey(t *testing.T) {
	st := storetest.New()
	st.Devices.(*storetest.Devices).GetBySerialFn = func(serial string) (models.Device, error) {
		return models.Device{ID: "dev-1", SerialNumber: serial}, nil
	}
	_, err := DeviceLogin(st, testTokens(), "shared-key", "SN-0001", "not-the-key")
	assertServiceError(t, err, CodeUnauthorized, 401)
}
