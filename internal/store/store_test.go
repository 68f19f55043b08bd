package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posture-backend-go/internal/models"
)

func newMockStores(t *testing.T) (Stores, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")
	return New(db), mock
}

func accountRowColumns() []string {
	return []string{"id", "account_name", "email", "password_hash", "plan", "registered_at", "created_at", "updated_at"}
}

func testUser() models.User {
	return models.User{
		AccountID:  "acc-1",
		FirstName:  "Ana",
		LastName:   "Pop",
		NationalID: 1990101123456,
		HeightCM:   172,
		WeightKG:   64,
		Country:    "RO",
	}
}

func testDevice() models.Device {
	return models.Device{
		UserID:       "user-1",
		DeviceName:   "Back Sensor",
		SerialNumber: "SN-0001",
		BatteryLevel: 100,
		IsActive:     true,
	}
}

func testAnalysis() models.AnalysisResult {
	return models.AnalysisResult{
		DeviceID:     "dev-1",
		ReadingID:    "read-1",
		AnalysisType: "slouch",
		ResultValue:  0.7,
		ResultUnit:   "ratio",
		ResultStatus: "warning",
	}
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), ErrDuplicate)

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(other), translate(other))
}

func TestAccountGetByEmailNotFound(t *testing.T) {
	st, mock := newMockStores(t)
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := st.Accounts.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGetByEmailFound(t *testing.T) {
	st, mock := newMockStores(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("Owner@Example.com").
		WillReturnRows(sqlmock.NewRows(accountRowColumns()).
			AddRow("acc-1", "Clinic", "owner@example.com", "hash", "free", now, now, now))

	account, err := st.Accounts.GetByEmail("Owner@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, "owner@example.com", account.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCreateDuplicateEmail(t *testing.T) {
	st, mock := newMockStores(t)
	mock.ExpectExec(`INSERT INTO accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_accounts_email"})

	_, err := st.Accounts.Create("Clinic", "owner@example.com", "hash", "free")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountDeleteMissing(t *testing.T) {
	st, mock := newMockStores(t)
	mock.ExpectExec(`DELETE FROM accounts WHERE id = \$1`).
		WithArgs("acc-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := st.Accounts.Delete("acc-missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountUpdatePasswordHits(t *testing.T) {
	st, mock := newMockStores(t)
	mock.ExpectExec(`UPDATE accounts SET password_hash = \$2`).
		WithArgs("acc-1", "new-hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, st.Accounts.UpdatePassword("acc-1", "new-hash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateNationalID(t *testing.T) {
	st, mock := newMockStores(t)
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_account_national_id"})

	_, err := st.Users.Create(testUser())
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceCreateDuplicateSerial(t *testing.T) {
	st, mock := newMockStores(t)
	mock.ExpectExec(`INSERT INTO devices`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_devices_user_serial"})

	_, err := st.Devices.Create(testDevice())
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceIDsByUser(t *testing.T) {
	st, mock := newMockStores(t)
	mock.ExpectQuery(`SELECT id FROM devices WHERE id_user = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("dev-1").AddRow("dev-2"))

	ids, err := st.Devices.IDsByUser("user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev-1", "dev-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingListBuildsFilter(t *testing.T) {
	st, mock := newMockStores(t)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT count\(\*\) FROM posture_readings WHERE id_device = \$1 AND recorded_at >= \$2`).
		WithArgs("dev-1", from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM posture_readings WHERE id_device = \$1 AND recorded_at >= \$2 ORDER BY recorded_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("dev-1", from, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	readings, total, err := st.Readings.List(ReadingFilter{DeviceID: "dev-1", From: &from, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, readings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingNewestForDevicesExpandsIn(t *testing.T) {
	st, mock := newMockStores(t)
	since := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tilt := 12.5
	mock.ExpectQuery(`SELECT (.+) FROM posture_readings WHERE id_device IN \(\?, \?\) AND recorded_at >= \? ORDER BY recorded_at DESC LIMIT \?`).
		WithArgs("dev-1", "dev-2", since, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "id_device", "tilt_deg", "velocity_m_s", "recorded_at", "uploaded", "uploaded_at", "created_at"}).
			AddRow("read-1", "dev-1", tilt, 0.4, now, false, nil, now))

	readings, err := st.Readings.NewestForDevices([]string{"dev-1", "dev-2"}, &since, 100)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	require.NotNil(t, readings[0].TiltDeg)
	assert.Equal(t, tilt, *readings[0].TiltDeg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingNewestForDevicesEmptyFleet(t *testing.T) {
	st, _ := newMockStores(t)
	readings, err := st.Readings.NewestForDevices(nil, nil, 100)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestAnalysisCreateDuplicateType(t *testing.T) {
	st, mock := newMockStores(t)
	mock.ExpectExec(`INSERT INTO analysis_results`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_analysis_reading_type"})

	_, err := st.Analysis.Create(testAnalysis())
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
