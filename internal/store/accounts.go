package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"posture-backend-go/internal/models"
)

type AccountStore interface {
	Create(accountName, email, passwordHash, plan string) (models.Account, error)
	GetByID(id string) (models.Account, error)
	GetByEmail(email string) (models.Account, error)
	List(page, limit int) ([]models.Account, int, error)
	Update(id string, accountName, email, plan *string) (models.Account, error)
	UpdatePassword(id, passwordHash string) error
	Delete(id string) error
}

type accountStore struct {
	db *sqlx.DB
}

const accountColumns = `id, account_name, email, password_hash, plan, registered_at, created_at, updated_at`

func (s *accountStore) Create(accountName, email, passwordHash, plan string) (models.Account, error) {
	now := time.Now().UTC()
	account := models.Account{
		ID:           uuid.NewString(),
		AccountName:  accountName,
		Email:        email,
		PasswordHash: passwordHash,
		Plan:         plan,
		RegisteredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := s.db.Exec(`
INSERT INTO accounts (id, account_name, email, password_hash, plan, registered_at, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
`, account.ID, account.AccountName, account.Email, account.PasswordHash, account.Plan, account.RegisteredAt, now)
	if err != nil {
		return models.Account{}, translate(err)
	}
	return account, nil
}

func (s *accountStore) GetByID(id string) (models.Account, error) {
	var account models.Account
	err := s.db.Get(&account, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return account, translate(err)
}

func (s *accountStore) GetByEmail(email string) (models.Account, error) {
	var account models.Account
	err := s.db.Get(&account, `SELECT `+accountColumns+` FROM accounts WHERE lower(email) = lower($1)`, email)
	return account, translate(err)
}

func (s *accountStore) List(page, limit int) ([]models.Account, int, error) {
	var total int
	if err := s.db.Get(&total, `SELECT count(*) FROM accounts`); err != nil {
		return nil, 0, translate(err)
	}
	offset := (page - 1) * limit
	accounts := []models.Account{}
	err := s.db.Select(&accounts, `
SELECT `+accountColumns+`
FROM accounts
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	return accounts, total, translate(err)
}

func (s *accountStore) Update(id string, accountName, email, plan *string) (models.Account, error) {
	result, err := s.db.Exec(`
UPDATE accounts
SET account_name = COALESCE($2, account_name),
    email = COALESCE($3, email),
    plan = COALESCE($4, plan),
    updated_at = $5
WHERE id = $1
`, id, accountName, email, plan, time.Now().UTC())
	if err != nil {
		return models.Account{}, translate(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Account{}, ErrNotFound
	}
	return s.GetByID(id)
}

func (s *accountStore) UpdatePassword(id, passwordHash string) error {
	result, err := s.db.Exec(`UPDATE accounts SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		id, passwordHash, time.Now().UTC())
	if err != nil {
		return translate(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *accountStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
