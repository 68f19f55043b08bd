package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"posture-backend-go/internal/models"
)

type UserStore interface {
	Create(user models.User) (models.User, error)
	GetByID(id string) (models.User, error)
	FirstIDByAccount(accountID string) (string, error)
	List(accountID string, page, limit int) ([]models.User, int, error)
	Update(id string, patch UserPatch) (models.User, error)
	Delete(id string) error
}

// UserPatch carries the whitelisted updatable fields; nil leaves a field
// untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	HeightCM  *float64
	WeightKG  *float64
	Country   *string
}

type userStore struct {
	db *sqlx.DB
}

const userColumns = `id, id_account, first_name, last_name, national_id, height_cm, weight_kg, country, created_at, updated_at`

func (s *userStore) Create(user models.User) (models.User, error) {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := s.db.Exec(`
INSERT INTO users (id, id_account, first_name, last_name, national_id, height_cm, weight_kg, country, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
`, user.ID, user.AccountID, user.FirstName, user.LastName, user.NationalID, user.HeightCM, user.WeightKG, user.Country, now)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (s *userStore) GetByID(id string) (models.User, error) {
	var user models.User
	err := s.db.Get(&user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return user, translate(err)
}

func (s *userStore) FirstIDByAccount(accountID string) (string, error) {
	var id string
	err := s.db.Get(&id, `SELECT id FROM users WHERE id_account = $1 ORDER BY created_at ASC LIMIT 1`, accountID)
	return id, translate(err)
}

func (s *userStore) List(accountID string, page, limit int) ([]models.User, int, error) {
	where := ""
	args := []interface{}{}
	if accountID != "" {
		where = "WHERE id_account = $1"
		args = append(args, accountID)
	}
	var total int
	if err := s.db.Get(&total, `SELECT count(*) FROM users `+where, args...); err != nil {
		return nil, 0, translate(err)
	}
	offset := (page - 1) * limit
	users := []models.User{}
	query := `SELECT ` + userColumns + ` FROM users ` + where + ` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`
	args = append(args, limit, offset)
	query = fmt.Sprintf(query, len(args)-1, len(args))
	err := s.db.Select(&users, query, args...)
	return users, total, translate(err)
}

func (s *userStore) Update(id string, patch UserPatch) (models.User, error) {
	result, err := s.db.Exec(`
UPDATE users
SET first_name = COALESCE($2, first_name),
    last_name = COALESCE($3, last_name),
    height_cm = COALESCE($4, height_cm),
    weight_kg = COALESCE($5, weight_kg),
    country = COALESCE($6, country),
    updated_at = $7
WHERE id = $1
`, id, patch.FirstName, patch.LastName, patch.HeightCM, patch.WeightKG, patch.Country, time.Now().UTC())
	if err != nil {
		return models.User{}, translate(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.User{}, ErrNotFound
	}
	return s.GetByID(id)
}

func (s *userStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
