package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicate is returned when an insert trips a unique index. The
	// composite indexes are the authoritative uniqueness defense; callers map
	// this to a conflict response.
	ErrDuplicate = errors.New("duplicate entity")
)

// Stores bundles the per-entity repositories. Constructed once at process
// start and passed by reference to the handlers; there is no ambient global
// registry.
type Stores struct {
	Accounts AccountStore
	Users    UserStore
	Devices  DeviceStore
	Readings ReadingStore
	Analysis AnalysisStore
}

func New(db *sqlx.DB) Stores {
	return Stores{
		Accounts: &accountStore{db: db},
		Users:    &userStore{db: db},
		Devices:  &deviceStore{db: db},
		Readings: &readingStore{db: db},
		Analysis: &analysisStore{db: db},
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
