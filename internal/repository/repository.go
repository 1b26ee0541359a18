package repository

import (
	"database/sql"
	"errors"

	"github.com/kitucode/banking-service/internal/models"
	"github.com/lib/pq"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// IsUniqueViolation reports whether err is a unique-constraint violation
// surfaced by the database at insert time. The identifier generators rely
// on this to treat a lost check-then-insert race as a collision to retry,
// not a fatal error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func datePtr(nt sql.NullTime) *models.Date {
	if !nt.Valid {
		return nil
	}
	d := models.DateOf(nt.Time)
	return &d
}
