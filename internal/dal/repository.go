package dal

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Repository is the shared base for all repositories.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (duplicate phone, second open shift, and so on).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
