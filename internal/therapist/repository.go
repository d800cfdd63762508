package therapist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const emailConstraint = "therapists_email_key"

// RepositoryInterface defines the contract for therapist data access
type RepositoryInterface interface {
	Create(ctx context.Context, t Therapist) (*Therapist, error)
}

var _ RepositoryInterface = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t Therapist) (*Therapist, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO therapists (id, name, mobile, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, name, mobile, email, created_at, updated_at
	`

	var out Therapist
	err := r.db.QueryRowContext(ctx, query, uuid.New(), t.Name, t.Mobile, t.Email, t.PasswordHash, now).
		Scan(&out.ID, &out.Name, &out.Mobile, &out.Email, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == emailConstraint {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert therapist: %w", err)
	}
	return &out, nil
}
