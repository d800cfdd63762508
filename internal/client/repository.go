package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const clientColumns = `id, first_name, last_name, age, gender, phone_number, email, address,
	speech_issues, problem_description, referred_by, urgency, therapist_id, status,
	sessions, last_session, articulation, voice, stuttering, created_at, updated_at`

const (
	pgUniqueViolation = "23505"
	phoneConstraint   = "clients_phone_number_key"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*Client, error) {
	var c Client
	var email, address, referredBy sql.NullString
	var lastSession sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Age,
		&c.Gender,
		&c.PhoneNumber,
		&email,
		&address,
		pq.Array(&c.SpeechIssues),
		&c.ProblemDescription,
		&referredBy,
		&c.Urgency,
		&c.TherapistID,
		&c.Status,
		&c.Sessions,
		&lastSession,
		&c.Articulation,
		&c.Voice,
		&c.Stuttering,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Email = email.String
	c.Address = address.String
	c.ReferredBy = referredBy.String
	if lastSession.Valid {
		t := lastSession.Time
		c.LastSession = &t
	}
	if c.SpeechIssues == nil {
		c.SpeechIssues = []string{}
	}
	return &c, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// mapWriteError translates driver errors raised by INSERT and UPDATE.
func mapWriteError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrClientNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation && pqErr.Constraint == phoneConstraint {
		return ErrDuplicatePhone
	}
	return err
}

// Create inserts a normalized, validated record. Phone uniqueness is left to
// the clients_phone_number_key constraint.
func (r *Repository) Create(ctx context.Context, c Client) (*Client, error) {
	now := r.now()
	query := `
		INSERT INTO clients
		(id, first_name, last_name, age, gender, phone_number, email, address, speech_issues,
		 problem_description, referred_by, urgency, therapist_id, status, sessions,
		 articulation, voice, stuttering, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
		RETURNING ` + clientColumns

	issues := c.SpeechIssues
	if issues == nil {
		issues = []string{}
	}

	created, err := scanClient(r.db.QueryRowContext(ctx, query,
		uuid.New(),
		c.FirstName,
		c.LastName,
		c.Age,
		c.Gender,
		c.PhoneNumber,
		nullIfEmpty(c.Email),
		nullIfEmpty(c.Address),
		pq.Array(issues),
		c.ProblemDescription,
		nullIfEmpty(c.ReferredBy),
		c.Urgency,
		c.TherapistID,
		c.Status,
		c.Sessions,
		c.Articulation,
		c.Voice,
		c.Stuttering,
		now,
	))
	if err != nil {
		if mapped := mapWriteError(err); errors.Is(mapped, ErrDuplicatePhone) {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to insert client: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// ListByTherapist returns every record of the tenant, newest first, with the
// total count. A limit of zero returns all rows.
func (r *Repository) ListByTherapist(ctx context.Context, therapistID string, limit, offset int) ([]Client, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE therapist_id = $1`, therapistID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE therapist_id = $1 ORDER BY created_at DESC`
	args := []interface{}{therapistID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	clients, err := r.queryClients(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// Search matches active records of the tenant whose name, phone or email
// contains q, ignoring case. LIKE metacharacters in q match literally.
func (r *Repository) Search(ctx context.Context, therapistID, q string) ([]Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE therapist_id = $1
		  AND status = 'active'
		  AND (first_name ILIKE $2 OR last_name ILIKE $2 OR phone_number ILIKE $2 OR email ILIKE $2)
		ORDER BY created_at DESC`

	return r.queryClients(ctx, query, therapistID, "%"+likeEscaper.Replace(q)+"%")
}

func (r *Repository) queryClients(ctx context.Context, query string, args ...interface{}) ([]Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}
	return clients, nil
}

// Update writes the supplied fields of a normalized, validated request and
// refreshes updated_at. id and created_at are never written.
func (r *Repository) Update(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.FirstName != nil {
		set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		set("last_name", *req.LastName)
	}
	if req.Age != nil {
		set("age", string(*req.Age))
	}
	if req.Gender != nil {
		set("gender", *req.Gender)
	}
	if req.PhoneNumber != nil {
		set("phone_number", *req.PhoneNumber)
	}
	if req.Email != nil {
		set("email", nullIfEmpty(*req.Email))
	}
	if req.Address != nil {
		set("address", nullIfEmpty(*req.Address))
	}
	if req.SpeechIssues != nil {
		set("speech_issues", pq.Array(*req.SpeechIssues))
	}
	if req.ProblemDescription != nil {
		set("problem_description", *req.ProblemDescription)
	}
	if req.ReferredBy != nil {
		set("referred_by", nullIfEmpty(*req.ReferredBy))
	}
	if req.Urgency != nil {
		set("urgency", *req.Urgency)
	}
	if req.TherapistID != nil {
		set("therapist_id", *req.TherapistID)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	if req.Sessions != nil {
		set("sessions", *req.Sessions)
	}
	if req.LastSession != nil {
		set("last_session", *req.LastSession)
	}
	if req.Articulation != nil {
		set("articulation", *req.Articulation)
	}
	if req.Voice != nil {
		set("voice", *req.Voice)
	}
	if req.Stuttering != nil {
		set("stuttering", *req.Stuttering)
	}
	set("updated_at", r.now())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), clientColumns)

	updated, err := scanClient(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := mapWriteError(err)
		if errors.Is(mapped, ErrClientNotFound) || errors.Is(mapped, ErrDuplicatePhone) {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return updated, nil
}

// SoftDelete marks the record inactive. Repeating it leaves the record inactive.
func (r *Repository) SoftDelete(ctx context.Context, id string) (*Client, error) {
	query := `UPDATE clients SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + clientColumns

	c, err := scanClient(r.db.QueryRowContext(ctx, query, StatusInactive, r.now(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate client: %w", err)
	}
	return c, nil
}
