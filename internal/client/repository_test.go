package client

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clientCols = []string{
	"id", "first_name", "last_name", "age", "gender", "phone_number", "email", "address",
	"speech_issues", "problem_description", "referred_by", "urgency", "therapist_id", "status",
	"sessions", "last_session", "articulation", "voice", "stuttering", "created_at", "updated_at",
}

var fixedNow = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func addClientRow(rows *sqlmock.Rows, c *Client) *sqlmock.Rows {
	return rows.AddRow(
		c.ID, c.FirstName, c.LastName, c.Age, c.Gender, c.PhoneNumber, c.Email, nil,
		"{voice,stuttering}", c.ProblemDescription, nil, c.Urgency, c.TherapistID, c.Status,
		int64(c.Sessions), nil, int64(c.Articulation), int64(c.Voice), int64(c.Stuttering), c.CreatedAt, c.UpdatedAt,
	)
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepository(t)
	c := sampleClient()

	mock.ExpectQuery("INSERT INTO clients").
		WithArgs(
			sqlmock.AnyArg(), "Maya", "Rivera", "7", "female", "5551234567", "parent@example.com", nil,
			"{\"voice\",\"stuttering\"}", c.ProblemDescription, nil, UrgencyRoutine, "demo-therapist-1", StatusActive,
			0, 0, 0, 0, fixedNow,
		).
		WillReturnRows(addClientRow(sqlmock.NewRows(clientCols), c))

	created, err := repo.Create(context.Background(), *c)

	require.NoError(t, err)
	assert.Equal(t, testClientID, created.ID)
	assert.Equal(t, []string{"voice", "stuttering"}, created.SpeechIssues)
	assert.Empty(t, created.Address)
	assert.Nil(t, created.LastSession)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate_DuplicatePhone(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO clients").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "clients_phone_number_key"})

	_, err := repo.Create(context.Background(), *sampleClient())

	assert.ErrorIs(t, err, ErrDuplicatePhone)
}

func TestRepositoryCreate_OtherUniqueViolationIsUnexpected(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO clients").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "clients_pkey"})

	_, err := repo.Create(context.Background(), *sampleClient())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicatePhone)
}

func TestRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = $1")).
		WithArgs(testClientID).
		WillReturnRows(addClientRow(sqlmock.NewRows(clientCols), sampleClient()))

	c, err := repo.GetByID(context.Background(), testClientID)

	require.NoError(t, err)
	assert.Equal(t, "Maya", c.FirstName)
	assert.Equal(t, "parent@example.com", c.Email)
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM clients WHERE id").
		WillReturnRows(sqlmock.NewRows(clientCols))

	_, err := repo.GetByID(context.Background(), testClientID)

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestRepositoryListByTherapist(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM clients WHERE therapist_id = $1")).
		WithArgs("demo-therapist-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	rows := sqlmock.NewRows(clientCols)
	addClientRow(rows, sampleClient())
	addClientRow(rows, sampleClient())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE therapist_id = $1 ORDER BY created_at DESC")).
		WithArgs("demo-therapist-1").
		WillReturnRows(rows)

	clients, total, err := repo.ListByTherapist(context.Background(), "demo-therapist-1", 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, clients, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListByTherapist_Paginated(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs("t-1", 20, 40).
		WillReturnRows(sqlmock.NewRows(clientCols))

	clients, total, err := repo.ListByTherapist(context.Background(), "t-1", 20, 40)

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
}

func TestRepositorySearch_EscapesPattern(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("status = 'active'").
		WithArgs("demo-therapist-1", `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows(clientCols))

	clients, err := repo.Search(context.Background(), "demo-therapist-1", "50%_off")

	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdate_WritesOnlySuppliedFields(t *testing.T) {
	repo, mock := newMockRepository(t)
	sessions := 5
	c := sampleClient()
	c.Sessions = 5

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE clients SET sessions = $1, updated_at = $2 WHERE id = $3 RETURNING")).
		WithArgs(5, fixedNow, testClientID).
		WillReturnRows(addClientRow(sqlmock.NewRows(clientCols), c))

	updated, err := repo.Update(context.Background(), testClientID, UpdateClientRequest{Sessions: &sessions})

	require.NoError(t, err)
	assert.Equal(t, 5, updated.Sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdate_EmptyRequestBumpsUpdatedAt(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE clients SET updated_at = $1 WHERE id = $2")).
		WithArgs(fixedNow, testClientID).
		WillReturnRows(addClientRow(sqlmock.NewRows(clientCols), sampleClient()))

	_, err := repo.Update(context.Background(), testClientID, UpdateClientRequest{})
	require.NoError(t, err)
}

func TestRepositoryUpdate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{"missing row", sql.ErrNoRows, ErrClientNotFound},
		{"duplicate phone", &pq.Error{Code: "23505", Constraint: "clients_phone_number_key"}, ErrDuplicatePhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectQuery("UPDATE clients SET").WillReturnError(tt.dbErr)

			_, err := repo.Update(context.Background(), testClientID, UpdateClientRequest{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRepositoryUpdate_UnexpectedError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("UPDATE clients SET").WillReturnError(errors.New("connection lost"))

	_, err := repo.Update(context.Background(), testClientID, UpdateClientRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update client")
}

func TestRepositorySoftDelete(t *testing.T) {
	repo, mock := newMockRepository(t)
	c := sampleClient()
	c.Status = StatusInactive

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE clients SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(StatusInactive, fixedNow, testClientID).
		WillReturnRows(addClientRow(sqlmock.NewRows(clientCols), c))

	deleted, err := repo.SoftDelete(context.Background(), testClientID)

	require.NoError(t, err)
	assert.Equal(t, StatusInactive, deleted.Status)
	assert.Equal(t, "Maya", deleted.FirstName)
}

func TestRepositorySoftDelete_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("UPDATE clients SET status").WillReturnRows(sqlmock.NewRows(clientCols))

	_, err := repo.SoftDelete(context.Background(), testClientID)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
