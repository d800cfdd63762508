package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCountActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FILTER \\(WHERE urgency = 'urgent'\\)").
		WithArgs("demo-therapist-1", since).
		WillReturnRows(sqlmock.NewRows([]string{"count", "urgent", "recent"}).AddRow(5, 2, 1))

	counts, err := NewRepository(db).CountActive(context.Background(), "demo-therapist-1", since)

	require.NoError(t, err)
	assert.Equal(t, Counts{Total: 5, Urgent: 2, Recent: 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryIssueDistribution(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("unnest\\(speech_issues\\)").
		WithArgs("demo-therapist-1").
		WillReturnRows(sqlmock.NewRows([]string{"issue", "count"}).
			AddRow("voice", 2).
			AddRow("stuttering", 1))

	distribution, err := NewRepository(db).IssueDistribution(context.Background(), "demo-therapist-1")

	require.NoError(t, err)
	assert.Equal(t, []IssueCount{{"voice", 2}, {"stuttering", 1}}, distribution)
}

func TestRepositoryIssueDistribution_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("unnest").WillReturnRows(sqlmock.NewRows([]string{"issue", "count"}))

	distribution, err := NewRepository(db).IssueDistribution(context.Background(), "t-1")

	require.NoError(t, err)
	assert.NotNil(t, distribution)
	assert.Empty(t, distribution)
}

func TestRepositoryIssueDistribution_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("unnest").WillReturnError(errors.New("relation does not exist"))

	_, err = NewRepository(db).IssueDistribution(context.Background(), "t-1")
	assert.Error(t, err)
}
