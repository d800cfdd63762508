//go:build integration

package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/testutil"
)

func TestDashboardStats_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	insert := `
		INSERT INTO clients (first_name, last_name, age, gender, phone_number, speech_issues,
			problem_description, urgency, therapist_id, status, created_at)
		VALUES ('Test', 'Client', '8', 'other', $1, $2, 'A description of at least twenty chars', $3, 'demo-therapist-1', $4, $5)
	`
	now := time.Now().UTC()
	rows := []struct {
		phone   string
		issues  []string
		urgency string
		status  string
		created time.Time
	}{
		{"5550000001", []string{"voice"}, "urgent", "active", now},
		{"5550000002", []string{"voice", "stuttering"}, "routine", "active", now.AddDate(0, 0, -45)},
		{"5550000003", []string{"voice", "apraxia"}, "urgent", "inactive", now},
	}
	for _, r := range rows {
		_, err := db.ExecContext(ctx, insert, r.phone, pq.Array(r.issues), r.urgency, r.status, r.created)
		require.NoError(t, err)
	}

	stats, err := NewService(NewRepository(db), nil, "demo-therapist-1").Stats(ctx, "")

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalClients)
	assert.Equal(t, 1, stats.UrgentClients)
	assert.Equal(t, 1, stats.RecentClients)
	assert.Equal(t, []IssueCount{{"voice", 2}, {"stuttering", 1}}, stats.SpeechIssuesDistribution)
}
