package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CountActive counts the tenant's active clients, the urgent ones, and those
// created at or after since.
func (r *Repository) CountActive(ctx context.Context, therapistID string, since time.Time) (Counts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE urgency = 'urgent'),
		       COUNT(*) FILTER (WHERE created_at >= $2)
		FROM clients
		WHERE therapist_id = $1 AND status = 'active'
	`

	var c Counts
	if err := r.db.QueryRowContext(ctx, query, therapistID, since).Scan(&c.Total, &c.Urgent, &c.Recent); err != nil {
		return Counts{}, fmt.Errorf("failed to count clients: %w", err)
	}
	return c, nil
}

// IssueDistribution expands every active record's issue set and counts each
// issue, most frequent first.
func (r *Repository) IssueDistribution(ctx context.Context, therapistID string) ([]IssueCount, error) {
	query := `
		SELECT issue, COUNT(*) AS count
		FROM clients, unnest(speech_issues) AS issue
		WHERE therapist_id = $1 AND status = 'active'
		GROUP BY issue
		ORDER BY count DESC, issue ASC
	`

	rows, err := r.db.QueryContext(ctx, query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query speech issue distribution: %w", err)
	}
	defer rows.Close()

	distribution := make([]IssueCount, 0)
	for rows.Next() {
		var ic IssueCount
		if err := rows.Scan(&ic.Issue, &ic.Count); err != nil {
			return nil, fmt.Errorf("failed to scan speech issue count: %w", err)
		}
		distribution = append(distribution, ic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating speech issue counts: %w", err)
	}
	return distribution, nil
}
