package dashboard

// Stats summarizes the active clients of one therapist.
type Stats struct {
	TotalClients             int          `json:"totalClients"`
	UrgentClients            int          `json:"urgentClients"`
	RecentClients            int          `json:"recentClients"`
	SpeechIssuesDistribution []IssueCount `json:"speechIssuesDistribution"`
}

// IssueCount is one bucket of the speech issue distribution.
type IssueCount struct {
	Issue string `json:"_id"`
	Count int    `json:"count"`
}

// Counts holds the scalar part of Stats.
type Counts struct {
	Total  int
	Urgent int
	Recent int
}
