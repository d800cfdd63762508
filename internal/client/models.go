package client

import (
	"bytes"
	"encoding/json"
	"time"
)

// Enumerations accepted by the clients table.
var (
	Genders      = []string{"male", "female", "other", "prefer-not-to-say"}
	SpeechIssues = []string{"articulation", "voice", "stuttering", "language", "apraxia", "dysarthria", "social", "other"}
	Urgencies    = []string{"routine", "moderate", "urgent"}
	Statuses     = []string{"active", "inactive", "completed"}
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	UrgencyRoutine = "routine"
	UrgencyUrgent  = "urgent"
)

// Client is a speech-therapy client record.
type Client struct {
	ID                 string     `json:"_id"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Age                string     `json:"age"`
	Gender             string     `json:"gender"`
	PhoneNumber        string     `json:"phoneNumber"`
	Email              string     `json:"email,omitempty"`
	Address            string     `json:"address,omitempty"`
	SpeechIssues       []string   `json:"speechIssues"`
	ProblemDescription string     `json:"problemDescription"`
	ReferredBy         string     `json:"referredBy,omitempty"`
	Urgency            string     `json:"urgency"`
	TherapistID        string     `json:"therapistId"`
	Status             string     `json:"status"`
	Sessions           int        `json:"sessions"`
	LastSession        *time.Time `json:"lastSession,omitempty"`
	Articulation       int        `json:"articulation"`
	Voice              int        `json:"voice"`
	Stuttering         int        `json:"stuttering"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// CreateClientRequest is the body of POST /api/clients.
type CreateClientRequest struct {
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Age                FlexString `json:"age"`
	Gender             string     `json:"gender"`
	PhoneNumber        string     `json:"phoneNumber"`
	Email              string     `json:"email"`
	Address            string     `json:"address"`
	SpeechIssues       []string   `json:"speechIssues"`
	ProblemDescription string     `json:"problemDescription"`
	ReferredBy         string     `json:"referredBy"`
	Urgency            string     `json:"urgency"`
	TherapistID        string     `json:"therapistId"`
}

// UpdateClientRequest is a partial update. Nil fields are left unchanged;
// the identifier and creation time are not updatable.
type UpdateClientRequest struct {
	FirstName          *string     `json:"firstName"`
	LastName           *string     `json:"lastName"`
	Age                *FlexString `json:"age"`
	Gender             *string     `json:"gender"`
	PhoneNumber        *string     `json:"phoneNumber"`
	Email              *string     `json:"email"`
	Address            *string     `json:"address"`
	SpeechIssues       *[]string   `json:"speechIssues"`
	ProblemDescription *string     `json:"problemDescription"`
	ReferredBy         *string     `json:"referredBy"`
	Urgency            *string     `json:"urgency"`
	TherapistID        *string     `json:"therapistId"`
	Status             *string     `json:"status"`
	Sessions           *int        `json:"sessions"`
	LastSession        *time.Time  `json:"lastSession"`
	Articulation       *int        `json:"articulation"`
	Voice              *int        `json:"voice"`
	Stuttering         *int        `json:"stuttering"`
}

// IsEmpty reports whether no field was supplied.
func (r UpdateClientRequest) IsEmpty() bool {
	return r == UpdateClientRequest{}
}

// FlexString accepts either a JSON string or a JSON number. Age arrives
// from form dropdowns in both shapes.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
