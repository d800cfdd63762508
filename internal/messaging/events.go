package messaging

import (
	"time"

	"github.com/google/uuid"
)

const ServiceName = "speech-therapy-service"

// Event routing keys
const (
	EventClientCreated     = "client.created"
	EventClientUpdated     = "client.updated"
	EventClientDeactivated = "client.deactivated"

	EventTherapistRegistered = "therapist.registered"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// ClientEvent is published after a client record is created, updated or deactivated.
type ClientEvent struct {
	BaseEvent
	Data ClientEventData `json:"data"`
}

type ClientEventData struct {
	ClientID     string    `json:"client_id"`
	TherapistID  string    `json:"therapist_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Urgency      string    `json:"urgency"`
	Status       string    `json:"status"`
	SpeechIssues []string  `json:"speech_issues"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// TherapistRegisteredEvent is published after a successful signup.
// The password hash never leaves the service.
type TherapistRegisteredEvent struct {
	BaseEvent
	Data TherapistRegisteredData `json:"data"`
}

type TherapistRegisteredData struct {
	TherapistID  string    `json:"therapist_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		ServiceName: ServiceName,
	}
}
