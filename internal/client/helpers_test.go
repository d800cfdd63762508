package client

import (
	"encoding/json"
	"time"
)

func jsonUnmarshal(s string, v interface{}) error {
	return json.Unmarshal([]byte(s), v)
}

const testClientID = "5f0c7d0e-8a1b-4c3d-9e2f-112233445566"

func sampleClient() *Client {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &Client{
		ID:                 testClientID,
		FirstName:          "Maya",
		LastName:           "Rivera",
		Age:                "7",
		Gender:             "female",
		PhoneNumber:        "5551234567",
		Email:              "parent@example.com",
		SpeechIssues:       []string{"voice", "stuttering"},
		ProblemDescription: "Difficulty with /r/ and /s/ sounds in conversation.",
		Urgency:            UrgencyRoutine,
		TherapistID:        "demo-therapist-1",
		Status:             StatusActive,
		CreatedAt:          created,
		UpdatedAt:          created,
	}
}
