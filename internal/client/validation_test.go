package client

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateClientRequest {
	return CreateClientRequest{
		FirstName:          "  Maya ",
		LastName:           "Rivera",
		Age:                "7",
		Gender:             "female",
		PhoneNumber:        "(555) 123-4567",
		Email:              "  Parent@Example.COM ",
		SpeechIssues:       []string{"voice", "stuttering", "voice"},
		ProblemDescription: "Difficulty with /r/ and /s/ sounds in conversation.",
	}
}

func TestNormalizeCreate(t *testing.T) {
	c := NormalizeCreate(validCreateRequest(), "demo-therapist-1")

	assert.Equal(t, "Maya", c.FirstName)
	assert.Equal(t, "5551234567", c.PhoneNumber)
	assert.Equal(t, "parent@example.com", c.Email)
	assert.Equal(t, []string{"voice", "stuttering"}, c.SpeechIssues)
	assert.Equal(t, UrgencyRoutine, c.Urgency)
	assert.Equal(t, "demo-therapist-1", c.TherapistID)
	assert.Equal(t, StatusActive, c.Status)
	assert.Equal(t, 0, c.Sessions)
	assert.NoError(t, ValidateNew(c))
}

func TestNormalizeCreateKeepsExplicitValues(t *testing.T) {
	req := validCreateRequest()
	req.Urgency = "urgent"
	req.TherapistID = "therapist-42"

	c := NormalizeCreate(req, "demo-therapist-1")

	assert.Equal(t, "urgent", c.Urgency)
	assert.Equal(t, "therapist-42", c.TherapistID)
}

func TestValidateNewProblemDescriptionBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"19 characters", 19, true},
		{"20 characters", 20, false},
		{"1000 characters", 1000, false},
		{"1001 characters", 1001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			req.ProblemDescription = strings.Repeat("a", tt.length)

			err := ValidateNew(NormalizeCreate(req, "demo-therapist-1"))
			if tt.wantErr {
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, MsgValidationError, vErr.Message)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNewCountsCharactersNotBytes(t *testing.T) {
	req := validCreateRequest()
	req.ProblemDescription = strings.Repeat("é", 20)

	assert.NoError(t, ValidateNew(NormalizeCreate(req, "demo-therapist-1")))
}

func TestValidateNewAggregatesEveryViolation(t *testing.T) {
	req := validCreateRequest()
	req.PhoneNumber = "12345"
	req.Email = "not-an-email"
	req.Gender = "unknown"
	req.Urgency = "someday"
	req.SpeechIssues = []string{"voice", "lisp"}

	err := ValidateNew(NormalizeCreate(req, "demo-therapist-1"))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, MsgValidationError, vErr.Message)
	assert.Empty(t, vErr.Required)
	assert.ElementsMatch(t, []string{
		"Gender must be one of: male, female, other, prefer-not-to-say",
		"Phone number must be 10 digits",
		"Please enter a valid email",
		"Speech issues must be one of: articulation, voice, stuttering, language, apraxia, dysarthria, social, other",
		"Urgency must be one of: routine, moderate, urgent",
	}, vErr.Messages)
}

func TestValidateNewMissingFields(t *testing.T) {
	err := ValidateNew(NormalizeCreate(CreateClientRequest{FirstName: "   "}, "demo-therapist-1"))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, MsgMissingFields, vErr.Message)
	assert.Equal(t, RequiredFields, vErr.Required)
	assert.Contains(t, vErr.Messages, "First name is required")
	assert.Contains(t, vErr.Messages, "Problem description is required")
}

func TestPhoneWithoutDigitsFailsFormat(t *testing.T) {
	req := validCreateRequest()
	req.PhoneNumber = "call me"

	err := ValidateNew(NormalizeCreate(req, "demo-therapist-1"))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"Phone number must be 10 digits"}, vErr.Messages)
}

func TestValidateUpdateChecksOnlySuppliedFields(t *testing.T) {
	assert.NoError(t, ValidateUpdate(UpdateClientRequest{}))

	sessions := 3
	voice := 100
	assert.NoError(t, ValidateUpdate(NormalizeUpdate(UpdateClientRequest{Sessions: &sessions, Voice: &voice})))

	negative := -1
	over := 101
	status := "archived"
	blank := "  "
	err := ValidateUpdate(NormalizeUpdate(UpdateClientRequest{
		Sessions:     &negative,
		Articulation: &over,
		Status:       &status,
		FirstName:    &blank,
	}))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, MsgValidationError, vErr.Message)
	assert.ElementsMatch(t, []string{
		"First name is required",
		"Status must be one of: active, inactive, completed",
		"Sessions cannot be negative",
		"Articulation progress must be between 0 and 100",
	}, vErr.Messages)
}

func TestNormalizeUpdate(t *testing.T) {
	phone := "555.987.6543"
	email := " New@Mail.org"
	issues := []string{"apraxia", "apraxia", "social"}
	age := FlexString(" 9 ")

	out := NormalizeUpdate(UpdateClientRequest{PhoneNumber: &phone, Email: &email, SpeechIssues: &issues, Age: &age})

	assert.Equal(t, "5559876543", *out.PhoneNumber)
	assert.Equal(t, "new@mail.org", *out.Email)
	assert.Equal(t, []string{"apraxia", "social"}, *out.SpeechIssues)
	assert.Equal(t, FlexString("9"), *out.Age)
	assert.Nil(t, out.FirstName)
	assert.Equal(t, "555.987.6543", phone)
}

func TestNormalizeUpdateTrimsTextFields(t *testing.T) {
	desc := "  Needs help with fluency in long conversations.  "
	gender := " female "
	urgency := " urgent\t"
	status := " inactive "

	out := NormalizeUpdate(UpdateClientRequest{
		ProblemDescription: &desc,
		Gender:             &gender,
		Urgency:            &urgency,
		Status:             &status,
	})

	assert.Equal(t, "Needs help with fluency in long conversations.", *out.ProblemDescription)
	assert.Equal(t, "female", *out.Gender)
	assert.Equal(t, "urgent", *out.Urgency)
	assert.Equal(t, "inactive", *out.Status)
	assert.NoError(t, ValidateUpdate(out))
}

func TestFlexStringAcceptsNumbers(t *testing.T) {
	var req CreateClientRequest
	require.NoError(t, jsonUnmarshal(`{"age": 7}`, &req))
	assert.Equal(t, FlexString("7"), req.Age)

	require.NoError(t, jsonUnmarshal(`{"age": "4-6"}`, &req))
	assert.Equal(t, FlexString("4-6"), req.Age)

	assert.Error(t, jsonUnmarshal(`{"age": true}`, &req))
}
