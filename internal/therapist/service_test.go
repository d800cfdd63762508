package therapist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/logging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/testutil"
)

type mockRepository struct {
	createFunc func(ctx context.Context, t Therapist) (*Therapist, error)
	calls      int
}

func (m *mockRepository) Create(ctx context.Context, t Therapist) (*Therapist, error) {
	m.calls++
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	return nil, errors.New("not implemented")
}

func validSignup() SignupRequest {
	return SignupRequest{
		Name:     " Dr. Ana Lopez ",
		Mobile:   "5551230000",
		Email:    " Ana@Clinic.COM ",
		Password: "s3cret-pass",
	}
}

func TestRegister_HashesPasswordAndPublishes(t *testing.T) {
	var stored Therapist
	repo := &mockRepository{
		createFunc: func(ctx context.Context, th Therapist) (*Therapist, error) {
			stored = th
			return &Therapist{ID: "th-1", Name: th.Name, Mobile: th.Mobile, Email: th.Email, CreatedAt: time.Now()}, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(repo, publisher, nil, logging.Nop(), bcrypt.MinCost)

	created, err := service.Register(context.Background(), validSignup())

	require.NoError(t, err)
	assert.Equal(t, "th-1", created.ID)
	assert.Equal(t, "Dr. Ana Lopez", stored.Name)
	assert.Equal(t, "ana@clinic.com", stored.Email)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))

	var event messaging.TherapistRegisteredEvent
	publisher.DecodeLast(t, messaging.EventTherapistRegistered, &event)
	assert.Equal(t, "th-1", event.Data.TherapistID)
	assert.Equal(t, "ana@clinic.com", event.Data.Email)
	assert.NotContains(t, string(publisher.GetEventsByKey(messaging.EventTherapistRegistered)[0].RawJSON), "s3cret")
}

func TestRegister_ValidationError(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo, nil, nil, logging.Nop(), bcrypt.MinCost)

	_, err := service.Register(context.Background(), SignupRequest{Name: "  ", Email: "nope", Password: "has space"})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ElementsMatch(t, []string{
		"name is required",
		"mobile is required",
		"Please enter a valid email",
		"password must not contain whitespace",
	}, vErr.Messages)
	assert.Equal(t, 0, repo.calls)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockRepository{
		createFunc: func(ctx context.Context, th Therapist) (*Therapist, error) {
			return nil, ErrDuplicateEmail
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(repo, publisher, nil, logging.Nop(), bcrypt.MinCost)

	_, err := service.Register(context.Background(), validSignup())

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 0, publisher.GetEventCount())
}

func TestNewService_ClampsInvalidCost(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil, logging.Nop(), 99)
	assert.Equal(t, bcrypt.DefaultCost, service.bcryptCost)
}
