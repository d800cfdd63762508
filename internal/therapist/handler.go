package therapist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/response"
)

type Handler struct {
	service   ServiceInterface
	responder *response.Responder
}

func NewHandler(service ServiceInterface, responder *response.Responder) *Handler {
	return &Handler{service: service, responder: responder}
}

// Signup handles POST /api/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid JSON payload", err.Error())
		return
	}

	t, err := h.service.Register(r.Context(), req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			h.responder.Fail(w, http.StatusBadRequest, "Validation error", vErr.Messages...)
		case errors.Is(err, ErrDuplicateEmail):
			h.responder.Fail(w, http.StatusBadRequest, "A therapist with this email already exists")
		default:
			h.responder.InternalError(w, r, "Error registering therapist", err)
		}
		return
	}

	h.responder.Created(w, "Therapist registered successfully!", t)
}
