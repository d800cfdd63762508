package client

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/pagination"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/response"
)

type Handler struct {
	service   ServiceInterface
	responder *response.Responder
}

func NewHandler(service ServiceInterface, responder *response.Responder) *Handler {
	return &Handler{service: service, responder: responder}
}

// ListClients handles GET /api/clients. Supplying page or limit switches
// to a paginated listing.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.service.ListClients(r.Context(), query.Get("therapistId"), pagination.FromQuery(query))
	if err != nil {
		h.responder.InternalError(w, r, "Error fetching clients", err)
		return
	}

	h.responder.List(w, result.Clients, len(result.Clients), result.Pagination)
}

func (h *Handler) SearchClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	clients, err := h.service.SearchClients(r.Context(), query.Get("therapistId"), query.Get("q"))
	if err != nil {
		if errors.Is(err, ErrSearchQueryRequired) {
			h.responder.Fail(w, http.StatusBadRequest, "Search query is required")
			return
		}
		h.responder.InternalError(w, r, "Error searching clients", err)
		return
	}

	h.responder.List(w, clients, len(clients), nil)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetClient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			h.responder.Fail(w, http.StatusNotFound, "Client not found")
			return
		}
		h.responder.InternalError(w, r, "Error fetching client", err)
		return
	}

	h.responder.OK(w, "", c)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid JSON payload", err.Error())
		return
	}

	c, err := h.service.CreateClient(r.Context(), req)
	if err != nil {
		if h.writeClientError(w, err) {
			return
		}
		h.responder.InternalError(w, r, "Error adding client", err)
		return
	}

	h.responder.Created(w, "Client added successfully", c)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid JSON payload", err.Error())
		return
	}

	c, err := h.service.UpdateClient(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		if h.writeClientError(w, err) {
			return
		}
		h.responder.InternalError(w, r, "Error updating client", err)
		return
	}

	h.responder.OK(w, "Client updated successfully", c)
}

// DeleteClient deactivates the client and returns the updated record.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.DeactivateClient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			h.responder.Fail(w, http.StatusNotFound, "Client not found")
			return
		}
		h.responder.InternalError(w, r, "Error deleting client", err)
		return
	}

	h.responder.OK(w, "Client deactivated successfully", c)
}

// writeClientError answers the domain errors shared by create and update.
// It reports false when err is unexpected.
func (h *Handler) writeClientError(w http.ResponseWriter, err error) bool {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		if len(vErr.Required) > 0 {
			h.responder.MissingFields(w, vErr.Message, vErr.Required, vErr.Messages)
		} else {
			h.responder.Fail(w, http.StatusBadRequest, vErr.Message, vErr.Messages...)
		}
	case errors.Is(err, ErrDuplicatePhone):
		h.responder.Fail(w, http.StatusBadRequest, "A client with this phone number already exists")
	case errors.Is(err, ErrClientNotFound):
		h.responder.Fail(w, http.StatusNotFound, "Client not found")
	default:
		return false
	}
	return true
}
