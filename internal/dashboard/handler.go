package dashboard

import (
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

// GetStats handles GET /api/dashboard/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), r.URL.Query().Get("therapistId"))
	if err != nil {
		h.responder.InternalError(w, r, "Error fetching dashboard statistics", err)
		return
	}

	h.responder.OK(w, "", stats)
}
