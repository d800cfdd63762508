package http

import (
	"context"
	"net/http"
	"time"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/response"
)

// HealthResponse is the liveness payload. It is not wrapped in data.
type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// HealthHandler reports liveness with the current database reachability.
// It always answers 200.
func HealthHandler(ping func(ctx context.Context) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "disconnected"
		if ping != nil && ping(r.Context()) {
			status = "connected"
		}

		response.JSON(w, http.StatusOK, HealthResponse{
			Success:   true,
			Message:   "Server is running",
			Timestamp: time.Now().UTC(),
			Database:  status,
		})
	}
}
