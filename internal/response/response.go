package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/logging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/pagination"
)

// Payload is the envelope every route answers with.
type Payload struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Count      *int             `json:"count,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Errors     []string         `json:"errors,omitempty"`
	Required   []string         `json:"required,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// Responder writes envelopes. In development mode the text of unexpected
// errors is returned to the caller; otherwise a generic message is sent.
type Responder struct {
	logger      *zap.SugaredLogger
	development bool
}

func NewResponder(logger *zap.SugaredLogger, development bool) *Responder {
	return &Responder{logger: logger, development: development}
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (rs *Responder) OK(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, Payload{Success: true, Message: message, Data: data})
}

func (rs *Responder) Created(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusCreated, Payload{Success: true, Message: message, Data: data})
}

// List writes a collection with its count. meta is nil for unpaginated listings.
func (rs *Responder) List(w http.ResponseWriter, data interface{}, count int, meta *pagination.Meta) {
	JSON(w, http.StatusOK, Payload{Success: true, Data: data, Count: &count, Pagination: meta})
}

func (rs *Responder) Fail(w http.ResponseWriter, status int, message string, errs ...string) {
	JSON(w, status, Payload{Success: false, Message: message, Errors: errs})
}

// MissingFields answers a 400 naming the required fields.
func (rs *Responder) MissingFields(w http.ResponseWriter, message string, required, errs []string) {
	JSON(w, http.StatusBadRequest, Payload{Success: false, Message: message, Errors: errs, Required: required})
}

// InternalError logs and reports err, then answers 500 with message.
func (rs *Responder) InternalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	rs.logger.Errorw(message, "error", err, "method", r.Method, "path", r.URL.Path)
	logging.CaptureError(err, map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
	})

	detail := "Something went wrong"
	if rs.development {
		detail = err.Error()
	}
	JSON(w, http.StatusInternalServerError, Payload{Success: false, Message: message, Error: detail})
}
