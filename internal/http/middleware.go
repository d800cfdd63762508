package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/logging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/response"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/telemetry"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// RecoveryMiddleware turns a panic into a 500 envelope.
func RecoveryMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					logger.Errorw("recovered from panic", "error", err, "method", r.Method, "path", r.URL.Path)
					logging.CaptureError(err, map[string]interface{}{
						"method": r.Method,
						"path":   r.URL.Path,
					})
					response.JSON(w, http.StatusInternalServerError, response.Payload{
						Success: false,
						Message: "Internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger assigns a request id, logs each request when it completes and
// feeds the OpenTelemetry and Prometheus request metrics. Either metrics sink
// may be nil.
func RequestLogger(logger *zap.SugaredLogger, otelMetrics *telemetry.Metrics, promMetrics *PrometheusMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := routeTemplate(r)

			if otelMetrics != nil {
				otelMetrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status, float64(elapsed.Microseconds())/1000)
			}
			promMetrics.Observe(r.Method, route, rec.status, elapsed.Seconds())

			logger.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds(),
				"request_id", requestID,
			)
		})
	}
}

// routeTemplate keeps metric label cardinality bounded by using the matched
// mux template instead of the raw path.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
