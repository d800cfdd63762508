package http

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/client"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/config"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/dashboard"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/db"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/response"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/telemetry"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/therapist"
)

// Dependencies are the collaborators the router wires into the handlers.
// Publisher, Metrics and Registry may be nil.
type Dependencies struct {
	Config    *config.Config
	DB        *sql.DB
	Logger    *zap.SugaredLogger
	Publisher messaging.PublisherInterface
	Metrics   *telemetry.Metrics
	Registry  *prometheus.Registry
}

// SetupRouter initializes all routes for the application
func SetupRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	responder := response.NewResponder(deps.Logger, cfg.IsDevelopment())

	var (
		clientMetrics    client.MetricsRecorder
		dashboardMetrics dashboard.MetricsRecorder
		therapistMetrics therapist.MetricsRecorder
	)
	if deps.Metrics != nil {
		clientMetrics = deps.Metrics
		dashboardMetrics = deps.Metrics
		therapistMetrics = deps.Metrics
	}

	clientRepo := client.NewRepository(deps.DB)
	clientService := client.NewService(clientRepo, deps.Publisher, clientMetrics, deps.Logger, cfg.DefaultTenantID)
	clientHandler := client.NewHandler(clientService, responder)

	dashboardRepo := dashboard.NewRepository(deps.DB)
	dashboardService := dashboard.NewService(dashboardRepo, dashboardMetrics, cfg.DefaultTenantID)
	dashboardHandler := dashboard.NewHandler(dashboardService, responder)

	therapistRepo := therapist.NewRepository(deps.DB)
	therapistService := therapist.NewService(therapistRepo, deps.Publisher, therapistMetrics, deps.Logger, cfg.BcryptCost)
	therapistHandler := therapist.NewHandler(therapistService, responder)

	var ping func(ctx context.Context) bool
	if deps.DB != nil {
		ping = func(ctx context.Context) bool { return db.Ping(ctx, deps.DB) }
	}

	var registerer prometheus.Registerer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = deps.Registry
	}
	promMetrics := NewPrometheusMetrics(registerer)
	requestLogger := RequestLogger(deps.Logger, deps.Metrics, promMetrics)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("speech-therapy-service"))
	r.Use(requestLogger)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", HealthHandler(ping)).Methods("GET")

	// search is registered before {id} so it is not captured as an id
	api.HandleFunc("/clients/search", clientHandler.SearchClients).Methods("GET")
	api.HandleFunc("/clients", clientHandler.ListClients).Methods("GET")
	api.HandleFunc("/clients", clientHandler.CreateClient).Methods("POST")
	api.HandleFunc("/clients/{id}", clientHandler.GetClient).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.UpdateClient).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientHandler.DeleteClient).Methods("DELETE")

	api.HandleFunc("/dashboard/stats", dashboardHandler.GetStats).Methods("GET")

	api.HandleFunc("/signup", therapistHandler.Signup).Methods("POST")

	if dir := cfg.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.PathPrefix("/").
				MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
					return !strings.HasPrefix(req.URL.Path, "/api/")
				}).
				Handler(staticHandler(dir)).
				Methods("GET", "HEAD")
		}
	}

	notFound := requestLogger(http.HandlerFunc(routeNotFound))
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notFound

	var handler http.Handler = r
	handler = CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = RecoveryMiddleware(deps.Logger)(handler)
	return handler
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusNotFound, response.Payload{
		Success: false,
		Message: "Route not found",
	})
}

// staticHandler serves files under dir. Paths with no file behind them get
// the JSON 404 envelope instead of the file server's plain-text page.
func staticHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if _, err := os.Stat(name); err != nil {
			routeNotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
