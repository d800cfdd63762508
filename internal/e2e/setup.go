//go:build integration

package e2e

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/config"
	httpserver "github.com/WailSalutem-Health-Care/speech-therapy-service/internal/http"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/logging"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/testutil"
)

// TestServer is a running API backed by the integration database and an
// in-memory event publisher.
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
}

// SetupE2ETest starts the full router against a migrated, empty database.
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mockPublisher := testutil.NewMockPublisher()

	cfg := &config.Config{
		Env:             "test",
		DefaultTenantID: config.DefaultTherapistID,
		AllowedOrigins:  []string{"*"},
		BcryptCost:      4,
	}

	router := httpserver.SetupRouter(httpserver.Dependencies{
		Config:    cfg,
		DB:        db,
		Logger:    logging.Nop(),
		Publisher: mockPublisher,
		Registry:  prometheus.NewRegistry(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:        server,
		DB:            db,
		MockPublisher: mockPublisher,
	}
}

// NewClient creates an HTTP test client for this server
func (ts *TestServer) NewClient() *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL)
}
