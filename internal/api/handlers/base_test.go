package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/handlers"
	"github.com/jroosing/nextdash/internal/config"
	"github.com/jroosing/nextdash/internal/nextdns"
)

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)

	p := api.Group("/profiles/:id")
	p.GET("", h.GetProfile)
	p.PATCH("", h.UpdateProfile)
	p.GET("/security", h.GetSecurity)
	p.PATCH("/security", h.UpdateSecurity)
	p.GET("/privacy", h.GetPrivacy)
	p.PATCH("/privacy", h.UpdatePrivacy)
	p.GET("/parental-control", h.GetParentalControl)
	p.PATCH("/parental-control", h.UpdateParentalControl)
	p.GET("/allowlist", h.GetAllowlist)
	p.POST("/allowlist", h.AddAllowlist)
	p.DELETE("/allowlist/:domain", h.RemoveAllowlist)
	p.GET("/denylist", h.GetDenylist)
	p.POST("/denylist", h.AddDenylist)
	p.DELETE("/denylist/:domain", h.RemoveDenylist)
	p.GET("/analytics", h.GetAnalytics)
	p.GET("/logs", h.GetLogs)

	return r
}

// fakeUpstream stands in for the upstream API and records what reaches it.
type fakeUpstream struct {
	server *httptest.Server
	hits   atomic.Int32

	mu       sync.Mutex
	lastReq  *http.Request
	lastBody []byte
}

func newFakeUpstream(t *testing.T, handler http.HandlerFunc) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.hits.Add(1)
		f.mu.Lock()
		f.lastReq = r
		f.lastBody = body
		f.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) request() (*http.Request, []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq, f.lastBody
}

// newTestRouter wires a handler to a client that talks to upstream.
func newTestRouter(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *fakeUpstream) {
	t.Helper()
	fake := newFakeUpstream(t, upstream)
	client := nextdns.New(nextdns.Options{BaseURL: fake.server.URL, APIKey: "test-key"})
	h := handlers.New(testConfig(), client, nil)
	return setupTestRouter(h), fake
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Host: "localhost", Port: 8080},
		Upstream: config.UpstreamConfig{BaseURL: nextdns.DefaultBaseURL},
		Logging:  config.LoggingConfig{Level: "INFO"},
	}
}

func respondJSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, message, status)
	}
}
