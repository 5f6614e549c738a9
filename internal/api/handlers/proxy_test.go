package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/handlers"
	"github.com/jroosing/nextdash/internal/api/models"
	"github.com/jroosing/nextdash/internal/nextdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Error)
	return resp
}

// ============================================================================
// Validation Tests
// ============================================================================

func TestProxy_BlankProfileIDRejectedBeforeUpstream(t *testing.T) {
	tests := []struct {
		method string
		path   string
		body   string
		want   string
	}{
		{http.MethodGet, "/api/v1/profiles/%20", "", "Profile ID is required"},
		{http.MethodPatch, "/api/v1/profiles/%20", `{"name":"x"}`, "Profile ID is required"},
		{http.MethodGet, "/api/v1/profiles/%20/security", "", "Profile ID is required"},
		{http.MethodPatch, "/api/v1/profiles/%20/privacy", `{}`, "Profile ID is required"},
		{http.MethodGet, "/api/v1/profiles/%20/parental-control", "", "Profile ID is required"},
		{http.MethodGet, "/api/v1/profiles/%20/allowlist", "", "Profile ID is required"},
		{http.MethodPost, "/api/v1/profiles/%20/denylist", `{"domain":"a.com"}`, "Profile ID is required"},
		{http.MethodDelete, "/api/v1/profiles/%20/allowlist/a.com", "", "Profile ID and domain are required"},
		{http.MethodDelete, "/api/v1/profiles/abc123/denylist/%20", "", "Profile ID and domain are required"},
		{http.MethodGet, "/api/v1/profiles/%20/analytics", "", "Profile ID is required"},
		{http.MethodGet, "/api/v1/profiles/%20/logs", "", "Profile ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{}))

			w := performRequest(router, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decodeError(t, w).Message)
			assert.Zero(t, fake.hits.Load(), "no upstream call expected")
		})
	}
}

func TestProxy_AbsentProfileIDRejected(t *testing.T) {
	fake := newFakeUpstream(t, respondJSON(http.StatusOK, map[string]any{}))
	h := handlers.New(testConfig(), nextdns.New(nextdns.Options{BaseURL: fake.server.URL}), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/profiles/", nil)

	h.GetProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Profile ID is required", decodeError(t, w).Message)
	assert.Zero(t, fake.hits.Load())
}

func TestAddToList_MissingDomain(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{}))

	w := performRequest(router, http.MethodPost, "/api/v1/profiles/abc123/allowlist", `{"note":"nothing"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Domain is required", decodeError(t, w).Message)
	assert.Zero(t, fake.hits.Load())
}

func TestAddToList_EmptyOrBlankDomainRejected(t *testing.T) {
	for _, body := range []string{
		`{"domain":"","id":"x.com"}`,
		`{"domain":"   "}`,
		`{"id":"  "}`,
	} {
		t.Run(body, func(t *testing.T) {
			router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{}))

			w := performRequest(router, http.MethodPost, "/api/v1/profiles/abc123/denylist", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Domain is required", decodeError(t, w).Message)
			assert.Zero(t, fake.hits.Load())
		})
	}
}

func TestAddToList_TrimsDomain(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{"id": "ads.example.com"}))

	w := performRequest(router, http.MethodPost, "/api/v1/profiles/abc123/allowlist", `{"domain":"  ads.example.com "}`)

	require.Equal(t, http.StatusCreated, w.Code)
	_, sent := fake.request()
	assert.JSONEq(t, `{"id":"ads.example.com"}`, string(sent))
}

func TestUpdate_MalformedBodyRejected(t *testing.T) {
	for _, path := range []string{
		"/api/v1/profiles/abc123",
		"/api/v1/profiles/abc123/security",
		"/api/v1/profiles/abc123/privacy",
		"/api/v1/profiles/abc123/parental-control",
	} {
		t.Run(path, func(t *testing.T) {
			router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{}))

			w := performRequest(router, http.MethodPatch, path, `{not json`)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeError(t, w).Message, "Invalid request body")
			assert.Zero(t, fake.hits.Load())
		})
	}
}

// ============================================================================
// Profile and Settings Tests
// ============================================================================

func TestGetProfile_RelaysUpstreamBody(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{
		"id":      "abc123",
		"name":    "Home",
		"setup":   map[string]any{"ipv4": []any{"45.90.28.0"}},
		"privacy": map[string]any{"disguisedTrackers": true},
	}))

	w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc123", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"id":"abc123","name":"Home","privacy":{"disguisedTrackers":true},"setup":{"ipv4":["45.90.28.0"]}}`,
		w.Body.String())

	req, _ := fake.request()
	assert.Equal(t, "/profiles/abc123", req.URL.Path)
	assert.Equal(t, "test-key", req.Header.Get(nextdns.APIKeyHeader))
}

func TestGetProfile_RelaysEmptyMembers(t *testing.T) {
	const body = `{"id":"abc","name":"","security":{},"privacy":{"blocklists":[]}}`
	router, _ := newTestRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, body, w.Body.String())
}

func TestUpdateProfile_NullBodySendsEmptyObject(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{"id": "abc123"}))

	w := performRequest(router, http.MethodPatch, "/api/v1/profiles/abc123", `null`)

	require.Equal(t, http.StatusOK, w.Code)
	_, sent := fake.request()
	assert.JSONEq(t, `{}`, string(sent))
}

func TestUpdateSettings_NullBodySendsEmptyGroup(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{"id": "abc123"}))

	w := performRequest(router, http.MethodPatch, "/api/v1/profiles/abc123/security", `null`)

	require.Equal(t, http.StatusOK, w.Code)
	_, sent := fake.request()
	assert.JSONEq(t, `{"security":{}}`, string(sent))
}

func TestUpdateProfile_ForwardsFields(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{"id": "abc123", "name": "Office"}))

	w := performRequest(router, http.MethodPatch, "/api/v1/profiles/abc123", `{"name":"Office"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"abc123","name":"Office"}`, w.Body.String())

	req, body := fake.request()
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.JSONEq(t, `{"name":"Office"}`, string(body))
}

func TestGetSettings_MissingGroupIsEmptyObject(t *testing.T) {
	router, _ := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{"id": "abc123"}))

	for _, path := range []string{"security", "privacy", "parental-control"} {
		w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc123/"+path, "")

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{}`, w.Body.String(), path)
	}
}

func TestUpdateParentalControl_SendsSingleGroup(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{
		"id":              "abc123",
		"parentalControl": map[string]any{"safeSearch": true},
	}))

	w := performRequest(router, http.MethodPatch, "/api/v1/profiles/abc123/parental-control", `{"safeSearch":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"safeSearch":true}`, w.Body.String())

	_, body := fake.request()
	assert.JSONEq(t, `{"parentalControl":{"safeSearch":true}}`, string(body))
}

// ============================================================================
// Error Mapping Tests
// ============================================================================

func TestProxy_UpstreamStatusPropagates(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"get profile", http.MethodGet, "/api/v1/profiles/abc123", "", http.StatusNotFound},
		{"update profile", http.MethodPatch, "/api/v1/profiles/abc123", `{"name":"x"}`, http.StatusForbidden},
		{"get security", http.MethodGet, "/api/v1/profiles/abc123/security", "", http.StatusUnauthorized},
		{"update privacy", http.MethodPatch, "/api/v1/profiles/abc123/privacy", `{"a":true}`, http.StatusBadRequest},
		{"add allowlist", http.MethodPost, "/api/v1/profiles/abc123/allowlist", `{"domain":"a.com"}`, http.StatusConflict},
		{"remove denylist", http.MethodDelete, "/api/v1/profiles/abc123/denylist/a.com", "", http.StatusNotFound},
		{"upstream outage", http.MethodGet, "/api/v1/profiles/abc123", "", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, respondError(tt.status, "upstream says no"))

			w := performRequest(router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decodeError(t, w).Message, "upstream says no")
		})
	}
}

func TestProxy_TransportFailureIs500(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{}))
	fake.server.Close()

	w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc123", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decodeError(t, w).Message)
}

func TestProxy_UpstreamCallSurvivesClientDisconnect(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{"id": "abc123"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/abc123", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), fake.hits.Load())
}

// ============================================================================
// List Tests
// ============================================================================

func TestGetAllowlist_WrapsEntries(t *testing.T) {
	router, _ := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{
		"data": []any{map[string]any{"id": "a.example.com", "active": true}},
	}))

	w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc123/allowlist", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(handlers.DegradedHeader))
	assert.JSONEq(t, `{"data":[{"id":"a.example.com","active":true}]}`, w.Body.String())
}

func TestAddToList_DomainAndIDProduceSamePayload(t *testing.T) {
	for _, kind := range []string{"allowlist", "denylist"} {
		t.Run(kind, func(t *testing.T) {
			var payloads []string
			for _, body := range []string{`{"domain":"ads.example.com"}`, `{"id":"ads.example.com"}`} {
				router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{"id": "ads.example.com", "active": true}))

				w := performRequest(router, http.MethodPost, "/api/v1/profiles/abc123/"+kind, body)

				require.Equal(t, http.StatusCreated, w.Code)
				assert.JSONEq(t, `{"id":"ads.example.com","active":true}`, w.Body.String())

				req, sent := fake.request()
				assert.Equal(t, "/profiles/abc123/"+kind, req.URL.Path)
				payloads = append(payloads, string(sent))
			}
			require.Len(t, payloads, 2)
			assert.JSONEq(t, `{"id":"ads.example.com"}`, payloads[0])
			assert.JSONEq(t, payloads[0], payloads[1])
		})
	}
}

func TestRemoveFromList_NoContentIsSuccess(t *testing.T) {
	router, fake := newTestRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	w := performRequest(router, http.MethodDelete, "/api/v1/profiles/abc123/allowlist/ads.example.com", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	req, _ := fake.request()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/profiles/abc123/allowlist/ads.example.com", req.URL.Path)
}

// ============================================================================
// Degraded Read Tests
// ============================================================================

func TestLossyReads_DegradeToDefaults(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/profiles/abc123/allowlist", `{"data":[]}`},
		{"/api/v1/profiles/abc123/denylist", `{"data":[]}`},
		{"/api/v1/profiles/abc123/analytics", `{"queries":0,"blocked":0,"relayed":0,"domains":[]}`},
		{"/api/v1/profiles/abc123/logs", `{"data":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			router, fake := newTestRouter(t, respondError(http.StatusUnauthorized, "bad key"))

			w := performRequest(router, http.MethodGet, tt.path, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "true", w.Header().Get(handlers.DegradedHeader))
			assert.JSONEq(t, tt.want, w.Body.String())
			assert.Equal(t, int32(1), fake.hits.Load())
		})
	}
}

// ============================================================================
// Report Tests
// ============================================================================

func TestGetAnalytics_ForwardsQueryString(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{
		"queries": 10, "blocked": 2, "relayed": 1, "domains": []any{},
	}))

	w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc123/analytics?from=-7d&to=now&device=tv&device=laptop", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"queries":10,"blocked":2,"relayed":1,"domains":[]}`, w.Body.String())

	req, _ := fake.request()
	assert.Equal(t, "/profiles/abc123/analytics/status", req.URL.Path)
	q := req.URL.Query()
	assert.Equal(t, "-7d", q.Get("from"))
	assert.Equal(t, "now", q.Get("to"))
	assert.Equal(t, []string{"laptop"}, q["device"], "last value of a repeated key wins")
}

func TestGetAnalytics_RelaysUpstreamBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"float counts", `{"queries":1.5e3,"blocked":2}`},
		{"top-level array", `[{"status":"blocked","queries":3}]`},
		{"data envelope", `{"data":[{"status":"default","queries":7}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc123/analytics", "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get(handlers.DegradedHeader))
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestGetLogs_ForwardsQueryStringAndWraps(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{
		"data": []any{map[string]any{"domain": "ads.example.com", "status": 0, "type": "A"}},
	}))

	w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc123/logs?status=blocked&limit=25", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"domain":"ads.example.com","status":0,"type":"A"}]}`, w.Body.String())

	req, _ := fake.request()
	assert.Equal(t, "/profiles/abc123/logs", req.URL.Path)
	assert.Equal(t, "blocked", req.URL.Query().Get("status"))
	assert.Equal(t, "25", req.URL.Query().Get("limit"))
}

func TestGetLogs_NoQueryStringSendsNone(t *testing.T) {
	router, fake := newTestRouter(t, respondJSON(http.StatusOK, map[string]any{"data": []any{}}))

	w := performRequest(router, http.MethodGet, "/api/v1/profiles/abc123/logs", "")

	require.Equal(t, http.StatusOK, w.Code)
	req, _ := fake.request()
	assert.Empty(t, req.URL.RawQuery)
	assert.False(t, strings.HasSuffix(req.RequestURI, "?"))
}
