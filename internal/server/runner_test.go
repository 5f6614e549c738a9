// Package server_test provides behavior tests for the server package.
package server_test

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jroosing/nextdash/internal/config"
	"github.com/jroosing/nextdash/internal/logging"
	"github.com/jroosing/nextdash/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ShutdownTimeout: time.Second,
		},
		Upstream: config.UpstreamConfig{
			BaseURL: "http://127.0.0.1:1",
			APIKey:  "key",
		},
	}
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

// ============================================================================
// Runner Tests
// ============================================================================

func TestRunner_ServesUntilCanceled(t *testing.T) {
	ln := listen(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- server.NewRunner(nil).RunWithListener(ctx, testConfig(), ln) }()

	url := "http://" + ln.Addr().String() + "/api/v1/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunner_ListenError(t *testing.T) {
	ln := listen(t)
	defer ln.Close()

	cfg := testConfig()
	cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port

	err := server.NewRunner(nil).RunWithContext(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

// ============================================================================
// Client Tests
// ============================================================================

func TestNewClient_MissingKeyLogsError(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Configure(logging.Config{Level: "INFO", Output: &buf})

	cfg := testConfig()
	cfg.Upstream.APIKey = ""
	client := server.NewClient(cfg, logger)

	assert.False(t, client.HasCredential())
	assert.Contains(t, buf.String(), "NEXTDNS_API_KEY is not configured")
	assert.Contains(t, buf.String(), "ERROR")
}

func TestNewClient_WithKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Configure(logging.Config{Level: "INFO", Output: &buf})

	client := server.NewClient(testConfig(), logger)

	assert.True(t, client.HasCredential())
	assert.Equal(t, "http://127.0.0.1:1", client.BaseURL())
	assert.NotContains(t, buf.String(), "not configured")
}
