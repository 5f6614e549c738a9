package nextdns

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var errNotJSON = errors.New("decode analytics: body is not JSON")

// FetchAnalytics reads the query status aggregate of a profile. params are
// forwarded as the query string. A JSON body is relayed as is; an upstream
// error or a body that is not JSON yields EmptyAnalytics.
func (c *Client) FetchAnalytics(ctx context.Context, profileID string, params map[string]string) Result[AnalyticsSnapshot] {
	path := withQuery(profilePath(profileID, "analytics", "status"), params)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return degraded(c, "get analytics", profileID, EmptyAnalytics(), err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return Result[AnalyticsSnapshot]{Data: EmptyAnalytics()}
	}
	if !json.Valid(body) {
		return degraded(c, "get analytics", profileID, EmptyAnalytics(), errNotJSON)
	}
	return Result[AnalyticsSnapshot]{Data: AnalyticsSnapshot(body)}
}

// GetAnalytics is FetchAnalytics without the degradation marker.
func (c *Client) GetAnalytics(ctx context.Context, profileID string, params map[string]string) AnalyticsSnapshot {
	return c.FetchAnalytics(ctx, profileID, params).Data
}

type logEnvelope struct {
	Data []LogEntry `json:"data"`
}

// FetchLogs reads query logs of a profile. params are forwarded as the query
// string. Any failure yields an empty list.
func (c *Client) FetchLogs(ctx context.Context, profileID string, params map[string]string) Result[[]LogEntry] {
	body, err := c.do(ctx, http.MethodGet, withQuery(profilePath(profileID, "logs"), params), nil)
	if err != nil {
		return degraded(c, "get logs", profileID, []LogEntry{}, err)
	}

	var env logEnvelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			return degraded(c, "get logs", profileID, []LogEntry{}, fmt.Errorf("decode logs: %w", err))
		}
	}
	if env.Data == nil {
		env.Data = []LogEntry{}
	}
	return Result[[]LogEntry]{Data: env.Data}
}

// GetLogs is FetchLogs without the degradation marker.
func (c *Client) GetLogs(ctx context.Context, profileID string, params map[string]string) []LogEntry {
	return c.FetchLogs(ctx, profileID, params).Data
}
