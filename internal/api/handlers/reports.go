package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/models"
	"github.com/jroosing/nextdash/internal/nextdns"
)

// GetAnalytics godoc
// @Summary Get analytics
// @Description Returns the query status aggregate. The query string (from, to, device, ...) is forwarded unchanged.
// @Description A zeroed snapshot with X-Upstream-Degraded is returned when the upstream fails.
// @Tags reports
// @Produce json
// @Param id path string true "Profile ID"
// @Param from query string false "Start of the window, e.g. -7d"
// @Param to query string false "End of the window"
// @Success 200 {object} nextdns.AnalyticsSnapshot
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/analytics [get]
func (h *Handler) GetAnalytics(c *gin.Context) {
	params := queryParams(c)
	serveLossy(h, c, read("get analytics"),
		func(ctx context.Context, p pathParams) nextdns.Result[nextdns.AnalyticsSnapshot] {
			return h.client.FetchAnalytics(ctx, p.id(), params)
		},
		func(s nextdns.AnalyticsSnapshot) nextdns.AnalyticsSnapshot { return s })
}

// GetLogs godoc
// @Summary Get query logs
// @Description Returns query log entries. The query string is forwarded unchanged.
// @Description An empty list with X-Upstream-Degraded is returned when the upstream fails.
// @Tags reports
// @Produce json
// @Param id path string true "Profile ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} models.LogsResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/logs [get]
func (h *Handler) GetLogs(c *gin.Context) {
	params := queryParams(c)
	serveLossy(h, c, read("get logs"),
		func(ctx context.Context, p pathParams) nextdns.Result[[]nextdns.LogEntry] {
			return h.client.FetchLogs(ctx, p.id(), params)
		},
		func(entries []nextdns.LogEntry) models.LogsResponse {
			return models.LogsResponse{Data: entries}
		})
}
