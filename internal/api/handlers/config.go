package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/models"
)

// GetConfig godoc
// @Summary Get current configuration
// @Description Returns the current server configuration. Secrets are reported only as configured or not.
// @Tags config
// @Produce json
// @Success 200 {object} models.ConfigResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	if h.cfg == nil {
		c.JSON(http.StatusInternalServerError, models.NewError("config unavailable"))
		return
	}

	timeout := "default"
	if h.cfg.Upstream.Timeout > 0 {
		timeout = h.cfg.Upstream.Timeout.String()
	}

	resp := models.ConfigResponse{
		Server: models.ServerConfigResponse{
			Host:             h.cfg.Server.Host,
			Port:             h.cfg.Server.Port,
			APIKeyConfigured: h.cfg.Server.APIKey != "",
		},
		Upstream: models.UpstreamConfigResponse{
			BaseURL:          h.cfg.Upstream.BaseURL,
			Timeout:          timeout,
			APIKeyConfigured: h.cfg.Upstream.APIKey != "",
		},
		Logging:   h.cfg.Logging,
		RateLimit: h.cfg.RateLimit,
		UI:        h.cfg.UI,
	}

	c.JSON(http.StatusOK, resp)
}
