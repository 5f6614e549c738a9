package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/nextdns"
)

func (h *Handler) getSettings(c *gin.Context, group nextdns.SettingsGroup) {
	serve(h, c, read("get "+string(group)), func(ctx context.Context, p pathParams) (nextdns.Settings, error) {
		return h.client.GetSettings(ctx, p.id(), group)
	})
}

func (h *Handler) updateSettings(c *gin.Context, group nextdns.SettingsGroup) {
	serve(h, c, read("update "+string(group)), func(ctx context.Context, p pathParams) (nextdns.Settings, error) {
		var settings nextdns.Settings
		if err := bindJSON(c, &settings); err != nil {
			return nil, err
		}

		updated, err := h.client.UpdateSettings(ctx, p.id(), group, settings)
		if err != nil {
			return nil, err
		}
		h.logger.Info("updated settings", "profile", p.id(), "group", group)
		return updated, nil
	})
}

// GetSecurity godoc
// @Summary Get security settings
// @Description Returns the security group of a profile, {} when absent
// @Tags settings
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/security [get]
func (h *Handler) GetSecurity(c *gin.Context) {
	h.getSettings(c, nextdns.SecurityGroup)
}

// UpdateSecurity godoc
// @Summary Update security settings
// @Tags settings
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param settings body map[string]interface{} true "Security settings"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/security [patch]
func (h *Handler) UpdateSecurity(c *gin.Context) {
	h.updateSettings(c, nextdns.SecurityGroup)
}

// GetPrivacy godoc
// @Summary Get privacy settings
// @Tags settings
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/privacy [get]
func (h *Handler) GetPrivacy(c *gin.Context) {
	h.getSettings(c, nextdns.PrivacyGroup)
}

// UpdatePrivacy godoc
// @Summary Update privacy settings
// @Tags settings
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param settings body map[string]interface{} true "Privacy settings"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/privacy [patch]
func (h *Handler) UpdatePrivacy(c *gin.Context) {
	h.updateSettings(c, nextdns.PrivacyGroup)
}

// GetParentalControl godoc
// @Summary Get parental control settings
// @Tags settings
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/parental-control [get]
func (h *Handler) GetParentalControl(c *gin.Context) {
	h.getSettings(c, nextdns.ParentalControlGroup)
}

// UpdateParentalControl godoc
// @Summary Update parental control settings
// @Tags settings
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param settings body map[string]interface{} true "Parental control settings"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/parental-control [patch]
func (h *Handler) UpdateParentalControl(c *gin.Context) {
	h.updateSettings(c, nextdns.ParentalControlGroup)
}
