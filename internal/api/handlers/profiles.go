package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/nextdns"
)

// GetProfile godoc
// @Summary Get profile
// @Description Fetches a profile from the upstream API
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} nextdns.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	serve(h, c, read("get profile"), func(ctx context.Context, p pathParams) (*nextdns.Profile, error) {
		return h.client.GetProfile(ctx, p.id())
	})
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Sends a partial profile update upstream and returns the updated profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param fields body object true "Profile fields to change"
// @Success 200 {object} nextdns.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id} [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	serve(h, c, read("update profile"), func(ctx context.Context, p pathParams) (*nextdns.Profile, error) {
		var fields map[string]any
		if err := bindJSON(c, &fields); err != nil {
			return nil, err
		}

		profile, err := h.client.UpdateProfile(ctx, p.id(), fields)
		if err != nil {
			return nil, err
		}
		h.logger.Info("updated profile", "profile", p.id(), "fields", len(fields))
		return profile, nil
	})
}
