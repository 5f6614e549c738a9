package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/models"
	"github.com/jroosing/nextdash/internal/nextdns"
)

func (h *Handler) getList(c *gin.Context, kind nextdns.ListKind) {
	serveLossy(h, c, read("get "+string(kind)),
		func(ctx context.Context, p pathParams) nextdns.Result[[]nextdns.ListEntry] {
			return h.client.FetchList(ctx, kind, p.id())
		},
		func(entries []nextdns.ListEntry) models.ListResponse {
			return models.ListResponse{Data: entries}
		})
}

func (h *Handler) addToList(c *gin.Context, kind nextdns.ListKind) {
	serve(h, c, create("add to "+string(kind)), func(ctx context.Context, p pathParams) (*nextdns.ListEntry, error) {
		var req models.AddEntryRequest
		if err := bindJSON(c, &req); err != nil {
			return nil, err
		}
		domain := req.Target()
		if domain == "" {
			return nil, badRequest(msgDomainRequired)
		}

		entry, err := h.client.AddToList(ctx, kind, p.id(), domain)
		if err != nil {
			return nil, err
		}
		h.logger.Info("added domain", "list", kind, "profile", p.id(), "domain", domain)
		return entry, nil
	})
}

func (h *Handler) removeFromList(c *gin.Context, kind nextdns.ListKind) {
	serve(h, c, remove("remove from "+string(kind)), func(ctx context.Context, p pathParams) (models.SuccessResponse, error) {
		if err := h.client.RemoveFromList(ctx, kind, p.id(), p["domain"]); err != nil {
			return models.SuccessResponse{}, err
		}
		h.logger.Info("removed domain", "list", kind, "profile", p.id(), "domain", p["domain"])
		return models.SuccessResponse{Success: true}, nil
	})
}

// GetAllowlist godoc
// @Summary Get allowlist
// @Description Returns the allowlist entries; an empty list with X-Upstream-Degraded when the upstream fails
// @Tags lists
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/allowlist [get]
func (h *Handler) GetAllowlist(c *gin.Context) {
	h.getList(c, nextdns.Allowlist)
}

// AddAllowlist godoc
// @Summary Add domain to allowlist
// @Tags lists
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param entry body models.AddEntryRequest true "Domain to add"
// @Success 201 {object} nextdns.ListEntry
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/allowlist [post]
func (h *Handler) AddAllowlist(c *gin.Context) {
	h.addToList(c, nextdns.Allowlist)
}

// RemoveAllowlist godoc
// @Summary Remove domain from allowlist
// @Tags lists
// @Produce json
// @Param id path string true "Profile ID"
// @Param domain path string true "Domain"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/allowlist/{domain} [delete]
func (h *Handler) RemoveAllowlist(c *gin.Context) {
	h.removeFromList(c, nextdns.Allowlist)
}

// GetDenylist godoc
// @Summary Get denylist
// @Description Returns the denylist entries; an empty list with X-Upstream-Degraded when the upstream fails
// @Tags lists
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/denylist [get]
func (h *Handler) GetDenylist(c *gin.Context) {
	h.getList(c, nextdns.Denylist)
}

// AddDenylist godoc
// @Summary Add domain to denylist
// @Tags lists
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param entry body models.AddEntryRequest true "Domain to add"
// @Success 201 {object} nextdns.ListEntry
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/denylist [post]
func (h *Handler) AddDenylist(c *gin.Context) {
	h.addToList(c, nextdns.Denylist)
}

// RemoveDenylist godoc
// @Summary Remove domain from denylist
// @Tags lists
// @Produce json
// @Param id path string true "Profile ID"
// @Param domain path string true "Domain"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{id}/denylist/{domain} [delete]
func (h *Handler) RemoveDenylist(c *gin.Context) {
	h.removeFromList(c, nextdns.Denylist)
}
