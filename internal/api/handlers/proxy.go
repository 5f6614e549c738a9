package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/models"
	"github.com/jroosing/nextdash/internal/nextdns"
)

// DegradedHeader is set on list, analytics and log responses that carry a
// default body because the upstream read failed.
const DegradedHeader = "X-Upstream-Degraded"

const (
	msgProfileRequired       = "Profile ID is required"
	msgProfileDomainRequired = "Profile ID and domain are required"
	msgDomainRequired        = "Domain is required"
)

// endpoint describes one proxy route for the shared adapter.
type endpoint struct {
	action  string
	params  []string
	missing string
	status  int
}

func read(action string) endpoint {
	return endpoint{action: action, params: []string{"id"}, missing: msgProfileRequired, status: http.StatusOK}
}

func create(action string) endpoint {
	return endpoint{action: action, params: []string{"id"}, missing: msgProfileRequired, status: http.StatusCreated}
}

func remove(action string) endpoint {
	return endpoint{action: action, params: []string{"id", "domain"}, missing: msgProfileDomainRequired, status: http.StatusOK}
}

type pathParams map[string]string

func (p pathParams) id() string { return p["id"] }

// requestError is a client mistake detected before any upstream call.
type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) error {
	return &requestError{message: message}
}

// serve runs the validate, call, respond sequence shared by every proxy route
// whose upstream failures propagate.
func serve[T any](h *Handler, c *gin.Context, ep endpoint, call func(context.Context, pathParams) (T, error)) {
	p, ok := requireParams(c, ep)
	if !ok {
		return
	}

	// The upstream call outlives a disconnected browser.
	ctx := context.WithoutCancel(c.Request.Context())

	out, err := call(ctx, p)
	if err != nil {
		h.respondError(c, ep, p, err)
		return
	}
	c.JSON(ep.status, out)
}

// serveLossy is serve for reads that degrade to a default instead of failing.
func serveLossy[T, R any](h *Handler, c *gin.Context, ep endpoint, call func(context.Context, pathParams) nextdns.Result[T], wrap func(T) R) {
	p, ok := requireParams(c, ep)
	if !ok {
		return
	}

	res := call(context.WithoutCancel(c.Request.Context()), p)
	if res.Degraded {
		c.Header(DegradedHeader, "true")
	}
	c.JSON(ep.status, wrap(res.Data))
}

func requireParams(c *gin.Context, ep endpoint) (pathParams, bool) {
	p := make(pathParams, len(ep.params))
	for _, name := range ep.params {
		v := strings.TrimSpace(c.Param(name))
		if v == "" {
			c.JSON(http.StatusBadRequest, models.NewError(ep.missing))
			return nil, false
		}
		p[name] = v
	}
	return p, true
}

func (h *Handler) respondError(c *gin.Context, ep endpoint, p pathParams, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		c.JSON(http.StatusBadRequest, models.NewError(reqErr.message))
		return
	}

	status := http.StatusInternalServerError
	if s, ok := nextdns.StatusCode(err); ok && s >= 400 && s <= 599 {
		status = s
	}

	h.logger.Error("proxy request failed",
		"action", ep.action,
		"profile", p.id(),
		"status", status,
		"err", err,
	)
	c.JSON(status, models.NewError(err.Error()))
}

// bindJSON decodes the request body into v, reporting malformed input as a
// client error.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return badRequest("Invalid request body: " + err.Error())
	}
	return nil
}

// queryParams flattens the query string; the last value of a repeated key wins.
func queryParams(c *gin.Context) map[string]string {
	q := c.Request.URL.Query()
	out := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[len(v)-1]
		}
	}
	return out
}
