package models

import (
	"strings"

	"github.com/jroosing/nextdash/internal/nextdns"
)

// ListResponse wraps allowlist and denylist entries.
type ListResponse struct {
	Data []nextdns.ListEntry `json:"data"`
}

// LogsResponse wraps query log entries.
type LogsResponse struct {
	Data []nextdns.LogEntry `json:"data"`
}

// AddEntryRequest is the body of an allowlist or denylist POST. Domain is
// preferred; ID is accepted for clients that send the upstream shape and is
// only consulted when domain is absent or null.
type AddEntryRequest struct {
	Domain *string `json:"domain,omitempty" example:"ads.example.com"`
	ID     *string `json:"id,omitempty"`
}

// Target returns the trimmed domain to add, or "" when there is none.
func (r AddEntryRequest) Target() string {
	if r.Domain != nil {
		return strings.TrimSpace(*r.Domain)
	}
	if r.ID != nil {
		return strings.TrimSpace(*r.ID)
	}
	return ""
}
