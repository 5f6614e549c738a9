package nextdns

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type listEnvelope struct {
	Data []ListEntry `json:"data"`
}

// FetchList reads the allowlist or denylist of a profile. Any failure yields an
// empty list marked as degraded.
func (c *Client) FetchList(ctx context.Context, kind ListKind, profileID string) Result[[]ListEntry] {
	body, err := c.do(ctx, http.MethodGet, profilePath(profileID, string(kind)), nil)
	if err != nil {
		return degraded(c, "get "+string(kind), profileID, []ListEntry{}, err)
	}

	var env listEnvelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			return degraded(c, "get "+string(kind), profileID, []ListEntry{}, fmt.Errorf("decode %s: %w", kind, err))
		}
	}
	if env.Data == nil {
		env.Data = []ListEntry{}
	}
	return Result[[]ListEntry]{Data: env.Data}
}

// AddToList creates an entry whose identifier is the domain.
func (c *Client) AddToList(ctx context.Context, kind ListKind, profileID, domain string) (*ListEntry, error) {
	body, err := c.do(ctx, http.MethodPost, profilePath(profileID, string(kind)), map[string]string{"id": domain})
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		return &ListEntry{ID: domain}, nil
	}
	var entry ListEntry
	if err := json.Unmarshal(unwrapData(body), &entry); err != nil {
		return nil, fmt.Errorf("decode %s entry: %w", kind, err)
	}
	return &entry, nil
}

// RemoveFromList deletes the entry for domain.
func (c *Client) RemoveFromList(ctx context.Context, kind ListKind, profileID, domain string) error {
	_, err := c.do(ctx, http.MethodDelete, profilePath(profileID, string(kind), url.PathEscape(domain)), nil)
	return err
}

func (c *Client) FetchAllowlist(ctx context.Context, profileID string) Result[[]ListEntry] {
	return c.FetchList(ctx, Allowlist, profileID)
}

func (c *Client) GetAllowlist(ctx context.Context, profileID string) []ListEntry {
	return c.FetchList(ctx, Allowlist, profileID).Data
}

func (c *Client) AddToAllowlist(ctx context.Context, profileID, domain string) (*ListEntry, error) {
	return c.AddToList(ctx, Allowlist, profileID, domain)
}

func (c *Client) RemoveFromAllowlist(ctx context.Context, profileID, domain string) error {
	return c.RemoveFromList(ctx, Allowlist, profileID, domain)
}

func (c *Client) FetchDenylist(ctx context.Context, profileID string) Result[[]ListEntry] {
	return c.FetchList(ctx, Denylist, profileID)
}

func (c *Client) GetDenylist(ctx context.Context, profileID string) []ListEntry {
	return c.FetchList(ctx, Denylist, profileID).Data
}

func (c *Client) AddToDenylist(ctx context.Context, profileID, domain string) (*ListEntry, error) {
	return c.AddToList(ctx, Denylist, profileID, domain)
}

func (c *Client) RemoveFromDenylist(ctx context.Context, profileID, domain string) error {
	return c.RemoveFromList(ctx, Denylist, profileID, domain)
}
