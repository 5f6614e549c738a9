package nextdns

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetProfile fetches a profile.
func (c *Client) GetProfile(ctx context.Context, profileID string) (*Profile, error) {
	body, err := c.do(ctx, http.MethodGet, profilePath(profileID), nil)
	if err != nil {
		return nil, err
	}
	return decodeProfile(body)
}

// UpdateProfile sends a partial update and returns the profile the upstream
// reports back. The upstream may answer 204, in which case the profile is empty.
// A nil fields map is sent as {}.
func (c *Client) UpdateProfile(ctx context.Context, profileID string, fields map[string]any) (*Profile, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	body, err := c.do(ctx, http.MethodPatch, profilePath(profileID), fields)
	if err != nil {
		return nil, err
	}
	return decodeProfile(body)
}

// GetSettings returns one settings group of a profile. It costs a full profile
// fetch; a profile without the group yields an empty mapping.
func (c *Client) GetSettings(ctx context.Context, profileID string, group SettingsGroup) (Settings, error) {
	profile, err := c.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return profile.Group(group), nil
}

// UpdateSettings replaces one settings group and returns it as reported back.
func (c *Client) UpdateSettings(ctx context.Context, profileID string, group SettingsGroup, settings Settings) (Settings, error) {
	if settings == nil {
		settings = Settings{}
	}
	profile, err := c.UpdateProfile(ctx, profileID, map[string]any{string(group): settings})
	if err != nil {
		return nil, err
	}
	return profile.Group(group), nil
}

func (c *Client) GetSecuritySettings(ctx context.Context, profileID string) (Settings, error) {
	return c.GetSettings(ctx, profileID, SecurityGroup)
}

func (c *Client) UpdateSecuritySettings(ctx context.Context, profileID string, settings Settings) (Settings, error) {
	return c.UpdateSettings(ctx, profileID, SecurityGroup, settings)
}

func (c *Client) GetPrivacySettings(ctx context.Context, profileID string) (Settings, error) {
	return c.GetSettings(ctx, profileID, PrivacyGroup)
}

func (c *Client) UpdatePrivacySettings(ctx context.Context, profileID string, settings Settings) (Settings, error) {
	return c.UpdateSettings(ctx, profileID, PrivacyGroup, settings)
}

func (c *Client) GetParentalControlSettings(ctx context.Context, profileID string) (Settings, error) {
	return c.GetSettings(ctx, profileID, ParentalControlGroup)
}

func (c *Client) UpdateParentalControlSettings(ctx context.Context, profileID string, settings Settings) (Settings, error) {
	return c.UpdateSettings(ctx, profileID, ParentalControlGroup, settings)
}

func decodeProfile(body []byte) (*Profile, error) {
	var p Profile
	if len(body) == 0 {
		return &p, nil
	}
	if err := json.Unmarshal(unwrapData(body), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}
