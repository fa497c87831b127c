package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ngvyshop/chatorder-api/internal/application/ports"
	"github.com/ngvyshop/chatorder-api/pkg/config"
)

// Compile-time check that GraphClient implements IdentityProvider.
var _ ports.IdentityProvider = (*GraphClient)(nil)

// Messenger permissions requested at login.
var loginPermissions = []string{
	"email",
	"public_profile",
	"pages_messaging",
	"pages_show_list",
	"pages_read_engagement",
	"pages_manage_metadata",
	"pages_read_user_content",
}

// GraphClient talks to the Facebook Graph API: OAuth code exchange and
// profile lookup.
type GraphClient struct {
	cfg        config.MetaConfig
	httpClient *http.Client
}

// NewGraphClient builds the adapter.
func NewGraphClient(cfg config.MetaConfig) *GraphClient {
	return &GraphClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// LoginURL builds the OAuth dialog URL with the messaging permissions.
func (c *GraphClient) LoginURL() string {
	q := url.Values{}
	q.Set("client_id", c.cfg.AppID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("scope", strings.Join(loginPermissions, ","))
	q.Set("response_type", "code")
	q.Set("state", "random_state_string")
	return fmt.Sprintf("https://www.facebook.com/%s/dialog/oauth?%s", c.cfg.GraphVersion, q.Encode())
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Error       *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// ExchangeCode trades the OAuth authorization code for an access token.
func (c *GraphClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	q := url.Values{}
	q.Set("client_id", c.cfg.AppID)
	q.Set("client_secret", c.cfg.AppSecret)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("code", code)
	endpoint := fmt.Sprintf("https://graph.facebook.com/%s/oauth/access_token?%s", c.cfg.GraphVersion, q.Encode())

	var out tokenResponse
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return "", err
	}
	if out.Error != nil {
		return "", fmt.Errorf("graph: oauth error (%s): %s", out.Error.Type, out.Error.Message)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("graph: no access token in response")
	}
	return out.AccessToken, nil
}

type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// FetchProfile resolves the token holder's id, name and email.
func (c *GraphClient) FetchProfile(ctx context.Context, accessToken string) (*ports.PlatformProfile, error) {
	q := url.Values{}
	q.Set("fields", "id,name,email")
	q.Set("access_token", accessToken)
	endpoint := fmt.Sprintf("https://graph.facebook.com/%s/me?%s", c.cfg.GraphVersion, q.Encode())

	var out profileResponse
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, fmt.Errorf("graph: profile error (%s): %s", out.Error.Type, out.Error.Message)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("graph: profile response missing id")
	}
	return &ports.PlatformProfile{ID: out.ID, Name: out.Name, Email: out.Email}, nil
}

func (c *GraphClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("graph: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph: HTTP call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("graph: read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("graph: decode response (HTTP %d): %w", resp.StatusCode, err)
	}
	return nil
}
