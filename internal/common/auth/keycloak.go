package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// KeycloakClient resolves caller identity by introspecting bearer tokens
// against a Keycloak realm.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// IntrospectionResult holds the fields of the introspection response we care
// about.
type IntrospectionResult struct {
	Active   bool   `json:"active"`
	Subject  string `json:"sub"`
	Username string `json:"preferred_username"`
}

// NewKeycloakClient creates a new instance of KeycloakClient.
func NewKeycloakClient(baseURL, realm, clientID, clientSecret string) *KeycloakClient {
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyToken introspects an access token and reports whether it belongs to
// an active session. Network or decode failures surface as errors so callers
// can decide how to degrade; an inactive token is (false, nil).
func (k *KeycloakClient) VerifyToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	endpoint := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token/introspect", k.baseURL, k.realm)

	form := url.Values{}
	form.Set("token", token)
	form.Set("client_id", k.clientID)
	form.Set("client_secret", k.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build introspection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("introspection request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("introspection status %d: %s", resp.StatusCode, string(body))
	}

	var result IntrospectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decode introspection response: %w", err)
	}

	return result.Active, nil
}
