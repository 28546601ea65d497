package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"geotodo/pkg/session"
)

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
}

// AuthClient talks to the identity endpoints. It carries no token; it is
// what produces one.
type AuthClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{BaseURL: baseURL, HTTP: http.DefaultClient}
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	return c.exchange(ctx, "/auth/login", email, password, http.StatusUnauthorized, session.ErrInvalidCredentials)
}

func (c *AuthClient) Register(ctx context.Context, email, password string) (string, error) {
	return c.exchange(ctx, "/auth/register", email, password, http.StatusConflict, session.ErrEmailTaken)
}

func (c *AuthClient) exchange(ctx context.Context, path, email, password string, rejectStatus int, rejectErr error) (string, error) {
	body, err := json.Marshal(loginForm{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == rejectStatus {
		return "", rejectErr
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth request failed: status %d", resp.StatusCode)
	}

	var decoded loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("auth response decode failed: %w", err)
	}
	if decoded.Data.Token == "" {
		return "", fmt.Errorf("auth response carried no token")
	}

	return decoded.Data.Token, nil
}
