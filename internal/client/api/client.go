// Package api implements a small HTTP client for the session service,
// used by the interactive CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// Client talks to the server's REST boundary.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for the given base URL, e.g.
// "http://127.0.0.1:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// User mirrors the server's user DTO.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
}

// Token mirrors the server's token issuance DTO.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, email, name, password string) (*User, error) {
	var out User
	err := c.post(ctx, "/users/signup",
		map[string]string{"email": email, "name": name, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	var out Token
	err := c.post(ctx, "/users/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the given token value. Revoking an unknown value succeeds.
func (c *Client) Logout(ctx context.Context, tokenValue string) error {
	return c.post(ctx, "/users/logout", map[string]string{"token": tokenValue}, nil)
}

// Validate resolves a token value to its owning user.
func (c *Client) Validate(ctx context.Context, tokenValue string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/users/validate/"+tokenValue, nil)
	if err != nil {
		return nil, err
	}
	var out User
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return common.ErrInvalidToken
	case http.StatusForbidden:
		return common.ErrInvalidCredentials
	case http.StatusConflict:
		return common.ErrEmailAlreadyExists
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server error: %s (%s)", resp.Status, bytes.TrimSpace(msg))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
