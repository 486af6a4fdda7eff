package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/verdantly/verdantly/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the Verdantly backend.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

type loginRequest struct {
	HashedEmail    string `json:"hashed_email"`
	HashedPassword string `json:"hashed_password"`
}

type loginResponse struct {
	Success     bool               `json:"success"`
	User        models.UserProfile `json:"user"`
	AccountType string             `json:"account_type"`
	Message     string             `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPClient builds a client for the given backend address. The address
// may be "host:port" (plain HTTP is assumed, as in the prototype deployment)
// or a full URL including scheme.
func NewHTTPClient(addr string, timeout time.Duration) *HTTPClient {
	baseURL := addr
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Login performs a single POST / with the hashed credential pair.
//
// Failure mapping:
//   - transport error: wraps ErrUnavailable
//   - non-2xx status or success=false: *AuthError carrying the server message
func (c *HTTPClient) Login(ctx context.Context, hashedEmail, hashedPassword string) (*models.SessionBootstrap, error) {
	body, err := json.Marshal(loginRequest{HashedEmail: hashedEmail, HashedPassword: hashedPassword})
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{Message: readErrorMessage(resp)}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	if !lr.Success {
		msg := lr.Message
		if msg == "" {
			msg = "login rejected"
		}
		return nil, &AuthError{Message: msg}
	}

	return &models.SessionBootstrap{User: lr.User, AccountType: lr.AccountType}, nil
}

// UpdateProfile issues PATCH /edit/{userID} with exactly the editable keys.
// A non-2xx response maps to ErrUpdateRejected; nothing is retried.
func (c *HTTPClient) UpdateProfile(ctx context.Context, userID string, fields models.EditableFields) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal profile update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/edit/"+userID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build profile update: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	// Success needs no body; drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrUpdateRejected, resp.Status)
	}
	return nil
}

// Ping checks backend reachability. Any HTTP response counts as reachable;
// only transport-level failures map to ErrUnavailable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func readErrorMessage(resp *http.Response) string {
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Message != "" {
		return er.Message
	}
	return resp.Status
}
