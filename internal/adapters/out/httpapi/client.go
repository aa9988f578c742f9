// Package httpapi implements the outbound gateway ports against the remote
// platform API. Every response arrives in the platform envelope; on failure
// the error message inside it is surfaced as a RemoteFailureError so the
// presentation layer can show it verbatim.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// envelope is the platform's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// pageDTO is the platform's pagination wrapper inside the envelope data.
type pageDTO[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Client is the shared HTTP plumbing of all gateway implementations.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials ports.CredentialProvider
}

// NewClient creates a gateway client for the given API base URL. The client
// enforces no timeout of its own; deadlines come from the caller's context.
func NewClient(baseURL string, credentials ports.CredentialProvider) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{},
		credentials: credentials,
	}
}

// do sends one request and decodes the envelope. A transport error, a non-2xx
// status and an unsuccessful envelope all surface as RemoteFailureError; the
// operation name keys the failure for logging.
func (c *Client) do(ctx context.Context, operation, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.credentials.Token(ctx)
	if err != nil {
		return nil, errs.NewRemoteFailureErrorWithCause(operation, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewRemoteFailureErrorWithCause(operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewRemoteFailureErrorWithCause(operation, err)
	}

	var env envelope
	if err = json.Unmarshal(raw, &env); err != nil {
		return nil, errs.NewRemoteFailureErrorWithCause(operation,
			fmt.Errorf("malformed response (status %d): %w", resp.StatusCode, err))
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ""
		if env.Error != nil {
			message = env.Error.Message
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, errs.NewObjectNotFoundError(operation, path)
		}
		return nil, errs.NewRemoteFailureError(operation, message)
	}

	return env.Data, nil
}
