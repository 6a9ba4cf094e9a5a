// Package tgclient is the builder-side submit client. It posts a serialized
// filter expression to the create-target-group endpoint and maps the
// response to the error taxonomy the builder reports from: a business
// rejection carries the backend's errorMessage verbatim, any transport
// fault or non-2xx status becomes a generic failure. The caller's
// expression is never touched, so the form can be retried as entered.
package tgclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"audiens/internal/core/apperror"
	"audiens/internal/domain/filter"
)

// CreatePath is the contract route for submissions.
const CreatePath = "/TargetGroup/CreateTargetGroup"

// Client submits target group expressions.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a submit client. Timeout semantics are whatever the HTTP
// client enforces; a timeout surfaces as a generic submission failure.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type createResponse struct {
	IsSuccess    bool   `json:"isSuccess"`
	ID           string `json:"id"`
	ErrorMessage string `json:"errorMessage"`
}

// Create posts the payload and returns the created group's id. The payload
// is validated locally first; no network call is made for an invalid
// expression.
func (c *Client) Create(ctx context.Context, payload filter.WirePayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperror.NewSubmissionFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CreatePath, bytes.NewReader(body))
	if err != nil {
		return "", apperror.NewSubmissionFailed(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperror.NewSubmissionFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperror.NewSubmissionFailed(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperror.NewSubmissionFailed(err)
	}
	if !out.IsSuccess {
		// errorMessage is shown to the user verbatim.
		return "", apperror.NewSubmissionRejected(out.ErrorMessage)
	}
	return out.ID, nil
}
