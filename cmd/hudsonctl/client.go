// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/pavoi/hudson/internal/models"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Message, e.Status)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls the live state endpoints of a Hudson server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func statePath(setID int64, suffix string) string {
	return fmt.Sprintf("/api/v1/product-sets/%d/state%s", setID, suffix)
}

// GetState loads the live state, creating it on first access.
func (c *Client) GetState(ctx context.Context, setID int64) (*models.LiveState, error) {
	return c.live(ctx, http.MethodGet, statePath(setID, ""), nil)
}

// InitializeState creates the state row if it is missing.
func (c *Client) InitializeState(ctx context.Context, setID int64) (*models.LiveState, error) {
	return c.live(ctx, http.MethodPost, statePath(setID, "/init"), nil)
}

// Jump makes the entry at position current.
func (c *Client) Jump(ctx context.Context, setID int64, position int) (*models.LiveState, error) {
	return c.live(ctx, http.MethodPost, statePath(setID, "/jump"), map[string]int{"position": position})
}

// Next advances to the next entry.
func (c *Client) Next(ctx context.Context, setID int64) (*models.LiveState, error) {
	return c.live(ctx, http.MethodPost, statePath(setID, "/next"), nil)
}

// Previous goes back one entry.
func (c *Client) Previous(ctx context.Context, setID int64) (*models.LiveState, error) {
	return c.live(ctx, http.MethodPost, statePath(setID, "/previous"), nil)
}

// CycleImage moves the image index of the current entry by one.
func (c *Client) CycleImage(ctx context.Context, setID int64, direction string) (*models.LiveState, error) {
	return c.live(ctx, http.MethodPost, statePath(setID, "/image/cycle"), map[string]string{"direction": direction})
}

// SetImage selects an image of the current entry.
func (c *Client) SetImage(ctx context.Context, setID int64, index int) (*models.LiveState, error) {
	return c.live(ctx, http.MethodPut, statePath(setID, "/image"), map[string]int{"index": index})
}

// SendMessage shows a host message.
func (c *Client) SendMessage(ctx context.Context, setID int64, text string, color models.MessageColor) (*models.LiveState, error) {
	body := map[string]string{"text": text, "color": string(color)}
	return c.live(ctx, http.MethodPost, statePath(setID, "/message"), body)
}

// SendPreset shows a brand's saved message.
func (c *Client) SendPreset(ctx context.Context, setID, presetID int64) (*models.LiveState, error) {
	return c.live(ctx, http.MethodPost, statePath(setID, "/message/preset"), map[string]int64{"preset_id": presetID})
}

// ClearMessage removes the host message.
func (c *Client) ClearMessage(ctx context.Context, setID int64) (*models.LiveState, error) {
	return c.live(ctx, http.MethodDelete, statePath(setID, "/message"), nil)
}

// SetUIToggle flips a host view toggle.
func (c *Client) SetUIToggle(ctx context.Context, setID int64, key string, value bool) (*models.UIToggle, error) {
	var out models.UIToggle
	body := map[string]any{"key": key, "value": value}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/product-sets/%d/ui", setID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) live(ctx context.Context, method, path string, body any) (*models.LiveState, error) {
	var out models.LiveState
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: resp.StatusCode, Code: "INVALID_RESPONSE", Message: strings.TrimSpace(string(raw))}
	}
	if resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN", Message: http.StatusText(resp.StatusCode)}
		if env.Error != nil {
			apiErr.Code, apiErr.Message = env.Error.Code, env.Error.Message
		}
		return apiErr
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
