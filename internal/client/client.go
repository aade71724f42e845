// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client calls a remote reservation-engine service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/reservation-engine/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "reservation-engine-client"

	// maxErrorBody bounds how much of a failed response is quoted in errors.
	maxErrorBody = 512
)

// Client talks to the /extract endpoint of a remote service.
type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries int
	userAgent  string
}

// New returns a Client for cfg. An empty BaseURL is an error.
func New(cfg types.ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client base URL is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
		userAgent:  ua,
	}, nil
}

type extractRequest struct {
	HTML string `json:"html"`
	Type string `json:"type"`
}

// wireResult mirrors types.Result with the record left undecoded.
type wireResult struct {
	Success      bool             `json:"success"`
	Method       types.Method     `json:"method"`
	Data         json.RawMessage  `json:"data"`
	Completeness float64          `json:"completeness"`
	Confidence   types.Confidence `json:"confidence"`
	Error        string           `json:"error"`
}

// Extract posts html to the remote service and decodes the result. Data
// is decoded into the canonical record for rt.
func (c *Client) Extract(ctx context.Context, html string, rt types.ReservationType) (types.Result, error) {
	body, err := json.Marshal(extractRequest{HTML: html, Type: string(rt)})
	if err != nil {
		return types.Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return types.Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return types.Result{}, fmt.Errorf("calling %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return types.Result{}, fmt.Errorf("remote service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var wire wireResult
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return types.Result{}, fmt.Errorf("decoding response: %w", err)
	}

	res := types.Result{
		Success:      wire.Success,
		Method:       wire.Method,
		Completeness: wire.Completeness,
		Confidence:   wire.Confidence,
		Error:        wire.Error,
	}
	if len(wire.Data) > 0 && string(wire.Data) != "null" {
		rec := types.NewReservation(rt)
		if rec == nil {
			return res, fmt.Errorf("remote service returned data for %s, which has no record schema", rt)
		}
		if err := json.Unmarshal(wire.Data, rec); err != nil {
			return res, fmt.Errorf("decoding %s record: %w", rt, err)
		}
		res.Data = rec
	}
	return res, nil
}

// Health reports whether the remote service answers its health check.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return fmt.Errorf("calling %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}
