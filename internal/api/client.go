// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/assettrack-tui/internal/model"
	"github.com/jeranaias/assettrack-tui/internal/report"
)

// Configuration constants for the gateway.
const (
	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize caps response bodies; the largest legitimate
	// payload is a full request listing, well under this.
	MaxResponseSize = 4 * 1024 * 1024
)

// sharedTransport pools connections across all gateway calls.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the remote asset-management service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     report.Logger
}

// New creates a gateway client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: sharedTransport,
		},
		userAgent: "assettrack-tui",
		logger:    report.Nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the event logger for gateway traffic.
func WithLogger(l report.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// =============================================================================
// ENVELOPE
// =============================================================================

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) ok() (bool, string) { return e.Success, e.Message }

// enveloped is implemented by all response types via embedding.
type enveloped interface {
	ok() (bool, string)
}

// do performs one JSON round-trip and decodes into out, which must embed
// envelope. Error mapping follows the package taxonomy; no retries.
func (c *Client) do(ctx context.Context, method, path string, body any, out enveloped) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response arrived at all: connection refused, DNS, timeout.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			c.logger.Errorf("api: %s %s: %v", method, path, urlErr.Err)
			return fmt.Errorf("%w: %v", ErrNetwork, urlErr.Err)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	// Decode even on error statuses: the service puts its explanation in
	// the envelope message.
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	success, message := out.ok()
	if resp.StatusCode >= 300 {
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		c.logger.Errorf("api: %s %s -> %d: %s", method, path, resp.StatusCode, message)
		return &Error{Status: resp.StatusCode, Message: message}
	}
	if !success {
		if message == "" {
			message = "request failed"
		}
		c.logger.Errorf("api: %s %s rejected: %s", method, path, message)
		return &Error{Message: message}
	}

	c.logger.Infof("api: %s %s -> %d", method, path, resp.StatusCode)
	return nil
}

// =============================================================================
// AUTH
// =============================================================================

// RegisterPayload is the body of POST /register.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Credentials is the body of POST /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult identifies the authenticated actor.
type LoginResult struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

// Register creates an account. The server owns all validation beyond
// non-empty fields.
func (c *Client) Register(ctx context.Context, p RegisterPayload) error {
	var resp struct{ envelope }
	return c.do(ctx, http.MethodPost, "/register", p, &resp)
}

// Login authenticates and returns the actor's identity and role.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var resp struct {
		envelope
		LoginResult
	}
	if err := c.do(ctx, http.MethodPost, "/login", creds, &resp); err != nil {
		return LoginResult{}, err
	}
	return resp.LoginResult, nil
}

// =============================================================================
// INVENTORY
// =============================================================================

// ListInventory fetches the full inventory collection.
func (c *Client) ListInventory(ctx context.Context) ([]model.Item, error) {
	var resp struct {
		envelope
		Items []model.Item `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/inventory", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CreateInventoryItem adds one inventory record.
func (c *Client) CreateInventoryItem(ctx context.Context, item model.NewItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	var resp struct{ envelope }
	return c.do(ctx, http.MethodPost, "/inventory", item, &resp)
}

// UpdateInventoryItem replaces the fields of an existing record.
func (c *Client) UpdateInventoryItem(ctx context.Context, id string, item model.NewItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	var resp struct{ envelope }
	return c.do(ctx, http.MethodPut, "/inventory/"+url.PathEscape(id), item, &resp)
}

// DeleteInventoryItem removes one inventory record.
func (c *Client) DeleteInventoryItem(ctx context.Context, id string) error {
	var resp struct{ envelope }
	return c.do(ctx, http.MethodDelete, "/inventory/"+url.PathEscape(id), nil, &resp)
}

// =============================================================================
// REQUESTS
// =============================================================================

// RequestPatch is the partial update accepted by PUT /requests/{id}. Only
// status transitions go through this today.
type RequestPatch struct {
	Status model.Status `json:"status,omitempty"`
}

// CreateRequest submits a new asset request. Validation failures abort
// before the network call.
func (c *Client) CreateRequest(ctx context.Context, req model.NewRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	var resp struct{ envelope }
	return c.do(ctx, http.MethodPost, "/requests", req, &resp)
}

// ListRequests fetches the full request collection. Role scoping is the
// server's concern; views filter locally.
func (c *Client) ListRequests(ctx context.Context) ([]model.Request, error) {
	var resp struct {
		envelope
		Requests []model.Request `json:"requests"`
	}
	if err := c.do(ctx, http.MethodGet, "/requests", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// UpdateRequest applies a partial update, used for approve/reject.
func (c *Client) UpdateRequest(ctx context.Context, id string, patch RequestPatch) error {
	var resp struct{ envelope }
	return c.do(ctx, http.MethodPut, "/requests/"+url.PathEscape(id), patch, &resp)
}

// DeleteRequest removes a request on behalf of requesterID. A 404 matches
// ErrStale and callers treat it as already deleted.
func (c *Client) DeleteRequest(ctx context.Context, id, requesterID string) error {
	body := map[string]string{"userId": requesterID}
	var resp struct{ envelope }
	return c.do(ctx, http.MethodDelete, "/requests/"+url.PathEscape(id), body, &resp)
}

// IssueRequest records the hand-out of an approved request by adminID.
func (c *Client) IssueRequest(ctx context.Context, id, adminID string) error {
	body := map[string]string{"adminId": adminID}
	var resp struct{ envelope }
	return c.do(ctx, http.MethodPost, "/issue/"+url.PathEscape(id), body, &resp)
}

// ReturnRequest records the holder giving the asset back.
func (c *Client) ReturnRequest(ctx context.Context, id, userID string) error {
	body := map[string]string{"userId": userID}
	var resp struct{ envelope }
	return c.do(ctx, http.MethodPost, "/return/"+url.PathEscape(id), body, &resp)
}

// =============================================================================
// SCANNING
// =============================================================================

// ScanResult is the server's verdict on a decoded code.
type ScanResult struct {
	RequestID    string `json:"requestId"`
	IssuedToUser bool   `json:"issuedToUser"`
}

// ScanCode submits a decoded QR payload for resolution against the
// current user's issued items.
func (c *Client) ScanCode(ctx context.Context, payload, userID string) (ScanResult, error) {
	body := map[string]string{"qrData": payload, "userId": userID}
	var resp struct {
		envelope
		ScanResult
	}
	if err := c.do(ctx, http.MethodPost, "/scan-qr", body, &resp); err != nil {
		return ScanResult{}, err
	}
	return resp.ScanResult, nil
}

// =============================================================================
// HISTORY AND DASHBOARDS
// =============================================================================

// ListAssetHistory fetches the lifecycle records for one asset.
func (c *Client) ListAssetHistory(ctx context.Context, assetID string) ([]model.Request, error) {
	var resp struct {
		envelope
		Requests []model.Request `json:"requests"`
	}
	path := "/asset-history/" + url.PathEscape(assetID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// ListUserHistory fetches the lifecycle records involving one user.
func (c *Client) ListUserHistory(ctx context.Context, userID string) ([]model.Request, error) {
	var resp struct {
		envelope
		Requests []model.Request `json:"requests"`
	}
	path := "/history?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// AdminDashboardSummary fetches the admin landing-page numbers.
func (c *Client) AdminDashboardSummary(ctx context.Context) (model.AdminSummary, error) {
	var resp struct {
		envelope
		Data model.AdminSummary `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard-data", nil, &resp); err != nil {
		return model.AdminSummary{}, err
	}
	return resp.Data, nil
}

// UserDashboardSummary fetches the user landing-page numbers.
func (c *Client) UserDashboardSummary(ctx context.Context, userID string) (model.UserSummary, error) {
	var resp struct {
		envelope
		Data model.UserSummary `json:"data"`
	}
	path := "/user-dashboard-data?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return model.UserSummary{}, err
	}
	return resp.Data, nil
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one prompt to the assistant endpoint and returns the reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	body := map[string]string{"message": message}
	var resp struct {
		envelope
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, "/chat", body, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}
