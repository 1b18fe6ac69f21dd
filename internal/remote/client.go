// Package remote implements the console's client for the staff-management
// API. It owns transport, timeouts and error normalization; every resource
// adapter and the login flow go through it.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-console/internal/config"
	"github.com/spec-kit/staff-console/internal/domain"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

// Client talks to the remote staff-management API.
type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

// New builds a client from configuration.
func New(cfg config.RemoteConfig, logger *zap.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		http:   &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// ListParams carries paging, search and resource-specific filters.
type ListParams struct {
	Page    int
	PerPage int
	Query   string
	Filters map[string]string
}

// Values encodes the params as a query string.
func (p ListParams) Values() url.Values {
	vals := url.Values{}
	vals.Set("page", strconv.Itoa(p.Page))
	vals.Set("per_page", strconv.Itoa(p.PerPage))
	if p.Query != "" {
		vals.Set("q", p.Query)
	}
	for key, val := range p.Filters {
		if val != "" {
			vals.Set(key, val)
		}
	}
	return vals
}

// PageEnvelope is the common shape of every listing endpoint.
type PageEnvelope[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// List fetches one page of a resource collection.
func List[T any](ctx context.Context, c *Client, path string, params ListParams) (PageEnvelope[T], error) {
	var page PageEnvelope[T]
	err := c.call(ctx, http.MethodGet, path+"?"+params.Values().Encode(), nil, &page)
	return page, err
}

// Create posts a new item and decodes the created row.
func Create[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	var item T
	err := c.call(ctx, http.MethodPost, path, payload, &item)
	return item, err
}

// Update patches an existing item and decodes the updated row.
func Update[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	var item T
	err := c.call(ctx, http.MethodPatch, path, payload, &item)
	return item, err
}

// SetActive flips the active flag on an item.
func (c *Client) SetActive(ctx context.Context, path string, active bool) error {
	return c.call(ctx, http.MethodPatch, path, map[string]bool{"is_active": active}, nil)
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

// Login authenticates against the remote API and returns the canonical
// session identity. The role string is normalized here, at the boundary.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Session, error) {
	var out struct {
		Username   string  `json:"username"`
		Role       string  `json:"role"`
		Name       string  `json:"name"`
		Department *string `json:"department"`
		Station    *string `json:"station"`
	}
	err := c.call(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return domain.Session{}, err
	}

	role, err := domain.ParseRole(out.Role)
	if err != nil {
		return domain.Session{}, apperrors.NewRemoteError(fmt.Sprintf("login returned %v", err), http.StatusBadGateway)
	}

	sess := domain.Session{Username: out.Username, Role: role, Name: out.Name}
	if out.Department != nil {
		sess.Department = *out.Department
	}
	if out.Station != nil {
		sess.Station = *out.Station
	}
	return sess, nil
}

// Dropdowns fetches the catalog values the editors offer for select fields.
func (c *Client) Dropdowns(ctx context.Context) (domain.Dropdowns, error) {
	var out domain.Dropdowns
	err := c.call(ctx, http.MethodGet, "/dropdowns", nil, &out)
	return out, err
}

// ChangePassword posts a password change for the given account.
func (c *Client) ChangePassword(ctx context.Context, username, current, next string) error {
	return c.call(ctx, http.MethodPost, "/api/users/change-password", map[string]string{
		"username":         username,
		"current_password": current,
		"new_password":     next,
	}, nil)
}

// call performs one request/response cycle. Non-success responses become a
// DomainError whose message is taken verbatim from the body when possible
// (detail, then message, then status text). 204 and empty bodies decode to
// the zero value.
func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("remote request failed", zap.String("path", path), zap.Error(err))
		return apperrors.NewRemoteError("staff API unreachable: "+err.Error(), http.StatusBadGateway)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewRemoteError("reading staff API response: "+err.Error(), http.StatusBadGateway)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.NewRemoteError(errorMessage(raw, resp), resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewRemoteError("undecodable staff API response", http.StatusBadGateway)
	}
	return nil
}

// errorMessage extracts a human-readable message from an error body,
// preferring "detail" then "message", falling back to the raw text or the
// HTTP status line.
func errorMessage(raw []byte, resp *http.Response) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 512 {
		return text
	}
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
