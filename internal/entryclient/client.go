// Package entryclient talks to the admin entry API over HTTP.
package entryclient

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

	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rentwheels/rental-admin/internal/editor"
)

// Ensure Client implements editor.Store at compile time.
var _ editor.Store = (*Client)(nil)

const (
	defaultServer    = "127.0.0.1:8082"
	defaultUserAgent = "faqedit/1.0"
	requestTimeout   = 10 * time.Second
	entriesPath      = "/api/v1/admin/entries"
)

// APIError is a non-2xx response decoded from the error envelope
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s (%d): %s", msg, e.Status, e.Details)
	}
	return fmt.Sprintf("%s (%d)", msg, e.Status)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

// Client is a typed client for /api/v1/admin/entries.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

// NewClient builds a Client for server (host:port or URL) authenticating with token.
func NewClient(server, token string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		token:     strings.TrimSpace(token),
		userAgent: defaultUserAgent,
	}, nil
}

// ListEntries returns one owner's entries in display order.
func (c *Client) ListEntries(ctx context.Context, kind domain.EntryKind, ownerID string) ([]domain.EntryResponse, error) {
	values := url.Values{}
	values.Set("kind", string(kind))
	values.Set("owner_id", ownerID)
	rel := &url.URL{Path: entriesPath, RawQuery: values.Encode()}

	var entries []domain.EntryResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntry creates an entry at the end of its owner's list.
func (c *Client) CreateEntry(ctx context.Context, req domain.CreateEntryRequest) (*domain.EntryResponse, error) {
	var created domain.EntryResponse
	if err := c.do(ctx, http.MethodPost, entriesPath, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEntry replaces question and answer of entry id.
func (c *Client) UpdateEntry(ctx context.Context, id string, req domain.UpdateEntryRequest) (*domain.EntryResponse, error) {
	if id == "" {
		return nil, fmt.Errorf("entry id required")
	}
	var updated domain.EntryResponse
	if err := c.do(ctx, http.MethodPut, entriesPath+"/"+id, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEntry deletes entry id of the given kind.
func (c *Client) DeleteEntry(ctx context.Context, kind domain.EntryKind, id string) error {
	if id == "" {
		return fmt.Errorf("entry id required")
	}
	values := url.Values{}
	values.Set("kind", string(kind))
	rel := &url.URL{Path: entriesPath + "/" + id, RawQuery: values.Encode()}
	return c.doURL(ctx, http.MethodDelete, rel, nil, nil)
}

// ReorderEntries persists the display order of one owner's entries.
func (c *Client) ReorderEntries(ctx context.Context, req domain.ReorderEntriesRequest) error {
	return c.do(ctx, http.MethodPut, entriesPath+"/order", req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	return c.doURL(ctx, method, &url.URL{Path: path}, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
