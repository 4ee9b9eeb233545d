// Package remote implements the DataStore port against the canonical HTTP
// service: one request/response round trip per entity verb, no retries,
// no batching.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client talks to the canonical store over HTTP. Both transport-level
// failures and non-success statuses come back wrapping
// domain.ErrRemoteUnavailable — the two are told apart in the error text
// for logging, never for control flow.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient returns a Client for baseURL. A non-positive timeout falls
// back to the 10s default; the bound guarantees a hanging remote resolves
// to the failure path instead of stalling the session.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type loginPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login authenticates against POST /auth/login.
func (c *Client) Login(ctx context.Context, name, password string) (*domain.User, error) {
	var w wireUser
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginPayload{Name: name, Password: password}, &w); err != nil {
		return nil, err
	}
	u := w.toDomain()
	return &u, nil
}

// ListUsers fetches GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var ws []wireUser
	if err := c.do(ctx, http.MethodGet, "/users", nil, &ws); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(ws))
	for _, w := range ws {
		users = append(users, w.toDomain())
	}
	return users, nil
}

// CreateUser posts POST /users.
func (c *Client) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var w wireUser
	if err := c.do(ctx, http.MethodPost, "/users", toWireUser(u), &w); err != nil {
		return nil, err
	}
	created := w.toDomain()
	return &created, nil
}

// UpdateUser puts PUT /users/:id.
func (c *Client) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var w wireUser
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", u.ID), toWireUser(u), &w); err != nil {
		return nil, err
	}
	updated := w.toDomain()
	return &updated, nil
}

// DeleteUser issues DELETE /users/:id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

// ListTimeEntries fetches GET /time-entries, re-hydrating timestamps.
func (c *Client) ListTimeEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	var ws []wireTimeEntry
	if err := c.do(ctx, http.MethodGet, "/time-entries", nil, &ws); err != nil {
		return nil, err
	}
	entries := make([]domain.TimeEntry, 0, len(ws))
	for _, w := range ws {
		e, err := w.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// CreateTimeEntry posts POST /time-entries.
func (c *Client) CreateTimeEntry(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	var w wireTimeEntry
	if err := c.do(ctx, http.MethodPost, "/time-entries", toWireTimeEntry(e), &w); err != nil {
		return nil, err
	}
	created, err := w.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return &created, nil
}

// UpdateTimeEntry puts PUT /time-entries/:id.
func (c *Client) UpdateTimeEntry(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	var w wireTimeEntry
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/time-entries/%d", e.ID), toWireTimeEntry(e), &w); err != nil {
		return nil, err
	}
	updated, err := w.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return &updated, nil
}

// ListSubmissions fetches GET /contractor-submissions.
func (c *Client) ListSubmissions(ctx context.Context) ([]domain.ContractorSubmission, error) {
	var ws []wireSubmission
	if err := c.do(ctx, http.MethodGet, "/contractor-submissions", nil, &ws); err != nil {
		return nil, err
	}
	subs := make([]domain.ContractorSubmission, 0, len(ws))
	for _, w := range ws {
		s, err := w.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// CreateSubmission posts POST /contractor-submissions.
func (c *Client) CreateSubmission(ctx context.Context, s domain.ContractorSubmission) (*domain.ContractorSubmission, error) {
	var w wireSubmission
	if err := c.do(ctx, http.MethodPost, "/contractor-submissions", toWireSubmission(s), &w); err != nil {
		return nil, err
	}
	created, err := w.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return &created, nil
}

// do performs one round trip. body is JSON-encoded when non-nil; out is
// decoded from the response when non-nil. Any transport error and any
// non-2xx status wrap domain.ErrRemoteUnavailable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failure: DNS, refused connection, timeout.
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("remote transport failure")
		return fmt.Errorf("%w: %s %s: %v", domain.ErrRemoteUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Non-success status. 404 and 401 are named for the logs but take
		// the same fallback path as everything else.
		c.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("remote returned non-success status")
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s %s: %v", domain.ErrRemoteUnavailable, method, path, domain.ErrNotFound)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s %s: %v", domain.ErrRemoteUnavailable, method, path, domain.ErrInvalidCredentials)
		default:
			return fmt.Errorf("%w: %s %s: status %d", domain.ErrRemoteUnavailable, method, path, resp.StatusCode)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode response: %v", domain.ErrRemoteUnavailable, method, path, err)
	}
	return nil
}
