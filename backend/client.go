// Package backend is the client for the portfolio's query and project API.
package backend

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

	"github.com/eringen/folio/content"
)

const defaultTimeout = 10 * time.Second

// ErrNoBackend is returned by every call when no backend URL is configured.
var ErrNoBackend = errors.New("backend: not configured")

// ProjectDetail is the payload of /api/project/:id.
type ProjectDetail struct {
	Title        string   `json:"title"`
	Date         string   `json:"date"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Technologies []string `json:"technologies"`
	Demo         string   `json:"demo"`
	Github       string   `json:"github"`
}

// ProjectSummary is one entry of /api/projects.
type ProjectSummary struct {
	ID               content.ID `json:"id"`
	Category         string     `json:"category"`
	Thumbnail        string     `json:"thumbnail"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"shortDescription"`
	Technologies     []string   `json:"technologies"`
	Demo             string     `json:"demo"`
	Github           string     `json:"github"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response string `json:"response"`
}

// Client talks to the backend over JSON. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL. An empty baseURL yields a client
// whose calls all return ErrNoBackend.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    httpClient,
	}
}

// Configured reports whether the client has a backend to talk to.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Query posts a chat question and returns the backend's answer.
func (c *Client) Query(ctx context.Context, q string) (string, error) {
	var out queryResponse
	if err := c.do(ctx, http.MethodPost, queryRequest{Query: q}, &out, "api", "query"); err != nil {
		return "", err
	}
	return out.Response, nil
}

// Project fetches the detail of one project.
func (c *Client) Project(ctx context.Context, id string) (ProjectDetail, error) {
	var out ProjectDetail
	if err := c.do(ctx, http.MethodGet, nil, &out, "api", "project", id); err != nil {
		return ProjectDetail{}, err
	}
	return out, nil
}

// Projects fetches the live project list.
func (c *Client) Projects(ctx context.Context) ([]ProjectSummary, error) {
	var out []ProjectSummary
	if err := c.do(ctx, http.MethodGet, nil, &out, "api", "projects"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method string, body, out any, segments ...string) error {
	if !c.Configured() {
		return ErrNoBackend
	}
	endpoint, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("backend: %s %s: status %d: %s", method, endpoint, resp.StatusCode, drainError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s: %w", endpoint, err)
	}
	return nil
}

func drainError(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(raw))
}
