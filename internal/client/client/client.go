// Package client implements the HTTP API client used by the filekeeper CLI.
// It speaks the server's JSON protocol and carries the session token in the
// X-Token header once the user is connected.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

// User mirrors the server's user representation.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// File mirrors the server's file catalog view.
type File struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

// Status reports backend reachability as seen by the server.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// UploadParams describes a catalog entry to create. Data is raw bytes; the
// client encodes it for the wire.
type UploadParams struct {
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     []byte
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is a thin wrapper over the server's HTTP API. It is not safe for
// concurrent use: Connect and Disconnect mutate the stored token.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Token returns the current session token, empty when disconnected.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthTokenHeaderName, c.token)
	}
	return req, nil
}

// do sends the request and decodes a JSON response into out (when out is not
// nil). Error responses are turned back into the sentinel errors the server
// mapped them from, so callers can keep using errors.Is.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) decodeError(resp *http.Response) error {
	var er errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusBadRequest:
		if er.Error == "" {
			er.Error = "Bad request"
		}
		return fmt.Errorf("%s", er.Error)
	default:
		if er.Error == "" {
			er.Error = resp.Status
		}
		return fmt.Errorf("%w: %s", common.ErrorInternal, er.Error)
	}
}

// SignUp registers a new account. It does not sign the user in.
func (c *Client) SignUp(ctx context.Context, email, password string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/users", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var u User
	if err := c.do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Connect exchanges credentials for a session token and stores it for
// subsequent requests.
func (c *Client) Connect(ctx context.Context, email, password string) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/connect", nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(email, password)

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(req, &resp); err != nil {
		return err
	}

	c.token = resp.Token
	return nil
}

// Disconnect revokes the stored session token. The token is cleared even if
// the server rejects the call.
func (c *Client) Disconnect(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/disconnect", nil)
	if err != nil {
		return err
	}

	err = c.do(req, nil)
	c.token = ""
	return err
}

// Me returns the account owning the current session.
func (c *Client) Me(ctx context.Context) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := c.do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Upload creates a folder or uploads file content.
func (c *Client) Upload(ctx context.Context, p UploadParams) (*File, error) {
	body := map[string]any{
		"name":     p.Name,
		"type":     p.Type,
		"isPublic": p.IsPublic,
	}
	if p.ParentID != "" {
		body["parentId"] = p.ParentID
	}
	if p.Data != nil {
		body["data"] = base64.StdEncoding.EncodeToString(p.Data)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/files", body)
	if err != nil {
		return nil, err
	}

	var f File
	if err := c.do(req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns one page of catalog entries under parentID. An empty parentID
// lists the root.
func (c *Client) List(ctx context.Context, parentID string, page int) ([]*File, error) {
	q := url.Values{}
	if parentID != "" {
		q.Set("parentId", parentID)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	path := "/files"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out []*File
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stat returns the catalog entry with the given id.
func (c *Client) Stat(ctx context.Context, id string) (*File, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/files/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var f File
	if err := c.do(req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Data downloads the content of a file entry.
func (c *Client) Data(ctx context.Context, id string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/files/"+url.PathEscape(id)+"/data", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.decodeError(resp)
	}

	return io.ReadAll(resp.Body)
}

// Status probes the server's readiness endpoint.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return nil, err
	}

	var s Status
	if err := c.do(req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
