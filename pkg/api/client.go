package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/scribe/pkg/post"
)

// TokenSource supplies the bearer token attached to every request. The client
// never caches the token itself; session ownership stays with the caller.
type TokenSource interface {
	Token() string
}

// Client talks to the blog backend. Zero-value fields get sane defaults from
// New; construct it there.
type Client struct {
	base   *url.URL
	tokens TokenSource
	http   *http.Client
}

// New builds a client for the given base URL, e.g. "https://blog.example.com".
func New(baseURL string, tokens TokenSource) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base url %q must include scheme and host", baseURL)
	}
	return &Client{
		base:   u,
		tokens: tokens,
		http:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// SetHTTPClient overrides the underlying HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

type postsResponse struct {
	Posts []post.Post `json:"posts"`
}

type dataResponse struct {
	Data *post.Post `json:"data"`
}

type createRequest struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

// ListPosts fetches every post visible to the current user.
func (c *Client) ListPosts(ctx context.Context) ([]post.Post, error) {
	var out postsResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// CreatePost creates a post attributed to userID and returns the stored post.
// The server must echo the post back; a response without it is an error.
func (c *Client) CreatePost(ctx context.Context, userID, title, content string) (*post.Post, error) {
	body := createRequest{UserID: userID, Title: title, Content: content}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	var out dataResponse
	if err := c.do(ctx, http.MethodPost, "/api/posts", headers, body, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, &Error{Op: "create", Message: "server returned no post data"}
	}
	return out.Data, nil
}

// UpdatePost rewrites title and content for the post with the given id. The
// server must confirm the updated post in its response.
func (c *Client) UpdatePost(ctx context.Context, id, userID, title, content string) (*post.Post, error) {
	body := updateRequest{Title: title, Content: content, UserID: userID}
	var out dataResponse
	if err := c.do(ctx, http.MethodPut, "/api/posts/update/"+url.PathEscape(id), nil, body, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, &Error{Op: "update", Message: "server returned no updated data"}
	}
	return out.Data, nil
}

// DeletePost removes the post with the given id. Only the status matters; the
// response body is ignored on success.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/delete/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: opForMethod(method), Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(opForMethod(method), resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: opForMethod(method), StatusCode: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

func opForMethod(method string) string {
	switch method {
	case http.MethodGet:
		return "fetch"
	case http.MethodPost:
		return "create"
	case http.MethodPut:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return strings.ToLower(method)
	}
}
