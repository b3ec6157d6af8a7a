// Package api is the HTTP client for the FileVault server's REST endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// User mirrors the server's user summary payload.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// FileInfo mirrors the server's file payload.
type FileInfo struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// AuthResult is the outcome of a successful register or login call.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Client talks to one FileVault server. Set a token with SetToken before
// calling methods on protected routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

// serverError extracts the server's JSON error envelope; a body that does
// not parse falls back to the HTTP status text.
func serverError(resp *http.Response, body []byte) error {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return fmt.Errorf("server: %s", envelope.Error)
	}
	return fmt.Errorf("server: %s", resp.Status)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return serverError(resp, raw)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	result := &AuthResult{}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Login authenticates with a username or email.
func (c *Client) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	result := &AuthResult{}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": login,
		"password": password,
	}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) List(ctx context.Context) ([]FileInfo, error) {
	var result struct {
		Files []FileInfo `json:"files"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/files", nil, &result); err != nil {
		return nil, err
	}
	return result.Files, nil
}

// Upload sends the file at path as a multipart form.
func (c *Client) Upload(ctx context.Context, path string) (*FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/files/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, serverError(resp, raw)
	}

	var result struct {
		File FileInfo `json:"file"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result.File, nil
}

// Download fetches the file's bytes into destDir, named by the server's
// Content-Disposition when present, and returns the written path.
func (c *Client) Download(ctx context.Context, id int64, destDir string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/files/%d/download", id), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return "", serverError(resp, raw)
	}

	name := fmt.Sprintf("file-%d", id)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if fn := params["filename"]; fn != "" {
			name = filepath.Base(fn)
		}
	}

	dest := filepath.Join(destDir, name)
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}

	_, err = io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return dest, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/files/%d", id), nil, nil)
}
