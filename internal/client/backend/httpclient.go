package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eventkeeper/eventkeeper/internal/common"
)

// HTTPClient talks JSON over HTTP to the eventkeeper backend. It holds the
// session token pair in memory and mirrors it through a TokenStore so a new
// process can restore the session.
//
// Authenticated calls that fail with an expired access token are retried
// once after a refresh-token exchange.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenStore

	accessToken  string
	refreshToken string
}

// NewHTTPClient builds a client against baseURL and restores any cached
// session from the token store.
func NewHTTPClient(ctx context.Context, baseURL string, tokens TokenStore) (*HTTPClient, error) {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}

	access, refresh, err := tokens.LoadTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	c.accessToken = access
	c.refreshToken = refresh

	return c, nil
}

func (c *HTTPClient) Close() error { return nil }

type sessionResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CurrentUser resolves the cached session, if any, to an identity record.
// An unauthorized answer (tokens revoked or expired beyond refresh) is
// treated as "no session", not as an error.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*User, error) {
	if c.accessToken == "" && c.refreshToken == "" {
		return nil, nil
	}

	var u User
	err := c.doAuthed(ctx, http.MethodGet, "/api/v1/auth/me", nil, &u)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.dropSession(ctx)
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*User, error) {
	return c.startSession(ctx, "/api/v1/auth/login", email, password)
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (*User, error) {
	return c.startSession(ctx, "/api/v1/auth/signup", email, password)
}

func (c *HTTPClient) startSession(ctx context.Context, path, email, password string) (*User, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, path, credentialsRequest{Email: email, Password: password}, &resp, false); err != nil {
		return nil, err
	}

	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	if err := c.tokens.SaveTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("caching session: %w", err)
	}
	return &resp.User, nil
}

// SignOut revokes the refresh token server-side and drops the cached session
// regardless of the outcome.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	body := map[string]string{"refreshToken": c.refreshToken}
	err := c.doAuthed(ctx, http.MethodPost, "/api/v1/auth/logout", body, nil)
	c.dropSession(ctx)
	return err
}

func (c *HTTPClient) GetDocument(ctx context.Context, userID string) (*Document, error) {
	var doc Document
	err := c.doAuthed(ctx, http.MethodGet, "/api/v1/users/"+userID+"/document", nil, &doc)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == common.CodeDocumentNotFound {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) CreateDocument(ctx context.Context, userID string, doc NewDocument) error {
	return c.doAuthed(ctx, http.MethodPut, "/api/v1/users/"+userID+"/document", doc, nil)
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, userID string, patch DocumentPatch) error {
	return c.doAuthed(ctx, http.MethodPatch, "/api/v1/users/"+userID+"/document", patch, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	return c.doAuthed(ctx, http.MethodPatch, "/api/v1/auth/profile", update, nil)
}

type uploadResponse struct {
	Path        string `json:"path"`
	DownloadURL string `json:"downloadUrl"`
}

// UploadObject stores raw bytes under the given storage path and returns the
// public download URL.
func (c *HTTPClient) UploadObject(ctx context.Context, path string, data []byte) (string, error) {
	var resp uploadResponse
	if err := c.doRawAuthed(ctx, http.MethodPut, "/api/v1/storage/objects/"+path, data, &resp); err != nil {
		return "", err
	}
	return resp.DownloadURL, nil
}

func (c *HTTPClient) DeleteObject(ctx context.Context, path string) error {
	return c.doAuthed(ctx, http.MethodDelete, "/api/v1/storage/objects/"+path, nil, nil)
}

// --- request plumbing ---

// doAuthed performs an authenticated JSON request, refreshing the access
// token and retrying once when the server reports it expired.
func (c *HTTPClient) doAuthed(ctx context.Context, method, path string, body, out any) error {
	err := c.do(ctx, method, path, body, out, true)
	if c.shouldRefresh(err) {
		if rerr := c.refresh(ctx); rerr != nil {
			return err
		}
		return c.do(ctx, method, path, body, out, true)
	}
	return err
}

func (c *HTTPClient) doRawAuthed(ctx context.Context, method, path string, raw []byte, out any) error {
	err := c.send(ctx, method, path, bytes.NewReader(raw), "application/octet-stream", out, true)
	if c.shouldRefresh(err) {
		if rerr := c.refresh(ctx); rerr != nil {
			return err
		}
		return c.send(ctx, method, path, bytes.NewReader(raw), "application/octet-stream", out, true)
	}
	return err
}

func (c *HTTPClient) shouldRefresh(err error) bool {
	if err == nil || c.refreshToken == "" {
		return false
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == common.CodeTokenExpired
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	var resp sessionResponse
	body := map[string]string{"refreshToken": c.refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", body, &resp, false); err != nil {
		return err
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return c.tokens.SaveTokens(ctx, resp.AccessToken, resp.RefreshToken)
}

func (c *HTTPClient) dropSession(ctx context.Context) {
	c.accessToken = ""
	c.refreshToken = ""
	_ = c.tokens.ClearTokens(ctx)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	return c.send(ctx, method, path, reader, "application/json", out, authed)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *HTTPClient) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any, authed bool) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if authed && c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &APIError{Code: common.CodeNetworkFailed, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Code: common.CodeNetworkFailed, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		if jsonErr := json.Unmarshal(data, &envelope); jsonErr == nil && envelope.Error.Message != "" {
			return &APIError{Status: resp.StatusCode, Code: envelope.Error.Code, Message: envelope.Error.Message}
		}
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("unexpected status %s", resp.Status)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

