// Package api implements the Tastebook REST client: a session-aware HTTP
// core that recovers from token expiry with a single refresh-and-retry, and
// typed per-resource wrappers that classify failures into Problem values.
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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvolkov/tastebook/internal/logging"
)

// TokenStore is the client's view of the session vault. Reads may return
// empty strings when no session is stored; unauthenticated requests are
// still attempted and the server gets to reject them.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SaveTokens(ctx context.Context, accessToken, refreshToken string) error
}

// RawResponse is the uninterpreted result of an authorized request. Wrappers
// are responsible for checking OK and decoding Body.
type RawResponse struct {
	Status int
	Body   []byte
}

func (r *RawResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// HTTPClient executes authorized requests against the Tastebook API.
//
// Expiry recovery: a response of exactly 401 triggers one refresh-token
// exchange followed by one retry of the original request. The retry uses the
// same method, path, payload and idempotency key. There is never a third
// attempt; a second 401 is returned to the caller as-is.
//
// Concurrent 401s coalesce on a single refresh: the exchange runs under a
// mutex with a generation counter, and a caller that lost the race reuses
// the tokens the winner persisted instead of spending the refresh token
// twice.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
	log     logging.Logger

	onSessionExpired func()

	refreshMu  sync.Mutex
	refreshGen uint64
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenStore, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// OnSessionExpired registers the callback invoked when a refresh fails and
// the session is globally invalid. Must be set before concurrent use.
func (c *HTTPClient) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// AuthorizedRequest executes one logical request: JSON-encoded body for
// mutating methods, query parameters for GET. The response is returned
// unparsed even when the status is an error.
func (c *HTTPClient) AuthorizedRequest(ctx context.Context, method, path string, query url.Values, body any) (*RawResponse, error) {
	var payload []byte
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = b
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, contentType, payload)
}

// send carries the auth-and-retry protocol shared by JSON and multipart
// requests.
func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte) (*RawResponse, error) {
	idemKey := ""
	if method != http.MethodGet {
		// One key per logical call, reused on the retry, so the server can
		// collapse a duplicated mutation.
		idemKey = uuid.NewString()
	}

	gen := c.generation()

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}

	resp, err := c.do(ctx, method, path, query, contentType, payload, token, idemKey)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusUnauthorized {
		return resp, nil
	}

	refreshed, err := c.refresh(ctx, gen)
	if err != nil {
		c.log.Warn(ctx, "token refresh failed, session expired", "path", path, "error", err)
		c.expireSession()
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	return c.do(ctx, method, path, query, contentType, payload, refreshed, idemKey)
}

// plainRequest executes a request outside the auth-and-retry protocol.
// Login and register use it: a 401 there means bad credentials, not an
// expired session, and must not spend the refresh token.
func (c *HTTPClient) plainRequest(ctx context.Context, method, path string, body any) (*RawResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, method, path, nil, "application/json", payload, "", "")
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte, token, idemKey string) (*RawResponse, error) {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &RawResponse{Status: resp.StatusCode, Body: b}, nil
}

func (c *HTTPClient) generation() uint64 {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshGen
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refresh exchanges the stored refresh token for a new pair and persists it.
// gen is the generation the caller observed before its original request: if
// the generation moved on while waiting for the lock, another caller already
// refreshed and its access token is reused.
func (c *HTTPClient) refresh(ctx context.Context, gen uint64) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.refreshGen != gen {
		return c.tokens.AccessToken(ctx)
	}

	refreshToken, err := c.tokens.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return "", ErrMissingRefreshToken
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}
	resp, err := c.do(ctx, http.MethodPost, "Users/refresh", nil, "application/json", payload, "", "")
	if err != nil {
		return "", fmt.Errorf("refresh call: %w", err)
	}
	if !resp.OK() {
		return "", fmt.Errorf("refresh rejected with status %d", resp.Status)
	}

	env, prob := decodeAuthEnvelope(resp.Body)
	if prob != nil {
		return "", prob
	}
	if err := c.tokens.SaveTokens(ctx, env.AccessToken, env.RefreshToken); err != nil {
		return "", fmt.Errorf("persist refreshed tokens: %w", err)
	}
	c.refreshGen++
	return env.AccessToken, nil
}

func (c *HTTPClient) expireSession() {
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
