package bitable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"
)

const (
	tokenPath = "/open-apis/auth/v3/tenant_access_token/internal"
	// Tokens are refreshed this long before the server-side expiry.
	tokenRefreshMargin = 5 * time.Minute
	defaultTokenTTL    = 2 * time.Hour
	tokenFetchTimeout  = 15 * time.Second
)

type TokenSource interface {
	// Fetches a fresh tenant access token and its expiry moment
	FetchToken(ctx context.Context) (string, time.Time, error)
}

type AppTokenSource struct {
	baseURL   string
	appID     string
	appSecret string
	http      *http.Client
	now       func() time.Time
}

func NewAppTokenSource(baseURL, appID, appSecret string, client *http.Client) *AppTokenSource {
	return &AppTokenSource{
		baseURL:   baseURL,
		appID:     appID,
		appSecret: appSecret,
		http:      client,
		now:       time.Now,
	}
}

type tokenResponse struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
	Expire            int    `json:"expire"`
}

func (s *AppTokenSource) FetchToken(ctx context.Context) (string, time.Time, error) {
	payload, err := sonic.Marshal(map[string]string{
		"app_id":     s.appID,
		"app_secret": s.appSecret,
	})
	if err != nil {
		return "", time.Time{}, errors.New("encoding token request error: " + err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, errors.New("building token request error: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	resp, err := s.http.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("requesting access token: %w", err)
	}
	defer resp.Body.Close()
	var body tokenResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", time.Time{}, &APIError{HTTPStatus: resp.StatusCode, Msg: "undecodable token response: " + err.Error()}
	}
	if body.Code != 0 || body.TenantAccessToken == "" {
		return "", time.Time{}, &APIError{HTTPStatus: resp.StatusCode, Code: body.Code, Msg: "fetching access token failed: " + body.Msg}
	}
	ttl := time.Duration(body.Expire) * time.Second
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return body.TenantAccessToken, s.now().Add(ttl), nil
}

// TokenCache keeps the last token until shortly before it expires.
// Concurrent refreshes collapse into one remote call.
type TokenCache struct {
	src   TokenSource
	group singleflight.Group
	now   func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenCache(src TokenSource) *TokenCache {
	return &TokenCache{
		src: src,
		now: time.Now,
	}
}

func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Add(tokenRefreshMargin).Before(c.expiresAt) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	// The shared fetch outlives any single caller; each caller still stops
	// waiting when its own context ends.
	ch := c.group.DoChan("token", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tokenFetchTimeout)
		defer cancel()
		token, expiresAt, err := c.src.FetchToken(fetchCtx)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.token = token
		c.expiresAt = expiresAt
		c.mu.Unlock()
		return token, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached token so the next call fetches a new one.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}
