// Package bitable is a small client for Feishu Bitable records.
package bitable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

const (
	DefaultBaseURL  = "https://open.feishu.cn"
	defaultPageSize = 500
	defaultTimeout  = 10 * time.Second

	CodeRecordNotFound      = 1254043
	CodeInvalidAccessToken  = 99991663
	CodeAccessTokenNotFound = 99991661
)

type Record struct {
	ID     string         `json:"record_id,omitempty"`
	Fields map[string]any `json:"fields"`
}

// APIError is a non-zero code (or undecodable reply) returned by the open platform.
type APIError struct {
	HTTPStatus int
	Code       int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bitable api error (http %d, code %d): %s", e.HTTPStatus, e.Code, e.Msg)
}

type Config struct {
	BaseURL   string
	AppID     string
	AppSecret string
	// Bitable app token (the base id)
	AppToken string
	PageSize int
	Timeout  time.Duration
}

type Client struct {
	baseURL  string
	appToken string
	pageSize int
	http     *http.Client
	tokens   *TokenCache
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 || cfg.PageSize > defaultPageSize {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &Client{
		baseURL:  cfg.BaseURL,
		appToken: cfg.AppToken,
		pageSize: cfg.PageSize,
		http:     httpClient,
		tokens:   NewTokenCache(NewAppTokenSource(cfg.BaseURL, cfg.AppID, cfg.AppSecret, httpClient)),
	}
}

type apiResponse[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

type listData struct {
	HasMore   bool     `json:"has_more"`
	PageToken string   `json:"page_token"`
	Total     int      `json:"total"`
	Items     []Record `json:"items"`
}

type recordData struct {
	Record Record `json:"record"`
}

func (c *Client) recordsPath(tableID string) string {
	return "/open-apis/bitable/v1/apps/" + url.PathEscape(c.appToken) + "/tables/" + url.PathEscape(tableID) + "/records"
}

// ListRecords follows page tokens until the table is exhausted.
func (c *Client) ListRecords(ctx context.Context, tableID string) ([]Record, error) {
	records := make([]Record, 0, c.pageSize)
	pageToken := ""
	for {
		query := url.Values{}
		query.Set("page_size", strconv.Itoa(c.pageSize))
		if pageToken != "" {
			query.Set("page_token", pageToken)
		}
		var resp apiResponse[listData]
		if err := c.do(ctx, http.MethodGet, c.recordsPath(tableID), query, nil, &resp); err != nil {
			return nil, err
		}
		records = append(records, resp.Data.Items...)
		if !resp.Data.HasMore || resp.Data.PageToken == "" {
			return records, nil
		}
		pageToken = resp.Data.PageToken
	}
}

func (c *Client) GetRecord(ctx context.Context, tableID, recordID string) (*Record, error) {
	var resp apiResponse[recordData]
	err := c.do(ctx, http.MethodGet, c.recordsPath(tableID)+"/"+url.PathEscape(recordID), nil, nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data.Record, nil
}

func (c *Client) CreateRecord(ctx context.Context, tableID string, fields map[string]any) (*Record, error) {
	var resp apiResponse[recordData]
	err := c.do(ctx, http.MethodPost, c.recordsPath(tableID), nil, Record{Fields: fields}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data.Record, nil
}

func (c *Client) UpdateRecord(ctx context.Context, tableID, recordID string, fields map[string]any) (*Record, error) {
	var resp apiResponse[recordData]
	err := c.do(ctx, http.MethodPut, c.recordsPath(tableID)+"/"+url.PathEscape(recordID), nil, Record{Fields: fields}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data.Record.ID == "" {
		resp.Data.Record.ID = recordID
	}
	return &resp.Data.Record, nil
}

type envelope interface {
	code() int
	msg() string
}

func (r *apiResponse[T]) code() int   { return r.Code }
func (r *apiResponse[T]) msg() string { return r.Msg }

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out envelope) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return errors.New("encoding request body error: " + err.Error())
		}
		reader = bytes.NewReader(payload)
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.New("building request error: " + err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{HTTPStatus: resp.StatusCode, Msg: "undecodable response: " + err.Error()}
	}
	if out.code() != 0 {
		if out.code() == CodeInvalidAccessToken || out.code() == CodeAccessTokenNotFound {
			c.tokens.Invalidate()
		}
		return &APIError{HTTPStatus: resp.StatusCode, Code: out.code(), Msg: out.msg()}
	}
	return nil
}
