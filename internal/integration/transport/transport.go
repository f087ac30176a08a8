// Package transport общий HTTP клиент для исходящих вызовов интеграций:
// явный таймаут на каждый запрос, ограничение размера ответа, единая ошибка статуса.
package transport

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

	"github.com/medusa-studio/booking-api/pkg/logger"
)

const (
	// DefaultTimeout используется, если таймаут не задан
	DefaultTimeout = 10 * time.Second

	maxBodyBytes    = 1 << 20
	maxErrorSnippet = 256
)

// Client HTTP клиент интеграций. Безопасен для конкурентного использования.
type Client struct {
	http    *http.Client
	timeout time.Duration
	log     *logger.Logger
}

// New создает клиент с таймаутом на запрос
func New(timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
		log:     log,
	}
}

// HTTPClient возвращает нижележащий *http.Client (нужен oauth2 и stripe-go)
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Timeout таймаут одного запроса
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Response прочитанный ответ провайдера
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK true для 2xx
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON разбирает тело ответа в v
func (r *Response) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body (status %d)", r.StatusCode)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// StatusError ответ провайдера с кодом вне 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Err возвращает *StatusError для не-2xx ответа, иначе nil
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	body := strings.TrimSpace(string(r.Body))
	if len(body) > maxErrorSnippet {
		body = body[:maxErrorSnippet]
	}
	return &StatusError{StatusCode: r.StatusCode, Body: body}
}

// Do выполняет запрос один раз, без повторов, и читает тело ответа
func (c *Client) Do(req *http.Request) (*Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugw("Outbound request finished",
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency", time.Since(start).String(),
	)
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// NewJSONRequest запрос с JSON-телом
func NewJSONRequest(ctx context.Context, method, rawURL string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// NewFormRequest запрос с телом application/x-www-form-urlencoded
func NewFormRequest(ctx context.Context, method, rawURL string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Bearer выставляет заголовок Authorization: Bearer
func Bearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}
