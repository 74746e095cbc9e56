package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBody limita lo que se lee de una respuesta.
	DefaultMaxBody int64 = 1 << 20
)

var ErrBodyTooLarge = errors.New("httpclient: response body too large")

// Client es un cliente JSON de solo lectura contra un servicio fijo.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	MaxBody   int64
}

type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBody   int64
	// Transport permite inyectar un RoundTripper (tests).
	Transport http.RoundTripper
}

// New valida baseURL (absoluta, http/https) y arma el cliente.
func New(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url scheme %q", u.Scheme)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	tr := opts.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}

	return &Client{
		HTTP:      &http.Client{Timeout: opts.Timeout, Transport: tr},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: opts.UserAgent,
		MaxBody:   opts.MaxBody,
	}, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// GetJSON hace GET BaseURL+path y decodifica el cuerpo en out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	// +1 para detectar si el cuerpo excede el máximo
	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.MaxBody+1))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := raw
		if len(body) > 512 {
			body = body[:512]
		}
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if int64(len(raw)) > c.MaxBody {
		return ErrBodyTooLarge
	}
	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}
