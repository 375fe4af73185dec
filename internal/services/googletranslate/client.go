package googletranslate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"subtrans/internal/language"
	"subtrans/internal/services"
)

const (
	defaultBaseURL     = "https://translate.googleapis.com"
	defaultHTTPTimeout = 30 * time.Second
	translatePath      = "/translate_a/single"
)

// Config captures the runtime settings for the client.
type Config struct {
	BaseURL           string
	TimeoutSeconds    int
	RequestsPerMinute int
}

// Client translates text one request at a time.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLimiter overrides the pacing limiter derived from Config.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	if cfg.RequestsPerMinute > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), 1)
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	return client
}

// StatusError reports a non-2xx answer from the endpoint.
type StatusError struct {
	Text       string
	Source     string
	Target     string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to translate \"%s\" (%s -> %s): %s", e.Text, e.Source, e.Target, e.Status)
}

func (e *StatusError) Unwrap() error {
	return services.ErrUpstream
}

type translateResponse struct {
	Src       string `json:"src"`
	Sentences []struct {
		Trans string `json:"trans"`
		Orig  string `json:"orig"`
	} `json:"sentences"`
}

// Translate sends text to the endpoint and returns the concatenated sentence
// translations along with a label for the detected source language.
func (c *Client) Translate(ctx context.Context, text, source, target string) (services.Translation, error) {
	var empty services.Translation
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return empty, fmt.Errorf("translate pacing: %w", err)
		}
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", source)
	query.Set("tl", target)
	query.Set("dt", "t")
	query.Set("dj", "1")
	query.Set("source", "input")
	query.Set("q", text)
	endpoint := c.baseURL + translatePath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return empty, fmt.Errorf("translate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("translate request: %w", unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return empty, &StatusError{
			Text:       text,
			Source:     source,
			Target:     target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	var payload translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return empty, fmt.Errorf("translate response: decode: %w", err)
	}

	var b strings.Builder
	for _, sentence := range payload.Sentences {
		if sentence.Trans != "" {
			b.WriteString(sentence.Trans)
		}
	}

	detected := strings.TrimSpace(payload.Src)
	if detected == "" {
		detected = source
	}
	return services.Translation{
		SourceLanguage: language.Label(detected),
		Text:           b.String(),
	}, nil
}

// unwrapURLError drops the request URL from transport errors; it carries the
// whole query text.
func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return fmt.Errorf("%s: %w", strings.ToLower(urlErr.Op), urlErr.Err)
	}
	return err
}
