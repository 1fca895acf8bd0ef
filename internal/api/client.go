package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
	"github.com/google/uuid"

	"github.com/altinukshini/gif-ascii-tui/internal/config"
)

const (
	convertURLPath    = "api/convert-from-url"
	convertUploadPath = "api/convert-from-upload"
	searchPath        = "api/search-giphy"

	// Rendered frames are plain text but a long GIF at full width adds up.
	maxResponseBytes = 64 << 20
)

var UserAgent = "gif-ascii-tui"

type Client struct {
	http   *http.Client
	cfg    config.Config
	logger *slog.Logger
}

type Options struct {
	Logger *slog.Logger
	// HTTPLog receives go-gh's request/response dump when non-nil.
	HTTPLog io.Writer
	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
}

func NewClient(cfg config.Config, opts Options) (*Client, error) {
	// go-gh resolves credentials from the gh config unless host and token
	// are both set. Use a host that never matches so no Authorization header
	// is attached when no token was configured.
	host, token := "none", "none"
	if cfg.Token != "" {
		host, token = cfg.Host(), cfg.Token
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	ghOpts := ghAPI.ClientOptions{
		Host:               host,
		AuthToken:          token,
		Transport:          transport,
		Timeout:            cfg.Timeout,
		SkipDefaultHeaders: true,
		Headers: map[string]string{
			"User-Agent": UserAgent,
			"Accept":     "application/json",
		},
		LogIgnoreEnv: true,
		Log:          opts.HTTPLog,
	}
	if cfg.SearchCacheTTL > 0 {
		ghOpts.EnableCache = true
		ghOpts.CacheTTL = cfg.SearchCacheTTL
		if cfg.CacheDir != "" {
			ghOpts.CacheDir = filepath.Join(cfg.CacheDir, "http")
		}
	}

	httpClient, err := ghAPI.NewHTTPClient(ghOpts)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{http: httpClient, cfg: cfg, logger: logger}, nil
}

func (c *Client) BaseURL() string {
	return c.cfg.APIURL
}

// do sends req and decodes a successful JSON body into out. Non-2xx
// responses become *Error carrying the backend's detail message.
func (c *Client) do(req *http.Request, fallback string, out interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Debug("request failed",
			"method", req.Method, "url", req.URL.String(), "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnreachable, err)
	}

	c.logger.Debug("request done",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			StatusCode: resp.StatusCode,
			Detail:     detailFromBody(body, fallback),
			RequestID:  requestID,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint(path), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}
