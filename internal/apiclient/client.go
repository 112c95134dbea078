// Package apiclient is the HTTP transport to the marketplace backend API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/observability/metrics"
	"github.com/target/carematch-ui/internal/observability/statsd"
	"github.com/target/carematch-ui/internal/ports"
)

// DefaultBaseURL is used when Config.BaseURL is empty.
const DefaultBaseURL = "http://localhost:5000"

const maxErrorBody = 4 << 10

// Config captures how to reach the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport overrides http.DefaultTransport; tests inject httptest transports here.
	Transport http.RoundTripper
	Logger    *slog.Logger
	// Metrics receives one count and one timing per request.
	Metrics statsd.Sink
}

// Factory builds per-session clients that share one base transport.
type Factory struct {
	base      *url.URL
	timeout   time.Duration
	transport http.RoundTripper
	logger    *slog.Logger
	metrics   statsd.Sink
}

var _ ports.RequesterFactory = (*Factory)(nil)

// NewFactory validates cfg and returns a Factory.
func NewFactory(cfg Config) (*Factory, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must be http or https", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := cfg.Metrics
	if sink == nil {
		sink = statsd.Discard
	}

	return &Factory{
		base:      base,
		timeout:   timeout,
		transport: transport,
		logger:    logger.With("component", "apiclient"),
		metrics:   sink,
	}, nil
}

// ForSession returns a client that sends the session token as a bearer credential.
func (f *Factory) ForSession(sessions ports.SessionStore) ports.Requester {
	return f.Client(sessions)
}

// Client is ForSession with the concrete return type.
func (f *Factory) Client(sessions ports.SessionStore) *Client {
	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &Client{
		base:    f.base,
		logger:  f.logger,
		metrics: f.metrics,
		http: &http.Client{
			Timeout:   f.timeout,
			Jar:       jar,
			Transport: &sessionTransport{sessions: sessions, base: f.transport},
		},
	}
}

// sessionTransport adds the Authorization header through oauth2.Transport when
// the session holds a token and sends the request unchanged otherwise.
type sessionTransport struct {
	sessions ports.SessionStore
	base     http.RoundTripper
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.sessions == nil {
		return t.base.RoundTrip(req)
	}
	token, ok := t.sessions.Token(req.Context())
	if !ok {
		return t.base.RoundTrip(req)
	}
	bearer := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   t.base,
	}
	return bearer.RoundTrip(req)
}

// Client sends JSON requests to the backend.
type Client struct {
	base    *url.URL
	http    *http.Client
	logger  *slog.Logger
	metrics statsd.Sink
}

var _ ports.Requester = (*Client)(nil)

// Do sends body as JSON (when non-nil) and decodes a JSON response into out (when non-nil).
// Non-2xx responses return an error wrapping *StatusError; transport failures wrap *NetworkError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid api path %q", path)
	}
	target := *c.base
	target.Path = strings.TrimSuffix(c.base.Path, "/") + "/" + strings.TrimPrefix(rel.Path, "/")
	target.RawQuery = rel.RawQuery

	var reader io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, marshalErr)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	call := metrics.APICall{Method: method, Path: rel.Path}
	start := time.Now()
	defer func() {
		call.Duration = time.Since(start)
		metrics.EmitAPIRequest(c.metrics, call)
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		netErr := &NetworkError{Method: method, Path: path, Err: err}
		c.logger.ErrorContext(ctx, "api request failed", "method", method, "path", path, "error", err)
		if ctxErr := apperrors.FromContext(err, "api request"); ctxErr != nil {
			ctxErr.Cause = netErr
			call.Err = ctxErr
			return ctxErr
		}
		call.Err = apperrors.Wrap(netErr, apperrors.ErrCodeUnavailable, "backend unreachable")
		return call.Err
	}
	call.Status = resp.StatusCode
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close response body", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		call.Err = c.statusError(ctx, method, path, resp)
		return call.Err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s %s response", method, path)
	}
	return nil
}

func (c *Client) statusError(ctx context.Context, method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    backendMessage(raw),
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.WarnContext(ctx, "unauthorized api response", "method", method, "path", path)
	}

	return apperrors.Wrap(statusErr, codeForStatus(resp.StatusCode), statusErr.Message)
}

func codeForStatus(status int) apperrors.ErrorCode {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.ErrCodeUnauthorized
	case http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	case http.StatusConflict:
		return apperrors.ErrCodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrCodeValidation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return apperrors.ErrCodeUnavailable
	default:
		return apperrors.ErrCodeInternal
	}
}

// backendMessage extracts {"message": ...} or {"error": ...} from an error body.
func backendMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 200 {
		return text
	}
	return "backend request failed"
}
