// Package backend implements the BackendGateway port against the webhook
// backend: authenticated JSON requests, memoized reads and a failure
// taxonomy that distinguishes missing credentials, rejected credentials,
// error statuses and transport failures.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
	"github.com/ericfisherdev/viuelpadel/internal/metrics"
)

// Compile-time interface satisfaction check.
var _ driven.BackendGateway = (*Gateway)(nil)

// DefaultAuthHeader carries the admin credential on every request.
const DefaultAuthHeader = "x-viuelpadel-authorization"

// Gateway is the single authenticated entry point to the backend.
type Gateway struct {
	baseURL    string
	authHeader string
	header     http.Header // Extra headers sent on every request; never overrides authHeader.
	httpClient *http.Client
	creds      driven.CredentialSource
	cache      driven.ResponseCache
	logger     *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default http.Client. Tests use it to inject an
// httptest server client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithAuthHeader overrides the header name carrying the credential.
func WithAuthHeader(name string) Option {
	return func(g *Gateway) {
		if name != "" {
			g.authHeader = name
		}
	}
}

// WithHeader adds a header sent with every request. A header with the same
// name as the auth header is replaced by the credential.
func WithHeader(name, value string) Option {
	return func(g *Gateway) { g.header.Add(name, value) }
}

// WithLogger sets the logger used for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// NewGateway creates a Gateway for baseURL (without trailing slash). There is
// no client-side timeout; requests end when ctx is done or the transport gives up.
func NewGateway(baseURL string, creds driven.CredentialSource, cache driven.ResponseCache, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: DefaultAuthHeader,
		header:     make(http.Header),
		httpClient: http.DefaultClient,
		creds:      creds,
		cache:      cache,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ClearCache drops every memoized read. The gateway never invalidates on its
// own; callers clear after writes that they know make cached reads stale.
func (g *Gateway) ClearCache() {
	g.cache.Clear()
}

// CheckAuth probes the backend with the stored credential. The probe is never
// served from the cache.
func (g *Gateway) CheckAuth(ctx context.Context) (bool, error) {
	credential, err := g.credential(ctx)
	if err != nil {
		return false, err
	}

	body, err := g.do(ctx, http.MethodGet, newEndpoint(pathCheckAuth), nil, credential)
	if err != nil {
		return false, err
	}

	var ok bool
	if err := json.Unmarshal(body, &ok); err != nil {
		return false, fmt.Errorf("decoding %s response: %w", pathCheckAuth, err)
	}
	return ok, nil
}

// credential returns the stored credential or ErrUnauthenticated.
func (g *Gateway) credential(ctx context.Context) (string, error) {
	credential, ok, err := g.creds.Credential(ctx)
	if err != nil {
		return "", fmt.Errorf("reading admin credential: %w", err)
	}
	if !ok {
		return "", driven.ErrUnauthenticated
	}
	return credential, nil
}

// get performs a memoized read and decodes the body into out. The credential
// is checked before the cache so a logged-out console never serves cached data.
func (g *Gateway) get(ctx context.Context, ep Endpoint, out any) error {
	credential, err := g.credential(ctx)
	if err != nil {
		return err
	}

	key := ep.CacheKey()
	body, hit := g.cache.Get(key)
	metrics.RecordCacheLookup(hit)

	if hit {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding cached %s response: %w", ep.Path, err)
		}
		return nil
	}

	body, err = g.do(ctx, http.MethodGet, ep, nil, credential)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", ep.Path, err)
	}

	// Only bodies that decoded cleanly are memoized.
	g.cache.Set(key, body)
	return nil
}

// post sends payload as JSON and returns the raw acknowledgement body. Writes
// bypass the cache entirely.
func (g *Gateway) post(ctx context.Context, ep Endpoint, payload any) ([]byte, error) {
	credential, err := g.credential(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s payload: %w", ep.Path, err)
	}

	return g.do(ctx, http.MethodPost, ep, data, credential)
}

// postCreate posts payload and extracts the created identifier from the
// acknowledgement. Returns 0 when the backend does not echo one.
func (g *Gateway) postCreate(ctx context.Context, ep Endpoint, payload any) (int64, error) {
	body, err := g.post(ctx, ep, payload)
	if err != nil {
		return 0, err
	}
	if id := gjson.GetBytes(body, "id"); id.Exists() {
		return id.Int(), nil
	}
	return 0, nil
}

// do issues one request and classifies the outcome. A 403 revokes the stored
// credential before the error is returned.
func (g *Gateway) do(ctx context.Context, method string, ep Endpoint, payload []byte, credential string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, ep.URL(g.baseURL), reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, ep.Path, err)
	}
	for name, values := range g.header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(g.authHeader, credential)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		metrics.RecordBackendRequest(method, ep.Path, 0, time.Since(start))
		g.logger.Error("backend request failed", "method", method, "endpoint", ep.Path, "error", err)
		return nil, &driven.NetworkError{Method: method, Endpoint: ep.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordBackendRequest(method, ep.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failure := &driven.RequestFailedError{Method: method, Endpoint: ep.Path, Status: resp.StatusCode}
		if resp.StatusCode == http.StatusForbidden {
			g.revoke(ctx)
		}
		g.logger.Error("backend request rejected", "method", method, "endpoint", ep.Path, "status", resp.StatusCode)
		return nil, failure
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &driven.NetworkError{Method: method, Endpoint: ep.Path, Err: err}
	}
	return body, nil
}

// revoke drops the stored credential after a 403. Failure to delete is logged
// and does not replace the request error.
func (g *Gateway) revoke(ctx context.Context) {
	metrics.RecordAuthRevocation()
	if err := g.creds.Revoke(context.WithoutCancel(ctx)); err != nil {
		g.logger.Error("failed to revoke admin credential", "error", err)
		return
	}
	g.logger.Warn("admin credential rejected by backend, credential removed")
}
