// Package scryfall is a typed, read-only client for the Scryfall Magic: The
// Gathering API (https://scryfall.com/docs/api).
//
// Every endpoint is described by a Request value carrying its parameters,
// such as GetSet{Code: "zen"} or SearchCards{Query: "t:merfolk"}, and is sent
// with Execute or one of the convenience methods of Client. Requests issued
// through the same Client are spaced by at least its minimum interval, as
// asked by https://scryfall.com/docs/api#rate-limits-and-good-citizenship.
package scryfall

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/cschneid/scryfall-api/log"
	"github.com/cschneid/scryfall-api/metrics"
)

const (
	// DefaultBaseURL is the address of the public Scryfall API.
	DefaultBaseURL = "https://api.scryfall.com"
	// DefaultMinInterval is the minimum delay between two requests
	// recommended by Scryfall.
	DefaultMinInterval = 50 * time.Millisecond
	// DefaultUserAgent is sent when no other User-Agent is configured.
	DefaultUserAgent = "scryfall-api-go/" + Version

	defaultTimeout = 30 * time.Second
	acceptHeader   = "application/json;q=0.9,*/*;q=0.8"
	tracerName     = "github.com/cschneid/scryfall-api"
)

// Version of the client library.
const Version = "1.0.0"

type clientOptions struct {
	baseURL        string
	client         *http.Client
	minInterval    time.Duration
	limiter        *rate.Limiter
	clock          Clock
	userAgent      string
	metrics        *metrics.Metrics
	tracerProvider trace.TracerProvider
}

// ClientOption configures the API client.
type ClientOption func(*clientOptions)

// WithBaseURL returns an option which overrides the base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient returns an option which overrides the default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.client = client
	}
}

// WithMinInterval returns an option which overrides the minimum delay
// between the issue times of two consecutive requests.
func WithMinInterval(interval time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.minInterval = interval
	}
}

// WithRateLimit returns an option which adds a sustained rate limit on top
// of the minimum interval, allowing bursts of up to burst requests.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(o *clientOptions) {
		o.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithClock returns an option which overrides the time source of the
// throttle.
func WithClock(clock Clock) ClientOption {
	return func(o *clientOptions) {
		o.clock = clock
	}
}

// WithUserAgent returns an option which overrides the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithMetrics returns an option which records request metrics in m.
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

// WithTracerProvider returns an option which overrides the global
// OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(o *clientOptions) {
		o.tracerProvider = tp
	}
}

// Client sends requests to the Scryfall API. It is safe for concurrent use:
// requests wait for each other until they are issued, then run concurrently.
type Client struct {
	baseURL     string
	client      *http.Client
	minInterval time.Duration
	limiter     *rate.Limiter
	clock       Clock
	userAgent   string
	metrics     *metrics.Metrics
	tracer      trace.Tracer

	// dispatch is held from the throttle wait until the request is issued.
	dispatch chan struct{}

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a client.
func NewClient(options ...ClientOption) (*Client, error) {
	// Default options
	co := &clientOptions{
		baseURL: DefaultBaseURL,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		minInterval: DefaultMinInterval,
		clock:       realClock{},
		userAgent:   DefaultUserAgent,
	}
	for _, option := range options {
		option(co)
	}

	base, err := url.Parse(co.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", co.baseURL, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: not absolute", co.baseURL)
	}
	if co.minInterval < 0 {
		return nil, fmt.Errorf("invalid minimum interval %s", co.minInterval)
	}

	tp := co.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Client{
		baseURL:     strings.TrimSuffix(base.String(), "/"),
		client:      co.client,
		minInterval: co.minInterval,
		limiter:     co.limiter,
		clock:       co.clock,
		userAgent:   co.userAgent,
		metrics:     co.metrics,
		tracer:      tp.Tracer(tracerName, trace.WithInstrumentationVersion(Version)),
		dispatch:    make(chan struct{}, 1),
	}, nil
}

// LastRequest returns the issue time of the latest request, or the zero time
// if none was sent yet.
func (c *Client) LastRequest() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastRequest
}

// Execute sends r and decodes the response into the record type of r.
//
// The returned error is one of *EncodeError, *TransportError, *APIError and
// *DecodeError, or the context error when ctx is done while waiting for the
// throttle.
func Execute[T any](ctx context.Context, c *Client, r Request[T]) (T, error) {
	var zero T

	target, err := r.target()
	if err != nil {
		c.observe(err, 0)
		return zero, err
	}

	ctx, span := c.tracer.Start(ctx, "scryfall.Execute",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("scryfall.target", target)),
	)
	defer span.End()

	body, elapsed, err := c.get(ctx, target)
	if err == nil {
		var v T
		v, err = r.decode(body)
		if err == nil {
			c.observe(nil, elapsed)
			return v, nil
		}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.observe(err, elapsed)

	return zero, err
}

// resolve returns the full URL of target. Absolute targets, such as the
// next_page links of lists, are used as-is.
func (c *Client) resolve(target string) string {
	if u, err := url.Parse(target); err == nil && u.IsAbs() {
		return target
	}
	return c.baseURL + target
}

// acquire takes the dispatch slot, which is held from the start of the
// throttle wait until the request is issued.
func (c *Client) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case c.dispatch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) release() {
	<-c.dispatch
}

// throttle waits until the next request may be issued. The caller must hold
// the dispatch slot. A canceled wait leaves the issue time of the previous
// request untouched and hands its rate limiter token back.
func (c *Client) throttle(ctx context.Context) error {
	var waited time.Duration
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveThrottle(waited)
		}
	}()

	if c.limiter != nil {
		now := c.clock.Now()
		if r := c.limiter.ReserveN(now, 1); r.OK() {
			if wait := r.DelayFrom(now); wait > 0 {
				log.Debugw("Throttling request", "wait", wait, "reason", "rate limit")
				if err := c.clock.Sleep(ctx, wait); err != nil {
					r.CancelAt(c.clock.Now())
					return err
				}
				waited += wait
			}
		}
	}

	// Sleeping may return early on some clocks, so check again on wake-up.
	for {
		wait := c.untilNextSlot()
		if wait <= 0 {
			return nil
		}
		log.Debugw("Throttling request", "wait", wait)
		if err := c.clock.Sleep(ctx, wait); err != nil {
			return err
		}
		waited += wait
	}
}

// untilNextSlot returns how long to wait before the minimum interval since
// the previous request has elapsed.
func (c *Client) untilNextSlot() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastRequest.IsZero() {
		return 0
	}
	return c.lastRequest.Add(c.minInterval).Sub(c.clock.Now())
}

// markIssued records the current time as the issue time of a request. The
// slot counts even if the request later fails.
func (c *Client) markIssued() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastRequest = c.clock.Now()
}

func (c *Client) get(ctx context.Context, target string) (body []byte, elapsed time.Duration, err error) {
	targetURL := c.resolve(target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, 0, &TransportError{URL: targetURL, Err: err}
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Encoding", "gzip, br")
	req.Header.Set("User-Agent", c.userAgent)

	if err = c.acquire(ctx); err != nil {
		return nil, 0, err
	}
	if err = c.throttle(ctx); err != nil {
		c.release()
		return nil, 0, err
	}

	log.Debugw("Sending request", "url", targetURL)

	start := time.Now()
	defer func() {
		elapsed = time.Since(start)
	}()

	c.markIssued()
	c.release()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, &TransportError{URL: targetURL, Err: err}
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil && err == nil {
			err = &TransportError{URL: targetURL, Err: closeErr}
		}
	}()

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("http.response.status_code", resp.StatusCode),
	)

	reader, err := getReader(resp)
	if err != nil {
		return nil, 0, &TransportError{URL: targetURL, Err: err}
	}
	defer func() {
		_ = reader.Close()
	}()

	body, err = io.ReadAll(reader)
	if err != nil {
		return nil, 0, &TransportError{URL: targetURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, body)
		log.Warnw(
			"Scryfall returned an error",
			"url", targetURL,
			"status", apiErr.Status,
			"code", apiErr.Code,
			"details", apiErr.Details,
		)
		return nil, 0, apiErr
	}

	return body, 0, nil
}

// getReader wraps the response body according to its Content-Encoding.
// Setting Accept-Encoding by hand disables the transparent decompression of
// net/http, so gzip is handled here as well. Closing the returned reader
// never closes the response body.
func getReader(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "", "identity":
		return io.NopCloser(resp.Body), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
}

type errorObject struct {
	Object string `json:"object"`
	APIError
}

func parseAPIError(status int, body []byte) *APIError {
	var obj errorObject
	if err := json.Unmarshal(body, &obj); err == nil && obj.Object == "error" {
		apiErr := obj.APIError
		if apiErr.Status == 0 {
			apiErr.Status = status
		}
		return &apiErr
	}

	return &APIError{
		Status:  status,
		Details: http.StatusText(status),
	}
}

func (c *Client) observe(err error, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveRequest(outcome(err), elapsed)
}

func outcome(err error) string {
	var (
		apiErr       *APIError
		transportErr *TransportError
		decodeErr    *DecodeError
		encodeErr    *EncodeError
	)

	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPI
	case errors.As(err, &decodeErr):
		return metrics.OutcomeDecode
	case errors.As(err, &encodeErr):
		return metrics.OutcomeEncode
	case errors.As(err, &transportErr):
		return metrics.OutcomeTransport
	default:
		return metrics.OutcomeCanceled
	}
}
