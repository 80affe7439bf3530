package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/papersrc/papersrc/log"
	"github.com/papersrc/papersrc/util"
	"golang.org/x/time/rate"
)

// Executor schedules requests. priority is the request's weight against the rate limit.
type Executor interface {
	Schedule(ctx context.Context, request *Request, priority int) (*Response, error)
}

// Options configure a Client.
type Options struct {
	// RequestsPerSecond of zero or less disables limiting.
	RequestsPerSecond int
	Timeout           time.Duration
	Interceptor       Interceptor
	// Fingerprint routes requests through a Chrome TLS fingerprint.
	Fingerprint bool
}

// Client is the default Executor, one per source.
type Client struct {
	http        *http.Client
	limiter     *rate.Limiter
	interceptor Interceptor
}

// NewClient returns a Client configured by options.
func NewClient(options Options) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if options.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(options.RequestsPerSecond), options.RequestsPerSecond)
	}

	transport := http.RoundTripper(newTransport())
	if options.Fingerprint {
		transport = newFingerprintTransport(options.Timeout)
	}

	interceptor := options.Interceptor
	if interceptor == nil {
		interceptor = Chain{}
	}

	return &Client{
		http: &http.Client{
			Timeout:   options.Timeout,
			Transport: transport,
		},
		limiter:     limiter,
		interceptor: interceptor,
	}
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// Schedule waits for the rate limiter, sends the request and reads the whole body.
// Non-2xx statuses are not errors here; sources decide what a status means.
func (c *Client) Schedule(ctx context.Context, request *Request, priority int) (*Response, error) {
	weight := util.Min(util.Max(priority, 1), c.limiter.Burst())
	if err := c.limiter.WaitN(ctx, weight); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := request.build()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	if err := c.interceptor.InterceptRequest(req); err != nil {
		return nil, fmt.Errorf("intercept request: %w", err)
	}

	entry := log.WithFields(log.Fields{"method": req.Method, "url": req.URL.String()})
	entry.Debug("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Error("request failed")
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	response := &Response{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Data:    data,
	}

	if err := c.interceptor.InterceptResponse(response); err != nil {
		return nil, fmt.Errorf("intercept response: %w", err)
	}

	entry.WithField("status", response.Status).Debug("got response")
	return response, nil
}
