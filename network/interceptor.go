package network

import "net/http"

// Interceptor sees every request before it leaves and every response before the caller does.
type Interceptor interface {
	InterceptRequest(req *http.Request) error
	InterceptResponse(resp *Response) error
}

// HeaderInterceptor injects a fixed user agent and referer on every request.
type HeaderInterceptor struct {
	UserAgent string
	Referer   string
}

func (h HeaderInterceptor) InterceptRequest(req *http.Request) error {
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	if h.Referer != "" {
		req.Header.Set("Referer", h.Referer)
	}
	return nil
}

func (HeaderInterceptor) InterceptResponse(*Response) error {
	return nil
}

// Chain runs interceptors in order; the first error stops the chain.
type Chain []Interceptor

func (c Chain) InterceptRequest(req *http.Request) error {
	for _, i := range c {
		if err := i.InterceptRequest(req); err != nil {
			return err
		}
	}
	return nil
}

func (c Chain) InterceptResponse(resp *Response) error {
	for _, i := range c {
		if err := i.InterceptResponse(resp); err != nil {
			return err
		}
	}
	return nil
}
