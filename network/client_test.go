package network

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSchedule(t *testing.T) {
	Convey("Given a server echoing request details", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTeapot)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"method":       r.Method,
				"user_agent":   r.UserAgent(),
				"referer":      r.Referer(),
				"content_type": r.Header.Get("Content-Type"),
				"body":         string(body),
			})
		}))
		defer server.Close()

		client := NewClient(Options{
			RequestsPerSecond: 5,
			Interceptor:       HeaderInterceptor{UserAgent: "papersrc-test", Referer: "https://example.org/"},
		})

		Convey("Headers should be injected and JSON bodies encoded", func() {
			resp, err := client.Schedule(context.Background(), &Request{
				Method: http.MethodPost,
				URL:    server.URL,
				Data:   map[string]string{"username": "user"},
			}, 1)
			So(err, ShouldBeNil)
			So(resp.Status, ShouldEqual, http.StatusTeapot)

			var echoed map[string]string
			So(resp.JSON(&echoed), ShouldBeNil)
			So(echoed["method"], ShouldEqual, http.MethodPost)
			So(echoed["user_agent"], ShouldEqual, "papersrc-test")
			So(echoed["referer"], ShouldEqual, "https://example.org/")
			So(echoed["content_type"], ShouldEqual, "application/json")
			So(echoed["body"], ShouldEqual, `{"username":"user"}`)
		})

		Convey("A priority above the burst should still be scheduled", func() {
			resp, err := client.Schedule(context.Background(), &Request{URL: server.URL}, 100)
			So(err, ShouldBeNil)
			So(resp.Status, ShouldEqual, http.StatusTeapot)
		})

		Convey("A cancelled context should fail before sending", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := NewClient(Options{}).Schedule(ctx, &Request{URL: server.URL}, 1)
			So(err, ShouldNotBeNil)
		})
	})
}

type rejecting struct{}

func (rejecting) InterceptRequest(*http.Request) error { return nil }
func (rejecting) InterceptResponse(resp *Response) error {
	if resp.Status == http.StatusGone {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func TestChain(t *testing.T) {
	Convey("Given a chain with a rejecting response interceptor", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGone)
		}))
		defer server.Close()

		client := NewClient(Options{Interceptor: Chain{HeaderInterceptor{UserAgent: "x"}, rejecting{}}})

		Convey("Schedule should surface the interceptor error", func() {
			_, err := client.Schedule(context.Background(), &Request{URL: server.URL}, 1)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLooksLikeChallenge(t *testing.T) {
	Convey("LooksLikeChallenge", t, func() {
		html := http.Header{"Content-Type": []string{"text/html; charset=UTF-8"}}

		Convey("Cloudflare interstitial", func() {
			resp := &Response{Status: 503, Headers: html, Data: []byte(`<html><head><title>Just a moment...</title></head></html>`)}
			So(LooksLikeChallenge(resp), ShouldBeTrue)
		})

		Convey("Mitigation header", func() {
			resp := &Response{Status: 403, Headers: http.Header{"Cf-Mitigated": []string{"challenge"}}}
			So(LooksLikeChallenge(resp), ShouldBeTrue)
		})

		Convey("Ordinary forbidden JSON", func() {
			resp := &Response{Status: 403, Headers: http.Header{"Content-Type": []string{"application/json"}}, Data: []byte(`{}`)}
			So(LooksLikeChallenge(resp), ShouldBeFalse)
		})

		Convey("Successful HTML", func() {
			resp := &Response{Status: 200, Headers: html, Data: []byte(`<title>Just a moment</title>`)}
			So(LooksLikeChallenge(resp), ShouldBeFalse)
		})
	})
}
