package network

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// challengeTitles are the page titles anti-bot interstitials are served with.
var challengeTitles = []string{
	"just a moment",
	"attention required",
	"ddos-guard",
}

// LooksLikeChallenge reports whether resp is an anti-bot interstitial rather than content.
// Only 403 and 503 HTML responses are inspected.
func LooksLikeChallenge(resp *Response) bool {
	if resp.Status != http.StatusForbidden && resp.Status != http.StatusServiceUnavailable {
		return false
	}

	if resp.Headers.Get("Cf-Mitigated") == "challenge" {
		return true
	}

	if !strings.Contains(resp.Headers.Get("Content-Type"), "html") {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Data))
	if err != nil {
		return false
	}

	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	for _, t := range challengeTitles {
		if strings.Contains(title, t) {
			return true
		}
	}

	return doc.Find("#challenge-form, #cf-challenge-running").Length() > 0
}
