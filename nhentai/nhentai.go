// Package nhentai adapts the nhentai gallery API to the canonical content model.
package nhentai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/papersrc/papersrc/constant"
	"github.com/papersrc/papersrc/network"
	"github.com/papersrc/papersrc/settings"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/store"
)

const (
	ID      = "nhentai"
	Name    = "nhentai"
	SiteURL = "https://nhentai.net"
	APIURL  = SiteURL + "/api"
)

var numeric = regexp.MustCompile(`^\d+$`)

// Source is the nhentai source.
type Source struct {
	settings store.Store
	executor network.Executor
}

func New(plain store.Store, executor network.Executor) *Source {
	return &Source{settings: plain, executor: executor}
}

// Interceptor is the request interceptor the executor of this source should run.
func Interceptor() network.Interceptor {
	return network.HeaderInterceptor{UserAgent: constant.UserAgent, Referer: SiteURL + "/"}
}

func (s *Source) Name() string { return Name }
func (s *Source) ID() string   { return ID }

// Settings exposes the plaintext store of the source.
func (s *Source) Settings() store.Store { return s.settings }

func (s *Source) ShareURL(mangaID string) string {
	return SiteURL + "/g/" + mangaID
}

// BypassRequest is the page to open when the site answers with a challenge.
func (s *Source) BypassRequest() *network.Request {
	return &network.Request{
		Method: http.MethodGet,
		URL:    SiteURL,
		Headers: map[string]string{
			"User-Agent": constant.UserAgent,
			"Referer":    SiteURL + "/",
		},
	}
}

func (s *Source) SourceMenu() (settings.Section, error) {
	return settings.Section{
		ID:     "main",
		Header: "Source Settings",
		Rows: []settings.Row{
			settings.Navigation(Settings(s.settings)),
			ResetSettings(s.settings),
		},
	}, nil
}

// get fetches u and decodes the JSON body into v.
// A 503 is the challenge page and never reaches the decoder.
func (s *Source) get(ctx context.Context, u string, v any) error {
	resp, err := s.executor.Schedule(ctx, &network.Request{Method: http.MethodGet, URL: u}, 1)
	if err != nil {
		return err
	}

	if resp.Status == http.StatusServiceUnavailable || network.LooksLikeChallenge(resp) {
		return &source.ChallengeError{Source: ID}
	}

	if err := source.CheckStatus(resp.Status, u); err != nil {
		return err
	}

	if err := resp.JSON(v); err != nil {
		return &source.MalformedResponseError{What: u, Err: err}
	}
	return nil
}

func (s *Source) gallery(ctx context.Context, id string) (*gallery, error) {
	if !numeric.MatchString(id) {
		return nil, &source.ValidationError{Field: "Gallery ID", Reason: fmt.Sprintf("%q is not numeric", id)}
	}

	var g gallery
	if err := s.get(ctx, APIURL+"/gallery/"+id, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Source) MangaDetails(ctx context.Context, mangaID string) (*source.Title, error) {
	g, err := s.gallery(ctx, mangaID)
	if err != nil {
		return nil, err
	}
	return ParseGallery(g)
}

func (s *Source) Chapters(ctx context.Context, mangaID string) ([]*source.Chapter, error) {
	g, err := s.gallery(ctx, mangaID)
	if err != nil {
		return nil, err
	}

	chapter, err := ParseGalleryIntoChapter(g, mangaID)
	if err != nil {
		return nil, err
	}
	return []*source.Chapter{chapter}, nil
}

// ChapterDetails ignores chapterID, a gallery has exactly one chapter.
func (s *Source) ChapterDetails(ctx context.Context, mangaID, _ string) (*source.ChapterDetails, error) {
	g, err := s.gallery(ctx, mangaID)
	if err != nil {
		return nil, err
	}
	return ParseChapterDetails(g, mangaID)
}

// query composes the remote search string and picks the sort order.
// A shortcut anywhere in the composed string, extra arguments included, wins over the stored order.
func (s *Source) query(text string) (query, order string, err error) {
	language, err := GetLanguage(s.settings)
	if err != nil {
		return "", "", err
	}
	extra, err := GetExtraArgs(s.settings)
	if err != nil {
		return "", "", err
	}

	composed := ComposeQuery(text, language, extra)
	if shortcut, rest, ok := ExtractSortShortcut(composed); ok {
		return rest, shortcut, nil
	}

	order, err = GetSortOrder(s.settings)
	if err != nil {
		return "", "", err
	}
	return composed, order, nil
}

func (s *Source) search(ctx context.Context, query, order string, page int) ([]*source.Title, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("sort", order)
	params.Set("page", strconv.Itoa(page))

	var result searchResult
	if err := s.get(ctx, APIURL+"/galleries/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return ParseSearch(&result)
}

// Search looks a purely numeric title up as a gallery id and stops after that single result.
func (s *Source) Search(ctx context.Context, request source.SearchRequest, metadata *source.Metadata) (*source.PagedResults, error) {
	if metadata.Stopped() {
		return source.Stop(), nil
	}

	page := metadata.PageOrFirst()
	title := strings.TrimSpace(request.Title)

	if numeric.MatchString(title) {
		g, err := s.gallery(ctx, title)
		if err != nil {
			return nil, err
		}

		results, err := ParseSearch(&searchResult{Result: []gallery{*g}, NumPages: 1, PerPage: 1})
		if err != nil {
			return nil, err
		}

		return &source.PagedResults{
			Results:  results,
			Metadata: &source.Metadata{Page: page + 1, StopSearch: true},
		}, nil
	}

	query, order, err := s.query(request.Title)
	if err != nil {
		return nil, err
	}

	results, err := s.search(ctx, query, order, page)
	if err != nil {
		return nil, err
	}

	return &source.PagedResults{
		Results:  results,
		Metadata: &source.Metadata{Page: page + 1, StopSearch: len(results) == 0},
	}, nil
}

// HomeSections announces each sort order as a section, once empty and once loaded.
func (s *Source) HomeSections(ctx context.Context, announce func(*source.HomeSection)) error {
	query, _, err := s.query("")
	if err != nil {
		return err
	}

	for _, order := range SortOrders.Codes() {
		section := &source.HomeSection{ID: order, Title: SortOrders.Name(order), ViewMore: true}
		announce(section)

		items, err := s.search(ctx, query, order, 1)
		if err != nil {
			return fmt.Errorf("%s: %w", order, err)
		}

		section.Items = items
		announce(section)
	}

	return nil
}

func (s *Source) ViewMore(ctx context.Context, sectionID string, metadata *source.Metadata) (*source.PagedResults, error) {
	if !SortOrders.Has(sectionID) {
		return nil, &source.ValidationError{Field: "Section", Reason: fmt.Sprintf("%q does not exist", sectionID)}
	}
	if metadata.Stopped() {
		return source.Stop(), nil
	}

	query, _, err := s.query("")
	if err != nil {
		return nil, err
	}

	page := metadata.PageOrFirst()
	results, err := s.search(ctx, query, sectionID, page)
	if err != nil {
		return nil, err
	}

	return &source.PagedResults{
		Results:  results,
		Metadata: &source.Metadata{Page: page + 1, StopSearch: len(results) == 0},
	}, nil
}
