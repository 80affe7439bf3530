// Package mangadex adapts the MangaDex API to the canonical content model.
package mangadex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/papersrc/papersrc/auth"
	"github.com/papersrc/papersrc/constant"
	"github.com/papersrc/papersrc/log"
	"github.com/papersrc/papersrc/network"
	"github.com/papersrc/papersrc/settings"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/store"
	"github.com/papersrc/papersrc/util"
)

const (
	ID      = "mangadex"
	Name    = "MangaDex"
	APIURL  = "https://api.mangadex.org"
	AuthURL = APIURL + "/auth/"
	SiteURL = "https://mangadex.org"

	// pageSize is the limit of search and home section requests.
	pageSize = 100
	// feedSize is the limit of chapter feed requests.
	feedSize = 500
	// homeSize is the number of items a home section shows.
	homeSize = 20
	// maxOffset is the deepest offset the API serves for list endpoints.
	maxOffset = 10000
)

// similarPrefix marks view-more ids of recommendation sections.
const similarPrefix = "similar:"

// maxLookBackDays bounds days_to_look_back before it becomes a duration.
const maxLookBackDays = 36500

// Source is the MangaDex source.
type Source struct {
	settings store.Store
	executor network.Executor
	auth     *auth.Manager
	now      func() time.Time
}

// New returns a MangaDex source reading settings from plain and tokens from secrets.
func New(plain, secrets store.Store, executor network.Executor) *Source {
	return &Source{
		settings: plain,
		executor: executor,
		auth:     auth.NewManager(secrets, executor, AuthURL),
		now:      time.Now,
	}
}

// Interceptor is the request interceptor the executor of this source should run.
func Interceptor() network.Interceptor {
	return network.HeaderInterceptor{UserAgent: constant.UserAgent, Referer: SiteURL + "/"}
}

func (s *Source) Name() string { return Name }
func (s *Source) ID() string   { return ID }

// Auth exposes the session manager of the source.
func (s *Source) Auth() *auth.Manager { return s.auth }

// Settings exposes the plaintext store of the source.
func (s *Source) Settings() store.Store { return s.settings }

func (s *Source) ShareURL(mangaID string) string {
	return SiteURL + "/title/" + mangaID
}

// BypassRequest is the page to open when the API answers with a challenge.
func (s *Source) BypassRequest() *network.Request {
	return &network.Request{
		Method:  http.MethodGet,
		URL:     SiteURL,
		Headers: map[string]string{"User-Agent": constant.UserAgent},
	}
}

// SourceMenu is the settings menu of the source.
func (s *Source) SourceMenu() (settings.Section, error) {
	account, err := AccountSettings(s.auth)
	if err != nil {
		return settings.Section{}, err
	}

	return settings.Section{
		ID: "sourceMenu",
		Rows: []settings.Row{
			account,
			settings.Navigation(ContentSettings(s.settings)),
			settings.Navigation(ThumbnailSettings(s.settings)),
			settings.Navigation(HomepageSettings(s.settings)),
			ResetSettings(s.settings),
		},
	}, nil
}

// authorization returns the bearer header value, refreshing an expired session first.
// A failed refresh degrades to anonymous access.
func (s *Source) authorization(ctx context.Context) string {
	current, err := s.auth.Session()
	if err != nil {
		log.Warnf("mangadex: read session: %v", err)
		return ""
	}

	session, ok := current.Get()
	if !ok {
		return ""
	}

	if session.Expired(s.now()) && session.RefreshToken.IsPresent() {
		refreshed, err := s.auth.Refresh(ctx)
		if err != nil {
			log.Warnf("mangadex: refresh session: %v", err)
			return ""
		}
		session = refreshed
	}

	return "Bearer " + session.AccessToken
}

// get fetches path with query and decodes the JSON body into v.
func (s *Source) get(ctx context.Context, path string, query url.Values, v any) error {
	u := APIURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	headers := map[string]string{}
	if bearer := s.authorization(ctx); bearer != "" {
		headers["Authorization"] = bearer
	}

	resp, err := s.executor.Schedule(ctx, &network.Request{
		Method:  http.MethodGet,
		URL:     u,
		Headers: headers,
	}, 0)
	if err != nil {
		return err
	}

	if network.LooksLikeChallenge(resp) {
		return &source.ChallengeError{Source: ID}
	}

	if resp.Status > 399 {
		var failure auth.Envelope
		if err := resp.JSON(&failure); err == nil && len(failure.Errors) > 0 {
			return &source.APIError{Errors: failure.Errors}
		}
		return source.CheckStatus(resp.Status, u)
	}

	if err := resp.JSON(v); err != nil {
		return &source.MalformedResponseError{What: path, Err: err}
	}
	return nil
}

// filters are the query parameters every title listing shares.
func (s *Source) filters(e *EffectiveSettings) url.Values {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageSize))
	query.Add("includes[]", "cover_art")
	for _, rating := range e.Ratings {
		query.Add("contentRating[]", rating)
	}
	for _, language := range e.Languages {
		query.Add("availableTranslatedLanguage[]", language)
	}
	return query
}

func (s *Source) MangaDetails(ctx context.Context, mangaID string) (*source.Title, error) {
	if err := validateID("Manga ID", mangaID); err != nil {
		return nil, err
	}

	quality, err := GetMangaThumbnail(s.settings)
	if err != nil {
		return nil, err
	}

	query := url.Values{"includes[]": {"author", "artist", "cover_art"}}

	var response entity[mangaData]
	if err := s.get(ctx, "/manga/"+mangaID, query, &response); err != nil {
		return nil, err
	}

	return ParseManga(&response.Data, quality)
}

func (s *Source) Chapters(ctx context.Context, mangaID string) ([]*source.Chapter, error) {
	if err := validateID("Manga ID", mangaID); err != nil {
		return nil, err
	}

	e, err := Resolve(s.settings)
	if err != nil {
		return nil, err
	}

	var feed []chapterData
	for offset := 0; offset < maxOffset; {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(feedSize))
		query.Set("offset", strconv.Itoa(offset))
		query.Set("order[volume]", "desc")
		query.Set("order[chapter]", "desc")
		query.Add("includes[]", "scanlation_group")
		query.Add("contentRating[]", "safe")
		query.Add("contentRating[]", "suggestive")
		query.Add("contentRating[]", "erotica")
		query.Add("contentRating[]", "pornographic")
		for _, language := range e.Languages {
			query.Add("translatedLanguage[]", language)
		}

		var page collection[chapterData]
		if err := s.get(ctx, "/manga/"+mangaID+"/feed", query, &page); err != nil {
			return nil, err
		}
		feed = append(feed, page.Data...)

		next, ok := page.next()
		if !ok {
			break
		}
		offset = next
	}

	return ParseChapters(feed, mangaID, e.SkipSameChapter), nil
}

// ChapterDetails also records mangaID for recommendations.
func (s *Source) ChapterDetails(ctx context.Context, mangaID, chapterID string) (*source.ChapterDetails, error) {
	if err := validateID("Chapter ID", chapterID); err != nil {
		return nil, err
	}

	dataSaver, err := GetDataSaver(s.settings)
	if err != nil {
		return nil, err
	}

	var server atHome
	if err := s.get(ctx, "/at-home/server/"+chapterID, nil, &server); err != nil {
		return nil, err
	}

	details, err := ParseAtHome(&server, mangaID, chapterID, dataSaver)
	if err != nil {
		return nil, err
	}

	if validateID("Manga ID", mangaID) == nil {
		if err := AddRecommendedID(s.settings, mangaID); err != nil {
			log.Warnf("mangadex: record recommendation: %v", err)
		}
	}

	return details, nil
}

func (s *Source) Search(ctx context.Context, request source.SearchRequest, metadata *source.Metadata) (*source.PagedResults, error) {
	if metadata.Stopped() {
		return source.Stop(), nil
	}

	e, err := Resolve(s.settings)
	if err != nil {
		return nil, err
	}

	query := s.filters(e)
	if request.Title != "" {
		query.Set("title", request.Title)
		query.Set("order[relevance]", "desc")
	}
	for _, tag := range request.IncludedTags {
		query.Add("includedTags[]", tag)
	}

	return s.list(ctx, query, metadata, e.SearchThumbnail)
}

// list fetches one page of /manga starting at metadata's offset.
func (s *Source) list(ctx context.Context, query url.Values, metadata *source.Metadata, quality string) (*source.PagedResults, error) {
	offset := 0
	if metadata != nil {
		offset = metadata.Offset
	}
	query.Set("offset", strconv.Itoa(offset))

	var page collection[mangaData]
	if err := s.get(ctx, "/manga", query, &page); err != nil {
		return nil, err
	}

	next, more := page.next()
	return &source.PagedResults{
		Results: ParseMangaList(page.Data, quality),
		Metadata: &source.Metadata{
			Page:       metadata.PageOrFirst() + 1,
			Offset:     next,
			StopSearch: !more || next >= maxOffset,
		},
	}, nil
}

// orders maps a home section to the listing order it is built from.
var orders = map[string]string{
	SectionLatestUpdates: "order[latestUploadedChapter]",
	SectionPopular:       "order[followedCount]",
	SectionRecentlyAdded: "order[createdAt]",
}

func (s *Source) HomeSections(ctx context.Context, announce func(*source.HomeSection)) error {
	e, err := Resolve(s.settings)
	if err != nil {
		return err
	}

	sections := lo.FilterMap(HomepageSections.Codes(), func(code string, _ int) (*source.HomeSection, bool) {
		return &source.HomeSection{ID: code, Title: HomepageSections.Name(code), ViewMore: true}, lo.Contains(e.EnabledHomeSections, code)
	})

	for _, section := range sections {
		announce(section)
	}

	var errs []error
	for _, section := range sections {
		query := s.filters(e)
		query.Set("limit", strconv.Itoa(homeSize))
		query.Set(orders[section.ID], "desc")

		page, err := s.list(ctx, query, nil, e.HomepageThumbnail)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", section.ID, err))
			continue
		}

		section.Items = page.Results
		announce(section)
	}

	if e.RecommendationsEnabled {
		errs = append(errs, s.recommendations(ctx, e, announce))
	}

	return errors.Join(errs...)
}

// recommendations announces a "Similar to" section per recommended title.
func (s *Source) recommendations(ctx context.Context, e *EffectiveSettings, announce func(*source.HomeSection)) error {
	ids, err := GetRecommendedIDs(s.settings)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range lo.Slice(ids, 0, e.RecommendationCount) {
		title, err := s.MangaDetails(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("recommendation %s: %w", id, err))
			continue
		}

		section := &source.HomeSection{
			ID:       similarPrefix + id,
			Title:    "Similar to " + title.Name(),
			ViewMore: true,
		}
		announce(section)

		query := s.filters(e)
		query.Set("limit", strconv.Itoa(homeSize))
		for _, tag := range genreTags(title) {
			query.Add("includedTags[]", tag)
		}

		page, err := s.list(ctx, query, nil, e.HomepageThumbnail)
		if err != nil {
			errs = append(errs, fmt.Errorf("recommendation %s: %w", id, err))
			continue
		}

		section.Items = lo.Filter(page.Results, func(t *source.Title, _ int) bool { return t.ID != id })
		announce(section)
	}

	return errors.Join(errs...)
}

func genreTags(title *source.Title) []string {
	for _, section := range title.Tags {
		if section.ID == "genre" {
			return lo.Map(section.Tags, func(t source.Tag, _ int) string { return t.ID })
		}
	}
	return []string{}
}

func (s *Source) ViewMore(ctx context.Context, sectionID string, metadata *source.Metadata) (*source.PagedResults, error) {
	if metadata.Stopped() {
		return source.Stop(), nil
	}

	e, err := Resolve(s.settings)
	if err != nil {
		return nil, err
	}

	query := s.filters(e)

	if id, ok := strings.CutPrefix(sectionID, similarPrefix); ok {
		title, err := s.MangaDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, tag := range genreTags(title) {
			query.Add("includedTags[]", tag)
		}
		return s.list(ctx, query, metadata, e.HomepageThumbnail)
	}

	order, ok := orders[sectionID]
	if !ok {
		return nil, &source.ValidationError{Field: "Section", Reason: fmt.Sprintf("%q does not exist", sectionID)}
	}
	query.Set(order, "desc")

	return s.list(ctx, query, metadata, e.HomepageThumbnail)
}

// UpdatedSince returns the ids among mangaIDs with chapters published after since,
// moved back by days_to_look_back days.
func (s *Source) UpdatedSince(ctx context.Context, mangaIDs []string, since time.Time) ([]string, error) {
	e, err := Resolve(s.settings)
	if err != nil {
		return nil, err
	}

	days := util.Min(e.DaysToLookBack, maxLookBackDays)
	since = since.Add(-time.Duration(days * float64(24*time.Hour)))
	wanted := lo.SliceToMap(mangaIDs, func(id string) (string, struct{}) { return id, struct{}{} })
	updated := make(map[string]struct{})

	for offset := 0; offset < maxOffset; {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		query.Set("offset", strconv.Itoa(offset))
		query.Set("publishAtSince", since.UTC().Format("2006-01-02T15:04:05"))
		query.Set("order[publishAt]", "desc")
		for _, language := range e.Languages {
			query.Add("translatedLanguage[]", language)
		}

		var page collection[chapterData]
		if err := s.get(ctx, "/chapter", query, &page); err != nil {
			return nil, err
		}

		for _, chapter := range page.Data {
			for _, r := range chapter.Relationships {
				if _, ok := wanted[r.ID]; ok && r.Type == "manga" {
					updated[r.ID] = struct{}{}
				}
			}
		}

		next, ok := page.next()
		if !ok {
			break
		}
		offset = next
	}

	return lo.Filter(mangaIDs, func(id string, _ int) bool {
		_, ok := updated[id]
		return ok
	}), nil
}
