package mangadex

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/papersrc/papersrc/log"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/util"
)

const coversURL = "https://uploads.mangadex.org/covers"

// validateID rejects anything that is not a MangaDex UUID before a request is made.
func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &source.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a valid id", id)}
	}
	return nil
}

// pick returns the English value, falling back to the alphabetically first language.
func (l localized) pick() string {
	if v, ok := l["en"]; ok && v != "" {
		return v
	}

	languages := lo.Keys(l)
	sort.Strings(languages)
	for _, language := range languages {
		if l[language] != "" {
			return l[language]
		}
	}
	return ""
}

func related(relationships []relationship, kind string) []relationshipAttributes {
	return lo.FilterMap(relationships, func(r relationship, _ int) (relationshipAttributes, bool) {
		if r.Type != kind || len(r.Attributes) == 0 {
			return relationshipAttributes{}, false
		}

		var attributes relationshipAttributes
		if err := json.Unmarshal(r.Attributes, &attributes); err != nil {
			return relationshipAttributes{}, false
		}
		return attributes, true
	})
}

func names(attributes []relationshipAttributes) string {
	return strings.Join(lo.Uniq(lo.FilterMap(attributes, func(a relationshipAttributes, _ int) (string, bool) {
		return a.Name, a.Name != ""
	})), ", ")
}

// CoverURL builds the uploads URL of a cover in the given quality.
func CoverURL(mangaID, fileName, quality string) string {
	return fmt.Sprintf("%s/%s/%s%s", coversURL, mangaID, fileName, imageEnding(quality))
}

func parseStatus(status string) source.Status {
	switch status {
	case "ongoing":
		return source.StatusOngoing
	case "completed":
		return source.StatusCompleted
	case "hiatus":
		return source.StatusHiatus
	case "cancelled":
		return source.StatusCancelled
	default:
		return source.StatusUnknown
	}
}

func parseTags(tags []tagData) []source.TagSection {
	groups := lo.GroupBy(tags, func(t tagData) string { return t.Attributes.Group })

	keys := lo.Keys(groups)
	sort.Strings(keys)

	return lo.Map(keys, func(group string, _ int) source.TagSection {
		return source.TagSection{
			ID:    group,
			Label: util.Capitalize(group),
			Tags: lo.Map(groups[group], func(t tagData, _ int) source.Tag {
				return source.Tag{ID: t.ID, Label: t.Attributes.Name.pick()}
			}),
		}
	})
}

// ParseManga maps a manga entity to a Title with a cover in the given quality.
func ParseManga(data *mangaData, quality string) (*source.Title, error) {
	if data.ID == "" {
		return nil, &source.MalformedResponseError{What: "manga without id"}
	}

	attributes := data.Attributes

	titles := []string{attributes.Title.pick()}
	for _, alt := range attributes.AltTitles {
		titles = append(titles, alt.pick())
	}
	titles = lo.Uniq(lo.Compact(titles))

	var image string
	if covers := related(data.Relationships, "cover_art"); len(covers) > 0 && covers[0].FileName != "" {
		image = CoverURL(data.ID, covers[0].FileName, quality)
	}

	return &source.Title{
		ID:          data.ID,
		Titles:      titles,
		Image:       image,
		Author:      names(related(data.Relationships, "author")),
		Artist:      names(related(data.Relationships, "artist")),
		Description: attributes.Description.pick(),
		Status:      parseStatus(attributes.Status),
		Hentai:      attributes.ContentRating == "pornographic",
		Tags:        parseTags(attributes.Tags),
		LastUpdate:  attributes.UpdatedAt,
	}, nil
}

// ParseMangaList maps a page of manga. Entities without a valid id are logged and skipped
// so one bad entry does not fail the whole page.
func ParseMangaList(list []mangaData, quality string) []*source.Title {
	return lo.FilterMap(list, func(data mangaData, i int) (*source.Title, bool) {
		title, err := ParseManga(&data, quality)
		if err != nil {
			log.WithFields(log.Fields{"source": ID, "index": i, "id": data.ID}).Warnf("mangadex: drop listed manga: %v", err)
			return nil, false
		}
		return title, true
	})
}

func parseFloat(s *string) float64 {
	if s == nil {
		return 0
	}
	n, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseChapters maps a chapter feed. Chapters hosted externally are dropped.
// With skipSame only the first chapter of every (volume, chapter) pair is kept.
func ParseChapters(feed []chapterData, mangaID string, skipSame bool) []*source.Chapter {
	seen := make(map[string]struct{})
	chapters := make([]*source.Chapter, 0, len(feed))

	for _, data := range feed {
		attributes := data.Attributes
		if attributes.ExternalURL != nil {
			continue
		}

		if skipSame {
			key := lo.FromPtr(attributes.Volume) + "/" + lo.FromPtr(attributes.Chapter)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}

		chapters = append(chapters, &source.Chapter{
			ID:       data.ID,
			MangaID:  mangaID,
			Name:     lo.FromPtr(attributes.Title),
			Number:   parseFloat(attributes.Chapter),
			Volume:   parseFloat(attributes.Volume),
			Language: attributes.TranslatedLanguage,
			Group:    names(related(data.Relationships, "scanlation_group")),
			Time:     attributes.PublishAt,
		})
	}

	return chapters
}

// ParseAtHome maps an at-home server response to page URLs.
func ParseAtHome(server *atHome, mangaID, chapterID string, dataSaver bool) (*source.ChapterDetails, error) {
	if server.BaseURL == "" || server.Chapter.Hash == "" {
		return nil, &source.MalformedResponseError{What: "at-home server without baseUrl or hash"}
	}

	mode, files := "data", server.Chapter.Data
	if dataSaver {
		mode, files = "data-saver", server.Chapter.DataSaver
	}

	return &source.ChapterDetails{
		ID:      chapterID,
		MangaID: mangaID,
		Pages: lo.Map(files, func(file string, _ int) string {
			return fmt.Sprintf("%s/%s/%s/%s", server.BaseURL, mode, server.Chapter.Hash, file)
		}),
	}, nil
}
