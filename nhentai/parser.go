package nhentai

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/util"
)

const (
	thumbnailsURL = "https://t.nhentai.net/galleries"
	imagesURL     = "https://i.nhentai.net/galleries"
)

// tagTypes lists the tag sections of a title in display order.
var tagTypes = []string{"category", "parody", "character", "tag", "artist", "group", "language"}

func extension(t string) string {
	switch t {
	case "p":
		return "png"
	case "g":
		return "gif"
	case "w":
		return "webp"
	default:
		return "jpg"
	}
}

func (g *gallery) validate() error {
	if g.ID == "" {
		return &source.MalformedResponseError{What: "gallery without id"}
	}
	if g.MediaID == "" {
		return &source.MalformedResponseError{What: fmt.Sprintf("gallery %s without media_id", g.ID)}
	}
	return nil
}

func (g *gallery) titles() []string {
	return lo.Uniq(lo.Compact([]string{g.Title.Pretty, g.Title.English, g.Title.Japanese}))
}

func (g *gallery) tagNames(kind string) []string {
	return lo.FilterMap(g.Tags, func(t tag, _ int) (string, bool) {
		return t.Name, t.Type == kind
	})
}

func (g *gallery) cover() string {
	return fmt.Sprintf("%s/%s/cover.%s", thumbnailsURL, g.MediaID, extension(g.Images.Cover.Type))
}

func (g *gallery) thumbnail() string {
	return fmt.Sprintf("%s/%s/thumb.%s", thumbnailsURL, g.MediaID, extension(g.Images.Thumbnail.Type))
}

func (g *gallery) uploaded() time.Time {
	if g.UploadDate == 0 {
		return time.Time{}
	}
	return time.Unix(g.UploadDate, 0).UTC()
}

// ParseGallery maps a gallery to a Title.
func ParseGallery(g *gallery) (*source.Title, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	artist := strings.Join(g.tagNames("artist"), ", ")
	if artist == "" {
		artist = "Unknown"
	}

	sections := lo.FilterMap(tagTypes, func(kind string, _ int) (source.TagSection, bool) {
		tags := lo.FilterMap(g.Tags, func(t tag, _ int) (source.Tag, bool) {
			return source.Tag{ID: string(t.ID), Label: util.Capitalize(t.Name)}, t.Type == kind
		})
		return source.TagSection{ID: kind, Label: util.Capitalize(kind), Tags: tags}, len(tags) > 0
	})

	return &source.Title{
		ID:          string(g.ID),
		Titles:      g.titles(),
		Image:       g.cover(),
		Author:      artist,
		Artist:      artist,
		Description: fmt.Sprintf("%s, %s", util.Quantify(g.NumPages, "page", "pages"), util.Quantify(g.NumFavorites, "favorite", "favorites")),
		Status:      source.StatusCompleted,
		Hentai:      true,
		Tags:        sections,
		LastUpdate:  g.uploaded(),
	}, nil
}

// ParseGalleryIntoChapter maps a gallery to its single chapter.
func ParseGalleryIntoChapter(g *gallery, mangaID string) (*source.Chapter, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	language, _ := lo.Find(g.tagNames("language"), func(name string) bool { return name != "translated" })

	group := g.Scanlator
	if group == "" {
		group = strings.Join(g.tagNames("group"), ", ")
	}

	return &source.Chapter{
		ID:       string(g.ID),
		MangaID:  mangaID,
		Name:     g.Title.Pretty,
		Number:   1,
		Language: languageCode(language),
		Group:    group,
		Time:     g.uploaded(),
	}, nil
}

// ParseChapterDetails lists the page images of a gallery.
func ParseChapterDetails(g *gallery, mangaID string) (*source.ChapterDetails, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	return &source.ChapterDetails{
		ID:      string(g.ID),
		MangaID: mangaID,
		Pages: lo.Map(g.Images.Pages, func(page image, i int) string {
			return fmt.Sprintf("%s/%s/%d.%s", imagesURL, g.MediaID, i+1, extension(page.Type))
		}),
	}, nil
}

// ParseSearch maps search results to titles carrying thumbnails.
// A malformed gallery fails the whole page.
func ParseSearch(result *searchResult) ([]*source.Title, error) {
	titles := make([]*source.Title, 0, len(result.Result))
	for i := range result.Result {
		g := &result.Result[i]
		if err := g.validate(); err != nil {
			return nil, err
		}

		titles = append(titles, &source.Title{
			ID:     string(g.ID),
			Titles: g.titles(),
			Image:  g.thumbnail(),
			Status: source.StatusCompleted,
			Hentai: true,
			Tags:   []source.TagSection{},
		})
	}
	return titles, nil
}
