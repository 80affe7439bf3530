package source

import (
	"context"

	"github.com/papersrc/papersrc/network"
)

// Source is a single content site adapted to the canonical model.
type Source interface {
	// Name is the display name.
	Name() string

	// ID is the stable identifier used for settings storage and CLI arguments.
	ID() string

	MangaDetails(ctx context.Context, mangaID string) (*Title, error)
	Chapters(ctx context.Context, mangaID string) ([]*Chapter, error)
	ChapterDetails(ctx context.Context, mangaID, chapterID string) (*ChapterDetails, error)

	// Search returns one page of results. A nil metadata means the first page.
	Search(ctx context.Context, query SearchRequest, metadata *Metadata) (*PagedResults, error)

	// HomeSections reports every section to announce twice:
	// first empty, then again once its items are loaded.
	HomeSections(ctx context.Context, announce func(*HomeSection)) error

	ViewMore(ctx context.Context, sectionID string, metadata *Metadata) (*PagedResults, error)

	// ShareURL is the public web page of a title.
	ShareURL(mangaID string) string
}

// Challenged is implemented by sources behind anti-bot protection.
type Challenged interface {
	// BypassRequest is the request an operator replays out of band to clear the challenge.
	BypassRequest() *network.Request
}
