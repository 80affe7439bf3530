// Package source defines the canonical records every content source produces and the interface it implements.
package source

import "time"

// Status of a title's publication.
type Status string

const (
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
	StatusHiatus    Status = "Hiatus"
	StatusCancelled Status = "Cancelled"
	StatusUnknown   Status = "Unknown"
)

// Tag is a single label a title is filed under.
type Tag struct {
	ID    string `json:"id" jsonschema:"description=Source-specific tag identifier."`
	Label string `json:"label"`
}

// TagSection groups tags of one kind, e.g. "Genres" or "Characters".
type TagSection struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Tags  []Tag  `json:"tags"`
}

// Title is the canonical manga record.
// Optional upstream fields are filled with empty values, never left nil.
type Title struct {
	ID          string       `json:"id"`
	Titles      []string     `json:"titles" jsonschema:"description=Primary title first, alternatives after."`
	Image       string       `json:"image" jsonschema:"description=Cover image URL."`
	Author      string       `json:"author"`
	Artist      string       `json:"artist"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	Rating      float64      `json:"rating"`
	Hentai      bool         `json:"hentai"`
	Tags        []TagSection `json:"tags"`
	LastUpdate  time.Time    `json:"lastUpdate"`
}

// Name returns the primary title.
func (t *Title) Name() string {
	if len(t.Titles) == 0 {
		return ""
	}
	return t.Titles[0]
}

func (t *Title) String() string {
	return t.Name()
}

// Chapter is the canonical chapter record.
type Chapter struct {
	ID       string    `json:"id"`
	MangaID  string    `json:"mangaId"`
	Name     string    `json:"name"`
	Number   float64   `json:"number"`
	Volume   float64   `json:"volume" jsonschema:"description=Zero when the chapter has no volume."`
	Language string    `json:"language"`
	Group    string    `json:"group"`
	Time     time.Time `json:"time"`
}

func (c *Chapter) String() string {
	return c.Name
}

// ChapterDetails lists the page images of one chapter in reading order.
type ChapterDetails struct {
	ID      string   `json:"id"`
	MangaID string   `json:"mangaId"`
	Pages   []string `json:"pages"`
}
