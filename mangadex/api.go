package mangadex

import (
	"encoding/json"
	"time"
)

// localized is a MangaDex string keyed by language code.
type localized map[string]string

type relationship struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

type relationshipAttributes struct {
	Name     string `json:"name"`
	FileName string `json:"fileName"`
}

type tagData struct {
	ID         string `json:"id"`
	Attributes struct {
		Name  localized `json:"name"`
		Group string    `json:"group"`
	} `json:"attributes"`
}

type mangaData struct {
	ID         string `json:"id"`
	Attributes struct {
		Title         localized   `json:"title"`
		AltTitles     []localized `json:"altTitles"`
		Description   localized   `json:"description"`
		Status        string      `json:"status"`
		ContentRating string      `json:"contentRating"`
		Tags          []tagData   `json:"tags"`
		UpdatedAt     time.Time   `json:"updatedAt"`
	} `json:"attributes"`
	Relationships []relationship `json:"relationships"`
}

type chapterData struct {
	ID         string `json:"id"`
	Attributes struct {
		Volume             *string   `json:"volume"`
		Chapter            *string   `json:"chapter"`
		Title              *string   `json:"title"`
		TranslatedLanguage string    `json:"translatedLanguage"`
		ExternalURL        *string   `json:"externalUrl"`
		PublishAt          time.Time `json:"publishAt"`
	} `json:"attributes"`
	Relationships []relationship `json:"relationships"`
}

// envelope is the common part of every api.mangadex.org response.
type envelope struct {
	Result string `json:"result"`
}

type entity[T any] struct {
	envelope
	Data T `json:"data"`
}

type collection[T any] struct {
	envelope
	Data   []T `json:"data"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// next returns the offset of the following page, or false on the last one.
func (c *collection[T]) next() (int, bool) {
	offset := c.Offset + c.Limit
	return offset, c.Limit > 0 && offset < c.Total
}

type atHome struct {
	envelope
	BaseURL string `json:"baseUrl"`
	Chapter struct {
		Hash      string   `json:"hash"`
		Data      []string `json:"data"`
		DataSaver []string `json:"dataSaver"`
	} `json:"chapter"`
}
