package nhentai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexibleID accepts both the numeric and the string form the API uses for ids.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither a number nor a string: %s", data)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("id is not an integer: %s", n)
	}
	*f = flexibleID(n.String())
	return nil
}

type image struct {
	Type   string `json:"t"`
	Width  int    `json:"w"`
	Height int    `json:"h"`
}

type tag struct {
	ID   flexibleID `json:"id"`
	Type string     `json:"type"`
	Name string     `json:"name"`
}

type gallery struct {
	ID      flexibleID `json:"id"`
	MediaID flexibleID `json:"media_id"`
	Title   struct {
		English  string `json:"english"`
		Japanese string `json:"japanese"`
		Pretty   string `json:"pretty"`
	} `json:"title"`
	Images struct {
		Pages     []image `json:"pages"`
		Cover     image   `json:"cover"`
		Thumbnail image   `json:"thumbnail"`
	} `json:"images"`
	Scanlator    string `json:"scanlator"`
	UploadDate   int64  `json:"upload_date"`
	Tags         []tag  `json:"tags"`
	NumPages     int    `json:"num_pages"`
	NumFavorites int    `json:"num_favorites"`
}

type searchResult struct {
	Result   []gallery `json:"result"`
	NumPages int       `json:"num_pages"`
	PerPage  int       `json:"per_page"`
}
