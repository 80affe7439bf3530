package source

// SearchRequest is what the user asked a source to look for.
type SearchRequest struct {
	Title string `json:"title"`
	// IncludedTags are source-specific tag identifiers.
	IncludedTags []string `json:"includedTags,omitempty"`
}

// Metadata carries pagination state between calls.
type Metadata struct {
	Page       int  `json:"page"`
	Offset     int  `json:"offset,omitempty"`
	StopSearch bool `json:"stopSearch,omitempty"`
}

// PageOrFirst returns the page number, treating nil and zero as the first page.
func (m *Metadata) PageOrFirst() int {
	if m == nil || m.Page < 1 {
		return 1
	}
	return m.Page
}

// Stopped reports whether the caller asked to skip further pages.
func (m *Metadata) Stopped() bool {
	return m != nil && m.StopSearch
}

// PagedResults is one page of search or view-more results.
type PagedResults struct {
	Results  []*Title  `json:"results"`
	Metadata *Metadata `json:"metadata"`
}

// Stop returns the empty page a stopped search resolves to.
func Stop() *PagedResults {
	return &PagedResults{
		Results:  []*Title{},
		Metadata: &Metadata{StopSearch: true},
	}
}

// HomeSection is a titled row on the home page.
type HomeSection struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Items    []*Title `json:"items"`
	ViewMore bool     `json:"viewMore"`
}

// Loaded reports whether items have been fetched for the section.
func (h *HomeSection) Loaded() bool {
	return h.Items != nil
}
