package nhentai

import (
	"strings"

	"github.com/samber/lo"
)

type option struct {
	code      string
	name      string
	shortcuts []string
}

type catalog []option

func (c catalog) Codes() []string {
	return lo.Map(c, func(o option, _ int) string { return o.code })
}

func (c catalog) Name(code string) string {
	if o, ok := lo.Find(c, func(o option) bool { return o.code == code }); ok {
		return o.name
	}
	return code
}

func (c catalog) Has(code string) bool {
	return lo.ContainsBy(c, func(o option) bool { return o.code == code })
}

// Languages a search can be restricted to. The empty code matches every language.
var Languages = catalog{
	{code: "", name: "Include All"},
	{code: "english", name: "English"},
	{code: "japanese", name: "Japanese"},
	{code: "chinese", name: "Chinese"},
}

// languageCodes maps gallery language tags to ISO codes.
var languageCodes = map[string]string{
	"english":  "en",
	"japanese": "ja",
	"chinese":  "zh",
}

func languageCode(tag string) string {
	if code, ok := languageCodes[tag]; ok {
		return code
	}
	return "ja"
}

// Sort orders, which double as home section ids.
const (
	SortRecent       = "date"
	SortPopularToday = "popular-today"
	SortPopularWeek  = "popular-week"
	SortPopular      = "popular"
)

// SortOrders can be picked in settings or typed into a search as s:<x> or sort:<x>.
var SortOrders = catalog{
	{code: SortRecent, name: "Recent", shortcuts: []string{"s:recent", "sort:recent"}},
	{code: SortPopularToday, name: "Popular Today", shortcuts: []string{"s:today", "sort:today"}},
	{code: SortPopularWeek, name: "Popular Week", shortcuts: []string{"s:week", "sort:week"}},
	{code: SortPopular, name: "Popular All-time", shortcuts: []string{"s:popular", "sort:popular"}},
}

// DefaultSortOrder is used when none is stored.
const DefaultSortOrder = SortRecent

// ExtractSortShortcut finds the first whitespace separated token naming a sort order.
// It returns the order and text with that token removed.
func ExtractSortShortcut(text string) (order, rest string, ok bool) {
	offset := 0
	for _, token := range strings.Fields(text) {
		// only whitespace separates offset from the token
		start := offset + strings.Index(text[offset:], token)
		offset = start + len(token)

		shortcut := strings.ToLower(token)
		for _, o := range SortOrders {
			if lo.Contains(o.shortcuts, shortcut) {
				return o.code, text[:start] + text[offset:], true
			}
		}
	}
	return "", text, false
}
