package mangadex

import "github.com/samber/lo"

type option struct {
	code    string
	name    string
	ending  string
	context []string
}

type catalog []option

// Codes lists the option codes in display order.
func (c catalog) Codes() []string {
	return lo.Map(c, func(o option, _ int) string { return o.code })
}

// Name returns the display name of code, or code itself when unknown.
func (c catalog) Name(code string) string {
	if o, ok := lo.Find(c, func(o option) bool { return o.code == code }); ok {
		return o.name
	}
	return code
}

// Has reports whether code is part of the catalog.
func (c catalog) Has(code string) bool {
	return lo.ContainsBy(c, func(o option) bool { return o.code == code })
}

// Languages supported by the content settings, keyed by MangaDex language code.
var Languages = catalog{
	{code: "en", name: "English"},
	{code: "ja", name: "Japanese"},
	{code: "ja-ro", name: "Japanese (Romanized)"},
	{code: "ko", name: "Korean"},
	{code: "zh", name: "Chinese (Simplified)"},
	{code: "zh-hk", name: "Chinese (Traditional)"},
	{code: "es", name: "Spanish"},
	{code: "es-la", name: "Spanish (Latin American)"},
	{code: "fr", name: "French"},
	{code: "de", name: "German"},
	{code: "it", name: "Italian"},
	{code: "pt-br", name: "Portuguese (Brazil)"},
	{code: "pt", name: "Portuguese"},
	{code: "ru", name: "Russian"},
	{code: "pl", name: "Polish"},
	{code: "tr", name: "Turkish"},
	{code: "id", name: "Indonesian"},
	{code: "vi", name: "Vietnamese"},
	{code: "th", name: "Thai"},
	{code: "ar", name: "Arabic"},
	{code: "uk", name: "Ukrainian"},
}

// DefaultLanguages is used when no language is selected.
var DefaultLanguages = []string{"en"}

// Ratings are MangaDex content ratings.
var Ratings = catalog{
	{code: "safe", name: "Safe"},
	{code: "suggestive", name: "Suggestive"},
	{code: "erotica", name: "Erotica"},
	{code: "pornographic", name: "Pornographic"},
}

var DefaultRatings = []string{"safe", "suggestive"}

// ImageQualities are the cover sizes served by the uploads CDN.
// context names the thumbnail setting each one is the default for.
var ImageQualities = catalog{
	{code: "source", name: "Source (Original/Best)", ending: "", context: []string{"manga"}},
	{code: "512", name: "<= 512px", ending: ".512.jpg", context: []string{"search"}},
	{code: "256", name: "<= 256px", ending: ".256.jpg", context: []string{"homepage"}},
}

// DefaultImageQuality returns the default quality code for a thumbnail context.
func DefaultImageQuality(context string) string {
	if o, ok := lo.Find(ImageQualities, func(o option) bool { return lo.Contains(o.context, context) }); ok {
		return o.code
	}
	return "source"
}

// imageEnding is the file suffix selecting a cover size.
func imageEnding(quality string) string {
	if o, ok := lo.Find(ImageQualities, func(o option) bool { return o.code == quality }); ok {
		return o.ending
	}
	return ""
}

// Home page sections, in display order.
const (
	SectionLatestUpdates = "latest_updates"
	SectionPopular       = "popular"
	SectionRecentlyAdded = "recently_added"
)

var HomepageSections = catalog{
	{code: SectionLatestUpdates, name: "Latest Updates"},
	{code: SectionPopular, name: "Popular"},
	{code: SectionRecentlyAdded, name: "Recently Added"},
}

var DefaultHomepageSections = []string{SectionLatestUpdates, SectionPopular, SectionRecentlyAdded}
