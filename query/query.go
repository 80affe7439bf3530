// Package query remembers the searches made against each source and suggests them back.
package query

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/filesystem"
	"github.com/papersrc/papersrc/key"
	"github.com/papersrc/papersrc/where"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

// history maps a source id to its remembered queries.
type history = map[string]map[string]*record

var (
	mu     sync.Mutex
	cacher *gache.Cache[history]
)

// cache opens the history file on first use. Callers hold mu.
func cache() *gache.Cache[history] {
	if cacher == nil {
		cacher = gache.New[history](&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		})
	}
	return cacher
}

func load() history {
	cached, expired, err := cache().Get()
	if expired || err != nil || cached == nil {
		return make(history)
	}
	return cached
}

// Remember records a query made against sourceID, raising its rank by weight.
func Remember(sourceID, q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached := load()
	records, ok := cached[sourceID]
	if !ok {
		records = make(map[string]*record)
		cached[sourceID] = records
	}

	if r, ok := records[q]; ok {
		r.Rank += weight
	} else {
		records[q] = &record{Rank: weight, Query: q}
	}

	return cache().Set(cached)
}

// Suggest returns the best remembered query matching q.
func Suggest(sourceID, q string) mo.Option[string] {
	suggestions := SuggestMany(sourceID, q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered queries fuzzily matching q, highest rank first.
func SuggestMany(sourceID, q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	records := lo.Filter(lo.Values(load()[sourceID]), func(r *record, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})
	mu.Unlock()

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Rank == records[j].Rank {
			return records[i].Query < records[j].Query
		}
		return records[i].Rank > records[j].Rank
	})

	return lo.Map(records, func(r *record, _ int) string {
		return r.Query
	})
}

// Forget drops the remembered queries of sourceID.
func Forget(sourceID string) error {
	mu.Lock()
	defer mu.Unlock()

	cached := load()
	delete(cached, sourceID)
	return cache().Set(cached)
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
