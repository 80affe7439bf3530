package mangadex

import (
	"github.com/samber/lo"

	"github.com/papersrc/papersrc/store"
	"github.com/papersrc/papersrc/util"
)

// GetRecommendedIDs returns the ids recommendations are based on, newest first.
func GetRecommendedIDs(s store.Store) ([]string, error) {
	return store.GetOr(s, KeyRecommendedIDs, []string{})
}

// SliceRecommendedIDs keeps at most amount recommended ids, dropping the oldest.
func SliceRecommendedIDs(s store.Store, amount int) error {
	ids, err := GetRecommendedIDs(s)
	if err != nil {
		return err
	}
	if len(ids) <= amount {
		return nil
	}
	return s.Store(KeyRecommendedIDs, ids[:util.Max(amount, 0)])
}

// AddRecommendedID moves id to the front of the recommended ids.
// Nothing is recorded while recommendations are disabled.
func AddRecommendedID(s store.Store, id string) error {
	enabled, err := GetEnabledRecommendations(s)
	if err != nil || !enabled {
		return err
	}

	amount, err := GetAmountRecommendations(s)
	if err != nil {
		return err
	}

	ids, err := GetRecommendedIDs(s)
	if err != nil {
		return err
	}

	ids = append([]string{id}, lo.Without(ids, id)...)
	if len(ids) > amount {
		ids = ids[:amount]
	}
	return s.Store(KeyRecommendedIDs, ids)
}
