package service

import (
	"sort"

	"github.com/yourusername/paddock-picks/internal/models"
)

// RecommendedSorted returns the S and A cards ordered for the shortlist: S before A,
// then higher place low first (Missing sorts as -1), then race label ascending.
// The input slice is not modified.
func RecommendedSorted(cards []models.PickCard) []models.PickCard {
	out := make([]models.PickCard, 0, len(cards))
	for _, c := range cards {
		if c.Rank.IsRecommended() {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Rank.Order() != b.Rank.Order() {
			return a.Rank.Order() < b.Rank.Order()
		}
		la, lb := a.PlaceLow.SortValue(), b.PlaceLow.SortValue()
		if !la.Equal(lb) {
			return la.GreaterThan(lb)
		}
		return a.RaceLabel() < b.RaceLabel()
	})
	return out
}
