package trips

import (
	"sort"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// SortDirection mirrors the feed's three-state sort toggle.
type SortDirection string

const (
	SortNone       SortDirection = "none"
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

func ParseSortDirection(raw string) (SortDirection, bool) {
	switch SortDirection(raw) {
	case SortAscending, SortDescending:
		return SortDirection(raw), true
	case SortNone, "":
		return SortNone, true
	}
	return SortNone, false
}

// SortByBudget orders trips by budget tier, Bajo < Medio < Alto ascending,
// reversed for descending. The sort is stable: equal tiers keep their
// original relative (insertion) order. SortNone returns the input order.
func SortByBudget(trips []types.Trip, direction SortDirection) []types.Trip {
	sorted := make([]types.Trip, len(trips))
	copy(sorted, trips)
	if direction == SortNone {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].BudgetTier.Rank(), sorted[j].BudgetTier.Rank()
		if direction == SortAscending {
			return a < b
		}
		return a > b
	})
	return sorted
}

// FilterByBudget keeps only trips of the given tier. An empty tier keeps
// everything (the map view's "Todos" filter).
func FilterByBudget(trips []types.Trip, tier types.BudgetTier) []types.Trip {
	if tier == "" {
		out := make([]types.Trip, len(trips))
		copy(out, trips)
		return out
	}
	out := make([]types.Trip, 0, len(trips))
	for _, trip := range trips {
		if trip.BudgetTier == tier {
			out = append(out, trip)
		}
	}
	return out
}
