package results

import (
	"math"
	"sort"
	"strings"

	"github.com/xw1nchester/dealscan-backend/internal/scan"
)

// sortKey extracts the primary key of an ordering. Records without a comparable
// value get a sentinel that places them at the end in that ordering's direction.
type sortKey func(r scan.Result) float64

var keys = map[scan.SortBy]struct {
	key        sortKey
	descending bool
}{
	scan.SortDiscountPercent: {
		key: func(r scan.Result) float64 {
			p, ok := r.Discount()
			if !ok {
				return 0
			}
			return float64(p)
		},
		descending: true,
	},
	scan.SortDiscountAmount: {
		key: func(r scan.Result) float64 {
			m, ok := r.DollarsOff()
			if !ok {
				return 0
			}
			return float64(m)
		},
		descending: true,
	},
	scan.SortPriceLow: {
		key: func(r scan.Result) float64 {
			m, ok := r.Clearance()
			if !ok {
				return math.Inf(1)
			}
			return float64(m)
		},
	},
	scan.SortPriceHigh: {
		key: func(r scan.Result) float64 {
			m, ok := r.Original()
			if !ok {
				return math.Inf(-1)
			}
			return float64(m)
		},
		descending: true,
	},
}

// Sort orders items in place. Ties fall back to the product name (case-insensitive),
// then the exact name, then the id, so the order is total.
func Sort(items []scan.Result, sortBy scan.SortBy) {
	sortBy = sortBy.Canonical()

	if sortBy == scan.SortName {
		sort.SliceStable(items, func(i, j int) bool {
			return lessByName(items[i], items[j])
		})
		return
	}

	k := keys[sortBy]

	type keyed struct {
		value  float64
		result scan.Result
	}

	ranked := make([]keyed, len(items))
	for i, r := range items {
		ranked[i] = keyed{value: k.key(r), result: r}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].value, ranked[j].value
		if a != b {
			if k.descending {
				return a > b
			}
			return a < b
		}
		return lessByName(ranked[i].result, ranked[j].result)
	})

	for i := range ranked {
		items[i] = ranked[i].result
	}
}

func lessByName(a, b scan.Result) bool {
	la, lb := strings.ToLower(a.ProductName), strings.ToLower(b.ProductName)
	if la != lb {
		return la < lb
	}
	if a.ProductName != b.ProductName {
		return a.ProductName < b.ProductName
	}
	return a.ID.String() < b.ID.String()
}
