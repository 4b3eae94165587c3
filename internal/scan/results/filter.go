// Package results turns the union of per-store listings into the ranked view users
// page through. Everything here is pure and synchronous.
package results

import (
	"strings"

	"github.com/xw1nchester/dealscan-backend/internal/price"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"github.com/xw1nchester/dealscan-backend/pkg/utils"
)

// Criteria is a parsed scan.Filter. Nil thresholds are not applied.
type Criteria struct {
	ClearanceOnly      bool
	Category           string
	MinDiscountPercent *price.Percent
	MinDollarsOff      *price.Money
	MinPrice           *price.Money
	MaxPrice           *price.Money
	Search             string
	SKUs               map[string]struct{}
}

// NewCriteria parses the filter thresholds. Thresholds that do not parse are dropped,
// requests are validated before they get here.
func NewCriteria(f scan.Filter) Criteria {
	c := Criteria{
		ClearanceOnly: f.ClearanceOnly,
		Search:        strings.ToLower(strings.TrimSpace(f.Search)),
	}

	category := strings.TrimSpace(f.Category)
	if category != "" && !strings.EqualFold(category, "all") {
		c.Category = category
	}

	if p, ok := price.ParsePercent(f.MinimumDiscountPercent.String()); ok {
		c.MinDiscountPercent = &p
	}
	if m, ok := price.ParseCurrency(f.MinimumDollarsOff.String()); ok {
		c.MinDollarsOff = &m
	}
	if m, ok := price.ParseCurrency(f.MinPrice.String()); ok {
		c.MinPrice = &m
	}
	if m, ok := price.ParseCurrency(f.MaxPrice.String()); ok {
		c.MaxPrice = &m
	}

	return c
}

// ForRequest adds the SKU restriction of a specific-product scan to the request filter.
func ForRequest(r scan.Request) Criteria {
	c := NewCriteria(r.Filter)

	if r.Selection() == scan.SelectSpecific {
		c.SKUs = make(map[string]struct{}, len(r.SKUs))
		for _, sku := range utils.RemoveDuplicates(r.SKUs) {
			c.SKUs[strings.TrimSpace(sku)] = struct{}{}
		}
	}

	return c
}

// Match reports whether a result passes every predicate.
func (c Criteria) Match(r scan.Result) bool {
	if c.ClearanceOnly && !r.IsOnClearance {
		return false
	}

	if c.Category != "" && !strings.EqualFold(r.Category, c.Category) {
		return false
	}

	if c.SKUs != nil {
		if _, ok := c.SKUs[r.SKU]; !ok {
			return false
		}
	}

	if c.MinDiscountPercent != nil {
		discount, ok := r.Discount()
		if !ok || discount < *c.MinDiscountPercent {
			return false
		}
	}

	if c.MinDollarsOff != nil {
		off, ok := r.DollarsOff()
		if !ok || off < *c.MinDollarsOff {
			return false
		}
	}

	if c.MinPrice != nil || c.MaxPrice != nil {
		clearance, ok := r.Clearance()
		if !ok {
			return false
		}
		if c.MinPrice != nil && clearance < *c.MinPrice {
			return false
		}
		if c.MaxPrice != nil && clearance > *c.MaxPrice {
			return false
		}
	}

	if c.Search != "" && !matchesSearch(r, c.Search) {
		return false
	}

	return true
}

func matchesSearch(r scan.Result, needle string) bool {
	for _, field := range []string{r.ProductName, r.SKU, r.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter returns the matching results in input order. The input is not modified.
func Filter(items []scan.Result, c Criteria) []scan.Result {
	filtered := make([]scan.Result, 0, len(items))
	for _, r := range items {
		if c.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Dedupe keeps the first listing of every (sku, store) pair. Listings without a
// sku are never merged.
func Dedupe(items []scan.Result) []scan.Result {
	type key struct {
		sku   string
		store string
	}

	seen := make(map[key]struct{}, len(items))
	unique := make([]scan.Result, 0, len(items))
	for _, r := range items {
		if r.SKU != "" {
			k := key{sku: r.SKU, store: r.StoreLocation}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
		}
		unique = append(unique, r)
	}

	return unique
}

// Process dedupes, filters and sorts in one go.
func Process(items []scan.Result, c Criteria, sortBy scan.SortBy) []scan.Result {
	processed := Filter(Dedupe(items), c)
	Sort(processed, sortBy)
	return processed
}
