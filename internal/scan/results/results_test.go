package results

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xw1nchester/dealscan-backend/internal/price"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
)

func money(s string) *price.Money {
	m, ok := price.ParseCurrency(s)
	if !ok {
		return nil
	}
	return &m
}

func percent(s string) *price.Percent {
	p, ok := price.ParsePercent(s)
	if !ok {
		return nil
	}
	return &p
}

func listing(name, original, clearance, savings string) scan.Result {
	return scan.Result{
		ID:             uuid.New(),
		ProductName:    name,
		SKU:            name,
		OriginalPrice:  money(original),
		ClearancePrice: money(clearance),
		SavingsPercent: percent(savings),
		IsOnClearance:  clearance != "" && clearance != original,
		StoreLocation:  "Store #1",
	}
}

func names(items []scan.Result) []string {
	result := make([]string, len(items))
	for i, r := range items {
		result[i] = r.ProductName
	}
	return result
}

func TestSort_DiscountAmount(t *testing.T) {
	small := listing("Small discount", "$100.00", "$90.00", "10%")
	big := listing("Big discount", "$100.00", "$40.00", "60%")

	items := []scan.Result{small, big}
	Sort(items, scan.SortDiscountAmount)

	assert.Equal(t, []string{"Big discount", "Small discount"}, names(items))
}

func TestSort_Orderings(t *testing.T) {
	a := listing("Anvil", "$50.00", "$25.00", "50%")
	b := listing("bucket", "$20.00", "$18.00", "10%")
	c := listing("Chisel", "$300.00", "$90.00", "70%")
	unknown := listing("Drill", "", "", "")
	suppressed := listing("Easel", "$80.00", "$10.00", "88%")
	suppressed.IsPriceSuppressed = true

	tests := []struct {
		sortBy   scan.SortBy
		expected []string
	}{
		{sortBy: scan.SortDiscountPercent, expected: []string{"Chisel", "Anvil", "bucket", "Drill", "Easel"}},
		{sortBy: scan.SortDollarsOff, expected: []string{"Chisel", "Anvil", "bucket", "Drill", "Easel"}},
		{sortBy: scan.SortPriceLow, expected: []string{"bucket", "Anvil", "Chisel", "Drill", "Easel"}},
		{sortBy: scan.SortClearancePrice, expected: []string{"bucket", "Anvil", "Chisel", "Drill", "Easel"}},
		{sortBy: scan.SortPriceHigh, expected: []string{"Chisel", "Anvil", "bucket", "Drill", "Easel"}},
		{sortBy: scan.SortName, expected: []string{"Anvil", "bucket", "Chisel", "Drill", "Easel"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sortBy), func(t *testing.T) {
			items := []scan.Result{suppressed, unknown, c, b, a}
			Sort(items, tt.sortBy)

			assert.Equal(t, tt.expected, names(items))
		})
	}
}

func TestSort_SuppressedAfterComparable(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	items := make([]scan.Result, 0, 200)
	for i := range 200 {
		original := price.Money(2000 + rng.IntN(50000))
		clearance := original * 6 / 10
		r := scan.Result{
			ID:             uuid.New(),
			ProductName:    fmt.Sprintf("Item %03d", i),
			OriginalPrice:  &original,
			ClearancePrice: &clearance,
		}
		if rng.IntN(5) == 0 {
			r.IsPriceSuppressed = true
		}
		items = append(items, r)
	}

	for range 5 {
		rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		Sort(items, scan.SortPriceLow)

		seenSuppressed := false
		for _, r := range items {
			if r.IsPriceSuppressed {
				seenSuppressed = true
				continue
			}
			require.False(t, seenSuppressed, "comparable item %s after a suppressed one", r.ProductName)
		}
	}
}

func TestSort_Deterministic(t *testing.T) {
	items := []scan.Result{
		listing("Lamp", "$40.00", "$20.00", "50%"),
		listing("lamp", "$40.00", "$20.00", "50%"),
		listing("Rug", "$90.00", "$45.00", "50%"),
		listing("Mirror", "", "", ""),
		listing("Vase", "$15.00", "$15.00", ""),
	}

	for _, sortBy := range []scan.SortBy{
		scan.SortDiscountPercent,
		scan.SortDiscountAmount,
		scan.SortPriceLow,
		scan.SortPriceHigh,
		scan.SortName,
	} {
		first := append([]scan.Result(nil), items...)
		Sort(first, sortBy)

		reversed := make([]scan.Result, len(items))
		for i := range items {
			reversed[i] = items[len(items)-1-i]
		}
		Sort(reversed, sortBy)

		again := append([]scan.Result(nil), first...)
		Sort(again, sortBy)

		assert.Equal(t, first, reversed, sortBy)
		assert.Equal(t, first, again, sortBy)
	}
}

func TestFilter_MinimumDiscountPercent(t *testing.T) {
	forty := listing("Forty", "$100.00", "$60.00", "40%")
	fiftyFive := listing("Fifty five", "$100.00", "$45.00", "55%")
	missing := listing("Missing", "$100.00", "$45.00", "")

	c := NewCriteria(scan.Filter{MinimumDiscountPercent: "50"})

	assert.False(t, c.Match(forty))
	assert.True(t, c.Match(fiftyFive))
	assert.False(t, c.Match(missing))
}

func TestFilter(t *testing.T) {
	drill := listing("Cordless Drill", "$199.00", "$99.00", "50%")
	drill.Category = "Tools"
	rug := listing("Area Rug", "$120.00", "$120.00", "")
	rug.Category = "Home Decor"
	grill := listing("Gas Grill", "$499.00", "$249.00", "50%")
	grill.Category = "Outdoor"
	hidden := listing("Patio Set", "$899.00", "$99.00", "89%")
	hidden.Category = "Outdoor"
	hidden.IsPriceSuppressed = true

	items := []scan.Result{drill, rug, grill, hidden}

	tests := []struct {
		name     string
		filter   scan.Filter
		expected []string
	}{
		{name: "no filter", filter: scan.Filter{}, expected: []string{"Cordless Drill", "Area Rug", "Gas Grill", "Patio Set"}},
		{name: "clearance only", filter: scan.Filter{ClearanceOnly: true}, expected: []string{"Cordless Drill", "Gas Grill", "Patio Set"}},
		{name: "category any case", filter: scan.Filter{Category: "outdoor"}, expected: []string{"Gas Grill", "Patio Set"}},
		{name: "category all", filter: scan.Filter{Category: "All"}, expected: []string{"Cordless Drill", "Area Rug", "Gas Grill", "Patio Set"}},
		{name: "dollars off", filter: scan.Filter{MinimumDollarsOff: "$100"}, expected: []string{"Cordless Drill", "Gas Grill"}},
		{name: "price range excludes suppressed", filter: scan.Filter{MinPrice: "50", MaxPrice: "150"}, expected: []string{"Cordless Drill", "Area Rug"}},
		{name: "search by name", filter: scan.Filter{Search: "GRILL"}, expected: []string{"Gas Grill"}},
		{name: "search by category", filter: scan.Filter{Search: "decor"}, expected: []string{"Area Rug"}},
		{name: "combined", filter: scan.Filter{ClearanceOnly: true, Category: "Outdoor", MinimumDiscountPercent: "40%"}, expected: []string{"Gas Grill"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names(Filter(items, NewCriteria(tt.filter))))
		})
	}
}

func TestForRequest_SpecificSKUs(t *testing.T) {
	a := listing("A", "$10.00", "$5.00", "50%")
	b := listing("B", "$10.00", "$5.00", "50%")

	c := ForRequest(scan.Request{
		ZipCode:          "90210",
		ProductSelection: scan.SelectSpecific,
		SKUs:             []string{"B", "B", " Z "},
	})

	assert.Len(t, c.SKUs, 2)
	assert.False(t, c.Match(a))
	assert.True(t, c.Match(b))

	assert.Nil(t, ForRequest(scan.Request{ZipCode: "90210", SKUs: []string{"A"}}).SKUs)
}

func TestDedupe(t *testing.T) {
	a := listing("A", "$10.00", "$5.00", "50%")
	aAgain := a
	aAgain.ID = uuid.New()
	aElsewhere := a
	aElsewhere.ID = uuid.New()
	aElsewhere.StoreLocation = "Store #2"
	noSKU1 := listing("", "$1.00", "$1.00", "")
	noSKU2 := listing("", "$1.00", "$1.00", "")

	unique := Dedupe([]scan.Result{a, aAgain, aElsewhere, noSKU1, noSKU2})

	require.Len(t, unique, 4)
	assert.Equal(t, a.ID, unique[0].ID)
	assert.Equal(t, aElsewhere.ID, unique[1].ID)
}

func TestProcess_DoesNotModifyInput(t *testing.T) {
	items := []scan.Result{
		listing("B", "$10.00", "$9.00", "10%"),
		listing("A", "$10.00", "$1.00", "90%"),
	}

	processed := Process(items, Criteria{}, scan.SortDiscountPercent)

	assert.Equal(t, []string{"A", "B"}, names(processed))
	assert.Equal(t, []string{"B", "A"}, names(items))
}

func TestPaginate(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 25, 100, 101} {
		items := make([]scan.Result, total)
		for i := range items {
			items[i] = scan.Result{ID: uuid.New(), ProductName: fmt.Sprint(i)}
		}

		first := Paginate(items, 1, 10)
		expectedPages := (total + 9) / 10
		require.Equal(t, expectedPages, first.TotalPages)

		sum := 0
		for page := 1; page <= first.TotalPages; page++ {
			p := Paginate(items, page, 10)

			assert.Equal(t, total, p.Total)
			if page < p.TotalPages {
				assert.Len(t, p.Results, 10)
			}
			assert.Equal(t, (page-1)*10+1, p.StartIndex)
			assert.Equal(t, (page-1)*10+len(p.Results), p.EndIndex)

			sum += len(p.Results)
		}
		assert.Equal(t, total, sum)

		beyond := Paginate(items, expectedPages+1, 10)
		assert.Empty(t, beyond.Results)
		assert.NotNil(t, beyond.Results)
		assert.Equal(t, total, beyond.Total)
		assert.Zero(t, beyond.StartIndex)
	}
}

func TestPaginate_HugePage(t *testing.T) {
	items := make([]scan.Result, 25)

	for _, page := range []int{math.MaxInt64/10 + 2, math.MaxInt64} {
		var p Page
		require.NotPanics(t, func() { p = Paginate(items, page, 10) })

		assert.Empty(t, p.Results)
		assert.Equal(t, 25, p.Total)
		assert.Equal(t, 3, p.TotalPages)
		assert.Zero(t, p.StartIndex)
	}
}

func TestPaginate_Defaults(t *testing.T) {
	items := make([]scan.Result, 15)

	p := Paginate(items, 0, 0)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Len(t, p.Results, 10)
	assert.Equal(t, 2, p.TotalPages)
}
