package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xw1nchester/dealscan-backend/internal/price"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"go.uber.org/zap"
)

const clearancePage = `<html><body>
<div class="product" data-sku="100">
  <a class="product-link" href="/p/100"><span class="product-name">Cordless Drill</span></a>
  <span class="product-category">Tools</span>
  <span class="price-original">$100.00</span>
  <span class="price-clearance">$40.00</span>
  <span class="price-savings">60%</span>
  <span class="badge-clearance">Clearance</span>
</div>
<div class="product" data-sku="200">
  <span class="product-name">Area Rug</span>
  <span class="product-category">Home Decor</span>
  <span class="price-original">$1,250.00</span>
</div>
<div class="product" data-sku="300">
  <span class="product-name">Gas Grill</span>
  <span class="price-original">$300.00</span>
  <span class="price-clearance">$150.00</span>
</div>
<div class="product" data-sku="400">
  <span class="product-name">Wall Mirror</span>
  <span class="price-original">call</span>
  <span class="price-clearance">See price in store</span>
  <span class="price-suppressed"></span>
</div>
<div class="product" data-sku="500"></div>
</body></html>`

func newRetailer(t *testing.T, url string) *RetailerClient {
	t.Helper()

	c, err := NewRetailerClient(RetailerConfig{
		BaseURL:   url,
		Timeout:   time.Second,
		UserAgent: "dealscan-test",
	}, zap.NewNop())
	require.NoError(t, err)

	return c
}

func TestRetailerClient_Fetch(t *testing.T) {
	var gotPath, gotRetailer, gotAgent string
	var gotSKUs []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRetailer = r.URL.Query().Get("retailer")
		gotSKUs = r.URL.Query()["sku"]
		gotAgent = r.UserAgent()

		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(clearancePage))
	}))
	defer srv.Close()

	items, err := newRetailer(t, srv.URL).Fetch(context.Background(), testStore, scan.Request{})
	require.NoError(t, err)

	assert.Equal(t, "/stores/6601/clearance", gotPath)
	assert.Equal(t, "homedepot", gotRetailer)
	assert.Empty(t, gotSKUs)
	assert.Equal(t, "dealscan-test", gotAgent)

	require.Len(t, items, 4)

	drill := items[0]
	assert.Equal(t, "Cordless Drill", drill.ProductName)
	assert.Equal(t, "100", drill.SKU)
	assert.Equal(t, "Tools", drill.Category)
	assert.Equal(t, srv.URL+"/p/100", drill.ProductURL)
	assert.Equal(t, "Beverly Hills #6601", drill.StoreLocation)
	assert.True(t, drill.IsOnClearance)
	assert.Equal(t, price.Money(10000), *drill.OriginalPrice)
	assert.Equal(t, price.Money(4000), *drill.ClearancePrice)
	assert.Equal(t, price.Percent(60), *drill.SavingsPercent)

	rug := items[1]
	assert.False(t, rug.IsOnClearance)
	assert.Equal(t, price.Money(125000), *rug.OriginalPrice)
	require.NotNil(t, rug.ClearancePrice)
	assert.Equal(t, *rug.OriginalPrice, *rug.ClearancePrice)
	assert.Nil(t, rug.SavingsPercent)

	grill := items[2]
	assert.True(t, grill.IsOnClearance)
	require.NotNil(t, grill.SavingsPercent)
	assert.InDelta(t, 50, float64(*grill.SavingsPercent), 0.001)

	mirror := items[3]
	assert.True(t, mirror.IsPriceSuppressed)
	assert.Nil(t, mirror.OriginalPrice)
	assert.Nil(t, mirror.ClearancePrice)
	_, ok := mirror.Clearance()
	assert.False(t, ok)
}

func TestRetailerClient_FetchSpecific(t *testing.T) {
	var gotSKUs []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSKUs = r.URL.Query()["sku"]
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	defer srv.Close()

	items, err := newRetailer(t, srv.URL).Fetch(context.Background(), testStore, scan.Request{
		ProductSelection: scan.SelectSpecific,
		SKUs:             []string{"100", "300"},
	})

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Equal(t, []string{"100", "300"}, gotSKUs)
}

func TestRetailerClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	items, err := newRetailer(t, srv.URL).Fetch(context.Background(), testStore, scan.Request{})

	assert.ErrorContains(t, err, "unexpected status 500")
	assert.Nil(t, items)
}

func TestNewRetailerClient_InvalidURL(t *testing.T) {
	_, err := NewRetailerClient(RetailerConfig{BaseURL: "://bad"}, zap.NewNop())

	assert.Error(t, err)
}
