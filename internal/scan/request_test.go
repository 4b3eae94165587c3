package scan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xw1nchester/dealscan-backend/internal/apperror"
)

func ptr[T any](v T) *T {
	return &v
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr bool
	}{
		{
			name:    "minimal",
			request: Request{ZipCode: "90210"},
		},
		{
			name:    "missing zip",
			request: Request{},
			wantErr: true,
		},
		{
			name:    "short zip",
			request: Request{ZipCode: "9021"},
			wantErr: true,
		},
		{
			name:    "letters in zip",
			request: Request{ZipCode: "9021a"},
			wantErr: true,
		},
		{
			name:    "specific without skus",
			request: Request{ZipCode: "90210", ProductSelection: SelectSpecific},
			wantErr: true,
		},
		{
			name:    "specific with empty slice",
			request: Request{ZipCode: "90210", ProductSelection: SelectSpecific, SKUs: []string{}},
			wantErr: true,
		},
		{
			name:    "specific with skus",
			request: Request{ZipCode: "90210", ProductSelection: SelectSpecific, SKUs: []string{"1001"}},
		},
		{
			name:    "blank sku",
			request: Request{ZipCode: "90210", ProductSelection: SelectSpecific, SKUs: []string{""}},
			wantErr: true,
		},
		{
			name:    "whitespace sku",
			request: Request{ZipCode: "90210", ProductSelection: SelectSpecific, SKUs: []string{"1001", " \t"}},
			wantErr: true,
		},
		{
			name:    "unknown selection",
			request: Request{ZipCode: "90210", ProductSelection: "some"},
			wantErr: true,
		},
		{
			name:    "unknown sort",
			request: Request{ZipCode: "90210", SortBy: "random"},
			wantErr: true,
		},
		{
			name:    "only latitude",
			request: Request{ZipCode: "90210", Latitude: ptr(34.07)},
			wantErr: true,
		},
		{
			name:    "invalid latitude",
			request: Request{ZipCode: "90210", Latitude: ptr(134.07), Longitude: ptr(-118.4)},
			wantErr: true,
		},
		{
			name:    "coordinates",
			request: Request{ZipCode: "90210", Latitude: ptr(34.07), Longitude: ptr(-118.4)},
		},
		{
			name:    "malformed discount threshold",
			request: Request{ZipCode: "90210", Filter: Filter{MinimumDiscountPercent: "half"}},
			wantErr: true,
		},
		{
			name:    "thresholds",
			request: Request{ZipCode: "90210", Filter: Filter{MinimumDiscountPercent: "50%", MinimumDollarsOff: "$10"}},
		},
		{
			name:    "inverted price range",
			request: Request{ZipCode: "90210", Filter: Filter{MinPrice: "100", MaxPrice: "20"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()

			if tt.wantErr {
				require.Error(t, err)

				var appErr *apperror.AppError
				assert.ErrorAs(t, err, &appErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRequestDecode(t *testing.T) {
	body := `{
		"storeId": "12",
		"zipCode": "90210",
		"productSelection": "specific",
		"skus": ["1001", "1002"],
		"clearanceOnly": true,
		"minimumDiscountPercent": 50,
		"minimumDollarsOff": "$5.00",
		"sortBy": "price-low"
	}`

	var r Request
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	require.NotNil(t, r.StoreID)
	assert.Equal(t, 12, int(*r.StoreID))
	assert.Equal(t, SelectSpecific, r.Selection())
	assert.True(t, r.ClearanceOnly)
	assert.Equal(t, "50", r.MinimumDiscountPercent.String())
	assert.Equal(t, "$5.00", r.MinimumDollarsOff.String())
	assert.Equal(t, SortPriceLow, r.SortBy)
	assert.NoError(t, r.Validate())
}

func TestSortByCanonical(t *testing.T) {
	assert.Equal(t, SortDiscountAmount, SortDollarsOff.Canonical())
	assert.Equal(t, SortPriceLow, SortClearancePrice.Canonical())
	assert.Equal(t, SortPriceHigh, SortOriginalPrice.Canonical())
	assert.Equal(t, SortName, SortName.Canonical())
	assert.Equal(t, SortDiscountPercent, SortBy("").Canonical())
}
