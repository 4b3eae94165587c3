package scanhandler

import (
	"github.com/google/uuid"
	"github.com/xw1nchester/dealscan-backend/internal/price"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"github.com/xw1nchester/dealscan-backend/internal/scan/results"
)

// SuppressedPrice is shown instead of a price the retailer hides.
const SuppressedPrice = "See price in store"

type ResultResponse struct {
	ID                uuid.UUID `json:"id"`
	ScanID            uuid.UUID `json:"scanId"`
	ProductName       string    `json:"productName"`
	SKU               string    `json:"sku"`
	OriginalPrice     *string   `json:"originalPrice"`
	ClearancePrice    *string   `json:"clearancePrice"`
	SavingsPercent    *string   `json:"savingsPercent"`
	IsOnClearance     bool      `json:"isOnClearance"`
	IsPriceSuppressed bool      `json:"isPriceSuppressed"`
	Category          string    `json:"category,omitempty"`
	StoreLocation     string    `json:"storeLocation"`
	ProductURL        string    `json:"productUrl,omitempty"`
}

func NewResultResponse(r scan.Result) ResultResponse {
	resp := ResultResponse{
		ID:                r.ID,
		ScanID:            r.ScanID,
		ProductName:       r.ProductName,
		SKU:               r.SKU,
		IsOnClearance:     r.IsOnClearance,
		IsPriceSuppressed: r.IsPriceSuppressed,
		Category:          r.Category,
		StoreLocation:     r.StoreLocation,
		ProductURL:        r.ProductURL,
	}

	if r.OriginalPrice != nil {
		s := price.FormatCurrency(*r.OriginalPrice)
		resp.OriginalPrice = &s
	}

	if r.IsPriceSuppressed {
		s := SuppressedPrice
		resp.ClearancePrice = &s
		return resp
	}

	if r.ClearancePrice != nil {
		s := price.FormatCurrency(*r.ClearancePrice)
		resp.ClearancePrice = &s
	}
	if r.SavingsPercent != nil {
		s := price.FormatPercent(*r.SavingsPercent)
		resp.SavingsPercent = &s
	}

	return resp
}

type ResultsPageResponse struct {
	Results    []ResultResponse `json:"results"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	StartIndex int              `json:"startIndex"`
	EndIndex   int              `json:"endIndex"`
}

func NewResultsPageResponse(p results.Page) ResultsPageResponse {
	items := make([]ResultResponse, len(p.Results))
	for i, r := range p.Results {
		items[i] = NewResultResponse(r)
	}

	return ResultsPageResponse{
		Results:    items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		StartIndex: p.StartIndex,
		EndIndex:   p.EndIndex,
	}
}

// ResultsQuery mirrors the query string of the results endpoint.
type ResultsQuery struct {
	SortBy   scan.SortBy `validate:"omitempty,oneof=discount-percent discount-amount dollars-off price-low clearance-price price-high original-price name"`
	Page     int         `validate:"min=0,max=1000000"`
	PageSize int         `validate:"min=0,max=100"`
}
