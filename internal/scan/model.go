package scan

import (
	"time"

	"github.com/google/uuid"
	"github.com/xw1nchester/dealscan-backend/internal/price"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Scan is the header of one run across a candidate store set.
type Scan struct {
	ID             uuid.UUID  `json:"id"`
	UserID         int        `json:"-"`
	StoreID        *int       `json:"storeId,omitempty"`
	Retailer       string     `json:"retailer,omitempty"`
	ZipCode        string     `json:"zipCode"`
	SortBy         SortBy     `json:"sortBy"`
	Status         Status     `json:"status"`
	ResultCount    int        `json:"resultCount"`
	ClearanceCount int        `json:"clearanceCount"`
	StoreCount     int        `json:"storeCount"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	FinishedAt     *time.Time `json:"finishedAt,omitempty"`
}

// Result is one product observed at one store during one scan.
// Nil prices are prices the source did not provide or that failed to parse.
type Result struct {
	ID                uuid.UUID      `json:"id"`
	ScanID            uuid.UUID      `json:"scanId"`
	ProductName       string         `json:"productName"`
	SKU               string         `json:"sku"`
	OriginalPrice     *price.Money   `json:"-"`
	ClearancePrice    *price.Money   `json:"-"`
	SavingsPercent    *price.Percent `json:"-"`
	IsOnClearance     bool           `json:"isOnClearance"`
	IsPriceSuppressed bool           `json:"isPriceSuppressed"`
	Category          string         `json:"category,omitempty"`
	StoreLocation     string         `json:"storeLocation"`
	ProductURL        string         `json:"productUrl,omitempty"`
}

// Original returns the comparable original price. Suppressed records have none.
func (r Result) Original() (price.Money, bool) {
	if r.IsPriceSuppressed || r.OriginalPrice == nil {
		return 0, false
	}
	return *r.OriginalPrice, true
}

// Clearance returns the comparable clearance price. Suppressed records have none.
func (r Result) Clearance() (price.Money, bool) {
	if r.IsPriceSuppressed || r.ClearancePrice == nil {
		return 0, false
	}
	return *r.ClearancePrice, true
}

func (r Result) Discount() (price.Percent, bool) {
	if r.IsPriceSuppressed || r.SavingsPercent == nil {
		return 0, false
	}
	return *r.SavingsPercent, true
}

// DollarsOff is original minus clearance, known only when both prices are.
func (r Result) DollarsOff() (price.Money, bool) {
	original, ok := r.Original()
	if !ok {
		return 0, false
	}

	clearance, ok := r.Clearance()
	if !ok {
		return 0, false
	}

	return price.Savings(original, clearance), true
}

// Progress is published after every store a scan visits. Counts are cumulative.
type Progress struct {
	ScanID         uuid.UUID `json:"scanId"`
	Status         Status    `json:"status"`
	StoreIndex     int       `json:"storeIndex"`
	TotalStores    int       `json:"totalStores"`
	ItemsScraped   int       `json:"itemsScraped"`
	ClearanceFound int       `json:"clearanceFound"`
	FailedStores   int       `json:"failedStores"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type SortBy string

const (
	SortDiscountPercent SortBy = "discount-percent"
	SortDiscountAmount  SortBy = "discount-amount"
	SortDollarsOff      SortBy = "dollars-off"
	SortPriceLow        SortBy = "price-low"
	SortClearancePrice  SortBy = "clearance-price"
	SortPriceHigh       SortBy = "price-high"
	SortOriginalPrice   SortBy = "original-price"
	SortName            SortBy = "name"
)

// Canonical folds the aliases into one selector per ordering.
// Empty and unknown values fall back to discount-percent.
func (s SortBy) Canonical() SortBy {
	switch s {
	case SortDiscountAmount, SortDollarsOff:
		return SortDiscountAmount
	case SortPriceLow, SortClearancePrice:
		return SortPriceLow
	case SortPriceHigh, SortOriginalPrice:
		return SortPriceHigh
	case SortName:
		return SortName
	default:
		return SortDiscountPercent
	}
}
