package scan

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/xw1nchester/dealscan-backend/internal/apperror"
	"github.com/xw1nchester/dealscan-backend/internal/price"
	"github.com/xw1nchester/dealscan-backend/pkg/types"
)

var validate = validator.New()

func init() {
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

var (
	ErrEmptySKUList       = apperror.NewAppError("field SKUs must not be empty when productSelection is specific")
	ErrPartialCoordinates = apperror.NewAppError("latitude and longitude must be provided together")
	ErrInvalidPriceRange  = apperror.NewAppError("minPrice must not be greater than maxPrice")
)

type ProductSelection string

const (
	SelectAll      ProductSelection = "all"
	SelectSpecific ProductSelection = "specific"
)

// Filter holds the user facing filter parameters. Numeric thresholds stay text
// until they are parsed by the results engine.
type Filter struct {
	ClearanceOnly          bool                `json:"clearanceOnly"`
	Category               string              `json:"category" validate:"max=100"`
	MinimumDiscountPercent types.NumericString `json:"minimumDiscountPercent"`
	MinimumDollarsOff      types.NumericString `json:"minimumDollarsOff"`
	MinPrice               types.NumericString `json:"minPrice"`
	MaxPrice               types.NumericString `json:"maxPrice"`
	Search                 string              `json:"search" validate:"max=100"`
}

func (f Filter) Validate() error {
	if err := validate.Struct(f); err != nil {
		return validationErr(err)
	}

	if f.MinimumDiscountPercent != "" {
		if _, ok := price.ParsePercent(f.MinimumDiscountPercent.String()); !ok {
			return apperror.NewAppError("field minimumDiscountPercent is not a valid percentage")
		}
	}

	amounts := []struct {
		field string
		value types.NumericString
	}{
		{field: "minimumDollarsOff", value: f.MinimumDollarsOff},
		{field: "minPrice", value: f.MinPrice},
		{field: "maxPrice", value: f.MaxPrice},
	}
	for _, a := range amounts {
		if a.value == "" {
			continue
		}
		if _, ok := price.ParseCurrency(a.value.String()); !ok {
			return apperror.NewAppError(fmt.Sprintf("field %s is not a valid amount", a.field))
		}
	}

	minPrice, hasMin := price.ParseCurrency(f.MinPrice.String())
	maxPrice, hasMax := price.ParseCurrency(f.MaxPrice.String())
	if hasMin && hasMax && minPrice > maxPrice {
		return ErrInvalidPriceRange
	}

	return nil
}

// Request describes one scan: where to look, what to look for and how to order it.
type Request struct {
	StoreID          *types.IntOrString `json:"storeId"`
	Retailer         string             `json:"retailer" validate:"max=64"`
	ZipCode          string             `json:"zipCode" validate:"required,len=5,numeric"`
	Latitude         *float64           `json:"latitude" validate:"omitempty,latitude"`
	Longitude        *float64           `json:"longitude" validate:"omitempty,longitude"`
	RadiusMiles      float64            `json:"radius" validate:"min=0"`
	ProductSelection ProductSelection   `json:"productSelection" validate:"omitempty,oneof=all specific"`
	SKUs             []string           `json:"skus" validate:"dive,required,notblank"`
	SortBy           SortBy             `json:"sortBy" validate:"omitempty,oneof=discount-percent discount-amount dollars-off price-low clearance-price price-high original-price name"`
	Filter
}

func (r Request) Selection() ProductSelection {
	if r.ProductSelection == "" {
		return SelectAll
	}
	return r.ProductSelection
}

// Validate rejects a request before any scan is created.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationErr(err)
	}

	if r.Selection() == SelectSpecific && len(r.SKUs) == 0 {
		return ErrEmptySKUList
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		return ErrPartialCoordinates
	}

	return r.Filter.Validate()
}

func validationErr(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return apperror.NewValidationErr(errs)
	}
	return err
}
