package storehandler

import (
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"github.com/xw1nchester/dealscan-backend/internal/subscription"
)

type CandidatesRequest struct {
	ZipCode     string   `validate:"required,len=5,numeric"`
	Retailer    string   `validate:"max=64"`
	Latitude    *float64 `validate:"omitempty,latitude"`
	Longitude   *float64 `validate:"omitempty,longitude"`
	RadiusMiles float64  `validate:"min=0"`
}

type CandidatesResponse struct {
	Stores      []store.Location         `json:"stores"`
	Entitlement subscription.Entitlement `json:"entitlement"`
}
