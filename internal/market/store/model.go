package store

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Location is a physical retailer store. Records are seeded by the import job and
// only ever deactivated afterwards.
type Location struct {
	ID          int     `json:"id"`
	Retailer    string  `json:"retailer"`
	StoreNumber string  `json:"storeNumber"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zipCode"`
	Phone       string  `json:"phone,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	StoreHours  string  `json:"storeHours"`
	IsActive    bool    `json:"isActive"`
}

// Point returns the store position, orb points are [lng, lat].
func (l Location) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

func (l Location) DisplayName() string {
	if l.StoreNumber == "" {
		return l.Name
	}
	return fmt.Sprintf("%s #%s", l.Name, l.StoreNumber)
}

// CandidateQuery describes where a user is and what they are entitled to.
type CandidateQuery struct {
	ZipCode  string
	Tier     string
	Retailer string
	// Coordinates is nil when the caller only knows the ZIP code.
	Coordinates *orb.Point
	// RadiusMiles narrows the plan's radius. Zero or larger values mean the plan's.
	RadiusMiles float64
}
