package subscription

import "strings"

type Tier string

const (
	TierFree     Tier = "free"
	TierBasic    Tier = "basic"
	TierPro      Tier = "pro"
	TierPremium  Tier = "premium"
	TierBusiness Tier = "business"
)

// Entitlement is how many stores a plan may scan and how far from the user they may be.
type Entitlement struct {
	StoreLimit  int     `json:"storeLimit"`
	RadiusMiles float64 `json:"radiusMiles"`
}

var entitlements = map[Tier]Entitlement{
	TierFree:     {StoreLimit: 1, RadiusMiles: 25},
	TierBasic:    {StoreLimit: 2, RadiusMiles: 50},
	TierPro:      {StoreLimit: 10, RadiusMiles: 50},
	TierPremium:  {StoreLimit: 15, RadiusMiles: 50},
	TierBusiness: {StoreLimit: 25, RadiusMiles: 50},
}

// ParseTier normalizes a plan identifier. Unknown plans fall back to free.
func ParseTier(s string) Tier {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := entitlements[t]; !ok {
		return TierFree
	}
	return t
}

// EntitlementFor returns the store quota of a plan, the free quota for unknown plans.
func EntitlementFor(plan string) Entitlement {
	return entitlements[ParseTier(plan)]
}
