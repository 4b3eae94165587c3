package fetcher

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"github.com/xw1nchester/dealscan-backend/internal/price"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"github.com/xw1nchester/dealscan-backend/pkg/utils"
)

var catalog = map[string][]string{
	"Tools":       {"Cordless Drill", "Impact Driver", "Circular Saw", "Socket Set", "Tool Chest", "Oscillating Multi-Tool"},
	"Appliances":  {"Microwave", "Dishwasher", "Refrigerator", "Air Fryer", "Washer", "Chest Freezer"},
	"Outdoor":     {"Gas Grill", "Patio Set", "Lawn Mower", "Leaf Blower", "Fire Pit", "String Trimmer"},
	"Home Decor":  {"Area Rug", "Wall Mirror", "Table Lamp", "Curtain Panel", "Throw Pillow", "Wall Clock"},
	"Electrical":  {"LED Shop Light", "Smart Switch", "Extension Cord", "Ceiling Fan", "Doorbell Camera"},
	"Plumbing":    {"Kitchen Faucet", "Water Heater", "Toilet", "Shower Head", "Garbage Disposal"},
	"Paint":       {"Interior Paint", "Paint Sprayer", "Exterior Stain", "Primer", "Roller Kit"},
	"Storage":     {"Garage Shelving", "Storage Bin", "Wall Cabinet", "Closet Organizer", "Utility Cart"},
	"Flooring":    {"Vinyl Plank", "Carpet Tile", "Laminate Flooring", "Floor Tile", "Underlayment"},
	"Seasonal":    {"Artificial Tree", "Inflatable Decoration", "String Lights", "Pool Float", "Space Heater"},
	"Hardware":    {"Door Lock", "Cabinet Pulls", "Hinge Set", "Mailbox", "Safe"},
	"Lighting":    {"Pendant Light", "Vanity Light", "Floor Lamp", "Landscape Lighting", "Chandelier"},
	"Kitchen":     {"Range Hood", "Cookware Set", "Kitchen Sink", "Stand Mixer", "Knife Block"},
	"Bath":        {"Bath Vanity", "Medicine Cabinet", "Towel Bar", "Bathtub", "Exhaust Fan"},
	"Garden":      {"Raised Garden Bed", "Planter", "Hose Reel", "Garden Cart", "Compost Bin"},
	"Automotive":  {"Jump Starter", "Battery Charger", "Floor Jack", "Car Vacuum", "Tire Inflator"},
	"Electronics": {"Smart Speaker", "Security Camera", "Wi-Fi Router", "Smart Thermostat", "Robot Vacuum"},
}

var brands = []string{"Ridgeline", "Husk", "Everbilt Pro", "Northway", "Craftwell", "Bayfield", "Stonegate", "Hampton"}

// Categories lists the categories the generator samples from, sorted.
var Categories = sortedCategories()

func sortedCategories() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return utils.Sorted(names)
}

type GeneratorConfig struct {
	MinItems              int
	MaxItems              int
	ClearanceProbability  float64
	SuppressedProbability float64
	ProductBaseURL        string
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinItems:              15,
		MaxItems:              40,
		ClearanceProbability:  0.35,
		SuppressedProbability: 0.05,
	}
}

// Generator synthesizes plausible clearance listings. It stands in for a live
// retailer integration and is safe for concurrent use.
type Generator struct {
	cfg GeneratorConfig

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(cfg GeneratorConfig, seed uint64) *Generator {
	if cfg.MinItems <= 0 {
		cfg.MinItems = 1
	}
	if cfg.MaxItems < cfg.MinItems {
		cfg.MaxItems = cfg.MinItems
	}

	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (g *Generator) Fetch(ctx context.Context, location store.Location, req scan.Request) ([]scan.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if req.Selection() == scan.SelectSpecific {
		skus := utils.RemoveDuplicates(req.SKUs)
		items := make([]scan.Result, 0, len(skus))
		for _, sku := range skus {
			items = append(items, g.listing(location, strings.TrimSpace(sku)))
		}
		return items, nil
	}

	count := g.cfg.MinItems + g.rng.IntN(g.cfg.MaxItems-g.cfg.MinItems+1)

	items := make([]scan.Result, 0, count)
	for range count {
		items = append(items, g.listing(location, ""))
	}

	return items, nil
}

func (g *Generator) listing(location store.Location, sku string) scan.Result {
	category := Categories[g.rng.IntN(len(Categories))]
	products := catalog[category]
	name := fmt.Sprintf("%s %s", brands[g.rng.IntN(len(brands))], products[g.rng.IntN(len(products))])

	if sku == "" {
		sku = fmt.Sprintf("%09d", 100000000+g.rng.IntN(900000000))
	}

	// [20, 520) in whole cents
	original := price.Money(2000 + g.rng.Int64N(50000))

	r := scan.Result{
		ID:            uuid.New(),
		ProductName:   name,
		SKU:           sku,
		OriginalPrice: &original,
		Category:      category,
		StoreLocation: location.DisplayName(),
	}

	if g.cfg.ProductBaseURL != "" {
		r.ProductURL = fmt.Sprintf("%s/p/%s", strings.TrimRight(g.cfg.ProductBaseURL, "/"), sku)
	}

	if g.rng.Float64() < g.cfg.ClearanceProbability {
		ratio := 0.30 + g.rng.Float64()*0.40
		clearance := price.Money(math.Round(float64(original) * ratio))
		savings := price.Percent(math.Round(float64(price.SavingsPercent(original, clearance))))

		r.IsOnClearance = true
		r.ClearancePrice = &clearance
		r.SavingsPercent = &savings
	} else {
		clearance := original
		r.ClearancePrice = &clearance
	}

	if g.rng.Float64() < g.cfg.SuppressedProbability {
		r.IsPriceSuppressed = true
		r.ClearancePrice = nil
		r.SavingsPercent = nil
	}

	return r
}
