package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"github.com/xw1nchester/dealscan-backend/internal/price"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"go.uber.org/zap"
)

const clearancePath = "/stores/{storeNumber}/clearance"

type RetailerConfig struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	RetryCount int
}

// RetailerClient reads a store's clearance page and extracts its product cards.
type RetailerClient struct {
	client  *resty.Client
	baseURL *url.URL
	logger  *zap.Logger
}

func NewRetailerClient(cfg RetailerConfig, logger *zap.Logger) (*RetailerClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid retailer base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Accept", "text/html")

	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &RetailerClient{
		client:  client,
		baseURL: base,
		logger:  logger,
	}, nil
}

func (c *RetailerClient) Fetch(ctx context.Context, location store.Location, req scan.Request) ([]scan.Result, error) {
	r := c.client.R().
		SetContext(ctx).
		SetPathParam("storeNumber", location.StoreNumber)

	if location.Retailer != "" {
		r.SetQueryParam("retailer", location.Retailer)
	}
	if req.Selection() == scan.SelectSpecific {
		r.SetQueryParamsFromValues(url.Values{"sku": req.SKUs})
	}

	res, err := r.Get(clearancePath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store %s: %w", location.StoreNumber, err)
	}

	if res.IsError() {
		return nil, fmt.Errorf("failed to fetch store %s: unexpected status %d", location.StoreNumber, res.StatusCode())
	}

	items, err := c.parse(bytes.NewReader(res.Body()), location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", location.StoreNumber, err)
	}

	c.logger.Debug(
		"fetched store listings",
		zap.String("store", location.StoreNumber),
		zap.Int("items", len(items)),
	)

	return items, nil
}

// parse reads product cards of the form
//
//	<div class="product" data-sku="...">
//	  <a class="product-link" href="..."><span class="product-name">...</span></a>
//	  <span class="product-category">...</span>
//	  <span class="price-original">$199.00</span>
//	  <span class="price-clearance">$99.00</span>
//	  <span class="price-savings">50%</span>
//	  <span class="badge-clearance"></span>
//	  <span class="price-suppressed"></span>
//	</div>
//
// Prices that do not parse are left empty.
func (c *RetailerClient) parse(body io.Reader, location store.Location) ([]scan.Result, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, err
	}

	items := make([]scan.Result, 0)
	doc.Find("div.product").Each(func(_ int, card *goquery.Selection) {
		name := strings.TrimSpace(card.Find(".product-name").First().Text())
		if name == "" {
			return
		}

		sku, _ := card.Attr("data-sku")

		r := scan.Result{
			ID:                uuid.New(),
			ProductName:       name,
			SKU:               strings.TrimSpace(sku),
			Category:          strings.TrimSpace(card.Find(".product-category").First().Text()),
			StoreLocation:     location.DisplayName(),
			IsPriceSuppressed: card.Find(".price-suppressed").Length() > 0,
		}

		if href, ok := card.Find("a.product-link").First().Attr("href"); ok {
			r.ProductURL = c.resolve(href)
		}

		if m, ok := price.ParseCurrency(card.Find(".price-original").First().Text()); ok {
			r.OriginalPrice = &m
		}
		if m, ok := price.ParseCurrency(card.Find(".price-clearance").First().Text()); ok {
			r.ClearancePrice = &m
		}
		if p, ok := price.ParsePercent(card.Find(".price-savings").First().Text()); ok {
			r.SavingsPercent = &p
		}

		r.IsOnClearance = card.Find(".badge-clearance").Length() > 0
		if !r.IsOnClearance && r.OriginalPrice != nil && r.ClearancePrice != nil {
			r.IsOnClearance = *r.ClearancePrice < *r.OriginalPrice
		}

		if r.IsOnClearance && r.SavingsPercent == nil && r.OriginalPrice != nil && r.ClearancePrice != nil {
			savings := price.SavingsPercent(*r.OriginalPrice, *r.ClearancePrice)
			r.SavingsPercent = &savings
		}

		if !r.IsOnClearance && r.ClearancePrice == nil && r.OriginalPrice != nil {
			clearance := *r.OriginalPrice
			r.ClearancePrice = &clearance
		}

		items = append(items, r)
	})

	return items, nil
}

func (c *RetailerClient) resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return c.baseURL.ResolveReference(ref).String()
}
