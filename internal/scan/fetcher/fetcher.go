// Package fetcher produces the raw listings of a single store.
package fetcher

import (
	"context"

	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"github.com/xw1nchester/dealscan-backend/internal/scan/results"
)

// Fetcher returns the listings of one store. Results carry an ID and the store's
// display name; the scan id is assigned by the caller.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock.go -package=mockfetcher
type Fetcher interface {
	Fetch(ctx context.Context, location store.Location, req scan.Request) ([]scan.Result, error)
}

type storeFiltered struct {
	next Fetcher
}

// WithStoreFilter applies the request filters to every store's listings as soon as
// they are fetched, so only matching listings are kept in memory.
func WithStoreFilter(next Fetcher) Fetcher {
	return &storeFiltered{next: next}
}

func (f *storeFiltered) Fetch(ctx context.Context, location store.Location, req scan.Request) ([]scan.Result, error) {
	items, err := f.next.Fetch(ctx, location, req)
	if err != nil {
		return nil, err
	}

	return results.Filter(items, results.ForRequest(req)), nil
}
