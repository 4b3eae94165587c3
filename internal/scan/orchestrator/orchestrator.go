// Package orchestrator runs a scan across its candidate stores.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"github.com/xw1nchester/dealscan-backend/internal/metrics"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"github.com/xw1nchester/dealscan-backend/internal/scan/fetcher"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var ErrAllStoresFailed = errors.New("all stores failed")

type Config struct {
	// PaceInterval is the pause before each store after the first.
	PaceInterval time.Duration
	// Concurrency bounds the stores fetched at once. Values below 1 mean 1.
	Concurrency int
}

// ProgressFunc receives cumulative progress after every store. Calls are serial.
type ProgressFunc func(scan.Progress)

// Outcome is what a run gathered. Results keep candidate store order and each
// store's own fetch order.
type Outcome struct {
	Status       scan.Status
	Results      []scan.Result
	Progress     scan.Progress
	FailedStores int
	// Err is set when every store failed or the run was cancelled.
	Err error
}

type Orchestrator struct {
	fetcher fetcher.Fetcher
	cfg     Config
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func New(f fetcher.Fetcher, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Orchestrator {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return &Orchestrator{
		fetcher: f,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

type run struct {
	mu       sync.Mutex
	progress scan.Progress
	perStore [][]scan.Result
	onUpdate ProgressFunc
}

func (r *run) record(i int, items []scan.Result, failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress.StoreIndex++
	if failed {
		r.progress.FailedStores++
	} else {
		r.perStore[i] = items
		r.progress.ItemsScraped += len(items)
		for _, item := range items {
			if item.IsOnClearance {
				r.progress.ClearanceFound++
			}
		}
	}
	r.progress.UpdatedAt = time.Now()

	if r.onUpdate != nil {
		r.onUpdate(r.progress)
	}
}

// Run fetches every store and returns what was gathered. Cancellation of ctx is
// observed between stores only: a fetch in flight is allowed to finish and its
// listings are kept.
func (o *Orchestrator) Run(
	ctx context.Context,
	scanID uuid.UUID,
	stores []store.Location,
	req scan.Request,
	onProgress ProgressFunc,
) *Outcome {
	r := &run{
		progress: scan.Progress{
			ScanID:      scanID,
			Status:      scan.StatusRunning,
			TotalStores: len(stores),
		},
		perStore: make([][]scan.Result, len(stores)),
		onUpdate: onProgress,
	}

	pacer := NewPacer(o.cfg.PaceInterval)
	sem := semaphore.NewWeighted(int64(o.cfg.Concurrency))
	fetchCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	var stopErr error

	for i, location := range stores {
		if err := sem.Acquire(ctx, 1); err != nil {
			stopErr = err
			break
		}

		if err := pacer.Wait(ctx); err != nil {
			sem.Release(1)
			stopErr = err
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			items, err := o.fetchStore(fetchCtx, scanID, location, req)
			r.record(i, items, err != nil)
		}()
	}

	wg.Wait()

	out := &Outcome{
		Status:       scan.StatusCompleted,
		Results:      make([]scan.Result, 0, r.progress.ItemsScraped),
		FailedStores: r.progress.FailedStores,
	}
	for _, items := range r.perStore {
		out.Results = append(out.Results, items...)
	}

	switch {
	case stopErr != nil:
		out.Status = scan.StatusFailed
		out.Err = stopErr
		o.logger.Info(
			"scan stopped before all stores were visited",
			zap.String("scan_id", scanID.String()),
			zap.Int("visited", r.progress.StoreIndex),
			zap.Int("total", len(stores)),
			zap.Error(stopErr),
		)
	case len(stores) > 0 && r.progress.FailedStores == len(stores):
		out.Status = scan.StatusFailed
		out.Err = ErrAllStoresFailed
	}

	out.Progress = r.progress
	out.Progress.Status = out.Status

	return out
}

func (o *Orchestrator) fetchStore(
	ctx context.Context,
	scanID uuid.UUID,
	location store.Location,
	req scan.Request,
) ([]scan.Result, error) {
	start := time.Now()

	items, err := o.fetcher.Fetch(ctx, location, req)
	if err != nil {
		o.metrics.StoreFetched(metrics.OutcomeFailure, time.Since(start))
		o.logger.Warn(
			"store fetch failed",
			zap.String("scan_id", scanID.String()),
			zap.Int("store_id", location.ID),
			zap.String("store", location.DisplayName()),
			zap.Error(err),
		)
		return nil, err
	}

	o.metrics.StoreFetched(metrics.OutcomeSuccess, time.Since(start))

	for i := range items {
		items[i].ScanID = scanID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}

	o.logger.Debug(
		"store fetched",
		zap.String("scan_id", scanID.String()),
		zap.Int("store_id", location.ID),
		zap.Int("items", len(items)),
	)

	return items, nil
}
