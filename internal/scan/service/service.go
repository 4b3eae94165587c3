package scanservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/xw1nchester/dealscan-backend/internal/apperror"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"github.com/xw1nchester/dealscan-backend/internal/metrics"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	scandb "github.com/xw1nchester/dealscan-backend/internal/scan/db"
	"github.com/xw1nchester/dealscan-backend/internal/scan/orchestrator"
	"github.com/xw1nchester/dealscan-backend/internal/scan/progress"
	"github.com/xw1nchester/dealscan-backend/internal/scan/results"
	"github.com/xw1nchester/dealscan-backend/pkg/transactor"
	"go.uber.org/zap"
)

var (
	ErrStoreInactive = apperror.NewAppError("store is not active")
	ErrScanFinished  = apperror.NewAppError("scan has already finished")
)

const (
	reasonCancelled = "scan cancelled"
	reasonTimedOut  = "scan timed out"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mockscanservice
type Repository interface {
	Create(ctx context.Context, s *scan.Scan) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status scan.Status) error
	Finish(ctx context.Context, s *scan.Scan) error
	SaveResults(ctx context.Context, scanID uuid.UUID, items []scan.Result) error
	GetByID(ctx context.Context, id uuid.UUID) (*scan.Scan, error)
	GetResults(ctx context.Context, scanID uuid.UUID) ([]scan.Result, error)
}

type StoreService interface {
	SelectCandidates(ctx context.Context, q store.CandidateQuery) ([]store.Location, error)
	GetByID(ctx context.Context, id int) (*store.Location, error)
}

type ProgressStore interface {
	Publish(ctx context.Context, p scan.Progress) error
	Get(ctx context.Context, scanID uuid.UUID) (*scan.Progress, error)
}

type Runner interface {
	Run(ctx context.Context, scanID uuid.UUID, stores []store.Location, req scan.Request, onProgress orchestrator.ProgressFunc) *orchestrator.Outcome
}

type Config struct {
	RunTimeout time.Duration
	PageSize   int
}

// ResultsQuery re-filters and re-sorts the stored listings of a scan.
// An empty SortBy keeps the ordering the scan was started with.
type ResultsQuery struct {
	scan.Filter
	SortBy   scan.SortBy
	Page     int
	PageSize int
}

type service struct {
	repository   Repository
	storeService StoreService
	progress     ProgressStore
	runner       Runner
	txManager    transactor.Manager
	metrics      *metrics.Metrics
	cfg          Config
	logger       *zap.Logger

	mu      sync.Mutex
	running map[uuid.UUID]context.CancelFunc
	wg      sync.WaitGroup
}

func New(
	repository Repository,
	storeService StoreService,
	progress ProgressStore,
	runner Runner,
	txManager transactor.Manager,
	m *metrics.Metrics,
	cfg Config,
	logger *zap.Logger,
) *service {
	return &service{
		repository:   repository,
		storeService: storeService,
		progress:     progress,
		runner:       runner,
		txManager:    txManager,
		metrics:      m,
		cfg:          cfg,
		logger:       logger,
		running:      make(map[uuid.UUID]context.CancelFunc),
	}
}

// Start validates req, records a pending scan and runs it in the background.
func (s *service) Start(ctx context.Context, userID int, tier string, req scan.Request) (*scan.Scan, error) {
	sc, stores, err := s.prepare(ctx, userID, tier, req)
	if err != nil {
		return nil, err
	}

	runCtx, done := s.track(ctx, sc.ID)

	go func() {
		defer done()

		s.execute(runCtx, *sc, stores, req)
	}()

	return sc, nil
}

// Run is Start without the background goroutine: it returns once the scan is
// terminal. The scan can be cancelled while it runs, like a started one.
func (s *service) Run(ctx context.Context, userID int, tier string, req scan.Request) (*scan.Scan, error) {
	sc, stores, err := s.prepare(ctx, userID, tier, req)
	if err != nil {
		return nil, err
	}

	runCtx, done := s.track(ctx, sc.ID)
	defer done()

	return s.execute(runCtx, *sc, stores, req), nil
}

// track registers the run of scan id so Cancel and Shutdown can reach it. done
// must be called once the run is over.
func (s *service) track(ctx context.Context, id uuid.UUID) (context.Context, func()) {
	runCtx, cancel := s.runContext(ctx)

	s.mu.Lock()
	s.running[id] = cancel
	s.mu.Unlock()

	s.wg.Add(1)

	return runCtx, func() {
		s.forget(id)
		cancel()
		s.wg.Done()
	}
}

// Shutdown cancels every running scan and waits for them to commit what they gathered.
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, cancel := range s.running {
		cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *service) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if s.cfg.RunTimeout > 0 {
		return context.WithTimeout(base, s.cfg.RunTimeout)
	}
	return context.WithCancel(base)
}

func (s *service) forget(id uuid.UUID) {
	s.mu.Lock()
	delete(s.running, id)
	s.mu.Unlock()
}

func (s *service) prepare(ctx context.Context, userID int, tier string, req scan.Request) (*scan.Scan, []store.Location, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	stores, err := s.candidates(ctx, tier, req)
	if err != nil {
		return nil, nil, err
	}

	sc := &scan.Scan{
		ID:         uuid.New(),
		UserID:     userID,
		Retailer:   req.Retailer,
		ZipCode:    req.ZipCode,
		SortBy:     req.SortBy.Canonical(),
		Status:     scan.StatusPending,
		StoreCount: len(stores),
	}
	if req.StoreID != nil {
		id := req.StoreID.Int()
		sc.StoreID = &id
	}

	if err := s.repository.Create(ctx, sc); err != nil {
		s.logger.Error("unexpected error when creating scan", zap.Error(err))

		return nil, nil, err
	}

	s.publish(ctx, scan.Progress{
		ScanID:      sc.ID,
		Status:      scan.StatusPending,
		TotalStores: len(stores),
		UpdatedAt:   time.Now(),
	})

	s.logger.Info(
		"scan created",
		zap.String("scan_id", sc.ID.String()),
		zap.Int("user_id", userID),
		zap.Int("stores", len(stores)),
	)

	return sc, stores, nil
}

// candidates resolves the store set: the requested store when one is named,
// the plan-limited selection around the user otherwise.
func (s *service) candidates(ctx context.Context, tier string, req scan.Request) ([]store.Location, error) {
	if req.StoreID != nil {
		location, err := s.storeService.GetByID(ctx, req.StoreID.Int())
		if err != nil {
			return nil, err
		}

		if !location.IsActive {
			return nil, ErrStoreInactive
		}

		return []store.Location{*location}, nil
	}

	q := store.CandidateQuery{
		ZipCode:     req.ZipCode,
		Tier:        tier,
		Retailer:    req.Retailer,
		RadiusMiles: req.RadiusMiles,
	}
	if req.Latitude != nil && req.Longitude != nil {
		q.Coordinates = &orb.Point{*req.Longitude, *req.Latitude}
	}

	return s.storeService.SelectCandidates(ctx, q)
}

func (s *service) execute(ctx context.Context, sc scan.Scan, stores []store.Location, req scan.Request) *scan.Scan {
	persistCtx := context.WithoutCancel(ctx)

	if err := s.repository.UpdateStatus(persistCtx, sc.ID, scan.StatusRunning); err != nil {
		// cancelled before it started
		if errors.Is(err, scandb.ErrScanNotFound) {
			s.logger.Info("scan is no longer pending", zap.String("scan_id", sc.ID.String()))
			return &sc
		}
		s.logger.Error("unexpected error when marking scan running", zap.Error(err))
	}
	sc.Status = scan.StatusRunning

	s.publish(persistCtx, scan.Progress{
		ScanID:      sc.ID,
		Status:      scan.StatusRunning,
		TotalStores: len(stores),
		UpdatedAt:   time.Now(),
	})

	out := s.runner.Run(ctx, sc.ID, stores, req, func(p scan.Progress) {
		s.publish(persistCtx, p)
	})

	sc.Status = out.Status
	sc.ResultCount = len(out.Results)
	for _, r := range out.Results {
		if r.IsOnClearance {
			sc.ClearanceCount++
		}
	}

	switch {
	case errors.Is(out.Err, context.Canceled):
		sc.Error = reasonCancelled
	case errors.Is(out.Err, context.DeadlineExceeded):
		sc.Error = reasonTimedOut
	case out.Err != nil:
		sc.Error = out.Err.Error()
	}

	err := s.txManager.WithinTransaction(persistCtx, func(ctx context.Context) error {
		if err := s.repository.SaveResults(ctx, sc.ID, out.Results); err != nil {
			return err
		}
		return s.repository.Finish(ctx, &sc)
	})
	if err != nil {
		s.logger.Error(
			"unexpected error when committing scan",
			zap.String("scan_id", sc.ID.String()),
			zap.Error(err),
		)
	}

	final := out.Progress
	final.UpdatedAt = time.Now()
	s.publish(persistCtx, final)

	s.metrics.ScanFinished(string(sc.Status), sc.ResultCount)

	s.logger.Info(
		"scan finished",
		zap.String("scan_id", sc.ID.String()),
		zap.String("status", string(sc.Status)),
		zap.Int("results", sc.ResultCount),
		zap.Int("clearance", sc.ClearanceCount),
		zap.Int("failed_stores", out.FailedStores),
	)

	return &sc
}

func (s *service) publish(ctx context.Context, p scan.Progress) {
	if err := s.progress.Publish(ctx, p); err != nil {
		s.logger.Warn(
			"failed to publish scan progress",
			zap.String("scan_id", p.ScanID.String()),
			zap.Error(err),
		)
	}
}

// Get returns a scan owned by userID. Scans of other users are reported as not found.
func (s *service) Get(ctx context.Context, userID int, id uuid.UUID) (*scan.Scan, error) {
	sc, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scandb.ErrScanNotFound) {
			return nil, apperror.ErrNotFound
		}

		s.logger.Error("unexpected error when fetching scan", zap.Error(err))

		return nil, err
	}

	if sc.UserID != userID {
		return nil, apperror.ErrNotFound
	}

	return sc, nil
}

// GetProgress returns the latest snapshot. Once the snapshot has expired it is
// rebuilt from the scan record.
func (s *service) GetProgress(ctx context.Context, userID int, id uuid.UUID) (*scan.Progress, error) {
	sc, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	p, err := s.progress.Get(ctx, id)
	if err == nil {
		return p, nil
	}

	if !errors.Is(err, progress.ErrProgressNotFound) {
		s.logger.Warn("failed to read scan progress", zap.String("scan_id", id.String()), zap.Error(err))
	}

	snapshot := &scan.Progress{
		ScanID:      sc.ID,
		Status:      sc.Status,
		TotalStores: sc.StoreCount,
		UpdatedAt:   sc.CreatedAt,
	}
	if sc.Status.IsTerminal() {
		snapshot.StoreIndex = sc.StoreCount
		snapshot.ItemsScraped = sc.ResultCount
		snapshot.ClearanceFound = sc.ClearanceCount
		if sc.FinishedAt != nil {
			snapshot.UpdatedAt = *sc.FinishedAt
		}
	}

	return snapshot, nil
}

// GetResults filters, sorts and paginates the stored listings of a scan.
func (s *service) GetResults(ctx context.Context, userID int, id uuid.UUID, q ResultsQuery) (*results.Page, error) {
	if err := q.Filter.Validate(); err != nil {
		return nil, err
	}

	sc, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repository.GetResults(ctx, id)
	if err != nil {
		s.logger.Error("unexpected error when fetching scan results", zap.Error(err))

		return nil, err
	}

	sortBy := sc.SortBy
	if q.SortBy != "" {
		sortBy = q.SortBy
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = s.cfg.PageSize
	}

	page := results.Paginate(results.Process(items, results.NewCriteria(q.Filter), sortBy), q.Page, pageSize)

	return &page, nil
}

// Cancel stops a running scan between stores. Listings gathered so far are kept
// and the scan ends as failed.
func (s *service) Cancel(ctx context.Context, userID int, id uuid.UUID) error {
	sc, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if sc.Status.IsTerminal() {
		return ErrScanFinished
	}

	s.mu.Lock()
	cancel, ok := s.running[id]
	s.mu.Unlock()

	if ok {
		cancel()
		s.logger.Info("scan cancellation requested", zap.String("scan_id", id.String()))
		return nil
	}

	// not running in this process, e.g. left over from a restart
	sc.Status = scan.StatusFailed
	sc.Error = reasonCancelled
	if err := s.repository.Finish(ctx, sc); err != nil {
		if errors.Is(err, scandb.ErrScanNotFound) {
			return ErrScanFinished
		}

		s.logger.Error("unexpected error when cancelling scan", zap.Error(err))

		return err
	}

	s.publish(ctx, scan.Progress{
		ScanID:         sc.ID,
		Status:         scan.StatusFailed,
		TotalStores:    sc.StoreCount,
		ItemsScraped:   sc.ResultCount,
		ClearanceFound: sc.ClearanceCount,
		UpdatedAt:      time.Now(),
	})

	return nil
}
