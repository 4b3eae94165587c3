package storeservice

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/xw1nchester/dealscan-backend/internal/apperror"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	storedb "github.com/xw1nchester/dealscan-backend/internal/market/store/db"
	"github.com/xw1nchester/dealscan-backend/internal/subscription"
	"go.uber.org/zap"
)

const metersPerMile = 1609.344

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mockstoreservice
type Repository interface {
	GetActiveStores(ctx context.Context, retailer string) ([]store.Location, error)
	GetByID(ctx context.Context, id int) (*store.Location, error)
}

type service struct {
	repository Repository
	logger     *zap.Logger
}

func New(repository Repository, logger *zap.Logger) *service {
	return &service{
		repository: repository,
		logger:     logger,
	}
}

func (s *service) GetByID(ctx context.Context, id int) (*store.Location, error) {
	location, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storedb.ErrStoreNotFound) {
			return nil, apperror.ErrNotFound
		}

		s.logger.Error("unexpected error when fetching store by id", zap.Error(err))

		return nil, err
	}

	return location, nil
}

// SelectCandidates narrows the active stores of a retailer down to the ones the user's
// plan allows: nearest first when coordinates are known, same state otherwise, truncated
// to the plan's store limit. No candidates is not an error.
func (s *service) SelectCandidates(ctx context.Context, q store.CandidateQuery) ([]store.Location, error) {
	entitlement := subscription.EntitlementFor(q.Tier)

	stores, err := s.repository.GetActiveStores(ctx, q.Retailer)
	if err != nil {
		s.logger.Error("unexpected error when fetching active stores", zap.Error(err))

		return nil, err
	}

	active := make([]store.Location, 0, len(stores))
	for _, l := range stores {
		if !l.IsActive {
			continue
		}
		if q.Retailer != "" && !strings.EqualFold(l.Retailer, q.Retailer) {
			continue
		}
		active = append(active, l)
	}

	radius := entitlement.RadiusMiles
	if q.RadiusMiles > 0 && q.RadiusMiles < radius {
		radius = q.RadiusMiles
	}

	var candidates []store.Location
	if q.Coordinates != nil {
		candidates = nearest(active, *q.Coordinates, radius)
	} else {
		candidates = sameState(active, q.ZipCode)
	}

	if len(candidates) > entitlement.StoreLimit {
		candidates = candidates[:entitlement.StoreLimit]
	}

	s.logger.Debug(
		"selected candidate stores",
		zap.String("zip", q.ZipCode),
		zap.String("tier", q.Tier),
		zap.Int("available", len(active)),
		zap.Int("selected", len(candidates)),
	)

	return candidates, nil
}

func nearest(stores []store.Location, center orb.Point, radiusMiles float64) []store.Location {
	// the bound is padded slightly since orb measures on a larger sphere
	bound := geo.NewBoundAroundPoint(center, radiusMiles*metersPerMile*1.01)

	type ranked struct {
		location store.Location
		miles    float64
	}

	inRange := make([]ranked, 0)
	for _, l := range stores {
		if !bound.Contains(l.Point()) {
			continue
		}

		miles := haversineMiles(center, l.Point())
		if miles > radiusMiles {
			continue
		}

		inRange = append(inRange, ranked{location: l, miles: miles})
	}

	sort.SliceStable(inRange, func(i, j int) bool {
		if inRange[i].miles != inRange[j].miles {
			return inRange[i].miles < inRange[j].miles
		}
		return inRange[i].location.ID < inRange[j].location.ID
	})

	result := make([]store.Location, len(inRange))
	for i, r := range inRange {
		result[i] = r.location
	}

	return result
}

// sameState keeps the stores in the state guessed from the ZIP prefix, or every
// store when the prefix is unknown.
func sameState(stores []store.Location, zip string) []store.Location {
	result := make([]store.Location, 0, len(stores))

	state, ok := store.StateForZip(zip)
	for _, l := range stores {
		if ok && !strings.EqualFold(l.State, state) {
			continue
		}
		result = append(result, l)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}
