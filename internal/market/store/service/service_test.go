package storeservice

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xw1nchester/dealscan-backend/internal/apperror"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	storedb "github.com/xw1nchester/dealscan-backend/internal/market/store/db"
	mockstoreservice "github.com/xw1nchester/dealscan-backend/internal/market/store/service/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	beverlyHills = orb.Point{-118.4004, 34.0736}

	santaMonica = store.Location{ID: 7, Retailer: "homedepot", Name: "Santa Monica", State: "CA", ZipCode: "90404", Latitude: 34.0195, Longitude: -118.4912, IsActive: true}
	downtownLA  = store.Location{ID: 3, Retailer: "homedepot", Name: "Downtown LA", State: "CA", ZipCode: "90012", Latitude: 34.0522, Longitude: -118.2437, IsActive: true}
	pasadena    = store.Location{ID: 5, Retailer: "homedepot", Name: "Pasadena", State: "CA", ZipCode: "91101", Latitude: 34.1478, Longitude: -118.1445, IsActive: true}
	sanDiego    = store.Location{ID: 2, Retailer: "homedepot", Name: "San Diego", State: "CA", ZipCode: "92101", Latitude: 32.7157, Longitude: -117.1611, IsActive: true}
	closedLA    = store.Location{ID: 1, Retailer: "homedepot", Name: "Closed", State: "CA", ZipCode: "90210", Latitude: 34.0736, Longitude: -118.4004, IsActive: false}
	manhattan   = store.Location{ID: 4, Retailer: "homedepot", Name: "Manhattan", State: "NY", ZipCode: "10001", Latitude: 40.7506, Longitude: -73.9972, IsActive: true}
	dallas      = store.Location{ID: 6, Retailer: "lowes", Name: "Dallas", State: "TX", ZipCode: "75201", Latitude: 32.7767, Longitude: -96.7970, IsActive: true}

	allStores = []store.Location{closedLA, sanDiego, downtownLA, manhattan, pasadena, dallas, santaMonica}

	ErrUnexpected = errors.New("unexpected error")
)

func newService(t *testing.T) (*service, *mockstoreservice.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := mockstoreservice.NewMockRepository(ctrl)

	return New(repo, zap.NewNop()), repo
}

func ids(locations []store.Location) []int {
	result := make([]int, len(locations))
	for i, l := range locations {
		result[i] = l.ID
	}
	return result
}

func TestSelectCandidates(t *testing.T) {
	tests := []struct {
		name        string
		query       store.CandidateQuery
		expectedIDs []int
	}{
		{
			name:        "free tier by zip returns one california store",
			query:       store.CandidateQuery{ZipCode: "90210", Tier: "free"},
			expectedIDs: []int{2},
		},
		{
			name:        "pro tier by zip returns every active california store by id",
			query:       store.CandidateQuery{ZipCode: "90210", Tier: "pro"},
			expectedIDs: []int{2, 3, 5, 7},
		},
		{
			name:        "unknown zip prefix falls back to every active store",
			query:       store.CandidateQuery{ZipCode: "00601", Tier: "business"},
			expectedIDs: []int{2, 3, 4, 5, 6, 7},
		},
		{
			name:        "unknown tier is treated as free",
			query:       store.CandidateQuery{ZipCode: "10001", Tier: "platinum"},
			expectedIDs: []int{4},
		},
		{
			name:        "retailer filter",
			query:       store.CandidateQuery{ZipCode: "00601", Tier: "pro", Retailer: "Lowes"},
			expectedIDs: []int{6},
		},
		{
			name:        "coordinates order by distance within radius",
			query:       store.CandidateQuery{ZipCode: "90210", Tier: "pro", Coordinates: &beverlyHills},
			expectedIDs: []int{7, 3, 5},
		},
		{
			name:        "coordinates truncated to basic limit",
			query:       store.CandidateQuery{ZipCode: "90210", Tier: "basic", Coordinates: &beverlyHills},
			expectedIDs: []int{7, 3},
		},
		{
			name:        "free tier keeps only the nearest store",
			query:       store.CandidateQuery{ZipCode: "90210", Tier: "free", Coordinates: &beverlyHills},
			expectedIDs: []int{7},
		},
		{
			name:        "requested radius narrows the plan radius",
			query:       store.CandidateQuery{ZipCode: "90210", Tier: "pro", Coordinates: &beverlyHills, RadiusMiles: 10},
			expectedIDs: []int{7, 3},
		},
		{
			name:        "requested radius cannot exceed the plan radius",
			query:       store.CandidateQuery{ZipCode: "90210", Tier: "pro", Coordinates: &beverlyHills, RadiusMiles: 500},
			expectedIDs: []int{7, 3, 5},
		},
		{
			name:        "no stores nearby",
			query:       store.CandidateQuery{ZipCode: "59001", Tier: "pro"},
			expectedIDs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService(t)

			ctx := context.Background()
			repo.EXPECT().GetActiveStores(ctx, tt.query.Retailer).Return(allStores, nil)

			candidates, err := service.SelectCandidates(ctx, tt.query)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedIDs, ids(candidates))
			for _, c := range candidates {
				assert.True(t, c.IsActive)
			}
		})
	}
}

func TestSelectCandidates_NeverExceedsEntitlement(t *testing.T) {
	many := make([]store.Location, 0, 60)
	for i := 60; i > 0; i-- {
		many = append(many, store.Location{
			ID:        i,
			State:     "CA",
			Latitude:  34.07 + float64(i)*0.001,
			Longitude: -118.40,
			IsActive:  i%7 != 0,
		})
	}

	limits := map[string]int{"free": 1, "basic": 2, "pro": 10, "premium": 15, "business": 25}

	for tier, limit := range limits {
		for _, coords := range []*orb.Point{nil, &beverlyHills} {
			service, repo := newService(t)
			repo.EXPECT().GetActiveStores(gomock.Any(), "").Return(many, nil)

			candidates, err := service.SelectCandidates(context.Background(), store.CandidateQuery{
				ZipCode:     "90210",
				Tier:        tier,
				Coordinates: coords,
			})

			require.NoError(t, err)
			assert.Len(t, candidates, limit, tier)
			for _, c := range candidates {
				assert.True(t, c.IsActive)
			}
		}
	}
}

func TestSelectCandidates_TiesBrokenByID(t *testing.T) {
	twinA := store.Location{ID: 20, State: "CA", Latitude: 34.0195, Longitude: -118.4912, IsActive: true}
	twinB := store.Location{ID: 10, State: "CA", Latitude: 34.0195, Longitude: -118.4912, IsActive: true}

	service, repo := newService(t)
	repo.EXPECT().GetActiveStores(gomock.Any(), "").Return([]store.Location{twinA, twinB}, nil)

	candidates, err := service.SelectCandidates(context.Background(), store.CandidateQuery{
		ZipCode:     "90210",
		Tier:        "basic",
		Coordinates: &beverlyHills,
	})

	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, ids(candidates))
}

func TestSelectCandidates_RepositoryError(t *testing.T) {
	service, repo := newService(t)
	repo.EXPECT().GetActiveStores(gomock.Any(), "").Return(nil, ErrUnexpected)

	candidates, err := service.SelectCandidates(context.Background(), store.CandidateQuery{ZipCode: "90210"})

	require.ErrorIs(t, err, ErrUnexpected)
	assert.Nil(t, candidates)
}

func TestGetByID(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, 3).Return(&downtownLA, nil)
	repo.EXPECT().GetByID(ctx, 99).Return(nil, storedb.ErrStoreNotFound)

	location, err := service.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Downtown LA", location.Name)

	_, err = service.GetByID(ctx, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestHaversineMiles(t *testing.T) {
	miles := haversineMiles(beverlyHills, sanDiego.Point())

	assert.InDelta(t, 118, miles, 2)
	assert.InDelta(t, 0, haversineMiles(beverlyHills, beverlyHills), 1e-9)
}
