package storehandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"github.com/xw1nchester/dealscan-backend/internal/apperror"
	jwtauth "github.com/xw1nchester/dealscan-backend/internal/auth/jwt"
	"github.com/xw1nchester/dealscan-backend/internal/handlers"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"github.com/xw1nchester/dealscan-backend/internal/subscription"
	"go.uber.org/zap"
)

var validate = validator.New()

var (
	ErrInvalidStoreID     = apperror.NewAppError("invalid store id")
	ErrInvalidQuery       = apperror.NewAppError("invalid query parameter")
	ErrPartialCoordinates = apperror.NewAppError("lat and lng must be provided together")
)

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mockstorehandler
type Service interface {
	SelectCandidates(ctx context.Context, q store.CandidateQuery) ([]store.Location, error)
	GetByID(ctx context.Context, id int) (*store.Location, error)
}

type handler struct {
	service        Service
	authMiddleware func(http.Handler) http.Handler
	logger         *zap.Logger
}

func New(
	service Service,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) handlers.Handler {
	return &handler{
		service:        service,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Route("/stores", func(storeRouter chi.Router) {
		storeRouter.Get("/{id}", apperror.Middleware(h.getStoreHandler))

		storeRouter.Group(func(privateStoreRouter chi.Router) {
			privateStoreRouter.Use(h.authMiddleware)
			privateStoreRouter.Get("/candidates", apperror.Middleware(h.candidatesHandler))
		})
	})
}

// @Tags		stores
// @Param		id	path		int	true	"store id"
// @Success	200	{object}	store.Location
// @Failure	400,404,500	{object}	apperror.AppError
// @Router		/stores/{id} [get]
func (h *handler) getStoreHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return ErrInvalidStoreID
	}

	location, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		return err
	}

	render.JSON(w, r, location)

	return nil
}

// @Tags		stores
// @Security	BearerAuth
// @Param		zipCode		query		string	true	"5-digit ZIP code"
// @Param		retailer	query		string	false	"retailer"
// @Param		lat			query		number	false	"latitude"
// @Param		lng			query		number	false	"longitude"
// @Param		radius		query		number	false	"radius in miles, capped by the plan"
// @Success	200	{object}	CandidatesResponse
// @Failure	400,401,500	{object}	apperror.AppError
// @Router		/stores/candidates [get]
func (h *handler) candidatesHandler(w http.ResponseWriter, r *http.Request) error {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		return apperror.ErrUnauthorized
	}

	query := r.URL.Query()

	dto := CandidatesRequest{
		ZipCode:  query.Get("zipCode"),
		Retailer: query.Get("retailer"),
	}

	var err error
	if dto.Latitude, err = optionalFloat(query.Get("lat")); err != nil {
		return ErrInvalidQuery
	}
	if dto.Longitude, err = optionalFloat(query.Get("lng")); err != nil {
		return ErrInvalidQuery
	}
	if radius, err := optionalFloat(query.Get("radius")); err != nil {
		return ErrInvalidQuery
	} else if radius != nil {
		dto.RadiusMiles = *radius
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	if (dto.Latitude == nil) != (dto.Longitude == nil) {
		return ErrPartialCoordinates
	}

	q := store.CandidateQuery{
		ZipCode:     dto.ZipCode,
		Tier:        claims.Tier,
		Retailer:    dto.Retailer,
		RadiusMiles: dto.RadiusMiles,
	}
	if dto.Latitude != nil {
		q.Coordinates = &orb.Point{*dto.Longitude, *dto.Latitude}
	}

	stores, err := h.service.SelectCandidates(r.Context(), q)
	if err != nil {
		return err
	}

	render.JSON(w, r, CandidatesResponse{
		Stores:      stores,
		Entitlement: subscription.EntitlementFor(claims.Tier),
	})

	return nil
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
