package scanhandler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xw1nchester/dealscan-backend/internal/apperror"
	jwtauth "github.com/xw1nchester/dealscan-backend/internal/auth/jwt"
	"github.com/xw1nchester/dealscan-backend/internal/handlers"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"github.com/xw1nchester/dealscan-backend/internal/scan/results"
	scanservice "github.com/xw1nchester/dealscan-backend/internal/scan/service"
	"github.com/xw1nchester/dealscan-backend/pkg/types"
	"go.uber.org/zap"
)

var validate = validator.New()

var (
	ErrInvalidScanID = apperror.NewAppError("invalid scan id")
	ErrInvalidQuery  = apperror.NewAppError("invalid query parameter")
)

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mockscanhandler
type Service interface {
	Start(ctx context.Context, userID int, tier string, req scan.Request) (*scan.Scan, error)
	Get(ctx context.Context, userID int, id uuid.UUID) (*scan.Scan, error)
	GetProgress(ctx context.Context, userID int, id uuid.UUID) (*scan.Progress, error)
	GetResults(ctx context.Context, userID int, id uuid.UUID, q scanservice.ResultsQuery) (*results.Page, error)
	Cancel(ctx context.Context, userID int, id uuid.UUID) error
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
	router.Route("/scans", func(scanRouter chi.Router) {
		scanRouter.Use(h.authMiddleware)

		scanRouter.Post("/", apperror.Middleware(h.startScanHandler))

		scanRouter.Route("/{id}", func(r chi.Router) {
			r.Get("/", apperror.Middleware(h.getScanHandler))
			r.Get("/progress", apperror.Middleware(h.getProgressHandler))
			r.Get("/results", apperror.Middleware(h.getResultsHandler))
			r.Post("/cancel", apperror.Middleware(h.cancelScanHandler))
		})
	})
}

func scanID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, ErrInvalidScanID
	}
	return id, nil
}

// @Tags		scans
// @Security	BearerAuth
// @Param		request	body		scan.Request	true	"request body"
// @Success	202		{object}	scan.Scan
// @Failure	400,401,404,500	{object}	apperror.AppError
// @Router		/scans [post]
func (h *handler) startScanHandler(w http.ResponseWriter, r *http.Request) error {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		return apperror.ErrUnauthorized
	}

	var dto scan.Request
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		h.logger.Warn(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	started, err := h.service.Start(r.Context(), claims.UserID, claims.Tier, dto)
	if err != nil {
		return err
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, started)

	return nil
}

// @Tags		scans
// @Security	BearerAuth
// @Param		id	path		string	true	"scan id"
// @Success	200	{object}	scan.Scan
// @Failure	400,401,404,500	{object}	apperror.AppError
// @Router		/scans/{id} [get]
func (h *handler) getScanHandler(w http.ResponseWriter, r *http.Request) error {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		return apperror.ErrUnauthorized
	}

	id, err := scanID(r)
	if err != nil {
		return err
	}

	sc, err := h.service.Get(r.Context(), claims.UserID, id)
	if err != nil {
		return err
	}

	render.JSON(w, r, sc)

	return nil
}

// @Tags		scans
// @Security	BearerAuth
// @Param		id	path		string	true	"scan id"
// @Success	200	{object}	scan.Progress
// @Failure	400,401,404,500	{object}	apperror.AppError
// @Router		/scans/{id}/progress [get]
func (h *handler) getProgressHandler(w http.ResponseWriter, r *http.Request) error {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		return apperror.ErrUnauthorized
	}

	id, err := scanID(r)
	if err != nil {
		return err
	}

	p, err := h.service.GetProgress(r.Context(), claims.UserID, id)
	if err != nil {
		return err
	}

	render.JSON(w, r, p)

	return nil
}

// @Tags		scans
// @Security	BearerAuth
// @Param		id						path		string	true	"scan id"
// @Param		sortBy					query		string	false	"ordering"
// @Param		page					query		int		false	"1-based page"
// @Param		pageSize				query		int		false	"page size"
// @Param		category				query		string	false	"category"
// @Param		clearanceOnly			query		bool	false	"clearance only"
// @Param		minimumDiscountPercent	query		string	false	"minimum discount, e.g. 50"
// @Param		minimumDollarsOff		query		string	false	"minimum dollars off"
// @Param		minPrice				query		string	false	"minimum clearance price"
// @Param		maxPrice				query		string	false	"maximum clearance price"
// @Param		search					query		string	false	"free text"
// @Success	200	{object}	ResultsPageResponse
// @Failure	400,401,404,500	{object}	apperror.AppError
// @Router		/scans/{id}/results [get]
func (h *handler) getResultsHandler(w http.ResponseWriter, r *http.Request) error {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		return apperror.ErrUnauthorized
	}

	id, err := scanID(r)
	if err != nil {
		return err
	}

	q, err := parseResultsQuery(r.URL.Query())
	if err != nil {
		return err
	}

	page, err := h.service.GetResults(r.Context(), claims.UserID, id, q)
	if err != nil {
		return err
	}

	render.JSON(w, r, NewResultsPageResponse(*page))

	return nil
}

// @Tags		scans
// @Security	BearerAuth
// @Param		id	path	string	true	"scan id"
// @Success	202
// @Failure	400,401,404,500	{object}	apperror.AppError
// @Router		/scans/{id}/cancel [post]
func (h *handler) cancelScanHandler(w http.ResponseWriter, r *http.Request) error {
	claims, ok := jwtauth.FromContext(r.Context())
	if !ok {
		return apperror.ErrUnauthorized
	}

	id, err := scanID(r)
	if err != nil {
		return err
	}

	if err := h.service.Cancel(r.Context(), claims.UserID, id); err != nil {
		return err
	}

	w.WriteHeader(http.StatusAccepted)

	return nil
}

func parseResultsQuery(values url.Values) (scanservice.ResultsQuery, error) {
	dto := ResultsQuery{SortBy: scan.SortBy(values.Get("sortBy"))}

	var err error
	if dto.Page, err = optionalInt(values.Get("page")); err != nil {
		return scanservice.ResultsQuery{}, ErrInvalidQuery
	}
	if dto.PageSize, err = optionalInt(values.Get("pageSize")); err != nil {
		return scanservice.ResultsQuery{}, ErrInvalidQuery
	}

	if err := validate.Struct(dto); err != nil {
		return scanservice.ResultsQuery{}, apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	filter := scan.Filter{
		Category:               values.Get("category"),
		MinimumDiscountPercent: types.NumericString(values.Get("minimumDiscountPercent")),
		MinimumDollarsOff:      types.NumericString(values.Get("minimumDollarsOff")),
		MinPrice:               types.NumericString(values.Get("minPrice")),
		MaxPrice:               types.NumericString(values.Get("maxPrice")),
		Search:                 values.Get("search"),
	}
	if v := values.Get("clearanceOnly"); v != "" {
		if filter.ClearanceOnly, err = strconv.ParseBool(v); err != nil {
			return scanservice.ResultsQuery{}, ErrInvalidQuery
		}
	}

	return scanservice.ResultsQuery{
		Filter:   filter,
		SortBy:   dto.SortBy,
		Page:     dto.Page,
		PageSize: dto.PageSize,
	}, nil
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
