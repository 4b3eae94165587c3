package scandb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xw1nchester/dealscan-backend/internal/logging"
	"github.com/xw1nchester/dealscan-backend/internal/price"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"github.com/xw1nchester/dealscan-backend/pkg/transactor/postgresql"
	"go.uber.org/zap"
)

const scanColumns = `
	id, user_id, store_id, retailer, zip_code, sort_by, status,
	result_count, clearance_count, store_count, error_message, created_at, finished_at
`

var resultColumns = []string{
	"id", "scan_id", "position", "product_name", "sku",
	"original_price", "clearance_price", "savings_percent",
	"is_on_clearance", "is_price_suppressed", "category", "store_location", "product_url",
}

type repository struct {
	client *pgxpool.Pool
	logger *zap.Logger
}

func New(client *pgxpool.Pool, logger *zap.Logger) *repository {
	return &repository{
		client: client,
		logger: logger,
	}
}

func (r *repository) executor(ctx context.Context) postgresql.Executor {
	return postgresql.GetExecutor(ctx, r.client)
}

func (r *repository) Create(ctx context.Context, s *scan.Scan) error {
	sql := `
		INSERT INTO scans (id, user_id, store_id, retailer, zip_code, sort_by, status, store_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	logging.LogSQLQuery(r.logger, sql)

	return r.executor(ctx).QueryRow(
		ctx,
		sql,
		s.ID,
		s.UserID,
		s.StoreID,
		s.Retailer,
		s.ZipCode,
		s.SortBy,
		s.Status,
		s.StoreCount,
	).Scan(&s.CreatedAt)
}

// UpdateStatus moves a scan that is not yet terminal to status.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status scan.Status) error {
	sql := `
		UPDATE scans
		SET status = $2
		WHERE id = $1 AND status NOT IN ('completed', 'failed')
	`

	logging.LogSQLQuery(r.logger, sql)

	tag, err := r.executor(ctx).Exec(ctx, sql, id, status)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrScanNotFound
	}

	return nil
}

// Finish writes the terminal state of a scan. A scan that is already terminal is
// left untouched.
func (r *repository) Finish(ctx context.Context, s *scan.Scan) error {
	sql := `
		UPDATE scans
		SET status = $2,
			result_count = $3,
			clearance_count = $4,
			error_message = $5,
			finished_at = now()
		WHERE id = $1 AND status NOT IN ('completed', 'failed')
		RETURNING finished_at
	`

	logging.LogSQLQuery(r.logger, sql)

	err := r.executor(ctx).QueryRow(
		ctx,
		sql,
		s.ID,
		s.Status,
		s.ResultCount,
		s.ClearanceCount,
		s.Error,
	).Scan(&s.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrScanNotFound
	}

	return err
}

func (r *repository) SaveResults(ctx context.Context, scanID uuid.UUID, items []scan.Result) error {
	if len(items) == 0 {
		return nil
	}

	r.logger.Debug("COPY scan_results", zap.String("scan_id", scanID.String()), zap.Int("rows", len(items)))

	n, err := r.executor(ctx).CopyFrom(
		ctx,
		pgx.Identifier{"scan_results"},
		resultColumns,
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			item := items[i]
			return []any{
				item.ID,
				scanID,
				i,
				item.ProductName,
				item.SKU,
				moneyValue(item.OriginalPrice),
				moneyValue(item.ClearancePrice),
				percentValue(item.SavingsPercent),
				item.IsOnClearance,
				item.IsPriceSuppressed,
				item.Category,
				item.StoreLocation,
				item.ProductURL,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to save scan results: %w", err)
	}

	if int(n) != len(items) {
		return fmt.Errorf("saved %d of %d scan results", n, len(items))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*scan.Scan, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM scans
		WHERE id = $1
	`, scanColumns)

	logging.LogSQLQuery(r.logger, sql)

	var s scan.Scan
	if err := r.executor(ctx).QueryRow(ctx, sql, id).Scan(
		&s.ID,
		&s.UserID,
		&s.StoreID,
		&s.Retailer,
		&s.ZipCode,
		&s.SortBy,
		&s.Status,
		&s.ResultCount,
		&s.ClearanceCount,
		&s.StoreCount,
		&s.Error,
		&s.CreatedAt,
		&s.FinishedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScanNotFound
		}
		return nil, err
	}

	return &s, nil
}

// GetResults returns the listings of a scan in the order they were fetched.
func (r *repository) GetResults(ctx context.Context, scanID uuid.UUID) ([]scan.Result, error) {
	sql := `
		SELECT id, scan_id, product_name, sku, original_price, clearance_price, savings_percent,
			is_on_clearance, is_price_suppressed, category, store_location, product_url
		FROM scan_results
		WHERE scan_id = $1
		ORDER BY position
	`

	logging.LogSQLQuery(r.logger, sql)

	rows, err := r.executor(ctx).Query(ctx, sql, scanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]scan.Result, 0)

	for rows.Next() {
		var (
			item                scan.Result
			original, clearance *int64
			savings             *float64
		)

		if err := rows.Scan(
			&item.ID,
			&item.ScanID,
			&item.ProductName,
			&item.SKU,
			&original,
			&clearance,
			&savings,
			&item.IsOnClearance,
			&item.IsPriceSuppressed,
			&item.Category,
			&item.StoreLocation,
			&item.ProductURL,
		); err != nil {
			return nil, err
		}

		item.OriginalPrice = moneyPtr(original)
		item.ClearancePrice = moneyPtr(clearance)
		if savings != nil {
			p := price.Percent(*savings)
			item.SavingsPercent = &p
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func moneyValue(m *price.Money) *int64 {
	if m == nil {
		return nil
	}
	v := int64(*m)
	return &v
}

func moneyPtr(v *int64) *price.Money {
	if v == nil {
		return nil
	}
	m := price.Money(*v)
	return &m
}

func percentValue(p *price.Percent) *float64 {
	if p == nil {
		return nil
	}
	v := float64(*p)
	return &v
}
