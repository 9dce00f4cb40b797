package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/noa-park/backoffice/internal/infra/pgutils"
	"github.com/noa-park/backoffice/internal/repos/sales"
)

var _ sales.Journal = (*salesRepo)(nil)

type salesRepo struct{ db *sql.DB }

func New(db *sql.DB) *salesRepo {
	return &salesRepo{db: db}
}

// Insert writes the sale row and its items in one transaction; a sale
// without its items is never observable.
func (r *salesRepo) Insert(ctx context.Context, sale sales.Sale) error {
	err := pgutils.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO sales (
				id, customer_id, discount_kind, discount_value,
				subtotal, discount_amount, net_amount, tax, total, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			sale.ID, sale.CustomerID, sale.DiscountKind, sale.DiscountValue,
			sale.Subtotal, sale.DiscountAmount, sale.NetAmount, sale.Tax, sale.Total,
			sale.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return sales.ErrDuplicateSale
			}

			return fmt.Errorf("insert sale: %w", err)
		}

		for _, it := range sale.Items {
			_, err = tx.Exec(`
				INSERT INTO sale_items (sale_id, game_id, name, unit_price, quantity)
				VALUES ($1, $2, $3, $4, $5)
			`, sale.ID, it.GameID, it.Name, it.UnitPrice, it.Quantity)
			if err != nil {
				return fmt.Errorf("insert sale item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, sales.ErrDuplicateSale) {
			return sales.ErrDuplicateSale
		}

		return fmt.Errorf("insert: %w", err)
	}

	return nil
}

func (r *salesRepo) ListPending(ctx context.Context) ([]sales.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, discount_kind, discount_value,
		       subtotal, discount_amount, net_amount, tax, total, created_at
		FROM sales
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var out []sales.Sale

	for rows.Next() {
		var s sales.Sale

		err = rows.Scan(
			&s.ID, &s.CustomerID, &s.DiscountKind, &s.DiscountValue,
			&s.Subtotal, &s.DiscountAmount, &s.NetAmount, &s.Tax, &s.Total,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}

		out = append(out, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	for i := range out {
		out[i].Items, err = r.listItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *salesRepo) listItems(ctx context.Context, saleID string) ([]sales.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT game_id, name, unit_price, quantity
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY game_id
	`, saleID)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	var items []sales.Item

	for rows.Next() {
		var it sales.Item

		err = rows.Scan(&it.GameID, &it.Name, &it.UnitPrice, &it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}

		items = append(items, it)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}

	return items, nil
}

// Delete removes the sale; items go with it via the cascading FK.
func (r *salesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if n == 0 {
		return sales.ErrSaleNotFound
	}

	return nil
}
