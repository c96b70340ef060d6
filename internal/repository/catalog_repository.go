package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-state/internal/domain"
	"github.com/nikolayk812/storefront-state/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	listProductsSQL = `SELECT id, name, price::text, currency, emoji FROM products ORDER BY position, id`

	upsertProductSQL = `INSERT INTO products (id, name, price, currency, emoji, position)
VALUES ($1, $2, $3::numeric, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, price = EXCLUDED.price, currency = EXCLUDED.currency,
    emoji = EXCLUDED.emoji, position = EXCLUDED.position`
)

// querier is the subset of *pgxpool.Pool and pgx.Tx the repository needs.
type querier interface {
	txBeginner
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type catalogRepository struct {
	db       querier
	currency currency.Unit
}

type productRow struct {
	ID       string
	Name     string
	Price    string
	Currency string
	Emoji    string
}

// NewCatalog returns a repository writing prices in unit.
func NewCatalog(pool *pgxpool.Pool, unit currency.Unit) port.CatalogRepository {
	return &catalogRepository{
		db:       pool,
		currency: unit,
	}
}

func NewCatalogWithTx(tx pgx.Tx, unit currency.Unit) port.CatalogRepository {
	return &catalogRepository{
		db:       tx,
		currency: unit,
	}
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}

	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[productRow])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	products, err := r.mapProductRowsToDomain(dbRows)
	if err != nil {
		return nil, fmt.Errorf("mapProductRowsToDomain: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) UpsertProducts(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return fmt.Errorf("products are empty")
	}

	_, err := withTx(ctx, r.db, func(tx pgx.Tx) (struct{}, error) {
		for i, p := range products {
			if p.ID == "" {
				return struct{}{}, fmt.Errorf("product[%d]: id is empty", i)
			}

			_, err := tx.Exec(ctx, upsertProductSQL, p.ID, p.Name, p.Price.String(), r.currency.String(), p.Emoji, i)
			if err != nil {
				return struct{}{}, fmt.Errorf("tx.Exec[%s]: %w", p.ID, err)
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *catalogRepository) mapProductRowToDomain(row productRow) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}
	if parsedCurrency != r.currency {
		return domain.Product{}, fmt.Errorf("product[%s] currency[%s] does not match store currency[%s]", row.ID, parsedCurrency, r.currency)
	}

	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price[%s] is not valid: %w", row.Price, err)
	}

	return domain.Product{
		ID:    row.ID,
		Name:  row.Name,
		Price: price,
		Emoji: row.Emoji,
	}, nil
}

func (r *catalogRepository) mapProductRowsToDomain(rows []productRow) ([]domain.Product, error) {
	var products []domain.Product

	for _, row := range rows {
		product, err := r.mapProductRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductRowToDomain: %w", err)
		}

		products = append(products, product)
	}

	return products, nil
}
