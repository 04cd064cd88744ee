package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domproduct "example.com/branch-cart/app/internal/domain/product"
)

// CatalogLoader reads the catalog and branch directory once at startup.
type CatalogLoader struct {
	conn *pgx.Conn
}

func NewCatalogLoader(conn *pgx.Conn) *CatalogLoader {
	return &CatalogLoader{conn: conn}
}

// Connect opens a single connection and checks it.
func Connect(ctx context.Context, dsn string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, err
	}
	return conn, nil
}

func (l *CatalogLoader) LoadProducts(ctx context.Context) ([]domproduct.Product, error) {
	rows, err := l.conn.Query(ctx, `
        SELECT id, name, price::float8, COALESCE(image, '')
        FROM products
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domproduct.Product, error) {
		var p domproduct.Product
		err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image)
		return p, err
	})
}

func (l *CatalogLoader) LoadBranches(ctx context.Context) ([]dombranch.Branch, error) {
	rows, err := l.conn.Query(ctx, `
        SELECT id, name, COALESCE(number, '')
        FROM branches
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (dombranch.Branch, error) {
		var b dombranch.Branch
		err := row.Scan(&b.ID, &b.Name, &b.Number)
		return b, err
	})
}
