package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domproduct "example.com/branch-cart/app/internal/domain/product"
)

// CatalogLoader reads the catalog and branch directory once at startup.
type CatalogLoader struct {
	db *sql.DB
}

func NewCatalogLoader(db *sql.DB) *CatalogLoader {
	return &CatalogLoader{db: db}
}

// Open connects with the mysql driver and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (l *CatalogLoader) LoadProducts(ctx context.Context) ([]domproduct.Product, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT id, name, price, COALESCE(image, '')
        FROM products
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domproduct.Product
	for rows.Next() {
		var p domproduct.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (l *CatalogLoader) LoadBranches(ctx context.Context) ([]dombranch.Branch, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT id, name, COALESCE(number, '')
        FROM branches
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []dombranch.Branch
	for rows.Next() {
		var b dombranch.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Number); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}
