package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/domain/catalog"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(conn *Connection) *ProductRepository {
	return &ProductRepository{db: conn.GetDB()}
}

const productColumns = `id, name, description, price, categories, images, stock, featured, created_at, updated_at`

func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter) ([]*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []interface{}
	var clauses []string

	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, `$1 ILIKE ANY(categories)`)
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		if len(args) == 1 {
			clauses = append(clauses, `featured = $1`)
		} else {
			clauses = append(clauses, `featured = $2`)
		}
	}
	for i, clause := range clauses {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "products", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "products", query, id)
	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, categories, images, stock, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "products", query,
		p.ID, p.Name, p.Description, p.Price, pq.Array(p.Categories),
		pq.Array(p.Images), p.Stock, p.Featured, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, categories = $5, images = $6,
		    stock = $7, featured = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "products", query,
		p.ID, p.Name, p.Description, p.Price, pq.Array(p.Categories),
		pq.Array(p.Images), p.Stock, p.Featured, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(result, errors.ErrProductNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := monitoring.InstrumentExec(ctx, r.db, "DELETE", "products",
		`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, errors.ErrProductNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var p catalog.Product
	var categories, images pq.StringArray

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &categories, &images,
		&p.Stock, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Categories = categories
	p.Images = images
	return &p, nil
}

func requireRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
