package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/product-store/internal/models"
)

const queryTimeout = 3 * time.Second

// PostgresProductRepository stores products in the products table.
type PostgresProductRepository struct {
	db *sqlx.DB
}

// NewPostgresProductRepository creates a repository backed by db.
func NewPostgresProductRepository(db *sqlx.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

var insertProductQuery = `INSERT INTO products (productName, quantity) VALUES ($1, $2) RETURNING productId`

// Insert stores p and returns it with the ID assigned by the database.
func (r *PostgresProductRepository) Insert(ctx context.Context, p models.Product) (models.Product, error) {
	if p.Quantity < 0 || p.Quantity > models.MaxQuantity {
		return models.Product{}, ErrInvalidQuantity
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.QueryRowxContext(ctx, insertProductQuery, p.Name, p.Quantity).Scan(&p.ID); err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

var (
	deleteByNameQuery   = `DELETE FROM products WHERE productName = $1`
	deleteByPrefixQuery = `DELETE FROM products WHERE productName ILIKE $1 ESCAPE '\'`
)

// Delete removes every product matching m and reports how many were removed.
func (r *PostgresProductRepository) Delete(ctx context.Context, m NameMatch) (int, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, arg := deleteByNameQuery, m.Name
	if m.Prefix {
		query, arg = deleteByPrefixQuery, likePrefix(m.Name)
	}

	res, err := r.db.ExecContext(ctx, query, arg)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return int(n), nil
}

var findByPrefixQuery = `SELECT productId, productName, quantity FROM products WHERE productName ILIKE $1 ESCAPE '\' ORDER BY productId`

// FindByNamePrefix returns products whose name starts with prefix, ignoring case.
func (r *PostgresProductRepository) FindByNamePrefix(ctx context.Context, prefix string) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, findByPrefixQuery, likePrefix(prefix)); err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

var getAllQuery = `SELECT productId, productName, quantity FROM products ORDER BY productId`

// GetAll retrieves all products ordered by ID.
func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, getAllQuery); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

var statsQuery = `
	SELECT
		COUNT(*) AS total_products,
		COALESCE(SUM(quantity), 0) AS total_quantity,
		COUNT(*) FILTER (WHERE quantity = 0) AS out_of_stock
	FROM products`

// Stats summarizes the products table.
func (r *PostgresProductRepository) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s Stats
	if err := r.db.GetContext(ctx, &s, statsQuery); err != nil {
		return Stats{}, fmt.Errorf("product stats: %w", err)
	}
	return s, nil
}
