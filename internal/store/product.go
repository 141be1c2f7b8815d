// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bonik/internal/models"
)

// ProductStore handles all product catalog database operations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productCols = `id, name, slug, description, price, original_price, category_id,
       stock, images, tags, is_featured, is_new, is_active,
       features, composition, care_instructions, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	var images, tags []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.OriginalPrice,
		&p.CategoryID, &p.Stock, &images, &tags, &p.IsFeatured, &p.IsNew,
		&p.IsActive, &p.Features, &p.Composition, &p.CareInstructions,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := scanJSONB(images, &p.Images); err != nil {
		return nil, err
	}
	if err := scanJSONB(tags, &p.Tags); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductFilter narrows List results. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID   *uuid.UUID
	Search       string
	ActiveOnly   bool
	FeaturedOnly bool
	NewOnly      bool
	Limit        int
	Offset       int
}

// List returns catalog products matching the filter, newest first.
func (s *ProductStore) List(f ProductFilter) ([]models.Product, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if f.FeaturedOnly {
		where = append(where, "is_featured = TRUE")
	}
	if f.NewOnly {
		where = append(where, "is_new = TRUE")
	}
	if f.CategoryID != nil {
		where = append(where, "category_id = "+arg(*f.CategoryID))
	}
	if f.Search != "" {
		where = append(where, "name ILIKE "+arg("%"+f.Search+"%"))
	}

	query := "SELECT " + productCols + " FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// FindByID retrieves a product by its UUID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(
		"SELECT "+productCols+" FROM products WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves an active product by slug. Used by the storefront.
func (s *ProductStore) FindBySlug(slug string) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(
		"SELECT "+productCols+" FROM products WHERE slug = $1 AND is_active = TRUE", slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// FindActiveByIDs returns the active products among ids, keyed by ID.
// Checkout uses this to re-price cart lines from the catalog.
func (s *ProductStore) FindActiveByIDs(ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	found := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := s.db.Query(
		"SELECT "+productCols+" FROM products WHERE is_active = TRUE AND id IN ("+strings.Join(placeholders, ", ")+")",
		args...)
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		found[p.ID] = *p
	}
	return found, rows.Err()
}

// SlugExists reports whether any product already uses the given slug.
func (s *ProductStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new product and returns it with the generated ID.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	images, err := jsonb(p.Images)
	if err != nil {
		return nil, err
	}
	tags, err := jsonb(p.Tags)
	if err != nil {
		return nil, err
	}

	result, err := scanProduct(s.db.QueryRow(`
		INSERT INTO products (name, slug, description, price, original_price, category_id,
		                      stock, images, tags, is_featured, is_new, is_active,
		                      features, composition, care_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+productCols,
		p.Name, p.Slug, p.Description, p.Price, p.OriginalPrice, p.CategoryID,
		p.Stock, images, tags, p.IsFeatured, p.IsNew, p.IsActive,
		p.Features, p.Composition, p.CareInstructions,
	))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return result, nil
}

// Update modifies an existing product.
func (s *ProductStore) Update(p *models.Product) error {
	images, err := jsonb(p.Images)
	if err != nil {
		return err
	}
	tags, err := jsonb(p.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE products SET
			name = $1, slug = $2, description = $3, price = $4, original_price = $5,
			category_id = $6, stock = $7, images = $8, tags = $9,
			is_featured = $10, is_new = $11, is_active = $12,
			features = $13, composition = $14, care_instructions = $15,
			updated_at = NOW()
		WHERE id = $16
	`, p.Name, p.Slug, p.Description, p.Price, p.OriginalPrice,
		p.CategoryID, p.Stock, images, tags,
		p.IsFeatured, p.IsNew, p.IsActive,
		p.Features, p.Composition, p.CareInstructions, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product by ID. Order items keep their snapshot and
// just lose the reference.
func (s *ProductStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Count returns the total number of products.
func (s *ProductStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// DecrementStock reduces stock for a product, flooring at zero.
func (s *ProductStore) DecrementStock(id uuid.UUID, qty int) error {
	_, err := s.db.Exec(`
		UPDATE products SET stock = GREATEST(stock - $1, 0), updated_at = NOW() WHERE id = $2
	`, qty, id)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}
