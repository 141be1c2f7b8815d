// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bonik/internal/models"
)

// LandingPageStore handles landing page database operations. The
// sections, rows, and theme columns are JSONB and round-trip through
// the builder package's codecs.
type LandingPageStore struct {
	db *sql.DB
}

// NewLandingPageStore creates a new LandingPageStore with the given database connection.
func NewLandingPageStore(db *sql.DB) *LandingPageStore {
	return &LandingPageStore{db: db}
}

const landingPageCols = `id, title, slug, product_ids, sections, rows, theme_settings,
       custom_css, is_published, is_active, created_at, updated_at`

func scanLandingPage(row interface{ Scan(...any) error }) (*models.LandingPage, error) {
	p := &models.LandingPage{}
	var productIDs, sections, pageRows, theme []byte
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &productIDs, &sections, &pageRows, &theme,
		&p.CustomCSS, &p.IsPublished, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := scanJSONB(productIDs, &p.ProductIDs); err != nil {
		return nil, err
	}
	if err := scanJSONB(sections, &p.Sections); err != nil {
		return nil, err
	}
	if err := scanJSONB(pageRows, &p.Rows); err != nil {
		return nil, err
	}
	if err := scanJSONB(theme, &p.Theme); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *LandingPageStore) encode(p *models.LandingPage) (productIDs, sections, pageRows, theme []byte, err error) {
	ids := p.ProductIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	if productIDs, err = jsonb(ids); err != nil {
		return
	}
	if p.Sections == nil {
		sections = []byte("[]")
	} else if sections, err = jsonb(p.Sections); err != nil {
		return
	}
	if p.Rows == nil {
		pageRows = []byte("[]")
	} else if pageRows, err = jsonb(p.Rows); err != nil {
		return
	}
	theme, err = jsonb(p.Theme)
	return
}

// List returns all landing pages, newest first.
func (s *LandingPageStore) List() ([]models.LandingPage, error) {
	rows, err := s.db.Query("SELECT " + landingPageCols + " FROM landing_pages ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list landing pages: %w", err)
	}
	defer rows.Close()

	var pages []models.LandingPage
	for rows.Next() {
		p, err := scanLandingPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan landing page: %w", err)
		}
		pages = append(pages, *p)
	}
	return pages, rows.Err()
}

// FindByID retrieves a landing page by its UUID. Returns nil if not found.
func (s *LandingPageStore) FindByID(id uuid.UUID) (*models.LandingPage, error) {
	p, err := scanLandingPage(s.db.QueryRow(
		"SELECT "+landingPageCols+" FROM landing_pages WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find landing page by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a landing page by slug regardless of publish
// state; callers decide whether it is servable. Returns nil if not found.
func (s *LandingPageStore) FindBySlug(slug string) (*models.LandingPage, error) {
	p, err := scanLandingPage(s.db.QueryRow(
		"SELECT "+landingPageCols+" FROM landing_pages WHERE slug = $1", slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find landing page by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether any landing page already uses the given slug.
func (s *LandingPageStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM landing_pages WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("landing page slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new landing page and returns it with the generated ID.
func (s *LandingPageStore) Create(p *models.LandingPage) (*models.LandingPage, error) {
	productIDs, sections, pageRows, theme, err := s.encode(p)
	if err != nil {
		return nil, err
	}

	result, err := scanLandingPage(s.db.QueryRow(`
		INSERT INTO landing_pages (title, slug, product_ids, sections, rows, theme_settings,
		                           custom_css, is_published, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+landingPageCols,
		p.Title, p.Slug, productIDs, sections, pageRows, theme,
		p.CustomCSS, p.IsPublished, p.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("create landing page: %w", err)
	}
	return result, nil
}

// Update persists the full landing page, including its builder payloads.
func (s *LandingPageStore) Update(p *models.LandingPage) error {
	productIDs, sections, pageRows, theme, err := s.encode(p)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE landing_pages SET
			title = $1, slug = $2, product_ids = $3, sections = $4, rows = $5,
			theme_settings = $6, custom_css = $7, is_published = $8, is_active = $9,
			updated_at = NOW()
		WHERE id = $10
	`, p.Title, p.Slug, productIDs, sections, pageRows, theme,
		p.CustomCSS, p.IsPublished, p.IsActive, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update landing page: %w", err)
	}
	return nil
}

// Delete removes a landing page by ID.
func (s *LandingPageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM landing_pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete landing page: %w", err)
	}
	return nil
}
