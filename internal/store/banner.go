// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bonik/internal/models"
)

// BannerStore handles homepage banner database operations.
type BannerStore struct {
	db *sql.DB
}

// NewBannerStore creates a new BannerStore with the given database connection.
func NewBannerStore(db *sql.DB) *BannerStore {
	return &BannerStore{db: db}
}

// List returns all banners ordered by sort order.
func (s *BannerStore) List() ([]models.Banner, error) {
	return s.list(false)
}

// ListActive returns only active banners, for the public storefront.
func (s *BannerStore) ListActive() ([]models.Banner, error) {
	return s.list(true)
}

func (s *BannerStore) list(activeOnly bool) ([]models.Banner, error) {
	query := `
		SELECT id, title, subtitle, image_url, link_url, is_active, sort_order, created_at
		FROM banners`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY sort_order ASC, created_at DESC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var banners []models.Banner
	for rows.Next() {
		var b models.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL, &b.IsActive, &b.SortOrder, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

// FindByID retrieves a banner by its UUID. Returns nil if not found.
func (s *BannerStore) FindByID(id uuid.UUID) (*models.Banner, error) {
	b := &models.Banner{}
	err := s.db.QueryRow(`
		SELECT id, title, subtitle, image_url, link_url, is_active, sort_order, created_at
		FROM banners WHERE id = $1
	`, id).Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL, &b.IsActive, &b.SortOrder, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find banner by id: %w", err)
	}
	return b, nil
}

// Create inserts a new banner and returns it with the generated ID.
func (s *BannerStore) Create(b *models.Banner) (*models.Banner, error) {
	result := &models.Banner{}
	err := s.db.QueryRow(`
		INSERT INTO banners (title, subtitle, image_url, link_url, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, subtitle, image_url, link_url, is_active, sort_order, created_at
	`, b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.IsActive, b.SortOrder).Scan(
		&result.ID, &result.Title, &result.Subtitle, &result.ImageURL,
		&result.LinkURL, &result.IsActive, &result.SortOrder, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return result, nil
}

// Update modifies an existing banner.
func (s *BannerStore) Update(b *models.Banner) error {
	_, err := s.db.Exec(`
		UPDATE banners SET title = $1, subtitle = $2, image_url = $3, link_url = $4,
		                   is_active = $5, sort_order = $6
		WHERE id = $7
	`, b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.IsActive, b.SortOrder, b.ID)
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	return nil
}

// Delete removes a banner by ID.
func (s *BannerStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}
