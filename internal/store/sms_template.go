// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"bonik/internal/models"
)

// SMSTemplateStore handles order-notification template database operations.
type SMSTemplateStore struct {
	db *sql.DB
}

// NewSMSTemplateStore creates a new SMSTemplateStore with the given database connection.
func NewSMSTemplateStore(db *sql.DB) *SMSTemplateStore {
	return &SMSTemplateStore{db: db}
}

// List returns all templates ordered by status.
func (s *SMSTemplateStore) List() ([]models.SMSTemplate, error) {
	rows, err := s.db.Query(`
		SELECT id, status, body, is_enabled, updated_at
		FROM sms_templates ORDER BY status ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sms templates: %w", err)
	}
	defer rows.Close()

	var templates []models.SMSTemplate
	for rows.Next() {
		var t models.SMSTemplate
		if err := rows.Scan(&t.ID, &t.Status, &t.Body, &t.IsEnabled, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sms template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// FindByStatus retrieves the template for an order status. Returns nil
// if none is configured.
func (s *SMSTemplateStore) FindByStatus(status models.OrderStatus) (*models.SMSTemplate, error) {
	t := &models.SMSTemplate{}
	err := s.db.QueryRow(`
		SELECT id, status, body, is_enabled, updated_at
		FROM sms_templates WHERE status = $1
	`, status).Scan(&t.ID, &t.Status, &t.Body, &t.IsEnabled, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sms template: %w", err)
	}
	return t, nil
}

// Upsert creates or replaces the template for a status.
func (s *SMSTemplateStore) Upsert(t *models.SMSTemplate) error {
	_, err := s.db.Exec(`
		INSERT INTO sms_templates (status, body, is_enabled, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (status)
		DO UPDATE SET body = EXCLUDED.body, is_enabled = EXCLUDED.is_enabled, updated_at = NOW()
	`, t.Status, t.Body, t.IsEnabled)
	if err != nil {
		return fmt.Errorf("upsert sms template: %w", err)
	}
	return nil
}
