package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user (2FA disabled so they are prompted to set it up on first
// login) and the standard SMS notification templates.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@bonik.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Default SMS templates, one per customer-facing order status.
	templates := []struct {
		status string
		body   string
	}{
		{"pending", "Dear {{name}}, your order {{order_number}} of Tk {{total}} has been received. We will confirm it shortly."},
		{"confirmed", "Dear {{name}}, your order {{order_number}} has been confirmed and is being prepared."},
		{"shipped", "Dear {{name}}, your order {{order_number}} has been shipped. Tracking: {{tracking_number}}"},
		{"delivered", "Dear {{name}}, your order {{order_number}} has been delivered. Thank you for shopping with us!"},
		{"cancelled", "Dear {{name}}, your order {{order_number}} has been cancelled. Contact us if this is unexpected."},
	}
	for _, t := range templates {
		_, err = db.Exec(`
			INSERT INTO sms_templates (status, body, is_enabled)
			VALUES ($1, $2, TRUE)
			ON CONFLICT (status) DO NOTHING
		`, t.status, t.body)
		if err != nil {
			return fmt.Errorf("seed sms template %s: %w", t.status, err)
		}
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@bonik.local",
		"password", "admin",
	)

	return nil
}
