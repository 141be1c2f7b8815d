// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bonik/internal/courier"
	"bonik/internal/models"
	"bonik/internal/store"
)

// Admin groups the back-office handlers that do not belong to a single
// catalog entity: the dashboard, shop settings, staff accounts, and the
// courier configuration endpoints.
type Admin struct {
	orders       *store.OrderStore
	settings     *store.SettingStore
	users        *store.UserStore
	smsTemplates *store.SMSTemplateStore
	couriers     *courier.Registry
	history      *courier.HistoryClient
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(orders *store.OrderStore, settings *store.SettingStore, users *store.UserStore, smsTemplates *store.SMSTemplateStore, couriers *courier.Registry, history *courier.HistoryClient) *Admin {
	return &Admin{
		orders:       orders,
		settings:     settings,
		users:        users,
		smsTemplates: smsTemplates,
		couriers:     couriers,
		history:      history,
	}
}

// Dashboard returns order counts and revenue for the admin home screen.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := a.orders.DashboardStats(time.Now())
	if err != nil {
		slog.Error("dashboard stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetSettings returns every admin setting as a flat key/value map.
func (a *Admin) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.All()
	if err != nil {
		slog.Error("load settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// UpdateSettings upserts the submitted keys in one transaction. Keys
// not present in the request are left untouched.
func (a *Admin) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req) == 0 {
		respondError(w, http.StatusBadRequest, "No settings provided")
		return
	}

	if err := a.settings.SetMany(req); err != nil {
		slog.Error("save settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ListUsers returns all back-office accounts.
func (a *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List()
	if err != nil {
		slog.Error("list users failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

// CreateUser adds a staff or admin account. The new user enrolls in 2FA
// on first login.
func (a *Admin) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
		Role        string `json:"role"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
		return
	}
	role := models.Role(req.Role)
	if role != models.RoleAdmin && role != models.RoleStaff {
		respondError(w, http.StatusBadRequest, "Role must be admin or staff")
		return
	}

	user, err := a.users.Create(req.Email, req.Password, req.DisplayName, role)
	if err != nil {
		slog.Error("create user failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// ResetUser2FA clears a user's TOTP enrollment so they re-enroll on the
// next login.
func (a *Admin) ResetUser2FA(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := a.users.ResetTOTP(id); err != nil {
		slog.Error("reset totp failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to reset 2FA")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// DeleteUser removes a back-office account.
func (a *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := a.users.Delete(id); err != nil {
		slog.Error("delete user failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ListSMSTemplates returns the per-status notification templates.
func (a *Admin) ListSMSTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := a.smsTemplates.List()
	if err != nil {
		slog.Error("list sms templates failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load SMS templates")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// UpsertSMSTemplate saves the message body for one order status. The
// body may use {{name}}, {{order_number}}, {{total}} and
// {{tracking_number}} placeholders.
func (a *Admin) UpsertSMSTemplate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "status")
	if !models.ValidOrderStatus(raw) {
		respondError(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	var req struct {
		Body      string `json:"body"`
		IsEnabled bool   `json:"is_enabled"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Body == "" {
		respondError(w, http.StatusBadRequest, "Template body is required")
		return
	}

	tmpl := &models.SMSTemplate{
		Status:    models.OrderStatus(raw),
		Body:      req.Body,
		IsEnabled: req.IsEnabled,
	}
	if err := a.smsTemplates.Upsert(tmpl); err != nil {
		slog.Error("save sms template failed", "error", err, "status", raw)
		respondError(w, http.StatusInternalServerError, "Failed to save SMS template")
		return
	}
	respondJSON(w, http.StatusOK, tmpl)
}

// ListCouriers returns the configured courier providers and which one
// is active.
func (a *Admin) ListCouriers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"active":    a.couriers.ActiveName(),
		"available": a.couriers.Available(),
	})
}

// SetActiveCourier switches booking to another configured provider.
func (a *Admin) SetActiveCourier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := a.couriers.SetActive(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"active": a.couriers.ActiveName()})
}

// CourierHistory proxies a customer phone number to the BD Courier
// fraud-check service and returns their delivery history.
func (a *Admin) CourierHistory(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		respondError(w, http.StatusBadRequest, "Phone number is required")
		return
	}

	history, err := a.history.Check(r.Context(), phone)
	if err != nil {
		slog.Error("courier history check failed", "error", err, "phone", phone)
		respondError(w, http.StatusBadGateway, "Courier history lookup failed")
		return
	}
	respondJSON(w, http.StatusOK, history)
}
