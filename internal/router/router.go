// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Bonik shop. It organizes routes into the public storefront API, the
// server-rendered landing pages, and the admin API with its auth stack.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bonik/internal/handlers"
	"bonik/internal/middleware"
	"bonik/internal/session"
)

// Config carries the router's tunables.
type Config struct {
	// SecureCookies marks the CSRF cookie Secure; on in production.
	SecureCookies bool
	// CheckoutLimit caps order placements per IP per window.
	CheckoutLimit int
	// LoginLimit caps login attempts per IP per window.
	LoginLimit int
}

// Handlers bundles every handler group the router mounts.
type Handlers struct {
	Public       *handlers.Public
	Checkout     *handlers.Checkout
	Auth         *handlers.Auth
	Admin        *handlers.Admin
	AdminCatalog *handlers.AdminCatalog
	AdminOrders  *handlers.AdminOrders
	AdminPages   *handlers.AdminLandingPages
	AdminMedia   *handlers.AdminMedia
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessions *session.Store, h Handlers, cfg Config) chi.Router {
	if cfg.CheckoutLimit <= 0 {
		cfg.CheckoutLimit = 10
	}
	if cfg.LoginLimit <= 0 {
		cfg.LoginLimit = 5
	}
	checkoutLimiter := middleware.NewRateLimiter(cfg.CheckoutLimit, time.Minute)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginLimit, time.Minute)
	csrf := middleware.NewCSRF(cfg.SecureCookies)

	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessions))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Landing pages — server-rendered, whole-page cached.
	r.Get("/lp/{slug}", h.Public.LandingPage)

	// Public storefront API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.Public.ListProducts)
		r.Get("/products/{slug}", h.Public.GetProduct)
		r.Get("/categories", h.Public.ListCategories)
		r.Get("/banners", h.Public.ListBanners)
		r.Post("/coupons/validate", h.Public.ValidateCoupon)

		// Order placement takes real money decisions; rate limited.
		r.Group(func(r chi.Router) {
			r.Use(checkoutLimiter.Middleware)
			r.Post("/orders", h.Checkout.PlaceOrder)
		})

		// Browser pixel events, relayed to the Conversions API.
		r.Post("/track", h.Checkout.TrackEvent)

		// Admin API — session auth, completed 2FA, CSRF.
		r.Route("/admin", func(r chi.Router) {
			r.Use(csrf)

			r.Group(func(r chi.Router) {
				r.Use(loginLimiter.Middleware)
				r.Post("/login", h.Auth.Login)
			})
			r.Post("/logout", h.Auth.Logout)

			// 2FA — requires auth but NOT completed 2FA.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/2fa/setup", h.Auth.TwoFASetup)
				r.Post("/2fa/verify", h.Auth.TwoFAVerify)
			})

			// Authenticated + 2FA-verified admin area.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.Require2FA)

				r.Get("/me", h.Auth.Me)
				r.Get("/dashboard", h.Admin.Dashboard)

				r.Route("/products", func(r chi.Router) {
					r.Get("/", h.AdminCatalog.ListProducts)
					r.Post("/", h.AdminCatalog.CreateProduct)
					r.Get("/{id}", h.AdminCatalog.GetProduct)
					r.Put("/{id}", h.AdminCatalog.UpdateProduct)
					r.Delete("/{id}", h.AdminCatalog.DeleteProduct)
				})

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", h.AdminCatalog.ListCategories)
					r.Post("/", h.AdminCatalog.CreateCategory)
					r.Put("/{id}", h.AdminCatalog.UpdateCategory)
					r.Delete("/{id}", h.AdminCatalog.DeleteCategory)
				})

				r.Route("/banners", func(r chi.Router) {
					r.Get("/", h.AdminCatalog.ListBanners)
					r.Post("/", h.AdminCatalog.CreateBanner)
					r.Put("/{id}", h.AdminCatalog.UpdateBanner)
					r.Delete("/{id}", h.AdminCatalog.DeleteBanner)
				})

				r.Route("/coupons", func(r chi.Router) {
					r.Get("/", h.AdminCatalog.ListCoupons)
					r.Post("/", h.AdminCatalog.CreateCoupon)
					r.Put("/{id}", h.AdminCatalog.UpdateCoupon)
					r.Delete("/{id}", h.AdminCatalog.DeleteCoupon)
				})

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", h.AdminOrders.ListOrders)
					r.Post("/", h.AdminOrders.CreateManualOrder)
					r.Post("/book-bulk", h.AdminOrders.BookCourierBulk)
					r.Get("/{id}", h.AdminOrders.GetOrder)
					r.Patch("/{id}/status", h.AdminOrders.UpdateStatus)
					r.Patch("/{id}/payment", h.AdminOrders.UpdatePaymentStatus)
					r.Put("/{id}/tracking", h.AdminOrders.SetTracking)
					r.Post("/{id}/book", h.AdminOrders.BookCourier)
					r.Get("/{id}/invoice", h.AdminOrders.Invoice)
					r.Delete("/{id}", h.AdminOrders.DeleteOrder)
				})

				r.Route("/landing-pages", func(r chi.Router) {
					r.Get("/", h.AdminPages.ListPages)
					r.Post("/", h.AdminPages.CreatePage)
					r.Get("/{id}", h.AdminPages.GetPage)
					r.Put("/{id}", h.AdminPages.UpdatePage)
					r.Delete("/{id}", h.AdminPages.DeletePage)
					r.Post("/{id}/publish", h.AdminPages.Publish)
					r.Post("/{id}/sections", h.AdminPages.AddSection)
					r.Put("/{id}/sections/{sectionID}", h.AdminPages.UpdateSection)
					r.Post("/{id}/sections/{sectionID}/move", h.AdminPages.MoveSection)
					r.Delete("/{id}/sections/{sectionID}", h.AdminPages.RemoveSection)
				})

				r.Route("/media", func(r chi.Router) {
					r.Post("/", h.AdminMedia.Upload)
					r.Delete("/", h.AdminMedia.Delete)
				})

				r.Get("/couriers", h.Admin.ListCouriers)
				r.Put("/couriers/active", h.Admin.SetActiveCourier)
				r.Get("/couriers/history", h.Admin.CourierHistory)

				r.Get("/settings", h.Admin.GetSettings)
				r.Put("/settings", h.Admin.UpdateSettings)

				r.Get("/sms-templates", h.Admin.ListSMSTemplates)
				r.Put("/sms-templates/{status}", h.Admin.UpsertSMSTemplate)

				// User management — admin only.
				r.Route("/users", func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", h.Admin.ListUsers)
					r.Post("/", h.Admin.CreateUser)
					r.Post("/{id}/reset-2fa", h.Admin.ResetUser2FA)
					r.Delete("/{id}", h.Admin.DeleteUser)
				})
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
