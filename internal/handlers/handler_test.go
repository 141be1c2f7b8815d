// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"bonik/internal/cache"
	"bonik/internal/checkout"
	"bonik/internal/database"
	"bonik/internal/middleware"
	"bonik/internal/session"
	"bonik/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "bonik")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "bonik")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "lp:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Valkey       *redis.Client
	Sessions     *session.Store
	Products     *store.ProductStore
	Categories   *store.CategoryStore
	Banners      *store.BannerStore
	Coupons      *store.CouponStore
	Orders       *store.OrderStore
	Users        *store.UserStore
	Pages        *store.LandingPageStore
	Settings     *store.SettingStore
	SMSTemplates *store.SMSTemplateStore
	PageCache    *cache.PageCache
	Public       *Public
	Checkout     *Checkout
	Auth         *Auth
	Admin        *Admin
	AdminCatalog *AdminCatalog
	AdminOrders  *AdminOrders
	AdminPages   *AdminLandingPages
}

var testPricing = checkout.Pricing{
	FreeShippingThreshold: 2000,
	FlatShippingFee:       100,
	ZoneFeeInsideDhaka:    80,
	ZoneFeeOutsideDhaka:   130,
}

// newTestEnv creates a complete test environment with all handler
// dependencies. SMS, Kafka, invoices, and couriers stay unwired; the
// handlers treat those as optional.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk)
	products := store.NewProductStore(db)
	categories := store.NewCategoryStore(db)
	banners := store.NewBannerStore(db)
	coupons := store.NewCouponStore(db)
	orders := store.NewOrderStore(db)
	users := store.NewUserStore(db)
	pages := store.NewLandingPageStore(db)
	settings := store.NewSettingStore(db)
	smsTemplates := store.NewSMSTemplateStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	service := checkout.NewService(products, coupons, orders, testPricing)

	return &testEnv{
		DB:           db,
		Valkey:       vk,
		Sessions:     sessions,
		Products:     products,
		Categories:   categories,
		Banners:      banners,
		Coupons:      coupons,
		Orders:       orders,
		Users:        users,
		Pages:        pages,
		Settings:     settings,
		SMSTemplates: smsTemplates,
		PageCache:    pageCache,
		Public:       NewPublic(products, categories, banners, coupons, pages, pageCache),
		Checkout:     NewCheckout(service, nil, nil),
		Auth:         NewAuth(sessions, users),
		Admin:        NewAdmin(orders, settings, users, smsTemplates, nil, nil),
		AdminCatalog: NewAdminCatalog(products, categories, banners, coupons, pageCache),
		AdminOrders:  NewAdminOrders(orders, nil, nil, nil, nil, testPricing),
		AdminPages:   NewAdminLandingPages(pages, pageCache),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	return withChiURLParams(r, key, value)
}

// withChiURLParams adds several chi URL parameters, given as key/value
// pairs.
func withChiURLParams(r *http.Request, pairs ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(pairs); i += 2 {
		rctx.URLParams.Add(pairs[i], pairs[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanProducts removes test products by slug.
func cleanProducts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM products WHERE slug = $1", s)
	}
}

// cleanPages removes test landing pages by slug.
func cleanPages(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM landing_pages WHERE slug = $1", s)
	}
}

// cleanOrdersByPhone removes test orders by customer phone.
func cleanOrdersByPhone(t *testing.T, db *sql.DB, phones ...string) {
	t.Helper()
	for _, p := range phones {
		db.Exec("DELETE FROM orders WHERE shipping_phone = $1", p)
	}
}
