// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package courier provides a unified interface for booking parcels with
// Bangladeshi delivery companies (Steadfast, Pathao, RedX, Paperfly).
// Each company implements the Provider interface, and the Registry
// selects the active one by name.
package courier

import (
	"context"
	"fmt"
	"sync"
)

// Booking is a courier-agnostic parcel request built from an order.
type Booking struct {
	OrderNumber string
	Name        string
	Phone       string
	Address     string
	CODAmount   int
	Notes       string
}

// Consignment is the courier's acknowledgement of a booked parcel.
type Consignment struct {
	ConsignmentID string
	TrackingCode  string
	Status        string
}

// Provider defines the interface that all courier companies must
// implement. Each provider handles its own HTTP communication,
// authentication, and response parsing.
type Provider interface {
	// Book registers a parcel with the courier and returns the
	// consignment details, including the tracking code.
	Book(ctx context.Context, b Booking) (*Consignment, error)

	// Name returns the provider identifier (e.g., "steadfast", "pathao").
	Name() string
}

// BulkBooker is implemented by providers with a native bulk endpoint.
// The Registry falls back to sequential Book calls otherwise.
type BulkBooker interface {
	BookBulk(ctx context.Context, bookings []Booking) ([]BulkResult, error)
}

// BulkResult pairs one booking with its outcome.
type BulkResult struct {
	OrderNumber string
	Consignment *Consignment
	Err         error
}

// ProviderConfig holds the credentials and settings for a single
// provider. Providers use the fields relevant to their auth scheme.
type ProviderConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
	ClientID  string
	Username  string
	Password  string
}

// Registry manages available courier providers and selects the active
// one. It supports runtime switching by changing the active provider
// name. All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry creates a registry and initialises providers for every
// config with credentials. Providers without credentials are silently
// skipped.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		switch name {
		case "steadfast":
			if cfg.APIKey != "" && cfg.APISecret != "" {
				r.providers[name] = newSteadfast(cfg)
			}
		case "pathao":
			if cfg.ClientID != "" && cfg.Username != "" {
				r.providers[name] = newPathao(cfg)
			}
		case "redx":
			if cfg.APIKey != "" {
				r.providers[name] = newRedX(cfg)
			}
		case "paperfly":
			if cfg.Username != "" && cfg.Password != "" {
				r.providers[name] = newPaperfly(cfg)
			}
		}
	}

	return r
}

// Book registers the parcel with the active provider.
func (r *Registry) Book(ctx context.Context, b Booking) (*Consignment, error) {
	p, err := r.Active()
	if err != nil {
		return nil, err
	}
	return p.Book(ctx, b)
}

// BookBulk registers many parcels with the active provider, using its
// native bulk endpoint when available.
func (r *Registry) BookBulk(ctx context.Context, bookings []Booking) ([]BulkResult, error) {
	p, err := r.Active()
	if err != nil {
		return nil, err
	}

	if bulk, ok := p.(BulkBooker); ok {
		return bulk.BookBulk(ctx, bookings)
	}

	results := make([]BulkResult, 0, len(bookings))
	for _, b := range bookings {
		c, err := p.Book(ctx, b)
		results = append(results, BulkResult{OrderNumber: b.OrderNumber, Consignment: c, Err: err})
	}
	return results, nil
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("courier: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error
// if the named provider has no credentials configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("courier: provider %q is not available (no credentials?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers with credentials.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider in the registry. This allows
// injecting custom providers at runtime (e.g. for testing).
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}
