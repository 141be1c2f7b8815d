package courier

import (
	"context"
	"fmt"
	"testing"
)

// stubProvider records bookings and returns canned consignments.
type stubProvider struct {
	name  string
	calls int
	fail  bool
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Book(ctx context.Context, b Booking) (*Consignment, error) {
	s.calls++
	if s.fail {
		return nil, fmt.Errorf("%s: booking failed", s.name)
	}
	return &Consignment{
		ConsignmentID: "C-" + b.OrderNumber,
		TrackingCode:  "T-" + b.OrderNumber,
		Status:        "in_review",
	}, nil
}

func TestRegistrySkipsUnconfigured(t *testing.T) {
	r := NewRegistry("steadfast", map[string]ProviderConfig{
		"steadfast": {APIKey: "key", APISecret: "secret"},
		"pathao":    {}, // no credentials
		"redx":      {},
		"paperfly":  {},
	})

	if !r.HasProvider("steadfast") {
		t.Error("steadfast should be configured")
	}
	if r.HasProvider("pathao") {
		t.Error("pathao without credentials should be skipped")
	}
	if got := len(r.Available()); got != 1 {
		t.Errorf("available: got %d, want 1", got)
	}
}

func TestRegistrySetActive(t *testing.T) {
	r := NewRegistry("steadfast", nil)
	r.Register("steadfast", &stubProvider{name: "steadfast"})
	r.Register("redx", &stubProvider{name: "redx"})

	if err := r.SetActive("redx"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if r.ActiveName() != "redx" {
		t.Errorf("active: got %q, want redx", r.ActiveName())
	}

	if err := r.SetActive("nonexistent"); err == nil {
		t.Error("expected error switching to unconfigured provider")
	}
	if r.ActiveName() != "redx" {
		t.Error("failed switch must leave active provider unchanged")
	}
}

func TestRegistryBookNoProvider(t *testing.T) {
	r := NewRegistry("steadfast", nil)

	_, err := r.Book(context.Background(), Booking{OrderNumber: "BNK-1"})
	if err == nil {
		t.Error("expected error with no providers configured")
	}
}

func TestRegistryBookBulkFallback(t *testing.T) {
	stub := &stubProvider{name: "redx"}
	r := NewRegistry("redx", nil)
	r.Register("redx", stub)

	bookings := []Booking{
		{OrderNumber: "BNK-1", Name: "A", Phone: "01712345678", CODAmount: 500},
		{OrderNumber: "BNK-2", Name: "B", Phone: "01812345678", CODAmount: 900},
	}
	results, err := r.BookBulk(context.Background(), bookings)
	if err != nil {
		t.Fatalf("BookBulk: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("provider without bulk support should be called per booking: got %d calls", stub.calls)
	}
	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}
	if results[1].Consignment.TrackingCode != "T-BNK-2" {
		t.Errorf("tracking code: got %q", results[1].Consignment.TrackingCode)
	}
}
