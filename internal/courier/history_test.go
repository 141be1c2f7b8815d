// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package courier

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01712345678", "01712345678"},
		{"+8801712345678", "01712345678"},
		{"8801712345678", "01712345678"},
		{"+880 1712-345678", "01712345678"},
		{"1712345678", "01712345678"}, // country code and 0 both stripped
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHistoryCheckNormalizesPhone(t *testing.T) {
	var gotPhone string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPhone = r.URL.Query().Get("phone")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"courierData":{"steadfast":{"total_parcel":12,"success_parcel":11,"cancelled_parcel":1,"success_ratio":91.7}}}`)
	}))
	defer srv.Close()

	c := NewHistoryClient("test-key", srv.URL)
	h, err := c.Check(context.Background(), "+8801712345678")
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	if gotPhone != "01712345678" {
		t.Errorf("upstream phone: got %q, want %q", gotPhone, "01712345678")
	}
	if !h.Success {
		t.Error("expected success")
	}
	if h.Phone != "01712345678" {
		t.Errorf("result phone: got %q, want %q", h.Phone, "01712345678")
	}
	if h.Courier["steadfast"].TotalParcel != 12 {
		t.Errorf("total parcels: got %d, want 12", h.Courier["steadfast"].TotalParcel)
	}
}

func TestHistoryCheckBlockedOn403(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `<html>challenge-platform</html>`)
	}))
	defer srv.Close()

	c := NewHistoryClient("test-key", srv.URL)
	h, err := c.Check(context.Background(), "01712345678")
	if err != nil {
		t.Fatalf("403 must not be an error: %v", err)
	}
	if h.Success || !h.Blocked {
		t.Errorf("got %+v, want success=false blocked=true", h)
	}
	if h.Message == "" {
		t.Error("blocked result should carry a message for the admin UI")
	}
}

func TestHistoryCheckBlockedOnHTMLChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Cloudflare sometimes serves the challenge page with a 200.
		io.WriteString(w, `<!DOCTYPE html><html>checking your browser</html>`)
	}))
	defer srv.Close()

	c := NewHistoryClient("test-key", srv.URL)
	h, err := c.Check(context.Background(), "01712345678")
	if err != nil {
		t.Fatalf("html challenge must not be an error: %v", err)
	}
	if h.Success || !h.Blocked || h.Message == "" {
		t.Errorf("got %+v, want success=false blocked=true with message", h)
	}
}

func TestHistoryCheckBlockedOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	c := NewHistoryClient("test-key", srv.URL)
	h, err := c.Check(ctx, "01712345678")
	if err != nil {
		t.Fatalf("a slow upstream must not break the admin UI: %v", err)
	}
	if h.Success || !h.Blocked {
		t.Errorf("got %+v, want success=false blocked=true", h)
	}
	if h.Message == "" {
		t.Error("timeout result should carry a message for the admin UI")
	}
}

func TestHistoryCheckNoAPIKey(t *testing.T) {
	c := NewHistoryClient("", "")
	if _, err := c.Check(context.Background(), "01712345678"); err == nil {
		t.Fatal("expected error without an API key")
	}
}
