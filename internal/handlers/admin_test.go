// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bonik/internal/models"
)

func TestUpdateSettingsRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM admin_settings WHERE key LIKE '__test_%'")
	})

	body := `{"__test_pixel": "12345", "__test_flag": "true"}`
	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/api/admin/settings", strings.NewReader(body))
	env.Admin.UpdateSettings(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("update settings: got %d, want 200: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	env.Admin.GetSettings(w, httptest.NewRequest("GET", "/api/admin/settings", nil))

	var resp struct {
		Settings map[string]string `json:"settings"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if resp.Settings["__test_pixel"] != "12345" {
		t.Errorf("__test_pixel: got %q, want 12345", resp.Settings["__test_pixel"])
	}
}

func TestUpdateSettingsRejectsEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/api/admin/settings", strings.NewReader(`{}`))
	env.Admin.UpdateSettings(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("empty settings: got %d, want 400", w.Code)
	}
}

func TestUpsertSMSTemplate(t *testing.T) {
	env := newTestEnv(t)
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM sms_templates WHERE status = 'shipped'")
	})

	body := `{"body": "Dear {{name}}, order {{order_number}} has shipped. Track: {{tracking_number}}", "is_enabled": true}`
	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/api/admin/sms-templates/shipped", strings.NewReader(body))
	r = withChiURLParam(r, "status", "shipped")
	env.Admin.UpsertSMSTemplate(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("upsert template: got %d, want 200: %s", w.Code, w.Body.String())
	}

	tpl, err := env.SMSTemplates.FindByStatus(models.OrderStatusShipped)
	if err != nil {
		t.Fatalf("find template: %v", err)
	}
	if tpl == nil || !tpl.IsEnabled {
		t.Fatal("template not persisted or not enabled")
	}
	if !strings.Contains(tpl.Body, "{{order_number}}") {
		t.Errorf("body lost placeholder: %q", tpl.Body)
	}
}

func TestUpsertSMSTemplateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		status string
		body   string
	}{
		{"unknown status", "teleported", `{"body": "hi", "is_enabled": true}`},
		{"empty body", "shipped", `{"body": "", "is_enabled": true}`},
		{"not json", "shipped", `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("PUT", "/api/admin/sms-templates/"+tt.status, strings.NewReader(tt.body))
			r = withChiURLParam(r, "status", tt.status)
			env.Admin.UpsertSMSTemplate(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("got %d, want 400", w.Code)
			}
		})
	}
}

func TestTrackEventValidation(t *testing.T) {
	env := newTestEnv(t)

	// Unknown event names are rejected; Purchase is server-side only.
	for _, name := range []string{"Purchase", "MadeUp", ""} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/api/track", strings.NewReader(`{"event_name": "`+name+`"}`))
		env.Checkout.TrackEvent(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("event %q: got %d, want 400", name, w.Code)
		}
	}

	// A known event is accepted even with no CAPI client configured.
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/track", strings.NewReader(`{"event_name": "PageView", "source_url": "https://shop.example/p/saree"}`))
	env.Checkout.TrackEvent(w, r)

	if w.Code != http.StatusAccepted {
		t.Errorf("PageView: got %d, want 202", w.Code)
	}
}
