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
	"time"

	"github.com/pquerna/otp/totp"

	"bonik/internal/models"
)

// testUser creates a back-office user and cleans it up afterwards.
func testUser(t *testing.T, env *testEnv, email, password string) *models.User {
	t.Helper()

	env.DB.Exec("DELETE FROM users WHERE email = $1", email)
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE email = $1", email) })

	user, err := env.Users.Create(email, password, "Flow Test", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// TestLoginWrongPassword verifies bad credentials return 401 without
// hinting which part was wrong.
func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	testUser(t, env, "__flow_wrongpass@bonik.test", "correct-horse-8")

	for _, payload := range []string{
		`{"email": "__flow_wrongpass@bonik.test", "password": "nope"}`,
		`{"email": "__flow_nobody@bonik.test", "password": "correct-horse-8"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(payload))
		rec := httptest.NewRecorder()

		env.Auth.Login(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("payload %q: got status %d, want %d", payload, rec.Code, http.StatusUnauthorized)
		}
		if !strings.Contains(rec.Body.String(), "Invalid email or password") {
			t.Errorf("payload %q: body should not reveal which field failed", payload)
		}
	}
}

// TestLoginStartsPending2FA verifies a fresh login opens a session that
// still needs the TOTP step, and reports that 2FA setup is required.
func TestLoginStartsPending2FA(t *testing.T) {
	env := newTestEnv(t)
	testUser(t, env, "__flow_login@bonik.test", "correct-horse-8")

	payload := `{"email": "__flow_login@bonik.test", "password": "correct-horse-8"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Auth.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d — body: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		NeedsSetup bool `json:"needsSetup"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.NeedsSetup {
		t.Error("brand-new user should need 2FA setup")
	}

	// The session cookie exists but must not grant admin access yet.
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login should set a session cookie")
	}
	follow := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	for _, c := range cookies {
		follow.AddCookie(c)
	}
	sess, err := env.Sessions.Get(follow.Context(), follow)
	if err != nil || sess == nil {
		t.Fatalf("session lookup: %v", err)
	}
	if sess.TwoFADone {
		t.Error("session must start with 2FA incomplete")
	}
}

// TestTwoFAFullEnrollment walks setup and verification with a real TOTP
// code, then confirms the session is fully authenticated.
func TestTwoFAFullEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := testUser(t, env, "__flow_enroll@bonik.test", "correct-horse-8")

	// Log in to get a pending session.
	loginReq := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email": "__flow_enroll@bonik.test", "password": "correct-horse-8"}`))
	loginRec := httptest.NewRecorder()
	env.Auth.Login(loginRec, loginReq)
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login: got %d", loginRec.Code)
	}
	cookies := loginRec.Result().Cookies()

	withSession := func(method, path string, body *strings.Reader) *http.Request {
		var r *http.Request
		if body != nil {
			r = httptest.NewRequest(method, path, body)
		} else {
			r = httptest.NewRequest(method, path, nil)
		}
		for _, c := range cookies {
			r.AddCookie(c)
		}
		sess, err := env.Sessions.Get(r.Context(), r)
		if err != nil || sess == nil {
			t.Fatalf("session lookup: %v", err)
		}
		return r.WithContext(ctxWithSession(r.Context(), sess))
	}

	// Setup returns a secret and a QR code.
	setupRec := httptest.NewRecorder()
	env.Auth.TwoFASetup(setupRec, withSession(http.MethodPost, "/api/admin/2fa/setup", nil))
	if setupRec.Code != http.StatusOK {
		t.Fatalf("setup: got %d — body: %s", setupRec.Code, setupRec.Body.String())
	}
	var setup struct {
		Secret string `json:"secret"`
		QRCode string `json:"qrCode"`
	}
	if err := json.NewDecoder(setupRec.Body).Decode(&setup); err != nil {
		t.Fatalf("decode setup: %v", err)
	}
	if setup.Secret == "" || setup.QRCode == "" {
		t.Fatal("setup should return both the secret and a QR code")
	}

	// A wrong code is rejected.
	badRec := httptest.NewRecorder()
	env.Auth.TwoFAVerify(badRec, withSession(http.MethodPost, "/api/admin/2fa/verify",
		strings.NewReader(`{"code": "000000"}`)))
	if badRec.Code != http.StatusUnauthorized {
		t.Errorf("wrong code: got %d, want %d", badRec.Code, http.StatusUnauthorized)
	}

	// The real code completes enrollment.
	code, err := totp.GenerateCode(setup.Secret, time.Now())
	if err != nil {
		t.Fatalf("generate totp code: %v", err)
	}
	okRec := httptest.NewRecorder()
	env.Auth.TwoFAVerify(okRec, withSession(http.MethodPost, "/api/admin/2fa/verify",
		strings.NewReader(`{"code": "`+code+`"}`)))
	if okRec.Code != http.StatusOK {
		t.Fatalf("verify: got %d — body: %s", okRec.Code, okRec.Body.String())
	}

	// The account now has TOTP enabled and the session is complete.
	reloaded, err := env.Users.FindByID(user.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload user: %v", err)
	}
	if !reloaded.TOTPEnabled {
		t.Error("TOTP should be enabled after first valid code")
	}

	check := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	for _, c := range cookies {
		check.AddCookie(c)
	}
	sess, err := env.Sessions.Get(check.Context(), check)
	if err != nil || sess == nil {
		t.Fatalf("session lookup: %v", err)
	}
	if !sess.TwoFADone {
		t.Error("session should be marked 2FA-complete")
	}
}

// TestTwoFASetupRequiresSession verifies setup without a session is
// rejected.
func TestTwoFASetupRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/2fa/setup", nil)
	rec := httptest.NewRecorder()

	env.Auth.TwoFASetup(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
