// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders adds security headers to every response, covering both
// the JSON API and the rendered landing pages.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Prevent the browser from MIME-sniffing the Content-Type.
		h.Set("X-Content-Type-Options", "nosniff")

		// Landing pages get shared into ad placements, but are never
		// framed by other origins.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// Disable the legacy XSS filter (can cause issues; CSP is preferred).
		h.Set("X-XSS-Protection", "0")

		// Keep full referrer URLs (with campaign params) off third-party
		// requests.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// The shop has no use for these browser features.
		h.Set("Permissions-Policy", "interest-cohort=(), geolocation=(), camera=()")

		next.ServeHTTP(w, r)
	})
}
