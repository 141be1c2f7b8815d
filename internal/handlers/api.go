// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP surface of the shop: the public
// storefront JSON API, server-rendered landing pages, and the admin
// back-office API consumed by the management frontend.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bonik/internal/checkout"
)

// maxBodySize caps JSON request bodies (1 MB). Media uploads have their
// own, larger limit.
const maxBodySize = 1 << 20

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes a JSON error body with a human-readable message.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondPlaceOrderError maps checkout errors: validation mistakes get a
// 400 with the message, everything else a generic 500 with the detail
// logged.
func respondPlaceOrderError(w http.ResponseWriter, err error) {
	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusBadRequest, ve.Message)
		return
	}
	slog.Error("place order failed", "error", err)
	respondError(w, http.StatusInternalServerError, "Failed to place order")
}

// decodeJSON reads a size-limited JSON body into dst. Unknown fields are
// tolerated so older clients keep working across deploys.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// idParam parses the chi {id} URL parameter as a UUID.
func idParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
