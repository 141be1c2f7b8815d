// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package checkout prices and validates customer orders. All money is
// whole taka; totals are always recomputed from the catalog, never
// trusted from a client.
package checkout

import (
	"regexp"
	"strings"
)

// bdPhone matches Bangladeshi mobile numbers: an optional 880 country
// code (with or without +) followed by 01 and an operator digit 3-9.
var bdPhone = regexp.MustCompile(`^(\+?880)?01[3-9]\d{8}$`)

// NormalizePhone strips spaces from a phone number before validation.
func NormalizePhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}

// ValidPhone reports whether phone is a valid BD mobile number after
// normalization.
func ValidPhone(phone string) bool {
	return bdPhone.MatchString(NormalizePhone(phone))
}
