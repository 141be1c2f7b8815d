// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package checkout

import "bonik/internal/models"

// Pricing holds the shop's shipping tariffs, loaded from config.
type Pricing struct {
	// FreeShippingThreshold is the cart subtotal at or above which web
	// checkout ships free.
	FreeShippingThreshold int
	// FlatShippingFee applies to web checkout below the threshold.
	FlatShippingFee int
	// Zone fees apply to landing-page and manual orders, where the
	// customer picks a delivery zone instead.
	ZoneFeeInsideDhaka  int
	ZoneFeeOutsideDhaka int
}

// CartShipping returns the web-checkout shipping cost for a subtotal.
func (p Pricing) CartShipping(subtotal int) int {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShippingFee
}

// ZoneShipping returns the flat fee for a delivery zone. Unknown zones
// fall back to the outside-Dhaka fee, the more expensive of the two.
func (p Pricing) ZoneShipping(zone models.ShippingZone) int {
	if zone == models.ZoneInsideDhaka {
		return p.ZoneFeeInsideDhaka
	}
	return p.ZoneFeeOutsideDhaka
}
