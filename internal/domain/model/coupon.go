package model

import "time"

// Coupon is a discount code redeemable exactly once before its expiry.
type Coupon struct {
	Code       string     `json:"code"`
	Discount   int        `json:"discount"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	Redeemable bool       `json:"redeemable"`
	Redeemed   bool       `json:"redeemed"`
}

// Expired reports whether the coupon's expiry has passed at the given instant.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
