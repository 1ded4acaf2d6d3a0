package errors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrProfileNotFound = errors.New("payment profile not found")

	// ErrOracleUnavailable marks transient payment oracle failures; the watcher
	// retries them on the next tick.
	ErrOracleUnavailable = errors.New("payment oracle unavailable")
	// ErrProviderFailure marks provisioning failures; these are terminal for the
	// order even though payment was already received.
	ErrProviderFailure = errors.New("fulfillment provider failure")
	// ErrStoreFailure marks persistence failures mid-tick; the lost write is
	// re-derived from the last persisted state on the next tick.
	ErrStoreFailure = errors.New("store failure")

	ErrInvalidStatusChange = errors.New("invalid order status change")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrCouponRedeemed      = errors.New("coupon already redeemed")
	ErrCouponExpired       = errors.New("coupon expired")
)
