package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Profiles() ProfileRepository
	Orders() OrderRepository
	Coupons() CouponRepository
	Sims() SimRepository
}
