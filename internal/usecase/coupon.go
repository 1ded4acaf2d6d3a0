package usecase

import (
	"context"
	"time"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/domain/repository"
)

// CouponUseCase handles discount coupon lookup and one-shot redemption.
type CouponUseCase struct {
	coupons repository.CouponRepository
}

// NewCouponUseCase constructs CouponUseCase.
func NewCouponUseCase(coupons repository.CouponRepository) *CouponUseCase {
	return &CouponUseCase{coupons: coupons}
}

// Get fetches a coupon by its code.
func (u *CouponUseCase) Get(ctx context.Context, code string) (*model.Coupon, error) {
	return u.coupons.Get(ctx, code)
}

// Redeem marks a coupon redeemed exactly once, rejecting expired and
// already-redeemed codes.
func (u *CouponUseCase) Redeem(ctx context.Context, code string) (*model.Coupon, error) {
	coupon, err := u.coupons.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon.Redeemed {
		return nil, domainErrors.ErrCouponRedeemed
	}
	if coupon.Expired(time.Now()) {
		return nil, domainErrors.ErrCouponExpired
	}

	if err := u.coupons.MarkRedeemed(ctx, code); err != nil {
		return nil, err
	}
	coupon.Redeemed = true
	return coupon, nil
}
