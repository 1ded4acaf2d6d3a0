package repository

import (
	"context"

	"github.com/encryptSIM/backend/internal/domain/model"
)

// CouponRepository describes persistence operations with discount coupons.
type CouponRepository interface {
	Get(ctx context.Context, code string) (*model.Coupon, error)
	MarkRedeemed(ctx context.Context, code string) error
}
