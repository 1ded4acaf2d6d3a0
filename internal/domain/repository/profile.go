package repository

import (
	"context"

	"github.com/encryptSIM/backend/internal/domain/model"
)

// ProfileRepository describes persistence operations with payment profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.PaymentProfile) error
	Get(ctx context.Context, publicKey string) (*model.PaymentProfile, error)
	Exists(ctx context.Context, publicKey string) (bool, error)
	// LinkOrder and UnlinkOrder are idempotent read-modify-write operations on
	// the profile's order id set.
	LinkOrder(ctx context.Context, publicKey, orderID string) error
	UnlinkOrder(ctx context.Context, publicKey, orderID string) error
}
