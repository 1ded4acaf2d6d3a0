package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic shared by the eSIM and
// top-up flows.
type OrderUseCase struct {
	orders   repository.OrderRepository
	profiles repository.ProfileRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, profiles repository.ProfileRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, profiles: profiles}
}

// Create registers a new pending order against an existing payment profile
// and links it to the profile.
func (u *OrderUseCase) Create(ctx context.Context, kind model.OrderKind, ppPublicKey, price string, spec model.ProductSpec) (*model.Order, error) {
	due, err := decimal.NewFromString(price)
	if err != nil || due.Sign() <= 0 {
		return nil, domainErrors.ErrInvalidPrice
	}

	exists, err := u.profiles.Exists(ctx, ppPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: check profile: %s", domainErrors.ErrStoreFailure, err)
	}
	if !exists {
		return nil, domainErrors.ErrProfileNotFound
	}

	now := time.Now().UTC()
	order := &model.Order{
		OrderID:     uuid.NewString(),
		PPPublicKey: ppPublicKey,
		Kind:        kind,
		Quantity:    spec.Quantity,
		PackageID:   spec.PackageID,
		ICCID:       spec.ICCID,
		PriceSol:    price,
		Status:      model.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: persist order: %s", domainErrors.ErrStoreFailure, err)
	}
	if err := u.profiles.LinkOrder(ctx, ppPublicKey, order.OrderID); err != nil {
		return nil, fmt.Errorf("%w: link order: %s", domainErrors.ErrStoreFailure, err)
	}
	return order, nil
}

// Get fetches a single order.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.Get(ctx, orderID)
}

// ListByProfile returns the profile's orders of one kind, newest first.
func (u *OrderUseCase) ListByProfile(ctx context.Context, ppPublicKey string, kind model.OrderKind) ([]model.Order, error) {
	return u.orders.ListByProfile(ctx, ppPublicKey, kind)
}
