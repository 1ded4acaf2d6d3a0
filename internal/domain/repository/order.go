package repository

import (
	"context"
	"time"

	"github.com/encryptSIM/backend/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and topup orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, orderID string) (*model.Order, error)
	// Replace overwrites the whole record; the coordinator uses it for
	// state-transition writes to avoid partial-field staleness.
	Replace(ctx context.Context, order *model.Order) error
	// UpdatePayment persists the last observed payment amount without touching
	// the status.
	UpdatePayment(ctx context.Context, orderID, observed string, updatedAt time.Time) error
	// SetStatusIf transitions the order status only when the current persisted
	// status equals from. It reports whether the write took effect, which makes
	// it usable as a compare-and-swap between concurrent watchers.
	SetStatusIf(ctx context.Context, orderID string, from, to model.OrderStatus, updatedAt time.Time) (bool, error)
	ListByProfile(ctx context.Context, ppPublicKey string, kind model.OrderKind) ([]model.Order, error)
	// SelectActive returns non-terminal orders created after the cutoff, used to
	// resume watchers after a process restart.
	SelectActive(ctx context.Context, cutoff time.Time) ([]model.Order, error)
}
