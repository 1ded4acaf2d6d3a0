package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/domain/repository"
)

// PaymentOracle is the external source of truth about on-chain balances and
// transfers.
type PaymentOracle interface {
	CheckPayment(ctx context.Context, address string, due decimal.Decimal) (enough bool, observed decimal.Decimal, err error)
	Sweep(ctx context.Context, privateKey string, amount decimal.Decimal) (signature string, err error)
}

// FulfillmentProvider turns a purchase spec into a deliverable artifact.
type FulfillmentProvider interface {
	PlaceOrder(ctx context.Context, spec model.ProductSpec) (*model.SimArtifact, error)
	PlaceTopup(ctx context.Context, spec model.ProductSpec) (*model.SimArtifact, error)
}

// Outcome tells the watcher what to do after an evaluation pass.
type Outcome int

const (
	// OutcomeContinue means the order is still unsettled; keep watching.
	OutcomeContinue Outcome = iota
	// OutcomeSettled means the order reached a terminal status.
	OutcomeSettled
	// OutcomeAbandoned means another evaluation won the paid transition; this
	// watcher backs off and re-reads on its next tick.
	OutcomeAbandoned
)

// Coordinator drives one settlement evaluation per watcher tick:
// detect payment, mark paid, provision, aggregate funds to the master wallet.
// One implementation serves both eSIM orders and top-ups; only the provider
// call differs by order kind.
type Coordinator struct {
	orders   repository.OrderRepository
	profiles repository.ProfileRepository
	oracle   PaymentOracle
	provider FulfillmentProvider
	logger   *slog.Logger
}

func New(orders repository.OrderRepository, profiles repository.ProfileRepository, oracle PaymentOracle, provider FulfillmentProvider, logger *slog.Logger) *Coordinator {
	return &Coordinator{orders: orders, profiles: profiles, oracle: oracle, provider: provider, logger: logger}
}

// Evaluate runs one bounded settlement pass for the order. Every
// state-changing write re-reads or compare-and-swaps against the store, so a
// duplicate watcher cannot provision the same order twice. Orders recovered
// mid-flight (paid, esim_provisioned) resume from their persisted step.
func (c *Coordinator) Evaluate(ctx context.Context, orderID string) (Outcome, error) {
	order, err := c.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return OutcomeSettled, err
		}
		return OutcomeContinue, fmt.Errorf("%w: read order %s: %s", domainErrors.ErrStoreFailure, orderID, err)
	}

	switch {
	case order.Status.Terminal():
		return OutcomeSettled, nil
	case order.Status == model.OrderStatusPending:
		return c.detect(ctx, order)
	case order.Status == model.OrderStatusPaid:
		return c.provision(ctx, order)
	case order.Status == model.OrderStatusProvisioned:
		return c.aggregate(ctx, order)
	}
	return OutcomeContinue, nil
}

func (c *Coordinator) detect(ctx context.Context, order *model.Order) (Outcome, error) {
	due, err := order.PriceDue()
	if err != nil {
		// A malformed price can never be satisfied; fail the order now.
		if _, casErr := c.orders.SetStatusIf(ctx, order.OrderID, model.OrderStatusPending, model.OrderStatusFailed, time.Now().UTC()); casErr != nil {
			return OutcomeContinue, fmt.Errorf("%w: fail order %s: %s", domainErrors.ErrStoreFailure, order.OrderID, casErr)
		}
		return OutcomeSettled, fmt.Errorf("%w: order %s: %s", domainErrors.ErrInvalidPrice, order.OrderID, err)
	}

	enough, observed, err := c.oracle.CheckPayment(ctx, order.PPPublicKey, due)
	if err != nil {
		return OutcomeContinue, err
	}

	now := time.Now().UTC()
	order.PaymentInSol = observed.String()
	if err := c.orders.UpdatePayment(ctx, order.OrderID, order.PaymentInSol, now); err != nil {
		c.logger.Warn("persist observed payment failed", slog.String("order", order.OrderID), slog.String("error", err.Error()))
	}

	if !enough {
		return OutcomeContinue, nil
	}

	ok, err := c.orders.SetStatusIf(ctx, order.OrderID, model.OrderStatusPending, model.OrderStatusPaid, now)
	if err != nil {
		return OutcomeContinue, fmt.Errorf("%w: mark paid %s: %s", domainErrors.ErrStoreFailure, order.OrderID, err)
	}
	if !ok {
		// Another evaluation already advanced the order.
		return OutcomeAbandoned, nil
	}

	order.Status = model.OrderStatusPaid
	order.UpdatedAt = now
	c.logger.Info("payment received", slog.String("order", order.OrderID), slog.String("observed", order.PaymentInSol))
	return c.provision(ctx, order)
}

func (c *Coordinator) provision(ctx context.Context, order *model.Order) (Outcome, error) {
	var (
		artifact *model.SimArtifact
		err      error
	)
	if order.Kind == model.OrderKindTopup {
		artifact, err = c.provider.PlaceTopup(ctx, order.Spec())
	} else {
		artifact, err = c.provider.PlaceOrder(ctx, order.Spec())
	}
	if err != nil {
		if _, casErr := c.orders.SetStatusIf(ctx, order.OrderID, model.OrderStatusPaid, model.OrderStatusFailed, time.Now().UTC()); casErr != nil {
			c.logger.Error("fail order after provider error", slog.String("order", order.OrderID), slog.String("error", casErr.Error()))
		}
		return OutcomeSettled, err
	}

	order.Sim = artifact
	order.Status = model.OrderStatusProvisioned
	order.UpdatedAt = time.Now().UTC()
	if err := c.orders.Replace(ctx, order); err != nil {
		// The artifact is lost from the store; the next tick resumes from paid
		// and provisions again.
		return OutcomeContinue, fmt.Errorf("%w: attach artifact %s: %s", domainErrors.ErrStoreFailure, order.OrderID, err)
	}

	c.logger.Info("order provisioned", slog.String("order", order.OrderID), slog.String("iccid", artifact.ICCID))
	return c.aggregate(ctx, order)
}

func (c *Coordinator) aggregate(ctx context.Context, order *model.Order) (Outcome, error) {
	profile, err := c.profiles.Get(ctx, order.PPPublicKey)
	if err != nil {
		return OutcomeContinue, fmt.Errorf("%w: read profile %s: %s", domainErrors.ErrStoreFailure, order.PPPublicKey, err)
	}

	due, err := order.PriceDue()
	if err != nil {
		return c.finish(ctx, order, model.OrderStatusFailed), fmt.Errorf("%w: order %s: %s", domainErrors.ErrInvalidPrice, order.OrderID, err)
	}

	signature, err := c.oracle.Sweep(ctx, profile.PrivateKey, due)
	if err != nil || signature == "" {
		if err != nil {
			c.logger.Error("sweep to master wallet failed", slog.String("order", order.OrderID), slog.String("error", err.Error()))
		}
		return c.finish(ctx, order, model.OrderStatusFailed), err
	}

	c.logger.Info("funds swept to master wallet", slog.String("order", order.OrderID), slog.String("signature", signature))
	return c.finish(ctx, order, model.OrderStatusPaidToMaster), nil
}

// finish writes the terminal status with a full overwrite, keeping the
// artifact already attached to the order.
func (c *Coordinator) finish(ctx context.Context, order *model.Order, status model.OrderStatus) Outcome {
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	if err := c.orders.Replace(ctx, order); err != nil {
		c.logger.Error("persist terminal status failed", slog.String("order", order.OrderID), slog.String("status", string(status)), slog.String("error", err.Error()))
		return OutcomeContinue
	}
	return OutcomeSettled
}
