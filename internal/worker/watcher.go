package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/domain/repository"
	"github.com/encryptSIM/backend/internal/settlement"
)

// Evaluator runs one settlement pass for an order.
type Evaluator interface {
	Evaluate(ctx context.Context, orderID string) (settlement.Outcome, error)
}

// Watcher owns one polling loop per active order: ticks are serialized per
// order by construction, the loop stops on a terminal status or when the
// watch ceiling elapses, and at most one loop per order exists in-process.
type Watcher struct {
	evaluator    Evaluator
	orders       repository.OrderRepository
	pollInterval time.Duration
	maxWatch     time.Duration
	recover      bool
	logger       *slog.Logger

	mu     sync.Mutex
	active map[string]struct{}
	runCtx context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher constructs the per-order settlement watcher.
func NewWatcher(evaluator Evaluator, orders repository.OrderRepository, pollInterval, maxWatch time.Duration, recover bool, logger *slog.Logger) *Watcher {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	if maxWatch <= 0 {
		maxWatch = 10 * time.Minute
	}
	return &Watcher{
		evaluator:    evaluator,
		orders:       orders,
		pollInterval: pollInterval,
		maxWatch:     maxWatch,
		recover:      recover,
		logger:       logger,
		active:       make(map[string]struct{}),
	}
}

// Start makes the watcher accept orders and resumes loops for non-terminal
// orders still inside the watch window, so in-memory timers survive restarts.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	w.runCtx = runCtx
	w.cancel = cancel
	w.mu.Unlock()

	if !w.recover {
		return
	}

	cutoff := time.Now().Add(-w.maxWatch)
	orders, err := w.orders.SelectActive(runCtx, cutoff)
	if err != nil {
		w.logger.Error("recover active orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		if w.Watch(order) {
			w.logger.Info("resumed order watch", slog.String("order", order.OrderID), slog.String("status", string(order.Status)))
		}
	}
}

// Watch starts a settlement loop for the order. It reports false when the
// watcher is stopped or a loop for this order is already running.
func (w *Watcher) Watch(order model.Order) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.runCtx == nil || w.runCtx.Err() != nil {
		return false
	}
	if _, exists := w.active[order.OrderID]; exists {
		return false
	}
	w.active[order.OrderID] = struct{}{}
	w.wg.Add(1)
	go w.run(w.runCtx, order)
	return true
}

// Stop cancels all loops and waits for them to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Watcher) run(ctx context.Context, order model.Order) {
	defer w.wg.Done()
	defer func() {
		w.mu.Lock()
		delete(w.active, order.OrderID)
		w.mu.Unlock()
	}()

	// The ceiling is a hard wall-clock deadline measured from order creation,
	// so a recovered watch does not restart the clock.
	started := order.CreatedAt
	if started.IsZero() {
		started = time.Now()
	}
	deadline := started.Add(w.maxWatch)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if time.Now().After(deadline) {
				w.failIfUnpaid(ctx, order.OrderID)
				return
			}

			outcome, err := w.evaluator.Evaluate(ctx, order.OrderID)
			if err != nil {
				w.logger.Error("settlement evaluation failed", slog.String("order", order.OrderID), slog.String("error", err.Error()))
			}
			if outcome == settlement.OutcomeSettled {
				return
			}
		}
	}
}

// failIfUnpaid closes out an order that never got paid inside the watch
// window. The conditional write leaves the order alone if a racing
// evaluation marked it paid in the meantime.
func (w *Watcher) failIfUnpaid(ctx context.Context, orderID string) {
	ok, err := w.orders.SetStatusIf(ctx, orderID, model.OrderStatusPending, model.OrderStatusFailed, time.Now().UTC())
	if err != nil {
		w.logger.Error("fail unpaid order", slog.String("order", orderID), slog.String("error", err.Error()))
		return
	}
	if ok {
		w.logger.Info("watch duration exceeded, order failed", slog.String("order", orderID))
	}
}
