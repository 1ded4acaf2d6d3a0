package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests. All mutating methods
// are safe for concurrent use so watcher tests can race against it.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]*model.Order

	CreateFn       func(context.Context, *model.Order) error
	GetFn          func(context.Context, string) (*model.Order, error)
	ReplaceFn      func(context.Context, *model.Order) error
	SetStatusIfFn  func(context.Context, string, model.OrderStatus, model.OrderStatus, time.Time) (bool, error)
	SelectActiveFn func(context.Context, time.Time) ([]model.Order, error)
	Err            error
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Put seeds an order directly, bypassing Create hooks.
func (s *OrderRepositoryStub) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := order
	s.Orders[order.OrderID] = &copied
}

// Create registers the order unless one already exists under its id.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Orders[order.OrderID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	copied := *order
	s.Orders[order.OrderID] = &copied
	return nil
}

// Get fetches a copy of the stored order or returns not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, orderID string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.Orders[orderID]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Replace overwrites the stored order.
func (s *OrderRepositoryStub) Replace(ctx context.Context, order *model.Order) error {
	if s.ReplaceFn != nil {
		return s.ReplaceFn(ctx, order)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[order.OrderID]; !ok {
		return domainErrors.ErrNotFound
	}
	copied := *order
	s.Orders[order.OrderID] = &copied
	return nil
}

// UpdatePayment records the observed payment amount.
func (s *OrderRepositoryStub) UpdatePayment(ctx context.Context, orderID, observed string, updatedAt time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.PaymentInSol = observed
	order.UpdatedAt = updatedAt
	return nil
}

// SetStatusIf performs the compare-and-swap against the in-memory record.
func (s *OrderRepositoryStub) SetStatusIf(ctx context.Context, orderID string, from, to model.OrderStatus, updatedAt time.Time) (bool, error) {
	if s.SetStatusIfFn != nil {
		return s.SetStatusIfFn(ctx, orderID, from, to, updatedAt)
	}
	if s.Err != nil {
		return false, s.Err
	}
	if !from.CanTransition(to) {
		return false, domainErrors.ErrInvalidStatusChange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	order.UpdatedAt = updatedAt
	return true, nil
}

// ListByProfile filters stored orders by profile and kind.
func (s *OrderRepositoryStub) ListByProfile(ctx context.Context, ppPublicKey string, kind model.OrderKind) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, order := range s.Orders {
		if order.PPPublicKey == ppPublicKey && order.Kind == kind {
			out = append(out, *order)
		}
	}
	return out, nil
}

// SelectActive returns non-terminal orders created after the cutoff.
func (s *OrderRepositoryStub) SelectActive(ctx context.Context, cutoff time.Time) ([]model.Order, error) {
	if s.SelectActiveFn != nil {
		return s.SelectActiveFn(ctx, cutoff)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, order := range s.Orders {
		if !order.Status.Terminal() && order.CreatedAt.After(cutoff) {
			out = append(out, *order)
		}
	}
	return out, nil
}

// ProfileRepositoryStub stores payment profiles in-memory for tests.
type ProfileRepositoryStub struct {
	mu       sync.Mutex
	Profiles map[string]*model.PaymentProfile
	Err      error
}

// NewProfileRepositoryStub constructs stub repository with initialized map.
func NewProfileRepositoryStub() *ProfileRepositoryStub {
	return &ProfileRepositoryStub{Profiles: make(map[string]*model.PaymentProfile)}
}

// Create registers the profile unless it already exists.
func (s *ProfileRepositoryStub) Create(ctx context.Context, profile *model.PaymentProfile) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Profiles[profile.PublicKey]; exists {
		return domainErrors.ErrAlreadyExists
	}
	copied := *profile
	s.Profiles[profile.PublicKey] = &copied
	return nil
}

// Get fetches a copy of the stored profile or returns not found.
func (s *ProfileRepositoryStub) Get(ctx context.Context, publicKey string) (*model.PaymentProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile, ok := s.Profiles[publicKey]; ok {
		copied := *profile
		copied.OrderIDs = append([]string(nil), profile.OrderIDs...)
		return &copied, nil
	}
	return nil, domainErrors.ErrProfileNotFound
}

// Exists reports whether the profile is stored.
func (s *ProfileRepositoryStub) Exists(ctx context.Context, publicKey string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Profiles[publicKey]
	return ok, nil
}

// LinkOrder appends the order id once.
func (s *ProfileRepositoryStub) LinkOrder(ctx context.Context, publicKey, orderID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.Profiles[publicKey]
	if !ok {
		return domainErrors.ErrProfileNotFound
	}
	for _, id := range profile.OrderIDs {
		if id == orderID {
			return nil
		}
	}
	profile.OrderIDs = append(profile.OrderIDs, orderID)
	return nil
}

// UnlinkOrder removes the order id if present.
func (s *ProfileRepositoryStub) UnlinkOrder(ctx context.Context, publicKey, orderID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.Profiles[publicKey]
	if !ok {
		return domainErrors.ErrProfileNotFound
	}
	kept := profile.OrderIDs[:0]
	for _, id := range profile.OrderIDs {
		if id != orderID {
			kept = append(kept, id)
		}
	}
	profile.OrderIDs = kept
	return nil
}

// CouponRepositoryStub stores coupons in-memory for tests.
type CouponRepositoryStub struct {
	Coupons map[string]*model.Coupon
	Err     error
}

// NewCouponRepositoryStub constructs stub repository with initialized map.
func NewCouponRepositoryStub() *CouponRepositoryStub {
	return &CouponRepositoryStub{Coupons: make(map[string]*model.Coupon)}
}

// Get fetches a copy of the stored coupon or returns not found.
func (s *CouponRepositoryStub) Get(ctx context.Context, code string) (*model.Coupon, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if coupon, ok := s.Coupons[code]; ok {
		copied := *coupon
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarkRedeemed flips the redeemed flag exactly once.
func (s *CouponRepositoryStub) MarkRedeemed(ctx context.Context, code string) error {
	if s.Err != nil {
		return s.Err
	}
	coupon, ok := s.Coupons[code]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if coupon.Redeemed {
		return domainErrors.ErrCouponRedeemed
	}
	coupon.Redeemed = true
	return nil
}

// SimRepositoryStub stores sims grouped by client id for tests.
type SimRepositoryStub struct {
	Sims map[string]map[string]model.SimArtifact
	Err  error
}

// NewSimRepositoryStub constructs stub repository with initialized map.
func NewSimRepositoryStub() *SimRepositoryStub {
	return &SimRepositoryStub{Sims: make(map[string]map[string]model.SimArtifact)}
}

// SaveSims merges the sims under the id keyed by iccid.
func (s *SimRepositoryStub) SaveSims(ctx context.Context, id string, sims []model.SimArtifact) error {
	if s.Err != nil {
		return s.Err
	}
	group, ok := s.Sims[id]
	if !ok {
		group = make(map[string]model.SimArtifact)
		s.Sims[id] = group
	}
	for _, sim := range sims {
		group[sim.ICCID] = sim
	}
	return nil
}

// ListSims returns stored sims for the id.
func (s *SimRepositoryStub) ListSims(ctx context.Context, id string) ([]model.SimArtifact, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.SimArtifact
	for _, sim := range s.Sims[id] {
		out = append(out, sim)
	}
	return out, nil
}

// MarkInstalled flips the installed flag on a stored sim.
func (s *SimRepositoryStub) MarkInstalled(ctx context.Context, id, iccid string, installed bool) error {
	if s.Err != nil {
		return s.Err
	}
	group, ok := s.Sims[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	sim, ok := group[iccid]
	if !ok {
		return domainErrors.ErrNotFound
	}
	sim.Installed = installed
	group[iccid] = sim
	return nil
}
