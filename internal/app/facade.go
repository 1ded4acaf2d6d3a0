package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/encryptSIM/backend/internal/adapter/airalo"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/storage/rediscache"
	"github.com/encryptSIM/backend/internal/usecase"
	"github.com/encryptSIM/backend/internal/worker"
)

// ErrorSink persists client-reported errors.
type ErrorSink interface {
	SaveErrorLog(ctx context.Context, message string, at time.Time) error
}

// HealthChecker verifies a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EsimFacade aggregates the application functionality exposed over HTTP.
type EsimFacade struct {
	profiles *usecase.ProfileUseCase
	orders   *usecase.OrderUseCase
	coupons  *usecase.CouponUseCase
	sims     *usecase.SimUseCase
	provider airalo.Provider
	cache    *rediscache.Cache
	watcher  *worker.Watcher
	errors   ErrorSink
	store    HealthChecker
}

func NewEsimFacade(
	profiles *usecase.ProfileUseCase,
	orders *usecase.OrderUseCase,
	coupons *usecase.CouponUseCase,
	sims *usecase.SimUseCase,
	provider airalo.Provider,
	cache *rediscache.Cache,
	watcher *worker.Watcher,
	errors ErrorSink,
	store HealthChecker,
) *EsimFacade {
	return &EsimFacade{
		profiles: profiles,
		orders:   orders,
		coupons:  coupons,
		sims:     sims,
		provider: provider,
		cache:    cache,
		watcher:  watcher,
		errors:   errors,
		store:    store,
	}
}

// CreateProfile mints a payment profile and returns its public identifier.
func (f *EsimFacade) CreateProfile(ctx context.Context) (string, error) {
	profile, err := f.profiles.Create(ctx)
	if err != nil {
		return "", err
	}
	return profile.PublicKey, nil
}

// CreateOrder registers an eSIM order and starts its settlement watch.
func (f *EsimFacade) CreateOrder(ctx context.Context, ppPublicKey, price string, spec model.ProductSpec) (*model.Order, error) {
	return f.createOrder(ctx, model.OrderKindEsim, ppPublicKey, price, spec)
}

// CreateTopup registers a top-up order and starts its settlement watch.
func (f *EsimFacade) CreateTopup(ctx context.Context, ppPublicKey, price string, spec model.ProductSpec) (*model.Order, error) {
	return f.createOrder(ctx, model.OrderKindTopup, ppPublicKey, price, spec)
}

func (f *EsimFacade) createOrder(ctx context.Context, kind model.OrderKind, ppPublicKey, price string, spec model.ProductSpec) (*model.Order, error) {
	order, err := f.orders.Create(ctx, kind, ppPublicKey, price, spec)
	if err != nil {
		return nil, err
	}
	f.watcher.Watch(*order)
	return order, nil
}

// Order fetches one order of either kind.
func (f *EsimFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

// OrdersByProfile lists a profile's eSIM orders.
func (f *EsimFacade) OrdersByProfile(ctx context.Context, ppPublicKey string) ([]model.Order, error) {
	return f.orders.ListByProfile(ctx, ppPublicKey, model.OrderKindEsim)
}

// TopupsByProfile lists a profile's top-up orders.
func (f *EsimFacade) TopupsByProfile(ctx context.Context, ppPublicKey string) ([]model.Order, error) {
	return f.orders.ListByProfile(ctx, ppPublicKey, model.OrderKindTopup)
}

// Packages returns the vendor's package catalog.
func (f *EsimFacade) Packages(ctx context.Context, packageType, country string) (json.RawMessage, error) {
	return f.provider.PackagePlans(ctx, packageType, country)
}

// SimTopups lists top-up packages available for a sim.
func (f *EsimFacade) SimTopups(ctx context.Context, iccid string) (json.RawMessage, error) {
	return f.provider.SIMTopups(ctx, iccid)
}

// SimUsage returns the vendor's usage report for a sim.
func (f *EsimFacade) SimUsage(ctx context.Context, iccid string) (json.RawMessage, error) {
	return f.provider.DataUsage(ctx, iccid)
}

// CompleteOrder provisions a batch of prepaid orders directly, outside settlement.
func (f *EsimFacade) CompleteOrder(ctx context.Context, id string, details []model.OrderDetails) ([]model.SimArtifact, error) {
	return f.sims.CompleteOrder(ctx, id, details)
}

// MarkSimInstalled updates a stored sim's installation flag.
func (f *EsimFacade) MarkSimInstalled(ctx context.Context, id, iccid string, installed bool) error {
	return f.sims.MarkInstalled(ctx, id, iccid, installed)
}

// FetchSims lists sims stored under a client id.
func (f *EsimFacade) FetchSims(ctx context.Context, id string) ([]model.SimArtifact, error) {
	return f.sims.FetchSims(ctx, id)
}

// Coupon fetches a coupon.
func (f *EsimFacade) Coupon(ctx context.Context, code string) (*model.Coupon, error) {
	return f.coupons.Get(ctx, code)
}

// RedeemCoupon redeems a coupon exactly once.
func (f *EsimFacade) RedeemCoupon(ctx context.Context, code string) (*model.Coupon, error) {
	return f.coupons.Redeem(ctx, code)
}

// CacheGet reads a cache entry.
func (f *EsimFacade) CacheGet(ctx context.Context, key string) (*rediscache.Entry, error) {
	return f.cache.Get(ctx, "cache/"+key)
}

// CacheSet stores a cache entry with an optional TTL in seconds.
func (f *EsimFacade) CacheSet(ctx context.Context, key string, value json.RawMessage, ttlSeconds int) error {
	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	return f.cache.Set(ctx, "cache/"+key, value, ttl)
}

// CacheDelete removes a cache entry.
func (f *EsimFacade) CacheDelete(ctx context.Context, key string) error {
	return f.cache.Delete(ctx, "cache/"+key)
}

// SimUsageGet reads the mirrored usage report for a sim.
func (f *EsimFacade) SimUsageGet(ctx context.Context, iccid string) (json.RawMessage, error) {
	entry, err := f.cache.Get(ctx, "sim-usage/"+iccid)
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

// SimUsageSet mirrors a usage report for a sim.
func (f *EsimFacade) SimUsageSet(ctx context.Context, iccid string, data json.RawMessage) error {
	return f.cache.Set(ctx, "sim-usage/"+iccid, data, 0)
}

// LogClientError persists an error reported by the frontend.
func (f *EsimFacade) LogClientError(ctx context.Context, message string) error {
	return f.errors.SaveErrorLog(ctx, message, time.Now())
}

// Health verifies the backing stores are reachable.
func (f *EsimFacade) Health(ctx context.Context) error {
	if err := f.store.HealthCheck(ctx); err != nil {
		return err
	}
	return f.cache.HealthCheck(ctx)
}
