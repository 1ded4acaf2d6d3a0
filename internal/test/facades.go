package test

import (
	"context"
	"encoding/json"

	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/storage/rediscache"
)

// ShopFacadeStub aggregates facade dependencies for HTTP layer tests.
type ShopFacadeStub struct {
	CreateProfileFn    func(context.Context) (string, error)
	CreateOrderFn      func(context.Context, string, string, model.ProductSpec) (*model.Order, error)
	CreateTopupFn      func(context.Context, string, string, model.ProductSpec) (*model.Order, error)
	OrderFn            func(context.Context, string) (*model.Order, error)
	OrdersByProfileFn  func(context.Context, string) ([]model.Order, error)
	TopupsByProfileFn  func(context.Context, string) ([]model.Order, error)
	PackagesFn         func(context.Context, string, string) (json.RawMessage, error)
	SimTopupsFn        func(context.Context, string) (json.RawMessage, error)
	SimUsageFn         func(context.Context, string) (json.RawMessage, error)
	CompleteOrderFn    func(context.Context, string, []model.OrderDetails) ([]model.SimArtifact, error)
	MarkSimInstalledFn func(context.Context, string, string, bool) error
	FetchSimsFn        func(context.Context, string) ([]model.SimArtifact, error)
	SimUsageGetFn      func(context.Context, string) (json.RawMessage, error)
	SimUsageSetFn      func(context.Context, string, json.RawMessage) error
	CouponFn           func(context.Context, string) (*model.Coupon, error)
	RedeemCouponFn     func(context.Context, string) (*model.Coupon, error)
	CacheGetFn         func(context.Context, string) (*rediscache.Entry, error)
	CacheSetFn         func(context.Context, string, json.RawMessage, int) error
	CacheDeleteFn      func(context.Context, string) error
	HealthFn           func(context.Context) error
	LogClientErrorFn   func(context.Context, string) error
}

// CreateProfile delegates to the override or succeeds with a fixed key.
func (s *ShopFacadeStub) CreateProfile(ctx context.Context) (string, error) {
	if s.CreateProfileFn != nil {
		return s.CreateProfileFn(ctx)
	}
	return "pub", nil
}

// CreateOrder delegates to the override or returns a pending order.
func (s *ShopFacadeStub) CreateOrder(ctx context.Context, ppPublicKey, price string, spec model.ProductSpec) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, ppPublicKey, price, spec)
	}
	return &model.Order{OrderID: "order-1", PPPublicKey: ppPublicKey, Status: model.OrderStatusPending}, nil
}

// CreateTopup delegates to the override or returns a pending order.
func (s *ShopFacadeStub) CreateTopup(ctx context.Context, ppPublicKey, price string, spec model.ProductSpec) (*model.Order, error) {
	if s.CreateTopupFn != nil {
		return s.CreateTopupFn(ctx, ppPublicKey, price, spec)
	}
	return &model.Order{OrderID: "topup-1", PPPublicKey: ppPublicKey, Kind: model.OrderKindTopup, Status: model.OrderStatusPending}, nil
}

// Order delegates to the override.
func (s *ShopFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{OrderID: orderID, Status: model.OrderStatusPending}, nil
}

// OrdersByProfile delegates to the override.
func (s *ShopFacadeStub) OrdersByProfile(ctx context.Context, ppPublicKey string) ([]model.Order, error) {
	if s.OrdersByProfileFn != nil {
		return s.OrdersByProfileFn(ctx, ppPublicKey)
	}
	return nil, nil
}

// TopupsByProfile delegates to the override.
func (s *ShopFacadeStub) TopupsByProfile(ctx context.Context, ppPublicKey string) ([]model.Order, error) {
	if s.TopupsByProfileFn != nil {
		return s.TopupsByProfileFn(ctx, ppPublicKey)
	}
	return nil, nil
}

// Packages delegates to the override.
func (s *ShopFacadeStub) Packages(ctx context.Context, packageType, country string) (json.RawMessage, error) {
	if s.PackagesFn != nil {
		return s.PackagesFn(ctx, packageType, country)
	}
	return json.RawMessage(`[]`), nil
}

// SimTopups delegates to the override.
func (s *ShopFacadeStub) SimTopups(ctx context.Context, iccid string) (json.RawMessage, error) {
	if s.SimTopupsFn != nil {
		return s.SimTopupsFn(ctx, iccid)
	}
	return json.RawMessage(`[]`), nil
}

// SimUsage delegates to the override.
func (s *ShopFacadeStub) SimUsage(ctx context.Context, iccid string) (json.RawMessage, error) {
	if s.SimUsageFn != nil {
		return s.SimUsageFn(ctx, iccid)
	}
	return json.RawMessage(`{}`), nil
}

// CompleteOrder delegates to the override.
func (s *ShopFacadeStub) CompleteOrder(ctx context.Context, id string, details []model.OrderDetails) ([]model.SimArtifact, error) {
	if s.CompleteOrderFn != nil {
		return s.CompleteOrderFn(ctx, id, details)
	}
	return nil, nil
}

// MarkSimInstalled delegates to the override.
func (s *ShopFacadeStub) MarkSimInstalled(ctx context.Context, id, iccid string, installed bool) error {
	if s.MarkSimInstalledFn != nil {
		return s.MarkSimInstalledFn(ctx, id, iccid, installed)
	}
	return nil
}

// FetchSims delegates to the override.
func (s *ShopFacadeStub) FetchSims(ctx context.Context, id string) ([]model.SimArtifact, error) {
	if s.FetchSimsFn != nil {
		return s.FetchSimsFn(ctx, id)
	}
	return nil, nil
}

// SimUsageGet delegates to the override.
func (s *ShopFacadeStub) SimUsageGet(ctx context.Context, iccid string) (json.RawMessage, error) {
	if s.SimUsageGetFn != nil {
		return s.SimUsageGetFn(ctx, iccid)
	}
	return json.RawMessage(`{}`), nil
}

// SimUsageSet delegates to the override.
func (s *ShopFacadeStub) SimUsageSet(ctx context.Context, iccid string, data json.RawMessage) error {
	if s.SimUsageSetFn != nil {
		return s.SimUsageSetFn(ctx, iccid, data)
	}
	return nil
}

// Coupon delegates to the override.
func (s *ShopFacadeStub) Coupon(ctx context.Context, code string) (*model.Coupon, error) {
	if s.CouponFn != nil {
		return s.CouponFn(ctx, code)
	}
	return &model.Coupon{Code: code, Redeemable: true}, nil
}

// RedeemCoupon delegates to the override.
func (s *ShopFacadeStub) RedeemCoupon(ctx context.Context, code string) (*model.Coupon, error) {
	if s.RedeemCouponFn != nil {
		return s.RedeemCouponFn(ctx, code)
	}
	return &model.Coupon{Code: code, Redeemable: true, Redeemed: true}, nil
}

// CacheGet delegates to the override.
func (s *ShopFacadeStub) CacheGet(ctx context.Context, key string) (*rediscache.Entry, error) {
	if s.CacheGetFn != nil {
		return s.CacheGetFn(ctx, key)
	}
	return &rediscache.Entry{Value: json.RawMessage(`null`)}, nil
}

// CacheSet delegates to the override.
func (s *ShopFacadeStub) CacheSet(ctx context.Context, key string, value json.RawMessage, ttlSeconds int) error {
	if s.CacheSetFn != nil {
		return s.CacheSetFn(ctx, key, value, ttlSeconds)
	}
	return nil
}

// CacheDelete delegates to the override.
func (s *ShopFacadeStub) CacheDelete(ctx context.Context, key string) error {
	if s.CacheDeleteFn != nil {
		return s.CacheDeleteFn(ctx, key)
	}
	return nil
}

// Health delegates to the override.
func (s *ShopFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// LogClientError delegates to the override.
func (s *ShopFacadeStub) LogClientError(ctx context.Context, message string) error {
	if s.LogClientErrorFn != nil {
		return s.LogClientErrorFn(ctx, message)
	}
	return nil
}
