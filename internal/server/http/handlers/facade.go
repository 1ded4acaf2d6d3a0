package handlers

import (
	"context"
	"encoding/json"

	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/storage/rediscache"
)

// ProfileFacade mints payment profiles.
type ProfileFacade interface {
	CreateProfile(ctx context.Context) (string, error)
}

// OrderFacade exposes order registration and lookup for both kinds.
type OrderFacade interface {
	CreateOrder(ctx context.Context, ppPublicKey, price string, spec model.ProductSpec) (*model.Order, error)
	CreateTopup(ctx context.Context, ppPublicKey, price string, spec model.ProductSpec) (*model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
	OrdersByProfile(ctx context.Context, ppPublicKey string) ([]model.Order, error)
	TopupsByProfile(ctx context.Context, ppPublicKey string) ([]model.Order, error)
}

// CatalogFacade proxies the vendor catalog and usage reports.
type CatalogFacade interface {
	Packages(ctx context.Context, packageType, country string) (json.RawMessage, error)
	SimTopups(ctx context.Context, iccid string) (json.RawMessage, error)
	SimUsage(ctx context.Context, iccid string) (json.RawMessage, error)
}

// SimFacade covers sims provisioned outside the settlement flow.
type SimFacade interface {
	CompleteOrder(ctx context.Context, id string, details []model.OrderDetails) ([]model.SimArtifact, error)
	MarkSimInstalled(ctx context.Context, id, iccid string, installed bool) error
	FetchSims(ctx context.Context, id string) ([]model.SimArtifact, error)
	SimUsageGet(ctx context.Context, iccid string) (json.RawMessage, error)
	SimUsageSet(ctx context.Context, iccid string, data json.RawMessage) error
}

// CouponFacade covers coupon lookup and redemption.
type CouponFacade interface {
	Coupon(ctx context.Context, code string) (*model.Coupon, error)
	RedeemCoupon(ctx context.Context, code string) (*model.Coupon, error)
}

// CacheFacade is the generic keyed cache surface.
type CacheFacade interface {
	CacheGet(ctx context.Context, key string) (*rediscache.Entry, error)
	CacheSet(ctx context.Context, key string, value json.RawMessage, ttlSeconds int) error
	CacheDelete(ctx context.Context, key string) error
}

// OpsFacade covers health checks and client error intake.
type OpsFacade interface {
	Health(ctx context.Context) error
	LogClientError(ctx context.Context, message string) error
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	ProfileFacade
	OrderFacade
	CatalogFacade
	SimFacade
	CouponFacade
	CacheFacade
	OpsFacade
}
