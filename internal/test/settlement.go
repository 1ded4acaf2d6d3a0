package test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/encryptSIM/backend/internal/domain/model"
)

// OracleStub simulates the on-chain payment oracle.
type OracleStub struct {
	CheckPaymentFn func(context.Context, string, decimal.Decimal) (bool, decimal.Decimal, error)
	SweepFn        func(context.Context, string, decimal.Decimal) (string, error)

	Enough    bool
	Observed  decimal.Decimal
	Signature string
	Err       error

	mu         sync.Mutex
	CheckCalls int
	SweepCalls int
}

// CheckPayment returns the configured balance verdict.
func (s *OracleStub) CheckPayment(ctx context.Context, address string, due decimal.Decimal) (bool, decimal.Decimal, error) {
	s.mu.Lock()
	s.CheckCalls++
	s.mu.Unlock()
	if s.CheckPaymentFn != nil {
		return s.CheckPaymentFn(ctx, address, due)
	}
	if s.Err != nil {
		return false, decimal.Zero, s.Err
	}
	return s.Enough, s.Observed, nil
}

// Sweep returns the configured transfer signature.
func (s *OracleStub) Sweep(ctx context.Context, privateKey string, amount decimal.Decimal) (string, error) {
	s.mu.Lock()
	s.SweepCalls++
	s.mu.Unlock()
	if s.SweepFn != nil {
		return s.SweepFn(ctx, privateKey, amount)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if s.Signature != "" {
		return s.Signature, nil
	}
	return "sig", nil
}

// MinterStub mints deterministic wallets for tests.
type MinterStub struct {
	CreateWalletFn func() (string, string, error)
	Err            error
}

// CreateWallet returns a fixed keypair unless overridden.
func (s MinterStub) CreateWallet() (string, string, error) {
	if s.CreateWalletFn != nil {
		return s.CreateWalletFn()
	}
	if s.Err != nil {
		return "", "", s.Err
	}
	return "pub", "priv", nil
}

// ProviderStub simulates the fulfillment vendor.
type ProviderStub struct {
	PlaceOrderFn   func(context.Context, model.ProductSpec) (*model.SimArtifact, error)
	PlaceTopupFn   func(context.Context, model.ProductSpec) (*model.SimArtifact, error)
	PackagePlansFn func(context.Context, string, string) (json.RawMessage, error)
	SIMTopupsFn    func(context.Context, string) (json.RawMessage, error)
	DataUsageFn    func(context.Context, string) (json.RawMessage, error)

	Sim *model.SimArtifact
	Err error

	mu          sync.Mutex
	OrderCalls  int
	TopupCalls  int
	PlacedSpecs []model.ProductSpec
}

// PlaceOrder returns the configured sim or a deterministic one.
func (s *ProviderStub) PlaceOrder(ctx context.Context, spec model.ProductSpec) (*model.SimArtifact, error) {
	s.mu.Lock()
	s.OrderCalls++
	s.PlacedSpecs = append(s.PlacedSpecs, spec)
	s.mu.Unlock()
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, spec)
	}
	return s.artifact(spec)
}

// PlaceTopup returns the configured sim or a deterministic one.
func (s *ProviderStub) PlaceTopup(ctx context.Context, spec model.ProductSpec) (*model.SimArtifact, error) {
	s.mu.Lock()
	s.TopupCalls++
	s.PlacedSpecs = append(s.PlacedSpecs, spec)
	s.mu.Unlock()
	if s.PlaceTopupFn != nil {
		return s.PlaceTopupFn(ctx, spec)
	}
	return s.artifact(spec)
}

func (s *ProviderStub) artifact(spec model.ProductSpec) (*model.SimArtifact, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Sim != nil {
		copied := *s.Sim
		return &copied, nil
	}
	iccid := spec.ICCID
	if iccid == "" {
		iccid = "8900000000000000000"
	}
	return &model.SimArtifact{ICCID: iccid, PackageID: spec.PackageID, QRCode: "LPA:1$test$" + iccid}, nil
}

// PackagePlans returns the configured catalog payload.
func (s *ProviderStub) PackagePlans(ctx context.Context, packageType, country string) (json.RawMessage, error) {
	if s.PackagePlansFn != nil {
		return s.PackagePlansFn(ctx, packageType, country)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return json.RawMessage(`[]`), nil
}

// SIMTopups returns the configured top-up payload.
func (s *ProviderStub) SIMTopups(ctx context.Context, iccid string) (json.RawMessage, error) {
	if s.SIMTopupsFn != nil {
		return s.SIMTopupsFn(ctx, iccid)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return json.RawMessage(`[]`), nil
}

// DataUsage returns the configured usage payload.
func (s *ProviderStub) DataUsage(ctx context.Context, iccid string) (json.RawMessage, error) {
	if s.DataUsageFn != nil {
		return s.DataUsageFn(ctx, iccid)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return json.RawMessage(`{}`), nil
}
