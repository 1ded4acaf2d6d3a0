package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/test"
)

func TestCompleteOrderProvisionsAndDecorates(t *testing.T) {
	sims := test.NewSimRepositoryStub()
	provider := &test.ProviderStub{}

	uc := NewSimUseCase(sims, provider)

	details := []model.OrderDetails{
		{
			ProductSpec:  model.ProductSpec{PackageID: "pkg-1", Quantity: 1},
			PackageTitle: "Europe 5GB",
			Region:       "Europe",
			CountryCode:  "FR",
			ExpirationMs: 1000,
		},
	}

	got, err := uc.CompleteOrder(context.Background(), "client-1", details)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one sim, got %d", len(got))
	}
	if got[0].PackageTitle != "Europe 5GB" || got[0].Region != "Europe" || got[0].ExpirationMs != 1000 {
		t.Errorf("metadata not applied: %+v", got[0])
	}

	stored, _ := sims.ListSims(context.Background(), "client-1")
	if len(stored) != 1 || stored[0].PackageTitle != "Europe 5GB" {
		t.Errorf("decorated sim not persisted: %+v", stored)
	}
}

func TestCompleteOrderFailsWholeBatchOnProviderError(t *testing.T) {
	sims := test.NewSimRepositoryStub()
	provider := &test.ProviderStub{}
	provider.PlaceOrderFn = func(_ context.Context, spec model.ProductSpec) (*model.SimArtifact, error) {
		if spec.PackageID == "bad" {
			return nil, domainErrors.ErrProviderFailure
		}
		return &model.SimArtifact{ICCID: "89000", PackageID: spec.PackageID}, nil
	}

	uc := NewSimUseCase(sims, provider)

	details := []model.OrderDetails{
		{ProductSpec: model.ProductSpec{PackageID: "good", Quantity: 1}},
		{ProductSpec: model.ProductSpec{PackageID: "bad", Quantity: 1}},
	}

	_, err := uc.CompleteOrder(context.Background(), "client-1", details)
	if !errors.Is(err, domainErrors.ErrProviderFailure) {
		t.Fatalf("expected provider failure, got %v", err)
	}
	if stored, _ := sims.ListSims(context.Background(), "client-1"); len(stored) != 0 {
		t.Errorf("partial batch must not be persisted, got %+v", stored)
	}
}

func TestMarkInstalled(t *testing.T) {
	sims := test.NewSimRepositoryStub()
	sims.Sims["client-1"] = map[string]model.SimArtifact{
		"89000": {ICCID: "89000"},
	}

	uc := NewSimUseCase(sims, &test.ProviderStub{})

	if err := uc.MarkInstalled(context.Background(), "client-1", "89000", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sims.Sims["client-1"]["89000"].Installed {
		t.Errorf("installed flag not set")
	}

	err := uc.MarkInstalled(context.Background(), "client-1", "ghost", true)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown iccid, got %v", err)
	}
}

func TestFetchSims(t *testing.T) {
	sims := test.NewSimRepositoryStub()
	sims.Sims["client-1"] = map[string]model.SimArtifact{
		"89000": {ICCID: "89000"},
		"89001": {ICCID: "89001"},
	}

	uc := NewSimUseCase(sims, &test.ProviderStub{})

	got, err := uc.FetchSims(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected two sims, got %d", len(got))
	}
}
