package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/test"
)

func seedProfile(profiles *test.ProfileRepositoryStub, publicKey string) {
	profiles.Profiles[publicKey] = &model.PaymentProfile{PublicKey: publicKey, PrivateKey: "priv"}
}

func TestOrderCreateRegistersPendingOrder(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	profiles := test.NewProfileRepositoryStub()
	seedProfile(profiles, "pp-1")

	uc := NewOrderUseCase(orders, profiles)

	spec := model.ProductSpec{PackageID: "pkg-1", Quantity: 2}
	order, err := uc.Create(context.Background(), model.OrderKindEsim, "pp-1", "0.5", spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.OrderID == "" {
		t.Errorf("expected generated order id")
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if order.Kind != model.OrderKindEsim {
		t.Errorf("expected esim kind, got %s", order.Kind)
	}
	if order.PriceSol != "0.5" || order.PackageID != "pkg-1" || order.Quantity != 2 {
		t.Errorf("order fields not copied: %+v", order)
	}

	stored, err := orders.Get(context.Background(), order.OrderID)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if stored.Status != model.OrderStatusPending {
		t.Errorf("persisted status mismatch: %s", stored.Status)
	}

	profile, _ := profiles.Get(context.Background(), "pp-1")
	if !profile.HasOrder(order.OrderID) {
		t.Errorf("order not linked to profile")
	}
}

func TestOrderCreateTopupKeepsICCID(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	profiles := test.NewProfileRepositoryStub()
	seedProfile(profiles, "pp-1")

	uc := NewOrderUseCase(orders, profiles)

	spec := model.ProductSpec{PackageID: "pkg-1", Quantity: 1, ICCID: "89000"}
	order, err := uc.Create(context.Background(), model.OrderKindTopup, "pp-1", "0.2", spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Kind != model.OrderKindTopup || order.ICCID != "89000" {
		t.Errorf("topup fields not copied: %+v", order)
	}
}

func TestOrderCreateRejectsBadPrice(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	profiles := test.NewProfileRepositoryStub()
	seedProfile(profiles, "pp-1")

	uc := NewOrderUseCase(orders, profiles)

	for _, price := range []string{"", "abc", "0", "-1"} {
		_, err := uc.Create(context.Background(), model.OrderKindEsim, "pp-1", price, model.ProductSpec{PackageID: "pkg-1", Quantity: 1})
		if !errors.Is(err, domainErrors.ErrInvalidPrice) {
			t.Errorf("price %q: expected invalid price error, got %v", price, err)
		}
	}
	if len(orders.Orders) != 0 {
		t.Errorf("rejected orders must not be persisted")
	}
}

func TestOrderCreateRejectsUnknownProfile(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	profiles := test.NewProfileRepositoryStub()

	uc := NewOrderUseCase(orders, profiles)

	_, err := uc.Create(context.Background(), model.OrderKindEsim, "ghost", "0.5", model.ProductSpec{PackageID: "pkg-1", Quantity: 1})
	if !errors.Is(err, domainErrors.ErrProfileNotFound) {
		t.Fatalf("expected profile not found, got %v", err)
	}
	if len(orders.Orders) != 0 {
		t.Errorf("order must not be persisted for unknown profile")
	}
}

func TestOrderListByProfileFiltersKind(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	profiles := test.NewProfileRepositoryStub()
	seedProfile(profiles, "pp-1")

	orders.Put(model.Order{OrderID: "o-1", PPPublicKey: "pp-1", Kind: model.OrderKindEsim})
	orders.Put(model.Order{OrderID: "o-2", PPPublicKey: "pp-1", Kind: model.OrderKindTopup})
	orders.Put(model.Order{OrderID: "o-3", PPPublicKey: "pp-2", Kind: model.OrderKindEsim})

	uc := NewOrderUseCase(orders, profiles)

	esims, err := uc.ListByProfile(context.Background(), "pp-1", model.OrderKindEsim)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(esims) != 1 || esims[0].OrderID != "o-1" {
		t.Errorf("unexpected esim orders: %+v", esims)
	}

	topups, err := uc.ListByProfile(context.Background(), "pp-1", model.OrderKindTopup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topups) != 1 || topups[0].OrderID != "o-2" {
		t.Errorf("unexpected topup orders: %+v", topups)
	}
}
