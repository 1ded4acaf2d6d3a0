package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/test"
)

func TestProfileCreatePersistsMintedWallet(t *testing.T) {
	profiles := test.NewProfileRepositoryStub()
	minter := test.MinterStub{CreateWalletFn: func() (string, string, error) {
		return "pub-1", "priv-1", nil
	}}

	uc := NewProfileUseCase(profiles, minter)

	profile, err := uc.Create(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.PublicKey != "pub-1" || profile.PrivateKey != "priv-1" {
		t.Errorf("unexpected keypair: %+v", profile)
	}
	if profile.CreatedAt.IsZero() || profile.UpdatedAt.IsZero() {
		t.Errorf("expected timestamps set")
	}

	stored, err := profiles.Get(context.Background(), "pub-1")
	if err != nil {
		t.Fatalf("profile not persisted: %v", err)
	}
	if stored.PrivateKey != "priv-1" {
		t.Errorf("private key not persisted")
	}
}

func TestProfileCreateMintFailure(t *testing.T) {
	profiles := test.NewProfileRepositoryStub()
	minter := test.MinterStub{Err: errors.New("rpc down")}

	uc := NewProfileUseCase(profiles, minter)

	_, err := uc.Create(context.Background())
	if !errors.Is(err, domainErrors.ErrOracleUnavailable) {
		t.Fatalf("expected oracle error, got %v", err)
	}
	if len(profiles.Profiles) != 0 {
		t.Errorf("profile must not exist after mint failure")
	}
}

func TestProfileLinkOrderIsIdempotent(t *testing.T) {
	profiles := test.NewProfileRepositoryStub()
	minter := test.MinterStub{}
	uc := NewProfileUseCase(profiles, minter)

	profile, err := uc.Create(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := uc.LinkOrder(context.Background(), profile.PublicKey, "order-1"); err != nil {
			t.Fatalf("link %d: unexpected error: %v", i, err)
		}
	}

	stored, _ := uc.Get(context.Background(), profile.PublicKey)
	if len(stored.OrderIDs) != 1 {
		t.Errorf("expected single linked order, got %v", stored.OrderIDs)
	}

	if err := uc.UnlinkOrder(context.Background(), profile.PublicKey, "order-1"); err != nil {
		t.Fatalf("unlink: unexpected error: %v", err)
	}
	if err := uc.UnlinkOrder(context.Background(), profile.PublicKey, "order-1"); err != nil {
		t.Fatalf("second unlink must be a no-op: %v", err)
	}

	stored, _ = uc.Get(context.Background(), profile.PublicKey)
	if len(stored.OrderIDs) != 0 {
		t.Errorf("expected no linked orders, got %v", stored.OrderIDs)
	}
}
