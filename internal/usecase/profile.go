package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/domain/repository"
)

// WalletMinter creates fresh custodial keypairs; the payment oracle provides it.
type WalletMinter interface {
	CreateWallet() (publicKey, privateKey string, err error)
}

// ProfileUseCase is the payment profile registry.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
	minter   WalletMinter
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(profiles repository.ProfileRepository, minter WalletMinter) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles, minter: minter}
}

// Create mints a custodial wallet and persists the profile. The profile does
// not exist until both steps succeed; only the public key is ever exposed.
func (u *ProfileUseCase) Create(ctx context.Context) (*model.PaymentProfile, error) {
	publicKey, privateKey, err := u.minter.CreateWallet()
	if err != nil {
		return nil, fmt.Errorf("%w: mint wallet: %s", domainErrors.ErrOracleUnavailable, err)
	}

	now := time.Now().UTC()
	profile := &model.PaymentProfile{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: persist profile: %s", domainErrors.ErrStoreFailure, err)
	}
	return profile, nil
}

// Get fetches a profile by its public key.
func (u *ProfileUseCase) Get(ctx context.Context, publicKey string) (*model.PaymentProfile, error) {
	return u.profiles.Get(ctx, publicKey)
}

// LinkOrder adds the order id to the profile's set; linking an already-present
// id is a no-op.
func (u *ProfileUseCase) LinkOrder(ctx context.Context, publicKey, orderID string) error {
	return u.profiles.LinkOrder(ctx, publicKey, orderID)
}

// UnlinkOrder removes the order id from the profile's set; removing an absent
// id is a no-op.
func (u *ProfileUseCase) UnlinkOrder(ctx context.Context, publicKey, orderID string) error {
	return u.profiles.UnlinkOrder(ctx, publicKey, orderID)
}
