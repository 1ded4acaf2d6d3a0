package usecase

import (
	"context"
	"fmt"

	"github.com/encryptSIM/backend/internal/adapter/airalo"
	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/domain/repository"
)

// SimUseCase manages sims provisioned outside the settlement flow: direct
// completion of prepaid order batches and per-sim bookkeeping.
type SimUseCase struct {
	sims     repository.SimRepository
	provider airalo.Provider
}

// NewSimUseCase constructs SimUseCase.
func NewSimUseCase(sims repository.SimRepository, provider airalo.Provider) *SimUseCase {
	return &SimUseCase{sims: sims, provider: provider}
}

// CompleteOrder provisions every order in the batch and stores the resulting
// sims under the client id. Any provider failure fails the whole batch before
// anything is persisted.
func (u *SimUseCase) CompleteOrder(ctx context.Context, id string, details []model.OrderDetails) ([]model.SimArtifact, error) {
	sims := make([]model.SimArtifact, 0, len(details))
	for _, d := range details {
		artifact, err := u.provider.PlaceOrder(ctx, d.ProductSpec)
		if err != nil {
			return nil, fmt.Errorf("place order %s: %w", d.PackageID, err)
		}
		d.Decorate(artifact)
		sims = append(sims, *artifact)
	}

	if err := u.sims.SaveSims(ctx, id, sims); err != nil {
		return nil, fmt.Errorf("%w: save sims: %s", domainErrors.ErrStoreFailure, err)
	}
	return sims, nil
}

// MarkInstalled flips the installed flag on a stored sim.
func (u *SimUseCase) MarkInstalled(ctx context.Context, id, iccid string, installed bool) error {
	return u.sims.MarkInstalled(ctx, id, iccid, installed)
}

// FetchSims lists the sims stored under an id.
func (u *SimUseCase) FetchSims(ctx context.Context, id string) ([]model.SimArtifact, error) {
	return u.sims.ListSims(ctx, id)
}
