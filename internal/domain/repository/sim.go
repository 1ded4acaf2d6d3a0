package repository

import (
	"context"

	"github.com/encryptSIM/backend/internal/domain/model"
)

// SimRepository stores provisioned sims grouped under an arbitrary client id.
type SimRepository interface {
	SaveSims(ctx context.Context, id string, sims []model.SimArtifact) error
	ListSims(ctx context.Context, id string) ([]model.SimArtifact, error)
	MarkInstalled(ctx context.Context, id, iccid string, installed bool) error
}
