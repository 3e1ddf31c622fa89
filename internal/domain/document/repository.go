package document

import (
	"context"

	"scholarhub/internal/common"
)

type Repository interface {
	Create(ctx context.Context, d Document) (*Document, error)
	GetByID(ctx context.Context, id common.UUID) (*Document, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Document, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status, comments string) (*Document, error)
	Delete(ctx context.Context, id common.UUID) error
}
