package scholarship

import (
	"context"

	"scholarhub/internal/common"
)

type Repository interface {
	Create(ctx context.Context, s Scholarship) (*Scholarship, error)
	Update(ctx context.Context, s Scholarship) (*Scholarship, error)
	GetByID(ctx context.Context, id common.UUID) (*Scholarship, error)
	ListActive(ctx context.Context, limit, offset int) ([]Scholarship, error)
	ListByProvider(ctx context.Context, providerID common.UUID) ([]Scholarship, error)
}
