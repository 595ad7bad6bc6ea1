package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
)

// TierRepository defines the interface for subscription tier operations
type TierRepository interface {
	Create(ctx context.Context, tier *entity.Tier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tier, error)
	GetByName(ctx context.Context, name string) (*entity.Tier, error)
	Update(ctx context.Context, tier *entity.Tier) error
	List(ctx context.Context) ([]entity.Tier, error)
}
