package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	domainRepo "github.com/rihlahq/rihla-api/internal/domain/repository"
	"gorm.io/gorm"
)

type tierRepository struct {
	db *gorm.DB
}

// NewTierRepository creates a new subscription tier repository
func NewTierRepository(db *gorm.DB) domainRepo.TierRepository {
	return &tierRepository{db: db}
}

func (r *tierRepository) Create(ctx context.Context, tier *entity.Tier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

func (r *tierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tier, error) {
	var tier entity.Tier
	err := r.db.WithContext(ctx).First(&tier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tier, err
}

func (r *tierRepository) GetByName(ctx context.Context, name string) (*entity.Tier, error) {
	var tier entity.Tier
	err := r.db.WithContext(ctx).First(&tier, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tier, err
}

func (r *tierRepository) Update(ctx context.Context, tier *entity.Tier) error {
	return r.db.WithContext(ctx).Save(tier).Error
}

func (r *tierRepository) List(ctx context.Context) ([]entity.Tier, error) {
	var tiers []entity.Tier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tiers).Error
	return tiers, err
}
