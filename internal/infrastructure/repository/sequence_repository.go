package repository

import (
	"context"
	"errors"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	domainRepo "github.com/rihlahq/rihla-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence counter repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments and returns the tenant's counter in one upsert, so two
// concurrent callers never see the same value.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return 0, errors.New("tenant missing from context")
	}

	counter := entity.SequenceCounter{TenantID: tenantID, Name: name, Value: 1}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "name"}},
		DoUpdates: []clause.Assignment{
			{Column: clause.Column{Name: "value"}, Value: gorm.Expr("sequence_counters.value + 1")},
		},
	}, clause.Returning{Columns: []clause.Column{{Name: "value"}}}).
		Create(&counter).Error

	return counter.Value, err
}
