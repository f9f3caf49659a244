package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
	"github.com/cash-register/backend/internal/integration/persistence/model"
)

// barberRepository implements the adapter.BarberRepository interface.
type barberRepository struct {
	db *gorm.DB
}

// NewBarberRepository creates a new barber repository instance.
func NewBarberRepository(db *gorm.DB) adapter.BarberRepository {
	return &barberRepository{
		db: db,
	}
}

// ListActive retrieves active barbers ordered by name.
func (r *barberRepository) ListActive(ctx context.Context) ([]*entity.Barber, error) {
	var barberModels []model.BarberModel
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barberModels)
	if result.Error != nil {
		return nil, result.Error
	}

	barbers := make([]*entity.Barber, len(barberModels))
	for i := range barberModels {
		barbers[i] = barberModels[i].ToEntity()
	}
	return barbers, nil
}

// FindActiveByID retrieves an active barber by ID.
func (r *barberRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.Barber, error) {
	var barberModel model.BarberModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&barberModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBarberNotFound
		}
		return nil, result.Error
	}
	return barberModel.ToEntity(), nil
}

// Count returns the total number of barbers.
func (r *barberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.BarberModel{}).Count(&count)
	return count, result.Error
}

// CreateBatch stores the barbers in a single insert.
func (r *barberRepository) CreateBatch(ctx context.Context, barbers []*entity.Barber) error {
	if len(barbers) == 0 {
		return nil
	}

	barberModels := make([]*model.BarberModel, len(barbers))
	for i, b := range barbers {
		barberModels[i] = model.BarberFromEntity(b)
	}
	return r.db.WithContext(ctx).Create(&barberModels).Error
}
