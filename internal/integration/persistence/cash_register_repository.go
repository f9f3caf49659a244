package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
	"github.com/cash-register/backend/internal/domain/valueobject"
	"github.com/cash-register/backend/internal/integration/persistence/model"
)

// cashRegisterRepository implements the adapter.CashRegisterRepository interface.
type cashRegisterRepository struct {
	db *gorm.DB
}

// NewCashRegisterRepository creates a new cash register repository instance.
func NewCashRegisterRepository(db *gorm.DB) adapter.CashRegisterRepository {
	return &cashRegisterRepository{
		db: db,
	}
}

// Open stores the register and its opening movement in one transaction.
func (r *cashRegisterRepository) Open(ctx context.Context, register *entity.CashRegister, opening *entity.CashMovement) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var openCount int64
		if err := tx.Model(&model.CashRegisterModel{}).
			Where("user_id = ? AND status = ?", register.UserID, entity.RegisterStatusOpen).
			Count(&openCount).Error; err != nil {
			return err
		}
		if openCount > 0 {
			return domainerror.ErrCashRegisterAlreadyOpen
		}

		if err := tx.Create(model.CashRegisterFromEntity(register)).Error; err != nil {
			return err
		}
		return tx.Create(model.CashMovementFromEntity(opening)).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race against a concurrent open; the partial unique index rejected it.
		return domainerror.ErrCashRegisterAlreadyOpen
	}
	return err
}

// FindOpenByUserID retrieves the user's open register.
func (r *cashRegisterRepository) FindOpenByUserID(ctx context.Context, userID uuid.UUID) (*entity.CashRegister, error) {
	var registerModel model.CashRegisterModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, entity.RegisterStatusOpen).
		First(&registerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNoOpenCashRegister
		}
		return nil, result.Error
	}
	return registerModel.ToEntity(), nil
}

// FindByIDForUser retrieves a register owned by the user, whatever its status.
func (r *cashRegisterRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.CashRegister, error) {
	var registerModel model.CashRegisterModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&registerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCashRegisterNotFound
		}
		return nil, result.Error
	}
	return registerModel.ToEntity(), nil
}

// RecordMovement inserts the movement and updates the balance in one transaction.
// The register row is locked so concurrent movements cannot lose an update.
func (r *cashRegisterRepository) RecordMovement(ctx context.Context, userID uuid.UUID, movement *entity.CashMovement) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		registerModel, err := lockOpenRegister(tx, movement.CashRegisterID, userID)
		if err != nil {
			return err
		}

		newBalance = registerModel.Balance.Add(movement.Delta())

		if err := tx.Create(model.CashMovementFromEntity(movement)).Error; err != nil {
			return err
		}

		result := tx.Model(&model.CashRegisterModel{}).
			Where("id = ? AND status = ?", registerModel.ID, entity.RegisterStatusOpen).
			Updates(map[string]any{
				"balance":    newBalance,
				"updated_at": movement.CreatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCashRegisterNotFound
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

// ListMovements retrieves a register's movements newest first.
func (r *cashRegisterRepository) ListMovements(ctx context.Context, cashRegisterID uuid.UUID) ([]*entity.CashMovement, error) {
	movementModels, err := findMovements(r.db.WithContext(ctx), cashRegisterID)
	if err != nil {
		return nil, err
	}

	movements := make([]*entity.CashMovement, len(movementModels))
	for i := range movementModels {
		movements[i] = movementModels[i].ToEntity()
	}
	return movements, nil
}

// Close aggregates the register's movements, stores the closing and flips the
// register to CLOSED, all in one transaction.
func (r *cashRegisterRepository) Close(ctx context.Context, params adapter.CloseRegisterParams) (*entity.CashClosing, error) {
	var closingID uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		registerModel, err := lockOpenRegister(tx, params.CashRegisterID, params.UserID)
		if err != nil {
			return err
		}

		movementModels, err := findMovements(tx, registerModel.ID)
		if err != nil {
			return err
		}
		movements := make([]*entity.CashMovement, len(movementModels))
		for i := range movementModels {
			movements[i] = movementModels[i].ToEntity()
		}

		register := registerModel.ToEntity()
		closing := entity.NewCashClosing(register, params.ActualBalance, params.Notes, params.UserID, params.ClosedAt)
		valueobject.SummarizeMovements(movements).ApplyTo(closing)

		if err := tx.Create(model.CashClosingFromEntity(closing)).Error; err != nil {
			return err
		}

		register.Close(params.ClosedAt)
		result := tx.Model(&model.CashRegisterModel{}).
			Where("id = ? AND status = ?", register.ID, entity.RegisterStatusOpen).
			Updates(map[string]any{
				"status":     register.Status,
				"closed_at":  register.ClosedAt,
				"updated_at": register.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCashRegisterNotFound
		}

		closingID = closing.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerror.ErrCashRegisterNotFound
		}
		return nil, err
	}

	var closingModel model.CashClosingModel
	result := r.closingsWithRelations(ctx).Where("cash_closings.id = ?", closingID).First(&closingModel)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to reload closing: %w", result.Error)
	}
	return closingModel.ToEntity(), nil
}

// ListClosings retrieves the user's closings newest first.
func (r *cashRegisterRepository) ListClosings(ctx context.Context, filter adapter.ClosingFilter) ([]*entity.CashClosing, error) {
	query := r.closingsWithRelations(ctx).
		Joins("JOIN cash_registers ON cash_registers.id = cash_closings.cash_register_id").
		Where("cash_registers.user_id = ?", filter.UserID)

	if filter.Range.From != nil {
		query = query.Where("cash_closings.closed_at >= ?", filter.Range.From.UTC())
	}
	if filter.Range.To != nil {
		query = query.Where("cash_closings.closed_at <= ?", filter.Range.To.UTC())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var closingModels []model.CashClosingModel
	if err := query.Order("cash_closings.closed_at DESC").Find(&closingModels).Error; err != nil {
		return nil, err
	}

	closings := make([]*entity.CashClosing, len(closingModels))
	for i := range closingModels {
		closings[i] = closingModels[i].ToEntity()
	}
	return closings, nil
}

func (r *cashRegisterRepository) closingsWithRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.CashClosingModel{}).
		Preload("CashRegister").
		Preload("ClosedByUser")
}

// lockOpenRegister loads an open register owned by userID with a row lock.
func lockOpenRegister(tx *gorm.DB, id, userID uuid.UUID) (*model.CashRegisterModel, error) {
	var registerModel model.CashRegisterModel
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, entity.RegisterStatusOpen).
		First(&registerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCashRegisterNotFound
		}
		return nil, result.Error
	}
	return &registerModel, nil
}

func findMovements(db *gorm.DB, cashRegisterID uuid.UUID) ([]model.CashMovementModel, error) {
	var movementModels []model.CashMovementModel
	result := db.Preload("Barber").
		Where("cash_register_id = ?", cashRegisterID).
		Order("created_at DESC, id DESC").
		Find(&movementModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return movementModels, nil
}
