package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/domain/entity"
)

// CashMovementModel represents the cash_movements table in the database.
type CashMovementModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CashRegisterID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           string          `gorm:"type:varchar(10);not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentMethod  string          `gorm:"type:varchar(10);not null"`
	Description    string          `gorm:"type:varchar(255)"`
	Category       string          `gorm:"type:varchar(100)"`
	BarberID       *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt      time.Time       `gorm:"not null;index"`

	// Relationships (not loaded by default, use Preload)
	CashRegister *CashRegisterModel `gorm:"foreignKey:CashRegisterID;references:ID"`
	Barber       *BarberModel       `gorm:"foreignKey:BarberID;references:ID"`
}

// TableName returns the table name for the CashMovementModel.
func (CashMovementModel) TableName() string {
	return "cash_movements"
}

// ToEntity converts a CashMovementModel to a domain CashMovement entity.
func (m *CashMovementModel) ToEntity() *entity.CashMovement {
	movement := &entity.CashMovement{
		ID:             m.ID,
		CashRegisterID: m.CashRegisterID,
		Type:           entity.MovementType(m.Type),
		Amount:         m.Amount,
		PaymentMethod:  entity.PaymentMethod(m.PaymentMethod),
		Description:    m.Description,
		Category:       m.Category,
		BarberID:       m.BarberID,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
	if m.Barber != nil {
		movement.Barber = m.Barber.ToEntity()
	}
	return movement
}

// CashMovementFromEntity creates a CashMovementModel from a domain CashMovement entity.
func CashMovementFromEntity(movement *entity.CashMovement) *CashMovementModel {
	return &CashMovementModel{
		ID:             movement.ID,
		CashRegisterID: movement.CashRegisterID,
		Type:           string(movement.Type),
		Amount:         movement.Amount,
		PaymentMethod:  string(movement.PaymentMethod),
		Description:    movement.Description,
		Category:       movement.Category,
		BarberID:       movement.BarberID,
		CreatedBy:      movement.CreatedBy,
		CreatedAt:      movement.CreatedAt,
	}
}
