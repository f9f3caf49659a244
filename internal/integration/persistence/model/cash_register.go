package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/domain/entity"
)

// CashRegisterModel represents the cash_registers table in the database.
// The partial unique index keeps at most one OPEN register per user.
type CashRegisterModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cash_registers_one_open_per_user,where:status = 'OPEN'"`
	Status    string          `gorm:"type:varchar(10);not null;index"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	OpenedAt  time.Time       `gorm:"not null"`
	ClosedAt  *time.Time
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CashRegisterModel.
func (CashRegisterModel) TableName() string {
	return "cash_registers"
}

// ToEntity converts a CashRegisterModel to a domain CashRegister entity.
func (m *CashRegisterModel) ToEntity() *entity.CashRegister {
	return &entity.CashRegister{
		ID:        m.ID,
		UserID:    m.UserID,
		Status:    entity.RegisterStatus(m.Status),
		Balance:   m.Balance,
		OpenedAt:  m.OpenedAt,
		ClosedAt:  m.ClosedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CashRegisterFromEntity creates a CashRegisterModel from a domain CashRegister entity.
func CashRegisterFromEntity(register *entity.CashRegister) *CashRegisterModel {
	return &CashRegisterModel{
		ID:        register.ID,
		UserID:    register.UserID,
		Status:    string(register.Status),
		Balance:   register.Balance,
		OpenedAt:  register.OpenedAt,
		ClosedAt:  register.ClosedAt,
		CreatedAt: register.CreatedAt,
		UpdatedAt: register.UpdatedAt,
	}
}
