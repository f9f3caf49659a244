package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/cash-register/backend/internal/domain/entity"
)

// BarberModel represents the barbers table in the database.
type BarberModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null;index"`
	IsOwner   bool      `gorm:"not null"`
	IsActive  bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the BarberModel.
func (BarberModel) TableName() string {
	return "barbers"
}

// ToEntity converts a BarberModel to a domain Barber entity.
func (m *BarberModel) ToEntity() *entity.Barber {
	return &entity.Barber{
		ID:        m.ID,
		Name:      m.Name,
		IsOwner:   m.IsOwner,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BarberFromEntity creates a BarberModel from a domain Barber entity.
func BarberFromEntity(barber *entity.Barber) *BarberModel {
	return &BarberModel{
		ID:        barber.ID,
		Name:      barber.Name,
		IsOwner:   barber.IsOwner,
		IsActive:  barber.IsActive,
		CreatedAt: barber.CreatedAt,
		UpdatedAt: barber.UpdatedAt,
	}
}
