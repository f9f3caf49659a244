package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterStatus represents the lifecycle state of a cash register.
type RegisterStatus string

const (
	RegisterStatusOpen   RegisterStatus = "OPEN"
	RegisterStatusClosed RegisterStatus = "CLOSED"
)

// CashRegister is a single cash-drawer session, from open to close.
// A user owns at most one register in the OPEN state.
type CashRegister struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    RegisterStatus
	Balance   decimal.Decimal
	OpenedAt  time.Time
	ClosedAt  *time.Time // nil while open
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCashRegister creates an open register holding the opening balance.
func NewCashRegister(userID uuid.UUID, openingBalance decimal.Decimal, openedAt time.Time) *CashRegister {
	return &CashRegister{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    RegisterStatusOpen,
		Balance:   openingBalance,
		OpenedAt:  openedAt,
		CreatedAt: openedAt,
		UpdatedAt: openedAt,
	}
}

// IsOpen reports whether the register still accepts movements.
func (r *CashRegister) IsOpen() bool {
	return r.Status == RegisterStatusOpen
}

// Close flips the register to its terminal state.
func (r *CashRegister) Close(closedAt time.Time) {
	r.Status = RegisterStatusClosed
	r.ClosedAt = &closedAt
	r.UpdatedAt = closedAt
}
