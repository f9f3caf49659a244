package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the kind of cash movement.
type MovementType string

const (
	MovementTypeOpening MovementType = "OPENING"
	MovementTypeSale    MovementType = "SALE"
	MovementTypeExpense MovementType = "EXPENSE"
)

// IsRecordable reports whether clients may record a movement of this type.
// OPENING movements are only synthesized when a register is opened.
func (t MovementType) IsRecordable() bool {
	return t == MovementTypeSale || t == MovementTypeExpense
}

// PaymentMethod represents the channel a movement was paid through.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodMixed    PaymentMethod = "MIXED"
)

// IsValid reports whether the payment method is one of the known channels.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodMixed:
		return true
	default:
		return false
	}
}

// OpeningMovementDescription is the description attached to synthesized opening movements.
const OpeningMovementDescription = "Cash register opening"

// CashMovement is an append-only record of money entering or leaving a register.
type CashMovement struct {
	ID             uuid.UUID
	CashRegisterID uuid.UUID
	Type           MovementType
	Amount         decimal.Decimal // always positive, the sign comes from Type
	PaymentMethod  PaymentMethod
	Description    string
	Category       string
	BarberID       *uuid.UUID
	CreatedBy      uuid.UUID
	CreatedAt      time.Time

	// Barber is populated when the movement is loaded with its attribution.
	Barber *Barber
}

// NewCashMovement creates a movement for the given register.
func NewCashMovement(
	cashRegisterID uuid.UUID,
	movementType MovementType,
	amount decimal.Decimal,
	paymentMethod PaymentMethod,
	description string,
	category string,
	barberID *uuid.UUID,
	createdBy uuid.UUID,
	createdAt time.Time,
) *CashMovement {
	return &CashMovement{
		ID:             uuid.New(),
		CashRegisterID: cashRegisterID,
		Type:           movementType,
		Amount:         amount,
		PaymentMethod:  paymentMethod,
		Description:    description,
		Category:       category,
		BarberID:       barberID,
		CreatedBy:      createdBy,
		CreatedAt:      createdAt,
	}
}

// NewOpeningMovement creates the OPENING movement recorded alongside a new register.
func NewOpeningMovement(register *CashRegister) *CashMovement {
	return NewCashMovement(
		register.ID,
		MovementTypeOpening,
		register.Balance,
		PaymentMethodCash,
		OpeningMovementDescription,
		"",
		nil,
		register.UserID,
		register.OpenedAt,
	)
}

// Delta returns the signed effect of the movement on the register balance.
// OPENING movements carry the initial balance and have no delta.
func (m *CashMovement) Delta() decimal.Decimal {
	switch m.Type {
	case MovementTypeSale:
		return m.Amount
	case MovementTypeExpense:
		return m.Amount.Neg()
	default:
		return decimal.Zero
	}
}
