package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentBreakdown holds sale totals per payment method.
type PaymentBreakdown struct {
	Cash     decimal.Decimal
	Card     decimal.Decimal
	Transfer decimal.Decimal
	Mixed    decimal.Decimal
}

// Total returns the sum of all buckets.
func (p PaymentBreakdown) Total() decimal.Decimal {
	return p.Cash.Add(p.Card).Add(p.Transfer).Add(p.Mixed)
}

// BarberBreakdown holds the sales attributed to one barber.
type BarberBreakdown struct {
	BarberID         uuid.UUID
	BarberName       string
	TotalSales       decimal.Decimal
	SalesCount       int
	PaymentBreakdown PaymentBreakdown
}

// CashClosing is the reconciliation snapshot produced when a register closes.
// It is created once per register and never modified.
type CashClosing struct {
	ID              uuid.UUID
	CashRegisterID  uuid.UUID
	ExpectedBalance decimal.Decimal
	ActualBalance   decimal.Decimal
	Difference      decimal.Decimal
	Notes           string
	ClosedBy        uuid.UUID
	ClosedAt        time.Time

	PaymentBreakdown PaymentBreakdown
	SalesCount       int
	TotalSales       decimal.Decimal
	ExpensesCount    int
	TotalExpenses    decimal.Decimal
	BarberBreakdown  []BarberBreakdown

	// Relations populated by queries that load them.
	ClosedByUser *User
	CashRegister *CashRegister
}

// NewCashClosing creates a closing for the register, computing the difference
// between the counted and the expected balance.
func NewCashClosing(register *CashRegister, actualBalance decimal.Decimal, notes string, closedBy uuid.UUID, closedAt time.Time) *CashClosing {
	return &CashClosing{
		ID:              uuid.New(),
		CashRegisterID:  register.ID,
		ExpectedBalance: register.Balance,
		ActualBalance:   actualBalance,
		Difference:      actualBalance.Sub(register.Balance),
		Notes:           notes,
		ClosedBy:        closedBy,
		ClosedAt:        closedAt,
		TotalSales:      decimal.Zero,
		TotalExpenses:   decimal.Zero,
		BarberBreakdown: []BarberBreakdown{},
		CashRegister:    register,
	}
}
