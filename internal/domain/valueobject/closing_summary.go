// Package valueobject contains domain value objects for the cash register system.
package valueobject

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/domain/entity"
)

// ClosingSummary holds the aggregates computed over a register's movements at close time.
type ClosingSummary struct {
	PaymentBreakdown entity.PaymentBreakdown
	SalesCount       int
	TotalSales       decimal.Decimal
	ExpensesCount    int
	TotalExpenses    decimal.Decimal
	BarberBreakdown  []entity.BarberBreakdown
}

// SummarizeMovements aggregates sales and expenses by payment method and barber.
//
// Sales with an unknown payment method count towards SalesCount and TotalSales
// but land in no payment bucket. Barber entries keep the order in which each
// barber first appears in movements. OPENING movements are ignored.
func SummarizeMovements(movements []*entity.CashMovement) ClosingSummary {
	summary := ClosingSummary{
		PaymentBreakdown: zeroBreakdown(),
		TotalSales:       decimal.Zero,
		TotalExpenses:    decimal.Zero,
		BarberBreakdown:  []entity.BarberBreakdown{},
	}
	barberIndex := make(map[uuid.UUID]int)

	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeSale:
			summary.SalesCount++
			summary.TotalSales = summary.TotalSales.Add(m.Amount)
			addToBreakdown(&summary.PaymentBreakdown, m.PaymentMethod, m.Amount)

			if m.BarberID == nil {
				continue
			}
			idx, ok := barberIndex[*m.BarberID]
			if !ok {
				name := ""
				if m.Barber != nil {
					name = m.Barber.Name
				}
				summary.BarberBreakdown = append(summary.BarberBreakdown, entity.BarberBreakdown{
					BarberID:         *m.BarberID,
					BarberName:       name,
					TotalSales:       decimal.Zero,
					PaymentBreakdown: zeroBreakdown(),
				})
				idx = len(summary.BarberBreakdown) - 1
				barberIndex[*m.BarberID] = idx
			}
			entry := &summary.BarberBreakdown[idx]
			entry.SalesCount++
			entry.TotalSales = entry.TotalSales.Add(m.Amount)
			addToBreakdown(&entry.PaymentBreakdown, m.PaymentMethod, m.Amount)

		case entity.MovementTypeExpense:
			summary.ExpensesCount++
			summary.TotalExpenses = summary.TotalExpenses.Add(m.Amount)
		}
	}

	return summary
}

// ApplyTo copies the aggregates onto a closing.
func (s ClosingSummary) ApplyTo(closing *entity.CashClosing) {
	closing.PaymentBreakdown = s.PaymentBreakdown
	closing.SalesCount = s.SalesCount
	closing.TotalSales = s.TotalSales
	closing.ExpensesCount = s.ExpensesCount
	closing.TotalExpenses = s.TotalExpenses
	closing.BarberBreakdown = s.BarberBreakdown
}

func zeroBreakdown() entity.PaymentBreakdown {
	return entity.PaymentBreakdown{
		Cash:     decimal.Zero,
		Card:     decimal.Zero,
		Transfer: decimal.Zero,
		Mixed:    decimal.Zero,
	}
}

func addToBreakdown(b *entity.PaymentBreakdown, method entity.PaymentMethod, amount decimal.Decimal) {
	switch method {
	case entity.PaymentMethodCash:
		b.Cash = b.Cash.Add(amount)
	case entity.PaymentMethodCard:
		b.Card = b.Card.Add(amount)
	case entity.PaymentMethodTransfer:
		b.Transfer = b.Transfer.Add(amount)
	case entity.PaymentMethodMixed:
		b.Mixed = b.Mixed.Add(amount)
	}
}
