package valueobject

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/domain/entity"
)

func movement(t entity.MovementType, amount string, method entity.PaymentMethod, barber *entity.Barber) *entity.CashMovement {
	m := &entity.CashMovement{
		ID:            uuid.New(),
		Type:          t,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: method,
	}
	if barber != nil {
		m.BarberID = &barber.ID
		m.Barber = barber
	}
	return m
}

func TestSummarizeMovements_BarberBreakdown(t *testing.T) {
	barberA := entity.NewBarber("Barbero A", true)
	barberB := entity.NewBarber("Barbero B", false)

	summary := SummarizeMovements([]*entity.CashMovement{
		movement(entity.MovementTypeOpening, "1000", entity.PaymentMethodCash, nil),
		movement(entity.MovementTypeSale, "300", entity.PaymentMethodCash, barberA),
		movement(entity.MovementTypeSale, "200", entity.PaymentMethodCard, barberB),
	})

	if len(summary.BarberBreakdown) != 2 {
		t.Fatalf("expected 2 barber entries, got %d", len(summary.BarberBreakdown))
	}

	a, b := summary.BarberBreakdown[0], summary.BarberBreakdown[1]
	if a.BarberID != barberA.ID || a.BarberName != "Barbero A" {
		t.Errorf("first entry should be barber A, got %s (%s)", a.BarberName, a.BarberID)
	}
	if !a.TotalSales.Equal(decimal.NewFromInt(300)) || a.SalesCount != 1 {
		t.Errorf("barber A: expected 300 over 1 sale, got %s over %d", a.TotalSales, a.SalesCount)
	}
	if !b.TotalSales.Equal(decimal.NewFromInt(200)) || !b.PaymentBreakdown.Card.Equal(decimal.NewFromInt(200)) {
		t.Errorf("barber B: expected 200 by card, got %s (card %s)", b.TotalSales, b.PaymentBreakdown.Card)
	}
	if !summary.PaymentBreakdown.Cash.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected cash 300, got %s", summary.PaymentBreakdown.Cash)
	}
	if !summary.PaymentBreakdown.Card.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected card 200, got %s", summary.PaymentBreakdown.Card)
	}
}

func TestSummarizeMovements_Totals(t *testing.T) {
	tests := []struct {
		name          string
		movements     []*entity.CashMovement
		salesCount    int
		totalSales    string
		expensesCount int
		totalExpenses string
		bucketTotal   string
	}{
		{
			name:          "empty register",
			movements:     nil,
			totalSales:    "0",
			totalExpenses: "0",
			bucketTotal:   "0",
		},
		{
			name: "opening only",
			movements: []*entity.CashMovement{
				movement(entity.MovementTypeOpening, "1000", entity.PaymentMethodCash, nil),
			},
			totalSales:    "0",
			totalExpenses: "0",
			bucketTotal:   "0",
		},
		{
			name: "sales and expenses across methods",
			movements: []*entity.CashMovement{
				movement(entity.MovementTypeSale, "10.10", entity.PaymentMethodCash, nil),
				movement(entity.MovementTypeSale, "20.20", entity.PaymentMethodTransfer, nil),
				movement(entity.MovementTypeSale, "0.30", entity.PaymentMethodMixed, nil),
				movement(entity.MovementTypeExpense, "5.55", entity.PaymentMethodCash, nil),
			},
			salesCount:    3,
			totalSales:    "30.60",
			expensesCount: 1,
			totalExpenses: "5.55",
			bucketTotal:   "30.60",
		},
		{
			name: "unknown method counts as sale but not in buckets",
			movements: []*entity.CashMovement{
				movement(entity.MovementTypeSale, "50", entity.PaymentMethodCard, nil),
				movement(entity.MovementTypeSale, "25", entity.PaymentMethod("CRYPTO"), nil),
			},
			salesCount:    2,
			totalSales:    "75",
			totalExpenses: "0",
			bucketTotal:   "50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeMovements(tt.movements)

			if summary.SalesCount != tt.salesCount {
				t.Errorf("SalesCount = %d, want %d", summary.SalesCount, tt.salesCount)
			}
			if !summary.TotalSales.Equal(decimal.RequireFromString(tt.totalSales)) {
				t.Errorf("TotalSales = %s, want %s", summary.TotalSales, tt.totalSales)
			}
			if summary.ExpensesCount != tt.expensesCount {
				t.Errorf("ExpensesCount = %d, want %d", summary.ExpensesCount, tt.expensesCount)
			}
			if !summary.TotalExpenses.Equal(decimal.RequireFromString(tt.totalExpenses)) {
				t.Errorf("TotalExpenses = %s, want %s", summary.TotalExpenses, tt.totalExpenses)
			}
			if !summary.PaymentBreakdown.Total().Equal(decimal.RequireFromString(tt.bucketTotal)) {
				t.Errorf("bucket total = %s, want %s", summary.PaymentBreakdown.Total(), tt.bucketTotal)
			}
			if summary.BarberBreakdown == nil {
				t.Error("BarberBreakdown should never be nil")
			}
		})
	}
}

func TestSummarizeMovements_BarberOrderFollowsFirstSale(t *testing.T) {
	first := entity.NewBarber("Zeta", false)
	second := entity.NewBarber("Alfa", false)

	summary := SummarizeMovements([]*entity.CashMovement{
		movement(entity.MovementTypeSale, "1", entity.PaymentMethodCash, first),
		movement(entity.MovementTypeSale, "2", entity.PaymentMethodCash, second),
		movement(entity.MovementTypeSale, "3", entity.PaymentMethodCash, first),
	})

	if len(summary.BarberBreakdown) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(summary.BarberBreakdown))
	}
	if summary.BarberBreakdown[0].BarberID != first.ID {
		t.Error("first barber to sell should come first")
	}
	if summary.BarberBreakdown[0].SalesCount != 2 || !summary.BarberBreakdown[0].TotalSales.Equal(decimal.NewFromInt(4)) {
		t.Errorf("expected 2 sales totalling 4, got %d totalling %s",
			summary.BarberBreakdown[0].SalesCount, summary.BarberBreakdown[0].TotalSales)
	}
}

func TestClosingSummary_ApplyTo(t *testing.T) {
	register := entity.NewCashRegister(uuid.New(), decimal.NewFromInt(1300), mustTime(t, "2024-05-10T09:00:00Z"))
	closing := entity.NewCashClosing(register, decimal.NewFromInt(1250), "", register.UserID, mustTime(t, "2024-05-10T20:00:00Z"))

	SummarizeMovements([]*entity.CashMovement{
		movement(entity.MovementTypeSale, "500", entity.PaymentMethodCash, nil),
		movement(entity.MovementTypeExpense, "200", entity.PaymentMethodCash, nil),
	}).ApplyTo(closing)

	if !closing.Difference.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("expected difference -50, got %s", closing.Difference)
	}
	if closing.SalesCount != 1 || closing.ExpensesCount != 1 {
		t.Errorf("expected 1 sale and 1 expense, got %d and %d", closing.SalesCount, closing.ExpensesCount)
	}
	if !closing.PaymentBreakdown.Cash.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected cash 500, got %s", closing.PaymentBreakdown.Cash)
	}
}
