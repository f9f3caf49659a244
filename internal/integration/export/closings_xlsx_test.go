package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cash-register/backend/internal/domain/entity"
)

func TestXLSXExporter_Export(t *testing.T) {
	closedAt := time.Date(2024, 5, 10, 20, 30, 0, 0, time.UTC)
	closing := &entity.CashClosing{
		ID:              uuid.New(),
		ExpectedBalance: decimal.NewFromInt(550),
		ActualBalance:   decimal.NewFromInt(500),
		Difference:      decimal.NewFromInt(-50),
		Notes:           "short",
		ClosedAt:        closedAt,
		PaymentBreakdown: entity.PaymentBreakdown{
			Cash:     decimal.NewFromInt(300),
			Card:     decimal.NewFromInt(200),
			Transfer: decimal.Zero,
			Mixed:    decimal.Zero,
		},
		SalesCount:    2,
		TotalSales:    decimal.NewFromInt(500),
		ExpensesCount: 1,
		TotalExpenses: decimal.NewFromInt(50),
		BarberBreakdown: []entity.BarberBreakdown{
			{BarberID: uuid.New(), BarberName: "A", TotalSales: decimal.NewFromInt(300), SalesCount: 1},
			{BarberID: uuid.New(), BarberName: "B", TotalSales: decimal.NewFromInt(200), SalesCount: 1},
		},
		ClosedByUser: &entity.User{Name: "Cashier"},
		CashRegister: &entity.CashRegister{OpenedAt: closedAt.Add(-8 * time.Hour)},
	}

	exporter := NewXLSXExporter(time.UTC)
	assert.Equal(t, xlsxContentType, exporter.ContentType())
	assert.Equal(t, "xlsx", exporter.FileExtension())

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, []*entity.CashClosing{closing}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{closingsSheet, barbersSheet}, f.GetSheetList())

	rows, err := f.GetRows(closingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Closed At", rows[0][0])
	assert.Equal(t, "2024-05-10 20:30:00", rows[1][0])
	assert.Equal(t, "2024-05-10 12:30:00", rows[1][1])
	assert.Equal(t, "Cashier", rows[1][2])
	assert.Equal(t, "-50", rows[1][5])
	assert.Equal(t, "short", rows[1][14])

	barberRows, err := f.GetRows(barbersSheet)
	require.NoError(t, err)
	require.Len(t, barberRows, 3)
	assert.Equal(t, "A", barberRows[1][1])
	assert.Equal(t, "B", barberRows[2][1])
}

func TestXLSXExporter_EmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter(nil).Export(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(closingsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
