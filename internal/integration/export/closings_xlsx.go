// Package export renders closings history into downloadable documents.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	closingsSheet = "Closings"
	barbersSheet  = "Barbers"
)

var closingsHeader = []any{
	"Closed At", "Opened At", "Closed By", "Expected Balance", "Actual Balance", "Difference",
	"Sales Count", "Total Sales", "Expenses Count", "Total Expenses",
	"Cash", "Card", "Transfer", "Mixed", "Notes",
}

var barbersHeader = []any{
	"Closed At", "Barber", "Sales Count", "Total Sales", "Cash", "Card", "Transfer", "Mixed",
}

// xlsxExporter implements the adapter.ClosingExporter interface.
type xlsxExporter struct {
	location *time.Location
}

// NewXLSXExporter creates an exporter rendering timestamps in the given location.
func NewXLSXExporter(location *time.Location) adapter.ClosingExporter {
	if location == nil {
		location = time.UTC
	}
	return &xlsxExporter{location: location}
}

// ContentType returns the MIME type of the generated workbook.
func (e *xlsxExporter) ContentType() string {
	return xlsxContentType
}

// FileExtension returns the workbook extension.
func (e *xlsxExporter) FileExtension() string {
	return "xlsx"
}

// Export writes a workbook with one row per closing and a sheet of per-barber sales.
func (e *xlsxExporter) Export(w io.Writer, closings []*entity.CashClosing) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet is renamed rather than left empty.
	if err := f.SetSheetName("Sheet1", closingsSheet); err != nil {
		return fmt.Errorf("failed to prepare sheet: %w", err)
	}
	if _, err := f.NewSheet(barbersSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := setRow(f, closingsSheet, 1, closingsHeader); err != nil {
		return err
	}
	if err := setRow(f, barbersSheet, 1, barbersHeader); err != nil {
		return err
	}

	barberRow := 2
	for i, c := range closings {
		if err := setRow(f, closingsSheet, i+2, e.closingRow(c)); err != nil {
			return err
		}

		for _, b := range c.BarberBreakdown {
			row := []any{
				e.format(c.ClosedAt),
				b.BarberName,
				b.SalesCount,
				b.TotalSales.InexactFloat64(),
				b.PaymentBreakdown.Cash.InexactFloat64(),
				b.PaymentBreakdown.Card.InexactFloat64(),
				b.PaymentBreakdown.Transfer.InexactFloat64(),
				b.PaymentBreakdown.Mixed.InexactFloat64(),
			}
			if err := setRow(f, barbersSheet, barberRow, row); err != nil {
				return err
			}
			barberRow++
		}
	}

	if err := f.SetColWidth(closingsSheet, "A", "C", 22); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *xlsxExporter) closingRow(c *entity.CashClosing) []any {
	openedAt := ""
	if c.CashRegister != nil {
		openedAt = e.format(c.CashRegister.OpenedAt)
	}
	closedBy := ""
	if c.ClosedByUser != nil {
		closedBy = c.ClosedByUser.Name
	}

	return []any{
		e.format(c.ClosedAt),
		openedAt,
		closedBy,
		c.ExpectedBalance.InexactFloat64(),
		c.ActualBalance.InexactFloat64(),
		c.Difference.InexactFloat64(),
		c.SalesCount,
		c.TotalSales.InexactFloat64(),
		c.ExpensesCount,
		c.TotalExpenses.InexactFloat64(),
		c.PaymentBreakdown.Cash.InexactFloat64(),
		c.PaymentBreakdown.Card.InexactFloat64(),
		c.PaymentBreakdown.Transfer.InexactFloat64(),
		c.PaymentBreakdown.Mixed.InexactFloat64(),
		c.Notes,
	}
}

func (e *xlsxExporter) format(t time.Time) string {
	return t.In(e.location).Format("2006-01-02 15:04:05")
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
