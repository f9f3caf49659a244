package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/domain/entity"
)

// PaymentBreakdownJSON is the stored form of per-method totals.
type PaymentBreakdownJSON struct {
	Cash     decimal.Decimal `json:"cash"`
	Card     decimal.Decimal `json:"card"`
	Transfer decimal.Decimal `json:"transfer"`
	Mixed    decimal.Decimal `json:"mixed"`
}

// BarberBreakdownJSON is the stored form of one barber's sales.
type BarberBreakdownJSON struct {
	BarberID         uuid.UUID            `json:"barberId"`
	BarberName       string               `json:"barberName"`
	TotalSales       decimal.Decimal      `json:"totalSales"`
	SalesCount       int                  `json:"salesCount"`
	PaymentBreakdown PaymentBreakdownJSON `json:"paymentBreakdown"`
}

// BarberBreakdownList is persisted as a JSON text column.
type BarberBreakdownList []BarberBreakdownJSON

// Value implements the driver.Valuer interface.
func (l BarberBreakdownList) Value() (driver.Value, error) {
	if l == nil {
		l = BarberBreakdownList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface.
func (l *BarberBreakdownList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = BarberBreakdownList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// CashClosingModel represents the cash_closings table in the database.
type CashClosingModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CashRegisterID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ExpectedBalance decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ActualBalance   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Difference      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes           string          `gorm:"type:text"`
	ClosedBy        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClosedAt        time.Time       `gorm:"not null;index"`

	TotalCash       decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	TotalCard       decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	TotalTransfer   decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	TotalMixed      decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	SalesCount      int                 `gorm:"not null;default:0"`
	TotalSales      decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	ExpensesCount   int                 `gorm:"not null;default:0"`
	TotalExpenses   decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	BarberBreakdown BarberBreakdownList `gorm:"type:text"`

	// Relationships (not loaded by default, use Preload)
	CashRegister *CashRegisterModel `gorm:"foreignKey:CashRegisterID;references:ID"`
	ClosedByUser *UserModel         `gorm:"foreignKey:ClosedBy;references:ID"`
}

// TableName returns the table name for the CashClosingModel.
func (CashClosingModel) TableName() string {
	return "cash_closings"
}

// ToEntity converts a CashClosingModel to a domain CashClosing entity.
func (m *CashClosingModel) ToEntity() *entity.CashClosing {
	closing := &entity.CashClosing{
		ID:              m.ID,
		CashRegisterID:  m.CashRegisterID,
		ExpectedBalance: m.ExpectedBalance,
		ActualBalance:   m.ActualBalance,
		Difference:      m.Difference,
		Notes:           m.Notes,
		ClosedBy:        m.ClosedBy,
		ClosedAt:        m.ClosedAt,
		PaymentBreakdown: entity.PaymentBreakdown{
			Cash:     m.TotalCash,
			Card:     m.TotalCard,
			Transfer: m.TotalTransfer,
			Mixed:    m.TotalMixed,
		},
		SalesCount:      m.SalesCount,
		TotalSales:      m.TotalSales,
		ExpensesCount:   m.ExpensesCount,
		TotalExpenses:   m.TotalExpenses,
		BarberBreakdown: make([]entity.BarberBreakdown, 0, len(m.BarberBreakdown)),
	}

	for _, b := range m.BarberBreakdown {
		closing.BarberBreakdown = append(closing.BarberBreakdown, entity.BarberBreakdown{
			BarberID:         b.BarberID,
			BarberName:       b.BarberName,
			TotalSales:       b.TotalSales,
			SalesCount:       b.SalesCount,
			PaymentBreakdown: entity.PaymentBreakdown(b.PaymentBreakdown),
		})
	}

	if m.CashRegister != nil {
		closing.CashRegister = m.CashRegister.ToEntity()
	}
	if m.ClosedByUser != nil {
		closing.ClosedByUser = m.ClosedByUser.ToEntity()
	}

	return closing
}

// CashClosingFromEntity creates a CashClosingModel from a domain CashClosing entity.
func CashClosingFromEntity(closing *entity.CashClosing) *CashClosingModel {
	breakdown := make(BarberBreakdownList, 0, len(closing.BarberBreakdown))
	for _, b := range closing.BarberBreakdown {
		breakdown = append(breakdown, BarberBreakdownJSON{
			BarberID:         b.BarberID,
			BarberName:       b.BarberName,
			TotalSales:       b.TotalSales,
			SalesCount:       b.SalesCount,
			PaymentBreakdown: PaymentBreakdownJSON(b.PaymentBreakdown),
		})
	}

	return &CashClosingModel{
		ID:              closing.ID,
		CashRegisterID:  closing.CashRegisterID,
		ExpectedBalance: closing.ExpectedBalance,
		ActualBalance:   closing.ActualBalance,
		Difference:      closing.Difference,
		Notes:           closing.Notes,
		ClosedBy:        closing.ClosedBy,
		ClosedAt:        closing.ClosedAt,
		TotalCash:       closing.PaymentBreakdown.Cash,
		TotalCard:       closing.PaymentBreakdown.Card,
		TotalTransfer:   closing.PaymentBreakdown.Transfer,
		TotalMixed:      closing.PaymentBreakdown.Mixed,
		SalesCount:      closing.SalesCount,
		TotalSales:      closing.TotalSales,
		ExpensesCount:   closing.ExpensesCount,
		TotalExpenses:   closing.TotalExpenses,
		BarberBreakdown: breakdown,
	}
}
