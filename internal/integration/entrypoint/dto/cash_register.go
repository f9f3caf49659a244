package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/domain/entity"
)

// OpenCashRegisterRequest represents the request body for opening a register.
type OpenCashRegisterRequest struct {
	OpeningBalance *decimal.Decimal `json:"openingBalance" binding:"required,gte=0"`
}

// RecordMovementRequest represents the request body for recording a sale or expense.
// Type and payment method are checked by the use case so clients get specific codes.
type RecordMovementRequest struct {
	CashID        string           `json:"cashId" binding:"required,uuid"`
	Type          string           `json:"type" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string           `json:"paymentMethod" binding:"required"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	BarberID      string           `json:"barberId" binding:"omitempty,uuid"`
}

// CloseCashRegisterRequest represents the request body for closing a register.
type CloseCashRegisterRequest struct {
	ActualBalance *decimal.Decimal `json:"actualBalance" binding:"required,gte=0"`
	Notes         string           `json:"notes"`
}

// HistoryQuery holds the closings history filters.
type HistoryQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Period    string `form:"period"`
	Limit     int    `form:"limit"`
}

// CashRegisterResponse represents a register in API responses.
type CashRegisterResponse struct {
	ID       string     `json:"id"`
	Balance  string     `json:"balance"`
	Status   string     `json:"status"`
	IsOpen   bool       `json:"isOpen"`
	OpenedAt time.Time  `json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt"`
}

// BarberRefResponse is the short form of a barber embedded in other resources.
type BarberRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BarberResponse represents a barber in API responses.
type BarberResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsOwner  bool   `json:"isOwner"`
	IsActive bool   `json:"isActive"`
}

// MovementResponse represents a movement in API responses.
type MovementResponse struct {
	ID             string             `json:"id"`
	CashRegisterID string             `json:"cashRegisterId"`
	Type           string             `json:"type"`
	Amount         string             `json:"amount"`
	PaymentMethod  string             `json:"paymentMethod"`
	Description    string             `json:"description,omitempty"`
	Category       string             `json:"category,omitempty"`
	BarberID       *string            `json:"barberId"`
	Barber         *BarberRefResponse `json:"barber,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// RecordMovementResponse represents the response for a recorded movement.
type RecordMovementResponse struct {
	Movement   MovementResponse `json:"movement"`
	NewBalance string           `json:"newBalance"`
}

// CashSummaryResponse holds running totals of an open register.
type CashSummaryResponse struct {
	TotalIncomes   string `json:"totalIncomes"`
	TotalExpenses  string `json:"totalExpenses"`
	CurrentBalance string `json:"currentBalance"`
}

// CashStatusResponse represents the open register with its movements.
type CashStatusResponse struct {
	ID        string              `json:"id"`
	Balance   string              `json:"balance"`
	IsOpen    bool                `json:"isOpen"`
	OpenedAt  time.Time           `json:"openedAt"`
	Movements []MovementResponse  `json:"movements"`
	Summary   CashSummaryResponse `json:"summary"`
}

// PaymentBreakdownResponse holds per-method totals.
type PaymentBreakdownResponse struct {
	Cash     string `json:"cash"`
	Card     string `json:"card"`
	Transfer string `json:"transfer"`
	Mixed    string `json:"mixed"`
}

// BarberBreakdownResponse holds one barber's sales in a closing.
type BarberBreakdownResponse struct {
	BarberID         string                   `json:"barberId"`
	BarberName       string                   `json:"barberName"`
	TotalSales       string                   `json:"totalSales"`
	SalesCount       int                      `json:"salesCount"`
	PaymentBreakdown PaymentBreakdownResponse `json:"paymentBreakdown"`
}

// ClosedByResponse identifies the user who closed a register.
type ClosedByResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ClosingRegisterResponse is the register summary embedded in a closing.
type ClosingRegisterResponse struct {
	ID       string     `json:"id"`
	OpenedAt time.Time  `json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt"`
}

// ClosingResponse represents a closing in API responses.
type ClosingResponse struct {
	ID               string                    `json:"id"`
	CashRegisterID   string                    `json:"cashRegisterId"`
	ExpectedBalance  string                    `json:"expectedBalance"`
	ActualBalance    string                    `json:"actualBalance"`
	Difference       string                    `json:"difference"`
	Notes            string                    `json:"notes"`
	ClosedAt         time.Time                 `json:"closedAt"`
	PaymentBreakdown PaymentBreakdownResponse  `json:"paymentBreakdown"`
	SalesCount       int                       `json:"salesCount"`
	TotalSales       string                    `json:"totalSales"`
	ExpensesCount    int                       `json:"expensesCount"`
	TotalExpenses    string                    `json:"totalExpenses"`
	BarberBreakdown  []BarberBreakdownResponse `json:"barberBreakdown"`
	ClosedBy         *ClosedByResponse         `json:"closedBy,omitempty"`
	CashRegister     *ClosingRegisterResponse  `json:"cashRegister,omitempty"`
}

// Money renders an amount with two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ToCashRegisterResponse converts a domain CashRegister entity to a response DTO.
func ToCashRegisterResponse(register *entity.CashRegister) CashRegisterResponse {
	return CashRegisterResponse{
		ID:       register.ID.String(),
		Balance:  Money(register.Balance),
		Status:   string(register.Status),
		IsOpen:   register.IsOpen(),
		OpenedAt: register.OpenedAt,
		ClosedAt: register.ClosedAt,
	}
}

// ToBarberResponse converts a domain Barber entity to a response DTO.
func ToBarberResponse(barber *entity.Barber) BarberResponse {
	return BarberResponse{
		ID:       barber.ID.String(),
		Name:     barber.Name,
		IsOwner:  barber.IsOwner,
		IsActive: barber.IsActive,
	}
}

// ToMovementResponse converts a domain CashMovement entity to a response DTO.
func ToMovementResponse(movement *entity.CashMovement) MovementResponse {
	resp := MovementResponse{
		ID:             movement.ID.String(),
		CashRegisterID: movement.CashRegisterID.String(),
		Type:           string(movement.Type),
		Amount:         Money(movement.Amount),
		PaymentMethod:  string(movement.PaymentMethod),
		Description:    movement.Description,
		Category:       movement.Category,
		CreatedAt:      movement.CreatedAt,
	}
	if movement.BarberID != nil {
		id := movement.BarberID.String()
		resp.BarberID = &id
	}
	if movement.Barber != nil {
		resp.Barber = &BarberRefResponse{
			ID:   movement.Barber.ID.String(),
			Name: movement.Barber.Name,
		}
	}
	return resp
}

// ToMovementResponses converts movements keeping their order.
func ToMovementResponses(movements []*entity.CashMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = ToMovementResponse(m)
	}
	return out
}

func toPaymentBreakdownResponse(p entity.PaymentBreakdown) PaymentBreakdownResponse {
	return PaymentBreakdownResponse{
		Cash:     Money(p.Cash),
		Card:     Money(p.Card),
		Transfer: Money(p.Transfer),
		Mixed:    Money(p.Mixed),
	}
}

// ToClosingResponse converts a domain CashClosing entity to a response DTO.
func ToClosingResponse(closing *entity.CashClosing) ClosingResponse {
	barbers := make([]BarberBreakdownResponse, len(closing.BarberBreakdown))
	for i, b := range closing.BarberBreakdown {
		barbers[i] = BarberBreakdownResponse{
			BarberID:         b.BarberID.String(),
			BarberName:       b.BarberName,
			TotalSales:       Money(b.TotalSales),
			SalesCount:       b.SalesCount,
			PaymentBreakdown: toPaymentBreakdownResponse(b.PaymentBreakdown),
		}
	}

	resp := ClosingResponse{
		ID:               closing.ID.String(),
		CashRegisterID:   closing.CashRegisterID.String(),
		ExpectedBalance:  Money(closing.ExpectedBalance),
		ActualBalance:    Money(closing.ActualBalance),
		Difference:       Money(closing.Difference),
		Notes:            closing.Notes,
		ClosedAt:         closing.ClosedAt,
		PaymentBreakdown: toPaymentBreakdownResponse(closing.PaymentBreakdown),
		SalesCount:       closing.SalesCount,
		TotalSales:       Money(closing.TotalSales),
		ExpensesCount:    closing.ExpensesCount,
		TotalExpenses:    Money(closing.TotalExpenses),
		BarberBreakdown:  barbers,
	}
	if u := closing.ClosedByUser; u != nil {
		resp.ClosedBy = &ClosedByResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email}
	}
	if r := closing.CashRegister; r != nil {
		resp.CashRegister = &ClosingRegisterResponse{ID: r.ID.String(), OpenedAt: r.OpenedAt, ClosedAt: r.ClosedAt}
	}
	return resp
}

// ToClosingResponses converts closings keeping their order.
func ToClosingResponses(closings []*entity.CashClosing) []ClosingResponse {
	out := make([]ClosingResponse, len(closings))
	for i, c := range closings {
		out[i] = ToClosingResponse(c)
	}
	return out
}
