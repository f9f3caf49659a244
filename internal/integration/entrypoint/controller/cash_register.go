package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cash-register/backend/internal/application/usecase/barber"
	"github.com/cash-register/backend/internal/application/usecase/cashregister"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
	"github.com/cash-register/backend/internal/integration/entrypoint/dto"
	"github.com/cash-register/backend/internal/integration/entrypoint/middleware"
)

// CashRegisterController handles cash register endpoints.
type CashRegisterController struct {
	openUseCase           *cashregister.OpenCashRegisterUseCase
	statusUseCase         *cashregister.GetCashStatusUseCase
	recordMovementUseCase *cashregister.RecordMovementUseCase
	closeUseCase          *cashregister.CloseCashRegisterUseCase
	listClosingsUseCase   *cashregister.ListClosingsUseCase
	exportClosingsUseCase *cashregister.ExportClosingsUseCase
	listMovementsUseCase  *cashregister.ListMovementsUseCase
	listBarbersUseCase    *barber.ListBarbersUseCase
}

// NewCashRegisterController creates a new cash register controller instance.
func NewCashRegisterController(
	openUseCase *cashregister.OpenCashRegisterUseCase,
	statusUseCase *cashregister.GetCashStatusUseCase,
	recordMovementUseCase *cashregister.RecordMovementUseCase,
	closeUseCase *cashregister.CloseCashRegisterUseCase,
	listClosingsUseCase *cashregister.ListClosingsUseCase,
	exportClosingsUseCase *cashregister.ExportClosingsUseCase,
	listMovementsUseCase *cashregister.ListMovementsUseCase,
	listBarbersUseCase *barber.ListBarbersUseCase,
) *CashRegisterController {
	return &CashRegisterController{
		openUseCase:           openUseCase,
		statusUseCase:         statusUseCase,
		recordMovementUseCase: recordMovementUseCase,
		closeUseCase:          closeUseCase,
		listClosingsUseCase:   listClosingsUseCase,
		exportClosingsUseCase: exportClosingsUseCase,
		listMovementsUseCase:  listMovementsUseCase,
		listBarbersUseCase:    listBarbersUseCase,
	}
}

// Open handles POST /cash-register/open requests.
func (c *CashRegisterController) Open(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.OpenCashRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, err)
		return
	}

	output, err := c.openUseCase.Execute(ctx.Request.Context(), cashregister.OpenCashRegisterInput{
		UserID:         userID,
		OpeningBalance: *req.OpeningBalance,
	})
	if err != nil {
		c.handleCashRegisterError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCashRegisterResponse(output.CashRegister))
}

// Status handles GET /cash-register/status requests.
func (c *CashRegisterController) Status(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), cashregister.GetCashStatusInput{UserID: userID})
	if err != nil {
		c.handleCashRegisterError(ctx, err)
		return
	}
	if output == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "There is no open cash register",
			Code:  string(domainerror.ErrCodeNoOpenCash),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.CashStatusResponse{
		ID:        output.CashRegister.ID.String(),
		Balance:   dto.Money(output.CashRegister.Balance),
		IsOpen:    output.CashRegister.IsOpen(),
		OpenedAt:  output.CashRegister.OpenedAt,
		Movements: dto.ToMovementResponses(output.Movements),
		Summary: dto.CashSummaryResponse{
			TotalIncomes:   dto.Money(output.TotalIncomes),
			TotalExpenses:  dto.Money(output.TotalExpenses),
			CurrentBalance: dto.Money(output.CurrentBalance),
		},
	})
}

// RecordMovement handles POST /cash-register/movement requests.
func (c *CashRegisterController) RecordMovement(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.RecordMovementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, err)
		return
	}

	input := cashregister.RecordMovementInput{
		UserID:         userID,
		CashRegisterID: uuid.MustParse(req.CashID),
		Type:           entity.MovementType(req.Type),
		Amount:         *req.Amount,
		PaymentMethod:  entity.PaymentMethod(req.PaymentMethod),
		Description:    req.Description,
		Category:       req.Category,
	}
	if req.BarberID != "" {
		barberID := uuid.MustParse(req.BarberID)
		input.BarberID = &barberID
	}

	output, err := c.recordMovementUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCashRegisterError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RecordMovementResponse{
		Movement:   dto.ToMovementResponse(output.Movement),
		NewBalance: dto.Money(output.NewBalance),
	})
}

// Close handles POST /cash-register/close/:cashId requests.
func (c *CashRegisterController) Close(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	cashID, ok := cashIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CloseCashRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, err)
		return
	}

	output, err := c.closeUseCase.Execute(ctx.Request.Context(), cashregister.CloseCashRegisterInput{
		UserID:         userID,
		CashRegisterID: cashID,
		ActualBalance:  *req.ActualBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		c.handleCashRegisterError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClosingResponse(output.Closing))
}

// History handles GET /cash-register/history requests.
func (c *CashRegisterController) History(ctx *gin.Context) {
	input, ok := historyInput(ctx)
	if !ok {
		return
	}

	output, err := c.listClosingsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCashRegisterError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClosingResponses(output.Closings))
}

// ExportHistory handles GET /cash-register/history/export requests.
func (c *CashRegisterController) ExportHistory(ctx *gin.Context) {
	input, ok := historyInput(ctx)
	if !ok {
		return
	}

	output, err := c.exportClosingsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCashRegisterError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Header("X-Total-Count", strconv.Itoa(output.Count))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// Movements handles GET /cash-register/movements/:cashId requests.
func (c *CashRegisterController) Movements(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	cashID, ok := cashIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.listMovementsUseCase.Execute(ctx.Request.Context(), cashregister.ListMovementsInput{
		UserID:         userID,
		CashRegisterID: cashID,
	})
	if err != nil {
		c.handleCashRegisterError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementResponses(output.Movements))
}

// Barbers handles GET /cash-register/barbers requests.
func (c *CashRegisterController) Barbers(ctx *gin.Context) {
	output, err := c.listBarbersUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleCashRegisterError(ctx, err)
		return
	}

	barbers := make([]dto.BarberResponse, len(output.Barbers))
	for i, b := range output.Barbers {
		barbers[i] = dto.ToBarberResponse(b)
	}
	ctx.JSON(http.StatusOK, barbers)
}

func historyInput(ctx *gin.Context) (cashregister.ListClosingsInput, bool) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return cashregister.ListClosingsInput{}, false
	}

	var query dto.HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		invalidRequest(ctx, err)
		return cashregister.ListClosingsInput{}, false
	}

	return cashregister.ListClosingsInput{
		UserID:    userID,
		Period:    query.Period,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Limit:     query.Limit,
	}, true
}

func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

func cashIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	cashID, err := uuid.Parse(ctx.Param("cashId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid cash register ID",
			Code:  string(domainerror.ErrCodeInvalidCashRequest),
		})
		return uuid.Nil, false
	}
	return cashID, true
}

func invalidRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(domainerror.ErrCodeInvalidCashRequest),
		Details: err.Error(),
	})
}

// handleCashRegisterError handles cash register errors and returns appropriate HTTP responses.
func (c *CashRegisterController) handleCashRegisterError(ctx *gin.Context, err error) {
	var cashErr *domainerror.CashRegisterError
	if errors.As(err, &cashErr) {
		ctx.JSON(c.getStatusCodeForCashRegisterError(cashErr.Code), dto.ErrorResponse{
			Error: cashErr.Message,
			Code:  string(cashErr.Code),
		})
		return
	}

	slog.Error("Unexpected cash register error", "path", ctx.FullPath(), "error", err)
	_ = ctx.Error(err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCashRegisterError maps cash register error codes to HTTP status codes.
func (c *CashRegisterController) getStatusCodeForCashRegisterError(code domainerror.CashRegisterErrorCode) int {
	switch code {
	case domainerror.ErrCodeCashAlreadyOpen,
		domainerror.ErrCodeRegisterBusy:
		return http.StatusConflict
	case domainerror.ErrCodeCashNotFound,
		domainerror.ErrCodeBarberNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNoOpenCash,
		domainerror.ErrCodeInvalidMovementType,
		domainerror.ErrCodeInvalidPaymentMethod,
		domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeAmountPrecision,
		domainerror.ErrCodeBarberRequired,
		domainerror.ErrCodeNegativeBalance,
		domainerror.ErrCodeInvalidCashRequest,
		domainerror.ErrCodeInvalidHistoryPeriod,
		domainerror.ErrCodeInvalidDateRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
