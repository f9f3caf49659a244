package error

import "errors"

// Cash register domain errors.
var (
	// ErrCashRegisterAlreadyOpen is returned when the user already has an open register.
	ErrCashRegisterAlreadyOpen = errors.New("cash register already open")

	// ErrCashRegisterNotFound is returned when a register is missing, belongs to
	// another user, or is not in the state the operation requires.
	ErrCashRegisterNotFound = errors.New("cash register not found")

	// ErrNoOpenCashRegister is returned when the user has no open register.
	ErrNoOpenCashRegister = errors.New("no open cash register")

	// ErrBarberNotFound is returned when a barber does not exist or is inactive.
	ErrBarberNotFound = errors.New("barber not found")

	// ErrBarberRequired is returned when a sale is recorded without a barber.
	ErrBarberRequired = errors.New("barber is required for sales")

	// ErrInvalidMovementType is returned when the movement type is not SALE or EXPENSE.
	ErrInvalidMovementType = errors.New("invalid movement type")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidAmount is returned when a movement amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrAmountPrecision is returned when a money value has fractions of a cent.
	ErrAmountPrecision = errors.New("amount has more than two decimal places")

	// ErrNegativeBalance is returned when an opening or counted balance is negative.
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrInvalidHistoryPeriod is returned when the history period is unknown.
	ErrInvalidHistoryPeriod = errors.New("invalid history period")

	// ErrInvalidDateRange is returned when a history date cannot be parsed.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrRegisterBusy is returned when another operation holds the register lock.
	ErrRegisterBusy = errors.New("cash register operation in progress")
)

// CashRegisterErrorCode defines error codes for cash register errors.
// Format: CSH-XXYYYY where XX is category and YYYY is specific error.
type CashRegisterErrorCode string

const (
	// Lifecycle errors (01XXXX)
	ErrCodeCashAlreadyOpen CashRegisterErrorCode = "CSH-010001"
	ErrCodeCashNotFound    CashRegisterErrorCode = "CSH-010002"
	ErrCodeNoOpenCash      CashRegisterErrorCode = "CSH-010010"
	ErrCodeRegisterBusy    CashRegisterErrorCode = "CSH-010011"

	// Movement errors (02XXXX)
	ErrCodeInvalidMovementType  CashRegisterErrorCode = "CSH-020001"
	ErrCodeInvalidPaymentMethod CashRegisterErrorCode = "CSH-020002"
	ErrCodeInvalidAmount        CashRegisterErrorCode = "CSH-020003"
	ErrCodeBarberRequired       CashRegisterErrorCode = "CSH-020004"
	ErrCodeBarberNotFound       CashRegisterErrorCode = "CSH-020005"
	ErrCodeNegativeBalance      CashRegisterErrorCode = "CSH-020006"
	ErrCodeInvalidCashRequest   CashRegisterErrorCode = "CSH-020007"
	ErrCodeAmountPrecision      CashRegisterErrorCode = "CSH-020008"

	// History errors (03XXXX)
	ErrCodeInvalidHistoryPeriod CashRegisterErrorCode = "CSH-030001"
	ErrCodeInvalidDateRange     CashRegisterErrorCode = "CSH-030002"
)

// CashRegisterError represents a cash register error with code and message.
type CashRegisterError struct {
	Code    CashRegisterErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CashRegisterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CashRegisterError) Unwrap() error {
	return e.Err
}

// NewCashRegisterError creates a new CashRegisterError with the given code and message.
func NewCashRegisterError(code CashRegisterErrorCode, message string, err error) *CashRegisterError {
	return &CashRegisterError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
