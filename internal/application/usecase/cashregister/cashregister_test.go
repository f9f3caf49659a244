package cashregister

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
	"github.com/cash-register/backend/internal/integration/persistence"
	"github.com/cash-register/backend/internal/integration/persistence/model"
)

// stepClock advances by one second on every read so movements keep a stable order.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type nopLocker struct{}

func (nopLocker) Lock(context.Context, string) (adapter.UnlockFunc, error) {
	return func(context.Context) error { return nil }, nil
}

type busyLocker struct{}

func (busyLocker) Lock(context.Context, string) (adapter.UnlockFunc, error) {
	return nil, domainerror.ErrRegisterBusy
}

type fixture struct {
	db       *gorm.DB
	clock    *stepClock
	user     *entity.User
	barberA  *entity.Barber
	barberB  *entity.Barber
	open     *OpenCashRegisterUseCase
	status   *GetCashStatusUseCase
	record   *RecordMovementUseCase
	close    *CloseCashRegisterUseCase
	history  *ListClosingsUseCase
	listMove *ListMovementsUseCase
}

func newFixture(t *testing.T, policy Policy) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	ctx := context.Background()
	user := entity.NewUser("cashier@example.com", "Cashier", "hash")
	require.NoError(t, persistence.NewUserRepository(db).Create(ctx, user))

	barberRepo := persistence.NewBarberRepository(db)
	barberA := entity.NewBarber("A", true)
	barberB := entity.NewBarber("B", false)
	require.NoError(t, barberRepo.CreateBatch(ctx, []*entity.Barber{barberA, barberB}))

	clock := &stepClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	repo := persistence.NewCashRegisterRepository(db)
	locker := nopLocker{}

	return &fixture{
		db:       db,
		clock:    clock,
		user:     user,
		barberA:  barberA,
		barberB:  barberB,
		open:     NewOpenCashRegisterUseCase(repo, locker, clock),
		status:   NewGetCashStatusUseCase(repo),
		record:   NewRecordMovementUseCase(repo, barberRepo, locker, clock, policy),
		close:    NewCloseCashRegisterUseCase(repo, locker, clock),
		history:  NewListClosingsUseCase(repo, clock, policy),
		listMove: NewListMovementsUseCase(repo),
	}
}

func (f *fixture) openRegister(t *testing.T, balance int64) *entity.CashRegister {
	t.Helper()
	out, err := f.open.Execute(context.Background(), OpenCashRegisterInput{
		UserID:         f.user.ID,
		OpeningBalance: decimal.NewFromInt(balance),
	})
	require.NoError(t, err)
	return out.CashRegister
}

func (f *fixture) recordMovement(t *testing.T, registerID uuid.UUID, movementType entity.MovementType, amount int64, method entity.PaymentMethod, barber *entity.Barber) *RecordMovementOutput {
	t.Helper()
	input := RecordMovementInput{
		UserID:         f.user.ID,
		CashRegisterID: registerID,
		Type:           movementType,
		Amount:         decimal.NewFromInt(amount),
		PaymentMethod:  method,
	}
	if barber != nil {
		input.BarberID = &barber.ID
	}
	out, err := f.record.Execute(context.Background(), input)
	require.NoError(t, err)
	return out
}

func assertCashError(t *testing.T, err error, code domainerror.CashRegisterErrorCode) {
	t.Helper()
	var cashErr *domainerror.CashRegisterError
	require.True(t, errors.As(err, &cashErr), "expected CashRegisterError, got %v", err)
	assert.Equal(t, code, cashErr.Code)
}

func TestCashRegisterFlow_BalanceAndStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultPolicy())

	register := f.openRegister(t, 1000)
	assert.True(t, register.IsOpen())

	out := f.recordMovement(t, register.ID, entity.MovementTypeSale, 500, entity.PaymentMethodCash, f.barberA)
	assert.Equal(t, "1500.00", out.NewBalance.StringFixed(2))
	require.NotNil(t, out.Movement.Barber)
	assert.Equal(t, "A", out.Movement.Barber.Name)

	out = f.recordMovement(t, register.ID, entity.MovementTypeExpense, 200, entity.PaymentMethodCash, nil)
	assert.Equal(t, "1300.00", out.NewBalance.StringFixed(2))

	status, err := f.status.Execute(ctx, GetCashStatusInput{UserID: f.user.ID})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "1300.00", status.CurrentBalance.StringFixed(2))
	assert.Equal(t, "500.00", status.TotalIncomes.StringFixed(2))
	assert.Equal(t, "200.00", status.TotalExpenses.StringFixed(2))
	require.Len(t, status.Movements, 3)
	assert.Equal(t, entity.MovementTypeExpense, status.Movements[0].Type)
	assert.Equal(t, entity.MovementTypeOpening, status.Movements[2].Type)
}

func TestOpenCashRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultPolicy())

	_, err := f.open.Execute(ctx, OpenCashRegisterInput{UserID: f.user.ID, OpeningBalance: decimal.NewFromInt(-1)})
	assertCashError(t, err, domainerror.ErrCodeNegativeBalance)

	_, err = f.open.Execute(ctx, OpenCashRegisterInput{UserID: f.user.ID, OpeningBalance: decimal.RequireFromString("10.999")})
	assertCashError(t, err, domainerror.ErrCodeAmountPrecision)

	f.openRegister(t, 0)

	_, err = f.open.Execute(ctx, OpenCashRegisterInput{UserID: f.user.ID, OpeningBalance: decimal.NewFromInt(10)})
	assertCashError(t, err, domainerror.ErrCodeCashAlreadyOpen)
	assert.ErrorIs(t, err, domainerror.ErrCashRegisterAlreadyOpen)

	var openCount int64
	require.NoError(t, f.db.Model(&model.CashRegisterModel{}).Where("status = ?", "OPEN").Count(&openCount).Error)
	assert.EqualValues(t, 1, openCount)
}

func TestOpenCashRegister_LockBusy(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	uc := NewOpenCashRegisterUseCase(persistence.NewCashRegisterRepository(f.db), busyLocker{}, f.clock)

	_, err := uc.Execute(context.Background(), OpenCashRegisterInput{UserID: f.user.ID, OpeningBalance: decimal.Zero})
	assertCashError(t, err, domainerror.ErrCodeRegisterBusy)
}

func TestGetCashStatus_NoOpenRegister(t *testing.T) {
	f := newFixture(t, DefaultPolicy())

	status, err := f.status.Execute(context.Background(), GetCashStatusInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestRecordMovement_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultPolicy())
	register := f.openRegister(t, 100)
	unknownBarber := uuid.New()
	long := make([]byte, maxDescriptionLength+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name  string
		input RecordMovementInput
		code  domainerror.CashRegisterErrorCode
	}{
		{
			name:  "opening cannot be recorded",
			input: RecordMovementInput{Type: entity.MovementTypeOpening, Amount: decimal.NewFromInt(1), PaymentMethod: entity.PaymentMethodCash},
			code:  domainerror.ErrCodeInvalidMovementType,
		},
		{
			name:  "unknown payment method",
			input: RecordMovementInput{Type: entity.MovementTypeExpense, Amount: decimal.NewFromInt(1), PaymentMethod: "CHEQUE"},
			code:  domainerror.ErrCodeInvalidPaymentMethod,
		},
		{
			name:  "zero amount",
			input: RecordMovementInput{Type: entity.MovementTypeExpense, Amount: decimal.Zero, PaymentMethod: entity.PaymentMethodCash},
			code:  domainerror.ErrCodeInvalidAmount,
		},
		{
			name:  "description too long",
			input: RecordMovementInput{Type: entity.MovementTypeExpense, Amount: decimal.NewFromInt(1), PaymentMethod: entity.PaymentMethodCash, Description: string(long)},
			code:  domainerror.ErrCodeInvalidCashRequest,
		},
		{
			name:  "fraction of a cent",
			input: RecordMovementInput{Type: entity.MovementTypeExpense, Amount: decimal.RequireFromString("0.005"), PaymentMethod: entity.PaymentMethodCash},
			code:  domainerror.ErrCodeAmountPrecision,
		},
		{
			name:  "category too long",
			input: RecordMovementInput{Type: entity.MovementTypeExpense, Amount: decimal.NewFromInt(1), PaymentMethod: entity.PaymentMethodCash, Category: strings.Repeat("é", maxCategoryLength+1)},
			code:  domainerror.ErrCodeInvalidCashRequest,
		},
		{
			name:  "sale without barber",
			input: RecordMovementInput{Type: entity.MovementTypeSale, Amount: decimal.NewFromInt(1), PaymentMethod: entity.PaymentMethodCash},
			code:  domainerror.ErrCodeBarberRequired,
		},
		{
			name:  "unknown barber",
			input: RecordMovementInput{Type: entity.MovementTypeSale, Amount: decimal.NewFromInt(1), PaymentMethod: entity.PaymentMethodCash, BarberID: &unknownBarber},
			code:  domainerror.ErrCodeBarberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.UserID = f.user.ID
			tt.input.CashRegisterID = register.ID
			_, err := f.record.Execute(ctx, tt.input)
			assertCashError(t, err, tt.code)
		})
	}

	t.Run("register of another user", func(t *testing.T) {
		_, err := f.record.Execute(ctx, RecordMovementInput{
			UserID:         uuid.New(),
			CashRegisterID: register.ID,
			Type:           entity.MovementTypeExpense,
			Amount:         decimal.NewFromInt(1),
			PaymentMethod:  entity.PaymentMethodCash,
		})
		assertCashError(t, err, domainerror.ErrCodeCashNotFound)
	})

	status, err := f.status.Execute(ctx, GetCashStatusInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, "100.00", status.CurrentBalance.StringFixed(2), "rejected movements leave the balance untouched")
}

func TestRecordMovement_TextLimitsCountCharacters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultPolicy())
	register := f.openRegister(t, 0)

	description := strings.Repeat("ñ", maxDescriptionLength)
	out, err := f.record.Execute(ctx, RecordMovementInput{
		UserID:         f.user.ID,
		CashRegisterID: register.ID,
		Type:           entity.MovementTypeExpense,
		Amount:         decimal.RequireFromString("12.50"),
		PaymentMethod:  entity.PaymentMethodCash,
		Description:    "   " + description + "   ",
		Category:       "  Limpieza  ",
	})
	require.NoError(t, err)
	assert.Equal(t, description, out.Movement.Description)
	assert.Equal(t, "Limpieza", out.Movement.Category)
	assert.Equal(t, "-12.50", out.NewBalance.StringFixed(2))
}

func TestRecordMovement_CentAmountsKeepLedgerExact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultPolicy())
	register := f.openRegister(t, 1000)

	out, err := f.record.Execute(ctx, RecordMovementInput{
		UserID:         f.user.ID,
		CashRegisterID: register.ID,
		Type:           entity.MovementTypeExpense,
		Amount:         decimal.RequireFromString("0.005"),
		PaymentMethod:  entity.PaymentMethodCash,
	})
	assert.Nil(t, out)
	assertCashError(t, err, domainerror.ErrCodeAmountPrecision)

	// trailing zeros are still whole cents
	out, err = f.record.Execute(ctx, RecordMovementInput{
		UserID:         f.user.ID,
		CashRegisterID: register.ID,
		Type:           entity.MovementTypeExpense,
		Amount:         decimal.RequireFromString("0.010"),
		PaymentMethod:  entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.True(t, out.NewBalance.Equal(decimal.RequireFromString("999.99")))

	status, err := f.status.Execute(ctx, GetCashStatusInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, "999.99", status.CurrentBalance.StringFixed(2))
	assert.Equal(t, "0.01", status.TotalExpenses.StringFixed(2))
}

func TestRecordMovement_SaleWithoutBarberWhenOptional(t *testing.T) {
	policy := DefaultPolicy()
	policy.RequireBarberForSale = false
	f := newFixture(t, policy)
	register := f.openRegister(t, 0)

	out := f.recordMovement(t, register.ID, entity.MovementTypeSale, 25, entity.PaymentMethodTransfer, nil)
	assert.Equal(t, "25.00", out.NewBalance.StringFixed(2))
	assert.Nil(t, out.Movement.BarberID)
}

func TestRecordMovement_ConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultPolicy())
	register := f.openRegister(t, 0)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.record.Execute(ctx, RecordMovementInput{
				UserID:         f.user.ID,
				CashRegisterID: register.ID,
				Type:           entity.MovementTypeSale,
				Amount:         decimal.NewFromInt(10),
				PaymentMethod:  entity.PaymentMethodCash,
				BarberID:       &f.barberA.ID,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	status, err := f.status.Execute(ctx, GetCashStatusInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, "200.00", status.CurrentBalance.StringFixed(2))
}

func TestCloseCashRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultPolicy())
	register := f.openRegister(t, 100)

	f.recordMovement(t, register.ID, entity.MovementTypeSale, 300, entity.PaymentMethodCash, f.barberA)
	f.recordMovement(t, register.ID, entity.MovementTypeSale, 200, entity.PaymentMethodCard, f.barberB)
	f.recordMovement(t, register.ID, entity.MovementTypeExpense, 50, entity.PaymentMethodCash, nil)

	t.Run("rejects negative counted balance", func(t *testing.T) {
		_, err := f.close.Execute(ctx, CloseCashRegisterInput{
			UserID:         f.user.ID,
			CashRegisterID: register.ID,
			ActualBalance:  decimal.NewFromInt(-1),
		})
		assertCashError(t, err, domainerror.ErrCodeNegativeBalance)
	})

	t.Run("rejects fractions of a cent", func(t *testing.T) {
		_, err := f.close.Execute(ctx, CloseCashRegisterInput{
			UserID:         f.user.ID,
			CashRegisterID: register.ID,
			ActualBalance:  decimal.RequireFromString("500.001"),
		})
		assertCashError(t, err, domainerror.ErrCodeAmountPrecision)
	})

	out, err := f.close.Execute(ctx, CloseCashRegisterInput{
		UserID:         f.user.ID,
		CashRegisterID: register.ID,
		ActualBalance:  decimal.NewFromInt(500),
		Notes:          "  missing fifty  ",
	})
	require.NoError(t, err)

	closing := out.Closing
	assert.Equal(t, "550.00", closing.ExpectedBalance.StringFixed(2))
	assert.Equal(t, "-50.00", closing.Difference.StringFixed(2))
	assert.Equal(t, 2, closing.SalesCount)
	assert.Equal(t, "500.00", closing.TotalSales.StringFixed(2))
	assert.Equal(t, 1, closing.ExpensesCount)
	assert.Equal(t, "50.00", closing.TotalExpenses.StringFixed(2))
	assert.True(t, closing.PaymentBreakdown.Total().Equal(closing.TotalSales))

	require.Len(t, closing.BarberBreakdown, 2)
	byName := map[string]entity.BarberBreakdown{}
	for _, b := range closing.BarberBreakdown {
		byName[b.BarberName] = b
	}
	assert.Equal(t, "300.00", byName["A"].PaymentBreakdown.Cash.StringFixed(2))
	assert.Equal(t, "200.00", byName["B"].PaymentBreakdown.Card.StringFixed(2))

	t.Run("second close is not found", func(t *testing.T) {
		_, err := f.close.Execute(ctx, CloseCashRegisterInput{
			UserID:         f.user.ID,
			CashRegisterID: register.ID,
			ActualBalance:  decimal.Zero,
		})
		assertCashError(t, err, domainerror.ErrCodeCashNotFound)
	})

	t.Run("movements stay listable", func(t *testing.T) {
		movements, err := f.listMove.Execute(ctx, ListMovementsInput{UserID: f.user.ID, CashRegisterID: register.ID})
		require.NoError(t, err)
		assert.Len(t, movements.Movements, 4)
	})

	t.Run("status reports nothing open", func(t *testing.T) {
		status, err := f.status.Execute(ctx, GetCashStatusInput{UserID: f.user.ID})
		require.NoError(t, err)
		assert.Nil(t, status)
	})
}

func TestListMovements_OtherUser(t *testing.T) {
	f := newFixture(t, DefaultPolicy())
	register := f.openRegister(t, 0)

	_, err := f.listMove.Execute(context.Background(), ListMovementsInput{UserID: uuid.New(), CashRegisterID: register.ID})
	assertCashError(t, err, domainerror.ErrCodeCashNotFound)
}

func TestListClosings(t *testing.T) {
	ctx := context.Background()
	policy := DefaultPolicy()
	policy.Location = time.UTC
	policy.HistoryDefaultLimit = 2
	policy.HistoryMaxLimit = 3
	f := newFixture(t, policy)

	for i := 0; i < 4; i++ {
		register := f.openRegister(t, int64(i))
		_, err := f.close.Execute(ctx, CloseCashRegisterInput{UserID: f.user.ID, CashRegisterID: register.ID, ActualBalance: decimal.NewFromInt(int64(i))})
		require.NoError(t, err)
	}

	t.Run("default limit", func(t *testing.T) {
		out, err := f.history.Execute(ctx, ListClosingsInput{UserID: f.user.ID})
		require.NoError(t, err)
		require.Len(t, out.Closings, 2)
		assert.True(t, out.Closings[0].ClosedAt.After(out.Closings[1].ClosedAt))
	})

	t.Run("limit is clamped", func(t *testing.T) {
		out, err := f.history.Execute(ctx, ListClosingsInput{UserID: f.user.ID, Limit: 50})
		require.NoError(t, err)
		assert.Len(t, out.Closings, 3)
	})

	t.Run("day period", func(t *testing.T) {
		out, err := f.history.Execute(ctx, ListClosingsInput{UserID: f.user.ID, Period: "day", Limit: 3})
		require.NoError(t, err)
		assert.Len(t, out.Closings, 3)
	})

	t.Run("explicit range before any closing", func(t *testing.T) {
		out, err := f.history.Execute(ctx, ListClosingsInput{UserID: f.user.ID, StartDate: "2024-01-01", EndDate: "2024-01-31"})
		require.NoError(t, err)
		assert.Empty(t, out.Closings)
	})

	t.Run("invalid period", func(t *testing.T) {
		_, err := f.history.Execute(ctx, ListClosingsInput{UserID: f.user.ID, Period: "week"})
		assertCashError(t, err, domainerror.ErrCodeInvalidHistoryPeriod)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := f.history.Execute(ctx, ListClosingsInput{UserID: f.user.ID, StartDate: "2024-02-01", EndDate: "2024-01-01"})
		assertCashError(t, err, domainerror.ErrCodeInvalidDateRange)
	})
}

type recordingExporter struct {
	closings []*entity.CashClosing
}

func (e *recordingExporter) ContentType() string { return "text/plain" }

func (e *recordingExporter) FileExtension() string { return "txt" }

func (e *recordingExporter) Export(w io.Writer, closings []*entity.CashClosing) error {
	e.closings = closings
	_, err := fmt.Fprintf(w, "%d closings", len(closings))
	return err
}

func TestExportClosings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultPolicy())
	register := f.openRegister(t, 10)
	_, err := f.close.Execute(ctx, CloseCashRegisterInput{UserID: f.user.ID, CashRegisterID: register.ID, ActualBalance: decimal.NewFromInt(10)})
	require.NoError(t, err)

	exporter := &recordingExporter{}
	uc := NewExportClosingsUseCase(f.history, exporter, f.clock)

	out, err := uc.Execute(ctx, ListClosingsInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "text/plain", out.ContentType)
	assert.Equal(t, "1 closings", string(out.Content))
	assert.Regexp(t, `^closings-\d{8}-\d{6}\.txt$`, out.Filename)
	require.Len(t, exporter.closings, 1)
	assert.Equal(t, register.ID, exporter.closings[0].CashRegisterID)

	yearly, err := uc.Execute(ctx, ListClosingsInput{UserID: f.user.ID, Period: "year"})
	require.NoError(t, err)
	assert.Equal(t, 1, yearly.Count)

	_, err = uc.Execute(ctx, ListClosingsInput{UserID: f.user.ID, Period: "week"})
	assertCashError(t, err, domainerror.ErrCodeInvalidHistoryPeriod)
}
