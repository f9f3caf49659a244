//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cash-register/backend/internal/integration/persistence/model"
)

const defaultPassword = "DefaultPass123!"

func aUserExistsWithEmailAndPassword(ctx context.Context, email, password string) error {
	_, err := createUser(email, password)
	return err
}

func createUser(email, password string) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := suite.db.DbConn.Create(user).Error; err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// iAmLoggedInAs logs in through the API, creating the user first when needed.
func iAmLoggedInAs(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)

	var existing model.UserModel
	if err := suite.db.DbConn.Where("email = ?", email).Limit(1).Find(&existing).Error; err != nil {
		return err
	}
	if existing.ID == uuid.Nil {
		if _, err := createUser(email, defaultPassword); err != nil {
			return err
		}
	}

	tc.accessToken = ""
	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, defaultPassword)
	if err := tc.executeRequest(http.MethodPost, "/auth/login", []byte(body)); err != nil {
		return err
	}
	if tc.response.status != http.StatusOK {
		return fmt.Errorf("login failed with %d: %s", tc.response.status, tc.response.raw)
	}

	access, err := tc.responseField("accessToken")
	if err != nil {
		return err
	}
	refresh, err := tc.responseField("refreshToken")
	if err != nil {
		return err
	}
	userID, err := tc.responseField("user.id")
	if err != nil {
		return err
	}

	tc.accessToken = access.(string)
	tc.refreshToken = refresh.(string)
	tc.currentUser = uuid.MustParse(userID.(string))
	tc.values["user_id"] = tc.currentUser.String()
	return nil
}

// theDefaultBarbersExist seeds the staff and exposes their ids as {{barber:<name>}}.
func theDefaultBarbersExist(ctx context.Context) error {
	tc := GetTestContext(ctx)

	if _, err := suite.injector.SeedBarbers.Execute(ctx); err != nil {
		return err
	}

	var barbers []model.BarberModel
	if err := suite.db.DbConn.Order("name ASC").Find(&barbers).Error; err != nil {
		return err
	}
	if len(barbers) == 0 {
		return errors.New("no barbers were seeded")
	}
	for _, b := range barbers {
		tc.values["barber:"+b.Name] = b.ID.String()
	}
	return nil
}

func theCurrentTimeIs(ctx context.Context, value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	suite.timeMock.SetCurrentTime(current)
	return nil
}

func iHaveAnOpenCashRegisterWithBalance(ctx context.Context, balance string) error {
	tc := GetTestContext(ctx)
	body := fmt.Sprintf(`{"openingBalance": %s}`, balance)
	if err := tc.expect(http.MethodPost, "/cash-register/open", body, http.StatusCreated); err != nil {
		return err
	}
	return iRememberTheResponseFieldAs(ctx, "id", "cash_id")
}

func iRecordASaleForBarber(ctx context.Context, movementType, amount, method, barberName string) error {
	tc := GetTestContext(ctx)
	barberID, ok := tc.values["barber:"+barberName]
	if !ok {
		return fmt.Errorf("unknown barber %q", barberName)
	}
	body := fmt.Sprintf(`{"cashId": %q, "type": %q, "amount": %s, "paymentMethod": %q, "barberId": %q}`,
		tc.values["cash_id"], movementType, amount, method, barberID)
	return tc.expect(http.MethodPost, "/cash-register/movement", body, http.StatusCreated)
}

func iRecordAnExpense(ctx context.Context, amount, method string) error {
	tc := GetTestContext(ctx)
	body := fmt.Sprintf(`{"cashId": %q, "type": "EXPENSE", "amount": %s, "paymentMethod": %q, "description": "supplies"}`,
		tc.values["cash_id"], amount, method)
	return tc.expect(http.MethodPost, "/cash-register/movement", body, http.StatusCreated)
}

func iCloseTheCashRegisterCounting(ctx context.Context, amount string) error {
	tc := GetTestContext(ctx)
	body := fmt.Sprintf(`{"actualBalance": %s}`, amount)
	return tc.expect(http.MethodPost, "/cash-register/close/"+tc.values["cash_id"], body, http.StatusCreated)
}

func (tc *TestContext) expect(method, path, body string, status int) error {
	if err := tc.executeRequest(method, path, []byte(body)); err != nil {
		return err
	}
	if tc.response.status != status {
		return fmt.Errorf("%s %s: expected %d, got %d: %s", method, path, status, tc.response.status, tc.response.raw)
	}
	return nil
}
