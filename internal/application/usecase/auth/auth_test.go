package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cash-register/backend/internal/application/adapter"
	domainerror "github.com/cash-register/backend/internal/domain/error"
	"github.com/cash-register/backend/internal/integration/adapters"
	"github.com/cash-register/backend/internal/integration/persistence"
	"github.com/cash-register/backend/internal/integration/persistence/model"
)

type authFixture struct {
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	refresh  *RefreshTokenUseCase
	logout   *LogoutUserUseCase
	tokens   adapter.TokenService
	db       *gorm.DB
}

func newAuthFixture(t *testing.T) *authFixture {
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

	userRepo := persistence.NewUserRepository(db)
	passwords := adapters.NewPasswordService(bcrypt.MinCost)
	tokens := adapters.NewTokenService(adapters.TokenConfig{
		Secret:          "test-secret",
		AccessDuration:  15 * time.Minute,
		RefreshDuration: time.Hour,
	}, persistence.NewTokenRepository(db))

	return &authFixture{
		register: NewRegisterUserUseCase(userRepo, passwords, tokens),
		login:    NewLoginUserUseCase(userRepo, passwords, tokens),
		refresh:  NewRefreshTokenUseCase(userRepo, tokens),
		logout:   NewLogoutUserUseCase(tokens),
		tokens:   tokens,
		db:       db,
	}
}

func assertAuthError(t *testing.T, err error, code domainerror.AuthErrorCode) {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	assert.Equal(t, code, authErr.Code)
}

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	out, err := f.register.Execute(ctx, RegisterUserInput{
		Email:    "  Owner@Example.com ",
		Name:     " Owner ",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", out.User.Email)
	assert.Equal(t, "Owner", out.User.Name)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)

	claims, err := f.tokens.ValidateAccessToken(ctx, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)

	tests := []struct {
		name  string
		input RegisterUserInput
		code  domainerror.AuthErrorCode
	}{
		{"duplicate email", RegisterUserInput{Email: "owner@example.com", Name: "Other", Password: "supersecret"}, domainerror.ErrCodeEmailExists},
		{"invalid email", RegisterUserInput{Email: "not-an-email", Name: "Other", Password: "supersecret"}, domainerror.ErrCodeInvalidEmail},
		{"weak password", RegisterUserInput{Email: "new@example.com", Name: "Other", Password: "short"}, domainerror.ErrCodeWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.register.Execute(ctx, tt.input)
			assertAuthError(t, err, tt.code)
		})
	}
}

func TestLoginUserUseCase(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	_, err := f.register.Execute(ctx, RegisterUserInput{Email: "cashier@example.com", Name: "Cashier", Password: "supersecret"})
	require.NoError(t, err)

	out, err := f.login.Execute(ctx, LoginUserInput{Email: "CASHIER@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "cashier@example.com", out.User.Email)

	_, err = f.login.Execute(ctx, LoginUserInput{Email: "cashier@example.com", Password: "wrong-password"})
	assertAuthError(t, err, domainerror.ErrCodeInvalidCredentials)

	_, err = f.login.Execute(ctx, LoginUserInput{Email: "nobody@example.com", Password: "supersecret"})
	assertAuthError(t, err, domainerror.ErrCodeInvalidCredentials)
}

func TestRefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	registered, err := f.register.Execute(ctx, RegisterUserInput{Email: "cashier@example.com", Name: "Cashier", Password: "supersecret"})
	require.NoError(t, err)

	refreshed, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	t.Run("rotated token cannot be reused", func(t *testing.T) {
		_, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
		assertAuthError(t, err, domainerror.ErrCodeInvalidToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: refreshed.AccessToken})
		assertAuthError(t, err, domainerror.ErrCodeInvalidToken)
	})

	out, err := f.logout.Execute(ctx, LogoutUserInput{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, SessionClosedMessage, out.Message)

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: refreshed.RefreshToken})
	assertAuthError(t, err, domainerror.ErrCodeInvalidToken)

	_, err = f.logout.Execute(ctx, LogoutUserInput{RefreshToken: "garbage"})
	assert.NoError(t, err)
}

func TestRefreshToken_OwnerRemoved(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	registered, err := f.register.Execute(ctx, RegisterUserInput{Email: "temp@example.com", Name: "Temp", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, f.db.Unscoped().Where("id = ?", registered.User.ID).Delete(&model.UserModel{}).Error)

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
	assertAuthError(t, err, domainerror.ErrCodeInvalidToken)

	valid, err := f.tokens.IsRefreshTokenValid(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.True(t, valid, "a rejected refresh leaves the stored token untouched")
}
