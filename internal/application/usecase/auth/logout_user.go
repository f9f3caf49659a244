package auth

import (
	"context"
	"log/slog"

	"github.com/cash-register/backend/internal/application/adapter"
)

// SessionClosedMessage is returned to the client once a session ends.
const SessionClosedMessage = "Session closed"

// LogoutUserInput carries the refresh token of the session to end.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput confirms the session end.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase ends a cashier session by revoking its refresh token.
// Access tokens already issued stay valid until they expire.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokenService: tokenService}
}

// Execute always succeeds; unknown or already revoked tokens are only logged.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.RefreshToken != "" {
		if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
			slog.Debug("Logout with unknown refresh token", "error", err)
		}
	}

	return &LogoutUserOutput{Message: SessionClosedMessage}, nil
}
