package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cash-register/backend/internal/application/adapter"
	domainerror "github.com/cash-register/backend/internal/domain/error"
)

type stubTokenService struct {
	adapter.TokenService
	valid  string
	userID uuid.UUID
}

func (s stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != s.valid {
		return nil, errors.New("bad token")
	}
	return &adapter.TokenClaims{UserID: s.userID}, nil
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	auth := NewAuthMiddleware(stubTokenService{valid: "good-token", userID: userID})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "empty token", header: "Bearer   ", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "rejected token", header: "Bearer other", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "scheme is case insensitive", header: "bearer good-token", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/cash-register/status", auth.Authenticate(), func(c *gin.Context) {
				id, ok := GetUserIDFromContext(c)
				assert.True(t, ok)
				assert.Equal(t, userID, id)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/cash-register/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), string(tt.wantCode))
			}
		})
	}
}
