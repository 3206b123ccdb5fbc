package handler

import (
	"net/http"
	"testing"
	"time"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
	"moto-auction/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestTokenHandler(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(m *MockTokenIssuer)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "issued",
			requestBody: helpers.TokenRequest{UserID: 2},
			mockSetup: func(m *MockTokenIssuer) {
				m.EXPECT().Login(int64(2)).
					Return("signed.jwt.token", expires, model.User{UserID: 2, Username: "bea", Role: model.RoleBuyer}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "token issued successfully",
		},
		{
			name:           "missing_user_id",
			requestBody:    `{}`,
			mockSetup:      func(m *MockTokenIssuer) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "unknown_user",
			requestBody: helpers.TokenRequest{UserID: 404},
			mockSetup: func(m *MockTokenIssuer) {
				m.EXPECT().Login(int64(404)).Return("", time.Time{}, model.User{}, biddingerrors.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "user not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			issuer := NewMockTokenIssuer(ctrl)
			tc.mockSetup(issuer)

			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.POST("/auth/token", NewAuthHandler(issuer).TokenHandler)

			w, resp := do(t, router, http.MethodPost, "/auth/token", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])

			if w.Code == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Equal(t, "signed.jwt.token", data["token"])
				require.Equal(t, "2026-03-03T10:00:00Z", data["expires_at"])
				require.Equal(t, "buyer", data["user"].(map[string]any)["role"])
			}
		})
	}
}
