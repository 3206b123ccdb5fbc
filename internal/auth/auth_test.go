package auth

import (
	"errors"
	"testing"
	"time"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
	"moto-auction/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_IssueAndParse(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	user, err := repo.CreateUser(model.User{Username: "rider", Role: model.RoleBuyer})
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	a := New("secret", time.Hour, repo)
	a.SetClock(func() time.Time { return now })

	token, expires, loggedIn, err := a.Login(user.UserID)
	require.NoError(t, err)
	require.Equal(t, user, loggedIn)
	require.Equal(t, now.Add(time.Hour), expires)

	actor, err := a.Parse(token)
	require.NoError(t, err)
	require.Equal(t, model.Actor{UserID: user.UserID, Role: model.RoleBuyer}, actor)

	t.Run("expired", func(t *testing.T) {
		later := New("secret", time.Hour, repo)
		later.SetClock(func() time.Time { return now.Add(2 * time.Hour) })
		_, err := later.Parse(token)
		require.True(t, errors.Is(err, biddingerrors.ErrUnauthorized))
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other := New("other", time.Hour, repo)
		other.SetClock(func() time.Time { return now })
		_, err := other.Parse(token)
		require.True(t, errors.Is(err, biddingerrors.ErrUnauthorized))
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, _, _, err := a.Login(999)
		require.True(t, errors.Is(err, biddingerrors.ErrUserNotFound))
	})
}

func TestAuthenticator_RejectsForgedTokens(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	a := New("secret", time.Hour, nil)
	a.SetClock(func() time.Time { return now })

	sign := func(method jwt.SigningMethod, key any, claims Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "none_alg", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, Claims{UserID: 1, Role: model.RoleSeller, RegisteredClaims: valid})},
		{name: "system_role", token: sign(jwt.SigningMethodHS256, []byte("secret"), Claims{UserID: 1, Role: model.RoleSystem, RegisteredClaims: valid})},
		{name: "unknown_role", token: sign(jwt.SigningMethodHS256, []byte("secret"), Claims{UserID: 1, Role: "admin", RegisteredClaims: valid})},
		{name: "no_expiry", token: sign(jwt.SigningMethodHS256, []byte("secret"), Claims{UserID: 1, Role: model.RoleBuyer, RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}})},
		{name: "wrong_issuer", token: sign(jwt.SigningMethodHS256, []byte("secret"), Claims{UserID: 1, Role: model.RoleBuyer, RegisteredClaims: jwt.RegisteredClaims{Issuer: "elsewhere", ExpiresAt: valid.ExpiresAt}})},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := a.Parse(tc.token)
			require.True(t, errors.Is(err, biddingerrors.ErrUnauthorized), "got %v", err)
		})
	}

	_, _, err := a.Issue(model.User{UserID: 0, Role: model.RoleBuyer})
	require.True(t, errors.Is(err, biddingerrors.ErrValidation))
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc.def", want: "abc.def", ok: true},
		{header: "bearer   abc", want: "abc", ok: true},
		{header: "Basic abc", ok: false},
		{header: "Bearer ", ok: false},
		{header: "", ok: false},
	}
	for _, tc := range tests {
		got, ok := BearerToken(tc.header)
		require.Equal(t, tc.ok, ok, tc.header)
		require.Equal(t, tc.want, got, tc.header)
	}
}
