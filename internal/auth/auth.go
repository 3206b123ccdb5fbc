// Package auth turns bearer tokens into the actor (user id and role) the engine authorizes against.
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
	"moto-auction/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "moto-auction"

// Claims are the signed token contents
type Claims struct {
	UserID int64      `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies HS256 tokens
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	users  repository.UserDB
	now    func() time.Time
}

// New creates an Authenticator; users is consulted by Login
func New(secret string, ttl time.Duration, users repository.UserDB) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl, users: users, now: time.Now}
}

// SetClock replaces the time source; used by tests
func (a *Authenticator) SetClock(now func() time.Time) { a.now = now }

// Issue signs a token for the user and returns it with its expiry
func (a *Authenticator) Issue(user model.User) (string, time.Time, error) {
	if user.UserID <= 0 || !user.Role.Valid() {
		return "", time.Time{}, biddingerrors.Validationf("cannot issue a token for user %d with role %q", user.UserID, user.Role)
	}
	issued := a.now().UTC()
	expires := issued.Add(a.ttl)
	claims := Claims{
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, expires, nil
}

// Login issues a token for a stored user
func (a *Authenticator) Login(userID int64) (string, time.Time, model.User, error) {
	user, err := a.users.LoadUser(userID)
	if err != nil {
		return "", time.Time{}, model.User{}, fmt.Errorf("auth: %w", err)
	}
	token, expires, err := a.Issue(user)
	if err != nil {
		return "", time.Time{}, model.User{}, err
	}
	return token, expires, user, nil
}

// Parse verifies a token and returns the actor it names
func (a *Authenticator) Parse(token string) (model.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return model.Actor{}, fmt.Errorf("%w: %v", biddingerrors.ErrUnauthorized, err)
	}
	if claims.UserID <= 0 || !claims.Role.Valid() || claims.Role == model.RoleSystem {
		return model.Actor{}, fmt.Errorf("%w: token does not name a user", biddingerrors.ErrUnauthorized)
	}
	return model.Actor{UserID: claims.UserID, Role: claims.Role}, nil
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
