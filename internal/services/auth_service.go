package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"finvault/internal/core"
	"finvault/internal/mail"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
	welcomeTimeout    = 10 * time.Second
)

// UserStore is the persistence AuthService needs.
type UserStore interface {
	CreateUser(ctx context.Context, u core.User) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
}

// Claims is the JWT payload issued at sign in.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles sign up, sign in and token verification.
type AuthService struct {
	users  UserStore
	mailer mail.Mailer
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users UserStore, mailer mail.Mailer, secret string, ttl time.Duration) *AuthService {
	if mailer == nil {
		mailer = mail.Noop{}
	}
	return &AuthService{
		users:  users,
		mailer: mailer,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Signup registers a user. The welcome e-mail is best effort.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (core.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case name == "":
		return core.User{}, core.ErrEmptyName
	case !validEmail(email):
		return core.User{}, core.ErrInvalidEmail
	case len(password) < minPasswordLength:
		return core.User{}, core.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, core.User{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "component", "auth", "user_id", user.ID)

	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), welcomeTimeout)
	defer cancel()
	if err := s.mailer.SendWelcome(mailCtx, user.Email, user.Name); err != nil {
		slog.WarnContext(ctx, "Welcome e-mail failed", "component", "auth", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Signin checks credentials and issues a signed token. Unknown e-mail and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, core.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, core.ErrNotFound) {
		return "", core.User{}, core.ErrInvalidCredentials
	}
	if err != nil {
		return "", core.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", core.User{}, core.ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return "", core.User{}, err
	}
	return token, user, nil
}

func (s *AuthService) issue(user core.User) (string, error) {
	now := s.now()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a bearer token and returns the user id it was issued to.
func (s *AuthService) ParseToken(token string) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.Subject == "" {
		return "", core.ErrUnauthorized
	}
	return claims.Subject, nil
}

func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}
