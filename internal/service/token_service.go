package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"textbook_backend/config"
	"textbook_backend/internal/apperr"
	"textbook_backend/internal/model"
)

// Principal is the authenticated identity the auth boundary attaches to a
// request. Handlers trust it for attributing results to a user.
type Principal struct {
	ID    uint
	Role  string
	Email string
}

type TokenService interface {
	IssueUser(user *model.User) (string, error)
	IssueAdmin(admin *model.Admin) (string, error)
	Parse(token string) (*Principal, error)
}

type authClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret   []byte
	userTTL  time.Duration
	adminTTL time.Duration
}

func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{
		secret:   []byte(cfg.Auth.JWTSecret),
		userTTL:  cfg.Auth.UserTokenTTL,
		adminTTL: cfg.Auth.AdminTokenTTL,
	}
}

func (s *tokenService) issue(id uint, role, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := authClaims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) IssueUser(user *model.User) (string, error) {
	return s.issue(user.ID, user.Role, user.Email, s.userTTL)
}

func (s *tokenService) IssueAdmin(admin *model.Admin) (string, error) {
	return s.issue(admin.ID, "admin", admin.Email, s.adminTTL)
}

func (s *tokenService) Parse(token string) (*Principal, error) {
	var claims authClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.Unauthorized, err, "Token expired. Please login again.")
		}
		return nil, apperr.Wrap(apperr.Unauthorized, err, "Not authorized, token invalid.")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, err, "Not authorized, token invalid.")
	}
	return &Principal{ID: uint(id), Role: claims.Role, Email: claims.Email}, nil
}
