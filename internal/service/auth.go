package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// AuthService handles account registration, login, and token verification.
// Admin accounts may mutate fleet data; regular accounts can only read.
type AuthService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	clock    Clock
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, secret string, tokenTTL time.Duration, clock Clock) *AuthService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		clock:    clock,
	}
}

// TokenClaims are the JWT claims issued at login.
type TokenClaims struct {
	CPF     string `json:"cpf"`
	IsAdmin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	CPF      string
	Password string
	IsAdmin  bool
}

// AuthResult is a user plus a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates a new account and returns it with a token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.CPF == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	_, err := s.userRepo.GetByCPF(ctx, req.CPF)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		CPF:          req.CPF,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, cpf, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// VerifyToken parses and validates a token, returning its claims.
func (s *AuthService) VerifyToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := s.clock.Now()
	claims := TokenClaims{
		CPF:     user.CPF,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
