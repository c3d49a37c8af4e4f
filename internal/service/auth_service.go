package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = fmt.Errorf("%w: username already taken", domain.ErrConflict)
	ErrAuthenticationFailed = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthenticated)
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService handles registration, login and token issuance.
type AuthService interface {
	// Register creates a new account. Every account starts with RoleUser;
	// the caller cannot pick a role. Returns the account and a fresh token.
	Register(ctx context.Context, username, password string) (*domain.Account, string, error)
	Login(ctx context.Context, username, password string) (token string, account *domain.Account, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new account registration.
func (s *authService) Register(ctx context.Context, username, password string) (*domain.Account, string, error) {
	// 1. Basic input validation; length rules are enforced at the binding layer.
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	// 2. Check whether the username is taken (case-insensitive).
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, "", ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	// 3. Hash the password.
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrHashingFailed
	}

	// 4. Persist. Role is always RoleUser at creation; only an admin can
	// promote later. The unique index covers the race between the
	// GetByUsername check and this insert.
	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	}
	if _, err := s.userRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", err
	}

	// 5. Issue the first token so the client can proceed immediately.
	token, err := s.generateJWT(account)
	if err != nil {
		return nil, "", ErrTokenGeneration
	}

	account.PasswordHash = ""
	return account, token, nil
}

// Login authenticates an account and returns a signed token.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	account, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Absent account maps to the same failure as a bad password.
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(account)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	account.PasswordHash = ""
	return token, account, nil
}

// --- JWT Helper ---

// TokenClaims defines the structure of the JWT payload. The role inside
// the token is authoritative for the request it accompanies; role changes
// take effect when the next token is issued.
type TokenClaims struct {
	UserID   int64       `json:"uid"`
	Username string      `json:"uname"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a signed token for the given account.
func (s *authService) generateJWT(account *domain.Account) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", account.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fittrack",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
