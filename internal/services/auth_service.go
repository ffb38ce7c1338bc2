package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barberflow/internal/models"
	"barberflow/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTenantSuspended means identity was proven but the organization
	// is not allowed to sign in.
	ErrTenantSuspended = errors.New("organization is not active")
)

// dummyHash keeps the unknown-email path as expensive as a real bcrypt
// comparison, so response timing doesn't reveal whether an email exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService is the authentication gate: credential verification, tenant
// status enforcement and token issuance. Stateless; the only side effect
// of a login is the signed token handed back.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*LoginResult, error)
	IssueToken(user *models.User) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
	Claims() func() jwt.Claims
	SigningKey() []byte
}

type LoginResult struct {
	Token        string
	User         *models.User
	Organization *models.Organization
}

// TokenClaims is the self-contained identity the token carries. Verifying
// middleware re-derives user, tenant and role from here on every request.
type TokenClaims struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo  repositories.UserRepository
	orgRepo   repositories.OrganizationRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, orgRepo repositories.OrganizationRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Authenticate runs the two-stage check: credentials first, tenant status
// second. A suspended tenant is only reported to callers who proved
// identity, so unauthenticated parties can't probe billing status.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	org, err := s.orgRepo.GetByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("load organization: %w", err)
	}

	if !org.CanSignIn(time.Now()) {
		return nil, ErrTenantSuspended
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, User: user, Organization: org}, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:         user.ID.String(),
		OrganizationID: user.OrganizationID.String(),
		Role:           user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "barberflow-auth",
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{"barberflow-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Claims builds fresh claim holders for the echo-jwt middleware.
func (s *authService) Claims() func() jwt.Claims {
	return func() jwt.Claims { return new(TokenClaims) }
}

// SigningKey exposes the process-wide secret to the verification
// middleware, so issuance and verification can never drift apart.
func (s *authService) SigningKey() []byte {
	return s.jwtSecret
}
