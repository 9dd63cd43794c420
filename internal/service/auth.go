package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/workpulse/internal/domain"
)

// AuthService issues and verifies the JWTs that carry the authenticated
// principal for every request.
type AuthService struct {
	users     domain.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

// Principal is the authenticated identity attached to a request. The rest
// of the backend trusts it completely and never re-derives it.
type Principal struct {
	UserID         string
	EmployeeID     string
	OrganizationID string
	Role           string
}

// Login verifies credentials and returns a signed token plus the user.
// Unknown emails and wrong passwords are indistinguishable to the caller;
// deactivated accounts are rejected with ErrForbidden.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if !user.Active {
		return "", nil, fmt.Errorf("%w: account is deactivated", domain.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate jwt: %w", err)
	}

	return token, user, nil
}

// HashPassword returns the bcrypt hash for a new account's password.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyToken parses and validates a token string and returns the
// principal encoded in its claims. Expired tokens map to ErrTokenExpired
// so the handler can report the distinct response type.
func (s *AuthService) VerifyToken(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrUnauthorized
	}

	return &Principal{
		UserID:         sub,
		EmployeeID:     stringClaim(claims, "employeeId"),
		OrganizationID: stringClaim(claims, "organizationId"),
		Role:           stringClaim(claims, "role"),
	}, nil
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":            user.ID,
		"email":          user.Email,
		"role":           user.Role,
		"organizationId": user.OrganizationID,
		"employeeId":     user.EmployeeID,
		"iat":            now.Unix(),
		"exp":            now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
