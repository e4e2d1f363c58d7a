package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/biztime"
)

// Claims carry the full session identity so requests need no store lookup.
type Claims struct {
	Email string                 `json:"email"`
	Name  string                 `json:"name"`
	Role  authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() authorization.Identity {
	return authorization.Identity{
		Email: c.Email,
		Name:  c.Name,
		Role:  authorization.ParseUserRole(string(c.Role)),
	}
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	if accessExpMinutes <= 0 {
		accessExpMinutes = 480
	}
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

// Issue signs a session token for id and returns it with its lifetime in seconds.
func (s *JWTService) Issue(id authorization.Identity) (string, int64, error) {
	now := biztime.NowUTC()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	claims := &Claims{
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.Email,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, int64(s.accessExpMinutes * 60), nil
}

// Parse validates tokenString and returns its claims.
func (s *JWTService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Verify parses tokenString and returns the identity it carries.
func (s *JWTService) Verify(tokenString string) (authorization.Identity, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return authorization.Identity{}, err
	}
	return claims.Identity(), nil
}

// AccessExpMinutes returns the session lifetime in minutes
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}
