package jwt

import (
	"errors"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/config"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("expired token")
	ErrMissingSecret = errors.New("server.secret_key is not configured")
)

const defaultTokenTTL = time.Hour

//go:generate mockery --name=Manager --dir=. --output=../../../../mocks --filename=jwt_manager_mock.go --structname=JWTManager --case=underscore
type (
	Manager interface {
		CreateToken(subject string, role identity.Role) (string, error)
		ValidateToken(tokenString string) error
		DecodeToken(tokenString string) (*Claims, error)
	}
	manager struct {
		secret []byte
		ttl    time.Duration
		now    func() time.Time
	}
)

func NewJwtManager(config *config.ServerConfig) Manager {
	return newManager(config, time.Now)
}

func newManager(config *config.ServerConfig, now func() time.Time) *manager {
	ttl := config.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &manager{
		secret: []byte(config.SecretKey),
		ttl:    ttl,
		now:    now,
	}
}

type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IdentityRole maps unknown values to the lowest tier.
func (c *Claims) IdentityRole() identity.Role {
	return identity.ParseRole(c.Role)
}

func (m *manager) CreateToken(subject string, role identity.Role) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrMissingSecret
	}
	now := m.now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *manager) ValidateToken(tokenString string) error {
	_, err := m.parse(tokenString)
	return err
}

func (m *manager) DecodeToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString)
}

func (m *manager) parse(tokenString string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrMissingSecret
	}
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return m.secret, nil
		},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
