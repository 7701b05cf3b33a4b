package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	Role string `json:"role"`

	jwtlib.RegisteredClaims
}

// Service validates bearer tokens for the privileged aggregation trigger.
type Service interface {
	GenerateToken(subject string, expiresIn time.Duration) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret []byte
	now    func() time.Time
}

var _ Service = (*HMACService)(nil)

func NewHMACService(secret string) *HMACService {
	return &HMACService{secret: []byte(secret), now: time.Now}
}

func (s *HMACService) GenerateToken(subject string, expiresIn time.Duration) (string, error) {
	if len(s.secret) == 0 || expiresIn <= 0 {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(expiresIn)),
			Subject:   subject,
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	p := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if c.Role != RoleAdmin {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}
