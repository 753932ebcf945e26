package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"numbers/internal/shared/biztime"
	"numbers/internal/shared/config"
)

// Claims identifies the platform account a request acts on behalf of.
// Admin callers carry no vendor scope and may operate across vendors.
type Claims struct {
	VendorID  string `json:"vendor_id,omitempty"`
	AccountID string `json:"account_id,omitempty"`
	Admin     bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	issuer string
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
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
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, fmt.Errorf("unexpected token issuer: %q", claims.Issuer)
	}

	return claims, nil
}

// GenerateServiceToken signs a short-lived token for calls to other
// platform services.
func (s *JWTService) GenerateServiceToken(subject string, ttl time.Duration) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}

	return signed, nil
}
