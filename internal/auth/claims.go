package auth

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"merchantdesk/internal/domain"
)

// Claims are the token fields the dashboard inspects. The client never
// holds the signing key, so claims are decoded without verification and
// real authorization stays server-side.
type Claims struct {
	UserID     string          `json:"user_id"`
	Type       domain.UserType `json:"type"`
	MerchantID string          `json:"merchant_id,omitempty"`
	StoreID    string          `json:"store_id,omitempty"`
	jwtlib.RegisteredClaims
}

// ParseClaims decodes the payload of a bearer token without signature
// verification.
func ParseClaims(token string) (*Claims, error) {
	if strings.Count(token, ".") != 2 {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return claims, nil
}

// ValidateToken checks that the token parses, carries a future expiry and
// that its embedded type claim matches the acting role. A merchant session
// must never accept or transmit a customer-typed token and vice versa.
func ValidateToken(token string, role domain.UserType) (*Claims, error) {
	claims, err := ParseClaims(token)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil {
		return nil, ErrMissingExpiry
	}
	if !claims.ExpiresAt.After(time.Now()) {
		return nil, ErrExpiredToken
	}

	if claims.Type != role {
		return nil, fmt.Errorf("%w: token is %q, acting as %q", ErrRoleMismatch, claims.Type, role)
	}

	return claims, nil
}
