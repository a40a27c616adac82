// Package token mints and validates caller-identity tokens. A token binds a
// bearer to exactly one ledger address; there is no scope or role model.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
)

// Claims carries the caller address alongside the registered claims.
type Claims struct {
	Address string `json:"addr"`
	jwt.RegisteredClaims
}

// Service handles token creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
}

func NewService(signingKey string, issuer string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
}

// Mint issues a token for the given caller address.
func (s *Service) Mint(caller id.Address, expiresIn time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Address: caller.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return t.SignedString(s.signingKey)
}

// ValidateToken resolves a token string to the caller address it was minted
// for. Implements middleware.CallerValidator.
func (s *Service) ValidateToken(tokenString string) (id.Address, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.Address{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return id.Address{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return id.Address{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	caller, err := id.ParseAddress(claims.Address)
	if err != nil {
		return id.Address{}, dErrors.New(dErrors.CodeUnauthorized, "token carries an invalid address")
	}
	return caller, nil
}
