package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/watchlist/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the identity plus the registered claims.
// The JSON names match the payload older clients already hold.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"_id"`
	UserName string `json:"userName"`
}

// TokenIssuer signs and verifies session tokens with a shared HMAC secret.
//
// A zero validity issues tokens without an "exp" claim, which never expire.
// A positive validity embeds "exp" and Verify rejects tokens past it.
type TokenIssuer struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

// NewTokenIssuer returns an issuer using secretKey for HS256 signatures.
func NewTokenIssuer(secretKey []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secretKey: secretKey, validity: validity, now: time.Now}
}

// Issue encodes id into a signed token.
func (i *TokenIssuer) Issue(id Identity) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	claims := Claims{UserID: id.UserID, UserName: id.UserName}
	if i.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(i.now().Add(i.validity))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify decodes tokenString and returns the identity it carries.
// Expired tokens yield common.ErrTokenExpired; every other failure,
// including a payload missing either identity field, yields
// common.ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return Identity{}, common.ErrInvalidToken
	}

	id := Identity{UserID: claims.UserID, UserName: claims.UserName}
	if err := id.Validate(); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	return id, nil
}
