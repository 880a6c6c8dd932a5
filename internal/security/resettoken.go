package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidResetToken covers expired, forged, or malformed reset tokens.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

const resetTokenTTL = time.Hour

// ResetTokenIssuer mints and verifies password-reset tokens. Tokens are
// stateless HS256 JWTs carrying the user ID, so no reset table is needed.
type ResetTokenIssuer struct {
	secret []byte
}

// NewResetTokenIssuer creates an issuer keyed with the app secret.
func NewResetTokenIssuer(secret string) *ResetTokenIssuer {
	return &ResetTokenIssuer{secret: []byte(secret)}
}

// Issue mints a reset token for the user, valid for one hour.
func (i *ResetTokenIssuer) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Audience:  jwt.ClaimStrings{"password-reset"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks the token and returns the user ID it was issued for.
func (i *ResetTokenIssuer) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithAudience("password-reset"))
	if err != nil || !token.Valid {
		return 0, ErrInvalidResetToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidResetToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidResetToken
	}
	return userID, nil
}
