package tokencodec

import (
	"errors"
	"fmt"
	"time"

	c "tickex/internal/core/domain/common"
	"tickex/internal/core/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

type resetClaims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWT issues and verifies stateless password reset tokens signed with
// HS256. All library errors are mapped to the domain error kinds at this
// boundary, callers never see jwt-specific types.
type JWT struct {
	secretKey     []byte
	validDuration time.Duration
	now           func() time.Time
}

func NewJWT(secretKey string, validDuration time.Duration, now func() time.Time) *JWT {
	return &JWT{
		secretKey:     []byte(secretKey),
		validDuration: validDuration,
		now:           now,
	}
}

func (tc *JWT) Issue(payload user.ResetTokenPayload) (user.ResetToken, error) {
	now := tc.now()
	claims := resetClaims{
		UserID: int64(payload.UserID),
		Email:  string(payload.Email),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.validDuration)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secretKey)
	if err != nil {
		return "", err
	}
	return user.ResetToken(signed), nil
}

func (tc *JWT) Verify(token user.ResetToken) (payload user.ResetTokenPayload, err error) {
	claims := &resetClaims{}
	parsed, err := jwt.ParseWithClaims(
		string(token),
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return tc.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return payload, user.ErrResetTokenExpired
		}
		return payload, user.ErrInvalidResetToken
	}
	if !parsed.Valid || claims.UserID == 0 {
		return payload, user.ErrInvalidResetToken
	}
	return user.ResetTokenPayload{
		UserID: user.ID(claims.UserID),
		Email:  c.Email(claims.Email),
	}, nil
}
