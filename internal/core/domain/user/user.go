package user

import (
	"fmt"
	"time"

	c "tickex/internal/core/domain/common"
	e "tickex/internal/core/domain/errors"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// OTP is the plaintext one-time code. Only the hash is ever persisted.
type OTP string

func (o OTP) String() string {
	return "***"
}

type OTPHash string

func (h OTPHash) String() string {
	return "***"
}

type ResetToken string

type User struct {
	ID           ID
	Email        c.Optional[c.Email]
	PasswordHash c.Optional[PasswordHash]
	CreatedAt    time.Time

	// Password reset state. The token is authoritative by signature, it is
	// stored for traceability only. OTP hash and expiry are always set and
	// cleared together.
	ResetToken        c.Optional[ResetToken]
	ResetOTPHash      c.Optional[OTPHash]
	ResetOTPExpiresAt c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Email.IsPresent && !u.PasswordHash.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	if u.ResetOTPHash.IsPresent != u.ResetOTPExpiresAt.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("inconsistent reset OTP state for user %d", u.ID))
	}
	return nil
}
