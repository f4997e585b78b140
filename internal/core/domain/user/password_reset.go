package user

import (
	"context"
	"time"

	c "tickex/internal/core/domain/common"
)

type ResetTokenPayload struct {
	UserID ID
	Email  c.Email
}

// ResetTokenCodec signs and verifies stateless password reset tokens.
// Verify fails with ErrResetTokenExpired for a well-signed but stale token
// and with ErrInvalidResetToken for everything else.
type ResetTokenCodec interface {
	Issue(payload ResetTokenPayload) (ResetToken, error)
	Verify(token ResetToken) (ResetTokenPayload, error)
}

type OTPGenerator interface {
	GenerateOTP() OTP
}

// OTPSender delivers the plaintext code to the user out-of-band.
type OTPSender interface {
	SendOTP(ctx context.Context, u User, otp OTP) error
}

// PasswordChangedPublisher notifies the rest of the marketplace that a
// user's password has been changed through the reset flow.
type PasswordChangedPublisher interface {
	PublishPasswordChanged(ctx context.Context, u User) error
}

// ValidateResetOTP runs the OTP validation chain against the user's stored
// reset state. The order is significant: missing state is reported before
// expiry, and an expired code is never compared against the hash.
func ValidateResetOTP(u User, otp OTP, hasher PasswordHasher, now time.Time) error {
	if !u.ResetOTPHash.IsPresent || !u.ResetOTPExpiresAt.IsPresent {
		return ErrOTPNotGenerated
	}
	if !now.Before(u.ResetOTPExpiresAt.Value) {
		return ErrOTPExpired
	}
	if !hasher.ValidateOTP(otp, u.ResetOTPHash.Value) {
		return ErrInvalidOTP
	}
	return nil
}
