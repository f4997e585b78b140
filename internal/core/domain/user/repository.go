package user

import (
	"context"
	"time"

	c "tickex/internal/core/domain/common"
)

type CreateUserInput struct {
	Email        c.Optional[c.Email]
	PasswordHash c.Optional[PasswordHash]
	CreatedAt    time.Time
}

type StartPasswordResetInput struct {
	UserID ID
	Token  ResetToken
}

type SetResetOTPInput struct {
	UserID    ID
	OTPHash   OTPHash
	ExpiresAt time.Time
}

type CompletePasswordResetInput struct {
	UserID          ID
	ExpectedOTPHash OTPHash
	NewPasswordHash PasswordHash
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)

	// StartPasswordReset stores the issued token for traceability and clears
	// any previous OTP state.
	StartPasswordReset(ctx context.Context, input StartPasswordResetInput) error

	// SetResetOTP unconditionally overwrites the active OTP state, so only
	// the most recently issued code stays valid.
	SetResetOTP(ctx context.Context, input SetResetOTPInput) error

	// CompletePasswordReset sets the new password hash and clears all reset
	// state in a single update, conditional on the OTP hash still being the
	// one the caller validated. Fails with ErrOTPNotGenerated when the state
	// has been cleared or replaced in the meantime.
	CompletePasswordReset(ctx context.Context, input CompletePasswordResetInput) error
}
