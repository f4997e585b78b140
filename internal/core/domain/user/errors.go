package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")

	ErrInvalidResetToken  = errors.New("invalid password reset token")
	ErrResetTokenExpired  = errors.New("password reset token expired")
	ErrOTPNotGenerated    = errors.New("one-time code has not been generated")
	ErrOTPExpired         = errors.New("one-time code expired")
	ErrInvalidOTP         = errors.New("invalid one-time code")
	ErrNotificationFailed = errors.New("could not deliver one-time code")
)
