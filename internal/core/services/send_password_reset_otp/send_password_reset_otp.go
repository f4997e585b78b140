package sendpasswordresetotp

import (
	"context"
	"errors"
	"fmt"
	"time"

	e "tickex/internal/core/domain/errors"
	"tickex/internal/core/domain/logging"
	"tickex/internal/core/domain/user"
	"tickex/internal/core/services"
)

type Input struct {
	Token user.ResetToken
}

type Result struct{}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	tokenCodec       user.ResetTokenCodec
	passwordHasher   user.PasswordHasher
	otpGenerator     user.OTPGenerator
	otpSender        user.OTPSender
	now              func() time.Time
	otpValidDuration time.Duration
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenCodec user.ResetTokenCodec,
	passwordHasher user.PasswordHasher,
	otpGenerator user.OTPGenerator,
	otpSender user.OTPSender,
	now func() time.Time,
	otpValidDuration time.Duration,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenCodec == nil {
		panic(e.NewNilArgumentError("tokenCodec"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if otpGenerator == nil {
		panic(e.NewNilArgumentError("otpGenerator"))
	}
	if otpSender == nil {
		panic(e.NewNilArgumentError("otpSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		tokenCodec:       tokenCodec,
		passwordHasher:   passwordHasher,
		otpGenerator:     otpGenerator,
		otpSender:        otpSender,
		now:              now,
		otpValidDuration: otpValidDuration,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	payload, err := s.tokenCodec.Verify(input.Token)
	if err != nil {
		return result, err
	}
	u, err := s.userRepository.GetByID(ctx, payload.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// A token referencing a missing user is indistinguishable from a
		// forged one as far as the caller is concerned.
		s.log.Info(ctx, "User not found for reset token.", logging.Entry("userID", payload.UserID))
		return result, user.ErrInvalidResetToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by reset token.",
			logging.Entry("userID", payload.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	otp := s.otpGenerator.GenerateOTP()
	otpHash, err := s.passwordHasher.HashOTP(otp)
	if err != nil {
		s.log.Error(ctx, "Could not hash one-time code.", logging.Entry("err", err))
		return result, err
	}

	err = s.userRepository.SetResetOTP(ctx, user.SetResetOTPInput{
		UserID:    u.ID,
		OTPHash:   otpHash,
		ExpiresAt: s.now().Add(s.otpValidDuration),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not persist one-time code.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.otpSender.SendOTP(ctx, u, otp); err != nil {
		s.log.Error(
			ctx,
			"Could not send one-time code.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %v", user.ErrNotificationFailed, err)
	}

	s.log.Info(ctx, "One-time code has been sent.", logging.Entry("userID", u.ID))
	return result, nil
}
