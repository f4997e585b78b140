package resetpassword

import (
	"context"
	"errors"
	"time"

	e "tickex/internal/core/domain/errors"
	"tickex/internal/core/domain/logging"
	"tickex/internal/core/domain/user"
	"tickex/internal/core/services"
)

type Input struct {
	Token       user.ResetToken
	OTP         user.OTP
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenCodec     user.ResetTokenCodec
	passwordHasher user.PasswordHasher
	publisher      user.PasswordChangedPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenCodec user.ResetTokenCodec,
	passwordHasher user.PasswordHasher,
	publisher user.PasswordChangedPublisher,
	now func() time.Time,
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
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenCodec:     tokenCodec,
		passwordHasher: passwordHasher,
		publisher:      publisher,
		now:            now,
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

	if err := user.ValidateResetOTP(u, input.OTP, s.passwordHasher, s.now()); err != nil {
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	// The update is conditional on the OTP hash just validated, so a code
	// issued concurrently by another send is not silently invalidated.
	err = s.userRepository.CompletePasswordReset(ctx, user.CompletePasswordResetInput{
		UserID:          u.ID,
		ExpectedOTPHash: u.ResetOTPHash.Value,
		NewPasswordHash: newPasswordHash,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.publisher.PublishPasswordChanged(ctx, u); err != nil {
		s.log.Error(
			ctx,
			"Could not publish password changed event.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userID", u.ID))
	return result, nil
}
