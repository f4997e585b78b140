package verifypasswordresetotp

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
	Token user.ResetToken
	OTP   user.OTP
}

type Result struct {
	Valid bool
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenCodec     user.ResetTokenCodec
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenCodec user.ResetTokenCodec,
	passwordHasher user.PasswordHasher,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenCodec:     tokenCodec,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

// Run pre-validates the code without consuming it, so a client can check
// the code before submitting the new password.
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
	return Result{Valid: true}, nil
}
