package initpasswordreset

import (
	"context"
	"errors"

	c "tickex/internal/core/domain/common"
	e "tickex/internal/core/domain/errors"
	"tickex/internal/core/domain/logging"
	"tickex/internal/core/domain/user"
	"tickex/internal/core/services"
)

type Input struct {
	Email c.Email
}

type Result struct {
	Token user.ResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenCodec     user.ResetTokenCodec
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenCodec user.ResetTokenCodec,
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
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenCodec:     tokenCodec,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.tokenCodec.Issue(user.ResetTokenPayload{UserID: u.ID, Email: u.Email.Value})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// Stores the token for traceability and drops any stale OTP state left
	// over from a previous attempt.
	err = s.userRepository.StartPasswordReset(ctx, user.StartPasswordResetInput{
		UserID: u.ID,
		Token:  token,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not persist password reset state.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Password reset initiated.", logging.Entry("userID", u.ID))
	return Result{Token: token}, nil
}
