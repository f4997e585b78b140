package services

import (
	"tickex/internal/app/deps"
	"tickex/internal/core/services"
	initpasswordreset "tickex/internal/core/services/init_password_reset"
	resetpassword "tickex/internal/core/services/reset_password"
	sendpasswordresetotp "tickex/internal/core/services/send_password_reset_otp"
	verifypasswordresetotp "tickex/internal/core/services/verify_password_reset_otp"
)

type Services struct {
	InitPasswordReset      services.Service[initpasswordreset.Input, initpasswordreset.Result]
	SendPasswordResetOTP   services.Service[sendpasswordresetotp.Input, sendpasswordresetotp.Result]
	VerifyPasswordResetOTP services.Service[verifypasswordresetotp.Input, verifypasswordresetotp.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.InitPasswordReset = initpasswordreset.New(
		deps.Logger,
		deps.UserRepository,
		deps.ResetTokenCodec,
	)
	s.SendPasswordResetOTP = sendpasswordresetotp.New(
		deps.Logger,
		deps.UserRepository,
		deps.ResetTokenCodec,
		deps.PasswordHasher,
		deps.OTPGenerator,
		deps.OTPSender,
		deps.Now,
		deps.Config.OTPValidDuration,
	)
	s.VerifyPasswordResetOTP = verifypasswordresetotp.New(
		deps.Logger,
		deps.UserRepository,
		deps.ResetTokenCodec,
		deps.PasswordHasher,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.ResetTokenCodec,
		deps.PasswordHasher,
		deps.PasswordChangedPublisher,
		deps.Now,
	)

	return s
}
