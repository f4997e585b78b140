package user

import (
	"context"
	"errors"
	"testing"
	"time"

	c "tickex/internal/core/domain/common"
	"tickex/internal/core/domain/user"
	"tickex/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
	RESET_TOKEN   = "test-reset-token"
	OTP_HASH      = "test-otp-hash"
)

var NOW time.Time = time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateSuccess() {
	input := user.CreateUserInput{
		Email:        c.NewOptional(c.NewEmail(EMAIL), true),
		PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
		CreatedAt:    NOW,
	}

	u, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(input.Email, u.Email)
	assert.Equal(input.PasswordHash, u.PasswordHash)
	assert.True(input.CreatedAt.Equal(u.CreatedAt))
	assert.False(u.ResetToken.IsPresent)
	assert.False(u.ResetOTPHash.IsPresent)
	assert.False(u.ResetOTPExpiresAt.IsPresent)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	input := user.CreateUserInput{
		Email:        c.NewOptional(c.NewEmail(EMAIL), true),
		PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
		CreatedAt:    NOW,
	}
	_, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)

	_, err = suite.repo.Create(context.Background(), input)
	assert.ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (s *testSuite) TestGetByEmail() {
	created := s.createUser()

	u, err := s.repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	s.Nil(err)
	s.Equal(created.ID, u.ID)

	_, err = s.repo.GetByEmail(context.Background(), c.NewEmail("unknown@test.test"))
	s.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (s *testSuite) TestStartPasswordReset() {
	u := s.createUser()
	s.setResetOTP(u.ID, OTP_HASH)

	err := s.repo.StartPasswordReset(context.Background(), user.StartPasswordResetInput{
		UserID: u.ID,
		Token:  user.ResetToken(RESET_TOKEN),
	})
	s.Nil(err)

	updated := s.getUserByID(u.ID)
	s.True(updated.ResetToken.IsPresent)
	s.Equal(user.ResetToken(RESET_TOKEN), updated.ResetToken.Value)
	s.False(updated.ResetOTPHash.IsPresent)
	s.False(updated.ResetOTPExpiresAt.IsPresent)
}

func (s *testSuite) TestStartPasswordResetReturnsErrorIfUserDoesNotExist() {
	err := s.repo.StartPasswordReset(context.Background(), user.StartPasswordResetInput{
		UserID: user.ID(111222333),
		Token:  user.ResetToken(RESET_TOKEN),
	})
	s.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (s *testSuite) TestSetResetOTP() {
	u := s.createUser()
	expiresAt := NOW.Add(time.Minute * 15)

	err := s.repo.SetResetOTP(context.Background(), user.SetResetOTPInput{
		UserID:    u.ID,
		OTPHash:   user.OTPHash(OTP_HASH),
		ExpiresAt: expiresAt,
	})
	s.Nil(err)

	updated := s.getUserByID(u.ID)
	s.True(updated.ResetOTPHash.IsPresent)
	s.Equal(user.OTPHash(OTP_HASH), updated.ResetOTPHash.Value)
	s.True(updated.ResetOTPExpiresAt.IsPresent)
	s.True(updated.ResetOTPExpiresAt.Value.Equal(expiresAt))
}

func (s *testSuite) TestSetResetOTPOverwritesPreviousCode() {
	u := s.createUser()
	s.setResetOTP(u.ID, OTP_HASH)

	err := s.repo.SetResetOTP(context.Background(), user.SetResetOTPInput{
		UserID:    u.ID,
		OTPHash:   user.OTPHash("another-otp-hash"),
		ExpiresAt: NOW.Add(time.Minute * 15),
	})
	s.Nil(err)

	updated := s.getUserByID(u.ID)
	s.Equal(user.OTPHash("another-otp-hash"), updated.ResetOTPHash.Value)
}

func (s *testSuite) TestCompletePasswordResetSuccess() {
	u := s.createUser()
	s.setResetOTP(u.ID, OTP_HASH)

	newPassword := user.PasswordHash("new-password-hash")
	err := s.repo.CompletePasswordReset(context.Background(), user.CompletePasswordResetInput{
		UserID:          u.ID,
		ExpectedOTPHash: user.OTPHash(OTP_HASH),
		NewPasswordHash: newPassword,
	})
	s.Nil(err)

	updated := s.getUserByID(u.ID)
	s.True(updated.PasswordHash.IsPresent)
	s.Equal(newPassword, updated.PasswordHash.Value)
	s.False(updated.ResetToken.IsPresent)
	s.False(updated.ResetOTPHash.IsPresent)
	s.False(updated.ResetOTPExpiresAt.IsPresent)
}

func (s *testSuite) TestCompletePasswordResetFailsIfOTPHashChanged() {
	u := s.createUser()
	s.setResetOTP(u.ID, OTP_HASH)

	err := s.repo.CompletePasswordReset(context.Background(), user.CompletePasswordResetInput{
		UserID:          u.ID,
		ExpectedOTPHash: user.OTPHash("stale-otp-hash"),
		NewPasswordHash: user.PasswordHash("new-password-hash"),
	})
	s.True(errors.Is(err, user.ErrOTPNotGenerated))

	updated := s.getUserByID(u.ID)
	s.Equal(user.PasswordHash(PASSWORD_HASH), updated.PasswordHash.Value)
	s.True(updated.ResetOTPHash.IsPresent)
}

func (s *testSuite) TestCompletePasswordResetFailsIfOTPNotSet() {
	u := s.createUser()

	err := s.repo.CompletePasswordReset(context.Background(), user.CompletePasswordResetInput{
		UserID:          u.ID,
		ExpectedOTPHash: user.OTPHash(OTP_HASH),
		NewPasswordHash: user.PasswordHash("new-password-hash"),
	})
	s.True(errors.Is(err, user.ErrOTPNotGenerated))
}

func (s *testSuite) TestCompletePasswordResetFailsIfUserDoesNotExist() {
	err := s.repo.CompletePasswordReset(context.Background(), user.CompletePasswordResetInput{
		UserID:          user.ID(111222333),
		ExpectedOTPHash: user.OTPHash(OTP_HASH),
		NewPasswordHash: user.PasswordHash("new-password-hash"),
	})
	s.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.repo.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewOptional(c.NewEmail(EMAIL), true),
			PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNowf("could not create user", "err: %v", err)
	}
	return u
}

func (s *testSuite) setResetOTP(id user.ID, otpHash string) {
	s.T().Helper()
	err := s.repo.SetResetOTP(context.Background(), user.SetResetOTPInput{
		UserID:    id,
		OTPHash:   user.OTPHash(otpHash),
		ExpiresAt: NOW.Add(time.Minute * 15),
	})
	if err != nil {
		s.FailNowf("could not set reset OTP", "err: %v", err)
	}
}

func (s *testSuite) getUserByID(id user.ID) user.User {
	s.T().Helper()
	u, err := s.repo.GetByID(context.Background(), id)
	if err != nil {
		s.FailNowf("could not get user by ID", "id: %v, err: %v", id, err)
	}
	return u
}
