package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tickex/internal/core/domain/user"
	service "tickex/internal/core/services/reset_password"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return result, nil
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"token": "test-token", "otp": "550000", "password": "NewPass1!"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Token:       user.ResetToken("test-token"),
				OTP:         user.OTP("550000"),
				NewPassword: user.RawPassword("NewPass1!"),
			},
		},
		{
			id:             "invalid json",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing token",
			body:           `{"otp": "550000", "password": "NewPass1!"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "otp is not digits",
			body:           `{"token": "test-token", "otp": "55000a", "password": "NewPass1!"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "otp too short",
			body:           `{"token": "test-token", "otp": "5500", "password": "NewPass1!"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"token": "test-token", "otp": "550000", "password": "short"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "token expired",
			body:           `{"token": "test-token", "otp": "550000", "password": "NewPass1!"}`,
			serviceErr:     user.ErrResetTokenExpired,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "invalid token",
			body:           `{"token": "test-token", "otp": "550000", "password": "NewPass1!"}`,
			serviceErr:     user.ErrInvalidResetToken,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "otp not generated",
			body:           `{"token": "test-token", "otp": "550000", "password": "NewPass1!"}`,
			serviceErr:     user.ErrOTPNotGenerated,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "otp expired",
			body:           `{"token": "test-token", "otp": "550000", "password": "NewPass1!"}`,
			serviceErr:     user.ErrOTPExpired,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "invalid otp",
			body:           `{"token": "test-token", "otp": "550000", "password": "NewPass1!"}`,
			serviceErr:     user.ErrInvalidOTP,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			request := httptest.NewRequest(
				http.MethodPut,
				"/auth/password_reset",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert := assert.New(t)
			assert.Equal(testcase.expectedStatus, recorder.Result().StatusCode)
			if testcase.expectedInput != nil {
				assert.Equal(testcase.expectedInput, stub.input)
			}
		})
	}
}
