package verifypasswordresetotp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	e "tickex/internal/core/domain/errors"
	"tickex/internal/core/domain/user"
	"tickex/internal/core/services"
	verifypasswordresetotp "tickex/internal/core/services/verify_password_reset_otp"
	"tickex/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[verifypasswordresetotp.Input, verifypasswordresetotp.Result]
}

func New(
	service services.Service[verifypasswordresetotp.Input, verifypasswordresetotp.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token string `json:"token"`
	OTP   string `json:"otp"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.OTP, validation.Required, is.Digit, validation.Length(6, 6)),
	)
}

type result struct {
	Valid bool `json:"valid"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceResult, err := h.service.Run(
		r.Context(),
		verifypasswordresetotp.Input{
			Token: user.ResetToken(input.Token),
			OTP:   user.OTP(input.OTP),
		},
	)
	if err != nil {
		renderVerificationError(rw, err)
		return
	}

	response.Render(rw, result{Valid: serviceResult.Valid}, http.StatusOK)
}

func renderVerificationError(rw http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrResetTokenExpired):
		response.RenderError(rw, "token expired", http.StatusUnprocessableEntity)
	case errors.Is(err, user.ErrInvalidResetToken):
		response.RenderError(rw, "invalid token", http.StatusUnprocessableEntity)
	case errors.Is(err, user.ErrOTPNotGenerated):
		response.RenderError(rw, "one-time code has not been generated", http.StatusUnprocessableEntity)
	case errors.Is(err, user.ErrOTPExpired):
		response.RenderError(rw, "one-time code expired", http.StatusUnprocessableEntity)
	case errors.Is(err, user.ErrInvalidOTP):
		response.RenderError(rw, "invalid one-time code", http.StatusUnprocessableEntity)
	default:
		response.RenderInternalError(rw)
	}
}
