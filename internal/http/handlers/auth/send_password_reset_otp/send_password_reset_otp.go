package sendpasswordresetotp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	e "tickex/internal/core/domain/errors"
	"tickex/internal/core/domain/user"
	"tickex/internal/core/services"
	sendpasswordresetotp "tickex/internal/core/services/send_password_reset_otp"
	"tickex/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[sendpasswordresetotp.Input, sendpasswordresetotp.Result]
}

func New(
	service services.Service[sendpasswordresetotp.Input, sendpasswordresetotp.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token string `json:"token"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
	)
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

	_, err := h.service.Run(
		r.Context(),
		sendpasswordresetotp.Input{Token: user.ResetToken(input.Token)},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrResetTokenExpired):
			response.RenderError(rw, "token expired", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrInvalidResetToken):
			response.RenderError(rw, "invalid token", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrNotificationFailed):
			response.RenderError(rw, "could not deliver one-time code", http.StatusBadGateway)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
