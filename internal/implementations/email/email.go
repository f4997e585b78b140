package email

import (
	"context"
	"encoding/json"
	"errors"

	"tickex/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// OTPSender delivers the plaintext one-time code over SES. The hash never
// leaves the process.
type OTPSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender      string
	otpTemplate string
}

func NewOTPSender(awsConfig aws.Config, sender string, otpTemplate string) *OTPSender {
	return &OTPSender{
		ses:         ses.NewFromConfig(awsConfig),
		sender:      sender,
		otpTemplate: otpTemplate,
	}
}

func (s *OTPSender) SendOTP(ctx context.Context, u user.User, otp user.OTP) error {
	if !u.Email.IsPresent {
		return errors.New("user email is not defined")
	}

	templateParamsBytes, err := json.Marshal(otpTemplateParams{Code: string(otp)})
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email.Value)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.otpTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type otpTemplateParams struct {
	Code string `json:"code"`
}
