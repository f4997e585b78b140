package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Secret     string `env:"SECRET,required"`

	HTTPAddress   string `env:"HTTP_ADDRESS" envDefault:"0.0.0.0:9090"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	RabbitmqSecurityEventsExchange    string `env:"RABBITMQ_SECURITY_EVENTS_EXCHANGE" envDefault:"security-events"`
	RabbitmqPasswordChangedRoutingKey string `env:"RABBITMQ_PASSWORD_CHANGED_ROUTING_KEY" envDefault:"user.password-changed"`

	BcryptHasherCost        int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	ResetTokenValidDuration time.Duration `env:"RESET_TOKEN_VALID_DURATION" envDefault:"1h"`
	OTPValidDuration        time.Duration `env:"OTP_VALID_DURATION" envDefault:"15m"`

	AwsRegion           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey        string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey        string `env:"AWS_SECRET_KEY,required"`
	AwsEmailSender      string `env:"AWS_EMAIL_SENDER,required"`
	AwsEmailOTPTemplate string `env:"AWS_EMAIL_OTP_TEMPLATE" envDefault:"password-reset-otp"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
