package otpgenerator

import (
	"fmt"
	"math/rand"
	"time"

	"tickex/internal/core/domain/user"
)

const (
	otpMin  = 100000
	otpSpan = 900000
)

type Generator struct{}

func NewGenerator() *Generator {
	rand.Seed(time.Now().UnixNano())
	return &Generator{}
}

// GenerateOTP draws a uniform 6-digit numeric code in [100000, 999999].
func (g *Generator) GenerateOTP() user.OTP {
	return user.OTP(fmt.Sprintf("%06d", otpMin+rand.Intn(otpSpan)))
}
