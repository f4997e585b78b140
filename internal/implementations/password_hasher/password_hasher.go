package passwordhasher

import (
	"tickex/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes both user passwords and reset one-time codes. bcrypt salts
// every hash and compares in constant time.
type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(string(password)+h.secret), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(string(password)+h.secret))
	return err == nil
}

func (h *Bcrypt) HashOTP(otp user.OTP) (hash user.OTPHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(string(otp)+h.secret), h.cost)
	if err != nil {
		return hash, err
	}
	return user.OTPHash(bcryptHash), nil
}

func (h *Bcrypt) ValidateOTP(otp user.OTP, hash user.OTPHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(string(otp)+h.secret))
	return err == nil
}
