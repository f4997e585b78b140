package user

// PasswordHasher is a one-way salted hasher with constant-time comparison.
// The same primitive covers user passwords and reset one-time codes.
type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
	HashOTP(otp OTP) (OTPHash, error)
	ValidateOTP(otp OTP, hash OTPHash) bool
}
