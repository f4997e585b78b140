package passwordhasher

import (
	"fmt"
	"testing"

	"tickex/internal/core/domain/user"
)

func TestPasswordValid(t *testing.T) {
	type testcase struct {
		ix       int
		secret   string
		cost     int
		password string
	}
	cases := []testcase{
		{ix: 1, secret: "test", cost: 5, password: "test"},
		{ix: 2, secret: "", cost: 5, password: ""},
		{ix: 3, secret: "a", cost: 7, password: "password password"},
		{ix: 4, secret: "   b   ", cost: 10, password: "   test   "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.secret, c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.password))
			if hash == user.PasswordHash("") {
				t.Fatal("hash must not be empty")
			}
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.password, err)
			}
			if !h.ValidatePassword(user.RawPassword(c.password), hash) {
				t.Fatalf("password check failed: %v", c.password)
			}
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	type testcase struct {
		ix              int
		secretToHash    string
		secretToCheck   string
		cost            int
		passwordToHash  string
		passwordToCheck string
	}
	cases := []testcase{
		{
			ix:              1,
			secretToHash:    "test",
			secretToCheck:   "test",
			cost:            5,
			passwordToHash:  "test",
			passwordToCheck: "test ",
		},
		{
			ix:              2,
			secretToHash:    "test",
			secretToCheck:   "test ",
			cost:            5,
			passwordToHash:  "test",
			passwordToCheck: "test",
		},
		{
			ix:              3,
			secretToHash:    "",
			secretToCheck:   "",
			cost:            5,
			passwordToHash:  "",
			passwordToCheck: " ",
		},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.secretToHash, c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.passwordToHash))
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.passwordToHash, err)
			}

			h = NewBcrypt(c.secretToCheck, c.cost)
			if h.ValidatePassword(user.RawPassword(c.passwordToCheck), hash) {
				t.Fatalf("password check passed: %v, %v", c.passwordToHash, c.passwordToCheck)
			}
		})
	}
}

func TestOTPHashing(t *testing.T) {
	type testcase struct {
		ix         int
		secret     string
		otpToHash  string
		otpToCheck string
		valid      bool
	}
	cases := []testcase{
		{ix: 1, secret: "test", otpToHash: "550000", otpToCheck: "550000", valid: true},
		{ix: 2, secret: "", otpToHash: "100000", otpToCheck: "100000", valid: true},
		{ix: 3, secret: "test", otpToHash: "550000", otpToCheck: "550001", valid: false},
		{ix: 4, secret: "test", otpToHash: "550000", otpToCheck: "000000", valid: false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.secret, 5)
			hash, err := h.HashOTP(user.OTP(c.otpToHash))
			if err != nil {
				t.Fatalf("could not hash OTP: %v, %v", c.otpToHash, err)
			}
			if hash == user.OTPHash(c.otpToHash) {
				t.Fatal("OTP must not be stored in plaintext")
			}
			if h.ValidateOTP(user.OTP(c.otpToCheck), hash) != c.valid {
				t.Fatalf("unexpected OTP check result: %v, %v", c.otpToHash, c.otpToCheck)
			}
		})
	}
}
