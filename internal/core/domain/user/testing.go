package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"

	c "tickex/internal/core/domain/common"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if input.Email.IsPresent && u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email.IsPresent && u.Email.Value == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) StartPasswordReset(ctx context.Context, input StartPasswordResetInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not start password reset for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.UserID {
			r.Users[ix].ResetToken = c.NewOptional(input.Token, true)
			r.Users[ix].ResetOTPHash = c.NewOptional(OTPHash(""), false)
			r.Users[ix].ResetOTPExpiresAt = c.NewOptional(time.Time{}, false)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetResetOTP(ctx context.Context, input SetResetOTPInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not set reset OTP for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.UserID {
			r.Users[ix].ResetOTPHash = c.NewOptional(input.OTPHash, true)
			r.Users[ix].ResetOTPExpiresAt = c.NewOptional(input.ExpiresAt, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) CompletePasswordReset(ctx context.Context, input CompletePasswordResetInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not complete password reset for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID != input.UserID {
			continue
		}
		if !u.ResetOTPHash.IsPresent || u.ResetOTPHash.Value != input.ExpectedOTPHash {
			return ErrOTPNotGenerated
		}
		r.Users[ix].PasswordHash = c.NewOptional(input.NewPasswordHash, true)
		r.Users[ix].ResetToken = c.NewOptional(ResetToken(""), false)
		r.Users[ix].ResetOTPHash = c.NewOptional(OTPHash(""), false)
		r.Users[ix].ResetOTPExpiresAt = c.NewOptional(time.Time{}, false)
		return nil
	}
	return ErrUserDoesNotExist
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

func (h *FakePasswordHasher) HashOTP(otp OTP) (OTPHash, error) {
	hash, err := h.HashPassword(RawPassword(otp))
	return OTPHash(hash), err
}

func (h *FakePasswordHasher) ValidateOTP(otp OTP, hash OTPHash) bool {
	return h.ValidatePassword(RawPassword(otp), PasswordHash(hash))
}

type FakeOTPGenerator struct {
	Code OTP
}

func NewFakeOTPGenerator(code string) *FakeOTPGenerator {
	return &FakeOTPGenerator{Code: OTP(code)}
}

func (g *FakeOTPGenerator) GenerateOTP() OTP {
	return g.Code
}

type SentOTP struct {
	User User
	Code OTP
}

type FakeOTPSender struct {
	Sent        []SentOTP
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeOTPSender() *FakeOTPSender {
	return &FakeOTPSender{}
}

func (s *FakeOTPSender) SendOTP(ctx context.Context, u User, otp OTP) error {
	if s.ReturnError {
		return fmt.Errorf("could not send one-time code to user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentOTP{User: u, Code: otp})
	return nil
}

func (s *FakeOTPSender) SentCount() int {
	return len(s.Sent)
}

func (s *FakeOTPSender) LastSent() SentOTP {
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakePasswordChangedPublisher struct {
	Published   []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordChangedPublisher() *FakePasswordChangedPublisher {
	return &FakePasswordChangedPublisher{}
}

func (p *FakePasswordChangedPublisher) PublishPasswordChanged(ctx context.Context, u User) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish password changed event for user %d", u.ID)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, u)
	return nil
}
