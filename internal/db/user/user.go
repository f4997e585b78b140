package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "tickex/internal/core/domain/common"
	"tickex/internal/core/domain/user"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

type queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db queryer
}

func NewPgxRepository(db queryer) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

const userColumns = `id, email, password_hash, created_at, reset_token, reset_otp_hash, reset_otp_expires_at`

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING `+userColumns,
		encodeEmail(input.Email),
		encodePasswordHash(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) StartPasswordReset(ctx context.Context, input user.StartPasswordResetInput) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_token = $2, reset_otp_hash = NULL, reset_otp_expires_at = NULL WHERE id = $1`,
		int64(input.UserID),
		string(input.Token),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetResetOTP(ctx context.Context, input user.SetResetOTPInput) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_otp_hash = $2, reset_otp_expires_at = $3 WHERE id = $1`,
		int64(input.UserID),
		string(input.OTPHash),
		input.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) CompletePasswordReset(ctx context.Context, input user.CompletePasswordResetInput) error {
	// Single conditional update: the reset state is cleared and the new
	// password set only if the OTP hash is still the one the caller
	// validated.
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user"
		 SET password_hash = $3, reset_token = NULL, reset_otp_hash = NULL, reset_otp_expires_at = NULL
		 WHERE id = $1 AND reset_otp_hash = $2`,
		int64(input.UserID),
		string(input.ExpectedOTPHash),
		string(input.NewPasswordHash),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, input.UserID); errors.Is(err, user.ErrUserDoesNotExist) {
			return user.ErrUserDoesNotExist
		}
		return user.ErrOTPNotGenerated
	}
	return nil
}

func encodeEmail(email c.Optional[c.Email]) sql.NullString {
	return sql.NullString{String: string(email.Value), Valid: email.IsPresent}
}

func encodePasswordHash(ph c.Optional[user.PasswordHash]) sql.NullString {
	return sql.NullString{String: string(ph.Value), Valid: ph.IsPresent}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id                int64
		email             sql.NullString
		passwordHash      sql.NullString
		createdAt         time.Time
		resetToken        sql.NullString
		resetOTPHash      sql.NullString
		resetOTPExpiresAt sql.NullTime
	)
	err = row.Scan(&id, &email, &passwordHash, &createdAt, &resetToken, &resetOTPHash, &resetOTPExpiresAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:                user.ID(id),
		Email:             c.NewOptional(c.Email(email.String), email.Valid),
		PasswordHash:      c.NewOptional(user.PasswordHash(passwordHash.String), passwordHash.Valid),
		CreatedAt:         createdAt,
		ResetToken:        c.NewOptional(user.ResetToken(resetToken.String), resetToken.Valid),
		ResetOTPHash:      c.NewOptional(user.OTPHash(resetOTPHash.String), resetOTPHash.Valid),
		ResetOTPExpiresAt: c.NewOptional(resetOTPExpiresAt.Time, resetOTPExpiresAt.Valid),
	}, nil
}
