package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/internal/userbackend/gateway"
	"github.com/freecontest/userbackend/internal/userbackend/mailer"
	"github.com/freecontest/userbackend/internal/userbackend/otp"
	"github.com/freecontest/userbackend/internal/userbackend/proof"
	"github.com/freecontest/userbackend/internal/userbackend/store"
	"github.com/freecontest/userbackend/pkg/cryptox"
	"github.com/freecontest/userbackend/pkg/slogx"
)

// AuthService runs the login and OTP-gated account flows. It holds no state
// of its own between calls; everything lives in the OTP store, the proof
// tokens handed to the client, the session cookie and the database gateway.
type AuthService struct {
	Users       gateway.Users
	Mailer      mailer.Sender
	OTP         otp.Store
	Proofs      *proof.Issuer
	Credentials *Credentials

	// Ledger makes proof tokens single-use. Nil disables the check.
	Ledger store.UsedProofs
}

// Login checks the password of the account named by authKey, a username or
// an email address. A missing account and a wrong password both return
// domain.ErrUnauthorized and take the same time.
func (s *AuthService) Login(ctx context.Context, authKey, password string) (*domain.SessionRecord, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Users.FindUser(ctx, domain.ByUsername(authKey))
	if err != nil {
		return nil, err
	}
	if user == nil && ValidateEmail(authKey) == nil {
		if user, err = s.Users.FindUser(ctx, domain.ByEmail(authKey)); err != nil {
			return nil, err
		}
	}

	if user == nil {
		s.Credentials.Burn(password)
		log.Info("login_failed", slog.String("reason", "unknown_user"))
		return nil, domain.ErrUnauthorized
	}
	if !s.Credentials.Verify(password, user.Password) {
		log.Info("login_failed", slog.String("reason", "wrong_password"), slog.Int64("user_id", user.ID))
		return nil, domain.ErrUnauthorized
	}

	log.Info("login_succeeded", slog.Int64("user_id", user.ID))
	return &domain.SessionRecord{UserID: user.ID, Username: user.Username}, nil
}

type RequestSignupInput struct {
	Email    string
	Username string
	FullName string
}

// RequestSignup mails a code bound to (email, username) once neither is taken.
func (s *AuthService) RequestSignup(ctx context.Context, in RequestSignupInput) error {
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := s.ensureAvailable(ctx, in.Email, in.Username); err != nil {
		return err
	}

	code, err := s.OTP.Create(ctx, in.Email, &in.Username)
	if err != nil {
		return fmt.Errorf("create otp: %w", err)
	}
	return s.Mailer.SendSignupOTP(ctx, in.Email, in.FullName, code)
}

// VerifyOTP exchanges a correct code for a proof token bound to the same
// identity. A wrong code is domain.ErrOtpIncorrect.
func (s *AuthService) VerifyOTP(ctx context.Context, email string, username *string, code string) (string, error) {
	if !otp.WellFormed(code) {
		return "", domain.ErrValidationFailed.With(map[string]string{"otp": "must be 6 digits"})
	}

	ok, err := s.OTP.Verify(ctx, email, username, code)
	if err != nil {
		return "", fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		slogx.FromContext(ctx).Info("otp_incorrect")
		return "", domain.ErrOtpIncorrect
	}

	token, err := s.Proofs.Issue(email, username)
	if err != nil {
		return "", err
	}
	return token, nil
}

type SignupInput struct {
	Token      string
	Username   string
	FullName   string
	SchoolName string
	Email      string
	Password   string
}

// Signup creates the account once the proof token for (email, username)
// checks out. Uniqueness is checked again because time has passed since
// RequestSignup.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) error {
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := s.Credentials.ValidatePassword(in.Password); err != nil {
		return err
	}

	claims, err := s.verifyProof(ctx, in.Token, in.Email, &in.Username)
	if err != nil {
		return err
	}
	if err := s.ensureAvailable(ctx, in.Email, in.Username); err != nil {
		return err
	}

	return s.consume(ctx, claims, func() error {
		hash, err := s.Credentials.Hash(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		return s.Users.CreateUser(ctx, domain.NewUser{
			Username:   in.Username,
			FullName:   in.FullName,
			Email:      in.Email,
			SchoolName: in.SchoolName,
			Password:   hash,
		})
	})
}

// RequestChangeEmail mails a code bound to (newEmail, current username).
func (s *AuthService) RequestChangeEmail(ctx context.Context, rec *domain.SessionRecord, newEmail string) error {
	if rec == nil {
		return domain.New(domain.KindUnauthorized, "User is not logged in", nil)
	}
	if err := ValidateEmail(newEmail); err != nil {
		return err
	}

	user, err := s.mustFindUser(ctx, domain.ByUsername(rec.Username), map[string]string{"username": rec.Username})
	if err != nil {
		return err
	}

	code, err := s.OTP.Create(ctx, newEmail, &rec.Username)
	if err != nil {
		return fmt.Errorf("create otp: %w", err)
	}
	return s.Mailer.SendChangeEmailOTP(ctx, newEmail, user.FullName, rec.Username, code)
}

// ChangeEmail moves the signed-in account to newEmail.
func (s *AuthService) ChangeEmail(ctx context.Context, rec *domain.SessionRecord, newEmail, token string) error {
	if rec == nil {
		return domain.New(domain.KindUnauthorized, "User is not logged in", nil)
	}
	if err := ValidateEmail(newEmail); err != nil {
		return err
	}

	claims, err := s.verifyProof(ctx, token, newEmail, &rec.Username)
	if err != nil {
		return err
	}

	return s.consume(ctx, claims, func() error {
		return s.Users.UpdateUser(ctx, rec.UserID, domain.UserUpdate{Email: &newEmail})
	})
}

// RequestResetPassword mails a code bound to (email, nil) to the owner of
// email.
func (s *AuthService) RequestResetPassword(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}

	user, err := s.mustFindUser(ctx, domain.ByEmail(email), map[string]string{"email": email})
	if err != nil {
		return err
	}

	code, err := s.OTP.Create(ctx, email, nil)
	if err != nil {
		return fmt.Errorf("create otp: %w", err)
	}
	return s.Mailer.SendResetPasswordOTP(ctx, email, user.FullName, user.Username, code)
}

// ResetPassword sets a new password on the owner of email and returns their
// username.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := s.Credentials.ValidatePassword(newPassword); err != nil {
		return "", err
	}

	claims, err := s.verifyProof(ctx, token, email, nil)
	if err != nil {
		return "", err
	}

	user, err := s.mustFindUser(ctx, domain.ByEmail(email), map[string]string{"email": email})
	if err != nil {
		return "", err
	}

	err = s.consume(ctx, claims, func() error {
		hash, err := s.Credentials.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		return s.Users.UpdateUser(ctx, user.ID, domain.UserUpdate{Password: &hash})
	})
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// ErrOldPasswordIncorrect is returned by ChangePassword when the old password
// does not match. It shares KindInvalidPassword with policy failures, so
// compare it by identity.
var ErrOldPasswordIncorrect = domain.New(domain.KindInvalidPassword, "Old password is incorrect", nil)

// ChangePassword replaces the password of the signed-in account.
func (s *AuthService) ChangePassword(ctx context.Context, rec *domain.SessionRecord, oldPassword, newPassword string) error {
	if rec == nil {
		return domain.New(domain.KindUnauthorized, "User is not logged in", nil)
	}

	user, err := s.mustFindUser(ctx, domain.ByID(rec.UserID), map[string]any{"user_id": rec.UserID})
	if err != nil {
		return err
	}
	if !s.Credentials.Verify(oldPassword, user.Password) {
		return ErrOldPasswordIncorrect
	}
	if err := s.Credentials.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.Credentials.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Users.UpdateUser(ctx, user.ID, domain.UserUpdate{Password: &hash})
}

// OTPStats reports the size of the OTP store.
func (s *AuthService) OTPStats(ctx context.Context) (otp.Stats, error) {
	return s.OTP.Stats(ctx)
}

// RevokeOTP drops the live code for key, if any.
func (s *AuthService) RevokeOTP(ctx context.Context, key string) (bool, error) {
	return s.OTP.Revoke(ctx, key)
}

func (s *AuthService) ensureAvailable(ctx context.Context, email, username string) error {
	u, err := s.Users.FindUser(ctx, domain.ByUsername(username))
	if err != nil {
		return err
	}
	if u != nil {
		return domain.ErrUsernameExisted.With(map[string]string{"username": username})
	}

	u, err = s.Users.FindUser(ctx, domain.ByEmail(email))
	if err != nil {
		return err
	}
	if u != nil {
		return domain.ErrEmailExisted.With(map[string]string{"email": email})
	}
	return nil
}

func (s *AuthService) mustFindUser(ctx context.Context, filter domain.UserFilter, data any) (*domain.User, error) {
	u, err := s.Users.FindUser(ctx, filter)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound.With(data)
	}
	return u, nil
}

func (s *AuthService) verifyProof(ctx context.Context, token, email string, username *string) (*proof.Claims, error) {
	claims, err := s.Proofs.Verify(token, email, username)
	if err != nil {
		reason := "unknown"
		if cause := errors.Unwrap(err); cause != nil {
			reason = cause.Error()
		}
		slogx.FromContext(ctx).Info("proof_rejected",
			slog.String("token_fp", cryptox.FingerprintToken(token)),
			slog.String("reason", reason),
		)
		return nil, err
	}
	return claims, nil
}

// consume runs action at most once per proof token. The claim is released
// when action fails so the client can retry with the same token.
func (s *AuthService) consume(ctx context.Context, claims *proof.Claims, action func() error) error {
	if s.Ledger == nil {
		return action()
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return domain.Wrap(domain.KindProofInvalid, domain.ErrProofInvalid.Message, errors.New("token has no id"), nil)
	}

	if err := s.Ledger.Claim(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		if errors.Is(err, store.ErrAlreadyClaimed) {
			slogx.FromContext(ctx).Warn("proof_replayed", slog.String("jti", claims.ID))
			return domain.Wrap(domain.KindProofInvalid, domain.ErrProofInvalid.Message, err, nil)
		}
		return fmt.Errorf("claim proof: %w", err)
	}

	if err := action(); err != nil {
		if rerr := s.Ledger.Release(context.WithoutCancel(ctx), claims.ID); rerr != nil {
			slogx.FromContext(ctx).Error("proof_release_failed",
				slog.String("jti", claims.ID),
				slog.String("error", rerr.Error()),
			)
		}
		return err
	}
	return nil
}
