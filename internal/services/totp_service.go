package services

import (
	"context"
	"errors"

	"dailyshop-backend/internal/repositories"

	"github.com/pquerna/otp/totp"
)

// TOTPService manages optional two-factor enrollment for admin accounts.
// Secrets live in the users table next to the password hash.
type TOTPService struct {
	Users  *repositories.UserRepository
	Issuer string
}

func NewTOTPService(users *repositories.UserRepository, issuer string) *TOTPService {
	return &TOTPService{Users: users, Issuer: issuer}
}

// Enroll generates a fresh secret for the user and returns the otpauth URL
// to feed an authenticator app. Enrolling again replaces the old secret.
func (s *TOTPService) Enroll(ctx context.Context, userID string) (string, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Mobile,
	})
	if err != nil {
		return "", err
	}
	if err := s.Users.SetTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return "", err
	}
	return key.URL(), nil
}

// Verify checks a 6-digit code against the user's stored secret.
func (s *TOTPService) Verify(ctx context.Context, userID, code string) error {
	if code == "" {
		return errors.New("totp_code is required")
	}
	secret, err := s.Users.GetTOTPSecret(ctx, userID)
	if err != nil {
		return err
	}
	if secret == "" {
		return errors.New("2FA is not enrolled for this account")
	}
	if !totp.Validate(code, secret) {
		return errors.New("invalid 2FA code")
	}
	return nil
}

// Disable clears the stored secret.
func (s *TOTPService) Disable(ctx context.Context, userID string) error {
	return s.Users.SetTOTPSecret(ctx, userID, "")
}
