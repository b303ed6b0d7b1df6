package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	authHelper "okoce_backend/internals/features/users/auth/helper"
	userModel "okoce_backend/internals/features/users/user/model"
	"okoce_backend/internals/helpers/clock"
	"okoce_backend/internals/helpers/mailer"
)

const okoceIDAttempts = 20

type AuthRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	// FindUserByEmail / FindUserByPhone: akun terverifikasi diutamakan.
	FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindUserByPhone(ctx context.Context, phone string) (*userModel.UserModel, error)
	FindVerifiedByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindVerifiedByPhone(ctx context.Context, phone string) (*userModel.UserModel, error)
	FindUnverifiedByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindUnverifiedByPhone(ctx context.Context, phone string) (*userModel.UserModel, error)

	// DeleteUnverified menghapus akun belum terverifikasi dengan email ATAU phone tsb (kecuali keep).
	DeleteUnverified(ctx context.Context, email, phone string, keep uuid.UUID) error
	OkoceIDExists(ctx context.Context, okoceID string) (bool, error)
	CreateUser(ctx context.Context, u *userModel.UserModel) error
	SaveUser(ctx context.Context, u *userModel.UserModel) error

	BlacklistToken(ctx context.Context, raw string, expiresAt time.Time) error
}

type AuthService struct {
	repo      AuthRepository
	mail      mailer.Mailer
	clock     clock.Clock
	jwtSecret string
	accessTTL time.Duration
}

func NewAuthService(repo AuthRepository, m mailer.Mailer, clk clock.Clock, jwtSecret string, accessTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 30 * 24 * time.Hour
	}
	return &AuthService{repo: repo, mail: m, clock: clk, jwtSecret: jwtSecret, accessTTL: accessTTL}
}

func (s *AuthService) now() time.Time { return s.clock.Now().UTC() }

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

/* ============================================================
   REGISTER & VERIFIKASI
============================================================ */

type RegisterInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Province    string
	City        string
	Institution *string
	HasBusiness bool
	Password    string
}

// Register membuat akun belum terverifikasi. Email OTP dikirim sebelum commit;
// kalau gagal kirim, semua dibatalkan.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := normEmail(in.Email)
	phone := strings.TrimSpace(in.PhoneNumber)
	if email == "" || phone == "" {
		return "", ErrEmailPhoneRequired
	}
	now := s.now()

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if u, err := s.repo.FindVerifiedByEmail(txCtx, email); err != nil {
			return err
		} else if u != nil {
			return ErrEmailTaken
		}
		if u, err := s.repo.FindVerifiedByPhone(txCtx, phone); err != nil {
			return err
		} else if u != nil {
			return ErrPhoneTaken
		}

		if err := s.repo.DeleteUnverified(txCtx, email, phone, uuid.Nil); err != nil {
			return err
		}

		okoceID, err := s.newOkoceID(txCtx)
		if err != nil {
			return err
		}
		otp, err := authHelper.GenerateOTP()
		if err != nil {
			return err
		}
		hashed, err := authHelper.HashPassword(in.Password)
		if err != nil {
			return err
		}

		accepted := now
		user := &userModel.UserModel{
			OkoceID:           okoceID,
			Name:              strings.TrimSpace(in.Name),
			PhoneNumber:       phone,
			Email:             email,
			Province:          strings.TrimSpace(in.Province),
			City:              strings.TrimSpace(in.City),
			Institution:       in.Institution,
			HasBusiness:       in.HasBusiness,
			Password:          hashed,
			Role:              userModel.RoleUser,
			PrivacyAcceptedAt: &accepted,
		}
		stampOTP(user, otp, now, true)

		if err := s.repo.CreateUser(txCtx, user); err != nil {
			return err
		}

		subject, body := mailer.VerificationMessage(otp)
		if err := s.mail.Send(txCtx, email, subject, body); err != nil {
			log.Printf("[ERROR] kirim email verifikasi ke %s: %v", email, err)
			return ErrRegisterMail
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return email, nil
}

func (s *AuthService) newOkoceID(ctx context.Context) (string, error) {
	for i := 0; i < okoceIDAttempts; i++ {
		id, err := authHelper.GenerateOkoceID()
		if err != nil {
			return "", err
		}
		exists, err := s.repo.OkoceIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", errors.New("gagal membuat okoce_id unik")
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, otp string) error {
	email, otp = normEmail(email), strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return ErrEmailOTPRequired
	}
	u, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	if err := CheckOTP(u, otp, s.now()); err != nil {
		return err
	}
	u.IsVerified = true
	clearOTP(u)
	return s.repo.SaveUser(ctx, u)
}

// ResendOTP: cooldown 60 detik sejak OTP terakhir.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	email = normEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	now := s.now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		u, err := s.repo.FindUserByEmail(txCtx, email)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		if u.IsVerified {
			return ErrAlreadyVerified
		}
		if wait := ResendWait(u.LastOTPSent, now); wait > 0 {
			return errResendWait(wait)
		}

		otp, err := authHelper.GenerateOTP()
		if err != nil {
			return err
		}
		stampOTP(u, otp, now, true)
		if err := s.repo.SaveUser(txCtx, u); err != nil {
			return err
		}
		subject, body := mailer.VerificationMessage(otp)
		if err := s.mail.Send(txCtx, u.Email, subject, body); err != nil {
			log.Printf("[ERROR] kirim ulang OTP ke %s: %v", u.Email, err)
			return ErrMailFailed
		}
		return nil
	})
}

// ChangeVerificationEmail mengganti email akun yang belum terverifikasi lalu kirim OTP ke email baru.
func (s *AuthService) ChangeVerificationEmail(ctx context.Context, oldEmail, newEmail string) (string, error) {
	oldEmail, newEmail = normEmail(oldEmail), normEmail(newEmail)
	if oldEmail == "" || newEmail == "" {
		return "", ErrOldNewRequired
	}
	now := s.now()

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if u, err := s.repo.FindVerifiedByEmail(txCtx, newEmail); err != nil {
			return err
		} else if u != nil {
			return ErrNewEmailTaken
		}

		u, err := s.repo.FindUnverifiedByEmail(txCtx, oldEmail)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUnverifiedAbsent
		}
		if err := s.repo.DeleteUnverified(txCtx, newEmail, "", u.ID); err != nil {
			return err
		}

		otp, err := authHelper.GenerateOTP()
		if err != nil {
			return err
		}
		u.Email = newEmail
		stampOTP(u, otp, now, true)
		if err := s.repo.SaveUser(txCtx, u); err != nil {
			return err
		}
		subject, body := mailer.VerificationMessage(otp)
		if err := s.mail.Send(txCtx, newEmail, subject, body); err != nil {
			log.Printf("[ERROR] kirim OTP ke email baru %s: %v", newEmail, err)
			return ErrNewEmailMail
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newEmail, nil
}

/* ============================================================
   LOGIN / LOGOUT
============================================================ */

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      userModel.UserModel
}

func (s *AuthService) findByIdentifier(ctx context.Context, identifier string) (*userModel.UserModel, error) {
	if authHelper.IsEmailIdentifier(identifier) {
		return s.repo.FindUserByEmail(ctx, normEmail(identifier))
	}
	return s.repo.FindUserByPhone(ctx, identifier)
}

// Login untuk aplikasi peserta. Akun belum terverifikasi mendapat OTP baru dan *UnverifiedError.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return LoginResult{}, ErrLoginRequired
	}
	u, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil || !authHelper.CheckPassword(u.Password, password) {
		return LoginResult{}, ErrBadCredentials
	}

	if !u.IsVerified {
		now := s.now()
		otp, err := authHelper.GenerateOTP()
		if err != nil {
			return LoginResult{}, err
		}
		stampOTP(u, otp, now, true)
		if err := s.repo.SaveUser(ctx, u); err != nil {
			return LoginResult{}, err
		}
		subject, body := mailer.VerificationMessage(otp)
		if err := s.mail.Send(ctx, u.Email, subject, body); err != nil {
			log.Printf("[WARN] kirim OTP saat login ke %s: %v", u.Email, err)
		}
		return LoginResult{}, &UnverifiedError{Email: u.Email}
	}

	return s.issue(*u)
}

// StaffLogin: hanya admin/panitia (aplikasi scanner).
func (s *AuthService) StaffLogin(ctx context.Context, identifier, password string) (LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return LoginResult{}, ErrStaffCredentials
	}
	u, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil || !authHelper.CheckPassword(u.Password, password) {
		return LoginResult{}, ErrStaffCredentials
	}
	if !u.IsStaff() {
		return LoginResult{}, ErrNotStaff
	}
	return s.issue(*u)
}

func (s *AuthService) issue(u userModel.UserModel) (LoginResult, error) {
	token, exp, err := IssueAccessToken(s.jwtSecret, u, s.now(), s.accessTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Logout mem-blacklist access token sampai exp-nya lewat.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	exp := s.now().Add(s.accessTTL)
	if claims, err := ParseAccessToken(s.jwtSecret, raw, s.now()); err == nil && !claims.ExpiresAt.IsZero() {
		exp = claims.ExpiresAt
	}
	return s.repo.BlacklistToken(ctx, raw, exp)
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	u, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

/* ============================================================
   RESET PASSWORD
============================================================ */

func (s *AuthService) SendResetOTP(ctx context.Context, email string) error {
	email = normEmail(email)
	now := s.now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		u, err := s.repo.FindVerifiedByEmail(txCtx, email)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrEmailNotRegistered
		}
		otp, err := authHelper.GenerateOTP()
		if err != nil {
			return err
		}
		stampOTP(u, otp, now, false)
		if err := s.repo.SaveUser(txCtx, u); err != nil {
			return err
		}
		subject, body := mailer.PasswordResetMessage(otp)
		if err := s.mail.Send(txCtx, u.Email, subject, body); err != nil {
			log.Printf("[ERROR] kirim OTP reset ke %s: %v", u.Email, err)
			return ErrMailFailed
		}
		return nil
	})
}

// ResetPasswordWithOTP sekaligus menandai akun terverifikasi (email terbukti milik user).
func (s *AuthService) ResetPasswordWithOTP(ctx context.Context, email, otp, newPassword string) error {
	email, otp = normEmail(email), strings.TrimSpace(otp)
	if email == "" || otp == "" || newPassword == "" {
		return ErrAllFieldsRequired
	}
	if len(newPassword) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	u, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := CheckOTP(u, otp, s.now()); err != nil {
		return err
	}
	hashed, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.IsVerified = true
	clearOTP(u)
	return s.repo.SaveUser(ctx, u)
}

// ResetPasswordUnverified: hanya untuk akun yang belum terverifikasi (dicari lewat nomor HP).
func (s *AuthService) ResetPasswordUnverified(ctx context.Context, phone, newPassword string) error {
	u, err := s.repo.FindUnverifiedByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if len(newPassword) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	hashed, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	return s.repo.SaveUser(ctx, u)
}

func (s *AuthService) CheckPhone(ctx context.Context, phone string) error {
	u, err := s.repo.FindUserByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return err
	}
	if u == nil {
		return ErrPhoneNotRegistered
	}
	return nil
}
