package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"okoce_backend/internals/features/users/user/dto"
	"okoce_backend/internals/features/users/user/model"
)

var (
	ErrUserNotFound    = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	ErrTokenRequired   = fiber.NewError(fiber.StatusBadRequest, "Token required")
	ErrProfileConflict = fiber.NewError(fiber.StatusConflict, "Email atau Nomor HP sudah dipakai akun lain")
)

type UserRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	// UpdateProfile mengembalikan ErrProfileConflict bila melanggar unique email/phone terverifikasi.
	UpdateProfile(ctx context.Context, u *model.UserModel) error
	// ClearFCMToken melepas token dari user lain (kolom fcm_token unik).
	ClearFCMToken(ctx context.Context, token string, except uuid.UUID) error
	SetFCMToken(ctx context.Context, id uuid.UUID, token string) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (dto.ProfileResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	if u == nil {
		return dto.ProfileResponse{}, ErrUserNotFound
	}
	return dto.FromModel(u), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req dto.UpdateProfileRequest) (dto.ProfileResponse, error) {
	if req.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &e
	}
	if req.PhoneNumber != nil {
		p := strings.TrimSpace(*req.PhoneNumber)
		req.PhoneNumber = &p
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	if u == nil {
		return dto.ProfileResponse{}, ErrUserNotFound
	}
	req.Apply(u)
	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return dto.ProfileResponse{}, err
	}
	return dto.FromModel(u), nil
}

// UpdateFCMToken: satu perangkat hanya terikat ke satu akun (token terakhir yang login).
func (s *UserService) UpdateFCMToken(ctx context.Context, id uuid.UUID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrTokenRequired
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.ClearFCMToken(txCtx, token, id); err != nil {
			return err
		}
		return s.repo.SetFCMToken(txCtx, id, token)
	})
}
