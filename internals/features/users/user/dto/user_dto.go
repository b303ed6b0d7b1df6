package dto

import (
	"github.com/google/uuid"

	"okoce_backend/internals/features/users/user/model"
)

// ProfileResponse: bentuk profil untuk aplikasi peserta (tanpa field sensitif).
type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	OkoceID     string    `json:"okoce_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Province    string    `json:"province"`
	City        string    `json:"city"`
	Institution *string   `json:"institution"`
	HasBusiness bool      `json:"has_business"`
}

func FromModel(u *model.UserModel) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		OkoceID:     u.OkoceID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Province:    u.Province,
		City:        u.City,
		Institution: u.Institution,
		HasBusiness: u.HasBusiness,
	}
}

// UpdateProfileRequest: field nil = tidak diubah.
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=1,max=20"`
	Email       *string `json:"email" validate:"omitempty,email,max=120"`
	Province    *string `json:"province" validate:"omitempty,max=100"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Institution *string `json:"institution" validate:"omitempty,max=150"`
	HasBusiness *bool   `json:"has_business"`
}

// Apply menyalin field yang dikirim ke model.
func (r UpdateProfileRequest) Apply(u *model.UserModel) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = *r.PhoneNumber
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Province != nil {
		u.Province = *r.Province
	}
	if r.City != nil {
		u.City = *r.City
	}
	if r.Institution != nil {
		u.Institution = r.Institution
	}
	if r.HasBusiness != nil {
		u.HasBusiness = *r.HasBusiness
	}
}

type FCMTokenRequest struct {
	Token string `json:"token"`
}
