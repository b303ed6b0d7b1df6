package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser    = "user"
	RolePanitia = "panitia"
	RoleAdmin   = "admin"
)

// UserModel merepresentasikan tabel users.
// Email & nomor HP unik hanya di antara akun terverifikasi (partial index, lihat databases.Migrate).
type UserModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OkoceID           string     `gorm:"size:8;uniqueIndex;not null" json:"okoce_id"`
	Name              string     `gorm:"size:100;not null" json:"name"`
	PhoneNumber       string     `gorm:"size:20;not null;index" json:"phone_number"`
	Email             string     `gorm:"size:120;not null;index" json:"email"`
	Province          string     `gorm:"size:100;not null" json:"province"`
	City              string     `gorm:"size:100;not null" json:"city"`
	Institution       *string    `gorm:"size:150" json:"institution"`
	HasBusiness       bool       `gorm:"not null;default:false" json:"has_business"`
	Password          string     `gorm:"not null" json:"-"`
	Role              string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsVerified        bool       `gorm:"not null;default:false" json:"is_verified"`
	VerificationOTP   *string    `gorm:"size:6" json:"-"`
	OTPExpiry         *time.Time `gorm:"type:timestamptz" json:"-"`
	LastOTPSent       *time.Time `gorm:"type:timestamptz" json:"-"`
	FCMToken          *string    `gorm:"size:255;uniqueIndex" json:"-"`
	PrivacyAcceptedAt *time.Time `gorm:"type:timestamptz" json:"privacy_accepted_at,omitempty"`
	CreatedAt         time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RolePanitia
}
