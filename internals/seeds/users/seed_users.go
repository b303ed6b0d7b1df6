package users

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	authHelper "okoce_backend/internals/features/users/auth/helper"
	"okoce_backend/internals/features/users/user/model"
)

type UserSeed struct {
	OkoceID         string  `json:"okoce_id"`
	Name            string  `json:"name"`
	PhoneNumber     string  `json:"phone_number"`
	Email           string  `json:"email"`
	Province        string  `json:"province"`
	City            string  `json:"city"`
	Institution     *string `json:"institution"`
	HasBusiness     bool    `json:"has_business"`
	Role            string  `json:"role"`
	IsVerified      bool    `json:"is_verified"`
	VerificationOTP *string `json:"verification_otp"`
	Password        string  `json:"password"`
}

// SeedUsersFromJSON mengembalikan map email -> user untuk dipakai seeder lain.
func SeedUsersFromJSON(db *gorm.DB, filePath string, now time.Time) map[string]model.UserModel {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	out := make(map[string]model.UserModel, len(inputs))
	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))

		var existing model.UserModel
		if err := db.Where("lower(email) = ?", email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", email)
			out[email] = existing
			continue
		}

		// 🔐 Hash password sebelum disimpan
		hashedPassword, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", email, err)
			continue
		}

		u := model.UserModel{
			OkoceID:         data.OkoceID,
			Name:            data.Name,
			PhoneNumber:     data.PhoneNumber,
			Email:           email,
			Province:        data.Province,
			City:            data.City,
			Institution:     data.Institution,
			HasBusiness:     data.HasBusiness,
			Password:        hashedPassword,
			Role:            data.Role,
			IsVerified:      data.IsVerified,
			VerificationOTP: data.VerificationOTP,
		}
		if data.VerificationOTP != nil {
			exp := now.Add(10 * time.Minute)
			u.OTPExpiry = &exp
		}

		if err := db.Create(&u).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", email, err)
			continue
		}
		log.Printf("✅ Berhasil insert user '%s'", email)
		out[email] = u
	}
	return out
}
