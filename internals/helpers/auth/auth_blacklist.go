package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "okoce_backend/internals/features/users/auth/model"
)

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Blacklist: simpan HMAC(access_token), bukan token mentah.
func Blacklist(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" {
		return nil
	}
	row := authModel.TokenBlacklistModel{
		TokenHash: hmacHex(rawAccessToken, jwtSecret),
		ExpiredAt: expiresAt.UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_hash"}}, DoNothing: true}).
		Create(&row).Error
}

func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklistModel{}).
		Where("token_hash = ?", hmacHex(rawAccessToken, jwtSecret)).
		Count(&n).Error
	return n > 0, err
}
