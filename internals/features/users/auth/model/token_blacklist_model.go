package model

import "time"

// TokenBlacklistModel menyimpan HMAC access token yang sudah logout sampai token itu kedaluwarsa.
type TokenBlacklistModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"type:text;not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time `gorm:"type:timestamptz;not null;index" json:"expired_at"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (TokenBlacklistModel) TableName() string {
	return "token_blacklist"
}
