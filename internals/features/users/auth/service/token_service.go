package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "okoce_backend/internals/features/users/user/model"
)

var ErrInvalidToken = errors.New("token tidak valid")

// AccessClaims: isi access token yang dibutuhkan middleware.
type AccessClaims struct {
	UserID    uuid.UUID
	Role      string
	Name      string
	ExpiresAt time.Time
}

// IssueAccessToken menandatangani access token HS256.
func IssueAccessToken(secret string, user userModel.UserModel, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("JWT_SECRET belum diset")
	}
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.Name,
		"okoce_id":  user.OkoceID,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken memvalidasi tanda tangan lalu exp terhadap now (jam aplikasi, bukan jam jwt).
func ParseAccessToken(secret, raw string, now time.Time) (*AccessClaims, error) {
	parser := jwt.Parser{SkipClaimsValidation: true}
	tok, err := parser.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if !mc.VerifyExpiresAt(now.Unix(), true) {
		return nil, ErrInvalidToken
	}

	idStr, _ := mc["id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, ErrInvalidToken
	}
	out := &AccessClaims{UserID: id}
	out.Role, _ = mc["role"].(string)
	out.Name, _ = mc["user_name"].(string)
	if exp, ok := mc["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return out, nil
}
