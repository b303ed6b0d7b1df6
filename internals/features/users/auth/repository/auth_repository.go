package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "okoce_backend/internals/features/users/auth/model"
	"okoce_backend/internals/features/users/auth/service"
	userModel "okoce_backend/internals/features/users/user/model"
	helperAuth "okoce_backend/internals/helpers/auth"
)

type txKey struct{}

type AuthRepository struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewAuthRepository(db *gorm.DB, jwtSecret string) *AuthRepository {
	return &AuthRepository{DB: db, JWTSecret: jwtSecret}
}

func (r *AuthRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.DB.WithContext(ctx)
}

func (r *AuthRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

/* ====================== USER ====================== */

func first(q *gorm.DB) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := q.Order("is_verified DESC, created_at DESC").Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return first(r.conn(ctx).Where("id = ?", id))
}

func (r *AuthRepository) FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return first(r.conn(ctx).Where("lower(email) = lower(?)", email))
}

func (r *AuthRepository) FindUserByPhone(ctx context.Context, phone string) (*userModel.UserModel, error) {
	return first(r.conn(ctx).Where("phone_number = ?", phone))
}

func (r *AuthRepository) FindVerifiedByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return first(r.conn(ctx).Where("lower(email) = lower(?) AND is_verified = ?", email, true))
}

func (r *AuthRepository) FindVerifiedByPhone(ctx context.Context, phone string) (*userModel.UserModel, error) {
	return first(r.conn(ctx).Where("phone_number = ? AND is_verified = ?", phone, true))
}

func (r *AuthRepository) FindUnverifiedByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return first(r.conn(ctx).Where("lower(email) = lower(?) AND is_verified = ?", email, false))
}

func (r *AuthRepository) FindUnverifiedByPhone(ctx context.Context, phone string) (*userModel.UserModel, error) {
	return first(r.conn(ctx).Where("phone_number = ? AND is_verified = ?", phone, false))
}

func (r *AuthRepository) DeleteUnverified(ctx context.Context, email, phone string, keep uuid.UUID) error {
	q := r.conn(ctx).Where("is_verified = ?", false)
	switch {
	case email != "" && phone != "":
		q = q.Where("(lower(email) = lower(?) OR phone_number = ?)", email, phone)
	case email != "":
		q = q.Where("lower(email) = lower(?)", email)
	case phone != "":
		q = q.Where("phone_number = ?", phone)
	default:
		return nil
	}
	if keep != uuid.Nil {
		q = q.Where("id <> ?", keep)
	}
	return q.Delete(&userModel.UserModel{}).Error
}

func (r *AuthRepository) OkoceIDExists(ctx context.Context, okoceID string) (bool, error) {
	var exists bool
	err := r.conn(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE okoce_id = ?)`, okoceID).
		Scan(&exists).Error
	return exists, err
}

func (r *AuthRepository) CreateUser(ctx context.Context, u *userModel.UserModel) error {
	return r.conn(ctx).Create(u).Error
}

func (r *AuthRepository) SaveUser(ctx context.Context, u *userModel.UserModel) error {
	return r.conn(ctx).Save(u).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

func (r *AuthRepository) BlacklistToken(ctx context.Context, raw string, expiresAt time.Time) error {
	return helperAuth.Blacklist(ctx, r.conn(ctx), raw, r.JWTSecret, expiresAt)
}

// CleanupExpiredBlacklist menghapus entri yang sudah lewat exp + grace.
func CleanupExpiredBlacklist(db *gorm.DB, before time.Time) (int64, error) {
	res := db.Where("expired_at < ?", before).Delete(&authModel.TokenBlacklistModel{})
	return res.RowsAffected, res.Error
}

var _ service.AuthRepository = (*AuthRepository)(nil)
