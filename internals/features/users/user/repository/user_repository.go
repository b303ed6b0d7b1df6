package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"okoce_backend/internals/features/users/user/model"
	"okoce_backend/internals/features/users/user/service"
	helper "okoce_backend/internals/helpers"
)

type txKey struct{}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.DB.WithContext(ctx)
}

func (r *UserRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	err := r.conn(ctx).Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *model.UserModel) error {
	err := r.conn(ctx).Model(&model.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":         u.Name,
			"phone_number": u.PhoneNumber,
			"email":        u.Email,
			"province":     u.Province,
			"city":         u.City,
			"institution":  u.Institution,
			"has_business": u.HasBusiness,
		}).Error
	if helper.IsUniqueViolation(err) {
		return service.ErrProfileConflict
	}
	return err
}

func (r *UserRepository) ClearFCMToken(ctx context.Context, token string, except uuid.UUID) error {
	return r.conn(ctx).Model(&model.UserModel{}).
		Where("fcm_token = ? AND id <> ?", token, except).
		Update("fcm_token", nil).Error
}

func (r *UserRepository) SetFCMToken(ctx context.Context, id uuid.UUID, token string) error {
	res := r.conn(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update("fcm_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrUserNotFound
	}
	return nil
}

var _ service.UserRepository = (*UserRepository)(nil)
