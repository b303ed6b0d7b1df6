package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"okoce_backend/internals/features/umkm/businesses/model"
	"okoce_backend/internals/features/umkm/businesses/service"
	userModel "okoce_backend/internals/features/users/user/model"
)

type txKey struct{}

type BusinessRepository struct {
	DB *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{DB: db}
}

func (r *BusinessRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.DB.WithContext(ctx)
}

func (r *BusinessRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (r *BusinessRepository) HasBusinessFlag(ctx context.Context, userID uuid.UUID) (bool, bool, error) {
	var u userModel.UserModel
	err := r.conn(ctx).Select("id", "has_business").Where("id = ?", userID).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return u.HasBusiness, true, nil
}

func (r *BusinessRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.BusinessProfileModel, error) {
	var rows []model.BusinessProfileModel
	err := r.conn(ctx).
		Select("id", "business_name", "business_type").
		Where("user_id = ?", userID).
		Order("business_name ASC").
		Find(&rows).Error
	return rows, err
}

// PreloadSubRecords dipakai juga oleh modul laporan.
func PreloadSubRecords(db *gorm.DB) *gorm.DB {
	return db.Preload("Marketplace").
		Preload("License").
		Preload("Finance").
		Preload("NPWP").
		Preload("Funding")
}

func (r *BusinessRepository) FindOwned(ctx context.Context, id uint, userID uuid.UUID) (*model.BusinessProfileModel, error) {
	var b model.BusinessProfileModel
	err := PreloadSubRecords(r.conn(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepository) CreateProfile(ctx context.Context, b *model.BusinessProfileModel) error {
	return r.conn(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BusinessRepository) SaveProfile(ctx context.Context, b *model.BusinessProfileModel) error {
	return r.conn(ctx).Omit(clause.Associations).Save(b).Error
}

func upsertByBusiness(db *gorm.DB, rec any) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

func (r *BusinessRepository) UpsertSubRecords(ctx context.Context, subs service.SubRecords) error {
	db := r.conn(ctx)
	recs := []any{}
	if subs.Marketplace != nil {
		recs = append(recs, subs.Marketplace)
	}
	if subs.License != nil {
		recs = append(recs, subs.License)
	}
	if subs.Finance != nil {
		recs = append(recs, subs.Finance)
	}
	if subs.NPWP != nil {
		recs = append(recs, subs.NPWP)
	}
	if subs.Funding != nil {
		recs = append(recs, subs.Funding)
	}
	for _, rec := range recs {
		if err := upsertByBusiness(db, rec); err != nil {
			return err
		}
	}
	return nil
}

// DeleteOwned ikut menghapus kelima sub-record.
func (r *BusinessRepository) DeleteOwned(ctx context.Context, id uint, userID uuid.UUID) (bool, error) {
	var deleted bool
	err := r.WithTx(ctx, func(txCtx context.Context) error {
		b, err := r.FindOwned(txCtx, id, userID)
		if err != nil || b == nil {
			return err
		}
		if err := r.conn(txCtx).Select(clause.Associations).Delete(b).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

var _ service.BusinessRepository = (*BusinessRepository)(nil)
