package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"okoce_backend/internals/features/umkm/businesses/dto"
	"okoce_backend/internals/features/umkm/businesses/model"
)

var (
	ErrBusinessNotFound     = fiber.NewError(fiber.StatusNotFound, "Data UMKM tidak ditemukan")
	ErrHasBusinessRequired  = fiber.NewError(fiber.StatusForbidden, `Harap aktifkan status "Punya Usaha" di profil Anda dahulu.`)
	ErrBusinessNameRequired = fiber.NewError(fiber.StatusBadRequest, "Nama Usaha wajib diisi.")
	ErrUserNotFound         = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
)

// SubRecords: nil = tidak disentuh.
type SubRecords struct {
	Marketplace *model.BusinessMarketplaceModel
	License     *model.BusinessLicenseModel
	Finance     *model.BusinessFinanceModel
	NPWP        *model.BusinessNPWPModel
	Funding     *model.BusinessFundingModel
}

type BusinessRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// HasBusinessFlag: found=false kalau user tidak ada.
	HasBusinessFlag(ctx context.Context, userID uuid.UUID) (hasBusiness bool, found bool, err error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.BusinessProfileModel, error)
	// FindOwned memuat profil beserta sub-record; nil kalau bukan milik user.
	FindOwned(ctx context.Context, id uint, userID uuid.UUID) (*model.BusinessProfileModel, error)
	CreateProfile(ctx context.Context, b *model.BusinessProfileModel) error
	SaveProfile(ctx context.Context, b *model.BusinessProfileModel) error
	// UpsertSubRecords: ON CONFLICT (business_id) DO UPDATE per sub-record yang tidak nil.
	UpsertSubRecords(ctx context.Context, subs SubRecords) error
	DeleteOwned(ctx context.Context, id uint, userID uuid.UUID) (bool, error)
}

type BusinessService struct {
	repo BusinessRepository
}

func NewBusinessService(repo BusinessRepository) *BusinessService {
	return &BusinessService{repo: repo}
}

func (s *BusinessService) List(ctx context.Context, userID uuid.UUID) ([]dto.BusinessListItem, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BusinessListItem, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToListItem(&rows[i]))
	}
	return out, nil
}

func (s *BusinessService) Detail(ctx context.Context, userID uuid.UUID, id uint) (dto.BusinessDetail, error) {
	b, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		return dto.BusinessDetail{}, err
	}
	if b == nil {
		return dto.BusinessDetail{}, ErrBusinessNotFound
	}
	return dto.FromModel(b), nil
}

// Submit membuat atau memperbarui profil + sub-record dalam satu transaksi.
// created=true kalau profil baru.
func (s *BusinessService) Submit(ctx context.Context, userID uuid.UUID, req dto.SubmitRequest) (id uint, created bool, err error) {
	hasBusiness, found, err := s.repo.HasBusinessFlag(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, ErrUserNotFound
	}
	if !hasBusiness {
		return 0, false, ErrHasBusinessRequired
	}
	if strings.TrimSpace(req.BusinessName) == "" {
		return 0, false, ErrBusinessNameRequired
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var b *model.BusinessProfileModel
		if req.BusinessID != nil && *req.BusinessID > 0 {
			b, err = s.repo.FindOwned(txCtx, *req.BusinessID, userID)
			if err != nil {
				return err
			}
			if b == nil {
				return ErrBusinessNotFound
			}
			req.Apply(b)
			if err := s.repo.SaveProfile(txCtx, b); err != nil {
				return err
			}
		} else {
			b = &model.BusinessProfileModel{UserID: userID}
			req.Apply(b)
			if err := s.repo.CreateProfile(txCtx, b); err != nil {
				return err
			}
			created = true
		}
		id = b.ID

		return s.repo.UpsertSubRecords(txCtx, SubRecords{
			Marketplace: req.Marketplace(b.ID),
			License:     req.License(b.ID),
			Finance:     req.Finance(b.ID),
			NPWP:        req.NPWP(b.ID),
			Funding:     req.Funding(b.ID),
		})
	})
	if err != nil {
		return 0, false, err
	}
	return id, created, nil
}

func (s *BusinessService) Delete(ctx context.Context, userID uuid.UUID, id uint) error {
	ok, err := s.repo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBusinessNotFound
	}
	return nil
}
