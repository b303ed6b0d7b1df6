package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assessmentModel "okoce_backend/internals/features/assessments/model"
	eventModel "okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/features/reports/dto"
	"okoce_backend/internals/features/reports/service"
	businessModel "okoce_backend/internals/features/umkm/businesses/model"
	businessRepo "okoce_backend/internals/features/umkm/businesses/repository"
	userModel "okoce_backend/internals/features/users/user/model"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func takeOrNil[T any](err error, v *T) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *ReportRepository) EventStats(ctx context.Context, from, to time.Time) ([]dto.EventReportRow, error) {
	var rows []dto.EventReportRow
	err := r.DB.WithContext(ctx).
		Table("events e").
		Select(`e.id AS event_id, e.title, e.tgl_mulai_event, e.tempat_event, e.slot_peserta, e.is_archived,
			COUNT(t.id) AS registered,
			COUNT(t.id) FILTER (WHERE t.is_checked_in) AS checked_in`).
		Joins("LEFT JOIN tickets t ON t.event_id = e.id").
		Where("e.tgl_mulai_event >= ? AND e.tgl_mulai_event < ?", from, to).
		Group("e.id").
		Order("e.tgl_mulai_event ASC, e.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) GetEvent(ctx context.Context, id uint) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&ev).Error
	return takeOrNil(err, &ev)
}

type participantRow struct {
	UserID      uuid.UUID
	Name        string
	OkoceID     string
	PhoneNumber string
	Email       string
	Province    string
	City        string
	Institution *string
	IsCheckedIn bool
	CheckedInAt *time.Time
	PreScore    *int
	PostScore   *int
}

// ListParticipants: satu baris per tiket, dilengkapi check-in, nilai tes dan UMKM pertama peserta.
func (r *ReportRepository) ListParticipants(ctx context.Context, eventID uint) ([]dto.ParticipantRecord, error) {
	db := r.DB.WithContext(ctx)

	var rows []participantRow
	err := db.Table("tickets t").
		Select(`u.id AS user_id, u.name, u.okoce_id, u.phone_number, u.email, u.province, u.city, u.institution,
			t.is_checked_in, ci.timestamp AS checked_in_at,
			s.pre_test_score AS pre_score, s.post_test_score AS post_score`).
		Joins("JOIN users u ON u.id = t.user_id").
		Joins("LEFT JOIN check_ins ci ON ci.ticket_id = t.id").
		Joins("LEFT JOIN user_test_scores s ON s.user_id = t.user_id AND s.event_id = t.event_id").
		Where("t.event_id = ?", eventID).
		Order("t.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []dto.ParticipantRecord{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	var businesses []businessModel.BusinessProfileModel
	if err := businessRepo.PreloadSubRecords(db).
		Where("user_id IN ?", ids).
		Order("id ASC").
		Find(&businesses).Error; err != nil {
		return nil, err
	}
	first := make(map[uuid.UUID]*businessModel.BusinessProfileModel, len(businesses))
	for i := range businesses {
		if _, ok := first[businesses[i].UserID]; !ok {
			first[businesses[i].UserID] = &businesses[i]
		}
	}

	out := make([]dto.ParticipantRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ParticipantRecord{
			UserID:      row.UserID,
			Name:        row.Name,
			OkoceID:     row.OkoceID,
			PhoneNumber: row.PhoneNumber,
			Email:       row.Email,
			Province:    row.Province,
			City:        row.City,
			Institution: row.Institution,
			IsCheckedIn: row.IsCheckedIn,
			CheckedInAt: row.CheckedInAt,
			PreScore:    row.PreScore,
			PostScore:   row.PostScore,
			Business:    first[row.UserID],
		})
	}
	return out, nil
}

func (r *ReportRepository) FindUser(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	return takeOrNil(err, &u)
}

func (r *ReportRepository) FirstBusiness(ctx context.Context, userID uuid.UUID) (*businessModel.BusinessProfileModel, error) {
	var b businessModel.BusinessProfileModel
	err := businessRepo.PreloadSubRecords(r.DB.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id ASC").
		Take(&b).Error
	return takeOrNil(err, &b)
}

func (r *ReportRepository) FindScore(ctx context.Context, userID uuid.UUID, eventID uint) (*assessmentModel.UserTestScoreModel, error) {
	var s assessmentModel.UserTestScoreModel
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Take(&s).Error
	return takeOrNil(err, &s)
}

var _ service.ReportRepository = (*ReportRepository)(nil)
