package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	assessmentModel "okoce_backend/internals/features/assessments/model"
	"okoce_backend/internals/features/assessments/service"
	eventModel "okoce_backend/internals/features/events/events/model"
	questionModel "okoce_backend/internals/features/events/questions/model"
	questionRepo "okoce_backend/internals/features/events/questions/repository"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
	helper "okoce_backend/internals/helpers"
)

type txKey struct{}

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.DB.WithContext(ctx)
}

func (r *AssessmentRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (r *AssessmentRepository) GetEvent(ctx context.Context, eventID uint) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	err := r.conn(ctx).Take(&ev, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *AssessmentRepository) ListQuestions(ctx context.Context, eventID uint) ([]questionModel.EventQuestionModel, error) {
	return questionRepo.ListByEvent(ctx, r.conn(ctx), eventID)
}

func (r *AssessmentRepository) FindScore(ctx context.Context, userID uuid.UUID, eventID uint) (*assessmentModel.UserTestScoreModel, error) {
	var s assessmentModel.UserTestScoreModel
	err := r.conn(ctx).Where("user_id = ? AND event_id = ?", userID, eventID).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AssessmentRepository) CreateScore(ctx context.Context, s *assessmentModel.UserTestScoreModel) error {
	if err := r.conn(ctx).Create(s).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return service.ErrDuplicatePreTest
		}
		return err
	}
	return nil
}

func (r *AssessmentRepository) SetPostScore(ctx context.Context, scoreID uint, score int, at time.Time, answers datatypes.JSON) (bool, error) {
	res := r.conn(ctx).Model(&assessmentModel.UserTestScoreModel{}).
		Where("id = ? AND post_test_score IS NULL", scoreID).
		Updates(map[string]any{
			"post_test_score":        score,
			"post_test_submitted_at": at,
			"post_test_answers":      answers,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AssessmentRepository) HasTicket(ctx context.Context, userID uuid.UUID, eventID uint) (bool, error) {
	var n int64
	err := r.conn(ctx).Model(&ticketModel.TicketModel{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&n).Error
	return n > 0, err
}

func (r *AssessmentRepository) OpenPostTest(ctx context.Context, eventID uint) (bool, error) {
	res := r.conn(ctx).Model(&eventModel.EventModel{}).
		Where("id = ?", eventID).
		Update("is_post_test_open_manually", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

var _ service.AssessmentRepository = (*AssessmentRepository)(nil)
