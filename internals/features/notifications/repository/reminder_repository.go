package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	eventModel "okoce_backend/internals/features/events/events/model"
)

type ReminderRepository struct {
	DB *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{DB: db}
}

func (r *ReminderRepository) EventsStartingBetween(ctx context.Context, from, to time.Time) ([]eventModel.EventModel, error) {
	var out []eventModel.EventModel
	err := r.DB.WithContext(ctx).
		Where("tgl_mulai_event >= ? AND tgl_mulai_event < ?", from, to).
		Where("is_archived = ?", false).
		Order("tgl_mulai_event ASC").
		Find(&out).Error
	return out, err
}

func (r *ReminderRepository) HolderTokens(ctx context.Context, eventID uint) ([]string, error) {
	var tokens []string
	err := r.DB.WithContext(ctx).
		Table("tickets AS t").
		Joins("JOIN users u ON u.id = t.user_id").
		Where("t.event_id = ?", eventID).
		Where("u.fcm_token IS NOT NULL AND u.fcm_token <> ''").
		Pluck("u.fcm_token", &tokens).Error
	return tokens, err
}
