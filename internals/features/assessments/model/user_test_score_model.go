package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserTestScoreModel: maksimal satu baris per (user, event).
type UserTestScoreModel struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_score_user_event" json:"user_id"`
	EventID             uint           `gorm:"not null;uniqueIndex:uq_score_user_event;index" json:"event_id"`
	PreTestScore        *int           `json:"pre_test_score"`
	PreTestSubmittedAt  *time.Time     `gorm:"type:timestamptz" json:"pre_test_submitted_at"`
	PreTestAnswers      datatypes.JSON `gorm:"type:jsonb" json:"-"`
	PostTestScore       *int           `json:"post_test_score"`
	PostTestSubmittedAt *time.Time     `gorm:"type:timestamptz" json:"post_test_submitted_at"`
	PostTestAnswers     datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

func (UserTestScoreModel) TableName() string {
	return "user_test_scores"
}
