package model

import "time"

const MaxQuestions = 5

// EventQuestionModel: soal pilihan ganda nomor 1..5 per event.
type EventQuestionModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EventID        uint      `gorm:"not null;uniqueIndex:uq_event_question_number" json:"event_id"`
	QuestionNumber int       `gorm:"not null;uniqueIndex:uq_event_question_number" json:"question_number"`
	QuestionText   string    `gorm:"type:text;not null" json:"question_text"`
	OptionA        string    `gorm:"type:text;not null" json:"option_a"`
	OptionB        string    `gorm:"type:text;not null" json:"option_b"`
	OptionC        string    `gorm:"type:text;not null" json:"option_c"`
	OptionD        string    `gorm:"type:text;not null" json:"option_d"`
	CorrectAnswer  string    `gorm:"size:1;not null" json:"-"`
	CreatedAt      time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (EventQuestionModel) TableName() string {
	return "event_questions"
}
