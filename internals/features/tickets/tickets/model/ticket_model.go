package model

import (
	"time"

	"github.com/google/uuid"
)

// TicketModel: satu tiket per (user, event). ticket_code dipakai sebagai token check-in.
type TicketModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TicketCode  string    `gorm:"size:36;uniqueIndex;not null" json:"ticket_code"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_ticket_user_event" json:"user_id"`
	EventID     uint      `gorm:"not null;uniqueIndex:uq_ticket_user_event;index" json:"event_id"`
	IsCheckedIn bool      `gorm:"not null;default:false" json:"is_checked_in"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

// CheckInModel: catatan append-only, maksimal satu per tiket.
type CheckInModel struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TicketID    uint       `gorm:"not null;uniqueIndex" json:"ticket_id"`
	Timestamp   time.Time  `gorm:"type:timestamptz;not null" json:"timestamp"`
	CheckedInBy *uuid.UUID `gorm:"type:uuid" json:"checked_in_by"`
}

func (CheckInModel) TableName() string {
	return "check_ins"
}
