package dto

import (
	"time"

	eventModel "okoce_backend/internals/features/events/events/model"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
)

/* ===================== REQUEST ===================== */

type BuyTicketRequest struct {
	EventID uint `json:"event_id" validate:"required"`
}

type CheckInRequest struct {
	TicketCode string `json:"ticket_code"`
	EventID    *uint  `json:"event_id"`
}

/* ===================== QUERY ROW ===================== */

// TicketRow: tiket + event + ringkasan nilai tes (hasil satu query join).
type TicketRow struct {
	Ticket    ticketModel.TicketModel
	Event     eventModel.EventModel
	HasScore  bool
	PostScore *int
}

/* ===================== RESPONSE ===================== */

const (
	StatusReady    = "READY"
	StatusPreTest  = "PRE_TEST"
	StatusPostTest = "POST_TEST"
	StatusDone     = "DONE"
)

type TicketItem struct {
	TicketCode    string `json:"ticket_code"`
	IsCheckedIn   bool   `json:"is_checked_in"`
	EventTitle    string `json:"event_title"`
	EventDate     string `json:"event_date"`
	EventID       uint   `json:"event_id"`
	EventLocation string `json:"event_location"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label"`
}

type TicketStatus struct {
	IsCheckedIn bool   `json:"is_checked_in"`
	TicketCode  string `json:"ticket_code"`
}

// CheckInResult: data tampilan setelah check-in berhasil.
type CheckInResult struct {
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	EventTitle  string    `json:"event_title"`
	CheckedInAt time.Time `json:"-"`
}
