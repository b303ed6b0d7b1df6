package dto

import (
	"time"

	"github.com/google/uuid"

	businessDTO "okoce_backend/internals/features/umkm/businesses/dto"
	businessModel "okoce_backend/internals/features/umkm/businesses/model"
)

const (
	SortDate       = "date"
	SortRegistered = "registered"
	SortCheckedIn  = "checked_in"
	SortRate       = "rate"
)

// EventReportRow: satu baris laporan bulanan (hasil agregasi tickets per event).
type EventReportRow struct {
	EventID       uint      `json:"event_id"`
	Title         string    `json:"title"`
	TglMulaiEvent time.Time `json:"tgl_mulai_event"`
	TempatEvent   string    `json:"tempat_event"`
	SlotPeserta   int       `json:"slot_peserta"`
	IsArchived    bool      `json:"is_archived"`
	Registered    int64     `json:"registered"`
	CheckedIn     int64     `json:"checked_in"`
	Rate          float64   `json:"rate"`
}

type Chart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type MonthOption struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

type MonthlyReport struct {
	Year   int              `json:"year"`
	Month  int              `json:"month"`
	SortBy string           `json:"sort_by"`
	Order  string           `json:"order"`
	Rows   []EventReportRow `json:"events"`
	Chart  Chart            `json:"chart"`
	Months []MonthOption    `json:"months"`
	Years  []int            `json:"years"`
}

// ParticipantRecord: bahan ekspor CSV peserta satu event.
type ParticipantRecord struct {
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
	Business    *businessModel.BusinessProfileModel
}

type TestScores struct {
	PreTest  *int `json:"pre_test"`
	PostTest *int `json:"post_test"`
}

// UserDetail: detail peserta untuk admin (profil + UMKM pertama + nilai tes event).
type UserDetail struct {
	Name            string                      `json:"name"`
	PhoneNumber     string                      `json:"phone_number"`
	Email           string                      `json:"email"`
	Province        string                      `json:"province"`
	City            string                      `json:"city"`
	Institution     *string                     `json:"institution"`
	OkoceID         string                      `json:"okoce_id"`
	HasBusinessFlag bool                        `json:"has_business_flag"`
	BusinessProfile *businessDTO.BusinessDetail `json:"business_profile"`
	TestScores      *TestScores                 `json:"test_scores"`
}
