package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	JenisPublic  = "Public"
	JenisPrivate = "Private"

	VenueOnline = "Online"
)

// EventModel merepresentasikan tabel events. Semua waktu disimpan UTC (timestamptz).
type EventModel struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	SifatPelatihan         string    `gorm:"size:50" json:"sifat_pelatihan"`
	Title                  string    `gorm:"size:200;not null" json:"title"`
	JenisEvent             string    `gorm:"size:50;not null;default:'Public'" json:"jenis_event"`
	TempatEvent            string    `gorm:"size:200;not null" json:"tempat_event"`
	PicEvent               string    `gorm:"size:100" json:"pic_event"`
	Narasumber             string    `gorm:"size:200" json:"narasumber"`
	SlotPeserta            int       `gorm:"not null" json:"slot_peserta"`
	RegisteredCount        int       `gorm:"not null;default:0" json:"registered_count"`
	Description            string    `gorm:"type:text" json:"description"`
	Price                  int       `gorm:"not null;default:0" json:"price"`
	ImageFilename          *string   `gorm:"size:200" json:"image_filename"`
	TglBukaPendaftaran     time.Time `gorm:"type:timestamptz;not null" json:"tgl_buka_pendaftaran"`
	TglTutupPendaftaran    time.Time `gorm:"type:timestamptz;not null" json:"tgl_tutup_pendaftaran"`
	TglMulaiEvent          time.Time `gorm:"type:timestamptz;not null;index" json:"tgl_mulai_event"`
	TglSelesaiEvent        time.Time `gorm:"type:timestamptz;not null" json:"tgl_selesai_event"`
	IsUMKMDataRequired     bool      `gorm:"column:is_umkm_data_required;not null;default:false" json:"is_umkm_data_required"`
	IsArchived             bool      `gorm:"not null;default:false;index" json:"is_archived"`
	OnlineEventURL         *string   `gorm:"size:500" json:"online_event_url"`
	HasPrePostTest         bool      `gorm:"not null;default:false" json:"has_pre_post_test"`
	IsPostTestOpenManually bool      `gorm:"not null;default:false" json:"is_post_test_open_manually"`
	CreatedAt              time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

// IsOnline: hanya tempat_event persis "Online" yang dianggap event online.
func (e *EventModel) IsOnline() bool {
	return e.TempatEvent == VenueOnline
}

// RegistrationOpen: buka <= now <= tutup (inklusif).
func (e *EventModel) RegistrationOpen(now time.Time) bool {
	return !now.Before(e.TglBukaPendaftaran) && !now.After(e.TglTutupPendaftaran)
}

func (e *EventModel) Ended(now time.Time) bool {
	return !e.TglSelesaiEvent.After(now)
}

// IsJoinable dipakai listing aplikasi user: pendaftaran sedang buka, tidak diarsip, belum selesai.
func (e *EventModel) IsJoinable(now time.Time) bool {
	return e.RegistrationOpen(now) && !e.IsArchived && !e.Ended(now)
}

// IsPubliclyListable dipakai katalog publik; jendela pendaftaran diabaikan.
func (e *EventModel) IsPubliclyListable(now time.Time) bool {
	return e.JenisEvent == JenisPublic && !e.IsArchived && !e.Ended(now)
}

/* ===== Scopes (kondisi yang sama dengan predicate di atas) ===== */

func ScopeJoinable(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tgl_buka_pendaftaran <= ? AND tgl_tutup_pendaftaran >= ?", now, now).
			Where("is_archived = ?", false).
			Where("tgl_selesai_event > ?", now)
	}
}

func ScopePubliclyListable(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("jenis_event = ?", JenisPublic).
			Where("is_archived = ?", false).
			Where("tgl_selesai_event > ?", now)
	}
}
