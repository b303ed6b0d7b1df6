package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"okoce_backend/internals/features/events/events/model"
	questionDTO "okoce_backend/internals/features/events/questions/dto"
	"okoce_backend/internals/helpers/dbtime"
)

const DescriptionPreviewLen = 200

/* ===================== USER / PUBLIC ===================== */

// PublicEventItem: katalog publik (tanpa login).
type PublicEventItem struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartTime        time.Time `json:"start_time"`
	Location         string    `json:"location"`
	Price            int       `json:"price"`
	ImageURL         *string   `json:"image_url"`
	RegistrationOpen bool      `json:"registration_open"`
}

// JoinableEventItem: listing aplikasi peserta.
type JoinableEventItem struct {
	ID                  uint      `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Date                string    `json:"date"`
	Location            string    `json:"location"`
	Price               int       `json:"price"`
	ImageFilename       *string   `json:"image_filename"`
	TglBukaPendaftaran  time.Time `json:"tgl_buka_pendaftaran"`
	TglTutupPendaftaran time.Time `json:"tgl_tutup_pendaftaran"`
	IsUMKMDataRequired  bool      `json:"is_umkm_data_required"`
}

// Preview memotong deskripsi di 200 karakter (rune) + "...".
func Preview(s string) string {
	r := []rune(s)
	if len(r) <= DescriptionPreviewLen {
		return s
	}
	return string(r[:DescriptionPreviewLen]) + "..."
}

// ImageURL: baseURL + "/uploads/" + nama file; nil kalau event tanpa gambar.
func ImageURL(baseURL string, filename *string) *string {
	if filename == nil || *filename == "" {
		return nil
	}
	u := strings.TrimRight(baseURL, "/") + "/uploads/" + *filename
	return &u
}

func ToPublicItem(e *model.EventModel, baseURL string, now time.Time) PublicEventItem {
	return PublicEventItem{
		ID:               e.ID,
		Title:            e.Title,
		Description:      Preview(e.Description),
		StartTime:        dbtime.ToWIB(e.TglMulaiEvent),
		Location:         e.TempatEvent,
		Price:            e.Price,
		ImageURL:         ImageURL(baseURL, e.ImageFilename),
		RegistrationOpen: e.RegistrationOpen(now),
	}
}

func ToJoinableItem(e *model.EventModel) JoinableEventItem {
	return JoinableEventItem{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		Date:                dbtime.DateLongWIB(e.TglMulaiEvent),
		Location:            e.TempatEvent,
		Price:               e.Price,
		ImageFilename:       e.ImageFilename,
		TglBukaPendaftaran:  e.TglBukaPendaftaran,
		TglTutupPendaftaran: e.TglTutupPendaftaran,
		IsUMKMDataRequired:  e.IsUMKMDataRequired,
	}
}

/* ===================== ADMIN FORM ===================== */

// EventForm: field form admin (multipart). Waktu diisi dalam WIB "YYYY-MM-DDTHH:MM".
type EventForm struct {
	SifatPelatihan     string
	Title              string
	JenisEvent         string
	TempatEvent        string
	PicEvent           string
	Narasumber         string
	SlotPeserta        int
	Description        string
	Price              int
	TglBuka            time.Time
	TglTutup           time.Time
	TglMulai           time.Time
	TglSelesai         time.Time
	IsUMKMDataRequired bool
	OnlineEventURL     *string
	HasPrePostTest     bool
	Questions          []questionDTO.QuestionInput

	NotifTitle string
	NotifBody  string
}

func checkbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// ParseEventForm membaca nama field form admin lama (nama_event, tgl_buka, pembayaran, ...).
func ParseEventForm(get questionDTO.FormValue) (EventForm, error) {
	f := EventForm{
		SifatPelatihan:     strings.TrimSpace(get("sifat_pelatihan")),
		Title:              strings.TrimSpace(get("nama_event")),
		JenisEvent:         strings.TrimSpace(get("jenis_event")),
		TempatEvent:        strings.TrimSpace(get("tempat_event")),
		PicEvent:           strings.TrimSpace(get("pic_event")),
		Narasumber:         strings.TrimSpace(get("narasumber")),
		Description:        get("deskripsi_event"),
		IsUMKMDataRequired: checkbox(get("is_umkm_data_required")),
		HasPrePostTest:     checkbox(get("has_pre_post_test")),
		NotifTitle:         strings.TrimSpace(get("notif_title")),
		NotifBody:          strings.TrimSpace(get("notif_body")),
	}
	if f.JenisEvent == "" {
		f.JenisEvent = model.JenisPublic
	}
	if u := strings.TrimSpace(get("online_event_url")); u != "" {
		f.OnlineEventURL = &u
	}

	var err error
	if f.SlotPeserta, err = strconv.Atoi(strings.TrimSpace(get("slot_peserta"))); err != nil {
		return f, fmt.Errorf("slot_peserta harus angka")
	}
	if p := strings.TrimSpace(get("pembayaran")); p != "" {
		if f.Price, err = strconv.Atoi(p); err != nil {
			return f, fmt.Errorf("pembayaran harus angka")
		}
	}

	times := []struct {
		key string
		dst *time.Time
	}{
		{"tgl_buka", &f.TglBuka},
		{"tgl_tutup", &f.TglTutup},
		{"tgl_mulai", &f.TglMulai},
		{"tgl_selesai", &f.TglSelesai},
	}
	for _, t := range times {
		v, err := dbtime.ParseWIBForm(get(t.key))
		if err != nil {
			return f, fmt.Errorf("%s: %w", t.key, err)
		}
		*t.dst = v
	}

	if f.HasPrePostTest {
		if f.Questions, err = questionDTO.ParseQuestionForm(get); err != nil {
			return f, err
		}
	}
	return f, nil
}

// Validate: buka <= tutup, mulai <= selesai, slot >= 1, harga >= 0.
func (f EventForm) Validate() error {
	switch {
	case f.Title == "":
		return fmt.Errorf("Nama event wajib diisi")
	case f.TempatEvent == "":
		return fmt.Errorf("Tempat event wajib diisi")
	case f.JenisEvent != model.JenisPublic && f.JenisEvent != model.JenisPrivate:
		return fmt.Errorf("Jenis event harus Public atau Private")
	case f.SlotPeserta < 1:
		return fmt.Errorf("Slot peserta minimal 1")
	case f.Price < 0:
		return fmt.Errorf("Harga tidak boleh negatif")
	case f.TglBuka.After(f.TglTutup):
		return fmt.Errorf("Tanggal buka pendaftaran harus sebelum tanggal tutup")
	case f.TglMulai.After(f.TglSelesai):
		return fmt.Errorf("Tanggal mulai event harus sebelum tanggal selesai")
	}
	return nil
}

// Apply menyalin form ke model (gambar diurus terpisah).
func (f EventForm) Apply(e *model.EventModel) {
	e.SifatPelatihan = f.SifatPelatihan
	e.Title = f.Title
	e.JenisEvent = f.JenisEvent
	e.TempatEvent = f.TempatEvent
	e.PicEvent = f.PicEvent
	e.Narasumber = f.Narasumber
	e.SlotPeserta = f.SlotPeserta
	e.Description = f.Description
	e.Price = f.Price
	e.TglBukaPendaftaran = f.TglBuka
	e.TglTutupPendaftaran = f.TglTutup
	e.TglMulaiEvent = f.TglMulai
	e.TglSelesaiEvent = f.TglSelesai
	e.IsUMKMDataRequired = f.IsUMKMDataRequired
	e.OnlineEventURL = f.OnlineEventURL
	e.HasPrePostTest = f.HasPrePostTest
}

/* ===================== ADMIN VIEWS ===================== */

type Participant struct {
	TicketCode  string     `json:"ticket_code"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	OkoceID     string     `json:"okoce_id"`
	IsCheckedIn bool       `json:"is_checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at"`
}

type EventDetail struct {
	Event           model.EventModel            `json:"event"`
	RegisteredCount int64                       `json:"registered_count"`
	CheckedInCount  int64                       `json:"checked_in_count"`
	Participants    []Participant               `json:"participants"`
	Questions       []questionDTO.QuestionInput `json:"questions"`
	// Nilai siap pakai untuk input datetime-local di form edit (WIB).
	FormTimes map[string]string `json:"form_times"`
}

func FormTimes(e *model.EventModel) map[string]string {
	return map[string]string{
		"tgl_buka":    dbtime.FormatWIBForm(e.TglBukaPendaftaran),
		"tgl_tutup":   dbtime.FormatWIBForm(e.TglTutupPendaftaran),
		"tgl_mulai":   dbtime.FormatWIBForm(e.TglMulaiEvent),
		"tgl_selesai": dbtime.FormatWIBForm(e.TglSelesaiEvent),
	}
}

// BulkArchiveRequest: JSON {"event_ids":[1,2]} atau form event_ids berulang.
type BulkArchiveRequest struct {
	EventIDs []uint `json:"event_ids" form:"event_ids"`
}
