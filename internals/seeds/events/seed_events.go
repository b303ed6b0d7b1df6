package events

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	eventModel "okoce_backend/internals/features/events/events/model"
	questionModel "okoce_backend/internals/features/events/questions/model"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
	userModel "okoce_backend/internals/features/users/user/model"
)

func strPtr(s string) *string { return &s }

// demoEvents: jadwal relatif terhadap now supaya data demo selalu "hidup".
func demoEvents(now time.Time) []eventModel.EventModel {
	day := 24 * time.Hour
	return []eventModel.EventModel{
		{
			SifatPelatihan: "Umum", Title: "[OFFLINE] Workshop Advanced Funding (Test & Wajib UMKM)",
			JenisEvent: eventModel.JenisPublic, TempatEvent: "Offline - OK OCE HQ",
			PicEvent: "Admin", Narasumber: "Felix", SlotPeserta: 10,
			Description:         "Event ini mewajibkan data UMKM dan memiliki Pre-Test & Post-Test.",
			TglBukaPendaftaran:  now.Add(-10 * day),
			TglTutupPendaftaran: now.Add(10 * day),
			TglMulaiEvent:       now.Add(15 * day),
			TglSelesaiEvent:     now.Add(15*day + 3*time.Hour),
			IsUMKMDataRequired:  true,
			HasPrePostTest:      true,
		},
		{
			SifatPelatihan: "Wajib", Title: "[ONLINE] Dasar Digital Marketing",
			JenisEvent: eventModel.JenisPrivate, TempatEvent: eventModel.VenueOnline,
			PicEvent: "Admin", Narasumber: "Bayu", SlotPeserta: 50,
			Description:         "Event online untuk semua anggota. Check-in otomatis.",
			TglBukaPendaftaran:  now.Add(-5 * day),
			TglTutupPendaftaran: now.Add(5 * day),
			TglMulaiEvent:       now.Add(7 * day),
			TglSelesaiEvent:     now.Add(7*day + 2*time.Hour),
			OnlineEventURL:      strPtr("https://zoom.us/j/1234567890"),
		},
		{
			SifatPelatihan: "Umum", Title: "[DEMO] Event Besok (Test Notif)",
			JenisEvent: eventModel.JenisPublic, TempatEvent: eventModel.VenueOnline,
			PicEvent: "Tester", Narasumber: "Citra", SlotPeserta: 5,
			Description:         "Event ini untuk demo notifikasi H-1.",
			TglBukaPendaftaran:  now.Add(-1 * day),
			TglTutupPendaftaran: now.Add(2 * day),
			TglMulaiEvent:       now.Add(day + 5*time.Minute),
			TglSelesaiEvent:     now.Add(27 * time.Hour),
			OnlineEventURL:      strPtr("https://meet.google.com/abc-defg-hij"),
		},
		{
			SifatPelatihan: "Umum", Title: "[SELESAI] Pameran Kuliner 2024",
			JenisEvent: eventModel.JenisPublic, TempatEvent: "Offline - Monas",
			PicEvent: "Admin", Narasumber: "Juri", SlotPeserta: 10,
			Description:         "Event ini sudah selesai.",
			TglBukaPendaftaran:  now.Add(-30 * day),
			TglTutupPendaftaran: now.Add(-20 * day),
			TglMulaiEvent:       now.Add(-10*day - 3*time.Hour),
			TglSelesaiEvent:     now.Add(-10 * day),
		},
		{
			SifatPelatihan: "Wajib", Title: "[ARSIP] Rapat Internal Q1",
			JenisEvent: eventModel.JenisPrivate, TempatEvent: "Offline",
			PicEvent: "Admin", Narasumber: "Internal", SlotPeserta: 10,
			Description:         "Event ini diarsipkan.",
			TglBukaPendaftaran:  now.Add(-5 * day),
			TglTutupPendaftaran: now.Add(5 * day),
			TglMulaiEvent:       now.Add(10 * day),
			TglSelesaiEvent:     now.Add(10*day + time.Hour),
			IsArchived:          true,
		},
	}
}

func demoQuestions(eventID uint) []questionModel.EventQuestionModel {
	q := func(n int, text, a, b, c, d, key string) questionModel.EventQuestionModel {
		return questionModel.EventQuestionModel{
			EventID: eventID, QuestionNumber: n, QuestionText: text,
			OptionA: a, OptionB: b, OptionC: c, OptionD: d, CorrectAnswer: key,
		}
	}
	return []questionModel.EventQuestionModel{
		q(1, "Apa syarat utama mengajukan KUR?", "Punya KTP", "Usaha berjalan min. 6 bulan", "Punya sertifikat rumah", "Punya NPWP", "B"),
		q(2, "Berapa bunga KUR Mikro saat ini?", "3%", "6%", "12%", "0%", "B"),
		q(3, "Laporan keuangan apa yang wajib ada?", "Hanya Laba Rugi", "Hanya Neraca", "Laba Rugi & Neraca", "Tidak Perlu", "C"),
		q(4, "Platform pencatatan keuangan OK OCE adalah?", "Excel", "OK OCE Keuangan", "Zahir / SI APIK", "Buku Tulis", "C"),
		q(5, "Siapa target utama pendanaan ini?", "UMKM", "Korporasi", "BUMN", "PNS", "A"),
	}
}

// demoTickets: (email pemilik, index event, sudah check-in).
var demoTickets = []struct {
	email     string
	event     int
	checkedIn bool
}{
	{"felix@admin.com", 0, false},
	{"bayu@user.com", 1, false},
	{"citra@umkm.com", 2, false},
	{"bayu@user.com", 3, true},
}

// SeedDemoEvents: event demo + soal + tiket + satu check-in, semua dalam satu transaksi.
func SeedDemoEvents(db *gorm.DB, now time.Time, users map[string]userModel.UserModel) error {
	now = now.UTC()
	return db.Transaction(func(tx *gorm.DB) error {
		evs := demoEvents(now)
		for i := range evs {
			if err := tx.Create(&evs[i]).Error; err != nil {
				return err
			}
			log.Printf("✅ Event '%s' dibuat", evs[i].Title)
		}

		qs := demoQuestions(evs[0].ID)
		if err := tx.Create(&qs).Error; err != nil {
			return err
		}

		for _, dt := range demoTickets {
			u, ok := users[dt.email]
			if !ok {
				log.Printf("⚠️ User '%s' tidak ada, tiket dilewati.", dt.email)
				continue
			}
			ev := evs[dt.event]
			t := ticketModel.TicketModel{
				TicketCode:  uuid.NewString(),
				UserID:      u.ID,
				EventID:     ev.ID,
				IsCheckedIn: dt.checkedIn,
			}
			if err := tx.Create(&t).Error; err != nil {
				return err
			}
			if err := tx.Model(&eventModel.EventModel{}).
				Where("id = ?", ev.ID).
				UpdateColumn("registered_count", gorm.Expr("registered_count + 1")).Error; err != nil {
				return err
			}
			if dt.checkedIn {
				if err := tx.Create(&ticketModel.CheckInModel{TicketID: t.ID, Timestamp: now}).Error; err != nil {
					return err
				}
			}
		}
		log.Println("✅ Event demo & Soal Test berhasil dibuat.")
		return nil
	})
}
