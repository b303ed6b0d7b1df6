package service

import (
	"context"
	"fmt"
	"log"
	"time"

	eventModel "okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/helpers/clock"
	"okoce_backend/internals/helpers/dbtime"
)

type ReminderRepository interface {
	EventsStartingBetween(ctx context.Context, from, to time.Time) ([]eventModel.EventModel, error)
	HolderTokens(ctx context.Context, eventID uint) ([]string, error)
}

type ReminderReport struct {
	Events int
	Sent   int
	Failed int
}

// ReminderJob mengirim pengingat H-1 ke setiap pemegang tiket yang punya FCM token.
type ReminderJob struct {
	repo   ReminderRepository
	sender Sender
	clock  clock.Clock
}

func NewReminderJob(repo ReminderRepository, sender Sender, clk clock.Clock) *ReminderJob {
	return &ReminderJob{repo: repo, sender: sender, clock: clk}
}

// Window: hari kalender UTC berikutnya, [besok 00:00, lusa 00:00).
func (j *ReminderJob) Window() (time.Time, time.Time) {
	_, tomorrow := dbtime.UTCDayRange(j.clock.Now())
	return tomorrow, tomorrow.AddDate(0, 0, 1)
}

func ReminderPush(ev eventModel.EventModel) Push {
	return Push{
		Title: fmt.Sprintf("Pengingat Event: '%s' Besok!", ev.Title),
		Body: fmt.Sprintf("Jangan lupa, event Anda akan dimulai besok, %s pukul %s WIB.",
			dbtime.DayMonthWIB(ev.TglMulaiEvent), dbtime.ClockWIB(ev.TglMulaiEvent)),
		EventID: ev.ID,
	}
}

// Run: gagal kirim ke satu penerima hanya dicatat, tidak menghentikan batch.
func (j *ReminderJob) Run(ctx context.Context) (ReminderReport, error) {
	var rep ReminderReport
	from, to := j.Window()
	log.Printf("[REMINDER] Mencari event antara %s dan %s (UTC)", from.Format(time.RFC3339), to.Format(time.RFC3339))

	events, err := j.repo.EventsStartingBetween(ctx, from, to)
	if err != nil {
		return rep, fmt.Errorf("ambil event besok: %w", err)
	}
	rep.Events = len(events)
	if len(events) == 0 {
		log.Println("[REMINDER] Tidak ada event untuk besok.")
		return rep, nil
	}

	for _, ev := range events {
		tokens, err := j.repo.HolderTokens(ctx, ev.ID)
		if err != nil {
			log.Printf("[REMINDER][ERROR] event %d: %v", ev.ID, err)
			continue
		}
		p := ReminderPush(ev)
		for _, tok := range tokens {
			if err := j.sender.SendToToken(ctx, tok, p); err != nil {
				rep.Failed++
				log.Printf("[REMINDER][WARN] gagal kirim ke %s...: %v", shortToken(tok), err)
				continue
			}
			rep.Sent++
		}
	}
	log.Printf("[REMINDER] Selesai. event=%d terkirim=%d gagal=%d", rep.Events, rep.Sent, rep.Failed)
	return rep, nil
}
