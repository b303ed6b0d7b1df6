// Batch pengingat H-1. Tanpa flag: sekali jalan lalu keluar (dipanggil cron sistem).
// Dengan -cron: proses tetap hidup dan menjalankan batch sesuai REMINDER_CRON.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"okoce_backend/internals/configs"
	database "okoce_backend/internals/databases"
	notifRepo "okoce_backend/internals/features/notifications/repository"
	notifService "okoce_backend/internals/features/notifications/service"
	"okoce_backend/internals/helpers/clock"
)

func main() {
	useCron := flag.Bool("cron", false, "jalankan terus sesuai REMINDER_CRON")
	flag.Parse()

	configs.LoadEnv()
	cfg := configs.Load()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := notifService.NewReminderJob(
		notifRepo.NewReminderRepository(db),
		notifService.NewSender(ctx, cfg.FirebaseCredentials),
		clock.NewSystem(),
	)

	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		defer cancel()
		if _, err := job.Run(runCtx); err != nil {
			log.Printf("[REMINDER][ERROR] %v", err)
		}
	}

	if !*useCron {
		run()
		return
	}

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(cfg.ReminderCron, run); err != nil {
		log.Fatalf("❌ REMINDER_CRON tidak valid (%q): %v", cfg.ReminderCron, err)
	}
	c.Start()
	log.Printf("⏰ Reminder terjadwal: %s (UTC)", cfg.ReminderCron)

	<-ctx.Done()
	<-c.Stop().Done()
	log.Println("🛑 Reminder berhenti.")
}
