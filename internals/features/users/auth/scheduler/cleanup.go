package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "okoce_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler menghapus token_blacklist yang sudah lewat ttlDays
// setiap hari pukul 03:00. Panggil Stop() pada cron yang dikembalikan saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, ttlDays int) *cron.Cron {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc("0 3 * * *", func() {
		log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
		before := time.Now().UTC().Add(-time.Duration(ttlDays) * 24 * time.Hour)
		n, err := authRepo.CleanupExpiredBlacklist(db, before)
		if err != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
		} else {
			log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
		}
	})
	if err != nil {
		log.Printf("[CLEANUP ERROR] Jadwal cron tidak valid: %v", err)
		return c
	}
	c.Start()
	return c
}
