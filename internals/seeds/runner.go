package seeds

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"okoce_backend/internals/seeds/businesses"
	"okoce_backend/internals/seeds/events"
	"okoce_backend/internals/seeds/users"
)

// Urutan anak -> induk supaya aman terhadap foreign key.
var clearOrder = []string{
	"user_test_scores",
	"event_questions",
	"check_ins",
	"tickets",
	"business_marketplaces",
	"business_licenses",
	"business_finances",
	"business_npwps",
	"business_fundings",
	"events",
	"business_profiles",
	"token_blacklist",
	"users",
}

// ClearAll mengosongkan semua tabel data demo.
func ClearAll(db *gorm.DB) error {
	for _, table := range clearOrder {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("🧹 Data lama berhasil dibersihkan.")
	return nil
}

// RunAllSeeds: dir = folder internals/seeds (berisi file JSON).
func RunAllSeeds(db *gorm.DB, dir string, now time.Time) error {
	//* User
	byEmail := users.SeedUsersFromJSON(db, filepath.Join(dir, "users", "data_users.json"), now)

	//* UMKM
	businesses.SeedBusinessesFromJSON(db, filepath.Join(dir, "businesses", "data_businesses.json"), byEmail)

	//* Event, soal, tiket
	if err := events.SeedDemoEvents(db, now, byEmail); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}

	log.Println("----------------------------------------")
	log.Println("Database seeding selesai!")
	return nil
}
