// Seeder data demo. -reset: drop & buat ulang skema, -migrate: AutoMigrate saja.
package main

import (
	"flag"
	"log"
	"time"

	"okoce_backend/internals/configs"
	database "okoce_backend/internals/databases"
	"okoce_backend/internals/seeds"
)

func main() {
	reset := flag.Bool("reset", false, "drop semua tabel lalu migrate ulang")
	migrate := flag.Bool("migrate", false, "jalankan AutoMigrate sebelum seed")
	dir := flag.String("dir", "internals/seeds", "folder file JSON seed")
	flag.Parse()

	configs.LoadEnv()
	cfg := configs.Load()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	switch {
	case *reset:
		if err := database.Reset(db); err != nil {
			log.Fatalf("❌ Reset gagal: %v", err)
		}
		log.Println("🗑️ Skema dibuat ulang.")
	case *migrate:
		if err := database.Migrate(db); err != nil {
			log.Fatalf("❌ Migrate gagal: %v", err)
		}
	}

	if !*reset {
		if err := seeds.ClearAll(db); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	if err := seeds.RunAllSeeds(db, *dir, time.Now()); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
