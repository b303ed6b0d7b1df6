package database

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"okoce_backend/internals/configs"
	assessmentModel "okoce_backend/internals/features/assessments/model"
	eventModel "okoce_backend/internals/features/events/events/model"
	questionModel "okoce_backend/internals/features/events/questions/model"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
	businessModel "okoce_backend/internals/features/umkm/businesses/model"
	authModel "okoce_backend/internals/features/users/auth/model"
	userModel "okoce_backend/internals/features/users/user/model"
)

// DSN dari config. statement_timeout selaras dengan timeout request di main.go.
func DSN(cfg *configs.Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=okoce&options=-c%%20statement_timeout%%3D5000",
		url.QueryEscape(cfg.DBUser),
		url.QueryEscape(cfg.DBPassword),
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBSSLMode,
	)
}

func ConnectDB(cfg *configs.Config) (*gorm.DB, error) {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	db, err := Open(DSN(cfg))
	if err != nil {
		return nil, err
	}
	log.Println("✅ DB connected.")
	return db, nil
}

// Open dipakai juga oleh tes integrasi (TEST_DATABASE_URL).
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:  configs.NewGormLogger(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(db); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

/* =========================
   Schema
   ========================= */

func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&eventModel.EventModel{},
		&questionModel.EventQuestionModel{},
		&ticketModel.TicketModel{},
		&ticketModel.CheckInModel{},
		&assessmentModel.UserTestScoreModel{},
		&businessModel.BusinessProfileModel{},
		&businessModel.BusinessMarketplaceModel{},
		&businessModel.BusinessLicenseModel{},
		&businessModel.BusinessFinanceModel{},
		&businessModel.BusinessNPWPModel{},
		&businessModel.BusinessFundingModel{},
	}
}

// Constraint yang tidak bisa diekspresikan lewat tag gorm.
var extraDDL = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email_verified ON users (lower(email)) WHERE is_verified`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_phone_verified ON users (phone_number) WHERE is_verified`,
	`ALTER TABLE events DROP CONSTRAINT IF EXISTS ck_events_capacity`,
	`ALTER TABLE events ADD CONSTRAINT ck_events_capacity CHECK (registered_count >= 0 AND registered_count <= slot_peserta)`,
	`ALTER TABLE tickets DROP CONSTRAINT IF EXISTS fk_tickets_event`,
	`ALTER TABLE tickets ADD CONSTRAINT fk_tickets_event FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE`,
	`ALTER TABLE tickets DROP CONSTRAINT IF EXISTS fk_tickets_user`,
	`ALTER TABLE tickets ADD CONSTRAINT fk_tickets_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE`,
	`ALTER TABLE check_ins DROP CONSTRAINT IF EXISTS fk_check_ins_ticket`,
	`ALTER TABLE check_ins ADD CONSTRAINT fk_check_ins_ticket FOREIGN KEY (ticket_id) REFERENCES tickets(id) ON DELETE CASCADE`,
	`ALTER TABLE event_questions DROP CONSTRAINT IF EXISTS fk_event_questions_event`,
	`ALTER TABLE event_questions ADD CONSTRAINT fk_event_questions_event FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE`,
	`ALTER TABLE user_test_scores DROP CONSTRAINT IF EXISTS fk_user_test_scores_event`,
	`ALTER TABLE user_test_scores ADD CONSTRAINT fk_user_test_scores_event FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE`,
	`ALTER TABLE user_test_scores DROP CONSTRAINT IF EXISTS fk_user_test_scores_user`,
	`ALTER TABLE user_test_scores ADD CONSTRAINT fk_user_test_scores_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE`,
	`ALTER TABLE business_profiles DROP CONSTRAINT IF EXISTS fk_business_profiles_user`,
	`ALTER TABLE business_profiles ADD CONSTRAINT fk_business_profiles_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE`,
}

// Migrate membuat/menyesuaikan skema. Dipanggil dari cmd/seed (-migrate) dan tes integrasi.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	for _, stmt := range extraDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ddl %q: %w", stmt, err)
		}
	}
	log.Println("✅ Skema database siap.")
	return nil
}

// Reset menghapus semua tabel lalu migrasi ulang (init-db).
func Reset(db *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return Migrate(db)
}
