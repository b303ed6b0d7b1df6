package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "okoce_backend/internals/databases"
	eventModel "okoce_backend/internals/features/events/events/model"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
	"okoce_backend/internals/features/tickets/tickets/service"
	userModel "okoce_backend/internals/features/users/user/model"
	"okoce_backend/internals/helpers/clock"
)

// newTestDB: butuh TEST_DATABASE_URL yang bisa dihubungi, selain itu tes di-skip.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL belum diset")
	}
	db, err := database.Open(dsn)
	if err != nil {
		t.Skipf("postgres tidak bisa dihubungi: %v", err)
	}
	if err := database.Ping(db); err != nil {
		t.Skipf("postgres tidak bisa dihubungi: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func truncateAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Exec(`TRUNCATE check_ins, tickets, user_test_scores, event_questions, events,
		business_marketplaces, business_licenses, business_finances, business_npwps, business_fundings,
		business_profiles, users RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func insertUsers(t *testing.T, db *gorm.DB, n int) []userModel.UserModel {
	t.Helper()
	out := make([]userModel.UserModel, 0, n)
	for i := 0; i < n; i++ {
		u := userModel.UserModel{
			OkoceID:     fmt.Sprintf("%08d", i+1),
			Name:        fmt.Sprintf("Peserta %d", i+1),
			PhoneNumber: fmt.Sprintf("08120000%04d", i+1),
			Email:       fmt.Sprintf("peserta%d@test.local", i+1),
			Province:    "DKI Jakarta",
			City:        "Jakarta Selatan",
			Password:    "x",
			Role:        userModel.RoleUser,
			IsVerified:  true,
		}
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("insert user: %v", err)
		}
		out = append(out, u)
	}
	return out
}

func insertEvent(t *testing.T, db *gorm.DB, now time.Time, slot int) eventModel.EventModel {
	t.Helper()
	ev := eventModel.EventModel{
		Title:               "Kelas Ekspor",
		JenisEvent:          eventModel.JenisPublic,
		TempatEvent:         eventModel.VenueOnline,
		SlotPeserta:         slot,
		TglBukaPendaftaran:  now.Add(-time.Hour),
		TglTutupPendaftaran: now.Add(time.Hour),
		TglMulaiEvent:       now.Add(-10 * time.Minute),
		TglSelesaiEvent:     now.Add(2 * time.Hour),
	}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("insert event: %v", err)
	}
	return ev
}

func TestTicketRepository_Postgres(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC().Truncate(time.Second)
	svc := service.NewTicketService(NewTicketRepository(db), clock.NewFixed(now))

	t.Run("concurrent purchases never exceed capacity", func(t *testing.T) {
		truncateAll(t, db)
		users := insertUsers(t, db, 12)
		ev := insertEvent(t, db, now, 5)

		var wg sync.WaitGroup
		errs := make([]error, len(users))
		for i, u := range users {
			wg.Add(1)
			go func(i int, id uuid.UUID) {
				defer wg.Done()
				_, errs[i] = svc.Purchase(context.Background(), id, ev.ID)
			}(i, u.ID)
		}
		wg.Wait()

		ok, full := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, service.ErrQuotaFull):
				full++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if ok != 5 || full != 7 {
			t.Fatalf("expected 5 tickets and 7 rejections, got %d / %d", ok, full)
		}

		var count int64
		db.Model(&ticketModel.TicketModel{}).Where("event_id = ?", ev.ID).Count(&count)
		var reloaded eventModel.EventModel
		db.First(&reloaded, ev.ID)
		if count != 5 || reloaded.RegisteredCount != 5 {
			t.Fatalf("tickets=%d registered_count=%d, want 5/5", count, reloaded.RegisteredCount)
		}
	})

	t.Run("duplicate purchase is rejected by the unique index", func(t *testing.T) {
		truncateAll(t, db)
		users := insertUsers(t, db, 1)
		ev := insertEvent(t, db, now, 10)

		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Purchase(context.Background(), users[0].ID, ev.ID)
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
			} else if !errors.Is(err, service.ErrAlreadyRegistered) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if ok != 1 {
			t.Fatalf("expected exactly one ticket, got %d", ok)
		}
		var reloaded eventModel.EventModel
		db.First(&reloaded, ev.ID)
		if reloaded.RegisteredCount != 1 {
			t.Fatalf("registered_count rolled back incorrectly: %d", reloaded.RegisteredCount)
		}
	})

	t.Run("concurrent scans check in once", func(t *testing.T) {
		truncateAll(t, db)
		users := insertUsers(t, db, 1)
		ev := insertEvent(t, db, now, 10)
		code, err := svc.Purchase(context.Background(), users[0].ID, ev.ID)
		if err != nil {
			t.Fatalf("purchase: %v", err)
		}

		staff := uuid.New()
		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.CheckIn(context.Background(), service.CheckInInput{
					CallerID:   staff,
					CallerRole: userModel.RolePanitia,
					Code:       code,
				})
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			var used *service.AlreadyCheckedInError
			switch {
			case err == nil:
				ok++
			case errors.As(err, &used):
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if ok != 1 {
			t.Fatalf("expected one successful scan, got %d", ok)
		}
		var n int64
		db.Model(&ticketModel.CheckInModel{}).Count(&n)
		if n != 1 {
			t.Fatalf("expected one check_ins row, got %d", n)
		}
	})
}
