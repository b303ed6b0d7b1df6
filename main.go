package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/configs"
	database "okoce_backend/internals/databases"
	scheduler "okoce_backend/internals/features/users/auth/scheduler"
	middlewares "okoce_backend/internals/middlewares"
	routes "okoce_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	server := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               8 * 1024 * 1024, // upload gambar event
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
	})

	middlewares.SetupMiddlewares(server, cfg)

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	database.TunePool(db)
	if configs.GetEnv("AUTO_MIGRATE", "false") == "true" {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("❌ migrasi gagal: %v", err)
		}
	}
	database.WarmUpQueries(db)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Printf("[WARN] gagal membuat folder upload %s: %v", cfg.UploadDir, err)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	appCtx := app.New(rootCtx, cfg, db)

	// ⏱ scheduler setelah DB siap
	cleanup := scheduler.StartBlacklistCleanupScheduler(db, cfg.BlacklistTTLDay)

	// ✅ Routes
	routes.SetupRoutes(server, appCtx)

	// 🔒 Keep-Alive & timeout koneksi server
	server.Server().ReadTimeout = 15 * time.Second
	server.Server().WriteTimeout = 30 * time.Second
	server.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := server.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutdown...")

	<-cleanup.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.ShutdownWithContext(ctx)

	database.Close(db)
}
