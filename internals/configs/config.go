package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// CONFIG
// =======================

// Config dibangun sekali di main lalu dibawa lewat app.Context.
type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	JWTSecret  string
	AccessTTL  time.Duration
	CookieName string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	FirebaseCredentials string
	NewEventsTopic      string

	UploadDir       string
	UploadMaxWidth  int
	APKPath         string
	CorsOrigins     []string
	ReminderCron    string
	BlacklistTTLDay int
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

// Load membaca semua ENV ke Config. Panggil setelah LoadEnv.
func Load() *Config {
	cfg := &Config{
		Port: GetEnv("PORT", "3000"),

		DBUser:     GetEnv("DB_USER"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		JWTSecret:  GetEnv("JWT_SECRET"),
		AccessTTL:  time.Duration(GetEnvInt("ACCESS_TOKEN_TTL_HOURS", 24*30)) * time.Hour,
		CookieName: GetEnv("ACCESS_COOKIE_NAME", "access_token"),

		SMTPHost:     GetEnv("MAIL_SERVER", "smtp.gmail.com"),
		SMTPPort:     GetEnv("MAIL_PORT", "587"),
		SMTPUser:     GetEnv("MAIL_USERNAME"),
		SMTPPassword: GetEnv("MAIL_PASSWORD"),
		MailFrom:     GetEnv("MAIL_DEFAULT_SENDER", GetEnv("MAIL_USERNAME")),

		FirebaseCredentials: GetEnv("FIREBASE_CREDENTIALS"),
		NewEventsTopic:      GetEnv("FCM_NEW_EVENTS_TOPIC", "new_events"),

		UploadDir:       GetEnv("UPLOAD_DIR", "uploads"),
		UploadMaxWidth:  GetEnvInt("UPLOAD_MAX_WIDTH", 1600),
		APKPath:         GetEnv("APK_PATH", "static/apk/OK OCE.apk"),
		ReminderCron:    GetEnv("REMINDER_CRON", "0 0 * * *"),
		BlacklistTTLDay: GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7),
	}

	for _, o := range strings.Split(GetEnv("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CorsOrigins = append(cfg.CorsOrigins, o)
		}
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	if cfg.SMTPUser == "" {
		log.Println("⚠️ MAIL_USERNAME kosong, email OTP hanya dicatat di log")
	}
	if cfg.FirebaseCredentials == "" {
		log.Println("⚠️ FIREBASE_CREDENTIALS kosong, push notification hanya dicatat di log")
	}
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if strings.EqualFold(os.Getenv("DB_LOG_QUERIES"), "true") {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
