package app

import (
	"context"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"okoce_backend/internals/configs"
	notifService "okoce_backend/internals/features/notifications/service"
	"okoce_backend/internals/helpers/clock"
	"okoce_backend/internals/helpers/mailer"
	"okoce_backend/internals/helpers/upload"
)

// Context dibangun sekali di main lalu diteruskan ke semua route & controller.
// Tidak ada singleton global; tes cukup membangun Context dengan dependency palsu.
type Context struct {
	Config   *configs.Config
	DB       *gorm.DB
	Mailer   mailer.Mailer
	Push     notifService.Sender
	Clock    clock.Clock
	Images   *upload.ImageStore
	Validate *validator.Validate
}

func New(ctx context.Context, cfg *configs.Config, db *gorm.DB) *Context {
	var m mailer.Mailer = mailer.LogMailer{}
	if cfg.SMTPUser != "" {
		m = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	}

	return &Context{
		Config:   cfg,
		DB:       db,
		Mailer:   m,
		Push:     notifService.NewSender(ctx, cfg.FirebaseCredentials),
		Clock:    clock.NewSystem(),
		Images:   upload.NewImageStore(cfg.UploadDir, cfg.UploadMaxWidth),
		Validate: validator.New(),
	}
}
