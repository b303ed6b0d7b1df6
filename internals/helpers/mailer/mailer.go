package mailer

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
)

// Mailer mengirim email teks biasa (OTP verifikasi & reset password).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body,
	)
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("[WARN] gagal kirim email ke %s: %v", to, err)
		return fmt.Errorf("send email: %w", err)
	}
	log.Printf("📧 Email %q terkirim ke %s", subject, to)
	return nil
}

// LogMailer dipakai saat SMTP belum dikonfigurasi (dev).
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("📧 [DEV] to=%s subject=%q body=%q", to, subject, strings.ReplaceAll(body, "\n", " "))
	return nil
}

/* ===== Template pesan ===== */

func VerificationMessage(otp string) (string, string) {
	return "Kode Verifikasi Akun OK OCE Anda",
		fmt.Sprintf("Terima kasih telah mendaftar.\n\nKode verifikasi Anda adalah: %s\n\nKode ini berlaku selama 10 menit.", otp)
}

func PasswordResetMessage(otp string) (string, string) {
	return "Reset Password Akun OK OCE",
		fmt.Sprintf("Kode reset password Anda adalah: %s\n\nKode ini berlaku selama 10 menit.", otp)
}
