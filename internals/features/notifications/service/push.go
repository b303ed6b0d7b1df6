package service

import (
	"context"
	"fmt"
	"log"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Push: satu notifikasi yang terkait ke sebuah event.
type Push struct {
	Title   string
	Body    string
	EventID uint
}

func (p Push) data() map[string]string {
	return map[string]string{
		"event_id":     strconv.FormatUint(uint64(p.EventID), 10),
		"click_action": "FLUTTER_NOTIFICATION_CLICK",
	}
}

// Sender mengirim push notification ke satu device token atau ke topic.
type Sender interface {
	SendToToken(ctx context.Context, token string, p Push) error
	SendToTopic(ctx context.Context, topic string, p Push) error
}

/* ===== FCM ===== */

type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender membuat client FCM dari file service account.
func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return &FCMSender{client: client}, nil
}

func (s *FCMSender) SendToToken(ctx context.Context, token string, p Push) error {
	id, err := s.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{Title: p.Title, Body: p.Body},
		Token:        token,
		Data:         p.data(),
	})
	if err != nil {
		return err
	}
	log.Printf("[PUSH] terkirim ke token %s...: %s", shortToken(token), id)
	return nil
}

func (s *FCMSender) SendToTopic(ctx context.Context, topic string, p Push) error {
	id, err := s.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{Title: p.Title, Body: p.Body},
		Topic:        topic,
		Data:         p.data(),
	})
	if err != nil {
		return err
	}
	log.Printf("[PUSH] broadcast ke topic %s: %s", topic, id)
	return nil
}

/* ===== Log-only (dev / tanpa kredensial) ===== */

type LogSender struct{}

func (LogSender) SendToToken(_ context.Context, token string, p Push) error {
	log.Printf("[PUSH][DEV] token=%s... title=%q body=%q event=%d", shortToken(token), p.Title, p.Body, p.EventID)
	return nil
}

func (LogSender) SendToTopic(_ context.Context, topic string, p Push) error {
	log.Printf("[PUSH][DEV] topic=%s title=%q body=%q event=%d", topic, p.Title, p.Body, p.EventID)
	return nil
}

// NewSender: FCM kalau kredensial ada, selain itu LogSender.
func NewSender(ctx context.Context, credentialsFile string) Sender {
	if credentialsFile == "" {
		return LogSender{}
	}
	s, err := NewFCMSender(ctx, credentialsFile)
	if err != nil {
		log.Printf("[WARN] FCM tidak aktif, fallback ke log: %v", err)
		return LogSender{}
	}
	log.Println("✅ Firebase Cloud Messaging siap.")
	return s
}

func shortToken(t string) string {
	if len(t) > 10 {
		return t[:10]
	}
	return t
}
