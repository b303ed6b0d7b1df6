package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	eventModel "okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/helpers/clock"
)

type fakeReminderRepo struct {
	events  []eventModel.EventModel
	tokens  map[uint][]string
	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeReminderRepo) EventsStartingBetween(_ context.Context, from, to time.Time) ([]eventModel.EventModel, error) {
	f.gotFrom, f.gotTo = from, to
	var out []eventModel.EventModel
	for _, ev := range f.events {
		if !ev.IsArchived && !ev.TglMulaiEvent.Before(from) && ev.TglMulaiEvent.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) HolderTokens(_ context.Context, eventID uint) ([]string, error) {
	return f.tokens[eventID], nil
}

type sent struct {
	token string
	push  Push
}

type fakeSender struct {
	sent    []sent
	failFor string
}

func (f *fakeSender) SendToToken(_ context.Context, token string, p Push) error {
	if token == f.failFor {
		return errors.New("unregistered")
	}
	f.sent = append(f.sent, sent{token, p})
	return nil
}

func (f *fakeSender) SendToTopic(context.Context, string, Push) error { return nil }

func TestReminderJob_Run(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 6, 11, 2, 0, 0, 0, time.UTC) // 09:00 WIB

	repo := &fakeReminderRepo{
		events: []eventModel.EventModel{
			{ID: 1, Title: "Kelas Digital Marketing", TglMulaiEvent: tomorrow},
			{ID: 2, Title: "Arsip", TglMulaiEvent: tomorrow, IsArchived: true},
			{ID: 3, Title: "Lusa", TglMulaiEvent: tomorrow.Add(24 * time.Hour)},
			{ID: 4, Title: "Hari ini", TglMulaiEvent: now.Add(time.Hour)},
		},
		tokens: map[uint][]string{
			1: {"token-a", "token-broken", "token-b"},
			2: {"token-c"},
			3: {"token-d"},
		},
	}
	sender := &fakeSender{failFor: "token-broken"}
	job := NewReminderJob(repo, sender, clock.NewFixed(now))

	rep, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !repo.gotFrom.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)) || !repo.gotTo.Equal(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window %v - %v", repo.gotFrom, repo.gotTo)
	}
	if rep.Events != 1 || rep.Sent != 2 || rep.Failed != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if len(sender.sent) != 2 || sender.sent[0].token != "token-a" || sender.sent[1].token != "token-b" {
		t.Fatalf("unexpected recipients %+v", sender.sent)
	}
	p := sender.sent[0].push
	if p.EventID != 1 || !strings.Contains(p.Title, "Kelas Digital Marketing") {
		t.Fatalf("unexpected push %+v", p)
	}
	if !strings.Contains(p.Body, "11 Juni pukul 09:00 WIB") {
		t.Fatalf("expected WIB time in body, got %q", p.Body)
	}
}

func TestReminderJob_NoEvents(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	job := NewReminderJob(&fakeReminderRepo{}, sender, clock.NewFixed(time.Now()))
	rep, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Events != 0 || len(sender.sent) != 0 {
		t.Fatalf("expected nothing sent, got %+v", rep)
	}
}
