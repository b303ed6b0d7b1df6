package model

import (
	"testing"
	"time"
)

func baseEvent(now time.Time) EventModel {
	return EventModel{
		Title:               "Pelatihan UMKM",
		JenisEvent:          JenisPublic,
		TempatEvent:         "Gedung Serbaguna",
		SlotPeserta:         10,
		TglBukaPendaftaran:  now.Add(-24 * time.Hour),
		TglTutupPendaftaran: now.Add(24 * time.Hour),
		TglMulaiEvent:       now.Add(48 * time.Hour),
		TglSelesaiEvent:     now.Add(52 * time.Hour),
	}
}

func TestVisibilityPredicates(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 4, 1, 5, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		mutate     func(e *EventModel)
		joinable   bool
		publicList bool
	}{
		{"open public event", func(e *EventModel) {}, true, true},
		{"registration not yet open", func(e *EventModel) {
			e.TglBukaPendaftaran = now.Add(time.Hour)
		}, false, true},
		{"registration closed", func(e *EventModel) {
			e.TglTutupPendaftaran = now.Add(-time.Hour)
		}, false, true},
		{"archived", func(e *EventModel) { e.IsArchived = true }, false, false},
		{"private event", func(e *EventModel) { e.JenisEvent = JenisPrivate }, true, false},
		{"already ended", func(e *EventModel) {
			e.TglSelesaiEvent = now
		}, false, false},
		{"window bounds are inclusive", func(e *EventModel) {
			e.TglBukaPendaftaran = now
			e.TglTutupPendaftaran = now
		}, true, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e := baseEvent(now)
			tc.mutate(&e)
			if got := e.IsJoinable(now); got != tc.joinable {
				t.Fatalf("IsJoinable = %v, want %v", got, tc.joinable)
			}
			if got := e.IsPubliclyListable(now); got != tc.publicList {
				t.Fatalf("IsPubliclyListable = %v, want %v", got, tc.publicList)
			}
		})
	}
}

func TestIsOnline(t *testing.T) {
	cases := map[string]bool{
		"Online":   true,
		" online ": false,
		"ONLINE":   false,
		"Online ":  false,
		"Jakarta":  false,
	}
	for venue, want := range cases {
		e := EventModel{TempatEvent: venue}
		if got := e.IsOnline(); got != want {
			t.Errorf("IsOnline(%q) = %v, want %v", venue, got, want)
		}
	}
}
