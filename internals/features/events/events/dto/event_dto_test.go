package dto

import (
	"strings"
	"testing"
	"time"

	"okoce_backend/internals/features/events/events/model"
)

func baseForm() map[string]string {
	return map[string]string{
		"nama_event":      "Pelatihan Digital Marketing",
		"jenis_event":     "Public",
		"tempat_event":    "Online",
		"slot_peserta":    "50",
		"pembayaran":      "0",
		"deskripsi_event": "Belajar jualan online",
		"tgl_buka":        "2025-05-01T08:00",
		"tgl_tutup":       "2025-05-10T17:00",
		"tgl_mulai":       "2025-05-12T09:00",
		"tgl_selesai":     "2025-05-12T12:00",
	}
}

func TestParseEventForm(t *testing.T) {
	t.Parallel()

	form := baseForm()
	form["has_pre_post_test"] = "on"
	form["q_1_text"] = "Soal"
	form["q_1_a"], form["q_1_b"], form["q_1_c"], form["q_1_d"] = "a", "b", "c", "d"
	form["q_1_answer"] = "C"

	f, err := ParseEventForm(func(k string) string { return form[k] })
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	// 09:00 WIB = 02:00 UTC
	if want := time.Date(2025, 5, 12, 2, 0, 0, 0, time.UTC); !f.TglMulai.Equal(want) {
		t.Fatalf("tgl_mulai: got %v, want %v", f.TglMulai, want)
	}
	if !f.HasPrePostTest || len(f.Questions) != 1 || f.OnlineEventURL != nil {
		t.Fatalf("unexpected form %+v", f)
	}

	var ev model.EventModel
	f.Apply(&ev)
	if ev.Title != "Pelatihan Digital Marketing" || ev.SlotPeserta != 50 || !ev.IsOnline() {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestEventFormValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(m map[string]string)
	}{
		{"slot zero", func(m map[string]string) { m["slot_peserta"] = "0" }},
		{"negative price", func(m map[string]string) { m["pembayaran"] = "-1" }},
		{"close before open", func(m map[string]string) { m["tgl_tutup"] = "2025-04-30T08:00" }},
		{"end before start", func(m map[string]string) { m["tgl_selesai"] = "2025-05-12T08:00" }},
		{"unknown jenis", func(m map[string]string) { m["jenis_event"] = "Semi" }},
	}
	for _, tc := range cases {
		form := baseForm()
		tc.mutate(form)
		f, err := ParseEventForm(func(k string) string { return form[k] })
		if err != nil {
			t.Fatalf("%s: parse: %v", tc.name, err)
		}
		if f.Validate() == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	form := baseForm()
	form["tgl_mulai"] = "12/05/2025"
	if _, err := ParseEventForm(func(k string) string { return form[k] }); err == nil {
		t.Fatalf("expected parse error for bad date")
	}
}

func TestPreviewAndImageURL(t *testing.T) {
	t.Parallel()

	short := "pendek"
	if Preview(short) != short {
		t.Fatalf("short description must be unchanged")
	}
	long := strings.Repeat("é", 250)
	if got := Preview(long); len([]rune(got)) != DescriptionPreviewLen+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected preview length %d", len([]rune(got)))
	}

	if ImageURL("http://x", nil) != nil {
		t.Fatalf("nil filename must give nil url")
	}
	name := "poster.png"
	if got := ImageURL("http://x/", &name); got == nil || *got != "http://x/uploads/poster.png" {
		t.Fatalf("unexpected url %v", got)
	}
}
