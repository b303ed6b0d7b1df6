package dbtime

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// Semua waktu di DB disimpan UTC. WIB hanya dipakai saat tampil & saat membaca input form admin.

const (
	FormLayout  = "2006-01-02T15:04" // <input type="datetime-local">
	ClockLayout = "15:04"
)

var wib = loadWIB()

func loadWIB() *time.Location {
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.FixedZone("WIB", 7*60*60)
}

func WIB() *time.Location { return wib }

// ToWIB mengonversi waktu (biasanya dari DB = UTC) ke WIB. Zero time dikembalikan apa adanya.
func ToWIB(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(wib)
}

// ParseWIBForm membaca "2006-01-02T15:04" sebagai jam dinding WIB lalu mengembalikan UTC.
func ParseWIBForm(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("waktu kosong")
	}
	t, err := time.ParseInLocation(FormLayout, s, wib)
	if err != nil {
		return time.Time{}, fmt.Errorf("format waktu %q tidak valid (YYYY-MM-DDTHH:MM)", s)
	}
	return t.UTC(), nil
}

// FormatWIBForm kebalikan ParseWIBForm, untuk mengisi ulang form edit.
func FormatWIBForm(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return ToWIB(t).Format(FormLayout)
}

// ClockWIB: "HH:MM" dalam WIB.
func ClockWIB(t time.Time) string {
	return ToWIB(t).Format(ClockLayout)
}

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return bulan[m-1]
}

// DateLongWIB: "02 Januari 2006".
func DateLongWIB(t time.Time) string {
	w := ToWIB(t)
	return fmt.Sprintf("%02d %s %d", w.Day(), MonthName(w.Month()), w.Year())
}

// DayMonthWIB: "02 Januari".
func DayMonthWIB(t time.Time) string {
	w := ToWIB(t)
	return fmt.Sprintf("%02d %s", w.Day(), MonthName(w.Month()))
}

// MonthRangeWIB: [awal bulan, awal bulan berikutnya) WIB dalam UTC.
func MonthRangeWIB(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, wib)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// UTCDayRange: [00:00, 24:00) hari kalender UTC dari t.
func UTCDayRange(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
