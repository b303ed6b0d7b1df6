package service

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	assessmentModel "okoce_backend/internals/features/assessments/model"
	eventModel "okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/features/reports/dto"
	businessModel "okoce_backend/internals/features/umkm/businesses/model"
	userModel "okoce_backend/internals/features/users/user/model"
	"okoce_backend/internals/helpers/clock"
)

var may2025 = time.Date(2025, 5, 15, 3, 0, 0, 0, time.UTC)

func statsRows() []dto.EventReportRow {
	return []dto.EventReportRow{
		{EventID: 1, Title: "A", TglMulaiEvent: may2025.Add(-48 * time.Hour), TempatEvent: "Online", SlotPeserta: 50, Registered: 10, CheckedIn: 5},
		{EventID: 2, Title: "B", TglMulaiEvent: may2025, TempatEvent: "Aula", SlotPeserta: 20, Registered: 20, CheckedIn: 19},
		{EventID: 3, Title: "C", TglMulaiEvent: may2025.Add(48 * time.Hour), TempatEvent: "Aula", SlotPeserta: 30, Registered: 0, CheckedIn: 0},
	}
}

func TestRate(t *testing.T) {
	t.Parallel()

	if Rate(0, 0) != 0 {
		t.Fatalf("no registrations must give 0")
	}
	if got := Rate(1, 3); got < 33.33 || got > 33.34 {
		t.Fatalf("unexpected rate %v", got)
	}
}

func TestResolvePeriod(t *testing.T) {
	t.Parallel()

	// 2025-05-31 20:00 UTC = 2025-06-01 03:00 WIB
	svc := NewReportService(&fakeReportRepo{}, clock.NewFixed(time.Date(2025, 5, 31, 20, 0, 0, 0, time.UTC)))
	cases := []struct {
		year, month string
		wantY       int
		wantM       time.Month
	}{
		{"", "", 2025, time.June},
		{"2024", "2", 2024, time.February},
		{"abc", "2", 2025, time.June},
		{"2024", "13", 2024, time.June},
	}
	for _, tc := range cases {
		y, m := svc.ResolvePeriod(tc.year, tc.month)
		if y != tc.wantY || m != tc.wantM {
			t.Fatalf("%q/%q: got %d/%v, want %d/%v", tc.year, tc.month, y, m, tc.wantY, tc.wantM)
		}
	}
}

func TestMonthly(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{stats: statsRows()}
	svc := NewReportService(repo, clock.NewFixed(may2025))

	rep, err := svc.Monthly(context.Background(), 2025, time.May, "rate", "desc")
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if rep.Rows[0].Title != "B" || rep.Rows[2].Title != "C" {
		t.Fatalf("unexpected order %v", rep.Chart.Labels)
	}
	if rep.Chart.Title != "Tingkat Kehadiran (%)" || rep.Chart.Values[0] != 95 || rep.Chart.Values[1] != 50 {
		t.Fatalf("unexpected chart %+v", rep.Chart)
	}
	// Batas bulan dihitung di WIB: 1 Mei 00:00 WIB = 30 Apr 17:00 UTC.
	if want := time.Date(2025, 4, 30, 17, 0, 0, 0, time.UTC); !repo.lastFrom.Equal(want) {
		t.Fatalf("unexpected range start %v", repo.lastFrom)
	}
	if len(rep.Months) != 12 || rep.Months[4].Name != "Mei" || len(rep.Years) != 5 || rep.Years[0] != 2022 {
		t.Fatalf("unexpected selectors %+v %+v", rep.Months, rep.Years)
	}

	rep, _ = svc.Monthly(context.Background(), 2025, time.May, "bogus", "sideways")
	if rep.SortBy != "date" || rep.Order != "asc" || rep.Rows[0].Title != "A" || rep.Chart.Title != "Peserta Terdaftar" {
		t.Fatalf("unexpected fallback %+v", rep)
	}
}

func TestMonthlyCSV(t *testing.T) {
	t.Parallel()

	svc := NewReportService(&fakeReportRepo{stats: statsRows()}, clock.NewFixed(may2025))
	body, name, err := svc.MonthlyCSV(context.Background(), 2025, time.May)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if name != "Laporan_Bulanan_5_2025.csv" {
		t.Fatalf("unexpected filename %s", name)
	}
	recs, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(recs) != 4 || recs[0][0] != "No" {
		t.Fatalf("unexpected csv %v", recs)
	}
	// 15 Mei 03:00 UTC = 10:00 WIB
	if recs[2][2] != "15-05-2025 10:00" || recs[2][7] != "95.0" || recs[3][7] != "0.0" {
		t.Fatalf("unexpected row %v / %v", recs[2], recs[3])
	}
}

func TestParticipantsCSV(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 5, 15, 2, 30, 0, 0, time.UTC)
	pre := 40
	typ := "Kuliner"
	repo := &fakeReportRepo{
		event: &eventModel.EventModel{ID: 7},
		participants: []dto.ParticipantRecord{
			{Name: "Sari", IsCheckedIn: true, CheckedInAt: &at, PreScore: &pre,
				Business: &businessModel.BusinessProfileModel{BusinessName: "Warung Sari", BusinessType: &typ}},
			{Name: "Budi"},
		},
	}
	svc := NewReportService(repo, clock.NewFixed(may2025))

	if _, _, err := svc.ParticipantsCSV(context.Background(), 7, []string{" "}); !errors.Is(err, ErrNoColumnsChosen) {
		t.Fatalf("expected ErrNoColumnsChosen, got %v", err)
	}
	if _, _, err := svc.ParticipantsCSV(context.Background(), 8, []string{"Email"}); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	cols := []string{"Nama Peserta", "Status Hadir", "Waktu Check-in", "Nilai Pre-Test", "Nilai Post-Test", "Jenis Bisnis", "Marketplace", "Kolom Aneh"}
	body, name, err := svc.ParticipantsCSV(context.Background(), 7, cols)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if name != "peserta_event_7.csv" {
		t.Fatalf("unexpected filename %s", name)
	}
	recs, _ := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	want := [][]string{
		cols,
		{"Sari", "Hadir", "2025-05-15 09:30:00", "40", "-", "Kuliner", "-", "-"},
		{"Budi", "Belum Hadir", "-", "-", "-", "-", "-", "-"},
	}
	for i := range want {
		if strings.Join(recs[i], "|") != strings.Join(want[i], "|") {
			t.Fatalf("row %d: got %v, want %v", i, recs[i], want[i])
		}
	}
}

func TestUserDetail(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	post := 80
	repo := &fakeReportRepo{
		user:     &userModel.UserModel{ID: uid, Name: "Rina", HasBusiness: true},
		business: &businessModel.BusinessProfileModel{ID: 3, BusinessName: "Rina Craft"},
		score:    &assessmentModel.UserTestScoreModel{PostTestScore: &post},
	}
	svc := NewReportService(repo, clock.NewFixed(may2025))

	d, err := svc.UserDetail(context.Background(), uid, 0)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.BusinessProfile == nil || d.BusinessProfile.BusinessName != "Rina Craft" || d.BusinessProfile.URL != nil {
		t.Fatalf("unexpected business %+v", d.BusinessProfile)
	}
	if d.TestScores != nil {
		t.Fatalf("scores must be omitted without event_id")
	}

	d, _ = svc.UserDetail(context.Background(), uid, 5)
	if d.TestScores == nil || d.TestScores.PreTest != nil || *d.TestScores.PostTest != 80 {
		t.Fatalf("unexpected scores %+v", d.TestScores)
	}

	if _, err := svc.UserDetail(context.Background(), uuid.New(), 0); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

/* ===================== fakes ===================== */

type fakeReportRepo struct {
	stats        []dto.EventReportRow
	event        *eventModel.EventModel
	participants []dto.ParticipantRecord
	user         *userModel.UserModel
	business     *businessModel.BusinessProfileModel
	score        *assessmentModel.UserTestScoreModel

	lastFrom, lastTo time.Time
}

func (f *fakeReportRepo) EventStats(_ context.Context, from, to time.Time) ([]dto.EventReportRow, error) {
	f.lastFrom, f.lastTo = from, to
	out := make([]dto.EventReportRow, len(f.stats))
	copy(out, f.stats)
	return out, nil
}

func (f *fakeReportRepo) GetEvent(_ context.Context, id uint) (*eventModel.EventModel, error) {
	if f.event == nil || f.event.ID != id {
		return nil, nil
	}
	return f.event, nil
}

func (f *fakeReportRepo) ListParticipants(context.Context, uint) ([]dto.ParticipantRecord, error) {
	return f.participants, nil
}

func (f *fakeReportRepo) FindUser(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	if f.user == nil || f.user.ID != id {
		return nil, nil
	}
	return f.user, nil
}

func (f *fakeReportRepo) FirstBusiness(context.Context, uuid.UUID) (*businessModel.BusinessProfileModel, error) {
	return f.business, nil
}

func (f *fakeReportRepo) FindScore(context.Context, uuid.UUID, uint) (*assessmentModel.UserTestScoreModel, error) {
	return f.score, nil
}
