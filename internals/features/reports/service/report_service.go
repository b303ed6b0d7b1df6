package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	assessmentModel "okoce_backend/internals/features/assessments/model"
	eventModel "okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/features/reports/dto"
	businessDTO "okoce_backend/internals/features/umkm/businesses/dto"
	businessModel "okoce_backend/internals/features/umkm/businesses/model"
	userModel "okoce_backend/internals/features/users/user/model"
	"okoce_backend/internals/helpers/clock"
	"okoce_backend/internals/helpers/dbtime"
)

var (
	ErrEventNotFound   = fiber.NewError(fiber.StatusNotFound, "Event tidak ditemukan")
	ErrUserNotFound    = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	ErrNoColumnsChosen = fiber.NewError(fiber.StatusBadRequest, "Anda harus memilih setidaknya satu kolom.")
)

type ReportRepository interface {
	// EventStats: event yang mulai di [from, to), termasuk yang diarsip, urut tgl mulai ASC.
	EventStats(ctx context.Context, from, to time.Time) ([]dto.EventReportRow, error)
	GetEvent(ctx context.Context, id uint) (*eventModel.EventModel, error)
	ListParticipants(ctx context.Context, eventID uint) ([]dto.ParticipantRecord, error)

	FindUser(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	// FirstBusiness: profil usaha pertama (id terkecil) beserta sub-record.
	FirstBusiness(ctx context.Context, userID uuid.UUID) (*businessModel.BusinessProfileModel, error)
	FindScore(ctx context.Context, userID uuid.UUID, eventID uint) (*assessmentModel.UserTestScoreModel, error)
}

type ReportService struct {
	repo  ReportRepository
	clock clock.Clock
}

func NewReportService(repo ReportRepository, clk clock.Clock) *ReportService {
	return &ReportService{repo: repo, clock: clk}
}

/* ============================================================
   LAPORAN BULANAN
============================================================ */

// Rate = hadir / terdaftar * 100; 0 kalau belum ada pendaftar.
func Rate(checkedIn, registered int64) float64 {
	if registered <= 0 {
		return 0
	}
	return float64(checkedIn) / float64(registered) * 100
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// ResolvePeriod: year/month tidak valid jatuh ke bulan berjalan (WIB).
func (s *ReportService) ResolvePeriod(yearRaw, monthRaw string) (int, time.Month) {
	now := dbtime.ToWIB(s.clock.Now())
	year, month := now.Year(), now.Month()
	y, errY := strconv.Atoi(strings.TrimSpace(yearRaw))
	m, errM := strconv.Atoi(strings.TrimSpace(monthRaw))
	if (yearRaw != "" && errY != nil) || (monthRaw != "" && errM != nil) {
		return year, month
	}
	if yearRaw != "" && y > 0 {
		year = y
	}
	if monthRaw != "" && m >= 1 && m <= 12 {
		month = time.Month(m)
	}
	return year, month
}

func sortRows(rows []dto.EventReportRow, sortBy, order string) {
	desc := order == "desc"
	less := func(a, b dto.EventReportRow) bool {
		switch sortBy {
		case dto.SortRegistered:
			return a.Registered < b.Registered
		case dto.SortCheckedIn:
			return a.CheckedIn < b.CheckedIn
		case dto.SortRate:
			return a.Rate < b.Rate
		default:
			return a.TglMulaiEvent.Before(b.TglMulaiEvent)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func buildChart(rows []dto.EventReportRow, sortBy string) dto.Chart {
	ch := dto.Chart{Labels: make([]string, 0, len(rows)), Values: make([]float64, 0, len(rows))}
	switch sortBy {
	case dto.SortCheckedIn:
		ch.Title = "Peserta Hadir"
	case dto.SortRate:
		ch.Title = "Tingkat Kehadiran (%)"
	default:
		ch.Title = "Peserta Terdaftar"
	}
	for _, r := range rows {
		ch.Labels = append(ch.Labels, r.Title)
		switch sortBy {
		case dto.SortCheckedIn:
			ch.Values = append(ch.Values, float64(r.CheckedIn))
		case dto.SortRate:
			ch.Values = append(ch.Values, round1(r.Rate))
		default:
			ch.Values = append(ch.Values, float64(r.Registered))
		}
	}
	return ch
}

func (s *ReportService) stats(ctx context.Context, year int, month time.Month) ([]dto.EventReportRow, error) {
	from, to := dbtime.MonthRangeWIB(year, month)
	rows, err := s.repo.EventStats(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Rate = Rate(rows[i].CheckedIn, rows[i].Registered)
	}
	return rows, nil
}

func (s *ReportService) Monthly(ctx context.Context, year int, month time.Month, sortBy, order string) (dto.MonthlyReport, error) {
	switch sortBy {
	case dto.SortDate, dto.SortRegistered, dto.SortCheckedIn, dto.SortRate:
	default:
		sortBy = dto.SortDate
	}
	if order != "desc" {
		order = "asc"
	}

	rows, err := s.stats(ctx, year, month)
	if err != nil {
		return dto.MonthlyReport{}, err
	}
	sortRows(rows, sortBy, order)

	months := make([]dto.MonthOption, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, dto.MonthOption{Value: int(m), Name: dbtime.MonthName(m)})
	}
	nowYear := dbtime.ToWIB(s.clock.Now()).Year()
	years := make([]int, 0, 5)
	for y := nowYear - 3; y <= nowYear+1; y++ {
		years = append(years, y)
	}

	return dto.MonthlyReport{
		Year:   year,
		Month:  int(month),
		SortBy: sortBy,
		Order:  order,
		Rows:   rows,
		Chart:  buildChart(rows, sortBy),
		Months: months,
		Years:  years,
	}, nil
}

// MonthlyCSV mengembalikan isi CSV + nama file unduhan.
func (s *ReportService) MonthlyCSV(ctx context.Context, year int, month time.Month) ([]byte, string, error) {
	rows, err := s.stats(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"No", "Nama Event", "Tanggal Mulai", "Lokasi", "Kuota", "Terdaftar", "Hadir (Check-in)", "Persentase Kehadiran (%)"})
	for i, r := range rows {
		_ = w.Write([]string{
			strconv.Itoa(i + 1),
			r.Title,
			dbtime.ToWIB(r.TglMulaiEvent).Format("02-01-2006 15:04"),
			r.TempatEvent,
			strconv.Itoa(r.SlotPeserta),
			strconv.FormatInt(r.Registered, 10),
			strconv.FormatInt(r.CheckedIn, 10),
			fmt.Sprintf("%.1f", r.Rate),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("Laporan_Bulanan_%d_%d.csv", int(month), year), nil
}

/* ============================================================
   EKSPOR PESERTA
============================================================ */

func (s *ReportService) ParticipantsCSV(ctx context.Context, eventID uint, columns []string) ([]byte, string, error) {
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return nil, "", ErrNoColumnsChosen
	}

	ev, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, "", err
	}
	if ev == nil {
		return nil, "", ErrEventNotFound
	}
	records, err := s.repo.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(cols)
	for i := range records {
		_ = w.Write(ParticipantRow(&records[i], cols))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("peserta_event_%d.csv", ev.ID), nil
}

/* ============================================================
   DETAIL PESERTA (ADMIN)
============================================================ */

// UserDetail: eventID = 0 berarti tanpa nilai tes.
func (s *ReportService) UserDetail(ctx context.Context, userID uuid.UUID, eventID uint) (dto.UserDetail, error) {
	u, err := s.repo.FindUser(ctx, userID)
	if err != nil {
		return dto.UserDetail{}, err
	}
	if u == nil {
		return dto.UserDetail{}, ErrUserNotFound
	}

	out := dto.UserDetail{
		Name:            u.Name,
		PhoneNumber:     u.PhoneNumber,
		Email:           u.Email,
		Province:        u.Province,
		City:            u.City,
		Institution:     u.Institution,
		OkoceID:         u.OkoceID,
		HasBusinessFlag: u.HasBusiness,
	}

	b, err := s.repo.FirstBusiness(ctx, userID)
	if err != nil {
		return dto.UserDetail{}, err
	}
	if b != nil {
		d := businessDTO.FromModel(b)
		out.BusinessProfile = &d
	}

	if eventID > 0 {
		score, err := s.repo.FindScore(ctx, userID, eventID)
		if err != nil {
			return dto.UserDetail{}, err
		}
		if score != nil {
			out.TestScores = &dto.TestScores{PreTest: score.PreTestScore, PostTest: score.PostTestScore}
		}
	}
	return out, nil
}
