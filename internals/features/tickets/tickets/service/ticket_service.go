package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	eventModel "okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/features/tickets/tickets/dto"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
	userModel "okoce_backend/internals/features/users/user/model"
	"okoce_backend/internals/helpers/clock"
	"okoce_backend/internals/helpers/dbtime"
)

// ScannerLeadTime: panitia boleh membuka scanner mulai 3 jam sebelum event.
const ScannerLeadTime = 3 * time.Hour

type TicketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	FindTicket(ctx context.Context, userID uuid.UUID, eventID uint) (*ticketModel.TicketModel, error)
	FindTicketByCode(ctx context.Context, code string) (*ticketModel.TicketModel, error)
	GetEvent(ctx context.Context, eventID uint) (*eventModel.EventModel, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error)
	CountBusinesses(ctx context.Context, userID uuid.UUID) (int64, error)

	// IncrementRegistered: +1 hanya jika registered_count < slot_peserta. false = kuota penuh.
	IncrementRegistered(ctx context.Context, eventID uint) (bool, error)
	// CreateTicket mengembalikan ErrAlreadyRegistered untuk pasangan (user, event) yang sudah ada.
	CreateTicket(ctx context.Context, t *ticketModel.TicketModel) error

	// MarkCheckedIn: false -> true hanya jika masih false. false = sudah dipakai.
	MarkCheckedIn(ctx context.Context, ticketID uint) (bool, error)
	CreateCheckIn(ctx context.Context, ci *ticketModel.CheckInModel) error
	FindCheckIn(ctx context.Context, ticketID uint) (*ticketModel.CheckInModel, error)

	ListUserTickets(ctx context.Context, userID uuid.UUID) ([]dto.TicketRow, error)
}

type TicketService struct {
	repo  TicketRepository
	clock clock.Clock
}

func NewTicketService(repo TicketRepository, clk clock.Clock) *TicketService {
	return &TicketService{repo: repo, clock: clk}
}

/* ============================================================
   PURCHASE
============================================================ */

// Purchase membuat tiket gratis. Urutan cek: duplikat, event, harga, jendela
// pendaftaran, kuota (conditional update), syarat UMKM. Semua dalam satu transaksi.
func (s *TicketService) Purchase(ctx context.Context, userID uuid.UUID, eventID uint) (string, error) {
	now := s.clock.Now().UTC()
	var code string

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindTicket(txCtx, userID, eventID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyRegistered
		}

		ev, err := s.repo.GetEvent(txCtx, eventID)
		if err != nil {
			return err
		}
		if ev == nil {
			return ErrEventNotFound
		}
		if ev.Price > 0 {
			return ErrPaidEvent
		}
		if now.Before(ev.TglBukaPendaftaran) {
			return ErrNotYetOpen
		}
		if now.After(ev.TglTutupPendaftaran) {
			return ErrAlreadyClosed
		}

		ok, err := s.repo.IncrementRegistered(txCtx, eventID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrQuotaFull
		}

		if ev.IsUMKMDataRequired {
			n, err := s.repo.CountBusinesses(txCtx, userID)
			if err != nil {
				return err
			}
			if n == 0 {
				return ErrUMKMRequired
			}
		}

		t := &ticketModel.TicketModel{
			TicketCode: uuid.NewString(),
			UserID:     userID,
			EventID:    eventID,
		}
		if err := s.repo.CreateTicket(txCtx, t); err != nil {
			return err
		}
		code = t.TicketCode
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

/* ============================================================
   CHECK-IN
============================================================ */

type CheckInInput struct {
	CallerID        uuid.UUID
	CallerRole      string
	Code            string
	ExpectedEventID *uint
}

func isStaff(role string) bool {
	return role == userModel.RoleAdmin || role == userModel.RolePanitia
}

// CheckIn menandai tiket terpakai (sekali saja) dan mencatat CheckIn.
// Staff selalu boleh; user hanya tiket miliknya, event Online, dan setelah event mulai.
func (s *TicketService) CheckIn(ctx context.Context, in CheckInInput) (dto.CheckInResult, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return dto.CheckInResult{}, ErrCodeRequired
	}

	now := s.clock.Now().UTC()
	var res dto.CheckInResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		t, err := s.repo.FindTicketByCode(txCtx, code)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTicketNotFound
		}

		holder, err := s.repo.GetUser(txCtx, t.UserID)
		if err != nil {
			return err
		}
		ev, err := s.repo.GetEvent(txCtx, t.EventID)
		if err != nil {
			return err
		}
		if holder == nil || ev == nil {
			return errors.New("data user/event untuk tiket tidak ditemukan")
		}

		if t.IsCheckedIn {
			return s.alreadyUsed(txCtx, in, t, holder, ev)
		}

		if in.ExpectedEventID != nil && *in.ExpectedEventID != t.EventID {
			return ErrOtherEvent
		}

		var checkedBy *uuid.UUID
		switch {
		case isStaff(in.CallerRole):
			by := in.CallerID
			checkedBy = &by
		case in.CallerRole == userModel.RoleUser:
			if t.UserID != in.CallerID {
				return ErrNotTicketOwner
			}
			if !ev.IsOnline() {
				return ErrMustBeScanned
			}
			if now.Before(ev.TglMulaiEvent) {
				return ErrEventNotStarted
			}
		default:
			return ErrRoleDenied
		}

		ok, err := s.repo.MarkCheckedIn(txCtx, t.ID)
		if err != nil {
			return err
		}
		if !ok {
			// kalah balapan dengan scan lain
			return s.alreadyUsed(txCtx, in, t, holder, ev)
		}

		if err := s.repo.CreateCheckIn(txCtx, &ticketModel.CheckInModel{
			TicketID:    t.ID,
			Timestamp:   now,
			CheckedInBy: checkedBy,
		}); err != nil {
			return err
		}

		res = dto.CheckInResult{
			UserName:    holder.Name,
			UserEmail:   holder.Email,
			EventTitle:  ev.Title,
			CheckedInAt: now,
		}
		return nil
	})
	if err != nil {
		return dto.CheckInResult{}, err
	}
	return res, nil
}

// alreadyUsed: nama pemegang & judul event hanya untuk staff atau pemilik tiket.
func (s *TicketService) alreadyUsed(ctx context.Context, in CheckInInput, t *ticketModel.TicketModel, holder *userModel.UserModel, ev *eventModel.EventModel) error {
	out := &AlreadyCheckedInError{}
	if isStaff(in.CallerRole) || t.UserID == in.CallerID {
		out.UserName = holder.Name
		out.EventTitle = ev.Title
	}
	ci, err := s.repo.FindCheckIn(ctx, t.ID)
	if err != nil {
		return err
	}
	if ci != nil {
		ts := ci.Timestamp
		out.CheckedInAt = &ts
	}
	return out
}

/* ============================================================
   QUERIES
============================================================ */

// ListMine: tiket user (event terbaru dulu) dengan status turunan untuk aplikasi.
func (s *TicketService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.TicketItem, error) {
	rows, err := s.repo.ListUserTickets(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketItem, 0, len(rows))
	for _, r := range rows {
		status, label := ticketStatus(r)
		out = append(out, dto.TicketItem{
			TicketCode:    r.Ticket.TicketCode,
			IsCheckedIn:   r.Ticket.IsCheckedIn,
			EventTitle:    r.Event.Title,
			EventDate:     dbtime.DateLongWIB(r.Event.TglMulaiEvent),
			EventID:       r.Event.ID,
			EventLocation: r.Event.TempatEvent,
			Status:        status,
			StatusLabel:   label,
		})
	}
	return out, nil
}

func ticketStatus(r dto.TicketRow) (string, string) {
	status, label := dto.StatusReady, "Tersedia"
	if r.Ticket.IsCheckedIn {
		switch {
		case !r.Event.HasPrePostTest:
			status, label = dto.StatusDone, "Selesai"
		case !r.HasScore:
			status, label = dto.StatusPreTest, "Isi Pre-Test"
		case r.PostScore == nil:
			status, label = dto.StatusPostTest, "Isi Post-Test"
		default:
			status, label = dto.StatusDone, "Selesai"
		}
	} else if r.Event.IsOnline() {
		label = "Gabung Online"
	}
	return status, label
}

// Status dipakai polling aplikasi: hanya pemilik tiket.
func (s *TicketService) Status(ctx context.Context, callerID uuid.UUID, code string) (dto.TicketStatus, error) {
	t, err := s.repo.FindTicketByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return dto.TicketStatus{}, err
	}
	if t == nil {
		return dto.TicketStatus{}, ErrTicketNotFound
	}
	if t.UserID != callerID {
		return dto.TicketStatus{}, ErrAccessDenied
	}
	return dto.TicketStatus{IsCheckedIn: t.IsCheckedIn, TicketCode: t.TicketCode}, nil
}

// JoinURL: link event online, hanya untuk pemegang tiket.
func (s *TicketService) JoinURL(ctx context.Context, userID uuid.UUID, eventID uint) (string, error) {
	ev, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return "", err
	}
	if ev == nil {
		return "", ErrEventNotFound
	}
	t, err := s.repo.FindTicket(ctx, userID, eventID)
	if err != nil {
		return "", err
	}
	if !ev.IsOnline() {
		return "", ErrOfflineEvent
	}
	if t == nil {
		return "", ErrNotRegistered
	}
	if ev.OnlineEventURL == nil || strings.TrimSpace(*ev.OnlineEventURL) == "" {
		return "", ErrJoinURLNotSet
	}
	return *ev.OnlineEventURL, nil
}

// ScannerGate: admin selalu boleh; panitia mulai ScannerLeadTime sebelum event.
func (s *TicketService) ScannerGate(ctx context.Context, role string, eventID uint) (*eventModel.EventModel, error) {
	ev, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	if role != userModel.RoleAdmin && s.clock.Now().UTC().Before(ev.TglMulaiEvent.Add(-ScannerLeadTime)) {
		return nil, ErrScannerNotOpenYet
	}
	return ev, nil
}
