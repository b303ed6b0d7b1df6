package service

import (
	"context"
	"log"
	"strings"
	"time"

	"okoce_backend/internals/features/events/events/dto"
	"okoce_backend/internals/features/events/events/model"
	questionDTO "okoce_backend/internals/features/events/questions/dto"
	questionModel "okoce_backend/internals/features/events/questions/model"
	notifService "okoce_backend/internals/features/notifications/service"
	"okoce_backend/internals/helpers/clock"
	"okoce_backend/internals/helpers/dbtime"
)

// ListFilter: pencarian judul + halaman (dashboard & arsip admin).
type ListFilter struct {
	Search string
	Offset int
	Limit  int
}

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetEvent(ctx context.Context, id uint) (*model.EventModel, error)
	ListPublic(ctx context.Context, offset, limit int) ([]model.EventModel, int64, error)
	ListJoinable(ctx context.Context) ([]model.EventModel, error)
	ListByArchived(ctx context.Context, archived bool, f ListFilter) ([]model.EventModel, int64, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.EventModel, error)

	CreateEvent(ctx context.Context, e *model.EventModel) error
	SaveEvent(ctx context.Context, e *model.EventModel) error
	ReplaceQuestions(ctx context.Context, eventID uint, qs []questionModel.EventQuestionModel) error
	ListQuestions(ctx context.Context, eventID uint) ([]questionModel.EventQuestionModel, error)

	// SetArchived untuk banyak id sekaligus; mengembalikan jumlah baris yang berubah.
	SetArchived(ctx context.Context, ids []uint, archived bool) (int64, error)

	CountCheckedIn(ctx context.Context, eventID uint) (int64, error)
	CountTickets(ctx context.Context, eventID uint) (int64, error)
	ListParticipants(ctx context.Context, eventID uint) ([]dto.Participant, error)
}

type EventService struct {
	repo  EventRepository
	push  notifService.Sender
	topic string
	clock clock.Clock
}

func NewEventService(repo EventRepository, push notifService.Sender, topic string, clk clock.Clock) *EventService {
	return &EventService{repo: repo, push: push, topic: topic, clock: clk}
}

/* ============================================================
   USER / PUBLIC
============================================================ */

func (s *EventService) ListPublic(ctx context.Context, baseURL string, offset, limit int) ([]dto.PublicEventItem, int64, error) {
	now := s.clock.Now().UTC()
	rows, total, err := s.repo.ListPublic(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.PublicEventItem, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToPublicItem(&rows[i], baseURL, now))
	}
	return out, total, nil
}

func (s *EventService) ListJoinable(ctx context.Context) ([]dto.JoinableEventItem, error) {
	rows, err := s.repo.ListJoinable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JoinableEventItem, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToJoinableItem(&rows[i]))
	}
	return out, nil
}

/* ============================================================
   ADMIN
============================================================ */

func questionModels(f dto.EventForm) []questionModel.EventQuestionModel {
	qs := make([]questionModel.EventQuestionModel, 0, len(f.Questions))
	for _, q := range f.Questions {
		qs = append(qs, q.ToModel(0))
	}
	return qs
}

// Create menyimpan event + soal (kalau ada tes) lalu broadcast push bila notif_title diisi.
func (s *EventService) Create(ctx context.Context, f dto.EventForm, imageFilename *string) (*model.EventModel, error) {
	if err := f.Validate(); err != nil {
		return nil, errInvalidForm(err.Error())
	}
	ev := &model.EventModel{ImageFilename: imageFilename}
	f.Apply(ev)

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateEvent(txCtx, ev); err != nil {
			return err
		}
		if f.HasPrePostTest {
			return s.repo.ReplaceQuestions(txCtx, ev.ID, questionModels(f))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if f.NotifTitle != "" {
		body := f.NotifBody
		if body == "" {
			body = "Jangan ketinggalan: " + ev.Title
		}
		p := notifService.Push{Title: f.NotifTitle, Body: body, EventID: ev.ID}
		if err := s.push.SendToTopic(ctx, s.topic, p); err != nil {
			log.Printf("[WARN] broadcast event %d ke topic %s gagal: %v", ev.ID, s.topic, err)
		}
	}
	return ev, nil
}

// Update: soal diganti penuh kalau has_pre_post_test, dihapus kalau tidak.
// Gambar lama dipertahankan kalau tidak ada upload baru.
func (s *EventService) Update(ctx context.Context, id uint, f dto.EventForm, imageFilename *string) (*model.EventModel, error) {
	if err := f.Validate(); err != nil {
		return nil, errInvalidForm(err.Error())
	}
	var ev *model.EventModel
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		ev, err = s.repo.GetEvent(txCtx, id)
		if err != nil {
			return err
		}
		if ev == nil {
			return ErrEventNotFound
		}
		if f.SlotPeserta < ev.RegisteredCount {
			return errSlotBelowRegistered(ev.RegisteredCount)
		}
		f.Apply(ev)
		if imageFilename != nil {
			ev.ImageFilename = imageFilename
		}
		if err := s.repo.SaveEvent(txCtx, ev); err != nil {
			return err
		}
		if f.HasPrePostTest {
			return s.repo.ReplaceQuestions(txCtx, ev.ID, questionModels(f))
		}
		return s.repo.ReplaceQuestions(txCtx, ev.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *EventService) Detail(ctx context.Context, id uint) (dto.EventDetail, error) {
	ev, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return dto.EventDetail{}, err
	}
	if ev == nil {
		return dto.EventDetail{}, ErrEventNotFound
	}
	registered, err := s.repo.CountTickets(ctx, id)
	if err != nil {
		return dto.EventDetail{}, err
	}
	checkedIn, err := s.repo.CountCheckedIn(ctx, id)
	if err != nil {
		return dto.EventDetail{}, err
	}
	participants, err := s.repo.ListParticipants(ctx, id)
	if err != nil {
		return dto.EventDetail{}, err
	}
	qs, err := s.repo.ListQuestions(ctx, id)
	if err != nil {
		return dto.EventDetail{}, err
	}
	questions := make([]questionDTO.QuestionInput, 0, len(qs))
	for _, q := range qs {
		questions = append(questions, questionDTO.FromModel(q))
	}

	return dto.EventDetail{
		Event:           *ev,
		RegisteredCount: registered,
		CheckedInCount:  checkedIn,
		Participants:    participants,
		Questions:       questions,
		FormTimes:       dto.FormTimes(ev),
	}, nil
}

// List: dashboard (archived=false, mulai ASC) atau arsip (archived=true, mulai DESC).
func (s *EventService) List(ctx context.Context, archived bool, f ListFilter) ([]model.EventModel, int64, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.ListByArchived(ctx, archived, f)
}

func (s *EventService) SetArchived(ctx context.Context, id uint, archived bool) (*model.EventModel, error) {
	ev, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	if _, err := s.repo.SetArchived(ctx, []uint{id}, archived); err != nil {
		return nil, err
	}
	ev.IsArchived = archived
	return ev, nil
}

func (s *EventService) BulkSetArchived(ctx context.Context, ids []uint, archived bool) (int64, error) {
	clean := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return 0, ErrNoEventsChosen
	}
	return s.repo.SetArchived(ctx, clean, archived)
}

// Today: event non-arsip yang mulai di hari kalender UTC ini (dashboard panitia).
func (s *EventService) Today(ctx context.Context) ([]model.EventModel, error) {
	from, to := dbtime.UTCDayRange(s.clock.Now())
	return s.repo.ListStartingBetween(ctx, from, to)
}
