package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	eventModel "okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/features/tickets/tickets/dto"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
	userModel "okoce_backend/internals/features/users/user/model"
	"okoce_backend/internals/helpers/clock"
)

func TestTicketService_Purchase(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	userA := uuid.New()
	userB := uuid.New()

	t.Run("capacity one admits only the first user", func(t *testing.T) {
		repo := newFakeTicketRepo()
		repo.addEvent(openEvent(1, now, 1))
		svc := NewTicketService(repo, clock.NewFixed(now))

		code, err := svc.Purchase(context.Background(), userA, 1)
		if err != nil {
			t.Fatalf("expected user A to succeed, got %v", err)
		}
		if _, err := uuid.Parse(code); err != nil {
			t.Fatalf("expected uuid ticket code, got %q", code)
		}

		_, err = svc.Purchase(context.Background(), userB, 1)
		if !errors.Is(err, ErrQuotaFull) {
			t.Fatalf("expected ErrQuotaFull for user B, got %v", err)
		}
		if got := repo.events[1].RegisteredCount; got != 1 {
			t.Fatalf("expected registered_count 1, got %d", got)
		}
	})

	t.Run("second purchase by same user is a conflict", func(t *testing.T) {
		repo := newFakeTicketRepo()
		repo.addEvent(openEvent(1, now, 10))
		svc := NewTicketService(repo, clock.NewFixed(now))

		if _, err := svc.Purchase(context.Background(), userA, 1); err != nil {
			t.Fatalf("first purchase: %v", err)
		}
		_, err := svc.Purchase(context.Background(), userA, 1)
		if !errors.Is(err, ErrAlreadyRegistered) {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
		if got := repo.events[1].RegisteredCount; got != 1 {
			t.Fatalf("expected registered_count 1, got %d", got)
		}
	})

	t.Run("duplicate wins over a full event", func(t *testing.T) {
		repo := newFakeTicketRepo()
		repo.addEvent(openEvent(1, now, 1))
		svc := NewTicketService(repo, clock.NewFixed(now))

		if _, err := svc.Purchase(context.Background(), userA, 1); err != nil {
			t.Fatalf("first purchase: %v", err)
		}
		_, err := svc.Purchase(context.Background(), userA, 1)
		if !errors.Is(err, ErrAlreadyRegistered) {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("registration window bounds", func(t *testing.T) {
		T := now
		ev := openEvent(1, T, 10)
		ev.TglBukaPendaftaran = T.Add(-10 * 24 * time.Hour)
		ev.TglTutupPendaftaran = T.Add(10 * 24 * time.Hour)
		ev.TglMulaiEvent = T.Add(20 * 24 * time.Hour)
		ev.TglSelesaiEvent = T.Add(21 * 24 * time.Hour)

		cases := []struct {
			name string
			at   time.Time
			want error
		}{
			{"after close", T.Add(11 * 24 * time.Hour), ErrAlreadyClosed},
			{"before open", T.Add(-11 * 24 * time.Hour), ErrNotYetOpen},
			{"exactly at open", ev.TglBukaPendaftaran, nil},
			{"exactly at close", ev.TglTutupPendaftaran, nil},
		}
		for _, tc := range cases {
			repo := newFakeTicketRepo()
			repo.addEvent(ev)
			svc := NewTicketService(repo, clock.NewFixed(tc.at))
			_, err := svc.Purchase(context.Background(), userA, 1)
			if !errors.Is(err, tc.want) {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
			}
		}
	})

	t.Run("unknown event and paid event", func(t *testing.T) {
		repo := newFakeTicketRepo()
		paid := openEvent(2, now, 10)
		paid.Price = 50000
		repo.addEvent(paid)
		svc := NewTicketService(repo, clock.NewFixed(now))

		if _, err := svc.Purchase(context.Background(), userA, 99); !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
		if _, err := svc.Purchase(context.Background(), userA, 2); !errors.Is(err, ErrPaidEvent) {
			t.Fatalf("expected ErrPaidEvent, got %v", err)
		}
	})

	t.Run("umkm requirement rolls back the counter", func(t *testing.T) {
		repo := newFakeTicketRepo()
		ev := openEvent(1, now, 10)
		ev.IsUMKMDataRequired = true
		repo.addEvent(ev)
		svc := NewTicketService(repo, clock.NewFixed(now))

		_, err := svc.Purchase(context.Background(), userA, 1)
		if !errors.Is(err, ErrUMKMRequired) {
			t.Fatalf("expected ErrUMKMRequired, got %v", err)
		}
		if got := repo.events[1].RegisteredCount; got != 0 {
			t.Fatalf("expected counter rolled back to 0, got %d", got)
		}

		repo.businesses[userA] = 1
		if _, err := svc.Purchase(context.Background(), userA, 1); err != nil {
			t.Fatalf("expected success with business profile, got %v", err)
		}
	})

	t.Run("sequential purchases never exceed capacity", func(t *testing.T) {
		repo := newFakeTicketRepo()
		repo.addEvent(openEvent(1, now, 3))
		svc := NewTicketService(repo, clock.NewFixed(now))

		ok := 0
		for i := 0; i < 10; i++ {
			if _, err := svc.Purchase(context.Background(), uuid.New(), 1); err == nil {
				ok++
			}
		}
		if ok != 3 || repo.events[1].RegisteredCount != 3 {
			t.Fatalf("expected 3 tickets, got ok=%d count=%d", ok, repo.events[1].RegisteredCount)
		}
	})
}

func TestTicketService_CheckIn(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	holder := uuid.New()
	staff := uuid.New()

	setup := func(venue string, start time.Time) (*TicketService, *fakeTicketRepo, string) {
		repo := newFakeTicketRepo()
		ev := openEvent(1, now, 10)
		ev.TempatEvent = venue
		ev.TglMulaiEvent = start
		ev.TglSelesaiEvent = start.Add(2 * time.Hour)
		repo.addEvent(ev)
		repo.users[holder] = &userModel.UserModel{ID: holder, Name: "Budi", Email: "budi@example.com", Role: userModel.RoleUser}
		repo.users[staff] = &userModel.UserModel{ID: staff, Name: "Panitia", Role: userModel.RolePanitia}

		svc := NewTicketService(repo, clock.NewFixed(now))
		code, err := svc.Purchase(context.Background(), holder, 1)
		if err != nil {
			t.Fatalf("purchase: %v", err)
		}
		return svc, repo, code
	}

	t.Run("unknown code is not found", func(t *testing.T) {
		svc, _, _ := setup("Gedung A", now)
		_, err := svc.CheckIn(context.Background(), CheckInInput{CallerID: staff, CallerRole: userModel.RolePanitia, Code: uuid.NewString()})
		if !errors.Is(err, ErrTicketNotFound) {
			t.Fatalf("expected ErrTicketNotFound, got %v", err)
		}
	})

	t.Run("reused code hides holder from other users", func(t *testing.T) {
		svc, _, code := setup("Gedung A", now.Add(time.Hour))
		if _, err := svc.CheckIn(context.Background(), CheckInInput{CallerID: staff, CallerRole: userModel.RolePanitia, Code: code}); err != nil {
			t.Fatalf("staff check-in: %v", err)
		}

		_, err := svc.CheckIn(context.Background(), CheckInInput{CallerID: uuid.New(), CallerRole: userModel.RoleUser, Code: code})
		var used *AlreadyCheckedInError
		if !errors.As(err, &used) {
			t.Fatalf("expected AlreadyCheckedInError, got %v", err)
		}
		if used.UserName != "" || used.EventTitle != "" {
			t.Fatalf("stranger must not see holder details, got %q / %q", used.UserName, used.EventTitle)
		}

		_, err = svc.CheckIn(context.Background(), CheckInInput{CallerID: holder, CallerRole: userModel.RoleUser, Code: code})
		if !errors.As(err, &used) || used.UserName != "Budi" {
			t.Fatalf("owner should see own ticket details, got %v", err)
		}

		_, err = svc.CheckIn(context.Background(), CheckInInput{CallerID: staff, CallerRole: userModel.RoleAdmin, Code: code})
		if !errors.As(err, &used) || used.UserName != "Budi" || used.EventTitle == "" {
			t.Fatalf("staff should see holder details, got %v", err)
		}
	})

	t.Run("empty code is rejected", func(t *testing.T) {
		svc, _, _ := setup("Gedung A", now)
		_, err := svc.CheckIn(context.Background(), CheckInInput{CallerID: staff, CallerRole: userModel.RolePanitia, Code: "  "})
		if !errors.Is(err, ErrCodeRequired) {
			t.Fatalf("expected ErrCodeRequired, got %v", err)
		}
	})

	t.Run("staff check-in then reuse is a conflict", func(t *testing.T) {
		svc, repo, code := setup("Gedung A", now.Add(time.Hour))
		in := CheckInInput{CallerID: staff, CallerRole: userModel.RolePanitia, Code: code}

		res, err := svc.CheckIn(context.Background(), in)
		if err != nil {
			t.Fatalf("first check-in: %v", err)
		}
		if res.UserName != "Budi" || res.EventTitle == "" {
			t.Fatalf("unexpected result %+v", res)
		}
		if len(repo.checkIns) != 1 {
			t.Fatalf("expected 1 check-in row, got %d", len(repo.checkIns))
		}
		if repo.checkIns[0].CheckedInBy == nil || *repo.checkIns[0].CheckedInBy != staff {
			t.Fatalf("expected checked_in_by to be the staff id")
		}

		_, err = svc.CheckIn(context.Background(), in)
		var used *AlreadyCheckedInError
		if !errors.As(err, &used) {
			t.Fatalf("expected AlreadyCheckedInError, got %v", err)
		}
		if used.CheckedInAt == nil || !used.CheckedInAt.Equal(now) {
			t.Fatalf("expected original check-in time, got %v", used.CheckedInAt)
		}
		if used.Error() != "Tiket SUDAH DIGUNAKAN pukul 10:00" {
			t.Fatalf("unexpected message %q", used.Error())
		}
		if len(repo.checkIns) != 1 {
			t.Fatalf("expected still 1 check-in row, got %d", len(repo.checkIns))
		}
		if !repo.ticketByCode(code).IsCheckedIn {
			t.Fatalf("flag must stay true")
		}
	})

	t.Run("staff with wrong expected event", func(t *testing.T) {
		svc, _, code := setup("Gedung A", now)
		other := uint(7)
		_, err := svc.CheckIn(context.Background(), CheckInInput{CallerID: staff, CallerRole: userModel.RoleAdmin, Code: code, ExpectedEventID: &other})
		if !errors.Is(err, ErrOtherEvent) {
			t.Fatalf("expected ErrOtherEvent, got %v", err)
		}
	})

	t.Run("user self check-in rules", func(t *testing.T) {
		svc, _, code := setup("Gedung A", now.Add(-time.Hour))
		_, err := svc.CheckIn(context.Background(), CheckInInput{CallerID: holder, CallerRole: userModel.RoleUser, Code: code})
		if !errors.Is(err, ErrMustBeScanned) {
			t.Fatalf("offline venue: expected ErrMustBeScanned, got %v", err)
		}

		svc, _, code = setup(eventModel.VenueOnline, now.Add(time.Hour))
		_, err = svc.CheckIn(context.Background(), CheckInInput{CallerID: holder, CallerRole: userModel.RoleUser, Code: code})
		if !errors.Is(err, ErrEventNotStarted) {
			t.Fatalf("before start: expected ErrEventNotStarted, got %v", err)
		}

		_, err = svc.CheckIn(context.Background(), CheckInInput{CallerID: uuid.New(), CallerRole: userModel.RoleUser, Code: code})
		if !errors.Is(err, ErrNotTicketOwner) {
			t.Fatalf("stranger: expected ErrNotTicketOwner, got %v", err)
		}

		svc, repo, code := setup(eventModel.VenueOnline, now)
		if _, err := svc.CheckIn(context.Background(), CheckInInput{CallerID: holder, CallerRole: userModel.RoleUser, Code: code}); err != nil {
			t.Fatalf("online at start: expected success, got %v", err)
		}
		if repo.checkIns[0].CheckedInBy != nil {
			t.Fatalf("self check-in must not record a staff id")
		}
	})

	t.Run("lost race on the flag reports already used", func(t *testing.T) {
		svc, repo, code := setup("Gedung A", now)
		repo.flipBeforeMark = true
		_, err := svc.CheckIn(context.Background(), CheckInInput{CallerID: staff, CallerRole: userModel.RolePanitia, Code: code})
		var used *AlreadyCheckedInError
		if !errors.As(err, &used) {
			t.Fatalf("expected AlreadyCheckedInError, got %v", err)
		}
		if len(repo.checkIns) != 0 {
			t.Fatalf("expected no check-in row from the losing request")
		}
	})
}

func TestTicketService_ListMineStatuses(t *testing.T) {
	t.Parallel()

	post := 80
	rows := []dto.TicketRow{
		{Ticket: ticketModel.TicketModel{IsCheckedIn: false}, Event: eventModel.EventModel{TempatEvent: "Gedung"}},
		{Ticket: ticketModel.TicketModel{IsCheckedIn: false}, Event: eventModel.EventModel{TempatEvent: "Online"}},
		{Ticket: ticketModel.TicketModel{IsCheckedIn: true}, Event: eventModel.EventModel{}},
		{Ticket: ticketModel.TicketModel{IsCheckedIn: true}, Event: eventModel.EventModel{HasPrePostTest: true}},
		{Ticket: ticketModel.TicketModel{IsCheckedIn: true}, Event: eventModel.EventModel{HasPrePostTest: true}, HasScore: true},
		{Ticket: ticketModel.TicketModel{IsCheckedIn: true}, Event: eventModel.EventModel{HasPrePostTest: true}, HasScore: true, PostScore: &post},
	}
	want := [][2]string{
		{dto.StatusReady, "Tersedia"},
		{dto.StatusReady, "Gabung Online"},
		{dto.StatusDone, "Selesai"},
		{dto.StatusPreTest, "Isi Pre-Test"},
		{dto.StatusPostTest, "Isi Post-Test"},
		{dto.StatusDone, "Selesai"},
	}
	for i, r := range rows {
		s, l := ticketStatus(r)
		if s != want[i][0] || l != want[i][1] {
			t.Fatalf("row %d: got (%s, %s), want %v", i, s, l, want[i])
		}
	}
}

func TestTicketService_JoinURLAndScanner(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	user := uuid.New()
	link := "https://meet.example.com/abc"

	repo := newFakeTicketRepo()
	online := openEvent(1, now, 10)
	online.TempatEvent = eventModel.VenueOnline
	online.OnlineEventURL = &link
	online.TglMulaiEvent = now.Add(4 * time.Hour)
	repo.addEvent(online)
	offline := openEvent(2, now, 10)
	repo.addEvent(offline)
	svc := NewTicketService(repo, clock.NewFixed(now))

	if _, err := svc.JoinURL(context.Background(), user, 1); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
	if _, err := svc.JoinURL(context.Background(), user, 2); !errors.Is(err, ErrOfflineEvent) {
		t.Fatalf("expected ErrOfflineEvent, got %v", err)
	}
	if _, err := svc.Purchase(context.Background(), user, 1); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	got, err := svc.JoinURL(context.Background(), user, 1)
	if err != nil || got != link {
		t.Fatalf("expected join url, got %q %v", got, err)
	}

	if _, err := svc.ScannerGate(context.Background(), userModel.RolePanitia, 1); !errors.Is(err, ErrScannerNotOpenYet) {
		t.Fatalf("panitia 4h before start: expected ErrScannerNotOpenYet, got %v", err)
	}
	if _, err := svc.ScannerGate(context.Background(), userModel.RoleAdmin, 1); err != nil {
		t.Fatalf("admin is always allowed, got %v", err)
	}
	svc = NewTicketService(repo, clock.NewFixed(now.Add(time.Hour)))
	if _, err := svc.ScannerGate(context.Background(), userModel.RolePanitia, 1); err != nil {
		t.Fatalf("panitia 3h before start: expected allowed, got %v", err)
	}
}

/* ===================== fakes ===================== */

func openEvent(id uint, now time.Time, slot int) eventModel.EventModel {
	return eventModel.EventModel{
		ID:                  id,
		Title:               "Pelatihan Digital Marketing",
		JenisEvent:          eventModel.JenisPublic,
		TempatEvent:         "Gedung A",
		SlotPeserta:         slot,
		TglBukaPendaftaran:  now.Add(-24 * time.Hour),
		TglTutupPendaftaran: now.Add(24 * time.Hour),
		TglMulaiEvent:       now.Add(48 * time.Hour),
		TglSelesaiEvent:     now.Add(50 * time.Hour),
	}
}

type fakeTicketRepo struct {
	events     map[uint]*eventModel.EventModel
	users      map[uuid.UUID]*userModel.UserModel
	businesses map[uuid.UUID]int64
	tickets    []*ticketModel.TicketModel
	checkIns   []ticketModel.CheckInModel

	flipBeforeMark bool
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		events:     map[uint]*eventModel.EventModel{},
		users:      map[uuid.UUID]*userModel.UserModel{},
		businesses: map[uuid.UUID]int64{},
	}
}

func (f *fakeTicketRepo) addEvent(ev eventModel.EventModel) {
	e := ev
	f.events[e.ID] = &e
}

func (f *fakeTicketRepo) ticketByCode(code string) *ticketModel.TicketModel {
	for _, t := range f.tickets {
		if t.TicketCode == code {
			return t
		}
	}
	return nil
}

// WithTx mengembalikan counter & tiket ke snapshot saat fn gagal.
func (f *fakeTicketRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	counts := map[uint]int{}
	for id, e := range f.events {
		counts[id] = e.RegisteredCount
	}
	nTickets, nCheckIns := len(f.tickets), len(f.checkIns)

	if err := fn(ctx); err != nil {
		for id, c := range counts {
			f.events[id].RegisteredCount = c
		}
		f.tickets = f.tickets[:nTickets]
		f.checkIns = f.checkIns[:nCheckIns]
		return err
	}
	return nil
}

func (f *fakeTicketRepo) FindTicket(_ context.Context, userID uuid.UUID, eventID uint) (*ticketModel.TicketModel, error) {
	for _, t := range f.tickets {
		if t.UserID == userID && t.EventID == eventID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) FindTicketByCode(_ context.Context, code string) (*ticketModel.TicketModel, error) {
	if t := f.ticketByCode(code); t != nil {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTicketRepo) GetEvent(_ context.Context, id uint) (*eventModel.EventModel, error) {
	if e, ok := f.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTicketRepo) GetUser(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return &userModel.UserModel{ID: id, Name: "Peserta", Role: userModel.RoleUser}, nil
}

func (f *fakeTicketRepo) CountBusinesses(_ context.Context, userID uuid.UUID) (int64, error) {
	return f.businesses[userID], nil
}

func (f *fakeTicketRepo) IncrementRegistered(_ context.Context, eventID uint) (bool, error) {
	e := f.events[eventID]
	if e.RegisteredCount >= e.SlotPeserta {
		return false, nil
	}
	e.RegisteredCount++
	return true, nil
}

func (f *fakeTicketRepo) CreateTicket(_ context.Context, t *ticketModel.TicketModel) error {
	for _, x := range f.tickets {
		if x.UserID == t.UserID && x.EventID == t.EventID {
			return ErrAlreadyRegistered
		}
	}
	t.ID = uint(len(f.tickets) + 1)
	cp := *t
	f.tickets = append(f.tickets, &cp)
	return nil
}

func (f *fakeTicketRepo) MarkCheckedIn(_ context.Context, ticketID uint) (bool, error) {
	for _, t := range f.tickets {
		if t.ID != ticketID {
			continue
		}
		if f.flipBeforeMark {
			t.IsCheckedIn = true
		}
		if t.IsCheckedIn {
			return false, nil
		}
		t.IsCheckedIn = true
		return true, nil
	}
	return false, nil
}

func (f *fakeTicketRepo) CreateCheckIn(_ context.Context, ci *ticketModel.CheckInModel) error {
	f.checkIns = append(f.checkIns, *ci)
	return nil
}

func (f *fakeTicketRepo) FindCheckIn(_ context.Context, ticketID uint) (*ticketModel.CheckInModel, error) {
	for _, ci := range f.checkIns {
		if ci.TicketID == ticketID {
			cp := ci
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) ListUserTickets(_ context.Context, userID uuid.UUID) ([]dto.TicketRow, error) {
	var rows []dto.TicketRow
	for _, t := range f.tickets {
		if t.UserID == userID {
			rows = append(rows, dto.TicketRow{Ticket: *t, Event: *f.events[t.EventID]})
		}
	}
	return rows, nil
}
