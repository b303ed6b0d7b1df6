package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assessmentModel "okoce_backend/internals/features/assessments/model"
	eventModel "okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/features/tickets/tickets/dto"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
	"okoce_backend/internals/features/tickets/tickets/service"
	businessModel "okoce_backend/internals/features/umkm/businesses/model"
	userModel "okoce_backend/internals/features/users/user/model"
	helper "okoce_backend/internals/helpers"
)

type txKey struct{}

type TicketRepository struct {
	DB *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{DB: db}
}

// conn: tx aktif dari context, atau koneksi biasa.
func (r *TicketRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.DB.WithContext(ctx)
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (r *TicketRepository) FindTicket(ctx context.Context, userID uuid.UUID, eventID uint) (*ticketModel.TicketModel, error) {
	var t ticketModel.TicketModel
	err := r.conn(ctx).Where("user_id = ? AND event_id = ?", userID, eventID).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) FindTicketByCode(ctx context.Context, code string) (*ticketModel.TicketModel, error) {
	var t ticketModel.TicketModel
	err := r.conn(ctx).Where("ticket_code = ?", code).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) GetEvent(ctx context.Context, eventID uint) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	err := r.conn(ctx).Take(&ev, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *TicketRepository) GetUser(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := r.conn(ctx).Where("id = ?", userID).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *TicketRepository) CountBusinesses(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&businessModel.BusinessProfileModel{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *TicketRepository) IncrementRegistered(ctx context.Context, eventID uint) (bool, error) {
	res := r.conn(ctx).Model(&eventModel.EventModel{}).
		Where("id = ? AND registered_count < slot_peserta", eventID).
		UpdateColumn("registered_count", gorm.Expr("registered_count + 1"))
	if res.Error != nil {
		if helper.IsCheckViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *TicketRepository) CreateTicket(ctx context.Context, t *ticketModel.TicketModel) error {
	if err := r.conn(ctx).Create(t).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return service.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *TicketRepository) MarkCheckedIn(ctx context.Context, ticketID uint) (bool, error) {
	res := r.conn(ctx).Model(&ticketModel.TicketModel{}).
		Where("id = ? AND is_checked_in = ?", ticketID, false).
		UpdateColumn("is_checked_in", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *TicketRepository) CreateCheckIn(ctx context.Context, ci *ticketModel.CheckInModel) error {
	return r.conn(ctx).Create(ci).Error
}

func (r *TicketRepository) FindCheckIn(ctx context.Context, ticketID uint) (*ticketModel.CheckInModel, error) {
	var ci ticketModel.CheckInModel
	err := r.conn(ctx).Where("ticket_id = ?", ticketID).Take(&ci).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

// ListUserTickets: tiket user + event + skor, urut tanggal mulai event terbaru.
func (r *TicketRepository) ListUserTickets(ctx context.Context, userID uuid.UUID) ([]dto.TicketRow, error) {
	var tickets []ticketModel.TicketModel
	if err := r.conn(ctx).
		Joins("JOIN events ON events.id = tickets.event_id").
		Where("tickets.user_id = ?", userID).
		Order("events.tgl_mulai_event DESC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return []dto.TicketRow{}, nil
	}

	eventIDs := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		eventIDs = append(eventIDs, t.EventID)
	}

	var events []eventModel.EventModel
	if err := r.conn(ctx).Where("id IN ?", eventIDs).Find(&events).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]eventModel.EventModel, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	var scores []assessmentModel.UserTestScoreModel
	if err := r.conn(ctx).
		Where("user_id = ? AND event_id IN ?", userID, eventIDs).
		Find(&scores).Error; err != nil {
		return nil, err
	}
	scoreBy := make(map[uint]assessmentModel.UserTestScoreModel, len(scores))
	for _, s := range scores {
		scoreBy[s.EventID] = s
	}

	rows := make([]dto.TicketRow, 0, len(tickets))
	for _, t := range tickets {
		row := dto.TicketRow{Ticket: t, Event: byID[t.EventID]}
		if s, ok := scoreBy[t.EventID]; ok {
			row.HasScore = true
			row.PostScore = s.PostTestScore
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var _ service.TicketRepository = (*TicketRepository)(nil)
