package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"okoce_backend/internals/features/events/events/dto"
	"okoce_backend/internals/features/events/events/model"
	"okoce_backend/internals/features/events/events/service"
	questionModel "okoce_backend/internals/features/events/questions/model"
	questionRepo "okoce_backend/internals/features/events/questions/repository"
	ticketModel "okoce_backend/internals/features/tickets/tickets/model"
	helper "okoce_backend/internals/helpers"
	"okoce_backend/internals/helpers/clock"
)

type txKey struct{}

type EventRepository struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewEventRepository(db *gorm.DB, clk clock.Clock) *EventRepository {
	return &EventRepository{DB: db, Clock: clk}
}

func (r *EventRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.DB.WithContext(ctx)
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

/* ====================== READ ====================== */

func (r *EventRepository) GetEvent(ctx context.Context, id uint) (*model.EventModel, error) {
	var e model.EventModel
	err := r.conn(ctx).Where("id = ?", id).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) ListPublic(ctx context.Context, offset, limit int) ([]model.EventModel, int64, error) {
	q := r.conn(ctx).Model(&model.EventModel{}).Scopes(model.ScopePubliclyListable(r.Clock.Now()))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.EventModel
	err := q.Order("tgl_mulai_event ASC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

func (r *EventRepository) ListJoinable(ctx context.Context) ([]model.EventModel, error) {
	var rows []model.EventModel
	err := r.conn(ctx).
		Scopes(model.ScopeJoinable(r.Clock.Now())).
		Order("tgl_mulai_event ASC").
		Find(&rows).Error
	return rows, err
}

func (r *EventRepository) ListByArchived(ctx context.Context, archived bool, f service.ListFilter) ([]model.EventModel, int64, error) {
	q := r.conn(ctx).Model(&model.EventModel{}).Where("is_archived = ?", archived)
	if f.Search != "" {
		q = q.Where("title ILIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	order := "tgl_mulai_event ASC"
	if archived {
		order = "tgl_mulai_event DESC"
	}
	var rows []model.EventModel
	err := q.Order(order).Offset(f.Offset).Limit(f.Limit).Find(&rows).Error
	return rows, total, err
}

func (r *EventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.EventModel, error) {
	var rows []model.EventModel
	err := r.conn(ctx).
		Where("tgl_mulai_event >= ? AND tgl_mulai_event < ?", from, to).
		Where("is_archived = ?", false).
		Order("tgl_mulai_event ASC").
		Find(&rows).Error
	return rows, err
}

/* ====================== WRITE ====================== */

func (r *EventRepository) CreateEvent(ctx context.Context, e *model.EventModel) error {
	return r.conn(ctx).Create(e).Error
}

// SaveEvent tidak menyentuh registered_count (dijaga oleh pembelian tiket).
func (r *EventRepository) SaveEvent(ctx context.Context, e *model.EventModel) error {
	err := r.conn(ctx).Model(e).Select("*").Omit("id", "registered_count", "created_at").Updates(e).Error
	if helper.IsCheckViolation(err) {
		return service.ErrSlotTooSmall
	}
	return err
}

func (r *EventRepository) ReplaceQuestions(ctx context.Context, eventID uint, qs []questionModel.EventQuestionModel) error {
	return questionRepo.Replace(r.conn(ctx), eventID, qs)
}

func (r *EventRepository) ListQuestions(ctx context.Context, eventID uint) ([]questionModel.EventQuestionModel, error) {
	return questionRepo.ListByEvent(ctx, r.conn(ctx), eventID)
}

func (r *EventRepository) SetArchived(ctx context.Context, ids []uint, archived bool) (int64, error) {
	ids64 := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		ids64 = append(ids64, int64(id))
	}
	res := r.conn(ctx).Model(&model.EventModel{}).
		Where("id = ANY(?)", ids64).
		Update("is_archived", archived)
	return res.RowsAffected, res.Error
}

/* ====================== COUNTS / PESERTA ====================== */

func (r *EventRepository) CountTickets(ctx context.Context, eventID uint) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&ticketModel.TicketModel{}).Where("event_id = ?", eventID).Count(&n).Error
	return n, err
}

func (r *EventRepository) CountCheckedIn(ctx context.Context, eventID uint) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&ticketModel.TicketModel{}).
		Where("event_id = ? AND is_checked_in = ?", eventID, true).
		Count(&n).Error
	return n, err
}

func (r *EventRepository) ListParticipants(ctx context.Context, eventID uint) ([]dto.Participant, error) {
	var rows []dto.Participant
	err := r.conn(ctx).
		Table("tickets AS t").
		Select(`t.ticket_code, t.user_id, u.name, u.email, u.phone_number, u.okoce_id,
			t.is_checked_in, ci.timestamp AS checked_in_at`).
		Joins("JOIN users u ON u.id = t.user_id").
		Joins("LEFT JOIN check_ins ci ON ci.ticket_id = t.id").
		Where("t.event_id = ?", eventID).
		Order("t.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

var _ service.EventRepository = (*EventRepository)(nil)
