package repository

import (
	"context"

	"gorm.io/gorm"

	"okoce_backend/internals/features/events/questions/model"
)

// Replace menghapus semua soal event lalu menyisipkan set baru. Panggil di dalam transaksi.
func Replace(db *gorm.DB, eventID uint, qs []model.EventQuestionModel) error {
	if err := DeleteByEvent(db, eventID); err != nil {
		return err
	}
	if len(qs) == 0 {
		return nil
	}
	for i := range qs {
		qs[i].EventID = eventID
	}
	return db.Create(&qs).Error
}

func DeleteByEvent(db *gorm.DB, eventID uint) error {
	return db.Where("event_id = ?", eventID).Delete(&model.EventQuestionModel{}).Error
}

// ListByEvent urut nomor soal.
func ListByEvent(ctx context.Context, db *gorm.DB, eventID uint) ([]model.EventQuestionModel, error) {
	var qs []model.EventQuestionModel
	err := db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("question_number ASC").
		Find(&qs).Error
	return qs, err
}
