package repository

import (
	"context"
	"time"

	"github.com/clovermuaythai/booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postgresReservationStore struct {
	db *gorm.DB
}

func NewPostgresReservationStore(db *gorm.DB) ReservationStore {
	return &postgresReservationStore{db: db}
}

func (s *postgresReservationStore) ListAll(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := conn(ctx, s.db).WithContext(ctx).Order("created_at ASC").Find(&reservations).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return reservations, nil
}

func (s *postgresReservationStore) ListForSlot(ctx context.Context, templateID string, date time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := conn(ctx, s.db).WithContext(ctx).
		Where("template_id = ? AND occurrence_date = ?", templateID, models.DateOnly(date)).
		Order("created_at ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return reservations, nil
}

func (s *postgresReservationStore) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := conn(ctx, s.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurrence_date ASC, start_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return reservations, nil
}

func (s *postgresReservationStore) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := conn(ctx, s.db).WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &res, nil
}

func (s *postgresReservationStore) Append(ctx context.Context, res *models.Reservation) error {
	// The unique index on (user_id, template_id, occurrence_date) backstops
	// the duplicate check even if two requests slip past it.
	return mapGormErr(conn(ctx, s.db).WithContext(ctx).Create(res).Error)
}

func (s *postgresReservationStore) Delete(ctx context.Context, id, userID string) (*models.Reservation, error) {
	var res models.Reservation
	err := s.db.WithContext(ctx).First(&res, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapGormErr(err)
	}

	del := s.db.WithContext(ctx).Delete(&models.Reservation{}, "id = ? AND user_id = ?", id, userID)
	if del.Error != nil {
		return nil, mapGormErr(del.Error)
	}
	if del.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (s *postgresReservationStore) DeleteByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := s.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, mapGormErr(err)
	}

	del := s.db.WithContext(ctx).Delete(&models.Reservation{}, "id = ?", id)
	if del.Error != nil {
		return nil, mapGormErr(del.Error)
	}
	if del.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (s *postgresReservationStore) DeleteByTemplate(ctx context.Context, templateID string) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Reservation{}, "template_id = ?", templateID)
	if res.Error != nil {
		return 0, mapGormErr(res.Error)
	}
	return res.RowsAffected, nil
}

// LockSlot serializes concurrent bookings for one class occurrence by taking
// a row-level lock on the template inside a transaction. Reads and writes
// issued by fn run on the transaction via the returned context.
func (s *postgresReservationStore) LockSlot(ctx context.Context, templateID string, date time.Time, fn func(ctx context.Context) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tpl models.ClassTemplate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tpl, "id = ?", templateID).Error; err != nil {
			return mapGormErr(err)
		}
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
