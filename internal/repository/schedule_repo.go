package repository

import (
	"context"
	"errors"

	"github.com/clovermuaythai/booking-service/internal/models"
	"gorm.io/gorm"
)

type postgresScheduleRepository struct {
	db *gorm.DB
}

func NewPostgresScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

func (r *postgresScheduleRepository) List(ctx context.Context) ([]models.ClassTemplate, error) {
	var templates []models.ClassTemplate
	if err := conn(ctx, r.db).WithContext(ctx).Order("id ASC").Find(&templates).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return templates, nil
}

func (r *postgresScheduleRepository) FindByID(ctx context.Context, id string) (*models.ClassTemplate, error) {
	var tpl models.ClassTemplate
	if err := conn(ctx, r.db).WithContext(ctx).First(&tpl, "id = ?", id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &tpl, nil
}

func (r *postgresScheduleRepository) Add(ctx context.Context, tpl *models.ClassTemplate) error {
	err := r.db.WithContext(ctx).Create(tpl).Error
	// The template id is derived from (day, start time), so a key collision
	// means that slot is already on the timetable.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return mapGormErr(err)
}

func (r *postgresScheduleRepository) Remove(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.ClassTemplate{}, "id = ?", id)
	if res.Error != nil {
		return mapGormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
