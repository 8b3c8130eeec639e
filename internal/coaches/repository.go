package coaches

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Coach, error)
	FindPage(ctx context.Context, page, limit int) ([]Coach, int64, error)
	FindByID(ctx context.Context, id int64) (*Coach, error)
	Create(ctx context.Context, coach *Coach) error
	Update(ctx context.Context, coach *Coach) error
	Delete(ctx context.Context, id int64) error
	IsFree(ctx context.Context, chk duplicate.Check) (bool, error)
	CountTrips(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Coach, error) {
	var coaches []Coach
	if err := r.db.WithContext(ctx).Order("id").Find(&coaches).Error; err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]Coach, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Coach{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var coaches []Coach
	err := r.db.WithContext(ctx).Order("id").Offset(page * limit).Limit(limit).Find(&coaches).Error
	if err != nil {
		return nil, 0, err
	}
	return coaches, total, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Coach, error) {
	var coach Coach
	if err := r.db.WithContext(ctx).First(&coach, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return &coach, nil
}

func (r *repository) Create(ctx context.Context, coach *Coach) error {
	return r.db.WithContext(ctx).Create(coach).Error
}

func (r *repository) Update(ctx context.Context, coach *Coach) error {
	return r.db.WithContext(ctx).Save(coach).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Coach{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCoachNotFound
	}
	return nil
}

func (r *repository) IsFree(ctx context.Context, chk duplicate.Check) (bool, error) {
	return duplicate.IsFree(ctx, r.db, &Coach{}, chk)
}

func (r *repository) CountTrips(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("trips").Where("coach_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Coach{}).Count(&count).Error
	return count, err
}
