package discounts

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Discount, error)
	FindAvailable(ctx context.Context, now time.Time) ([]Discount, error)
	FindPage(ctx context.Context, page, limit int) ([]Discount, int64, error)
	FindByID(ctx context.Context, id int64) (*Discount, error)
	Create(ctx context.Context, discount *Discount) error
	Update(ctx context.Context, discount *Discount) error
	Delete(ctx context.Context, id int64) error
	IsFree(ctx context.Context, chk duplicate.Check) (bool, error)
	CountTrips(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Discount, error) {
	var discounts []Discount
	if err := r.db.WithContext(ctx).Order("id").Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *repository) FindAvailable(ctx context.Context, now time.Time) ([]Discount, error) {
	var discounts []Discount
	err := r.db.WithContext(ctx).
		Where("start_date_time <= ? AND end_date_time >= ?", now, now).
		Order("end_date_time").
		Find(&discounts).Error
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]Discount, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Discount{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var discounts []Discount
	err := r.db.WithContext(ctx).Order("id").Offset(page * limit).Limit(limit).Find(&discounts).Error
	if err != nil {
		return nil, 0, err
	}
	return discounts, total, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Discount, error) {
	var discount Discount
	if err := r.db.WithContext(ctx).First(&discount, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &discount, nil
}

func (r *repository) Create(ctx context.Context, discount *Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *repository) Update(ctx context.Context, discount *Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Discount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDiscountNotFound
	}
	return nil
}

func (r *repository) IsFree(ctx context.Context, chk duplicate.Check) (bool, error) {
	return duplicate.IsFree(ctx, r.db, &Discount{}, chk)
}

func (r *repository) CountTrips(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("trips").Where("discount_id = ?", id).Count(&count).Error
	return count, err
}
