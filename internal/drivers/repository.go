package drivers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Driver, error)
	FindPage(ctx context.Context, page, limit int) ([]Driver, int64, error)
	FindByID(ctx context.Context, id int64) (*Driver, error)
	Create(ctx context.Context, driver *Driver) error
	Update(ctx context.Context, driver *Driver) error
	Delete(ctx context.Context, id int64) error
	IsFree(ctx context.Context, chk duplicate.Check) (bool, error)
	CountTrips(ctx context.Context, id int64) (int64, error)
	// CountAvailable counts drivers who have not quit.
	CountAvailable(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Driver, error) {
	var drivers []Driver
	if err := r.db.WithContext(ctx).Order("id").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]Driver, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Driver{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var drivers []Driver
	err := r.db.WithContext(ctx).Order("id").Offset(page * limit).Limit(limit).Find(&drivers).Error
	if err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Driver, error) {
	var driver Driver
	if err := r.db.WithContext(ctx).First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	return &driver, nil
}

func (r *repository) Create(ctx context.Context, driver *Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

func (r *repository) Update(ctx context.Context, driver *Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Driver{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDriverNotFound
	}
	return nil
}

func (r *repository) IsFree(ctx context.Context, chk duplicate.Check) (bool, error) {
	return duplicate.IsFree(ctx, r.db, &Driver{}, chk)
}

func (r *repository) CountTrips(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("trips").Where("driver_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Driver{}).Where("quit = ?", false).Count(&count).Error
	return count, err
}
