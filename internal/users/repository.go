package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
)

type Repository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindPage(ctx context.Context, page, limit int) ([]User, int64, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Create inserts the user and its permission rows in one transaction.
	Create(ctx context.Context, user *User, perms permission.Map) error
	// Update saves the user and replaces its permission rows.
	Update(ctx context.Context, user *User, perms permission.Map) error
	UpdatePassword(ctx context.Context, id int64, hashed string) error
	Delete(ctx context.Context, id int64) error
	IsFree(ctx context.Context, chk duplicate.Check) (bool, error)
	CountBookings(ctx context.Context, id int64) (int64, error)
	// CountByRole counts active users holding role.
	CountByRole(ctx context.Context, role string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withPermissions(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Permissions")
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.withPermissions(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := r.withPermissions(ctx).Order("id").Offset(page * limit).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repository) first(ctx context.Context, query string, arg interface{}) (*User, error) {
	var user User
	if err := r.withPermissions(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repository) Create(ctx context.Context, user *User, perms permission.Map) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Permissions").Create(user).Error; err != nil {
			return err
		}
		rows := permissionRows(user.ID, perms)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		user.Permissions = rows
		return nil
	})
}

func (r *repository) Update(ctx context.Context, user *User, perms permission.Map) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Permissions").Save(user).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&UserPermission{}).Error; err != nil {
			return err
		}
		rows := permissionRows(user.ID, perms)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		user.Permissions = rows
		return nil
	})
}

func (r *repository) UpdatePassword(ctx context.Context, id int64, hashed string) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password", hashed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&UserPermission{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *repository) IsFree(ctx context.Context, chk duplicate.Check) (bool, error) {
	return duplicate.IsFree(ctx, r.db, &User{}, chk)
}

func (r *repository) CountBookings(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("bookings").Where("user_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Joins("JOIN user_permissions ON user_permissions.user_id = users.id").
		Where("user_permissions.role_code = ? AND users.active = ?", role, true).
		Distinct("users.id").
		Count(&count).Error
	return count, err
}
