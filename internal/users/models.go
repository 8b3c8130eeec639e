package users

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID          int64     `gorm:"primaryKey"`
	Username    string    `gorm:"uniqueIndex;size:50;not null"`
	Password    string    `gorm:"not null"`
	FirstName   string    `gorm:"size:100;not null"`
	LastName    string    `gorm:"size:100;not null"`
	Email       string    `gorm:"uniqueIndex;size:100;not null"`
	Phone       string    `gorm:"uniqueIndex;size:15;not null"`
	Dob         time.Time `gorm:"type:date"`
	Gender      bool
	Address     string `gorm:"size:255"`
	Active      bool   `gorm:"not null;default:true"`
	Permissions []UserPermission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PermissionMap folds the permission rows into role -> screens.
func (u User) PermissionMap() permission.Map {
	m := make(permission.Map, len(u.Permissions))
	for _, p := range u.Permissions {
		screens := m[p.RoleCode]
		if screens == nil {
			screens = []string{}
		}
		m[p.RoleCode] = append(screens, p.Screens...)
	}
	return m
}

// UserPermission grants one role to a user, limited to Screens. Admin and
// staff rows usually carry no screens.
type UserPermission struct {
	ID       int64      `gorm:"primaryKey"`
	UserID   int64      `gorm:"index;not null"`
	RoleCode string     `gorm:"size:30;not null"`
	Screens  ScreenList `gorm:"type:text"`
}

// ScreenList is stored as a JSON array.
type ScreenList []string

func (s ScreenList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *ScreenList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = ScreenList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported screen list type %T", src)
	}
	if len(raw) == 0 {
		*s = ScreenList{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(s))
}

// permissionRows turns a map back into rows for userID.
func permissionRows(userID int64, m permission.Map) []UserPermission {
	rows := make([]UserPermission, 0, len(m))
	for _, role := range m.Roles() {
		rows = append(rows, UserPermission{UserID: userID, RoleCode: role, Screens: ScreenList(m[role])})
	}
	return rows
}

var duplicateColumns = map[string]string{
	"username": "username",
	"email":    "email",
	"phone":    "phone",
}
