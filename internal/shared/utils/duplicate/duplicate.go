package duplicate

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

// Mode tells whether the value is checked for a new row or for an update of
// the row with Check.ID.
type Mode string

const (
	ModeAdd    Mode = "add"
	ModeUpdate Mode = "update"
)

// Check is one GET /{resource}/checkDuplicate/{mode}/{id}/{field}/{value}.
type Check struct {
	Mode   Mode
	ID     int64
	Field  string
	Column string
	Value  string
}

// Parse reads the path parameters. columns maps the API field names a
// resource allows to their database columns.
func Parse(c *gin.Context, columns map[string]string) (Check, error) {
	mode := Mode(c.Param("mode"))
	if mode != ModeAdd && mode != ModeUpdate {
		return Check{}, apperror.Invalid("mode", "must be add or update")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Check{}, apperror.Invalid("id", "must be an integer")
	}
	if mode == ModeUpdate && id <= 0 {
		return Check{}, apperror.Invalid("id", "must be positive in update mode")
	}

	field := c.Param("field")
	column, ok := columns[field]
	if !ok {
		return Check{}, apperror.Invalid("field", "duplicate check is not supported for "+field)
	}

	return Check{Mode: mode, ID: id, Field: field, Column: column, Value: c.Param("value")}, nil
}

// IsFree reports whether no other row of model already uses the value.
func IsFree(ctx context.Context, db *gorm.DB, model interface{}, chk Check) (bool, error) {
	q := db.WithContext(ctx).Model(model).Where(chk.Column+" = ?", chk.Value)
	if chk.Mode == ModeUpdate {
		q = q.Where("id <> ?", chk.ID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// ForAdd builds the check used before inserting a row.
func ForAdd(column, value string) Check {
	return Check{Mode: ModeAdd, Column: column, Value: value}
}

// ForUpdate builds the check used before updating row id.
func ForUpdate(id int64, column, value string) Check {
	return Check{Mode: ModeUpdate, ID: id, Column: column, Value: value}
}
