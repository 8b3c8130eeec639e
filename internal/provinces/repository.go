package provinces

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Province, error)
	// Upsert inserts provinces missing by name; used by the seeder.
	Upsert(ctx context.Context, names []string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Province, error) {
	var provinces []Province
	if err := r.db.WithContext(ctx).Order("name").Find(&provinces).Error; err != nil {
		return nil, err
	}
	return provinces, nil
}

func (r *repository) Upsert(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	rows := make([]Province, 0, len(names))
	for _, n := range names {
		rows = append(rows, Province{Name: n})
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}
