package provinces

// Province is a trip endpoint. The list is seeded and read-only over HTTP.
type Province struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null"`
}

type ProvinceResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p Province) ToResponse() ProvinceResponse {
	return ProvinceResponse{ID: p.ID, Name: p.Name}
}
