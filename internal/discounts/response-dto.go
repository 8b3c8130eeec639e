package discounts

import "time"

type DiscountResponse struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Amount        int64     `json:"amount"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	Description   string    `json:"description"`
}

func (d Discount) ToResponse() DiscountResponse {
	return DiscountResponse{
		ID:            d.ID,
		Code:          d.Code,
		Amount:        d.Amount,
		StartDateTime: d.StartDateTime,
		EndDateTime:   d.EndDateTime,
		Description:   d.Description,
	}
}
