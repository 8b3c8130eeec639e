package tripsearch

import (
	"errors"
	"time"
)

// ErrStaleSearch is returned to a Find that finished after a newer search
// (or a swap) superseded it. Its result was discarded.
var ErrStaleSearch = errors.New("search superseded by a newer one")

// ErrIncompleteCriteria means source or destination is missing.
var ErrIncompleteCriteria = errors.New("source and destination are required")

// Criteria is what the user typed into the search form.
type Criteria struct {
	SourceID      int64     `json:"sourceId"`
	DestinationID int64     `json:"destinationId"`
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
}

func (c Criteria) Complete() bool {
	return c.SourceID > 0 && c.DestinationID > 0
}

// TripSummary is a trip row joined with its coach, route and discount.
type TripSummary struct {
	ID                int64     `json:"id"`
	SourceID          int64     `json:"sourceId"`
	SourceName        string    `json:"sourceName"`
	DestinationID     int64     `json:"destinationId"`
	DestinationName   string    `json:"destinationName"`
	DepartureDateTime time.Time `json:"departureDateTime"`
	Duration          int       `json:"duration"`
	Price             int64     `json:"price"`
	DiscountID        *int64    `json:"discountId,omitempty"`
	DiscountAmount    int64     `json:"discountAmount"`
	CoachID           int64     `json:"coachId"`
	CoachName         string    `json:"coachName"`
	CoachType         string    `json:"coachType"`
	Capacity          int       `json:"capacity"`
	LicensePlate      string    `json:"licensePlate"`
}

// TripAvailability is one search hit with its remaining seats.
type TripAvailability struct {
	TripSummary
	OrderedCount int `json:"orderedCount"`
	Left         int `json:"left"`
}

// SearchRequest is the body of POST /trips/search.
type SearchRequest struct {
	SourceID      int64  `json:"sourceId" binding:"required,gt=0"`
	DestinationID int64  `json:"destinationId" binding:"required,gt=0"`
	From          string `json:"from" binding:"required"`
	To            string `json:"to" binding:"required"`
}

// SearchResponse is returned by the search endpoints.
type SearchResponse struct {
	Criteria Criteria           `json:"criteria"`
	Trips    []TripAvailability `json:"trips"`
}
