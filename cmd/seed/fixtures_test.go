package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledFixturesParse(t *testing.T) {
	f, err := ParseFixtures(defaultFixtures)
	require.NoError(t, err)

	assert.Contains(t, f.Provinces, "Đà Lạt")
	assert.Len(t, f.Coaches, 3)
	require.NotEmpty(t, f.Discounts)
	assert.Equal(t, 6, int(f.Discounts[0].Start.Month()))
	assert.Equal(t, "0901000111", f.Drivers[0].Phone)
}

func TestParseFixturesRejectsUnknownValues(t *testing.T) {
	_, err := ParseFixtures([]byte("coaches:\n  - licensePlate: X\n    coachType: BOAT\n"))
	assert.ErrorContains(t, err, "unknown coach type")

	_, err = ParseFixtures([]byte("users:\n  - username: u\n    roles:\n      - code: ROLE_PILOT\n"))
	assert.ErrorContains(t, err, "unknown role")

	_, err = ParseFixtures([]byte("drivers:\n  - dob: 14/03/1985\n"))
	assert.Error(t, err)
}

func TestTripFixtureResolvesReferences(t *testing.T) {
	provinces := map[string]int64{"A": 1, "B": 2}
	coaches := map[string]int64{"51B": 3}
	drivers := map[string]int64{"B2": 4}
	discounts := map[string]int64{"SALE": 5}

	f := TripFixture{Source: "A", Destination: "B", Coach: "51B", Driver: "B2", Discount: "SALE",
		Price: 100000, Departure: "2026-06-15 22:00", Duration: 8}
	trip, err := f.toTrip(provinces, coaches, drivers, discounts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), trip.SourceID)
	assert.Equal(t, int64(2), trip.DestinationID)
	require.NotNil(t, trip.DiscountID)
	assert.Equal(t, int64(5), *trip.DiscountID)
	assert.Equal(t, 22, trip.DepartureDateTime.Hour())

	f.Destination = "A"
	_, err = f.toTrip(provinces, coaches, drivers, discounts)
	assert.ErrorContains(t, err, "both")

	f.Destination = "Z"
	_, err = f.toTrip(provinces, coaches, drivers, discounts)
	assert.ErrorContains(t, err, "unknown province")
}
