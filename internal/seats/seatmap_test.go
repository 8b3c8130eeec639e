package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayouts(t *testing.T) {
	assert.Equal(t, 36, LayoutSize(CoachTypeBed))
	assert.Equal(t, 36, LayoutSize(CoachTypeLimousine))
	assert.Equal(t, 45, LayoutSize(CoachTypeChair))

	m := NewSeatMap(CoachTypeBed, 0)
	stair, ok := m.Stair(18)
	require.True(t, ok)
	assert.Equal(t, StairDown, stair)
	stair, _ = m.Stair(19)
	assert.Equal(t, StairUp, stair)
	_, ok = m.Stair(37)
	assert.False(t, ok)

	chair := NewSeatMap(CoachTypeChair, 0)
	stair, _ = chair.Stair(45)
	assert.Equal(t, StairMain, stair)
}

func TestSeatMapsAreIndependent(t *testing.T) {
	a := NewSeatMap(CoachTypeBed, 0)
	b := NewSeatMap(CoachTypeBed, 0)

	a.MarkOrdered([]int{1, 2, 99})
	assert.True(t, a.IsOrdered(1))
	assert.False(t, b.IsOrdered(1))
	assert.False(t, a.IsOrdered(99))
}

func TestFloorsSnapshotIsSorted(t *testing.T) {
	m := NewSeatMap(CoachTypeLimousine, 0)
	m.MarkOrdered([]int{20})

	floors := m.Floors()
	require.Len(t, floors, 2)
	assert.Equal(t, StairDown, floors[0].Stair)
	require.Len(t, floors[1].Seats, 18)
	assert.Equal(t, 19, floors[1].Seats[0].Number)
	assert.True(t, floors[1].Seats[1].Ordered)
}

func TestSeatMapStopsAtCapacity(t *testing.T) {
	bed := NewSeatMap(CoachTypeBed, 34)
	_, ok := bed.Stair(34)
	assert.True(t, ok)
	_, ok = bed.Stair(35)
	assert.False(t, ok)

	floors := bed.Floors()
	require.Len(t, floors, 2)
	assert.Len(t, floors[1].Seats, 16)

	chair := NewSeatMap(CoachTypeChair, 30)
	sel := NewSelection(chair, MaxSeatSelect, 100, nil)
	assert.ErrorIs(t, sel.Toggle(40, true), ErrUnknownSeat)
	assert.NoError(t, sel.Toggle(30, true))

	small := NewSeatMap(CoachTypeLimousine, 10)
	require.Len(t, small.Floors(), 1)
	assert.Equal(t, StairDown, small.Floors()[0].Stair)
}
