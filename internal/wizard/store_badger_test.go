package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerStoreRoundTrip(t *testing.T) {
	store, err := OpenBadgerStore("", time.Hour)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	st := atPayment(t)

	require.NoError(t, store.Save(ctx, &st))

	got, err := store.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, StepPaymentInfo, got.Step)
	assert.Equal(t, []int{3, 4}, got.Draft.SeatNumber)
	assert.Equal(t, int64(360000), got.Draft.TotalPayment)
	require.NotNil(t, got.Draft.Trip)
	assert.Equal(t, int64(7), got.Draft.Trip.ID)

	require.NoError(t, store.Delete(ctx, st.ID))
	_, err = store.Get(ctx, st.ID)
	assert.ErrorIs(t, err, ErrWizardNotFound)
}

func TestBadgerStoreLock(t *testing.T) {
	store, err := OpenBadgerStore("", time.Hour)
	require.NoError(t, err)
	defer store.Close()

	unlock, err := store.Lock(context.Background(), "w1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = store.Lock(ctx, "w1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := store.Lock(context.Background(), "w2")
	require.NoError(t, err)
	other()

	unlock()
	again, err := store.Lock(context.Background(), "w1")
	require.NoError(t, err)
	again()
}
