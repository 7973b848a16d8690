package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var visitDay = time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC)

func TestBookingRepository_SameSlotConflicts(t *testing.T) {
	pool := newPool(t)
	repo := NewBookingRepository(pool)
	ctx := context.Background()

	first := mustUser(t, pool, 1)
	second := mustUser(t, pool, 2)
	barber := mustBarber(t, pool, "+100")

	original := mustBooking(t, pool, first.ID, barber.ID, visitDay, "10:00")

	err := repo.Create(ctx, &model.Booking{UserID: second.ID, BarberID: barber.ID, Date: visitDay, Time: "10:00"})
	require.Error(t, err)
	assert.True(t, base.IsUniqueViolation(err))

	got, err := repo.GetByID(ctx, original.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.UserID)
	assert.Equal(t, model.BookingStatusPending, got.Status)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, "2030-05-14", got.DateString())

	sameDay, err := repo.ListByBarberAndDate(ctx, barber.ID, visitDay)
	require.NoError(t, err)
	assert.Len(t, sameDay, 1)
}

func TestBookingRepository_CancelledSlotCanBeRebooked(t *testing.T) {
	pool := newPool(t)
	repo := NewBookingRepository(pool)
	ctx := context.Background()

	user := mustUser(t, pool, 1)
	barber := mustBarber(t, pool, "+100")
	booking := mustBooking(t, pool, user.ID, barber.ID, visitDay, "11:30")

	changed, err := repo.MarkCancelled(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkCancelled(ctx, booking.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	rebooked := mustBooking(t, pool, user.ID, barber.ID, visitDay, "11:30")
	assert.NotEqual(t, booking.ID, rebooked.ID)
}

func TestBookingRepository_Lists(t *testing.T) {
	pool := newPool(t)
	repo := NewBookingRepository(pool)
	ctx := context.Background()

	user := mustUser(t, pool, 1)
	other := mustUser(t, pool, 2)
	barber := mustBarber(t, pool, "+100")

	mustBooking(t, pool, user.ID, barber.ID, visitDay, "10:00")
	mustBooking(t, pool, user.ID, barber.ID, visitDay.AddDate(0, 0, 1), "12:00")
	mustBooking(t, pool, other.ID, barber.ID, visitDay, "15:00")

	mine, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "12:00", mine[0].Time, "latest visit first")

	all, err := repo.ListByBarber(ctx, barber.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := repo.ListByUser(ctx, 424242)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookingRepository_StatusAndCompletion(t *testing.T) {
	pool := newPool(t)
	repo := NewBookingRepository(pool)
	ctx := context.Background()

	user := mustUser(t, pool, 1)
	barber := mustBarber(t, pool, "+100")
	past := mustBooking(t, pool, user.ID, barber.ID, visitDay, "09:00")
	future := mustBooking(t, pool, user.ID, barber.ID, visitDay, "18:00")

	require.NoError(t, repo.UpdateStatus(ctx, past.ID, model.BookingStatusConfirmed))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 9999, model.BookingStatusConfirmed), ErrNotFound)

	cancelled := mustBooking(t, pool, user.ID, barber.ID, visitDay, "12:00")
	changed, err := repo.MarkCancelled(ctx, cancelled.ID)
	require.NoError(t, err)
	require.True(t, changed)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, cancelled.ID, model.BookingStatusConfirmed), ErrNotFound)

	n, err := repo.CompleteBefore(ctx, visitDay.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, got.Status)

	got, err = repo.GetByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, got.Status)

	got, err = repo.GetByID(ctx, cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, got.Status)
}

func TestBookingRepository_UnknownUserIsForeignKeyViolation(t *testing.T) {
	pool := newPool(t)
	barber := mustBarber(t, pool, "+100")

	err := NewBookingRepository(pool).Create(context.Background(),
		&model.Booking{UserID: 12345, BarberID: barber.ID, Date: visitDay, Time: "10:00"})

	require.Error(t, err)
	assert.True(t, base.IsForeignKeyViolation(err))
}
