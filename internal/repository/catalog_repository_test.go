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

func TestBarberRepository_UniquePhone(t *testing.T) {
	pool := newPool(t)
	repo := NewBarberRepository(pool)
	ctx := context.Background()

	barber := mustBarber(t, pool, "+998900000001")
	assert.Equal(t, model.EmptyWorkSchedule, barber.WorkSchedule)

	err := repo.Create(ctx, &model.Barber{FullName: "Copy", PhoneNumber: strPtr("+998900000001")})
	require.Error(t, err)
	assert.True(t, base.IsUniqueViolation(err))

	byPhone, err := repo.GetByPhone(ctx, "+998900000001")
	require.NoError(t, err)
	require.NotNil(t, byPhone)
	assert.Equal(t, barber.ID, byPhone.ID)

	require.NoError(t, repo.UpdateWorkSchedule(ctx, barber.ID, `{"note":"weekends off"}`))
	got, err := repo.GetByID(ctx, barber.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"note":"weekends off"}`, got.WorkSchedule)

	missing, err := repo.GetByID(ctx, 777)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestServiceRepository_LinkTwiceIsNoop(t *testing.T) {
	pool := newPool(t)
	repo := NewServiceRepository(pool)
	ctx := context.Background()

	barber := mustBarber(t, pool, "+100")
	svc := &model.Service{Name: "Haircut", Description: "Classic", Price: 5000000, DurationMinutes: 30}
	require.NoError(t, repo.Create(ctx, svc))

	linked, err := repo.LinkBarber(ctx, barber.ID, svc.ID)
	require.NoError(t, err)
	assert.True(t, linked)

	linked, err = repo.LinkBarber(ctx, barber.ID, svc.ID)
	require.NoError(t, err)
	assert.False(t, linked)

	assert.Equal(t, 1, countLinks(t, pool, barber.ID, svc.ID))

	services, err := repo.ListByBarber(ctx, barber.ID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Haircut", services[0].Name)
}

func TestWorkingHoursRepository_UpsertAndList(t *testing.T) {
	pool := newPool(t)
	repo := NewWorkingHoursRepository(pool)
	ctx := context.Background()

	barber := mustBarber(t, pool, "+100")
	monday := int(time.Monday)

	require.NoError(t, repo.Upsert(ctx, &model.WorkingHours{
		BarberID: barber.ID, DayOfWeek: monday, StartTime: "09:00", EndTime: "18:00",
		BreakStart: strPtr("13:00"), BreakEnd: strPtr("14:00"),
	}))
	require.NoError(t, repo.Upsert(ctx, &model.WorkingHours{
		BarberID: barber.ID, DayOfWeek: monday, StartTime: "10:00", EndTime: "16:00",
	}))

	hours, err := repo.ListByBarberAndDay(ctx, barber.ID, monday)
	require.NoError(t, err)
	require.Len(t, hours, 1)
	assert.Equal(t, "10:00", hours[0].StartTime)
	assert.Equal(t, "16:00", hours[0].EndTime)
	assert.False(t, hours[0].HasBreak())

	empty, err := repo.ListByBarberAndDay(ctx, barber.ID, int(time.Sunday))
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Delete(ctx, barber.ID, monday))
	assert.ErrorIs(t, repo.Delete(ctx, barber.ID, monday), ErrNotFound)
}

func TestFeedbackRepository_RatingRange(t *testing.T) {
	pool := newPool(t)
	repo := NewFeedbackRepository(pool)
	ctx := context.Background()

	user := mustUser(t, pool, 1)
	barber := mustBarber(t, pool, "+100")
	booking := mustBooking(t, pool, user.ID, barber.ID, visitDay, "10:00")

	for _, rating := range []int{0, 6, -1} {
		err := repo.Create(ctx, &model.Feedback{UserID: user.ID, BookingID: booking.ID, Rating: rating})
		require.Error(t, err, "rating %d", rating)
		assert.True(t, base.IsCheckViolation(err), "rating %d", rating)
	}

	for rating := model.MinRating; rating <= model.MaxRating; rating++ {
		require.NoError(t, repo.Create(ctx, &model.Feedback{UserID: user.ID, BookingID: booking.ID, Rating: rating, Comments: "ok"}))
	}

	feedback, err := repo.ListByBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Len(t, feedback, 5)
}

func TestAdminRepository_CRUD(t *testing.T) {
	pool := newPool(t)
	repo := NewAdminRepository(pool)
	ctx := context.Background()

	user := mustUser(t, pool, 1)

	admin := &model.Admin{UserID: user.ID, Name: "Owner", IsSuperAdmin: true}
	require.NoError(t, repo.Create(ctx, admin))

	got, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsSuperAdmin)

	admins, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)

	require.NoError(t, repo.Delete(ctx, admin.ID))
	got, err = repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
