package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository"
	"github.com/Freeeeeet/salon_bot/internal/repository/repotest"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	pool          *pgxpool.Pool
	users         *UserService
	barbers       *BarberService
	bookings      *BookingService
	feedback      *FeedbackService
	admins        *AdminService
	cancellations *repository.CancellationRepository
}

// 2030-05-13 - понедельник
var monday = time.Date(2030, 5, 13, 0, 0, 0, 0, time.Local)

func newFixture(t *testing.T) *fixture {
	pool := repotest.NewPool(t, "service_test")
	logger := zap.NewNop()

	userRepo := repository.NewUserRepository(pool)
	barberRepo := repository.NewBarberRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	hoursRepo := repository.NewWorkingHoursRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	cancellationRepo := repository.NewCancellationRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	bookings := NewBookingService(pool, barberRepo, serviceRepo, hoursRepo, bookingRepo, cancellationRepo, 30*time.Minute, logger)
	bookings.now = func() time.Time { return monday.Add(-24 * time.Hour) }

	return &fixture{
		pool:          pool,
		users:         NewUserService(userRepo, logger),
		barbers:       NewBarberService(barberRepo, serviceRepo, hoursRepo, logger),
		bookings:      bookings,
		feedback:      NewFeedbackService(bookingRepo, feedbackRepo, logger),
		admins:        NewAdminService(1, userRepo, adminRepo, logger),
		cancellations: cancellationRepo,
	}
}

// seed регистрирует клиента и мастера, работающего по понедельникам 10:00-12:00
func (f *fixture) seed(t *testing.T) (*model.User, *model.Barber) {
	ctx := context.Background()

	user, created, err := f.users.RegisterUser(ctx, 5001, "client", "Client One", "uz")
	require.NoError(t, err)
	require.True(t, created)

	barber, err := f.barbers.CreateBarber(ctx, "Rustam", "+998900000010")
	require.NoError(t, err)

	_, err = f.barbers.SetWorkingHours(ctx, barber.ID, int(time.Monday), "10:00", "12:00", nil, nil)
	require.NoError(t, err)

	return user, barber
}

func TestRegisterUser_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing, err := f.users.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	user, created, err := f.users.RegisterUser(ctx, 42, "neo", "Thomas Anderson", "en")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := f.users.RegisterUser(ctx, 42, "neo", "Thomas Anderson", "en")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	found, err := f.users.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "neo", found.Username)
	assert.Equal(t, "Thomas Anderson", found.FullName)
	require.NotNil(t, found.Language)
	assert.Equal(t, "en", *found.Language)
}

func TestBook_SecondBookingForSameSlotFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	other, _, err := f.users.RegisterUser(ctx, 5002, "other", "Client Two", "")
	require.NoError(t, err)

	first, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday, Time: "10:30"})
	require.NoError(t, err)

	_, err = f.bookings.Book(ctx, BookRequest{UserID: other.ID, BarberID: barber.ID, Date: monday, Time: "10:30"})
	assert.ErrorIs(t, err, ErrSlotTaken)

	kept, err := f.bookings.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, kept.UserID)
	assert.Equal(t, model.BookingStatusPending, kept.Status)

	free, err := f.bookings.AvailableTimes(ctx, barber.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00", "11:30"}, free)
}

func TestBook_RejectsTimesOutsideSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	_, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday, Time: "12:00"})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday.AddDate(0, 0, 1), Time: "10:00"})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday.AddDate(0, 0, -7), Time: "10:00"})
	assert.ErrorIs(t, err, ErrSlotInPast)

	_, err = f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: 999, Date: monday, Time: "10:00"})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestCancel_WritesSingleAuditRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	booking, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday, Time: "11:00"})
	require.NoError(t, err)

	require.NoError(t, f.bookings.Cancel(ctx, booking.ID, "client is sick"))

	got, err := f.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, got.Status)

	rows, err := f.cancellations.ListByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "client is sick", rows[0].Reason)

	err = f.bookings.Cancel(ctx, booking.ID, "again")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	rows, err = f.cancellations.ListByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	assert.ErrorIs(t, f.bookings.Cancel(ctx, 424242, "nope"), ErrBookingNotFound)

	// отменённый слот снова свободен
	free, err := f.bookings.AvailableTimes(ctx, barber.ID, monday)
	require.NoError(t, err)
	assert.Contains(t, free, "11:00")
}

func TestCancelByUser_ChecksOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	booking, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday, Time: "10:00"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.bookings.CancelByUser(ctx, booking.ID, user.ID+100, "x"), ErrNotBookingOwner)
	require.NoError(t, f.bookings.CancelByUser(ctx, booking.ID, user.ID, "changed plans"))
}

func TestUpdateStatus_RefusesCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	booking, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday, Time: "10:00"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusCancelled), ErrInvalidStatus)
	assert.ErrorIs(t, f.bookings.UpdateStatus(ctx, booking.ID, "lost"), ErrInvalidStatus)
	require.NoError(t, f.bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusConfirmed))
}

func TestUpdateStatus_CancelledBookingStaysCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	booking, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday, Time: "10:00"})
	require.NoError(t, err)
	require.NoError(t, f.bookings.Cancel(ctx, booking.ID, "sick"))

	assert.ErrorIs(t, f.bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusConfirmed), ErrBookingCancelled)
	assert.ErrorIs(t, f.bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusCompleted), ErrBookingCancelled)
	assert.ErrorIs(t, f.bookings.UpdateStatus(ctx, 424242, model.BookingStatusConfirmed), ErrBookingNotFound)

	got, err := f.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, got.Status)

	assert.ErrorIs(t, f.bookings.Cancel(ctx, booking.ID, "again"), ErrAlreadyCancelled)

	rows, err := f.cancellations.ListByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "sick", rows[0].Reason)

	// слот занял другой клиент, старую запись всё так же нельзя вернуть
	other, _, err := f.users.RegisterUser(ctx, 5002, "other", "Client Two", "")
	require.NoError(t, err)
	_, err = f.bookings.Book(ctx, BookRequest{UserID: other.ID, BarberID: barber.ID, Date: monday, Time: "10:00"})
	require.NoError(t, err)
	assert.ErrorIs(t, f.bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusConfirmed), ErrBookingCancelled)
}

func TestCancel_RollsBackWhenAuditInsertFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	booking, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday, Time: "11:30"})
	require.NoError(t, err)

	// строка журнала уже есть: вставка в той же транзакции упадёт на UNIQUE (booking_id)
	_, err = f.pool.Exec(ctx, `INSERT INTO cancellations (booking_id, reason) VALUES ($1, 'stale')`, booking.ID)
	require.NoError(t, err)

	err = f.bookings.Cancel(ctx, booking.ID, "late")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyCancelled)

	got, err := f.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, got.Status, "status update must be rolled back")

	rows, err := f.cancellations.ListByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "stale", rows[0].Reason)

	free, err := f.bookings.AvailableTimes(ctx, barber.ID, monday)
	require.NoError(t, err)
	assert.NotContains(t, free, "11:30")
}

func TestBook_ServiceMustBeOffered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	haircut, err := f.barbers.CreateService(ctx, "Haircut", "", 5000000, 30)
	require.NoError(t, err)
	shave, err := f.barbers.CreateService(ctx, "Shave", "", 2000000, 20)
	require.NoError(t, err)
	require.NoError(t, f.barbers.LinkService(ctx, barber.ID, haircut.ID))

	_, err = f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, ServiceID: &shave.ID, Date: monday, Time: "10:00"})
	assert.ErrorIs(t, err, ErrServiceNotOffered)

	booking, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, ServiceID: &haircut.ID, Date: monday, Time: "10:00"})
	require.NoError(t, err)

	got, err := f.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ServiceID)
	assert.Equal(t, haircut.ID, *got.ServiceID)
}

func TestAvailableTimes_NoWorkingHoursIsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, barber := f.seed(t)

	sunday := monday.AddDate(0, 0, -1)

	free, err := f.bookings.AvailableTimes(ctx, barber.ID, sunday)
	require.NoError(t, err)
	assert.NotNil(t, free)
	assert.Empty(t, free)

	windows, err := f.bookings.WorkingWindows(ctx, barber.ID, sunday)
	require.NoError(t, err)
	assert.Empty(t, windows)

	windows, err = f.bookings.WorkingWindows(ctx, barber.ID, monday)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "10:00", windows[0].Start)
	assert.Equal(t, "12:00", windows[0].End)
}

func TestLinkService_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, barber := f.seed(t)

	svc, err := f.barbers.CreateService(ctx, "Beard trim", "", 3000000, 20)
	require.NoError(t, err)

	require.NoError(t, f.barbers.LinkService(ctx, barber.ID, svc.ID))
	require.NoError(t, f.barbers.LinkService(ctx, barber.ID, svc.ID))

	services, err := f.barbers.ServicesForBarber(ctx, barber.ID)
	require.NoError(t, err)
	assert.Len(t, services, 1)

	assert.ErrorIs(t, f.barbers.LinkService(ctx, barber.ID, 9999), ErrServiceNotFound)
}

func TestLeaveFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, barber := f.seed(t)

	booking, err := f.bookings.Book(ctx, BookRequest{UserID: user.ID, BarberID: barber.ID, Date: monday, Time: "10:00"})
	require.NoError(t, err)

	_, err = f.feedback.LeaveFeedback(ctx, user.ID, booking.ID, 6, "too good")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = f.feedback.LeaveFeedback(ctx, user.ID, booking.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = f.feedback.LeaveFeedback(ctx, user.ID+1, booking.ID, 5, "")
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	fb, err := f.feedback.LeaveFeedback(ctx, user.ID, booking.ID, 5, "  great fade  ")
	require.NoError(t, err)
	assert.Equal(t, "great fade", fb.Comments)

	all, err := f.feedback.BookingFeedback(ctx, booking.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAdmins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, _ := f.seed(t)

	isAdmin, err := f.admins.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.True(t, isAdmin, "configured admin id")

	isAdmin, err = f.admins.IsAdmin(ctx, user.TelegramID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = f.admins.AddAdmin(ctx, user.TelegramID, "Manager", false)
	require.NoError(t, err)
	_, err = f.admins.AddAdmin(ctx, user.TelegramID, "Manager", false)
	assert.ErrorIs(t, err, ErrAlreadyAdmin)
	_, err = f.admins.AddAdmin(ctx, 31337, "Ghost", false)
	assert.ErrorIs(t, err, ErrUserNotFound)

	isAdmin, err = f.admins.IsAdmin(ctx, user.TelegramID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestUserProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, _ := f.seed(t)

	phone, err := f.users.UpdatePhone(ctx, user.ID, "998 90 123-45-67")
	require.NoError(t, err)
	assert.Equal(t, "+998901234567", phone)

	_, err = f.users.UpdatePhone(ctx, user.ID, "call me")
	assert.ErrorIs(t, err, ErrInvalidPhone)
	_, err = f.users.UpdatePhone(ctx, 424242, "+998901234567")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, f.users.Deactivate(ctx, user.ID))
	got, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.PhoneNumber)
	assert.Equal(t, "+998901234567", *got.PhoneNumber)

	require.NoError(t, f.users.Block(ctx, user.ID))
	require.NoError(t, f.users.Activate(ctx, user.ID))
	got, err = f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsBlocked)

	assert.ErrorIs(t, f.users.Activate(ctx, 424242), ErrUserNotFound)

	_, _, err = f.users.RegisterUser(ctx, 5002, "other", "Client Two", "")
	require.NoError(t, err)
	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestRemoveAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, _ := f.seed(t)

	admin, err := f.admins.AddAdmin(ctx, user.TelegramID, "Manager", false)
	require.NoError(t, err)

	admins, err := f.admins.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "Manager", admins[0].Name)

	require.NoError(t, f.admins.RemoveAdmin(ctx, admin.ID))
	assert.ErrorIs(t, f.admins.RemoveAdmin(ctx, admin.ID), ErrAdminNotFound)

	isAdmin, err := f.admins.IsAdmin(ctx, user.TelegramID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	admins, err = f.admins.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Empty(t, admins)
}

func TestSetWorkSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, barber := f.seed(t)

	require.NoError(t, f.barbers.SetWorkSchedule(ctx, barber.ID, `{"note":"closed on holidays"}`))
	got, err := f.barbers.GetBarber(ctx, barber.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"note":"closed on holidays"}`, got.WorkSchedule)

	assert.ErrorIs(t, f.barbers.SetWorkSchedule(ctx, barber.ID, `{note}`), ErrInvalidSchedule)
	assert.ErrorIs(t, f.barbers.SetWorkSchedule(ctx, 9999, `{}`), ErrBarberNotFound)
}

func TestSetWorkingHours_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, barber := f.seed(t)

	cases := []struct {
		name       string
		day        int
		start, end string
		bs, be     *string
	}{
		{"bad day", 7, "10:00", "12:00", nil, nil},
		{"end before start", 1, "12:00", "10:00", nil, nil},
		{"garbage", 1, "noon", "18:00", nil, nil},
		{"half break", 1, "10:00", "18:00", strPtr("13:00"), nil},
		{"break outside", 1, "10:00", "18:00", strPtr("18:00"), strPtr("19:00")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.barbers.SetWorkingHours(ctx, barber.ID, tc.day, tc.start, tc.end, tc.bs, tc.be)
			assert.ErrorIs(t, err, ErrInvalidHours)
		})
	}

	_, err := f.barbers.SetWorkingHours(ctx, 9999, 1, "10:00", "12:00", nil, nil)
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func strPtr(s string) *string { return &s }
