package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/repotest"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func newPool(t *testing.T) *pgxpool.Pool {
	return repotest.NewPool(t, "repository_test")
}

func strPtr(s string) *string { return &s }

func mustUser(t *testing.T, pool *pgxpool.Pool, telegramID int64) *model.User {
	t.Helper()
	user := &model.User{TelegramID: telegramID, Username: "client", FullName: "Test Client"}
	require.NoError(t, NewUserRepository(pool).Create(context.Background(), user))
	return user
}

func mustBarber(t *testing.T, pool *pgxpool.Pool, phone string) *model.Barber {
	t.Helper()
	barber := &model.Barber{FullName: "Barber " + phone, PhoneNumber: strPtr(phone)}
	require.NoError(t, NewBarberRepository(pool).Create(context.Background(), barber))
	return barber
}

func mustBooking(t *testing.T, pool *pgxpool.Pool, userID, barberID int64, date time.Time, clock string) *model.Booking {
	t.Helper()
	booking := &model.Booking{UserID: userID, BarberID: barberID, Date: date, Time: clock}
	require.NoError(t, NewBookingRepository(pool).Create(context.Background(), booking))
	return booking
}

// countLinks число строк связи мастер-услуга
func countLinks(t *testing.T, pool *pgxpool.Pool, barberID, serviceID int64) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM barber_services WHERE barber_id = $1 AND service_id = $2`,
		barberID, serviceID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}
