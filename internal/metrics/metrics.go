package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Метрики бота салона
var (
	UpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_bot_updates_total",
			Help: "Количество обработанных обновлений Telegram",
		},
		[]string{"type"},
	)

	UpdateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salon_bot_update_duration_seconds",
			Help:    "Время обработки обновления в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	UserRegistrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_bot_user_registrations_total",
			Help: "Количество новых пользователей",
		},
	)

	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_bot_bookings_created_total",
			Help: "Количество созданных записей",
		},
	)

	BookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_bot_booking_conflicts_total",
			Help: "Попытки записаться на уже занятый слот",
		},
	)

	BookingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_bot_bookings_cancelled_total",
			Help: "Количество отменённых записей",
		},
	)

	FeedbackReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_bot_feedback_total",
			Help: "Количество отзывов по оценкам",
		},
		[]string{"rating"},
	)

	HandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_bot_handler_errors_total",
			Help: "Ошибки обработчиков, закончившиеся извинением пользователю",
		},
		[]string{"handler"},
	)
)

// Serve поднимает /metrics на addr и блокируется до отмены ctx
func Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Metrics server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
