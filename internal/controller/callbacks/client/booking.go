package client

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleDay показывает свободное время мастера на день (day:<barber>:<service>:<date>)
func HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	day, err := common.ParseDayData(callback.Data)
	if err != nil {
		common.HandleError(hc, err, "parse_day")
		return
	}

	barber, err := h.BarberService.GetBarber(ctx, day.BarberID)
	if err != nil {
		common.HandleError(hc, err, "get_barber")
		return
	}
	if barber == nil {
		common.HandleError(hc, service.ErrBarberNotFound, "get_barber")
		return
	}

	times, err := h.BookingService.AvailableTimes(ctx, day.BarberID, day.Date)
	if err != nil {
		common.HandleError(hc, err, "available_times")
		return
	}

	text, kb := common.TimesScreen(barber, day.ServiceID, day.Date, times)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "edit_times")
		return
	}
	hc.Answer("")
}

// HandleBook записывает клиента на выбранное время (book:<barber>:<service>:<date>:<HHMM>)
func HandleBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		data, err := common.ParseBookData(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_book")
			return
		}

		booking, err := h.BookingService.Book(ctx, service.BookRequest{
			UserID:    hc.User.ID,
			BarberID:  data.BarberID,
			ServiceID: data.ServicePtr(),
			Date:      data.Date,
			Time:      data.Time,
		})
		if err != nil {
			common.HandleError(hc, err, "book")
			return
		}

		text, kb := common.BookedScreen(booking)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "edit_booked")
			return
		}
		hc.Answer("✅ Запись создана")
		hc.NotifyAdmin(fmt.Sprintf(
			"🆕 Новая запись #%d\nМастер #%d, %s %s",
			booking.ID,
			booking.BarberID,
			formatting.FormatDate(booking.Date),
			booking.Time,
		))
	})
}
