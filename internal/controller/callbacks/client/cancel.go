package client

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/salon_bot/internal/controller/state"
	"github.com/Freeeeeet/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleCancel начинает отмену записи и спрашивает причину (cancel:<booking>)
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_cancel")
			return
		}

		booking, err := h.BookingService.GetByID(ctx, bookingID)
		if err != nil {
			common.HandleError(hc, err, "get_booking")
			return
		}
		switch {
		case booking == nil:
			common.HandleError(hc, service.ErrBookingNotFound, "get_booking")
			return
		case booking.UserID != hc.User.ID:
			common.HandleError(hc, service.ErrNotBookingOwner, "get_booking")
			return
		case !booking.IsActive():
			common.HandleError(hc, service.ErrAlreadyCancelled, "get_booking")
			return
		}

		hc.SetState(callbacktypes.UserState(state.StateCancelReason))
		hc.SetData(state.KeyBookingID, bookingID)

		text, kb := common.CancelReasonScreen(booking)
		if err := hc.SendMessage(text, kb); err != nil {
			common.HandleError(hc, err, "send_cancel_reason")
			return
		}
		hc.Answer("")
	})
}

// HandleCancelSkip отменяет запись без причины (cancel_skip:<booking>)
func HandleCancelSkip(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_cancel")
			return
		}

		hc.ClearState()

		if err := h.BookingService.CancelByUser(ctx, bookingID, hc.User.ID, ""); err != nil {
			common.HandleError(hc, err, "cancel_booking")
			return
		}

		if err := hc.EditMessage("✅ Запись отменена.\n\nЗаписаться снова: /barbers", nil); err != nil {
			common.HandleError(hc, err, "edit_cancelled")
			return
		}
		hc.Answer("Запись отменена")
		hc.NotifyAdmin(fmt.Sprintf("❌ Клиент отменил запись #%d\nПричина: не указана", bookingID))
	})
}
