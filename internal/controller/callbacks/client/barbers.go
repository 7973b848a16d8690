package client

import (
	"context"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBarbersPage перелистывает список мастеров (barbers:<page>)
func HandleBarbersPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	barbers, err := h.BarberService.ListBarbers(ctx)
	if err != nil {
		common.HandleError(hc, err, "list_barbers")
		return
	}

	text, kb := common.BarbersScreen(barbers, common.ParsePage(callback.Data))
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "edit_barbers")
		return
	}
	hc.Answer("")
}

// HandleBarber показывает услуги мастера (barber:<id>).
// Если услуг нет, сразу открывает дни.
func HandleBarber(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	barberID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.HandleError(hc, err, "parse_barber")
		return
	}

	barber, err := h.BarberService.GetBarber(ctx, barberID)
	if err != nil {
		common.HandleError(hc, err, "get_barber")
		return
	}
	if barber == nil {
		hc.AnswerAlert("❌ Мастер не найден")
		return
	}

	services, err := h.BarberService.ServicesForBarber(ctx, barberID)
	if err != nil {
		common.HandleError(hc, err, "barber_services")
		return
	}

	if len(services) == 0 {
		showDays(hc, barber, nil, false)
		return
	}

	text, kb := common.ServicesScreen(barber, services)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "edit_services")
		return
	}
	hc.Answer("")
}

// HandleService показывает дни для выбранной услуги (svc:<barber>:<service>)
func HandleService(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	barberID, serviceID, err := common.ParseServiceData(callback.Data)
	if err != nil {
		common.HandleError(hc, err, "parse_service")
		return
	}

	barber, err := h.BarberService.GetBarber(ctx, barberID)
	if err != nil {
		common.HandleError(hc, err, "get_barber")
		return
	}
	if barber == nil {
		hc.AnswerAlert("❌ Мастер не найден")
		return
	}

	services, err := h.BarberService.ServicesForBarber(ctx, barberID)
	if err != nil {
		common.HandleError(hc, err, "barber_services")
		return
	}

	var chosen *model.Service
	if serviceID != 0 {
		for _, svc := range services {
			if svc.ID == serviceID {
				chosen = svc
				break
			}
		}
		if chosen == nil {
			common.HandleError(hc, service.ErrServiceNotOffered, "choose_service")
			return
		}
	}

	showDays(hc, barber, chosen, len(services) > 0)
}

func showDays(hc *common.HandlerContext, barber *model.Barber, chosen *model.Service, backToServices bool) {
	days, err := workingDays(hc.Ctx, hc.Handler, barber.ID, time.Now())
	if err != nil {
		common.HandleError(hc, err, "working_days")
		return
	}

	hc.Logger.Debug("Barber opened",
		zap.Int64("barber_id", barber.ID),
		zap.Int("working_days", len(days)),
	)

	text, kb := common.DaysScreen(barber, chosen, days, backToServices)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "edit_days")
		return
	}
	hc.Answer("")
}

// workingDays ближайшие дни (начиная с сегодня), на которые у мастера есть график
func workingDays(ctx context.Context, h *callbacktypes.Handler, barberID int64, now time.Time) ([]time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var days []time.Time
	for i := 0; i < h.DaysAhead; i++ {
		day := today.AddDate(0, 0, i)
		windows, err := h.BookingService.WorkingWindows(ctx, barberID, day)
		if err != nil {
			return nil, err
		}
		if len(windows) > 0 {
			days = append(days, day)
		}
	}
	return days, nil
}
