package staleworker

import (
	"context"
	"time"

	"stroy-tools-backend/config"
	"stroy-tools-backend/db"
	timeentrystore "stroy-tools-backend/lib/time-entry/store"
	baseworker "stroy-tools-backend/lib/utils/base-worker"
	"stroy-tools-backend/lib/utils/helpers"
)

// Воркер закрывает смены, забытые открытыми дольше заданного порога.
// Закрытая так запись помечается auto_closed и остаётся в статусе PENDING -
// проверяющий увидит её в очереди и примет решение вручную.
type Provider interface {
	StartWorker(ctx context.Context)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		BaseImpl: baseworker.NewInstance(
			"stale-clock-in",
			time.Minute,
			time.Duration(config.Conf.Worker.StaleClockInPeriodInMin)*time.Minute,
		),
		store:  timeentrystore.NewInstance(db.DB),
		cutoff: time.Duration(config.Conf.Worker.StaleClockInCutoffInHours) * time.Hour,
	}
}

type impl struct {
	*baseworker.BaseImpl
	store  timeentrystore.Provider
	cutoff time.Duration
}

func (i impl) StartWorker(ctx context.Context) {
	i.Run(ctx, i.closeStaleEntries)
}

func (i impl) closeStaleEntries(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.ListStaleOpen(time.Now().Add(-i.cutoff))
	if err != nil {
		logger.WithError(err).Error("ошибка поиска зависших смен")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		err = i.store.Update(rec.CompanyID, rec.ID, map[string]interface{}{
			"ClockOut":   rec.ClockIn.Add(i.cutoff),
			"AutoClosed": true,
		})
		if err != nil {
			logger.
				WithField("rec_id", rec.ID).
				WithError(err).
				Error("ошибка автозакрытия смены")
			continue
		}
		logger.
			WithField("rec_id", rec.ID).
			WithField("user_id", rec.UserID).
			Info("смена закрыта автоматически по таймауту")
	}
}
