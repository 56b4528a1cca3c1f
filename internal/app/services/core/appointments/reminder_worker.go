package appointments

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/metrics"
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reminderWorkerName = "appointment_reminder"

// ReminderWorker sends reminders for the next day's appointments on a cron schedule.
// Only the instance holding the Redis leader lock runs a given tick.
type ReminderWorker struct {
	log      *zap.Logger
	spec     string
	locker   contracts.LockerService
	usecase  contracts.AppointmentUsecase
	location *time.Location
	lockTTL  time.Duration
	now      func() time.Time
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
}

func NewReminderWorker(log *zap.Logger, spec string, location *time.Location, locker contracts.LockerService, usecase contracts.AppointmentUsecase) *ReminderWorker {
	if location == nil {
		location = time.Local
	}
	return &ReminderWorker{
		log:      log,
		spec:     spec,
		locker:   locker,
		usecase:  usecase,
		location: location,
		lockTTL:  2 * time.Minute,
		now:      time.Now,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New(cron.WithLocation(w.location))
	if _, err := c.AddFunc(w.spec, func() { w.RunOnce(w.runCtx) }); err != nil {
		w.log.Warn("appointments.ReminderWorker invalid cron spec, falling back to 18:00 daily",
			zap.String("spec", w.spec),
			zap.Error(err),
		)
		c = cron.New(cron.WithLocation(w.location))
		_, _ = c.AddFunc("0 18 * * *", func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight runs and waits for the running job to return.
func (w *ReminderWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce reports whether this instance ran the job.
func (w *ReminderWorker) RunOnce(ctx context.Context) bool {
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReminderWorkerLock, w.lockTTL)
	if err != nil {
		w.log.Warn("appointments.ReminderWorker leader lock attempt failed", zap.Error(err))
		return false
	}
	if !acquired {
		w.log.Info("appointments.ReminderWorker leader lock held by another instance")
		return false
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyReminderWorkerLock, token); err != nil {
			w.log.Warn("appointments.ReminderWorker failed to release leader lock", zap.Error(err))
		}
	}()

	stopRefresh := w.keepLockAlive(ctx, token)
	tomorrow := w.now().In(w.location).AddDate(0, 0, 1).Format(time.DateOnly)
	sent, err := w.usecase.SendReminders(ctx, tomorrow)
	stopRefresh()
	metrics.RecordWorkerRun(reminderWorkerName, err == nil)
	if err != nil {
		w.log.Error("appointments.ReminderWorker run failed",
			zap.String(constvars.LoggingWorkerKey, reminderWorkerName),
			zap.Error(err),
		)
		return true
	}

	w.log.Info("appointments.ReminderWorker run finished",
		zap.String(constvars.LoggingWorkerKey, reminderWorkerName),
		zap.String("date", tomorrow),
		zap.Int(constvars.LoggingCountKey, sent),
	)
	return true
}

// keepLockAlive extends the leader lock every half TTL until the returned stop func is called.
// stop blocks until the refresh loop has exited.
func (w *ReminderWorker) keepLockAlive(ctx context.Context, token string) (stop func()) {
	refreshCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(w.lockTTL / 2)
		defer ticker.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-ticker.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyReminderWorkerLock, token, w.lockTTL); err != nil {
					w.log.Warn("appointments.ReminderWorker failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}
