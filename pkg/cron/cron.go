package cron

import (
	"context"
	"time"

	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/storage"

	"github.com/robfig/cron/v3"
)

type TaskScheduler struct {
	cronJob *cron.Cron
	logger  logger.LoggerI
	storage storage.StorageI
	cfg     config.Config
	now     func() time.Time
}

type TaskSchedulerI interface {
	RunJobs(context.Context) error
	PurgeDeletedTasks(context.Context) error
	Stop()
}

func New(cfg config.Config, log logger.LoggerI, storage storage.StorageI) TaskSchedulerI {
	return &TaskScheduler{
		cronJob: cron.New(),
		logger:  log,
		storage: storage,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (t *TaskScheduler) RunJobs(ctx context.Context) error {
	t.logger.Info("Jobs Started:", logger.String("purge_schedule", t.cfg.PurgeSchedule))

	_, err := t.cronJob.AddFunc(t.cfg.PurgeSchedule, func() {
		err := t.PurgeDeletedTasks(ctx)
		if err != nil {
			t.logger.Error("error in PurgeDeletedTasks", logger.Error(err))
		}
	})
	if err != nil {
		return err
	}

	t.cronJob.Start()

	return nil
}

// PurgeDeletedTasks hard deletes tasks that stayed soft deleted longer than
// the retention period. A non positive retention disables the job.
func (t *TaskScheduler) PurgeDeletedTasks(ctx context.Context) error {
	if t.cfg.TaskRetentionDays <= 0 {
		return nil
	}

	t.logger.Info("Running PurgeDeletedTasks job ...")

	before := t.now().AddDate(0, 0, -t.cfg.TaskRetentionDays)

	purged, err := t.storage.Task().PurgeDeleted(ctx, before)
	if err != nil {
		return err
	}

	t.logger.Info("purged deleted tasks", logger.Int64("count", purged), logger.String("before", before.Format(config.DatabaseTimeLayout)))

	return nil
}

func (t *TaskScheduler) Stop() {
	<-t.cronJob.Stop().Done()
}
