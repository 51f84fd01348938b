package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/AmanLovesCats/RCC-Bot/store"
	"github.com/AmanLovesCats/RCC-Bot/storage"
)

// Sweeper — то, что планировщик периодически чистит (сессии загрузок,
// кулдауны).
type Sweeper interface {
	Sweep()
}

// StartScheduler запускает фоновые задачи: периодический снапшот базы в
// объектное хранилище и уборку истёкшего состояния. Возвращённый scheduler
// останавливается при завершении процесса.
func StartScheduler(
	st *store.FileStore,
	uploader storage.FileUploader, // nil отключает снапшоты
	snapshotInterval time.Duration,
	logger *slog.Logger,
	sweepers ...Sweeper,
) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if uploader != nil {
		_, err = sched.NewJob(
			gocron.DurationJob(snapshotInterval),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				key, err := st.Snapshot(ctx, uploader)
				if err != nil {
					logger.Error("store snapshot failed", slog.Any("error", err))
					return
				}
				if key != "" {
					logger.Info("store snapshot uploaded", slog.String("key", key))
				}
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	_, err = sched.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			for _, s := range sweepers {
				s.Sweep()
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
