package rankwkr

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"urlate.dev/backend/internal/app/appconfig"
	"urlate.dev/backend/internal/service"
)

const heartbeatKey = "rankhistory"

type WorkerDeps struct {
	fx.In

	RankHistoryService *service.RankHistory
}

type Worker struct {
	// count counts runs the worker has completed so far
	count int

	timeout      time.Duration
	heartbeatURL string

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) error {
	if !conf.WorkerEnabled {
		return nil
	}

	w := &Worker{
		timeout:      conf.RankHistoryTimeout,
		heartbeatURL: conf.WorkerHeartbeatURL[heartbeatKey],
		WorkerDeps:   deps,
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.CronJob(conf.RankHistoryCron, false),
		gocron.NewTask(w.Run),
		gocron.WithName("rankhistory"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			sched.Start()
			log.Info().
				Str("evt.name", "worker.rankhistory.scheduled").
				Str("cron", conf.RankHistoryCron).
				Msg("rank history worker scheduled")
			return nil
		},
		OnStop: func(context.Context) error {
			return sched.Shutdown()
		},
	})
	return nil
}

// Run takes one rank snapshot and reports a heartbeat when it succeeds.
func (w *Worker) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	log.Info().Int("count", w.count).Msg("rank history run started")

	resp, err := w.RankHistoryService.Run(ctx)
	if err != nil {
		log.Error().
			Str("evt.name", "worker.rankhistory.failed").
			Err(err).
			Msg("rank history run failed")
		return
	}

	log.Info().
		Int("count", w.count).
		Int("players", resp.Players).
		Int64("took_ms", resp.TookMs).
		Msg("rank history run finished")
	w.count++

	w.heartbeat()
}

func (w *Worker) heartbeat() {
	if w.heartbeatURL == "" {
		return
	}

	code, _, errs := fiber.Get(w.heartbeatURL).Timeout(time.Second * 5).Bytes()
	if len(errs) > 0 || code >= 400 {
		log.Warn().
			Str("evt.name", "worker.rankhistory.heartbeat.failed").
			Int("status", code).
			Errs("errors", errs).
			Msg("failed to send heartbeat")
	}
}

func (w *Worker) Count() int {
	return w.count
}
