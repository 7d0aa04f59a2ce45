package app

import (
	"time"

	"go.uber.org/fx"

	"urlate.dev/backend/internal/app/appconfig"
	"urlate.dev/backend/internal/app/appcontext"
	"urlate.dev/backend/internal/controller"
	"urlate.dev/backend/internal/infra"
	"urlate.dev/backend/internal/pkg/logger"
	"urlate.dev/backend/internal/repo"
	"urlate.dev/backend/internal/server"
	"urlate.dev/backend/internal/service"
	"urlate.dev/backend/internal/util/playverifs"
	"urlate.dev/backend/internal/workers/notifywkr"
	"urlate.dev/backend/internal/workers/rankwkr"
)

// Options assembles the dependency graph shared by the server and the CLI
// commands. Configuration and logging are set up eagerly because the fx
// logger itself writes through zerolog.
func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	logger.Configure(conf)

	opts := []fx.Option{
		fx.WithLogger(logger.Fx),
		fx.Supply(conf),

		infra.Module(),
		server.Module(),
		playverifs.Module(),
		repo.Module(),
		service.Module(),

		// sentry must be initialized before any controller registers its
		// routes, since invokes run in registration order
		fx.Invoke(infra.SentryInit),
		controller.Module(),
	}

	if ctx.HostsWorkers() {
		opts = append(opts, workers())
	}

	opts = append(opts,
		fx.StartTimeout(30*time.Second),
		// fiber drains connections itself on Shutdown(); this only bounds a
		// shutdown that hangs
		fx.StopTimeout(5*time.Minute),
	)

	return append(opts, additionalOpts...)
}

func workers() fx.Option {
	return fx.Module("workers",
		fx.Invoke(notifywkr.Start),
		fx.Invoke(rankwkr.Start),
	)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
