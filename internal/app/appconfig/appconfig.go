package appconfig

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/app/appcontext"
	"urlate.dev/backend/internal/pkg/projectpath"
)

const EnvPrefix = "urlate"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load(filepath.Join(projectpath.Root, ".env"))
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process(EnvPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(EnvPrefix, &config)
		return nil, errors.Wrap(err, "failed to parse configuration. See internal/app/appconfig/spec.go for every available option")
	}

	log.Debug().
		Str("evt.name", "config.parsed").
		Stringer("context", ctx.Env).
		Bool("worker_enabled", config.WorkerEnabled).
		Msg("configuration parsed")

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}
