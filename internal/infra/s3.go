package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/app/appconfig"
)

// PlayLogS3 returns the client play logs are archived with, or nil when no
// bucket is configured.
func PlayLogS3(conf *appconfig.Config) (*s3.Client, error) {
	if conf.PlayLogS3Bucket == "" {
		log.Info().
			Str("evt.name", "infra.s3.disabled").
			Msg("play log archiving is disabled due to missing bucket")
		return nil, nil
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(conf.PlayLogS3Region),
	}
	if conf.AWSAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Error().Err(err).Msg("infra: s3: failed to load aws config")
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.PlayLogS3Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.PlayLogS3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
