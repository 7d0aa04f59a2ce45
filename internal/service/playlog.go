package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/app/appconfig"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
)

// ObjectPutter is the subset of the S3 client play logs need.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PlayLog archives the raw submission of every accepted play.
type PlayLog struct {
	S3      ObjectPutter
	Bucket  string
	Timeout time.Duration
}

type playLogEntry struct {
	Index      string                   `json:"index"`
	AcceptedAt time.Time                `json:"acceptedAt"`
	Submission *types.PlayRecordRequest `json:"submission"`
	PlayerID   string                   `json:"playerId"`
}

func NewPlayLog(conf *appconfig.Config, client *s3.Client) *PlayLog {
	p := &PlayLog{
		Bucket:  conf.PlayLogS3Bucket,
		Timeout: time.Second * 5,
	}
	if client != nil {
		p.S3 = client
	}
	return p
}

func PlayLogKey(r *model.PlayRecord) string {
	return fmt.Sprintf("%s/%s/%d/%s.json", r.PlayerID, r.TrackID, r.Difficulty, r.RecordIndex)
}

func (p *PlayLog) Archive(ctx context.Context, record *model.PlayRecord, play *types.PlayRecordRequest) {
	if p.S3 == nil {
		return
	}

	body, err := json.Marshal(playLogEntry{
		Index:      record.RecordIndex,
		AcceptedAt: record.CreatedAt,
		Submission: play,
		PlayerID:   play.PlayerID,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to marshal play log")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	key := PlayLogKey(record)
	if _, err := p.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		log.Ctx(ctx).Warn().
			Str("evt.name", "playlog.archive.failed").
			Str("key", key).
			Err(err).
			Msg("failed to archive play log")
	}
}
