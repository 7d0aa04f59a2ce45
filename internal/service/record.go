package service

import (
	"context"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/repo"
)

type RecordSource interface {
	GetByIndex(ctx context.Context, index string) (*model.PlayRecord, error)
	GetPlayerBests(ctx context.Context, playerID, trackID string) ([]*model.PlayRecord, error)
}

type Record struct {
	Records RecordSource
}

func NewRecord(playRecordRepo *repo.PlayRecord) *Record {
	return &Record{Records: playRecordRepo}
}

func (s *Record) GetRecord(ctx context.Context, index string) (*types.RecordView, error) {
	record, err := s.Records.GetByIndex(ctx, index)
	if err != nil {
		return nil, storageError(ctx, "record.get", err)
	}
	return recordView(record), nil
}

// GetPlayerBests returns the best record of every difficulty a player has played on a track.
func (s *Record) GetPlayerBests(ctx context.Context, playerID, trackID string) ([]*types.RecordView, error) {
	records, err := s.Records.GetPlayerBests(ctx, playerID, trackID)
	if err != nil {
		return nil, storageError(ctx, "record.player_bests", err)
	}
	return recordViews(records), nil
}
