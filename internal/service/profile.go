package service

import (
	"context"

	"github.com/jinzhu/copier"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/repo"
)

type ProfileSource interface {
	GetPlayer(ctx context.Context, playerID string) (*model.Player, error)
}

type Profile struct {
	Players ProfileSource
}

func NewProfile(playerRepo *repo.Player) *Profile {
	return &Profile{Players: playerRepo}
}

func (s *Profile) GetProfile(ctx context.Context, playerID string) (*types.ProfileResponse, error) {
	player, err := s.Players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, storageError(ctx, "profile.get", err)
	}

	var resp types.ProfileResponse
	if err := copier.CopyWithOption(&resp, player, copier.Option{DeepCopy: true}); err != nil {
		return nil, storageError(ctx, "profile.copy", err)
	}
	resp.OwnedAlias = append([]int{}, player.OwnedAlias...)
	resp.OwnedBanner = append([]int{}, player.OwnedBanner...)
	return &resp, nil
}
