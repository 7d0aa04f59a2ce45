package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"urlate.dev/backend/internal/core/achievement"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/repo"
)

type patternKey struct {
	trackID    string
	difficulty int
}

// Catalog holds achievement definitions and patterns loaded once at startup.
// It has no mutation path; returned values must be treated as read-only.
type Catalog struct {
	achievements map[achievement.Index]*model.Achievement
	patterns     map[patternKey]*model.Pattern
}

func NewCatalog(achievementRepo *repo.Achievement, patternRepo *repo.Pattern) (*Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	var (
		achievements []*model.Achievement
		patterns     []*model.Pattern
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		achievements, err = achievementRepo.GetAchievements(ctx)
		return err
	})
	eg.Go(func() (err error) {
		patterns, err = patternRepo.GetPatterns(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		log.Error().
			Str("evt.name", "catalog.load.failed").
			Err(err).
			Msg("failed to load catalog")
		return nil, err
	}

	c := NewCatalogFrom(achievements, patterns)

	log.Info().
		Str("evt.name", "catalog.loaded").
		Int("achievements", len(c.achievements)).
		Int("patterns", len(c.patterns)).
		Msg("catalog loaded")

	return c, nil
}

func NewCatalogFrom(achievements []*model.Achievement, patterns []*model.Pattern) *Catalog {
	c := &Catalog{
		achievements: make(map[achievement.Index]*model.Achievement, len(achievements)),
		patterns:     make(map[patternKey]*model.Pattern, len(patterns)),
	}
	for _, a := range achievements {
		c.achievements[achievement.Index(a.AchievementIndex)] = a
	}
	for _, p := range patterns {
		c.patterns[patternKey{p.TrackID, p.Difficulty}] = p
	}
	return c
}

func (c *Catalog) Achievement(idx achievement.Index) (*model.Achievement, bool) {
	a, ok := c.achievements[idx]
	return a, ok
}

func (c *Catalog) Pattern(trackID string, difficulty int) (*model.Pattern, bool) {
	p, ok := c.patterns[patternKey{trackID, difficulty}]
	return p, ok
}
