package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/core/achievement"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/keylock"
)

var errInjected = errors.New("injected storage failure")

// memDB is an in-memory store whose transactions roll back on error.
type memDB struct {
	mu      sync.Mutex
	records []*model.PlayRecord
	players map[string]*model.Player
	earned  map[int]int64
	nextID  int64

	failOn string
	txOpts []*sql.TxOptions
}

func newMemDB() *memDB {
	return &memDB{
		players: map[string]*model.Player{},
		earned:  map[int]int64{},
	}
}

type memSnapshot struct {
	records []*model.PlayRecord
	players map[string]*model.Player
	earned  map[int]int64
	nextID  int64
}

func clonePlayer(p *model.Player) *model.Player {
	c := *p
	c.RecentPlay = append([]string{}, p.RecentPlay...)
	c.AchievementState = p.AchievementState.Clone()
	c.RankHistory = append([]int{}, p.RankHistory...)
	return &c
}

func (m *memDB) snapshot() memSnapshot {
	s := memSnapshot{
		players: map[string]*model.Player{},
		earned:  map[int]int64{},
		nextID:  m.nextID,
	}
	for _, r := range m.records {
		c := *r
		s.records = append(s.records, &c)
	}
	for k, p := range m.players {
		s.players[k] = clonePlayer(p)
	}
	for k, v := range m.earned {
		s.earned[k] = v
	}
	return s
}

func (m *memDB) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	m.mu.Lock()
	m.txOpts = append(m.txOpts, opts)
	snap := m.snapshot()
	m.mu.Unlock()

	if err := fn(ctx, bun.Tx{}); err != nil {
		m.mu.Lock()
		m.records, m.players, m.earned, m.nextID = snap.records, snap.players, snap.earned, snap.nextID
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memDB) fail(op string) error {
	if m.failOn == op {
		return errInjected
	}
	return nil
}

func matches(r *model.PlayRecord, key model.RecordKey) bool {
	return r.PlayerID == key.PlayerID && r.TrackID == key.TrackID && r.Difficulty == key.Difficulty
}

func (m *memDB) GetBest(ctx context.Context, idb bun.IDB, key model.RecordKey) (*model.PlayRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if matches(r, key) && r.IsBest {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memDB) GetRatingBest(ctx context.Context, idb bun.IDB, key model.RecordKey) (*model.PlayRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *model.PlayRecord
	for _, r := range m.records {
		if matches(r, key) && r.Rating > 0 && (best == nil || r.Rating > best.Rating) {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}
	c := *best
	return &c, nil
}

func (m *memDB) Create(ctx context.Context, idb bun.IDB, record *model.PlayRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Create"); err != nil {
		return err
	}
	m.nextID++
	record.RecordID = m.nextID
	c := *record
	m.records = append(m.records, &c)
	return nil
}

func (m *memDB) update(recordID int64, fn func(r *model.PlayRecord)) error {
	for _, r := range m.records {
		if r.RecordID == recordID {
			fn(r)
			return nil
		}
	}
	return errors.Errorf("record %d not found", recordID)
}

func (m *memDB) RetireBest(ctx context.Context, idb bun.IDB, recordID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(recordID, func(r *model.PlayRecord) { r.IsBest = false })
}

func (m *memDB) RetireRating(ctx context.Context, idb bun.IDB, recordID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(recordID, func(r *model.PlayRecord) { r.Rating = 0 })
}

func (m *memDB) OutranksOthers(ctx context.Context, idb bun.IDB, key model.RecordKey, record int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.TrackID == key.TrackID && r.Difficulty == key.Difficulty &&
			r.PlayerID != key.PlayerID && r.IsBest && r.Record >= record {
			return false, nil
		}
	}
	return true, nil
}

func (m *memDB) GetForUpdate(ctx context.Context, idb bun.IDB, playerID string) (*model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[playerID]
	if !ok {
		p = &model.Player{PlayerID: playerID}
		m.players[playerID] = p
	}
	return clonePlayer(p), nil
}

func (m *memDB) UpdateStats(ctx context.Context, idb bun.IDB, playerID string, stats model.PlayerStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateStats"); err != nil {
		return err
	}
	m.players[playerID].PlayerStats = stats
	return nil
}

func (m *memDB) UpdateAchievementState(ctx context.Context, idb bun.IDB, playerID string, state model.AchievementState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateAchievementState"); err != nil {
		return err
	}
	m.players[playerID].AchievementState = state
	return nil
}

func (m *memDB) IncrementEarnedCount(ctx context.Context, idb bun.IDB, indices []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range indices {
		m.earned[i]++
	}
	return nil
}

func (m *memDB) ListByRating(ctx context.Context, idb bun.IDB) ([]*model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := make([]*model.Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, clonePlayer(p))
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].PlayerID < players[j].PlayerID
	})
	return players, nil
}

func (m *memDB) UpdateRanks(ctx context.Context, idb bun.IDB, players []*model.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateRanks"); err != nil {
		return err
	}
	for _, p := range players {
		m.players[p.PlayerID].Rank = p.Rank
		m.players[p.PlayerID].RankHistory = append([]int{}, p.RankHistory...)
	}
	return nil
}

func (m *memDB) rows(key model.RecordKey) []*model.PlayRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.PlayRecord
	for _, r := range m.records {
		if matches(r, key) {
			c := *r
			out = append(out, &c)
		}
	}
	return out
}

func (m *memDB) player(id string) *model.Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return nil
	}
	return clonePlayer(p)
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (keylock.Lease, error) {
	return nil, errors.Wrap(keylock.ErrBusy, "held")
}

type countingLocker struct {
	*keylock.Local
	acquired int
}

func (c *countingLocker) Acquire(ctx context.Context, key string) (keylock.Lease, error) {
	c.acquired++
	return c.Local.Acquire(ctx, key)
}

type recordingNotifier struct {
	records      []*types.RecordNotification
	achievements []*types.AchievementNotification
}

func (n *recordingNotifier) NotifyRecord(_ context.Context, msg *types.RecordNotification) {
	n.records = append(n.records, msg)
}

func (n *recordingNotifier) NotifyAchievements(_ context.Context, msg *types.AchievementNotification) {
	n.achievements = append(n.achievements, msg)
}

type recordingInvalidator struct {
	keys []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, trackID string, difficulty int) {
	r.keys = append(r.keys, leaderboardPrefix(trackID, difficulty))
}

type recordingArchiver struct {
	indices []string
}

func (r *recordingArchiver) Archive(_ context.Context, record *model.PlayRecord, _ *types.PlayRecordRequest) {
	r.indices = append(r.indices, record.RecordIndex)
}

func testCatalog() *Catalog {
	return NewCatalogFrom(
		[]*model.Achievement{
			{AchievementIndex: int(achievement.TutorialClear), Context: string(achievement.ContextTutorialClear),
				Title:   map[string]string{"en": "Hello, URLATE"},
				Rewards: []model.Reward{{Kind: model.RewardKindBanner, Value: 1}}},
			{AchievementIndex: int(achievement.AllPerfect), Context: string(achievement.ContextJudge),
				Rewards: []model.Reward{{Kind: model.RewardKindAlias, Value: 20}}},
			{AchievementIndex: int(achievement.FullCombo), Context: string(achievement.ContextJudge),
				Rewards: []model.Reward{{Kind: model.RewardKindReward, Value: 99}}},
			{AchievementIndex: int(achievement.Rank1), Context: string(achievement.ContextRank),
				Rewards: []model.Reward{{Kind: model.RewardKindAlias, Value: 101}}},
			{AchievementIndex: int(achievement.Rank10), Context: string(achievement.ContextRank),
				Rewards: []model.Reward{{Kind: model.RewardKindAlias, Value: 110}}},
			{AchievementIndex: int(achievement.Rank50), Context: string(achievement.ContextRank),
				Rewards: []model.Reward{{Kind: model.RewardKindAlias, Value: 150}}},
			{AchievementIndex: int(achievement.Rank100), Context: string(achievement.ContextRank),
				Rewards: []model.Reward{{Kind: model.RewardKindAlias, Value: 200}}},
		},
		[]*model.Pattern{
			{TrackID: "kyoukai", Difficulty: 12, Level: 12, Notes: 1000},
		},
	)
}
