package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gayish/internal/cache"
	"gayish/internal/model"
)

type memStatsRepo struct {
	data    map[string]*model.UserStats
	saveErr error
}

func newMemStatsRepo() *memStatsRepo {
	return &memStatsRepo{data: make(map[string]*model.UserStats)}
}

func (r *memStatsRepo) Get(ctx context.Context, deviceID string) (*model.UserStats, error) {
	return r.data[deviceID], nil
}

func (r *memStatsRepo) Save(ctx context.Context, stats *model.UserStats) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *stats
	r.data[stats.DeviceID] = &copied
	return nil
}

type memScoreboard struct {
	best      map[string]int
	updateErr error
}

func newMemScoreboard() *memScoreboard {
	return &memScoreboard{best: make(map[string]int)}
}

func (s *memScoreboard) UpdateBest(ctx context.Context, deviceID string, score int) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if score > s.best[deviceID] {
		s.best[deviceID] = score
	}
	return nil
}

func (s *memScoreboard) GetTop(ctx context.Context, limit int) ([]cache.ScoreboardEntry, error) {
	var out []cache.ScoreboardEntry
	for id, score := range s.best {
		out = append(out, cache.ScoreboardEntry{DeviceID: id, Score: score})
	}
	return out, nil
}

func (s *memScoreboard) GetRank(ctx context.Context, deviceID string) (int64, error) {
	if _, ok := s.best[deviceID]; !ok {
		return -1, nil
	}
	return 1, nil
}

func achievementIDs(as []model.Achievement) []string {
	ids := make([]string, len(as))
	for i, a := range as {
		ids[i] = a.ID
	}
	return ids
}

func TestRecordResult_FirstHighScoreUnlocks(t *testing.T) {
	repo := newMemStatsRepo()
	svc := NewStatsService(repo, newMemScoreboard())

	unlocked, err := svc.RecordResult(context.Background(), "dev_1", 9)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"first_test", "score_5", "score_7", "score_9"},
		achievementIDs(unlocked))
	for _, a := range unlocked {
		assert.True(t, a.IsUnlocked)
		assert.NotNil(t, a.UnlockedAt)
	}

	saved := repo.data["dev_1"]
	require.NotNil(t, saved)
	assert.Equal(t, 1, saved.TestCount)
	assert.Equal(t, 9, saved.HighestScore)
	assert.Equal(t, 9.0, saved.AverageScore)
}

func TestRecordResult_NoDoubleUnlock(t *testing.T) {
	svc := NewStatsService(newMemStatsRepo(), newMemScoreboard())
	ctx := context.Background()

	_, err := svc.RecordResult(ctx, "dev_1", 9)
	require.NoError(t, err)

	unlocked, err := svc.RecordResult(ctx, "dev_1", 9)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestRecordResult_CountAchievements(t *testing.T) {
	svc := NewStatsService(newMemStatsRepo(), newMemScoreboard())
	ctx := context.Background()

	_, err := svc.RecordResult(ctx, "dev_1", 1)
	require.NoError(t, err)
	unlocked, err := svc.RecordResult(ctx, "dev_1", 1)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	unlocked, err = svc.RecordResult(ctx, "dev_1", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"test_3"}, achievementIDs(unlocked))
}

func TestRecordResult_RunningAverage(t *testing.T) {
	repo := newMemStatsRepo()
	svc := NewStatsService(repo, newMemScoreboard())
	ctx := context.Background()

	_, err := svc.RecordResult(ctx, "dev_1", 4)
	require.NoError(t, err)
	_, err = svc.RecordResult(ctx, "dev_1", 8)
	require.NoError(t, err)

	saved := repo.data["dev_1"]
	assert.Equal(t, 2, saved.TestCount)
	assert.Equal(t, 8, saved.HighestScore)
	assert.InDelta(t, 6.0, saved.AverageScore, 0.001)
}

func TestRecordResult_ScoreboardFailureIsBestEffort(t *testing.T) {
	repo := newMemStatsRepo()
	board := newMemScoreboard()
	board.updateErr = errors.New("redis down")
	svc := NewStatsService(repo, board)

	unlocked, err := svc.RecordResult(context.Background(), "dev_1", 9)
	require.NoError(t, err)
	assert.NotEmpty(t, unlocked)
	assert.NotNil(t, repo.data["dev_1"])
}

func TestRecordResult_SaveFailure(t *testing.T) {
	repo := newMemStatsRepo()
	repo.saveErr = errors.New("mongo down")
	svc := NewStatsService(repo, newMemScoreboard())

	_, err := svc.RecordResult(context.Background(), "dev_1", 9)
	assert.Error(t, err)
}

func TestRecordShare_UnlocksOnlyOnce(t *testing.T) {
	repo := newMemStatsRepo()
	svc := NewStatsService(repo, newMemScoreboard())
	ctx := context.Background()

	unlocked, err := svc.RecordShare(ctx, "dev_1")
	require.NoError(t, err)
	assert.Equal(t, []string{model.AchievementShareFirst}, achievementIDs(unlocked))

	unlocked, err = svc.RecordShare(ctx, "dev_1")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
	assert.Equal(t, 2, repo.data["dev_1"].ShareCount)
}

func TestGetStats_AnnotatesCatalog(t *testing.T) {
	svc := NewStatsService(newMemStatsRepo(), newMemScoreboard())
	ctx := context.Background()

	_, err := svc.RecordResult(ctx, "dev_1", 5)
	require.NoError(t, err)

	resp, err := svc.GetStats(ctx, "dev_1")
	require.NoError(t, err)
	require.Len(t, resp.Achievements, len(model.AllAchievements()))

	byID := make(map[string]bool)
	for _, a := range resp.Achievements {
		byID[a.ID] = a.IsUnlocked
	}
	assert.True(t, byID["first_test"])
	assert.True(t, byID["score_5"])
	assert.False(t, byID["score_7"])
	assert.False(t, byID[model.AchievementShareFirst])
	assert.Equal(t, int64(1), resp.Rank)
}

func TestGetStats_UnknownDeviceStartsEmpty(t *testing.T) {
	svc := NewStatsService(newMemStatsRepo(), newMemScoreboard())

	resp, err := svc.GetStats(context.Background(), "dev_new")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stats.TestCount)
	assert.Equal(t, int64(-1), resp.Rank)
	for _, a := range resp.Achievements {
		assert.False(t, a.IsUnlocked)
	}
}
