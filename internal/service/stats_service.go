package service

import (
	"context"
	"fmt"
	"time"

	"gayish/internal/cache"
	"gayish/internal/model"
	"gayish/internal/repository"
)

// StatsService owns per-device statistics and achievement unlocking. The
// analysis pipeline reports each final score exactly once; everything else
// (persistence, unlock rules) lives here.
type StatsService struct {
	statsRepo  repository.StatsRepo
	scoreboard cache.ScoreboardCache
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepo, scoreboard cache.ScoreboardCache) *StatsService {
	return &StatsService{
		statsRepo:  statsRepo,
		scoreboard: scoreboard,
	}
}

// RecordResult folds one completed analysis into the device's stats and
// returns any achievements it unlocked.
func (s *StatsService) RecordResult(ctx context.Context, deviceID string, score int) ([]model.Achievement, error) {
	stats, err := s.loadOrInit(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	stats.AddTestResult(score)
	unlocked := s.checkUnlocks(stats, score)
	stats.UpdatedAt = time.Now()

	if err := s.statsRepo.Save(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to save stats: %w", err)
	}

	if err := s.scoreboard.UpdateBest(ctx, deviceID, score); err != nil {
		// Scoreboard is best-effort; the stats write already succeeded
		return unlocked, nil
	}

	return unlocked, nil
}

// RecordShare counts a poster share and unlocks the share achievement on
// the first one.
func (s *StatsService) RecordShare(ctx context.Context, deviceID string) ([]model.Achievement, error) {
	stats, err := s.loadOrInit(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	stats.ShareCount++
	var unlocked []model.Achievement
	if stats.ShareCount == 1 && !stats.HasAchievement(model.AchievementShareFirst) {
		for _, a := range model.AllAchievements() {
			if a.ID == model.AchievementShareFirst {
				stats.UnlockedAchievements = append(stats.UnlockedAchievements, a.ID)
				now := time.Now()
				a.IsUnlocked = true
				a.UnlockedAt = &now
				unlocked = append(unlocked, a)
			}
		}
	}
	stats.UpdatedAt = time.Now()

	if err := s.statsRepo.Save(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to save stats: %w", err)
	}
	return unlocked, nil
}

// GetStats returns the device's stats with the achievement catalog
// annotated by unlock state.
func (s *StatsService) GetStats(ctx context.Context, deviceID string) (*model.StatsResponse, error) {
	stats, err := s.loadOrInit(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	achievements := model.AllAchievements()
	for i := range achievements {
		achievements[i].IsUnlocked = stats.HasAchievement(achievements[i].ID)
	}

	rank, err := s.scoreboard.GetRank(ctx, deviceID)
	if err != nil {
		// Rank is best-effort like the rest of the scoreboard
		rank = -1
	}

	return &model.StatsResponse{
		Stats:        stats,
		Achievements: achievements,
		Rank:         rank,
	}, nil
}

// GetScoreboard returns the global top-N best scores.
func (s *StatsService) GetScoreboard(ctx context.Context, limit int) ([]cache.ScoreboardEntry, error) {
	return s.scoreboard.GetTop(ctx, limit)
}

func (s *StatsService) loadOrInit(ctx context.Context, deviceID string) (*model.UserStats, error) {
	stats, err := s.statsRepo.Get(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	if stats == nil {
		stats = &model.UserStats{DeviceID: deviceID}
	}
	return stats, nil
}

// checkUnlocks walks the catalog and unlocks everything the new state
// satisfies. Score achievements use this analysis's score; count
// achievements use the running test count.
func (s *StatsService) checkUnlocks(stats *model.UserStats, score int) []model.Achievement {
	var unlocked []model.Achievement
	now := time.Now()

	for _, a := range model.AllAchievements() {
		if stats.HasAchievement(a.ID) {
			continue
		}

		shouldUnlock := false
		if a.RequiredScore != nil && score >= *a.RequiredScore {
			shouldUnlock = true
		}
		if a.RequiredCount != nil && stats.TestCount >= *a.RequiredCount {
			shouldUnlock = true
		}

		if shouldUnlock {
			stats.UnlockedAchievements = append(stats.UnlockedAchievements, a.ID)
			a.IsUnlocked = true
			a.UnlockedAt = &now
			unlocked = append(unlocked, a)
		}
	}

	return unlocked
}
