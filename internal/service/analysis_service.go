package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/google/uuid"

	"gayish/internal/cache"
	"gayish/internal/model"
	"gayish/internal/repository"
)

// AnalysisService coordinates one analysis request end to end: result
// cache, the interpretation pipeline, persistence, stats reporting and the
// live feed.
type AnalysisService struct {
	analyzer     *AnalyzerService
	analysisRepo repository.AnalysisRepo
	resultCache  cache.ResultCache
	statsSvc     *StatsService
	broadcaster  Broadcaster
}

// AnalysisOutcome is what the handler returns to the client.
type AnalysisOutcome struct {
	Result          *model.AnalysisResult `json:"result"`
	NewAchievements []model.Achievement   `json:"newAchievements,omitempty"`
	FromCache       bool                  `json:"fromCache"`
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	analyzer *AnalyzerService,
	analysisRepo repository.AnalysisRepo,
	resultCache cache.ResultCache,
	statsSvc *StatsService,
) *AnalysisService {
	return &AnalysisService{
		analyzer:     analyzer,
		analysisRepo: analysisRepo,
		resultCache:  resultCache,
		statsSvc:     statsSvc,
	}
}

// SetBroadcaster sets the broadcaster for live feed events
func (s *AnalysisService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// AnalyzeImage runs the full flow for one screenshot. A cache hit still
// counts as a completed analysis for stats; only the upstream call is
// skipped.
func (s *AnalysisService) AnalyzeImage(ctx context.Context, deviceID string, imageData []byte, mimeType string) (*AnalysisOutcome, error) {
	hash := imageHash(imageData)

	if cached, err := s.resultCache.Get(ctx, hash); err == nil && cached != nil {
		log.Printf("analysis cache hit for device %s", deviceID)
		unlocked := s.report(ctx, deviceID, cached.Result.TotalScore)
		return &AnalysisOutcome{
			Result:          &cached.Result,
			NewAchievements: unlocked,
			FromCache:       true,
		}, nil
	}

	result, modelID, err := s.analyzer.Analyze(ctx, imageData, mimeType)
	if err != nil {
		return nil, err
	}

	record := &model.AnalysisRecord{
		ID:        uuid.New().String(),
		DeviceID:  deviceID,
		Result:    *result,
		Model:     modelID,
		CreatedAt: time.Now(),
	}

	if err := s.analysisRepo.Save(ctx, record); err != nil {
		// The user already has their result; losing the history row is
		// not worth failing the request over
		log.Printf("failed to persist analysis %s: %v", record.ID, err)
	}
	if err := s.resultCache.Set(ctx, hash, record); err != nil {
		log.Printf("failed to cache analysis %s: %v", record.ID, err)
	}

	unlocked := s.report(ctx, deviceID, result.TotalScore)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastAnalysis(result)
	}

	return &AnalysisOutcome{
		Result:          result,
		NewAchievements: unlocked,
	}, nil
}

// History returns the device's recent analyses, newest first.
func (s *AnalysisService) History(ctx context.Context, deviceID string, limit int) ([]model.AnalysisRecord, error) {
	return s.analysisRepo.ListByDevice(ctx, deviceID, limit)
}

// report sends the final score to the stats collaborator, exactly once per
// completed analysis.
func (s *AnalysisService) report(ctx context.Context, deviceID string, score int) []model.Achievement {
	unlocked, err := s.statsSvc.RecordResult(ctx, deviceID, score)
	if err != nil {
		log.Printf("failed to record stats for device %s: %v", deviceID, err)
		return nil
	}
	return unlocked
}

func imageHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
