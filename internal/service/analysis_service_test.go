package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gayish/internal/model"
)

type memAnalysisRepo struct {
	records []*model.AnalysisRecord
	saveErr error
}

func (r *memAnalysisRepo) Save(ctx context.Context, record *model.AnalysisRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memAnalysisRepo) ListByDevice(ctx context.Context, deviceID string, limit int) ([]model.AnalysisRecord, error) {
	var out []model.AnalysisRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].DeviceID == deviceID {
			out = append(out, *r.records[i])
		}
	}
	return out, nil
}

type memResultCache struct {
	data map[string]*model.AnalysisRecord
}

func newMemResultCache() *memResultCache {
	return &memResultCache{data: make(map[string]*model.AnalysisRecord)}
}

func (c *memResultCache) Get(ctx context.Context, imageHash string) (*model.AnalysisRecord, error) {
	return c.data[imageHash], nil
}

func (c *memResultCache) Set(ctx context.Context, imageHash string, record *model.AnalysisRecord) error {
	c.data[imageHash] = record
	return nil
}

type captureBroadcaster struct {
	results []*model.AnalysisResult
}

func (b *captureBroadcaster) BroadcastAnalysis(r *model.AnalysisResult) {
	b.results = append(b.results, r)
}

func newTestAnalysisService(repo *memAnalysisRepo, rc *memResultCache) (*AnalysisService, *memStatsRepo) {
	statsRepo := newMemStatsRepo()
	statsSvc := NewStatsService(statsRepo, newMemScoreboard())
	// Endpoint unset: the analyzer answers with the reference result and
	// no network call.
	analyzer := NewAnalyzerService(testConfig(""))
	return NewAnalysisService(analyzer, repo, rc, statsSvc), statsRepo
}

func TestAnalyzeImage_FullFlow(t *testing.T) {
	repo := &memAnalysisRepo{}
	rc := newMemResultCache()
	svc, statsRepo := newTestAnalysisService(repo, rc)

	bc := &captureBroadcaster{}
	svc.SetBroadcaster(bc)

	img := testImage(t)
	outcome, err := svc.AnalyzeImage(context.Background(), "dev_1", img, "image/png")
	require.NoError(t, err)

	assert.False(t, outcome.FromCache)
	assert.Equal(t, model.ReferenceResult(), outcome.Result)
	assert.NotEmpty(t, outcome.NewAchievements)

	// Persisted, cached, reported, broadcast
	require.Len(t, repo.records, 1)
	assert.Equal(t, "dev_1", repo.records[0].DeviceID)
	assert.Equal(t, "mock", repo.records[0].Model)
	assert.Len(t, rc.data, 1)
	assert.Equal(t, 1, statsRepo.data["dev_1"].TestCount)
	require.Len(t, bc.results, 1)
	assert.Equal(t, outcome.Result, bc.results[0])
}

func TestAnalyzeImage_CacheHitSkipsUpstreamButCountsForStats(t *testing.T) {
	repo := &memAnalysisRepo{}
	rc := newMemResultCache()
	svc, statsRepo := newTestAnalysisService(repo, rc)

	img := testImage(t)
	rc.data[imageHash(img)] = &model.AnalysisRecord{
		DeviceID: "dev_other",
		Result:   *model.ReferenceResult(),
	}

	outcome, err := svc.AnalyzeImage(context.Background(), "dev_1", img, "image/png")
	require.NoError(t, err)

	assert.True(t, outcome.FromCache)
	assert.Equal(t, 9, outcome.Result.TotalScore)
	// No new persistence on a hit, but the requesting device's stats move
	assert.Empty(t, repo.records)
	assert.Equal(t, 1, statsRepo.data["dev_1"].TestCount)
}

func TestAnalyzeImage_AnalyzerErrorPropagates(t *testing.T) {
	repo := &memAnalysisRepo{}
	svc, statsRepo := newTestAnalysisService(repo, newMemResultCache())

	_, err := svc.AnalyzeImage(context.Background(), "dev_1", []byte("not an image"), "image/png")
	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindImageEncoding, ae.Kind)

	assert.Empty(t, repo.records)
	assert.Nil(t, statsRepo.data["dev_1"])
}

func TestAnalyzeImage_PersistenceFailureDoesNotFailRequest(t *testing.T) {
	repo := &memAnalysisRepo{saveErr: errors.New("mongo down")}
	svc, _ := newTestAnalysisService(repo, newMemResultCache())

	outcome, err := svc.AnalyzeImage(context.Background(), "dev_1", testImage(t), "image/png")
	require.NoError(t, err)
	assert.NotNil(t, outcome.Result)
}

func TestHistory_NewestFirstPerDevice(t *testing.T) {
	repo := &memAnalysisRepo{}
	svc, _ := newTestAnalysisService(repo, newMemResultCache())
	ctx := context.Background()

	repo.records = []*model.AnalysisRecord{
		{ID: "a", DeviceID: "dev_1"},
		{ID: "b", DeviceID: "dev_2"},
		{ID: "c", DeviceID: "dev_1"},
	}

	records, err := svc.History(ctx, "dev_1", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
}
