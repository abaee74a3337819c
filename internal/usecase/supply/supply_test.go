package supply

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/ghaniswara/medi-quest/internal/entity"
	statsCache "github.com/ghaniswara/medi-quest/internal/repository/stats"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSupplyRepo struct {
	supplies   map[uuid.UUID]entity.Supply
	statsCalls int
	// when set, CountByCategory signals counted after counting and waits for release
	counted chan struct{}
	release chan struct{}
}

func newMockSupplyRepo() *mockSupplyRepo {
	return &mockSupplyRepo{supplies: make(map[uuid.UUID]entity.Supply)}
}

func (m *mockSupplyRepo) ListSupplies(ctx context.Context) ([]entity.Supply, error) {
	out := []entity.Supply{}
	for _, s := range m.supplies {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSupplyRepo) GetSupplyByID(ctx context.Context, id uuid.UUID) (*entity.Supply, error) {
	s, ok := m.supplies[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockSupplyRepo) CreateSupply(ctx context.Context, supply *entity.Supply) (*entity.InsertResult, error) {
	supply.ID = uuid.New()
	m.supplies[supply.ID] = *supply
	return &entity.InsertResult{Acknowledged: true, InsertedID: supply.ID}, nil
}

func (m *mockSupplyRepo) UpsertSupply(ctx context.Context, id uuid.UUID, title, category string, amount float64) (*entity.UpdateResult, error) {
	_, matched := m.supplies[id]
	m.supplies[id] = entity.Supply{ID: id, Title: title, Category: category, Amount: amount}
	if matched {
		return &entity.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &entity.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
}

func (m *mockSupplyRepo) DeleteSupply(ctx context.Context, id uuid.UUID) (*entity.DeleteResult, error) {
	if _, ok := m.supplies[id]; !ok {
		return &entity.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.supplies, id)
	return &entity.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *mockSupplyRepo) CountByCategory(ctx context.Context) ([]entity.SupplyStat, error) {
	m.statsCalls++
	counts := map[string]int64{}
	for _, s := range m.supplies {
		counts[s.Category]++
	}
	out := []entity.SupplyStat{}
	for category, count := range counts {
		out = append(out, entity.SupplyStat{Category: category, Count: count})
	}
	if m.counted != nil {
		m.counted <- struct{}{}
		<-m.release
	}
	return out, nil
}

type memoryCache struct {
	entries     map[string][]byte
	generations map[string]int64
	failGet     bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries:     make(map[string][]byte),
		generations: make(map[string]int64),
	}
}

func (c *memoryCache) Generation(ctx context.Context, key string) (int64, error) {
	return c.generations[key], nil
}

func (c *memoryCache) Get(ctx context.Context, key string, v interface{}) (bool, error) {
	if c.failGet {
		return false, errors.New("cache down")
	}
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (c *memoryCache) Set(ctx context.Context, key string, generation int64, v interface{}) (bool, error) {
	if c.generations[key] != generation {
		return false, nil
	}
	data, err := json.Marshal(v)
	c.entries[key] = data
	return err == nil, err
}

func (c *memoryCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		c.generations[k]++
		delete(c.entries, k)
	}
	return nil
}

func newTestLogger(w io.Writer) *log.Logger {
	logger := log.New("test")
	logger.SetOutput(w)
	return logger
}

func newUseCase(repo *mockSupplyRepo, cache *memoryCache) ISupplyUseCase {
	return NewSupplyUseCase(repo, cache, newTestLogger(io.Discard))
}

func TestCreateThenListAndGet(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(newMockSupplyRepo(), newMemoryCache())

	res, err := uc.CreateSupply(ctx, entity.SupplyRequest{Title: "Gauze", Category: "Wound Care", Amount: 50})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	list, err := uc.ListSupplies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gauze", list[0].Title)

	got, err := uc.GetSupply(ctx, res.InsertedID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.Supply{ID: res.InsertedID, Title: "Gauze", Category: "Wound Care", Amount: 50}, *got)
}

func TestGetUnknownSupplyIsNil(t *testing.T) {
	got, err := newUseCase(newMockSupplyRepo(), newMemoryCache()).GetSupply(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateUnknownSupplyCreatesIt(t *testing.T) {
	ctx := context.Background()
	repo := newMockSupplyRepo()
	uc := newUseCase(repo, newMemoryCache())
	id := uuid.New()

	res, err := uc.UpdateSupply(ctx, id, entity.SupplyRequest{Title: "Masks", Category: "PPE", Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.MatchedCount)
	assert.Equal(t, int64(1), res.UpsertedCount)
	require.NotNil(t, res.UpsertedID)
	assert.Equal(t, id, *res.UpsertedID)

	got, err := uc.GetSupply(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.Supply{ID: id, Title: "Masks", Category: "PPE", Amount: 10}, *got)
}

func TestDeleteUnknownSupplyMatchesNothing(t *testing.T) {
	res, err := newUseCase(newMockSupplyRepo(), newMemoryCache()).DeleteSupply(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Equal(t, int64(0), res.DeletedCount)
}

func TestSupplyStatsGroupsByCategory(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(newMockSupplyRepo(), newMemoryCache())

	for _, c := range []string{"A", "A", "B"} {
		_, err := uc.CreateSupply(ctx, entity.SupplyRequest{Title: "x", Category: c})
		require.NoError(t, err)
	}

	stats, err := uc.GetSupplyStats(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []entity.SupplyStat{
		{Category: "A", Count: 2},
		{Category: "B", Count: 1},
	}, stats)
}

func TestSupplyStatsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMockSupplyRepo()
	cache := newMemoryCache()
	uc := newUseCase(repo, cache)

	_, err := uc.CreateSupply(ctx, entity.SupplyRequest{Title: "x", Category: "A"})
	require.NoError(t, err)

	_, err = uc.GetSupplyStats(ctx)
	require.NoError(t, err)
	_, err = uc.GetSupplyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.statsCalls)
	assert.Contains(t, cache.entries, statsCache.SupplyStatsKey)

	_, err = uc.CreateSupply(ctx, entity.SupplyRequest{Title: "y", Category: "B"})
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, statsCache.SupplyStatsKey)

	stats, err := uc.GetSupplyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.statsCalls)
	assert.Len(t, stats, 2)
}

func TestSupplyStatsFallsBackWhenCacheFails(t *testing.T) {
	ctx := context.Background()
	repo := newMockSupplyRepo()
	cache := newMemoryCache()
	cache.failGet = true
	var logs bytes.Buffer
	uc := NewSupplyUseCase(repo, cache, newTestLogger(&logs))

	stats, err := uc.GetSupplyStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.Equal(t, 1, repo.statsCalls)
	assert.Contains(t, logs.String(), "supply stats cache read: cache down")
}

func TestSupplyStatsNotCachedOverConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMockSupplyRepo()
	repo.counted = make(chan struct{})
	repo.release = make(chan struct{})
	cache := newMemoryCache()
	uc := newUseCase(repo, cache)

	before := make(chan []entity.SupplyStat)
	go func() {
		stats, err := uc.GetSupplyStats(ctx)
		assert.NoError(t, err)
		before <- stats
	}()

	<-repo.counted
	_, err := uc.CreateSupply(ctx, entity.SupplyRequest{Title: "Gauze", Category: "Wound Care", Amount: 50})
	require.NoError(t, err)
	close(repo.release)
	assert.Empty(t, <-before)

	assert.NotContains(t, cache.entries, statsCache.SupplyStatsKey)

	repo.counted = nil
	stats, err := uc.GetSupplyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.SupplyStat{{Category: "Wound Care", Count: 1}}, stats)
}
