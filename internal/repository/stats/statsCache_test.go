package statsCache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutRedisNeverHits(t *testing.T) {
	ctx := context.Background()
	cache := New(nil, time.Minute)

	generation, err := cache.Generation(ctx, SupplyStatsKey)
	require.NoError(t, err)

	stored, err := cache.Set(ctx, SupplyStatsKey, generation, []int{1, 2})
	require.NoError(t, err)
	assert.False(t, stored)

	var got []int
	hit, err := cache.Get(ctx, SupplyStatsKey, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)

	assert.NoError(t, cache.Invalidate(ctx, SupplyStatsKey, DonationStatsKey))
}

func TestGenerationKeyIsDistinct(t *testing.T) {
	assert.Equal(t, ":stats:supplies:gen", generationKey(SupplyStatsKey))
	assert.NotEqual(t, generationKey(SupplyStatsKey), generationKey(DonationStatsKey))
}
