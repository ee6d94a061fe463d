package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "test-owner"), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	target := 11.99
	goals := []*domain.Goal{
		{ID: "goal-1", Title: "Sub 12 100m", Category: domain.CategoryPerformance, Type: domain.MetricTime, Event: "100m", TargetValue: &target, Status: domain.GoalActive},
	}
	require.NoError(t, s.Save(ctx, KeyGoals, goals))

	var loaded []*domain.Goal
	require.NoError(t, s.Load(ctx, KeyGoals, &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, goals[0], loaded[0])
}

func TestRedisStoreLoadMissingKey(t *testing.T) {
	s, _ := newTestStore(t)

	var dest []*domain.Goal
	err := s.Load(context.Background(), KeyGoals, &dest)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestRedisStoreLoadMalformedValue(t *testing.T) {
	s, mr := newTestStore(t)

	mr.Set("trackside:state:test-owner:goals", "{not json")

	var dest []*domain.Goal
	err := s.Load(context.Background(), KeyGoals, &dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRecord)
	assert.Contains(t, err.Error(), "malformed stored value")
}

func TestRedisStoreOwnerIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	first := NewRedisStore(client, "athlete-a")
	second := NewRedisStore(client, "athlete-b")

	require.NoError(t, first.Save(ctx, KeyAchievements, []*domain.Achievement{{ID: "a1", Title: "First Goal"}}))

	var dest []*domain.Achievement
	assert.ErrorIs(t, second.Load(ctx, KeyAchievements, &dest), ErrNoRecord)
}
