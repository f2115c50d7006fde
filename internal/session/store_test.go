package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massfitdev/massfit-bot/pkg/redis"
)

type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	val, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return val, nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) SessionKey(chatID int64) string {
	return fmt.Sprintf("massfit:session:%d", chatID)
}

func TestGetMissingSessionIsZeroState(t *testing.T) {
	store, err := NewStore(newFakeKV())
	require.NoError(t, err)

	state, err := store.Get(context.Background(), 100)
	require.NoError(t, err)
	assert.Empty(t, state.Step)
	assert.Empty(t, state.Fields)
}

func TestSetStepKeepsFields(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(newFakeKV())
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, 100, func(s *State) {
		s.Step = "product_name"
		s.Fields["name"] = "Detox Tea"
	}))
	require.NoError(t, store.SetStep(ctx, 100, "product_price"))

	state, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "product_price", state.Step)
	assert.Equal(t, "Detox Tea", state.Field("name"))
}

func TestUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(newFakeKV())
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, 7, func(s *State) {
		s.Fields["name"] = "Fruit Mix"
	}))
	require.NoError(t, store.Update(ctx, 7, func(s *State) {
		s.Fields["price"] = "45000"
	}))

	state, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Fruit Mix", state.Field("name"))
	assert.Equal(t, "45000", state.Field("price"))
}

func TestClearAbsentSessionIsNoop(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(newFakeKV())
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, 404))
}

func TestSaveAppliesTTL(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store, err := NewStore(kv)
	require.NoError(t, err)

	require.NoError(t, store.SetStep(ctx, 5, "awaiting_phone"))
	assert.Equal(t, 24*time.Hour, kv.ttls[kv.SessionKey(5)])
}

func TestSessionsAreIsolatedPerChat(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(newFakeKV())
	require.NoError(t, err)

	require.NoError(t, store.SetStep(ctx, 1, "a"))
	require.NoError(t, store.SetStep(ctx, 2, "b"))
	require.NoError(t, store.Clear(ctx, 1))

	state, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", state.Step)
}
