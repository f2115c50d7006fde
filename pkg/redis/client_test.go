package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massfitdev/massfit-bot/pkg/config"
)

type fakeStore struct {
	data    map[string]string
	expires map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, expires: map[string]time.Duration{}}
}

func (f *fakeStore) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	f.data[key] = toString(value)
	f.expires[key] = ttl
	cmd := goredis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeStore) Get(ctx context.Context, key string) *goredis.StringCmd {
	cmd := goredis.NewStringCmd(ctx)
	val, ok := f.data[key]
	if !ok {
		cmd.SetErr(goredis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	cmd := goredis.NewIntCmd(ctx)
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			delete(f.expires, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func newTestClient() (*Client, *fakeStore) {
	store := newFakeStore()
	return &Client{store: store}, store
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	client, store := newTestClient()

	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))
	assert.Equal(t, time.Minute, store.expires["k"])

	got, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, client.Del(ctx, "k"))

	_, err = client.Get(ctx, "k")
	assert.ErrorIs(t, err, Nil)
}

func TestSessionKey(t *testing.T) {
	client, _ := newTestClient()

	assert.Equal(t, "massfit:session:12345", client.SessionKey(12345))
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2"})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = optionsFromConfig(config.RedisConfig{Address: "127.0.0.1:6380", DB: 1, PoolSize: 4})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6380", opts.Addr)
	assert.Equal(t, 1, opts.DB)
	assert.Equal(t, 4, opts.PoolSize)
}
