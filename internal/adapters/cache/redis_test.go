package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rdb, err := NewRedisClient(ctx, Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}

func TestRedisClient_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	rdb, err := NewRedisClient(context.Background(), Options{
		Addr:     getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", "secret_redis_pass_local"),
		DB:       1,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err(), "Failed to flush test DB")

	t.Run("Set and Get Value", func(t *testing.T) {
		key := "profile:test"
		require.NoError(t, rdb.Set(ctx, key, `{"user_id":"test"}`, time.Minute).Err())

		val, err := rdb.Get(ctx, key).Result()
		assert.NoError(t, err)
		assert.Equal(t, `{"user_id":"test"}`, val)

		rdb.Del(ctx, key)
	})

	t.Run("Expire Check", func(t *testing.T) {
		key := "test_expire"
		require.NoError(t, rdb.Set(ctx, key, "expire_me", time.Second).Err())

		time.Sleep(1100 * time.Millisecond)

		_, err := rdb.Get(ctx, key).Result()
		assert.ErrorIs(t, err, redis.Nil, "Errors need to be of type 'redis.Nil'")
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				key := fmt.Sprintf("concurrent_key_%d", id)
				assert.NoError(t, rdb.Set(ctx, key, "val", 10*time.Second).Err())

				_, err := rdb.Get(ctx, key).Result()
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()
	})
}
