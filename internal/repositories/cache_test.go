package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheTestHelper(t *testing.T) (redismock.ClientMock, CacheRepository) {
	t.Helper()
	t.Parallel()

	db, mock := redismock.NewClientMock()
	cacheRepo := NewCacheRepository(db)

	return mock, cacheRepo
}

func TestCacheRepository_SetIfNotExists(t *testing.T) {
	mock, rc := cacheTestHelper(t)

	key := models.IntentDedupKey("payroll-2026-03-jordan")

	tests := []struct {
		name    string
		doMock  func()
		want    bool
		wantErr bool
	}{
		{
			name: "first writer wins",
			doMock: func() {
				mock.ExpectSetNX(key, "int-1", 24*time.Hour).SetVal(true)
			},
			want: true,
		},
		{
			name: "key already held",
			doMock: func() {
				mock.ExpectSetNX(key, "int-1", 24*time.Hour).SetVal(false)
			},
			want: false,
		},
		{
			name: "redis closed",
			doMock: func() {
				mock.ExpectSetNX(key, "int-1", 24*time.Hour).SetErr(redis.ErrClosed)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doMock()

			got, err := rc.SetIfNotExists(context.TODO(), key, "int-1", 24*time.Hour)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Error(err)
			}
			mock.ClearExpect()
		})
	}
}

func TestCacheRepository_SetGetDel(t *testing.T) {
	mock, rc := cacheTestHelper(t)

	key := models.AttestationConsumedKey("att-1")

	mock.ExpectSet(key, "1", time.Hour).SetVal("OK")
	require.NoError(t, rc.Set(context.TODO(), key, "1", time.Hour))

	mock.ExpectGet(key).SetVal(" 1 ")
	got, err := rc.Get(context.TODO(), key)
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	mock.ExpectDel(key).SetVal(1)
	require.NoError(t, rc.Del(context.TODO(), key))

	mock.ExpectGet(key).RedisNil()
	_, err = rc.Get(context.TODO(), key)
	assert.ErrorIs(t, err, common.ErrDataNotFound)

	mock.ExpectGet(key).SetErr(redis.ErrClosed)
	_, err = rc.Get(context.TODO(), key)
	assert.ErrorIs(t, err, redis.ErrClosed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_IncrBy(t *testing.T) {
	mock, rc := cacheTestHelper(t)

	key := "velocity:USD:rcp-1:2026030110"

	mock.ExpectTxPipeline()
	mock.ExpectIncrBy(key, 50000).SetVal(70000)
	mock.ExpectExpire(key, 2*time.Hour).SetVal(true)
	mock.ExpectTxPipelineExec()

	total, err := rc.IncrBy(context.TODO(), key, 50000, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(70000), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_SumInts(t *testing.T) {
	mock, rc := cacheTestHelper(t)

	keys := []string{"velocity:USD:rcp-1:a", "velocity:USD:rcp-1:b", "velocity:USD:rcp-1:c"}

	mock.ExpectMGet(keys...).SetVal([]interface{}{"100", nil, "250"})
	total, err := rc.SumInts(context.TODO(), keys...)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	mock.ExpectMGet(keys...).SetVal([]interface{}{"abc", nil, nil})
	_, err = rc.SumInts(context.TODO(), keys...)
	assert.Error(t, err)

	total, err = rc.SumInts(context.TODO())
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}
