package editing

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_LoadSharesStore(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	ctx := context.Background()

	a, err := r.Load(ctx, "sid-1")
	require.NoError(t, err)
	a.Set("x", TextValue("1"))

	b, err := r.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Same(t, a, b)

	other, _ := r.Load(ctx, "sid-2")
	assert.Equal(t, 0, other.Len())
}

func TestMemoryRegistry_Sweep(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	now := time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	_, _ = r.Load(context.Background(), "old")
	now = now.Add(2 * time.Minute)
	_, _ = r.Load(context.Background(), "fresh")

	assert.Equal(t, 1, r.Sweep())
	s, _ := r.Load(context.Background(), "fresh")
	assert.NotNil(t, s)
}

func TestRedisRegistry_LoadMissing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisRegistry(db, "edit", time.Hour)

	mock.ExpectGetEx("edit:abc", time.Hour).RedisNil()
	s, err := r.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRegistry_SaveThenLoad(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisRegistry(db, "", time.Hour)

	s := NewStore()
	s.SetEditMode(true)
	s.Set("hero-title", TextValue("FEST"))
	bs, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	mock.ExpectSet("edit:abc", bs, time.Hour).SetVal("OK")
	require.NoError(t, r.Save(context.Background(), "abc", s))

	mock.ExpectGetEx("edit:abc", time.Hour).SetVal(string(bs))
	got, err := r.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, got.EditMode())
	v, _ := got.Text("hero-title")
	assert.Equal(t, "FEST", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRegistry_LoadSlidesExpiry(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisRegistry(db, "fest:edit", 24*time.Hour)

	s := NewStore()
	s.Set("venue-title", TextValue("VENUE INFO"))
	bs, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	// two reads without a write: each one renews the key's TTL
	mock.ExpectGetEx("fest:edit:op", 24*time.Hour).SetVal(string(bs))
	mock.ExpectGetEx("fest:edit:op", 24*time.Hour).SetVal(string(bs))
	for i := 0; i < 2; i++ {
		got, err := r.Load(context.Background(), "op")
		require.NoError(t, err)
		v, _ := got.Text("venue-title")
		assert.Equal(t, "VENUE INFO", v)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRegistry_NoTTLUsesGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisRegistry(db, "edit", 0)

	mock.ExpectGet("edit:abc").RedisNil()
	_, err := r.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
