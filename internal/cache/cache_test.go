package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return "", false, f.failErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return false, f.failErr
	}
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return true, nil
}

func (f *fakeStore) Del(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeStore) Close() error { return nil }

func sampleReport() *pipeline.Report {
	return &pipeline.Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
		Insights: []types.Insight{
			{Type: types.InsightHiringSurge, Company: "Acme", PercentChange: types.Float(50), Insight: "Acme is hiring"},
		},
		Recommendations: []types.Recommendation{
			{Type: "hiring_response", Priority: types.PriorityHigh, Recommendation: "Monitor Acme", Companies: []string{"Acme"}},
		},
	}
}

func TestReportCache_RoundTrip(t *testing.T) {
	store := newFakeStore()
	c := newWithStore(store, "test:", time.Hour)
	ctx := context.Background()

	report := sampleReport()
	require.NoError(t, c.Set(ctx, "abc", report))
	assert.Equal(t, time.Hour, store.ttls["test:abc"])

	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, report.RunID, got.RunID)
	assert.Equal(t, report.Insights, got.Insights)
	assert.Equal(t, report.Recommendations, got.Recommendations)
}

func TestReportCache_Miss(t *testing.T) {
	c := newWithStore(newFakeStore(), "test:", time.Hour)

	got, err := c.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestReportCache_CorruptEntryIsDropped(t *testing.T) {
	store := newFakeStore()
	store.data["test:bad"] = "{not json"
	c := newWithStore(store, "test:", time.Hour)

	got, err := c.Get(context.Background(), "bad")
	assert.NoError(t, err)
	assert.Nil(t, got)
	_, exists := store.data["test:bad"]
	assert.False(t, exists)
}

func TestReportCache_StoreErrors(t *testing.T) {
	store := newFakeStore()
	store.failErr = errors.New("redis down")
	c := newWithStore(store, "test:", time.Hour)
	ctx := context.Background()

	_, err := c.Get(ctx, "abc")
	assert.ErrorContains(t, err, "redis down")

	err = c.Set(ctx, "abc", sampleReport())
	assert.ErrorContains(t, err, "redis down")

	_, err = c.TryLock(ctx, "refresh", time.Minute)
	assert.ErrorContains(t, err, "redis down")
}

func TestReportCache_TryLock(t *testing.T) {
	c := newWithStore(newFakeStore(), "test:", time.Hour)
	ctx := context.Background()

	ok, err := c.TryLock(ctx, "refresh", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.TryLock(ctx, "refresh", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Unlock(ctx, "refresh"))
	ok, err = c.TryLock(ctx, "refresh", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(context.Background(), "not a url", time.Hour)
	assert.ErrorContains(t, err, "invalid redis url")
}
