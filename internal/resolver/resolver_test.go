package resolver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "posts/public", Key("posts", "public"))
	assert.Equal(t, "categories", Key("categories"))
}

func TestResolveCachesValue(t *testing.T) {
	c := New(DefaultTTL)
	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.Resolve(context.Background(), "categories", fetch)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, int32(1), calls, "resolved entry must be served without refetching")
}

func TestConcurrentResolveFetchesOnce(t *testing.T) {
	c := New(DefaultTTL)

	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	const waiters = 8
	var wg sync.WaitGroup
	results := make([]any, waiters)
	errs := make([]error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Resolve(context.Background(), "posts/public", fetch)
		}(i)
	}

	// Give every waiter time to attach to the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls, "concurrent resolves for one key must share a single fetch")
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, 42, results[i])
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := New(DefaultTTL)
	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	v, err := c.Resolve(context.Background(), "tags", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	c.Invalidate("tags")

	v, err = c.Resolve(context.Background(), "tags", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v, "invalidated key must refetch")
}

func TestInvalidateDuringFlightDiscardsResult(t *testing.T) {
	c := New(DefaultTTL)

	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
			return "pre-mutation list", nil
		}
		return "post-mutation list", nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Resolve(context.Background(), "categories", fetch)
	}()

	// The mutation lands while the fetch is still in flight; its
	// result must not repopulate the invalidated key.
	<-started
	c.Invalidate("categories")
	close(release)
	<-done

	v, err := c.Resolve(context.Background(), "categories", fetch)
	require.NoError(t, err)
	assert.Equal(t, "post-mutation list", v)
	assert.Equal(t, int32(2), calls, "Resolve after Invalidate must refetch, not serve the pre-mutation result")
}

func TestInvalidatePrefixCoversChildren(t *testing.T) {
	c := New(DefaultTTL)
	noop := func(ctx context.Context) (any, error) { return "x", nil }

	keys := []string{"posts", "posts/public/page=1", "posts/public/page=2", "post/7", "tags"}
	for _, k := range keys {
		_, err := c.Resolve(context.Background(), k, noop)
		require.NoError(t, err)
	}

	c.Invalidate("posts")

	assert.Equal(t, 2, c.Len(), "posts listings evicted, post/7 and tags kept")
}

func TestInvalidateDoesNotMatchPartialSegments(t *testing.T) {
	c := New(DefaultTTL)
	noop := func(ctx context.Context) (any, error) { return "x", nil }

	_, err := c.Resolve(context.Background(), "tags", noop)
	require.NoError(t, err)
	_, err = c.Resolve(context.Background(), "tagsandmore", noop)
	require.NoError(t, err)

	c.Invalidate("tags")
	assert.Equal(t, 1, c.Len())
}

func TestStaleEntryRefetched(t *testing.T) {
	c := New(time.Minute)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	_, err := c.Resolve(context.Background(), "categories", fetch)
	require.NoError(t, err)

	// Within the TTL: served from cache.
	clock = clock.Add(30 * time.Second)
	v, err := c.Resolve(context.Background(), "categories", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	// Past the TTL: the caller blocks on a fresh fetch, never a
	// stale value.
	clock = clock.Add(2 * time.Minute)
	v, err = c.Resolve(context.Background(), "categories", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestFailedFetchNotCached(t *testing.T) {
	c := New(DefaultTTL)
	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("backend down")
		}
		return "recovered", nil
	}

	_, err := c.Resolve(context.Background(), "post/1", fetch)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	v, err := c.Resolve(context.Background(), "post/1", fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestEmptyResultIsResolved(t *testing.T) {
	c := New(DefaultTTL)
	var calls int32
	fetch := func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{}, nil
	}

	v, err := Resolve(context.Background(), c, "posts/search=nonexistent-term", fetch)
	require.NoError(t, err)
	assert.Len(t, v, 0)

	_, err = Resolve(context.Background(), c, "posts/search=nonexistent-term", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls, "empty result must be cached as resolved, not refetched")
}

func TestTypedResolve(t *testing.T) {
	c := New(DefaultTTL)
	type page struct{ Total int }

	v, err := Resolve(context.Background(), c, "posts/page=1", func(ctx context.Context) (page, error) {
		return page{Total: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v.Total)
}
