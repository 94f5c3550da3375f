// Package kvtest holds the behaviour every ports.KeyValueStore backend must
// show. Backend packages call Run from their own tests.
package kvtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hp-grievance/portal/internal/core/ports"
)

const shortTTL = 150 * time.Millisecond

// Run exercises kv. Keys are prefixed with the subtest name, so one backend
// instance may be shared across calls.
func Run(t *testing.T, kv ports.KeyValueStore) {
	t.Helper()
	t.Run("GetSetDelete", func(t *testing.T) { testGetSetDelete(t, kv) })
	t.Run("CompareAndSwap", func(t *testing.T) { testCompareAndSwap(t, kv) })
	t.Run("ConcurrentCreate", func(t *testing.T) { testConcurrentCreate(t, kv) })
	t.Run("ConcurrentSwap", func(t *testing.T) { testConcurrentSwap(t, kv) })
	t.Run("SetWithTTL", func(t *testing.T) { testSetWithTTL(t, kv) })
}

func key(t *testing.T, name string) string {
	return t.Name() + "/" + name
}

func testGetSetDelete(t *testing.T, kv ports.KeyValueStore) {
	ctx := context.Background()
	k := key(t, "k")

	_, err := kv.Get(ctx, k)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	val := []byte("v1")
	require.NoError(t, kv.Set(ctx, k, val))
	val[0] = 'x'

	got, err := kv.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, kv.Set(ctx, k, []byte("v2")))
	got, err = kv.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, kv.Delete(ctx, k))
	_, err = kv.Get(ctx, k)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
	assert.NoError(t, kv.Delete(ctx, k), "deleting a missing key")
}

func testCompareAndSwap(t *testing.T, kv ports.KeyValueStore) {
	ctx := context.Background()
	k := key(t, "k")

	// nil prev requires the key to be absent
	require.NoError(t, kv.CompareAndSwap(ctx, k, nil, []byte("a")))
	assert.ErrorIs(t, kv.CompareAndSwap(ctx, k, nil, []byte("b")), ports.ErrConflict)

	assert.ErrorIs(t, kv.CompareAndSwap(ctx, k, []byte("stale"), []byte("b")), ports.ErrConflict)
	require.NoError(t, kv.CompareAndSwap(ctx, k, []byte("a"), []byte("b")))

	got, err := kv.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)

	assert.ErrorIs(t, kv.CompareAndSwap(ctx, key(t, "missing"), []byte("a"), []byte("b")), ports.ErrConflict)
}

// race runs fn from n goroutines at once and counts nil and ErrConflict
// results. Any other error fails the test.
func race(t *testing.T, n int, fn func(i int) error) (won, lost int) {
	t.Helper()
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make(chan error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs <- fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ports.ErrConflict):
			lost++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	return won, lost
}

func testConcurrentCreate(t *testing.T, kv ports.KeyValueStore) {
	ctx := context.Background()
	k := key(t, "k")
	const writers = 8

	won, lost := race(t, writers, func(i int) error {
		return kv.CompareAndSwap(ctx, k, nil, []byte(fmt.Sprintf("w%d", i)))
	})
	assert.Equal(t, 1, won)
	assert.Equal(t, writers-1, lost)
}

func testConcurrentSwap(t *testing.T, kv ports.KeyValueStore) {
	ctx := context.Background()
	k := key(t, "k")
	const writers = 8
	require.NoError(t, kv.Set(ctx, k, []byte("base")))

	won, lost := race(t, writers, func(i int) error {
		return kv.CompareAndSwap(ctx, k, []byte("base"), []byte(fmt.Sprintf("w%d", i)))
	})
	assert.Equal(t, 1, won)
	assert.Equal(t, writers-1, lost)

	got, err := kv.Get(ctx, k)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("base"), got)
}

func testSetWithTTL(t *testing.T, kv ports.KeyValueStore) {
	ctx := context.Background()
	expiring := key(t, "expiring")
	kept := key(t, "kept")

	require.NoError(t, kv.SetWithTTL(ctx, expiring, []byte("v"), shortTTL))
	got, err := kv.Get(ctx, expiring)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	// a plain Set clears an earlier expiry
	require.NoError(t, kv.SetWithTTL(ctx, kept, []byte("v"), shortTTL))
	require.NoError(t, kv.Set(ctx, kept, []byte("v2")))

	require.Eventually(t, func() bool {
		_, err := kv.Get(ctx, expiring)
		return errors.Is(err, ports.ErrKeyNotFound)
	}, 5*time.Second, 25*time.Millisecond)
	time.Sleep(shortTTL)

	got, err = kv.Get(ctx, kept)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	// an expired key counts as absent for creation
	require.NoError(t, kv.CompareAndSwap(ctx, expiring, nil, []byte("fresh")))
	got, err = kv.Get(ctx, expiring)
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), got)

	// ttl <= 0 never expires
	require.NoError(t, kv.SetWithTTL(ctx, key(t, "forever"), []byte("v"), 0))
	_, err = kv.Get(ctx, key(t, "forever"))
	assert.NoError(t, err)
}
