package querycache

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func counter(n *atomic.Int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		n.Add(1)
		return value, nil
	}
}

func TestFetchCachesResult(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	var calls atomic.Int32

	v, err := Fetch(ctx, c, "equipment|1", []Tag{ItemTag("Equipment", "1")}, counter(&calls, "drill"))
	require.NoError(t, err)
	require.Equal(t, "drill", v)

	v, err = Fetch(ctx, c, "equipment|1", []Tag{ItemTag("Equipment", "1")}, counter(&calls, "other"))
	require.NoError(t, err)
	require.Equal(t, "drill", v)
	require.Equal(t, int32(1), calls.Load())
	require.True(t, c.Cached("equipment|1"))
	require.Equal(t, 1, c.Len())
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := Fetch(ctx, c, "k", nil, func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	require.False(t, c.Cached("k"))

	v, err := Fetch(ctx, c, "k", nil, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestConcurrentFetchesShareOneCall(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(ctx, c, "roles|list", []Tag{ListTag("Roles")}, func(context.Context) (string, error) {
				calls.Add(1)
				<-release
				return "roles", nil
			})
			require.NoError(t, err)
			require.Equal(t, "roles", v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
}

func TestInvalidateByListAndItemTags(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	var calls atomic.Int32

	_, _ = Fetch(ctx, c, "assignments|p1", []Tag{ListTag("Assignments")}, counter(&calls, "page"))
	_, _ = Fetch(ctx, c, "assignments|a1", []Tag{ItemTag("Assignments", "a1")}, counter(&calls, "a1"))
	_, _ = Fetch(ctx, c, "assignments|a2", []Tag{ItemTag("Assignments", "a2")}, counter(&calls, "a2"))
	_, _ = Fetch(ctx, c, "equipment|p1", []Tag{ListTag("Equipment")}, counter(&calls, "eq"))

	n := c.Invalidate(ListTag("Assignments"), ItemTag("Assignments", "a1"))
	require.Equal(t, 2, n)
	require.False(t, c.Cached("assignments|p1"))
	require.False(t, c.Cached("assignments|a1"))
	require.True(t, c.Cached("assignments|a2"))
	require.True(t, c.Cached("equipment|p1"))

	require.Equal(t, 2, c.Invalidate(TypeTag("Assignments"), TypeTag("Equipment")))
	require.Zero(t, c.Len())
	require.Zero(t, c.Invalidate(ListTag("Assignments")))
}

func TestInvalidationDuringFetchDiscardsResult(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string)
	go func() {
		v, err := Fetch(ctx, c, "liquidations|p1", []Tag{ListTag("Liquidations")}, func(context.Context) (string, error) {
			close(started)
			<-release
			return "before-approve", nil
		})
		require.NoError(t, err)
		done <- v
	}()

	<-started
	require.Equal(t, 1, c.Invalidate(ListTag("Liquidations")))
	close(release)
	require.Equal(t, "before-approve", <-done)
	require.False(t, c.Cached("liquidations|p1"))

	v, err := Fetch(ctx, c, "liquidations|p1", []Tag{ListTag("Liquidations")}, func(context.Context) (string, error) {
		return "after-approve", nil
	})
	require.NoError(t, err)
	require.Equal(t, "after-approve", v)
}

func TestSubscribersAreNotified(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	_, _ = Fetch(ctx, c, "maintenances|p1", []Tag{ListTag("Maintenances")}, func(context.Context) (int, error) { return 1, nil })

	ch, cancel := c.Subscribe("maintenances|p1")
	other, cancelOther := c.Subscribe("unrelated")
	defer cancelOther()

	c.Invalidate(ListTag("Maintenances"))
	c.Invalidate(ListTag("Maintenances"))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("subscriber was not notified")
	}
	select {
	case <-other:
		t.Fatal("unrelated subscriber notified")
	default:
	}

	cancel()
	cancel()
}

func TestResetDropsEverything(t *testing.T) {
	c := New(Options{})
	ctx := context.Background()
	_, _ = Fetch(ctx, c, "a", []Tag{ListTag("Users")}, func(context.Context) (int, error) { return 1, nil })
	_, _ = Fetch(ctx, c, "b", []Tag{ListTag("Roles")}, func(context.Context) (int, error) { return 2, nil })

	c.Reset()
	require.Zero(t, c.Len())
	require.Zero(t, c.Invalidate(ListTag("Users")))
}

func TestTTLExpiry(t *testing.T) {
	c := New(Options{TTL: 20 * time.Millisecond, CleanupInterval: time.Minute})
	ctx := context.Background()
	var calls atomic.Int32

	_, _ = Fetch(ctx, c, "k", nil, counter(&calls, "v"))
	time.Sleep(40 * time.Millisecond)
	_, _ = Fetch(ctx, c, "k", nil, counter(&calls, "v"))
	require.Equal(t, int32(2), calls.Load())
}

func TestKey(t *testing.T) {
	q := url.Values{"status": {"Pending"}, "pageNumber": {"1"}}
	require.Equal(t, "maintenances.list|pageNumber=1&status=Pending", Key("maintenances.list", q))
	require.Equal(t, "equipment.get|e1", Key("equipment.get", "e1"))
	require.Equal(t, `x|{"a":1}`, Key("x", map[string]int{"a": 1}))
	require.Equal(t, "Equipment:LIST", ListTag("Equipment").String())
	require.Equal(t, "Equipment", TypeTag("Equipment").String())
}
