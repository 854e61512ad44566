package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
)

type countingResolver struct {
	calls   atomic.Int64
	release chan struct{}
}

func (r *countingResolver) Zone(ctx context.Context, kind models.ZoneKind, id int64) (models.Zone, error) {
	r.calls.Add(1)
	if r.release != nil {
		<-r.release
	}
	if id == 99 {
		return models.Zone{}, fmt.Errorf("%s %d: %w", kind, id, pollination.ErrDataNotFound)
	}
	return models.Zone{
		ID: id, Kind: kind, CRS: models.CRSProjected,
		Ring: []models.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
	}, nil
}

func TestGeometryCacheReturnsCopies(t *testing.T) {
	next := &countingResolver{}
	c := NewGeometryCache(next)
	ctx := context.Background()

	first, err := c.Zone(ctx, models.ZoneKindCA, 1)
	require.NoError(t, err)
	first.Ring[0].X = 100

	second, err := c.Zone(ctx, models.ZoneKindCA, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, second.Ring[0].X, "cached zone must not be shared")
	assert.Equal(t, int64(1), next.calls.Load())

	// Kinds do not collide
	_, err = c.Zone(ctx, models.ZoneKindROI, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.calls.Load())

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestGeometryCacheDoesNotCacheErrors(t *testing.T) {
	next := &countingResolver{}
	c := NewGeometryCache(next)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.Zone(ctx, models.ZoneKindCA, 99)
		assert.ErrorIs(t, err, pollination.ErrDataNotFound)
	}
	assert.Equal(t, int64(2), next.calls.Load())
}

func TestGeometryCacheConcurrentFirstAccess(t *testing.T) {
	next := &countingResolver{release: make(chan struct{})}
	c := NewGeometryCache(next)

	const callers = 16
	var started sync.WaitGroup
	started.Add(callers)

	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			started.Done()
			z, err := c.Zone(context.Background(), models.ZoneKindCA, 7)
			if err == nil && z.ID != 7 {
				err = fmt.Errorf("got zone %d", z.ID)
			}
			return err
		})
	}

	started.Wait()
	close(next.release)
	require.NoError(t, g.Wait())

	// Callers that arrived after the shared lookup finished hit the cache
	assert.Equal(t, int64(1), next.calls.Load())
}

// gatedResolver blocks every lookup until release is closed
type gatedResolver struct {
	calls   atomic.Int64
	entered chan struct{}
	release chan struct{}
	ctxErr  atomic.Value // error seen by the lookup once released
}

func (r *gatedResolver) Zone(ctx context.Context, kind models.ZoneKind, id int64) (models.Zone, error) {
	if r.calls.Add(1) == 1 {
		close(r.entered)
	}
	<-r.release
	r.ctxErr.Store(fmt.Sprint(ctx.Err()))
	if err := ctx.Err(); err != nil {
		return models.Zone{}, err
	}
	return models.Zone{ID: id, Kind: kind, CRS: models.CRSProjected}, nil
}

func TestGeometryCacheCancelledCallerDoesNotFailOthers(t *testing.T) {
	next := &gatedResolver{entered: make(chan struct{}), release: make(chan struct{})}
	c := NewGeometryCache(next)

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.Zone(leaderCtx, models.ZoneKindCA, 1)
		leaderErr <- err
	}()
	<-next.entered

	type result struct {
		zone models.Zone
		err  error
	}
	follower := make(chan result, 1)
	go func() {
		z, err := c.Zone(context.Background(), models.ZoneKindCA, 1)
		follower <- result{z, err}
	}()

	// The leader gives up while the shared lookup is still running
	cancel()
	select {
	case err := <-leaderErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller kept waiting for the lookup")
	}

	// Give the follower time to join the in-flight lookup before it completes
	time.Sleep(20 * time.Millisecond)
	close(next.release)

	res := <-follower
	require.NoError(t, res.err)
	assert.Equal(t, int64(1), res.zone.ID)
	assert.Equal(t, "<nil>", next.ctxErr.Load(), "lookup must not see the leader's cancellation")
	assert.Equal(t, int64(1), next.calls.Load())

	// The completed lookup is cached for later callers
	_, err := c.Zone(context.Background(), models.ZoneKindCA, 1)
	require.NoError(t, err)
	hits, misses := c.Stats()
	assert.GreaterOrEqual(t, hits, int64(1))
	assert.Equal(t, int64(1), misses)
}

