package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/pollinator-abundance/internal/config"
	"github.com/jengzang/pollinator-abundance/internal/fixture"
	"github.com/jengzang/pollinator-abundance/internal/repository"
)

func TestOpenSeededDatabaseMatchesFixture(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "pollinator.db")
	ctx := context.Background()

	a, err := Open(cfg, nil)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.Cache)

	_, err = a.Service.CalculateDefault(ctx)
	require.Error(t, err, "empty database has no zones")

	w := struct {
		*repository.ZoneRepository
		*repository.SurfaceRepository
	}{repository.NewZoneRepository(a.DB), repository.NewSurfaceRepository(a.DB)}
	require.NoError(t, fixture.Default().SeedInto(ctx, w))

	got, err := a.Service.CalculateDefault(ctx)
	require.NoError(t, err)

	want, err := OpenFixture(cfg, nil).Service.CalculateDefault(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sqlite and fixture results differ (-fixture +sqlite):\n%s", diff)
	}

	_, misses := a.Cache.Stats()
	// The failed CA lookup was not cached, so the second run resolved the CA again and then the ROI
	assert.Equal(t, int64(3), misses)
}

func TestOpenFixtureWithoutCache(t *testing.T) {
	cfg := config.Default()
	cfg.CacheGeometry = false

	a := OpenFixture(cfg, nil)
	assert.Nil(t, a.Cache)
	assert.NoError(t, a.Close())
	assert.Equal(t, DefaultRequest(cfg), a.Service.Defaults())
}
