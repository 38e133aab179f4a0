package pipeline

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/roomgrow/pkg/cache"
	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/grid"
	"github.com/matzehuels/roomgrow/pkg/observability"
	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/render"
)

// memCache is a map-backed cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func sampleInput(t *testing.T) render.Input {
	t.Helper()
	return render.Input{Layout: dungeon.Layout{
		Target: 2,
		Rooms: []dungeon.Room{
			{ID: 0, Label: dungeon.OriginLabel, Pos: grid.Origin, Footprint: "hall"},
			{ID: 1, Label: "Room 1", Pos: grid.Pos{X: 3, Y: 0}, Footprint: "hall"},
		},
	}}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) left nil fields: %+v", r)
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Rooms:   25,
		Seed:    3,
		Formats: []string{FormatJSON, FormatText, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.Placed != res.Layout.Len() || res.Layout.Len() == 0 {
		t.Errorf("Stats.Placed = %d, layout has %d rooms", res.Stats.Placed, res.Layout.Len())
	}
	if len(res.Artifacts) != 3 {
		t.Errorf("got %d artifacts, want 3", len(res.Artifacts))
	}
	if res.LayoutHash == "" {
		t.Error("LayoutHash should be set")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", res.CacheInfo)
	}
	// Builtin catalog: every footprint has geometry, so every room spawns.
	if len(res.Spawns) != res.Layout.Len() || len(res.SpawnWarnings) != 0 {
		t.Errorf("spawns %d, spawn warnings %d; want %d, 0", len(res.Spawns), len(res.SpawnWarnings), res.Layout.Len())
	}
}

func TestRunnerCachesLayoutAndArtifacts(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Rooms: 12, Seed: 8, Formats: []string{FormatText}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if !reflect.DeepEqual(first.Layout, second.Layout) {
		t.Error("cached layout differs from generated layout")
	}
	if string(first.Artifacts[FormatText]) != string(second.Artifacts[FormatText]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// A different seed is a different key.
	opts.Seed = 9
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("different seed should miss the layout cache")
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Rooms: 5}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("Refresh should not read the layout cache")
	}
}

func TestRunnerDeterministicWithoutCache(t *testing.T) {
	ctx := context.Background()
	a, err := NewRunner(cache.NewNullCache(), nil, nil).Execute(ctx, Options{Rooms: 40, Seed: 77})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunner(cache.NewNullCache(), nil, nil).Execute(ctx, Options{Rooms: 40, Seed: 77})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Layout, b.Layout) || !reflect.DeepEqual(a.Warnings, b.Warnings) {
		t.Error("same options produced different layouts")
	}
}

func TestRunnerNoFootprints(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	res, err := r.Execute(context.Background(), Options{Rooms: 5, Palette: []string{}})
	if !IsNoFootprints(err) {
		t.Fatalf("err = %v, want NO_FOOTPRINTS", err)
	}
	if res == nil {
		t.Fatal("partial result should be returned")
	}
	if res.Layout.Len() != 0 {
		t.Errorf("layout has %d rooms, want 0", res.Layout.Len())
	}
	if c.sets != 0 {
		t.Errorf("failed generation was cached (%d sets)", c.sets)
	}
}

func TestRunnerMissingGeometry(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Rooms:      6,
		Footprints: []palette.Footprint{palette.Sized("hall", 1, 1), {ID: "ghost"}},
		Palette:    []string{"ghost"},
	})
	if err != nil {
		t.Fatalf("missing geometry must not fail the run: %v", err)
	}
	if n := dungeon.CountWarnings(res.Warnings, dungeon.WarnMissingGeometry); n == 0 {
		t.Error("expected missing geometry warnings")
	}
	if len(res.Spawns) != 0 {
		t.Errorf("footprints without geometry should not spawn, got %d", len(res.Spawns))
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("invalid format should fail")
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(ctx, Options{Rooms: 50})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunnerConcurrentUse(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := r.Execute(context.Background(), Options{Rooms: 30, Seed: uint64(i%2 + 1)})
			if err != nil {
				t.Errorf("Execute: %v", err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()
	for i := 2; i < len(results); i++ {
		if results[i] == nil || results[i%2] == nil {
			continue
		}
		if !reflect.DeepEqual(results[i].Layout, results[i%2].Layout) {
			t.Errorf("run %d differs from run %d with the same seed", i, i%2)
		}
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu       sync.Mutex
	started  int
	finished int
	placed   int
}

func (h *recordingHooks) OnGenerateStart(context.Context, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *recordingHooks) OnGenerateComplete(_ context.Context, placed, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished++
	h.placed = placed
}

func TestRunnerEmitsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Rooms: 4})
	if err != nil {
		t.Fatal(err)
	}
	if h.started != 1 || h.finished != 1 {
		t.Errorf("hooks called %d/%d times, want 1/1", h.started, h.finished)
	}
	if h.placed != res.Layout.Len() {
		t.Errorf("hook saw %d rooms, result has %d", h.placed, res.Layout.Len())
	}
}
