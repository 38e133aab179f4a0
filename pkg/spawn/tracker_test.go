package spawn

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/rng"
)

type failingSpawner struct {
	*MemorySpawner
	failInstantiateAt int
	failDestroy       bool
	calls             int
}

func (f *failingSpawner) Instantiate(ctx context.Context, req Request) (Handle, error) {
	f.calls++
	if f.calls == f.failInstantiateAt {
		return "", errors.New("boom")
	}
	return f.MemorySpawner.Instantiate(ctx, req)
}

func (f *failingSpawner) Destroy(ctx context.Context, h Handle) error {
	if f.failDestroy {
		return errors.New("stuck")
	}
	return f.MemorySpawner.Destroy(ctx, h)
}

func TestTrackerSpawnAndTeardown(t *testing.T) {
	ctx := context.Background()
	mem := NewMemorySpawner()
	tr := NewTracker(mem, nil)

	reqs, _ := Translate(testLayout(), CatalogRegistry(testCatalog(t)))
	if err := tr.Spawn(ctx, reqs); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if tr.Len() != 2 || mem.Len() != 2 {
		t.Fatalf("tracked %d, live %d; want 2, 2", tr.Len(), mem.Len())
	}
	if !reflect.DeepEqual(mem.Instances(), reqs) {
		t.Errorf("instances = %+v, want %+v", mem.Instances(), reqs)
	}

	if err := tr.Teardown(ctx); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
	if tr.Len() != 0 || mem.Len() != 0 {
		t.Errorf("after teardown tracked %d, live %d; want 0, 0", tr.Len(), mem.Len())
	}
	if err := tr.Teardown(ctx); err != nil {
		t.Errorf("second Teardown: %v", err)
	}
}

func TestTrackerHandlesIsACopy(t *testing.T) {
	tr := NewTracker(NewMemorySpawner(), nil)
	if err := tr.Spawn(context.Background(), []Request{{Label: "a"}}); err != nil {
		t.Fatal(err)
	}
	hs := tr.Handles()
	hs[0] = "mutated"
	if tr.Handles()[0] == "mutated" {
		t.Error("Handles exposed internal slice")
	}
}

func TestTrackerSpawnFailureKeepsEarlierHandles(t *testing.T) {
	fs := &failingSpawner{MemorySpawner: NewMemorySpawner(), failInstantiateAt: 2}
	tr := NewTracker(fs, nil)
	err := tr.Spawn(context.Background(), []Request{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if tr.Len() != 1 {
		t.Errorf("tracked %d, want 1", tr.Len())
	}
}

func TestTrackerTeardownClearsOnFailure(t *testing.T) {
	fs := &failingSpawner{MemorySpawner: NewMemorySpawner()}
	tr := NewTracker(fs, nil)
	if err := tr.Spawn(context.Background(), []Request{{Label: "a"}, {Label: "b"}}); err != nil {
		t.Fatal(err)
	}
	fs.failDestroy = true
	if err := tr.Teardown(context.Background()); err == nil {
		t.Error("expected joined destroy error")
	}
	if tr.Len() != 0 {
		t.Errorf("tracked %d after failed teardown, want 0", tr.Len())
	}
}

func TestTrackerSpawnCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := NewTracker(NewMemorySpawner(), nil)
	if err := tr.Spawn(ctx, []Request{{Label: "a"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Spawn error = %v, want context.Canceled", err)
	}
}

func TestRegenerateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	reg := CatalogRegistry(cat)
	generate := func() []Request {
		res, err := dungeon.Generate(dungeon.Config{
			Rooms:    25,
			Palette:  palette.New("hall", "crypt"),
			Geometry: cat,
			Source:   rng.New(7),
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		reqs, _ := Translate(res.Layout, reg)
		return reqs
	}

	mem := NewMemorySpawner()
	tr := NewTracker(mem, nil)
	first := generate()
	if err := tr.Regenerate(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := tr.Teardown(ctx); err != nil {
		t.Fatal(err)
	}
	second := generate()
	if err := tr.Regenerate(ctx, second); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("regeneration after clear produced a different layout")
	}
	if mem.Len() != len(second) {
		t.Errorf("live instances = %d, want %d", mem.Len(), len(second))
	}

	// Regenerating without an explicit clear must not accumulate instances.
	if err := tr.Regenerate(ctx, second); err != nil {
		t.Fatal(err)
	}
	if mem.Len() != len(second) {
		t.Errorf("live instances after regenerate = %d, want %d", mem.Len(), len(second))
	}
}

func TestMemorySpawnerDestroyUnknown(t *testing.T) {
	if err := NewMemorySpawner().Destroy(context.Background(), "nope"); err == nil {
		t.Error("expected error for unknown handle")
	}
}

func TestStreamSpawner(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracker(NewStreamSpawner(&buf), nil)
	ctx := context.Background()
	if err := tr.Spawn(ctx, []Request{{RoomID: 0, Label: dungeon.OriginLabel, Asset: "hall", Rotation: Identity}}); err != nil {
		t.Fatal(err)
	}
	if err := tr.Teardown(ctx); err != nil {
		t.Fatal(err)
	}

	var cmds []Command
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var c Command
		if err := json.Unmarshal(sc.Bytes(), &c); err != nil {
			t.Fatalf("decode line %q: %v", sc.Text(), err)
		}
		cmds = append(cmds, c)
	}
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	if cmds[0].Op != "instantiate" || cmds[0].Request == nil || cmds[0].Request.Asset != "hall" {
		t.Errorf("cmds[0] = %+v", cmds[0])
	}
	if cmds[1].Op != "destroy" || cmds[1].Handle != cmds[0].Handle {
		t.Errorf("cmds[1] = %+v, want destroy of %s", cmds[1], cmds[0].Handle)
	}
}
