package spawn

import (
	"reflect"
	"testing"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/grid"
	"github.com/matzehuels/roomgrow/pkg/palette"
)

func testLayout() dungeon.Layout {
	return dungeon.Layout{
		Target: 4,
		Rooms: []dungeon.Room{
			{ID: 0, Label: dungeon.OriginLabel, Pos: grid.Origin, Footprint: "hall"},
			{ID: 1, Label: "Room 1", Pos: grid.Pos{X: 3, Y: 0}, Footprint: "ghost"},
			{ID: 2, Label: "Room 2", Pos: grid.Pos{X: 3, Y: -2}, Footprint: ""},
			{ID: 3, Label: "Room 3", Pos: grid.Pos{X: -3, Y: 0}, Footprint: "crypt"},
		},
	}
}

func testCatalog(t *testing.T) *palette.Catalog {
	t.Helper()
	crypt := palette.Sized("crypt", 1, 1)
	crypt.Asset = "prefabs/crypt"
	c, err := palette.NewCatalog(
		palette.Sized("hall", 2, 1),
		crypt,
		palette.Footprint{ID: "ghost"},
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func TestWorldPosition(t *testing.T) {
	got := WorldPosition(dungeon.Room{Pos: grid.Pos{X: 4, Y: -7}})
	want := Vec3{X: 4, Y: 0, Z: -7}
	if got != want {
		t.Errorf("WorldPosition = %+v, want %+v", got, want)
	}
}

func TestTranslate(t *testing.T) {
	reqs, warns := Translate(testLayout(), CatalogRegistry(testCatalog(t)))

	want := []Request{
		{RoomID: 0, Label: dungeon.OriginLabel, Footprint: "hall", Asset: "hall", Position: Vec3{}, Rotation: Identity},
		{RoomID: 3, Label: "Room 3", Footprint: "crypt", Asset: "prefabs/crypt", Position: Vec3{X: -3}, Rotation: Identity},
	}
	if !reflect.DeepEqual(reqs, want) {
		t.Errorf("requests = %+v, want %+v", reqs, want)
	}

	if len(warns) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(warns), warns)
	}
	if warns[0].RoomID != 1 || warns[0].Footprint != "ghost" {
		t.Errorf("warns[0] = %+v, want room 1 ghost", warns[0])
	}
	if warns[1].RoomID != 2 || warns[1].Footprint != "" {
		t.Errorf("warns[1] = %+v, want room 2 with empty footprint", warns[1])
	}
}

func TestTranslateNilRegistry(t *testing.T) {
	reqs, warns := Translate(testLayout(), nil)
	if len(reqs) != 0 {
		t.Errorf("got %d requests, want 0", len(reqs))
	}
	if len(warns) != 4 {
		t.Errorf("got %d warnings, want 4", len(warns))
	}
}

func TestTranslateRegistryFunc(t *testing.T) {
	reg := RegistryFunc(func(id palette.FootprintID) (string, bool) {
		return "asset:" + string(id), id != ""
	})
	reqs, warns := Translate(testLayout(), reg)
	if len(reqs) != 3 || len(warns) != 1 {
		t.Fatalf("got %d requests, %d warnings; want 3, 1", len(reqs), len(warns))
	}
	if reqs[1].Asset != "asset:ghost" {
		t.Errorf("reqs[1].Asset = %q, want asset:ghost", reqs[1].Asset)
	}
}

func TestWarningString(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{Warning{Label: "Room 2"}, "room footprint is empty for room: Room 2"},
		{Warning{Label: "Room 1", Footprint: "ghost"}, `footprint "ghost" does not resolve for room: Room 1`},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
