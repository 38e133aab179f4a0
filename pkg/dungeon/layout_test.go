package dungeon

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/roomgrow/pkg/grid"
)

func sampleLayout() Layout {
	return Layout{
		Target: 4,
		Seed:   42,
		Rooms: []Room{
			{ID: 0, Label: RoomLabel(0), Pos: grid.Origin, Footprint: "hall"},
			{ID: 1, Label: RoomLabel(1), Pos: grid.Pos{X: 3}, Footprint: "hall"},
			{ID: 3, Label: RoomLabel(3), Pos: grid.Pos{Y: -2}, Footprint: "crypt"},
		},
	}
}

func TestRoomLabel(t *testing.T) {
	if RoomLabel(0) != "Starting Room" {
		t.Errorf("RoomLabel(0) = %q", RoomLabel(0))
	}
	if RoomLabel(7) != "Room 7" {
		t.Errorf("RoomLabel(7) = %q", RoomLabel(7))
	}
}

func TestLayoutAccessors(t *testing.T) {
	l := sampleLayout()
	if l.Len() != 3 {
		t.Errorf("Len() = %d", l.Len())
	}
	if r, ok := l.Room(3); !ok || r.Footprint != "crypt" {
		t.Errorf("Room(3) = %+v, %v", r, ok)
	}
	if _, ok := l.Room(2); ok {
		t.Error("Room(2) was skipped and should not exist")
	}
	occ := l.Occupancy()
	if occ.Len() != 3 || !occ.Contains(grid.Pos{X: 3}) {
		t.Error("Occupancy() must mirror room positions")
	}
	counts := l.Footprints()
	if counts["hall"] != 2 || counts["crypt"] != 1 {
		t.Errorf("Footprints() = %v", counts)
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Layout)
		wantErr string
	}{
		{"valid", func(*Layout) {}, ""},
		{"empty", func(l *Layout) { l.Rooms = nil }, ""},
		{"origin moved", func(l *Layout) { l.Rooms[0].Pos = grid.Pos{X: 1} }, "first room"},
		{"duplicate cell", func(l *Layout) { l.Rooms[2].Pos = grid.Pos{X: 3} }, "share cell"},
		{"ids out of order", func(l *Layout) { l.Rooms[2].ID = 1 }, "must increase"},
		{"over target", func(l *Layout) { l.Target = 2 }, "more than the target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sampleLayout()
			l.Rooms = append([]Room(nil), l.Rooms...)
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	l := sampleLayout()
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if got.Len() != l.Len() || got.Seed != 42 || got.Rooms[2].Pos != l.Rooms[2].Pos {
		t.Errorf("round trip = %+v", got)
	}
}

func TestUnmarshalLayoutRejectsOverlap(t *testing.T) {
	data := `{"rooms":[{"id":0,"label":"Starting Room","pos":{"x":0,"y":0}},{"id":1,"label":"Room 1","pos":{"x":0,"y":0}}]}`
	if _, err := UnmarshalLayout([]byte(data)); err == nil {
		t.Error("overlapping rooms must be rejected")
	}
}

func TestWarningString(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{Warning{Kind: WarnMissingGeometry, RoomIndex: 2, FootprintID: "ghost"}, `room 2: footprint "ghost" has no geometry`},
		{Warning{Kind: WarnMissingGeometry, RoomIndex: 1}, "room 1: empty palette slot has no geometry"},
		{Warning{Kind: WarnPlacementExhausted, RoomIndex: 4}, "room 4: no free cell found, skipped"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
