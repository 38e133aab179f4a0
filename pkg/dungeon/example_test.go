package dungeon_test

import (
	"fmt"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/rng"
)

func ExampleGenerate() {
	// Scripted draws: origin footprint, then footprint/anchor/direction per room.
	src := rng.NewReplay(0, 0, 0, 3, 0, 1, 0)

	res, err := dungeon.Generate(dungeon.Config{
		Rooms:    3,
		Palette:  palette.New("hall"),
		Geometry: palette.Uniform(palette.Size{Width: 2, Depth: 1}),
		Source:   src,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range res.Layout.Rooms {
		fmt.Println(r.Label, r.Pos)
	}
	// Output:
	// Starting Room (0,0)
	// Room 1 (3,0)
	// Room 2 (3,2)
}
