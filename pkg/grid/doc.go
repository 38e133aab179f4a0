// Package grid provides integer grid positions, cardinal directions and the
// occupancy index used while growing a room layout.
//
// Grid coordinates are abstract cells, not world units. X maps to the world
// x axis and Y maps to the world depth (z) axis; height is never represented.
//
// # Occupancy
//
// [Occupancy] is a hash set keyed by [Pos]. It answers "is this cell taken"
// in O(1) and must always mirror the positions of the rooms in a layout:
//
//	occ := grid.NewOccupancy()
//	occ.Insert(grid.Origin)
//	occ.Contains(grid.Pos{X: 1}) // false
package grid
