package board

import "github.com/jonathanpaulson/minions-sub000/internal/game/content"

// Tile is one hex of the board: base terrain plus temporary mods.
type Tile struct {
	Terrain content.Terrain
	Mods    []Mod
}

func (t *Tile) clone() *Tile {
	cp := &Tile{Terrain: t.Terrain}
	cp.Mods = append([]Mod(nil), t.Mods...)
	return cp
}

func (t *Tile) unpassableModded() bool {
	for _, m := range t.Mods {
		if m.Kind == ModUnpassable {
			return true
		}
	}
	return false
}

// passableBy reports whether a unit with the given stats may enter this tile,
// ignoring occupancy. Ground and graveyard are always walkable; water only by
// flying units; an unpassable mod blocks non-flying units.
func (t *Tile) passableBy(stats *content.PieceStats) bool {
	if t.Terrain == content.Water && !stats.Flying {
		return false
	}
	if t.unpassableModded() && !stats.Flying {
		return false
	}
	return true
}
