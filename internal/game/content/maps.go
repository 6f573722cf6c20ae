package content

import "github.com/jonathanpaulson/minions-sub000/internal/game/hex"

// Terrain is the base terrain of a tile.
type Terrain int

const (
	Ground Terrain = iota
	Water
	Graveyard
)

func (t Terrain) String() string {
	switch t {
	case Ground:
		return "GROUND"
	case Water:
		return "WATER"
	case Graveyard:
		return "GRAVEYARD"
	}
	return "UNKNOWN"
}

// MapDef is a static map layout: a hex disc of the given radius with terrain
// overrides and the two necromancer start locations.
type MapDef struct {
	Name       string
	Radius     int
	Water      []hex.Coord
	Graveyards []hex.Coord
	Starts     [2]hex.Coord
}

// Contains reports whether c is on the map.
func (m *MapDef) Contains(c hex.Coord) bool {
	return hex.Distance(hex.Coord{}, c) <= m.Radius
}

// TerrainAt returns the terrain for an on-map coordinate.
func (m *MapDef) TerrainAt(c hex.Coord) Terrain {
	for _, w := range m.Water {
		if w == c {
			return Water
		}
	}
	for _, g := range m.Graveyards {
		if g == c {
			return Graveyard
		}
	}
	return Ground
}

var maps = map[string]*MapDef{
	"blackacre": {
		Name:   "blackacre",
		Radius: 4,
		Water: []hex.Coord{
			{Q: 0, R: 0}, {Q: 1, R: -1}, {Q: -1, R: 1},
		},
		Graveyards: []hex.Coord{
			{Q: 2, R: 0}, {Q: -2, R: 0}, {Q: 0, R: 2}, {Q: 0, R: -2}, {Q: 3, R: -3}, {Q: -3, R: 3},
		},
		Starts: [2]hex.Coord{{Q: -4, R: 0}, {Q: 4, R: 0}},
	},
	"midnight_marsh": {
		Name:   "midnight_marsh",
		Radius: 4,
		Water: []hex.Coord{
			{Q: 2, R: -1}, {Q: -2, R: 1}, {Q: 1, R: 1}, {Q: -1, R: -1},
		},
		Graveyards: []hex.Coord{
			{Q: 0, R: 0}, {Q: 3, R: 0}, {Q: -3, R: 0}, {Q: 0, R: 3}, {Q: 0, R: -3},
		},
		Starts: [2]hex.Coord{{Q: 0, R: -4}, {Q: 0, R: 4}},
	},
}

// MapByName looks up a map layout.
func MapByName(name string) (*MapDef, bool) {
	m, ok := maps[name]
	return m, ok
}

// MapNames returns all known map names in sorted order.
func MapNames() []string {
	return sortedKeys(maps)
}
