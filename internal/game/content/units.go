// Package content holds the static data tables the rules engine consumes by
// name lookup: unit stats, spell and ability definitions, and map layouts.
// Nothing in this package is mutated at runtime.
package content

// AttackEffect is what an attack does to its target.
type AttackEffect int

const (
	AttackNone AttackEffect = iota
	AttackDamage
	AttackKill
	AttackUnsummon
)

// PieceStats is the immutable stat block for a unit type. Pieces reference
// these by pointer; the engine never writes through them.
type PieceStats struct {
	Name        string
	Cost        int
	Rebate      int // mana credited to income when the piece dies
	Defense     int
	MoveRange   int
	AttackRange int
	NumAttacks  int
	Damage      int // per strike, for AttackDamage
	Effect      AttackEffect
	SpawnRange  int // 0 = cannot spawn other units
	SwarmMax    int // 1 = no swarming

	Flying      bool
	Lumbering   bool // cannot attack on a turn it moved
	Eldritch    bool // may be spawned adjacent to any friendly unit
	Wailing     bool // dies at end of turn if it attacked
	Persistent  bool // immune to kill/unsummon attack effects
	Necromancer bool

	// CanHurtNecromancer lifts the restriction that kill/unsummon/wailing
	// attacks may not target necromancers.
	CanHurtNecromancer bool

	DeathSpawn  string // unit created where this one dies, "" for none
	IncomeBonus int    // extra mana accrued per end of turn while alive

	Abilities []string // ability names usable once per turn
}

var units = map[string]*PieceStats{
	"necromancer": {
		Name:        "necromancer",
		Cost:        0,
		Rebate:      0,
		Defense:     7,
		MoveRange:   1,
		AttackRange: 1,
		NumAttacks:  1,
		Effect:      AttackUnsummon,
		SpawnRange:  3,
		SwarmMax:    1,
		Persistent:  true,
		Necromancer: true,
	},
	"zombie": {
		Name:        "zombie",
		Cost:        2,
		Rebate:      2,
		Defense:     2,
		MoveRange:   1,
		AttackRange: 1,
		NumAttacks:  1,
		Damage:      1,
		Effect:      AttackDamage,
		SwarmMax:    1,
		Lumbering:   true,
	},
	"imp": {
		Name:        "imp",
		Cost:        2,
		Rebate:      2,
		Defense:     1,
		MoveRange:   2,
		AttackRange: 1,
		NumAttacks:  1,
		Damage:      1,
		Effect:      AttackDamage,
		SwarmMax:    3,
	},
	"bat": {
		Name:        "bat",
		Cost:        1,
		Rebate:      1,
		Defense:     1,
		MoveRange:   3,
		AttackRange: 1,
		NumAttacks:  1,
		Damage:      1,
		Effect:      AttackDamage,
		SwarmMax:    2,
		Flying:      true,
	},
	"skeleton": {
		Name:        "skeleton",
		Cost:        4,
		Rebate:      4,
		Defense:     2,
		MoveRange:   1,
		AttackRange: 1,
		NumAttacks:  1,
		Damage:      5,
		Effect:      AttackDamage,
		SwarmMax:    1,
	},
	"ghost": {
		Name:       "ghost",
		Cost:       3,
		Rebate:     3,
		Defense:    4,
		MoveRange:  1,
		SwarmMax:   1,
		Flying:     true,
		Persistent: true,
		Abilities:  []string{"fade"},
	},
	"wight": {
		Name:        "wight",
		Cost:        3,
		Rebate:      3,
		Defense:     1,
		MoveRange:   1,
		AttackRange: 1,
		NumAttacks:  1,
		Damage:      3,
		Effect:      AttackDamage,
		SwarmMax:    1,
		Wailing:     true,
		DeathSpawn:  "zombie",
	},
	"banshee": {
		Name:        "banshee",
		Cost:        3,
		Rebate:      3,
		Defense:     1,
		MoveRange:   2,
		AttackRange: 1,
		NumAttacks:  1,
		Effect:      AttackKill,
		SwarmMax:    1,
		Wailing:     true,
	},
	"vampire": {
		Name:               "vampire",
		Cost:               5,
		Rebate:             5,
		Defense:            4,
		MoveRange:          2,
		AttackRange:        1,
		NumAttacks:         2,
		Damage:             2,
		Effect:             AttackDamage,
		SwarmMax:           1,
		Flying:             true,
		CanHurtNecromancer: true,
	},
	"horror": {
		Name:        "horror",
		Cost:        4,
		Rebate:      4,
		Defense:     2,
		MoveRange:   1,
		AttackRange: 2,
		NumAttacks:  1,
		Damage:      2,
		Effect:      AttackDamage,
		SwarmMax:    1,
		Eldritch:    true,
		Abilities:   []string{"shriek"},
	},
	"ghoul": {
		Name:        "ghoul",
		Cost:        3,
		Rebate:      3,
		Defense:     3,
		MoveRange:   1,
		AttackRange: 1,
		NumAttacks:  1,
		Damage:      1,
		Effect:      AttackDamage,
		SwarmMax:    1,
		IncomeBonus: 1,
	},
}

// UnitByName looks up a unit stat block. The returned pointer is shared and
// must be treated as read-only.
func UnitByName(name string) (*PieceStats, bool) {
	u, ok := units[name]
	return u, ok
}

// UnitNames returns all known unit names in sorted order.
func UnitNames() []string {
	return sortedKeys(units)
}
