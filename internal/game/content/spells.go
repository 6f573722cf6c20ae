package content

import "sort"

// SpellKind distinguishes how spells interact with the sorcery discard
// economy: playing a sorcery consumes discard power; discarding a cantrip
// provides power for one sorcery, a double cantrip for two.
type SpellKind int

const (
	Sorcery SpellKind = iota
	Cantrip
	DoubleCantrip
)

func (k SpellKind) String() string {
	switch k {
	case Sorcery:
		return "SORCERY"
	case Cantrip:
		return "CANTRIP"
	case DoubleCantrip:
		return "DOUBLE_CANTRIP"
	}
	return "UNKNOWN"
}

// SorceryPower is how many sorceries a discarded spell of this kind can power.
func (k SpellKind) SorceryPower() int {
	switch k {
	case Cantrip:
		return 1
	case DoubleCantrip:
		return 2
	default:
		return 0
	}
}

// TargetKind is the targeting predicate of a spell or ability. Plain data
// rather than closures so definitions compare structurally.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetFriendlyPiece
	TargetEnemyPiece
	TargetAnyPiece
	TargetTile
)

// EffectKind is what a spell or ability does when it resolves.
type EffectKind int

const (
	EffectDamage           EffectKind = iota // Amount damage to target piece
	EffectHeal                               // remove Amount accumulated damage
	EffectKillTarget                         // destroy target piece outright
	EffectUnsummonTarget                     // return target piece to reinforcements
	EffectAttackMod                          // target piece: +Amount damage for Duration turns
	EffectDefenseMod                         // target piece: +Amount defense for Duration turns
	EffectMoveMod                            // target piece: +Amount move range for Duration turns
	EffectCleanse                            // strip all mods from target piece
	EffectGainReinforcement                  // add one Unit to own reinforcements
	EffectTileUnpassable                     // target tile impassable to ground units for Duration turns
)

// SpellDef defines a castable spell.
type SpellDef struct {
	Name     string
	Kind     SpellKind
	Target   TargetKind
	Effect   EffectKind
	Amount   int
	Duration int
	Unit     string // for EffectGainReinforcement
}

// AbilityDef defines a once-per-turn ability carried by a unit type.
type AbilityDef struct {
	Name     string
	Target   TargetKind
	Effect   EffectKind
	Amount   int
	Duration int
	Range    int // max hex distance to the target, 0 = self only
}

var spells = map[string]*SpellDef{
	"wither": {
		Name:   "wither",
		Kind:   Sorcery,
		Target: TargetEnemyPiece,
		Effect: EffectDamage,
		Amount: 2,
	},
	"unholy_rage": {
		Name:     "unholy_rage",
		Kind:     Sorcery,
		Target:   TargetFriendlyPiece,
		Effect:   EffectAttackMod,
		Amount:   2,
		Duration: 1,
	},
	"raise_dead": {
		Name:   "raise_dead",
		Kind:   Sorcery,
		Target: TargetNone,
		Effect: EffectGainReinforcement,
		Unit:   "zombie",
	},
	"shield": {
		Name:     "shield",
		Kind:     Cantrip,
		Target:   TargetFriendlyPiece,
		Effect:   EffectDefenseMod,
		Amount:   2,
		Duration: 1,
	},
	"haste": {
		Name:     "haste",
		Kind:     Cantrip,
		Target:   TargetFriendlyPiece,
		Effect:   EffectMoveMod,
		Amount:   1,
		Duration: 1,
	},
	"mend": {
		Name:   "mend",
		Kind:   Cantrip,
		Target: TargetFriendlyPiece,
		Effect: EffectHeal,
		Amount: 2,
	},
	"dispel": {
		Name:   "dispel",
		Kind:   DoubleCantrip,
		Target: TargetAnyPiece,
		Effect: EffectCleanse,
	},
	"quagmire": {
		Name:     "quagmire",
		Kind:     Sorcery,
		Target:   TargetTile,
		Effect:   EffectTileUnpassable,
		Duration: 2,
	},
}

var abilities = map[string]*AbilityDef{
	"fade": {
		Name:     "fade",
		Target:   TargetNone,
		Effect:   EffectDefenseMod,
		Amount:   2,
		Duration: 1,
	},
	"shriek": {
		Name:   "shriek",
		Target: TargetEnemyPiece,
		Effect: EffectDamage,
		Amount: 1,
		Range:  1,
	},
}

// SpellByName looks up a spell definition.
func SpellByName(name string) (*SpellDef, bool) {
	s, ok := spells[name]
	return s, ok
}

// AbilityByName looks up an ability definition.
func AbilityByName(name string) (*AbilityDef, bool) {
	a, ok := abilities[name]
	return a, ok
}

// SpellNames returns all known spell names in sorted order.
func SpellNames() []string {
	return sortedKeys(spells)
}

func sortedKeys[V any](m map[string]*V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
