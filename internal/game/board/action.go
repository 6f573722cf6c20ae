package board

import (
	"fmt"
	"strings"

	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

// SpellID identifies one spell card across a game. Two copies of the same
// spell carry distinct IDs so discard pairing and local undo can tell them
// apart.
type SpellID int

// SpellCard is one owned copy of a spell.
type SpellCard struct {
	ID   SpellID
	Name string
}

// PlayerActionKind tags the single-step action variants.
type PlayerActionKind int

const (
	MovementsAction PlayerActionKind = iota
	AttackAction
	SpawnAction
	SpellAction
	AbilityAction
)

func (k PlayerActionKind) String() string {
	switch k {
	case MovementsAction:
		return "MOVEMENTS"
	case AttackAction:
		return "ATTACK"
	case SpawnAction:
		return "SPAWN"
	case SpellAction:
		return "SPELL"
	case AbilityAction:
		return "ABILITY"
	}
	return "UNKNOWN"
}

// PlayerAction is a tagged union of the per-piece actions. Only the fields of
// the tagged variant are meaningful.
type PlayerAction struct {
	Kind PlayerActionKind

	// MovementsAction: Mover walks Path (each entry adjacent to the last,
	// starting from the mover's current hex).
	Mover PieceSpec
	Path  []hex.Coord

	// AttackAction
	Attacker PieceSpec
	Target   PieceSpec

	// SpawnAction. Nth is the board-assigned NthAtLoc, written back into
	// the recorded action on first application so replays keep the same
	// numbering even when earlier spawns at the hex are dropped; -1 until
	// assigned.
	Unit string
	Loc  hex.Coord
	Nth  int

	// SpellAction: Spell is the card played, Discard the card powering it
	// (sorceries only, 0 = none).
	Spell   SpellID
	Discard SpellID

	// AbilityAction
	Ability string
	Caster  PieceSpec

	// SpellAction / AbilityAction target, per the definition's target kind.
	TargetPiece PieceSpec
	TargetLoc   hex.Coord
}

// Movements builds a movement action.
func Movements(mover PieceSpec, path ...hex.Coord) PlayerAction {
	return PlayerAction{Kind: MovementsAction, Mover: mover, Path: path}
}

// Attack builds a single-strike attack action.
func Attack(attacker, target PieceSpec) PlayerAction {
	return PlayerAction{Kind: AttackAction, Attacker: attacker, Target: target}
}

// Spawn builds a spawn action.
func Spawn(unit string, loc hex.Coord) PlayerAction {
	return PlayerAction{Kind: SpawnAction, Unit: unit, Loc: loc, Nth: -1}
}

func (a PlayerAction) String() string {
	switch a.Kind {
	case MovementsAction:
		steps := make([]string, len(a.Path))
		for i, c := range a.Path {
			steps[i] = fmt.Sprintf("(%d,%d)", c.Q, c.R)
		}
		return fmt.Sprintf("move %s -> %s", a.Mover, strings.Join(steps, ","))
	case AttackAction:
		return fmt.Sprintf("attack %s -> %s", a.Attacker, a.Target)
	case SpawnAction:
		return fmt.Sprintf("spawn %s at (%d,%d)", a.Unit, a.Loc.Q, a.Loc.R)
	case SpellAction:
		return fmt.Sprintf("play spell %d", a.Spell)
	case AbilityAction:
		return fmt.Sprintf("use %s of %s", a.Ability, a.Caster)
	}
	return "unknown action"
}

// involves reports whether the action references the given piece spec in any
// role. Spawn creation matches are handled separately because the spawned
// spec's NthAtLoc depends on replay order.
func (a PlayerAction) involves(spec PieceSpec) bool {
	switch a.Kind {
	case MovementsAction:
		return a.Mover == spec
	case AttackAction:
		return a.Attacker == spec || a.Target == spec
	case SpellAction:
		return a.TargetPiece == spec
	case AbilityAction:
		return a.Caster == spec || a.TargetPiece == spec
	}
	return false
}

// usesSpell reports whether the action plays or discards the given card.
func (a PlayerAction) usesSpell(id SpellID) bool {
	return a.Kind == SpellAction && (a.Spell == id || a.Discard == id)
}

// GeneralActionKind tags resource actions.
type GeneralActionKind int

const (
	BuyReinforcementAction GeneralActionKind = iota
	GainSpellAction
)

func (k GeneralActionKind) String() string {
	if k == BuyReinforcementAction {
		return "BUY_REINFORCEMENT"
	}
	return "GAIN_SPELL"
}

// GeneralBoardAction is a resource action. General actions commute with any
// legal player-action sequence, which is what makes replay-based undo and
// spawn-phase reordering sound.
type GeneralBoardAction struct {
	Kind GeneralActionKind

	// BuyReinforcementAction
	Unit string

	// GainSpellAction. ID is assigned by the Board on first submission so
	// replays reproduce the same card identities.
	Spell string
	ID    SpellID
}

// BuyReinforcement builds a reinforcement purchase.
func BuyReinforcement(unit string) GeneralBoardAction {
	return GeneralBoardAction{Kind: BuyReinforcementAction, Unit: unit}
}

// GainSpell builds a spell acquisition.
func GainSpell(spell string) GeneralBoardAction {
	return GeneralBoardAction{Kind: GainSpellAction, Spell: spell}
}

func (g GeneralBoardAction) String() string {
	if g.Kind == BuyReinforcementAction {
		return fmt.Sprintf("buy %s", g.Unit)
	}
	return fmt.Sprintf("gain spell %s (#%d)", g.Spell, g.ID)
}

// BoardActionKind tags the turn-level actions a caller submits to a Board.
type BoardActionKind int

const (
	PlayActions BoardActionKind = iota
	DoGeneralAction
	LocalPieceUndoAction
	LocalSpellUndoAction
	LocalGeneralUndoAction
	UndoAction
	RedoAction
	EndTurnAction
)

func (k BoardActionKind) String() string {
	switch k {
	case PlayActions:
		return "PLAY_ACTIONS"
	case DoGeneralAction:
		return "GENERAL"
	case LocalPieceUndoAction:
		return "LOCAL_PIECE_UNDO"
	case LocalSpellUndoAction:
		return "LOCAL_SPELL_UNDO"
	case LocalGeneralUndoAction:
		return "LOCAL_GENERAL_UNDO"
	case UndoAction:
		return "UNDO"
	case RedoAction:
		return "REDO"
	case EndTurnAction:
		return "END_TURN"
	}
	return "UNKNOWN"
}

// BoardAction is the turn-level tagged union dispatched by Board.Submit.
type BoardAction struct {
	Kind    BoardActionKind
	Actions []PlayerAction     // PlayActions
	General GeneralBoardAction // DoGeneralAction, LocalGeneralUndoAction
	Piece   PieceSpec          // LocalPieceUndoAction
	Spell   SpellID            // LocalSpellUndoAction
}
