// Package board implements the rules engine for one game board: single-step
// legality checking and mutation (BoardState), and the turn-level layer that
// reorders spawn-phase actions and supports undo/redo (Board).
package board

import (
	"fmt"

	"github.com/jonathanpaulson/minions-sub000/internal/game/content"
	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

// Side identifies one of the two players.
type Side int

const (
	SideA Side = 0
	SideB Side = 1
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// PieceID identifies a piece within one board's arena. IDs are assigned
// sequentially and never reused, so they are stable across snapshot copies.
type PieceID int

// ActStateKind orders the stages a piece passes through in one turn.
type ActStateKind int

const (
	ActMoving ActStateKind = iota
	ActAttacking
	ActSpawning
	ActDoneActing
)

// ActState is a piece's position in the per-turn state machine. Used counts
// steps taken while Moving and strikes made while Attacking; it is meaningless
// in the later stages.
type ActState struct {
	Kind ActStateKind
	Used int
}

// Moving returns the state of a piece that has moved the given number of steps.
func Moving(steps int) ActState { return ActState{Kind: ActMoving, Used: steps} }

// Attacking returns the state of a piece that has made the given number of strikes.
func Attacking(strikes int) ActState { return ActState{Kind: ActAttacking, Used: strikes} }

// Spawning is the state of a piece that has spawned units this turn.
func Spawning() ActState { return ActState{Kind: ActSpawning} }

// DoneActing is the terminal per-turn state.
func DoneActing() ActState { return ActState{Kind: ActDoneActing} }

// Compare orders two act states: stage first, then steps/strikes used within
// Moving and Attacking. Negative means a precedes b.
func (a ActState) Compare(b ActState) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	if a.Kind == ActMoving || a.Kind == ActAttacking {
		return a.Used - b.Used
	}
	return 0
}

// AtLeast reports whether a is at or past b in the per-turn ordering.
func (a ActState) AtLeast(b ActState) bool { return a.Compare(b) >= 0 }

func (a ActState) String() string {
	switch a.Kind {
	case ActMoving:
		return fmt.Sprintf("MOVING(%d)", a.Used)
	case ActAttacking:
		return fmt.Sprintf("ATTACKING(%d)", a.Used)
	case ActSpawning:
		return "SPAWNING"
	case ActDoneActing:
		return "DONE_ACTING"
	}
	return "UNKNOWN"
}

// SpecKind tags the two forms of piece identity.
type SpecKind int

const (
	SpecStartedTurn SpecKind = iota
	SpecSpawnedThisTurn
)

// PieceSpec is the reorder-stable identity of a piece within one turn. A piece
// present at the start of the turn is identified by its arena ID; a piece
// created this turn is identified by what was spawned where, with NthAtLoc
// disambiguating repeated same-name spawns at one hex. Comparable, so it can
// be used as a map key. Two pieces never share a spec within one snapshot.
type PieceSpec struct {
	Kind     SpecKind
	ID       PieceID
	Name     string
	Loc      hex.Coord
	NthAtLoc int
}

// StartedTurnWithID identifies a piece that existed before this turn.
func StartedTurnWithID(id PieceID) PieceSpec {
	return PieceSpec{Kind: SpecStartedTurn, ID: id}
}

// SpawnedThisTurn identifies the nth same-name piece spawned at loc this turn.
func SpawnedThisTurn(name string, loc hex.Coord, nthAtLoc int) PieceSpec {
	return PieceSpec{Kind: SpecSpawnedThisTurn, Name: name, Loc: loc, NthAtLoc: nthAtLoc}
}

func (ps PieceSpec) String() string {
	if ps.Kind == SpecStartedTurn {
		return fmt.Sprintf("piece#%d", ps.ID)
	}
	return fmt.Sprintf("%s@(%d,%d)#%d", ps.Name, ps.Loc.Q, ps.Loc.R, ps.NthAtLoc)
}

// ModKind is the aspect of a piece or tile a mod adjusts.
type ModKind int

const (
	ModAttack ModKind = iota
	ModDefense
	ModMove
	ModUnpassable // tile-only: blocks non-flying movement
)

// Mod is a temporary adjustment with a remaining duration in turns. Plain
// data, so mods compare structurally.
type Mod struct {
	Kind   ModKind
	Amount int
	Turns  int
}

// Piece is a unit on the board. Pieces are owned by exactly one BoardState
// arena; Copy clones them so snapshots never share mutable pieces.
type Piece struct {
	ID       PieceID
	Side     Side
	Stats    *content.PieceStats // shared, read-only
	Loc      hex.Coord
	Mods     []Mod
	Damage   int
	State    ActState
	Moved    bool
	Attacked bool

	// SpawnedAs is set for pieces created this turn and cleared at end of
	// turn; it doubles as the piece's spec while present.
	SpawnedAs *PieceSpec

	UsedAbilities map[string]bool
}

// Spec returns the piece's reorder-stable identity for this turn.
func (p *Piece) Spec() PieceSpec {
	if p.SpawnedAs != nil {
		return *p.SpawnedAs
	}
	return StartedTurnWithID(p.ID)
}

func (p *Piece) clone() *Piece {
	cp := *p
	cp.Mods = append([]Mod(nil), p.Mods...)
	if p.SpawnedAs != nil {
		spec := *p.SpawnedAs
		cp.SpawnedAs = &spec
	}
	if p.UsedAbilities != nil {
		cp.UsedAbilities = make(map[string]bool, len(p.UsedAbilities))
		for k, v := range p.UsedAbilities {
			cp.UsedAbilities[k] = v
		}
	}
	return &cp
}

func (p *Piece) modSum(kind ModKind) int {
	total := 0
	for _, m := range p.Mods {
		if m.Kind == kind {
			total += m.Amount
		}
	}
	return total
}

// MoveRange is the piece's move range including mods, never negative.
func (p *Piece) MoveRange() int {
	r := p.Stats.MoveRange + p.modSum(ModMove)
	if r < 0 {
		return 0
	}
	return r
}

// Defense is the piece's defense including mods, floored at 1 so a shield
// wearing off cannot itself kill.
func (p *Piece) Defense() int {
	d := p.Stats.Defense + p.modSum(ModDefense)
	if d < 1 {
		return 1
	}
	return d
}

// AttackDamage is damage per strike including mods, never negative.
func (p *Piece) AttackDamage() int {
	d := p.Stats.Damage + p.modSum(ModAttack)
	if d < 0 {
		return 0
	}
	return d
}
