package board

// actionClass records which half of the turn an action was routed to when its
// bundle was first accepted. The partition is fixed at submission time;
// filtered replay re-applies it rather than re-deriving it.
type actionClass int

const (
	classImmediate actionClass = iota
	classDeferred
)

// actionGroup is one accepted PlayerActions bundle: the surviving actions in
// submission order plus the immediate/deferred routing decided when the
// bundle was accepted.
type actionGroup struct {
	Order []PlayerAction
	Class []actionClass
}

func (g *actionGroup) clone() *actionGroup {
	return &actionGroup{
		Order: append([]PlayerAction(nil), g.Order...),
		Class: append([]actionClass(nil), g.Class...),
	}
}

func (g *actionGroup) immediate() []PlayerAction {
	var out []PlayerAction
	for i, a := range g.Order {
		if g.Class[i] == classImmediate {
			out = append(out, a)
		}
	}
	return out
}

func (g *actionGroup) deferred() []PlayerAction {
	var out []PlayerAction
	for i, a := range g.Order {
		if g.Class[i] == classDeferred {
			out = append(out, a)
		}
	}
	return out
}

// turnEntry is one recorded turn-level mutation: either a general action or
// an accepted bundle. Exactly one field is set.
type turnEntry struct {
	General *GeneralBoardAction
	Group   *actionGroup
}

func (e turnEntry) clone() turnEntry {
	if e.General != nil {
		g := *e.General
		return turnEntry{General: &g}
	}
	return turnEntry{Group: e.Group.clone()}
}

func (e turnEntry) toBoardAction() BoardAction {
	if e.General != nil {
		return BoardAction{Kind: DoGeneralAction, General: *e.General}
	}
	return BoardAction{Kind: PlayActions, Actions: append([]PlayerAction(nil), e.Group.Order...)}
}

// Board presents the turn-scoped action interface on top of BoardState. It
// maintains two snapshots per turn: moveAttack has every non-spawn action
// applied eagerly in submission order; spawn additionally has every deferred
// spawn-phase action replayed in its original order. Callers may therefore
// interleave actions freely while the rules behave as if spawns resolve in a
// single end-of-turn spawn phase.
//
// Board performs no locking; the caller serializes all access to one board.
type Board struct {
	mapName string

	initial    *BoardState // start-of-turn snapshot
	moveAttack *BoardState
	spawn      *BoardState

	entries []turnEntry

	history []*BoardHistory
	cursor  int

	nextSpellID SpellID

	archive []BoardAction // completed turns, each terminated by an END_TURN marker
}

// NewBoard creates a board for the named map at the start of turn one.
func NewBoard(mapName string) (*Board, error) {
	initial, err := NewBoardState(mapName)
	if err != nil {
		return nil, err
	}
	b := &Board{
		mapName:     mapName,
		initial:     initial,
		moveAttack:  initial.Copy(),
		spawn:       initial.Copy(),
		nextSpellID: 1,
	}
	b.history = []*BoardHistory{b.snapshotEntry(BoardAction{})}
	return b, nil
}

// MapName returns the map the board was created from.
func (b *Board) MapName() string { return b.mapName }

// CurrentState is the board as it will stand once the spawn phase resolves:
// every accepted action, deferred or not, applied. Read-only for callers.
func (b *Board) CurrentState() *BoardState { return b.spawn }

// MoveAttackState is the board with only the non-deferred actions applied.
func (b *Board) MoveAttackState() *BoardState { return b.moveAttack }

// generals returns the recorded general actions in submission order.
func (b *Board) generals() []GeneralBoardAction {
	var out []GeneralBoardAction
	for _, e := range b.entries {
		if e.General != nil {
			out = append(out, *e.General)
		}
	}
	return out
}

// groups returns the recorded bundles in submission order.
func (b *Board) groups() []*actionGroup {
	var out []*actionGroup
	for _, e := range b.entries {
		if e.Group != nil {
			out = append(out, e.Group)
		}
	}
	return out
}

// awaitsSpawn reports whether the action references a spawned-this-turn piece
// that does not exist yet in the given state. Such an action can only resolve
// in the spawn phase, after the spawn that creates the piece.
func awaitsSpawn(s *BoardState, a PlayerAction) bool {
	var specs []PieceSpec
	switch a.Kind {
	case AttackAction:
		specs = []PieceSpec{a.Attacker, a.Target}
	case SpellAction, AbilityAction:
		specs = []PieceSpec{a.TargetPiece}
	default:
		return false
	}
	for _, spec := range specs {
		if spec.Kind == SpecSpawnedThisTurn && !s.PieceExists(spec) {
			return true
		}
	}
	return false
}

// SubmitActions accepts a bundle of player actions, all-or-nothing.
// Movements and attacks are immediate; spawns are deferred to the spawn
// phase; spells and abilities are immediate if they succeed against the
// move-attack state and deferred otherwise (they may target a piece that
// only exists after spawning). An attack on a piece spawned in this or an
// earlier bundle likewise defers until the spawn phase. Any other immediate
// failure, or a deferred action that fails even during spawn-phase replay,
// rejects the whole bundle.
func (b *Board) SubmitActions(actions []PlayerAction) error {
	if len(actions) == 0 {
		return nil
	}
	ma := b.moveAttack.Copy()
	group := &actionGroup{}
	for _, a := range actions {
		switch a.Kind {
		case MovementsAction:
			if err := ma.DoAction(a); err != nil {
				return err
			}
			group.Order = append(group.Order, a)
			group.Class = append(group.Class, classImmediate)
		case AttackAction:
			err := ma.DoAction(a)
			switch {
			case err == nil:
				group.Order = append(group.Order, a)
				group.Class = append(group.Class, classImmediate)
			case awaitsSpawn(ma, a):
				group.Order = append(group.Order, a)
				group.Class = append(group.Class, classDeferred)
			default:
				return err
			}
		case SpawnAction:
			group.Order = append(group.Order, a)
			group.Class = append(group.Class, classDeferred)
		case SpellAction, AbilityAction:
			if err := ma.DoAction(a); err == nil {
				group.Order = append(group.Order, a)
				group.Class = append(group.Class, classImmediate)
			} else {
				group.Order = append(group.Order, a)
				group.Class = append(group.Class, classDeferred)
			}
		default:
			return invariantf("unknown action kind %d", a.Kind)
		}
	}

	// Rebuild the spawn-phase state from the new move-attack state: prior
	// deferred actions replay in their original order, then the new ones.
	sp := ma.Copy()
	for _, g := range b.groups() {
		for _, a := range g.deferred() {
			if err := sp.DoAction(a); err != nil {
				return err
			}
		}
	}
	for i, a := range group.Order {
		if group.Class[i] != classDeferred {
			continue
		}
		if err := sp.DoAction(a); err != nil {
			return err
		}
		if a.Kind == SpawnAction && a.Nth < 0 {
			// Fix the board-assigned numbering into the recorded
			// action so replays reuse it.
			group.Order[i].Nth = sp.spawnedAt[spawnKey{Loc: a.Loc, Name: a.Unit}] - 1
		}
	}

	b.truncateRedo()
	b.moveAttack, b.spawn = ma, sp
	b.entries = append(b.entries, turnEntry{Group: group})
	b.record(BoardAction{Kind: PlayActions, Actions: append([]PlayerAction(nil), group.Order...)})
	return nil
}

// DoGeneralBoardAction applies a resource action. Gained spells get a
// board-assigned card ID on first submission so replays reproduce the same
// identities.
func (b *Board) DoGeneralBoardAction(g GeneralBoardAction) (GeneralBoardAction, error) {
	if g.Kind == GainSpellAction && g.ID == 0 {
		g.ID = b.nextSpellID
	}
	ma := b.moveAttack.Copy()
	if err := ma.DoGeneralBoardAction(g); err != nil {
		return g, err
	}
	sp := ma.Copy()
	for _, grp := range b.groups() {
		for _, a := range grp.deferred() {
			if err := sp.DoAction(a); err != nil {
				return g, invariantf("deferred action broke under a general action: %v", err)
			}
		}
	}
	if g.Kind == GainSpellAction && g.ID >= b.nextSpellID {
		b.nextSpellID = g.ID + 1
	}
	b.truncateRedo()
	b.moveAttack, b.spawn = ma, sp
	b.entries = append(b.entries, turnEntry{General: &g})
	b.record(BoardAction{Kind: DoGeneralAction, General: g})
	return g, nil
}

// EndTurn promotes the spawn-phase state to the next turn's initial snapshot,
// archives the turn's action log, and clears the in-turn history.
func (b *Board) EndTurn() error {
	for _, e := range b.entries {
		b.archive = append(b.archive, e.toBoardAction())
	}
	b.archive = append(b.archive, BoardAction{Kind: EndTurnAction})

	next := b.spawn.Copy()
	next.EndTurn()
	b.initial = next
	b.moveAttack = next.Copy()
	b.spawn = next.Copy()
	b.entries = nil
	b.history = []*BoardHistory{b.snapshotEntry(BoardAction{Kind: EndTurnAction})}
	b.cursor = 0
	return nil
}

// Summary returns the replayable representation of the whole game so far:
// the map the initial snapshot is built from plus every surviving action in
// order. Replaying it against a fresh board reconstructs the current state
// exactly.
func (b *Board) Summary() BoardSummary {
	actions := append([]BoardAction(nil), b.archive...)
	for _, e := range b.entries {
		actions = append(actions, e.toBoardAction())
	}
	return BoardSummary{Map: b.mapName, Actions: actions}
}

// Submit dispatches a turn-level BoardAction.
func (b *Board) Submit(a BoardAction) error {
	switch a.Kind {
	case PlayActions:
		return b.SubmitActions(a.Actions)
	case DoGeneralAction:
		_, err := b.DoGeneralBoardAction(a.General)
		return err
	case LocalPieceUndoAction:
		return b.LocalPieceUndo(a.Piece)
	case LocalSpellUndoAction:
		return b.LocalSpellUndo(a.Spell)
	case LocalGeneralUndoAction:
		return b.LocalGeneralUndo(a.General)
	case UndoAction:
		return b.Undo()
	case RedoAction:
		return b.Redo()
	case EndTurnAction:
		return b.EndTurn()
	}
	return invariantf("unknown board action kind %d", a.Kind)
}
