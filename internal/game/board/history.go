package board

// BoardHistory is one cached point of the turn: the two snapshots paired with
// the recorded turn entries that produced them, plus the action that created
// this point. Global undo/redo is a cursor over these cached entries, so
// moving the cursor never recomputes anything.
type BoardHistory struct {
	MoveAttack *BoardState
	Spawn      *BoardState
	Entries    []turnEntry
	Produced   BoardAction
}

func (b *Board) snapshotEntry(produced BoardAction) *BoardHistory {
	entries := make([]turnEntry, len(b.entries))
	for i, e := range b.entries {
		entries[i] = e.clone()
	}
	return &BoardHistory{
		MoveAttack: b.moveAttack.Copy(),
		Spawn:      b.spawn.Copy(),
		Entries:    entries,
		Produced:   produced,
	}
}

// truncateRedo discards the redo tail; called before every new mutation so
// that acting from a rewound cursor irrecoverably forks the history.
func (b *Board) truncateRedo() {
	b.history = b.history[:b.cursor+1]
}

func (b *Board) record(produced BoardAction) {
	b.history = append(b.history, b.snapshotEntry(produced))
	b.cursor = len(b.history) - 1
}

func (b *Board) restore(h *BoardHistory) {
	b.moveAttack = h.MoveAttack.Copy()
	b.spawn = h.Spawn.Copy()
	b.entries = make([]turnEntry, len(h.Entries))
	for i, e := range h.Entries {
		b.entries[i] = e.clone()
	}
}

// Undo steps the cursor back one cached state.
func (b *Board) Undo() error {
	if b.cursor == 0 {
		return illegalf(UndoIllegal, "nothing to undo")
	}
	b.cursor--
	b.restore(b.history[b.cursor])
	return nil
}

// Redo steps the cursor forward one cached state.
func (b *Board) Redo() error {
	if b.cursor >= len(b.history)-1 {
		return illegalf(UndoIllegal, "nothing to redo")
	}
	b.cursor++
	b.restore(b.history[b.cursor])
	return nil
}

// PrevAction returns the action Undo would revert, so an external resource
// manager can react (refund mana, re-queue a spell draw) before the board
// mutation. ok is false at the start of the turn.
func (b *Board) PrevAction() (BoardAction, bool) {
	if b.cursor == 0 {
		return BoardAction{}, false
	}
	return b.history[b.cursor].Produced, true
}

// NextAction returns the action Redo would reapply, if any.
func (b *Board) NextAction() (BoardAction, bool) {
	if b.cursor >= len(b.history)-1 {
		return BoardAction{}, false
	}
	return b.history[b.cursor+1].Produced, true
}

// CanUndo reports whether a global undo is possible.
func (b *Board) CanUndo() bool { return b.cursor > 0 }

// CanRedo reports whether a global redo is possible.
func (b *Board) CanRedo() bool { return b.cursor < len(b.history)-1 }

// rebuild replays the given entries from the turn's initial snapshot:
// general actions first (they commute), then each bundle's immediate half
// group-atomically against the move-attack state, then every surviving
// bundle's deferred half action-by-action against the spawn state. Bundles
// whose immediate half no longer applies are silently dropped whole;
// deferred actions that no longer apply are silently dropped individually.
// Dropping is specification, not failure: an action that depended on
// something removed (a discard, a spawned piece) must vanish with it.
func (b *Board) rebuild(entries []turnEntry) error {
	ma := b.initial.Copy()
	for _, e := range entries {
		if e.General != nil {
			if err := ma.DoGeneralBoardAction(*e.General); err != nil {
				return invariantf("general action failed on replay: %v", err)
			}
		}
	}

	var kept []turnEntry
	for _, e := range entries {
		if e.General != nil {
			kept = append(kept, e.clone())
			continue
		}
		g := e.Group
		trial := ma.Copy()
		ok := true
		for _, a := range g.immediate() {
			if trial.DoAction(a) != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		ma = trial
		kept = append(kept, turnEntry{Group: g.clone()})
	}

	sp := ma.Copy()
	var final []turnEntry
	for _, e := range kept {
		if e.General != nil {
			final = append(final, e)
			continue
		}
		g := e.Group
		surviving := &actionGroup{}
		for i, a := range g.Order {
			if g.Class[i] == classImmediate {
				surviving.Order = append(surviving.Order, a)
				surviving.Class = append(surviving.Class, classImmediate)
				continue
			}
			if sp.DoAction(a) == nil {
				surviving.Order = append(surviving.Order, a)
				surviving.Class = append(surviving.Class, classDeferred)
			}
		}
		if len(surviving.Order) > 0 {
			final = append(final, turnEntry{Group: surviving})
		}
	}

	b.moveAttack, b.spawn = ma, sp
	b.entries = final
	return nil
}

// LocalPieceUndo removes every recorded bundle involving the piece and
// replays the remainder of the turn. Afterwards no surviving action involves
// the piece, and a piece spawned this turn no longer exists.
func (b *Board) LocalPieceUndo(spec PieceSpec) error {
	involved := b.entriesInvolvingPiece(spec)
	if len(involved) == 0 {
		return illegalf(UndoIllegal, "nothing to undo for %s", spec)
	}
	var filtered []turnEntry
	for i, e := range b.entries {
		if !involved[i] {
			filtered = append(filtered, e)
		}
	}
	b.truncateRedo()
	if err := b.rebuild(filtered); err != nil {
		return err
	}
	b.record(BoardAction{Kind: LocalPieceUndoAction, Piece: spec})
	return nil
}

// entriesInvolvingPiece finds the recorded bundles that reference the piece
// in any role, plus — for pieces spawned this turn — the bundle whose replay
// first brings the piece into existence. Creation is found by simulation
// because a spec's NthAtLoc depends on replay order, including death-spawns.
func (b *Board) entriesInvolvingPiece(spec PieceSpec) map[int]bool {
	involved := make(map[int]bool)
	for i, e := range b.entries {
		if e.Group == nil {
			continue
		}
		for _, a := range e.Group.Order {
			if a.involves(spec) {
				involved[i] = true
				break
			}
		}
	}
	if spec.Kind != SpecSpawnedThisTurn {
		return involved
	}

	ma := b.initial.Copy()
	for _, e := range b.entries {
		if e.General != nil {
			_ = ma.DoGeneralBoardAction(*e.General)
		}
	}
	var deferredSoFar []PlayerAction
	for i, e := range b.entries {
		if e.Group == nil {
			continue
		}
		for _, a := range e.Group.immediate() {
			_ = ma.DoAction(a)
		}
		deferredSoFar = append(deferredSoFar, e.Group.deferred()...)
		sp := ma.Copy()
		for _, a := range deferredSoFar {
			_ = sp.DoAction(a)
		}
		if sp.PieceExists(spec) {
			involved[i] = true
			break
		}
	}
	return involved
}

// LocalSpellUndo removes the most recent bundle that plays or discards the
// given card and replays the remainder of the turn.
func (b *Board) LocalSpellUndo(id SpellID) error {
	match := -1
	for i, e := range b.entries {
		if e.Group == nil {
			continue
		}
		for _, a := range e.Group.Order {
			if a.usesSpell(id) {
				match = i
			}
		}
	}
	if match < 0 {
		return illegalf(UndoIllegal, "no action uses spell #%d", id)
	}
	var filtered []turnEntry
	for i, e := range b.entries {
		if i != match {
			filtered = append(filtered, e)
		}
	}
	b.truncateRedo()
	if err := b.rebuild(filtered); err != nil {
		return err
	}
	b.record(BoardAction{Kind: LocalSpellUndoAction, Spell: id})
	return nil
}

// LocalGeneralUndo removes the most recent matching resource action and
// replays the remainder of the turn. A gained spell that was already played
// disappears with its acquisition, transitively dropping dependents.
func (b *Board) LocalGeneralUndo(g GeneralBoardAction) error {
	match := -1
	for i, e := range b.entries {
		if e.General == nil {
			continue
		}
		if e.General.Kind != g.Kind {
			continue
		}
		switch g.Kind {
		case BuyReinforcementAction:
			if e.General.Unit == g.Unit {
				match = i
			}
		case GainSpellAction:
			if e.General.Spell == g.Spell && (g.ID == 0 || e.General.ID == g.ID) {
				match = i
			}
		}
	}
	if match < 0 {
		return illegalf(UndoIllegal, "no matching %s to undo", g)
	}
	undone := *b.entries[match].General
	var filtered []turnEntry
	for i, e := range b.entries {
		if i != match {
			filtered = append(filtered, e)
		}
	}
	b.truncateRedo()
	if err := b.rebuild(filtered); err != nil {
		return err
	}
	b.record(BoardAction{Kind: LocalGeneralUndoAction, General: undone})
	return nil
}
