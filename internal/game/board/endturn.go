package board

// EndTurn resolves end-of-turn effects and flips the side to move: wailing
// pieces that attacked die first, then every piece heals and resets its act
// state, mods decay on pieces and tiles, income accrues to the side that just
// moved, and per-turn spawn bookkeeping clears.
func (s *BoardState) EndTurn() {
	// Wailing deaths before anything heals, in arena order for determinism.
	for _, id := range s.sortedPieceIDs() {
		p, ok := s.Pieces[id]
		if !ok {
			continue // removed by an earlier death cascade
		}
		if p.Stats.Wailing && p.Attacked {
			s.killPiece(p)
		}
	}

	side := s.SideToMove
	income := s.Income[side]
	for _, id := range s.sortedPieceIDs() {
		p := s.Pieces[id]
		p.Damage = 0
		p.State = Moving(0)
		p.Moved = false
		p.Attacked = false
		p.SpawnedAs = nil
		p.UsedAbilities = nil
		p.Mods = decayMods(p.Mods)
		if p.Side == side {
			income += p.Stats.IncomeBonus
		}
	}
	// Graveyard control: one mana per graveyard hex held by the moving side.
	for _, g := range s.Map.Graveyards {
		occ := s.OccupantsAt(g)
		if len(occ) > 0 && occ[0].Side == side {
			income++
		}
	}
	for _, t := range s.Tiles {
		t.Mods = decayMods(t.Mods)
	}

	s.Mana[side] += income
	s.Income[side] = 0
	s.spawnedAt = make(map[spawnKey]int)
	s.discardPower = newDiscardLedger()
	s.SideToMove = side.Opponent()
	s.Turn++
}

func decayMods(mods []Mod) []Mod {
	out := mods[:0]
	for _, m := range mods {
		m.Turns--
		if m.Turns > 0 {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
