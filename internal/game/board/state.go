package board

import (
	"sort"

	"github.com/jonathanpaulson/minions-sub000/internal/game/content"
	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

// Starting resources for each side.
const (
	startingMana    = 6
	startingZombies = 2
)

type spawnKey struct {
	Loc  hex.Coord
	Name string
}

// newDiscardLedger builds the per-side sorcery-power ledger. Each side only
// spends power from its own discards, and the ledger lives for one turn.
func newDiscardLedger() [2]map[SpellID]int {
	return [2]map[SpellID]int{make(map[SpellID]int), make(map[SpellID]int)}
}

// BoardState is one snapshot of the board: tile plane, piece arena indexed by
// ID and by location, per-side resources, and per-turn bookkeeping. All
// mutation goes through DoAction/DoGeneralBoardAction/EndTurn; speculative
// checks run against a Copy. Snapshots never alias mutable pieces.
type BoardState struct {
	Map   *content.MapDef
	Tiles map[hex.Coord]*Tile

	Pieces map[PieceID]*Piece
	ByLoc  map[hex.Coord][]PieceID

	Turn       int
	SideToMove Side

	// Mana is the spendable pool fixed at turn start; Income accumulates
	// graveyard control, per-piece bonuses, and death rebates, and is paid
	// out at end of turn. Keeping rebates out of the spendable pool is what
	// lets general actions commute with player actions.
	Mana   [2]int
	Income [2]int

	Reinforcements [2]map[string]int
	Hand           [2][]SpellCard
	Revealed       [2][]SpellCard

	// Winner is set when a necromancer leaves the board.
	Winner *Side

	nextPieceID  PieceID
	discardPower [2]map[SpellID]int
	spawnedAt    map[spawnKey]int
}

// NewBoardState builds the turn-one snapshot for a named map: tiles over the
// hex disc, a necromancer per side at its start hex, and starting resources.
func NewBoardState(mapName string) (*BoardState, error) {
	m, ok := content.MapByName(mapName)
	if !ok {
		return nil, invariantf("unknown map %q", mapName)
	}

	s := &BoardState{
		Map:          m,
		Tiles:        make(map[hex.Coord]*Tile),
		Pieces:       make(map[PieceID]*Piece),
		ByLoc:        make(map[hex.Coord][]PieceID),
		Turn:         1,
		nextPieceID:  1,
		discardPower: newDiscardLedger(),
		spawnedAt:    make(map[spawnKey]int),
	}
	for _, c := range hex.WithinRange(hex.Coord{}, m.Radius) {
		s.Tiles[c] = &Tile{Terrain: m.TerrainAt(c)}
	}

	necro, ok := content.UnitByName("necromancer")
	if !ok {
		return nil, invariantf("unit table has no necromancer")
	}
	for side := SideA; side <= SideB; side++ {
		s.Reinforcements[side] = map[string]int{"zombie": startingZombies}
		s.Mana[side] = startingMana
		p := &Piece{
			ID:    s.nextPieceID,
			Side:  side,
			Stats: necro,
			Loc:   m.Starts[side],
			State: Moving(0),
		}
		s.nextPieceID++
		s.Pieces[p.ID] = p
		s.ByLoc[p.Loc] = append(s.ByLoc[p.Loc], p.ID)
	}
	return s, nil
}

// Copy deep-clones the snapshot. The piece arena is cloned piece by piece and
// every index rebuilt, so the copy shares nothing mutable with the original.
func (s *BoardState) Copy() *BoardState {
	cp := &BoardState{
		Map:          s.Map,
		Tiles:        make(map[hex.Coord]*Tile, len(s.Tiles)),
		Pieces:       make(map[PieceID]*Piece, len(s.Pieces)),
		ByLoc:        make(map[hex.Coord][]PieceID, len(s.ByLoc)),
		Turn:         s.Turn,
		SideToMove:   s.SideToMove,
		Mana:         s.Mana,
		Income:       s.Income,
		nextPieceID:  s.nextPieceID,
		discardPower: newDiscardLedger(),
		spawnedAt:    make(map[spawnKey]int, len(s.spawnedAt)),
	}
	for c, t := range s.Tiles {
		cp.Tiles[c] = t.clone()
	}
	for id, p := range s.Pieces {
		cp.Pieces[id] = p.clone()
	}
	for c, ids := range s.ByLoc {
		cp.ByLoc[c] = append([]PieceID(nil), ids...)
	}
	for side := SideA; side <= SideB; side++ {
		cp.Reinforcements[side] = make(map[string]int, len(s.Reinforcements[side]))
		for name, n := range s.Reinforcements[side] {
			cp.Reinforcements[side][name] = n
		}
		cp.Hand[side] = append([]SpellCard(nil), s.Hand[side]...)
		cp.Revealed[side] = append([]SpellCard(nil), s.Revealed[side]...)
	}
	for side := SideA; side <= SideB; side++ {
		for id, n := range s.discardPower[side] {
			cp.discardPower[side][id] = n
		}
	}
	for k, n := range s.spawnedAt {
		cp.spawnedAt[k] = n
	}
	if s.Winner != nil {
		w := *s.Winner
		cp.Winner = &w
	}
	return cp
}

// PieceBySpec resolves a reorder-stable spec to the live piece, if any.
func (s *BoardState) PieceBySpec(spec PieceSpec) (*Piece, bool) {
	if spec.Kind == SpecStartedTurn {
		p, ok := s.Pieces[spec.ID]
		if !ok || p.SpawnedAs != nil {
			return nil, false
		}
		return p, true
	}
	for _, id := range s.sortedPieceIDs() {
		p := s.Pieces[id]
		if p.SpawnedAs != nil && *p.SpawnedAs == spec {
			return p, true
		}
	}
	return nil, false
}

// PieceExists reports whether the spec resolves to a live piece.
func (s *BoardState) PieceExists(spec PieceSpec) bool {
	_, ok := s.PieceBySpec(spec)
	return ok
}

// OccupantsAt returns the pieces on a hex in placement order.
func (s *BoardState) OccupantsAt(loc hex.Coord) []*Piece {
	ids := s.ByLoc[loc]
	out := make([]*Piece, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.Pieces[id])
	}
	return out
}

// SortedPieces returns the live pieces in arena-ID order, which is the order
// they entered the board.
func (s *BoardState) SortedPieces() []*Piece {
	ids := s.sortedPieceIDs()
	out := make([]*Piece, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.Pieces[id])
	}
	return out
}

func (s *BoardState) sortedPieceIDs() []PieceID {
	ids := make([]PieceID, 0, len(s.Pieces))
	for id := range s.Pieces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *BoardState) placePiece(p *Piece, loc hex.Coord) {
	p.Loc = loc
	s.ByLoc[loc] = append(s.ByLoc[loc], p.ID)
}

func (s *BoardState) unplacePiece(p *Piece) {
	ids := s.ByLoc[p.Loc]
	for i, id := range ids {
		if id == p.ID {
			s.ByLoc[p.Loc] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(s.ByLoc[p.Loc]) == 0 {
		delete(s.ByLoc, p.Loc)
	}
}

// destinationCheck validates landing a unit of the given stats and side on
// loc: the tile must exist and be passable, enemies block outright, and
// friendly occupants must be swarm-compatible (same name, swarm cap above 1,
// occupancy below the minimum cap among everyone involved). moving, if
// non-nil, is excluded from the occupancy count.
func (s *BoardState) destinationCheck(kind ErrorKind, stats *content.PieceStats, side Side, loc hex.Coord, moving *Piece) error {
	tile, ok := s.Tiles[loc]
	if !ok {
		return illegalf(kind, "hex (%d,%d) is off the map", loc.Q, loc.R)
	}
	if !tile.passableBy(stats) {
		return illegalf(kind, "%s cannot enter %s at (%d,%d)", stats.Name, tile.Terrain, loc.Q, loc.R)
	}
	occupants := 0
	minSwarm := stats.SwarmMax
	for _, q := range s.OccupantsAt(loc) {
		if moving != nil && q.ID == moving.ID {
			continue
		}
		if q.Side != side {
			return illegalf(kind, "hex (%d,%d) is occupied by the enemy", loc.Q, loc.R)
		}
		if q.Stats.Name != stats.Name || q.Stats.SwarmMax <= 1 || stats.SwarmMax <= 1 {
			return illegalf(kind, "hex (%d,%d) is already occupied by %s", loc.Q, loc.R, q.Stats.Name)
		}
		if q.Stats.SwarmMax < minSwarm {
			minSwarm = q.Stats.SwarmMax
		}
		occupants++
	}
	if occupants > 0 && occupants+1 > minSwarm {
		return illegalf(kind, "swarm at (%d,%d) is full (%d/%d)", loc.Q, loc.R, occupants, minSwarm)
	}
	return nil
}

// TryLegality checks an action against this snapshot without mutating it.
func (s *BoardState) TryLegality(a PlayerAction) error {
	switch a.Kind {
	case MovementsAction:
		_, err := s.checkMovements(a)
		return err
	case AttackAction:
		_, _, err := s.checkAttack(a)
		return err
	case SpawnAction:
		_, err := s.checkSpawn(a)
		return err
	case SpellAction:
		_, err := s.checkSpell(a)
		return err
	case AbilityAction:
		_, _, err := s.checkAbility(a)
		return err
	}
	return invariantf("unknown action kind %d", a.Kind)
}

// TryLegalityAll checks a sequence all-or-nothing against a scratch copy.
func (s *BoardState) TryLegalityAll(actions []PlayerAction) error {
	scratch := s.Copy()
	for _, a := range actions {
		if err := scratch.DoAction(a); err != nil {
			return err
		}
	}
	return nil
}

// DoAction checks and applies one action.
func (s *BoardState) DoAction(a PlayerAction) error {
	switch a.Kind {
	case MovementsAction:
		p, err := s.checkMovements(a)
		if err != nil {
			return err
		}
		s.applyMovements(p, a.Path)
		return nil
	case AttackAction:
		attacker, target, err := s.checkAttack(a)
		if err != nil {
			return err
		}
		s.applyAttack(attacker, target)
		return nil
	case SpawnAction:
		spawner, err := s.checkSpawn(a)
		if err != nil {
			return err
		}
		s.applySpawn(spawner, a)
		return nil
	case SpellAction:
		res, err := s.checkSpell(a)
		if err != nil {
			return err
		}
		s.applySpell(a, res)
		return nil
	case AbilityAction:
		caster, def, err := s.checkAbility(a)
		if err != nil {
			return err
		}
		s.applyAbility(a, caster, def)
		return nil
	}
	return invariantf("unknown action kind %d", a.Kind)
}

// DoActions applies a sequence all-or-nothing: the whole sequence is first
// validated on a scratch copy, then applied for real.
func (s *BoardState) DoActions(actions []PlayerAction) error {
	if err := s.TryLegalityAll(actions); err != nil {
		return err
	}
	for _, a := range actions {
		if err := s.DoAction(a); err != nil {
			return invariantf("validated action failed on apply: %v", err)
		}
	}
	return nil
}

// DoActionUnsafe applies an action already known to be legal, skipping the
// legality predicates (reachability, ranges, strike counts, reinforcement
// stock). References are still resolved; a spec that does not resolve is a
// caller bug, never expected from validated input. Spell and ability
// application is dominated by that resolution, so those kinds share the
// checked path.
func (s *BoardState) DoActionUnsafe(a PlayerAction) error {
	switch a.Kind {
	case MovementsAction:
		p, ok := s.PieceBySpec(a.Mover)
		if !ok {
			return invariantf("unchecked movement of missing piece %s", a.Mover)
		}
		s.applyMovements(p, a.Path)
		return nil
	case AttackAction:
		attacker, ok := s.PieceBySpec(a.Attacker)
		if !ok {
			return invariantf("unchecked attack by missing piece %s", a.Attacker)
		}
		target, ok := s.PieceBySpec(a.Target)
		if !ok {
			return invariantf("unchecked attack on missing piece %s", a.Target)
		}
		s.applyAttack(attacker, target)
		return nil
	case SpawnAction:
		stats, ok := content.UnitByName(a.Unit)
		if !ok {
			return invariantf("unchecked spawn of unknown unit %q", a.Unit)
		}
		s.applySpawn(s.findSpawner(stats, s.SideToMove, a.Loc), a)
		return nil
	}
	return s.DoAction(a)
}

// DoGeneralBoardAction applies a resource action. General actions never
// depend on piece state, so they commute with player actions.
func (s *BoardState) DoGeneralBoardAction(g GeneralBoardAction) error {
	side := s.SideToMove
	switch g.Kind {
	case BuyReinforcementAction:
		stats, ok := content.UnitByName(g.Unit)
		if !ok {
			return illegalf(SpawnIllegal, "unknown unit %q", g.Unit)
		}
		if s.Mana[side] < stats.Cost {
			return illegalf(SpawnIllegal, "not enough mana for %s (have %d, need %d)", g.Unit, s.Mana[side], stats.Cost)
		}
		s.Mana[side] -= stats.Cost
		s.Reinforcements[side][g.Unit]++
		return nil
	case GainSpellAction:
		if _, ok := content.SpellByName(g.Spell); !ok {
			return illegalf(SpellOrAbilityIllegal, "unknown spell %q", g.Spell)
		}
		if g.ID == 0 {
			return invariantf("gain spell %q submitted without an assigned card ID", g.Spell)
		}
		s.Hand[side] = append(s.Hand[side], SpellCard{ID: g.ID, Name: g.Spell})
		return nil
	}
	return invariantf("unknown general action kind %d", g.Kind)
}
