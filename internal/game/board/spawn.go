package board

import (
	"github.com/jonathanpaulson/minions-sub000/internal/game/content"
	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

// checkSpawn validates placing a reinforcement on the board. A qualifying
// spawner is an existing (not newly-spawned) same-side piece with an
// unfinished action within spawn range of the target hex; eldritch units only
// need any such piece adjacent, regardless of its spawn range.
func (s *BoardState) checkSpawn(a PlayerAction) (*Piece, error) {
	stats, ok := content.UnitByName(a.Unit)
	if !ok {
		return nil, illegalf(SpawnIllegal, "unknown unit %q", a.Unit)
	}
	side := s.SideToMove
	if s.Reinforcements[side][a.Unit] <= 0 {
		return nil, illegalf(SpawnIllegal, "no %s in reinforcements", a.Unit)
	}
	if err := s.destinationCheck(SpawnIllegal, stats, side, a.Loc, nil); err != nil {
		return nil, err
	}
	spawner := s.findSpawner(stats, side, a.Loc)
	if spawner == nil {
		return nil, illegalf(SpawnIllegal, "no spawner in range of (%d,%d)", a.Loc.Q, a.Loc.R)
	}
	return spawner, nil
}

func (s *BoardState) findSpawner(stats *content.PieceStats, side Side, loc hex.Coord) *Piece {
	for _, id := range s.sortedPieceIDs() {
		p := s.Pieces[id]
		if p.Side != side || p.SpawnedAs != nil {
			continue
		}
		if p.State.Kind == ActDoneActing {
			continue
		}
		d := hex.Distance(p.Loc, loc)
		if stats.Eldritch && d == 1 {
			return p
		}
		if p.Stats.SpawnRange > 0 && d <= p.Stats.SpawnRange {
			return p
		}
	}
	return nil
}

func (s *BoardState) applySpawn(spawner *Piece, a PlayerAction) {
	stats, _ := content.UnitByName(a.Unit)
	s.Reinforcements[s.SideToMove][a.Unit]--
	s.createSpawned(stats, s.SideToMove, a.Loc, a.Nth)
	if spawner != nil && !spawner.State.AtLeast(Spawning()) {
		spawner.State = Spawning()
	}
}
