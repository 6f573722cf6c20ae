package board

import (
	"github.com/jonathanpaulson/minions-sub000/internal/game/content"
	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

// checkAttack validates a single strike.
func (s *BoardState) checkAttack(a PlayerAction) (*Piece, *Piece, error) {
	attacker, ok := s.PieceBySpec(a.Attacker)
	if !ok {
		return nil, nil, illegalf(AttackIllegal, "no such piece %s", a.Attacker)
	}
	target, ok := s.PieceBySpec(a.Target)
	if !ok {
		return nil, nil, illegalf(AttackIllegal, "no such target %s", a.Target)
	}
	if attacker.Side != s.SideToMove {
		return nil, nil, illegalf(AttackIllegal, "%s belongs to side %s", a.Attacker, attacker.Side)
	}
	// Friendly targets are allowed: unsummoning or sacrificing your own
	// pieces is legitimate play. Only self-targeting is nonsense.
	if attacker.ID == target.ID {
		return nil, nil, illegalf(AttackIllegal, "%s cannot attack itself", a.Attacker)
	}
	st := attacker.Stats
	if st.Effect == content.AttackNone || st.AttackRange <= 0 || st.NumAttacks <= 0 {
		return nil, nil, illegalf(AttackIllegal, "%s cannot attack", st.Name)
	}
	if st.Lumbering && attacker.Moved {
		return nil, nil, illegalf(AttackIllegal, "%s is lumbering and has moved", st.Name)
	}
	switch attacker.State.Kind {
	case ActMoving:
		// Moving pieces may always begin attacking.
	case ActAttacking:
		if attacker.State.Used >= st.NumAttacks {
			return nil, nil, illegalf(AttackIllegal, "%s has no strikes left (%d/%d)", a.Attacker, attacker.State.Used, st.NumAttacks)
		}
	default:
		return nil, nil, illegalf(AttackIllegal, "%s has already acted (%s)", a.Attacker, attacker.State)
	}
	if hex.Distance(attacker.Loc, target.Loc) > st.AttackRange {
		return nil, nil, illegalf(AttackIllegal, "%s is out of range", a.Target)
	}
	removal := st.Effect == content.AttackKill || st.Effect == content.AttackUnsummon
	if removal && target.Stats.Persistent && !target.Stats.Necromancer {
		return nil, nil, illegalf(AttackIllegal, "%s is persistent", target.Stats.Name)
	}
	// Removal effects and wailing strikes cannot touch necromancers unless
	// the attacker is explicitly allowed to.
	if (removal || st.Wailing) && target.Stats.Necromancer && !st.CanHurtNecromancer {
		return nil, nil, illegalf(AttackIllegal, "%s cannot target a necromancer", st.Name)
	}
	return attacker, target, nil
}

func (s *BoardState) applyAttack(attacker, target *Piece) {
	attacker.Attacked = true
	if attacker.State.Kind == ActMoving {
		attacker.State = Attacking(1)
	} else {
		attacker.State = Attacking(attacker.State.Used + 1)
	}
	switch attacker.Stats.Effect {
	case content.AttackDamage:
		target.Damage += attacker.AttackDamage()
		if target.Damage >= target.Defense() {
			s.killPiece(target)
		}
	case content.AttackKill:
		s.killPiece(target)
	case content.AttackUnsummon:
		s.unsummonPiece(target)
	}
}

// killPiece removes a piece from the board, credits its death rebate to the
// owner's income, and resolves any death-spawn. A death-spawn whose hex is
// not legal for it is treated as if it were immediately killed, recursively.
func (s *BoardState) killPiece(p *Piece) {
	loc := p.Loc
	side := p.Side
	s.unplacePiece(p)
	delete(s.Pieces, p.ID)
	s.Income[side] += p.Stats.Rebate
	if p.Stats.Necromancer {
		winner := side.Opponent()
		s.Winner = &winner
	}
	if p.Stats.DeathSpawn != "" {
		s.deathSpawn(p.Stats.DeathSpawn, side, loc)
	}
}

// unsummonPiece removes a piece and returns it to its owner's reinforcements.
func (s *BoardState) unsummonPiece(p *Piece) {
	s.unplacePiece(p)
	delete(s.Pieces, p.ID)
	if p.Stats.Necromancer {
		winner := p.Side.Opponent()
		s.Winner = &winner
		return
	}
	s.Reinforcements[p.Side][p.Stats.Name]++
}

func (s *BoardState) deathSpawn(unit string, side Side, loc hex.Coord) {
	stats, ok := content.UnitByName(unit)
	if !ok {
		return
	}
	if s.destinationCheck(SpawnIllegal, stats, side, loc, nil) != nil {
		// Nowhere to stand: the death-spawn dies where it would have
		// appeared, cascading into its own rebate and death-spawn.
		s.Income[side] += stats.Rebate
		if stats.DeathSpawn != "" {
			s.deathSpawn(stats.DeathSpawn, side, loc)
		}
		return
	}
	s.createSpawned(stats, side, loc, -1)
}

// createSpawned places a new piece spawned this turn at loc. A non-negative
// nth forces that NthAtLoc (recorded spawn actions replay with their original
// numbering, leaving gaps where dropped spawns used to be); nth < 0 assigns
// the next free one.
func (s *BoardState) createSpawned(stats *content.PieceStats, side Side, loc hex.Coord, nth int) *Piece {
	key := spawnKey{Loc: loc, Name: stats.Name}
	if nth < 0 {
		nth = s.spawnedAt[key]
	}
	if next := nth + 1; next > s.spawnedAt[key] {
		s.spawnedAt[key] = next
	}
	spec := SpawnedThisTurn(stats.Name, loc, nth)
	p := &Piece{
		ID:        s.nextPieceID,
		Side:      side,
		Stats:     stats,
		State:     DoneActing(),
		SpawnedAs: &spec,
	}
	s.nextPieceID++
	s.Pieces[p.ID] = p
	s.placePiece(p, loc)
	return p
}
