package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

func TestAttackKillRebatesIncomeNotMana(t *testing.T) {
	s := newTestState(t)
	sk := addPiece(t, s, "skeleton", SideA, hex.Coord{Q: 1, R: 0})
	z := addPiece(t, s, "zombie", SideB, hex.Coord{Q: 2, R: 0})

	require.NoError(t, s.DoAction(Attack(sk.Spec(), z.Spec())))
	assert.False(t, s.PieceExists(z.Spec()))
	assert.Equal(t, 2, s.Income[SideB], "death rebate accrues to income")
	assert.Equal(t, startingMana, s.Mana[SideB], "mana pool untouched until end of turn")
	assert.Equal(t, Attacking(1), sk.State)
	assert.True(t, sk.Attacked)
}

func TestAttackStrikesAreLimited(t *testing.T) {
	s := newTestState(t)
	sk := addPiece(t, s, "skeleton", SideA, hex.Coord{Q: 1, R: 0})
	z1 := addPiece(t, s, "zombie", SideB, hex.Coord{Q: 2, R: 0})
	z2 := addPiece(t, s, "zombie", SideB, hex.Coord{Q: 1, R: 1})

	require.NoError(t, s.DoAction(Attack(sk.Spec(), z1.Spec())))
	err := s.DoAction(Attack(sk.Spec(), z2.Spec()))
	assert.True(t, IsKind(err, AttackIllegal), "got %v", err)

	// Two strikes for a vampire.
	s2 := newTestState(t)
	v := addPiece(t, s2, "vampire", SideA, hex.Coord{Q: 1, R: 0})
	g := addPiece(t, s2, "ghoul", SideB, hex.Coord{Q: 2, R: 0})
	require.NoError(t, s2.DoAction(Attack(v.Spec(), g.Spec())))
	require.NoError(t, s2.DoAction(Attack(v.Spec(), g.Spec())))
	assert.Equal(t, Attacking(2), v.State)
	assert.False(t, s2.PieceExists(g.Spec()), "2+2 damage breaks defense 3")
}

func TestLumberingCannotAttackAfterMoving(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideA, hex.Coord{Q: 1, R: 0})
	tgt := addPiece(t, s, "imp", SideB, hex.Coord{Q: 3, R: 0})

	require.NoError(t, s.DoAction(Movements(z.Spec(), hex.Coord{Q: 2, R: 0})))
	err := s.DoAction(Attack(z.Spec(), tgt.Spec()))
	assert.True(t, IsKind(err, AttackIllegal), "got %v", err)
}

func TestRemovalCannotTargetNecromancer(t *testing.T) {
	s := newTestState(t)
	ban := addPiece(t, s, "banshee", SideA, hex.Coord{Q: 3, R: 0})

	// Side B necromancer starts at (4,0).
	err := s.DoAction(Attack(ban.Spec(), StartedTurnWithID(2)))
	assert.True(t, IsKind(err, AttackIllegal), "got %v", err)
}

func TestDamageAttackMayTargetNecromancer(t *testing.T) {
	s := newTestState(t)
	sk := addPiece(t, s, "skeleton", SideA, hex.Coord{Q: 3, R: 0})
	necro := s.Pieces[2]

	require.NoError(t, s.DoAction(Attack(sk.Spec(), necro.Spec())))
	assert.Equal(t, 5, necro.Damage)
	assert.Nil(t, s.Winner)
}

func TestNecromancerDeathSetsWinner(t *testing.T) {
	s := newTestState(t)
	sk1 := addPiece(t, s, "skeleton", SideA, hex.Coord{Q: 3, R: 0})
	sk2 := addPiece(t, s, "skeleton", SideA, hex.Coord{Q: 4, R: -1})

	require.NoError(t, s.DoAction(Attack(sk1.Spec(), StartedTurnWithID(2))))
	require.NoError(t, s.DoAction(Attack(sk2.Spec(), StartedTurnWithID(2))))
	require.NotNil(t, s.Winner)
	assert.Equal(t, SideA, *s.Winner)
	assert.False(t, s.PieceExists(StartedTurnWithID(2)))
}

func TestPersistentBlocksRemoval(t *testing.T) {
	s := newTestState(t)
	ban := addPiece(t, s, "banshee", SideA, hex.Coord{Q: 1, R: 0})
	addPiece(t, s, "ghost", SideB, hex.Coord{Q: 2, R: 0})

	err := s.DoAction(Attack(ban.Spec(), StartedTurnWithID(4)))
	assert.True(t, IsKind(err, AttackIllegal), "got %v", err)
}

func TestUnsummonReturnsToReinforcements(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideB, hex.Coord{Q: -3, R: 0})

	// Side A necromancer unsummons the adjacent enemy zombie.
	require.NoError(t, s.DoAction(Attack(StartedTurnWithID(1), z.Spec())))
	assert.False(t, s.PieceExists(z.Spec()))
	assert.Equal(t, startingZombies+1, s.Reinforcements[SideB]["zombie"])
	assert.Equal(t, 0, s.Income[SideB], "unsummon pays no rebate")
}

func TestUnsummoningOwnPieceIsLegal(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideA, hex.Coord{Q: -3, R: 0})

	require.NoError(t, s.DoAction(Attack(StartedTurnWithID(1), z.Spec())))
	assert.Equal(t, startingZombies+1, s.Reinforcements[SideA]["zombie"])
}

func TestDeathSpawn(t *testing.T) {
	s := newTestState(t)
	sk := addPiece(t, s, "skeleton", SideA, hex.Coord{Q: 1, R: 0})
	w := addPiece(t, s, "wight", SideB, hex.Coord{Q: 2, R: 0})

	require.NoError(t, s.DoAction(Attack(sk.Spec(), w.Spec())))
	assert.False(t, s.PieceExists(w.Spec()))
	assert.Equal(t, 3, s.Income[SideB])

	spec := SpawnedThisTurn("zombie", hex.Coord{Q: 2, R: 0}, 0)
	p, ok := s.PieceBySpec(spec)
	require.True(t, ok, "wight death spawns a zombie where it fell")
	assert.Equal(t, SideB, p.Side)
	assert.Equal(t, DoneActing(), p.State)
}

func TestOutOfRangeAttack(t *testing.T) {
	s := newTestState(t)
	sk := addPiece(t, s, "skeleton", SideA, hex.Coord{Q: 1, R: 0})
	z := addPiece(t, s, "zombie", SideB, hex.Coord{Q: 3, R: 0})

	err := s.DoAction(Attack(sk.Spec(), z.Spec()))
	assert.True(t, IsKind(err, AttackIllegal), "got %v", err)

	// Horror attacks at range 2.
	h := addPiece(t, s, "horror", SideA, hex.Coord{Q: 1, R: 1})
	require.NoError(t, s.DoAction(Attack(h.Spec(), z.Spec())))
}
