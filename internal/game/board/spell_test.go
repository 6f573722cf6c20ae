package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

func playSpell(spell, discard SpellID, target PieceSpec) PlayerAction {
	return PlayerAction{Kind: SpellAction, Spell: spell, Discard: discard, TargetPiece: target}
}

func TestSorceryRequiresDiscard(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideB, hex.Coord{Q: 1, R: 0})
	addCard(s, SideA, "wither", 1)

	err := s.DoAction(playSpell(1, 0, z.Spec()))
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "got %v", err)

	err = s.DoAction(playSpell(1, 1, z.Spec()))
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "a spell cannot power itself: %v", err)
}

func TestWitherKillsWeakPiece(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideB, hex.Coord{Q: 1, R: 0})
	addCard(s, SideA, "wither", 1)
	addCard(s, SideA, "shield", 2)

	require.NoError(t, s.DoAction(playSpell(1, 2, z.Spec())))
	assert.False(t, s.PieceExists(z.Spec()))
	assert.Empty(t, s.Hand[SideA], "both the sorcery and its discard leave the hand")
	assert.Equal(t, 2, s.Income[SideB])
}

func TestDoubleCantripPowersTwoSorceries(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideB, hex.Coord{Q: 1, R: 0})
	addCard(s, SideA, "wither", 1)
	addCard(s, SideA, "dispel", 2)
	addCard(s, SideA, "raise_dead", 3)
	addCard(s, SideA, "unholy_rage", 4)

	require.NoError(t, s.DoAction(playSpell(1, 2, z.Spec())))
	require.NoError(t, s.DoAction(playSpell(3, 2, PieceSpec{})))
	assert.Equal(t, startingZombies+1, s.Reinforcements[SideA]["zombie"])

	err := s.DoAction(playSpell(4, 2, StartedTurnWithID(1)))
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "discard power exhausted: %v", err)
}

func TestDiscardPowerDoesNotOutliveTurn(t *testing.T) {
	s := newTestState(t)
	zb := addPiece(t, s, "zombie", SideB, hex.Coord{Q: 1, R: 0})
	za := addPiece(t, s, "zombie", SideA, hex.Coord{Q: -1, R: 0})
	addCard(s, SideA, "wither", 1)
	addCard(s, SideA, "dispel", 2)
	addCard(s, SideB, "wither", 3)

	require.NoError(t, s.DoAction(playSpell(1, 2, zb.Spec())))
	s.EndTurn()

	// The dispel had one sorcery's power to spare, but it was A's discard
	// and the turn is over: B cannot spend it.
	err := s.DoAction(playSpell(3, 2, za.Spec()))
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "got %v", err)
}

func TestCantripNeedsNoDiscard(t *testing.T) {
	s := newTestState(t)
	addCard(s, SideA, "shield", 1)

	require.NoError(t, s.DoAction(playSpell(1, 0, StartedTurnWithID(1))))
	necro := s.Pieces[1]
	assert.Equal(t, 9, necro.Defense())
}

func TestSpellFromRevealed(t *testing.T) {
	s := newTestState(t)
	s.Revealed[SideA] = append(s.Revealed[SideA], SpellCard{ID: 7, Name: "haste"})

	require.NoError(t, s.DoAction(playSpell(7, 0, StartedTurnWithID(1))))
	assert.Empty(t, s.Revealed[SideA])
	assert.Equal(t, 2, s.Pieces[1].MoveRange())
}

func TestSpellTargetPredicates(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideA, hex.Coord{Q: 1, R: 0})
	addCard(s, SideA, "wither", 1)
	addCard(s, SideA, "shield", 2)

	// Wither wants an enemy; the zombie is ours.
	err := s.DoAction(playSpell(1, 2, z.Spec()))
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "got %v", err)

	// Shield wants a friendly; the enemy necromancer is not.
	err = s.DoAction(playSpell(2, 0, StartedTurnWithID(2)))
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "got %v", err)
}

func TestQuagmireBlocksGroundMovement(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideA, hex.Coord{Q: -2, R: 0})
	bat := addPiece(t, s, "bat", SideA, hex.Coord{Q: -2, R: 1})
	addCard(s, SideA, "quagmire", 1)
	addCard(s, SideA, "mend", 2)

	require.NoError(t, s.DoAction(PlayerAction{
		Kind: SpellAction, Spell: 1, Discard: 2,
		TargetLoc: hex.Coord{Q: -1, R: 0},
	}))

	err := s.DoAction(Movements(z.Spec(), hex.Coord{Q: -1, R: 0}))
	assert.True(t, IsKind(err, MovementIllegal), "got %v", err)
	require.NoError(t, s.DoAction(Movements(bat.Spec(), hex.Coord{Q: -1, R: 0}, hex.Coord{Q: -1, R: 1})))
}

func TestRemovalSpellRespectsPersistence(t *testing.T) {
	s := newTestState(t)
	addCard(s, SideA, "dispel", 1)
	g := addPiece(t, s, "ghost", SideB, hex.Coord{Q: 1, R: 0})

	// Dispel cleanses rather than removes, so persistence does not apply.
	g.Mods = append(g.Mods, Mod{Kind: ModDefense, Amount: 2, Turns: 2})
	require.NoError(t, s.DoAction(playSpell(1, 0, g.Spec())))
	assert.Empty(t, g.Mods)
}

func TestAbilityOncePerTurnAndInRange(t *testing.T) {
	s := newTestState(t)
	h := addPiece(t, s, "horror", SideA, hex.Coord{Q: 1, R: 0})
	bat := addPiece(t, s, "bat", SideB, hex.Coord{Q: 2, R: 0})
	far := addPiece(t, s, "imp", SideB, hex.Coord{Q: 3, R: 0})

	shriek := func(target PieceSpec) PlayerAction {
		return PlayerAction{Kind: AbilityAction, Ability: "shriek", Caster: h.Spec(), TargetPiece: target}
	}

	err := s.DoAction(shriek(far.Spec()))
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "out of range: %v", err)

	require.NoError(t, s.DoAction(shriek(bat.Spec())))
	assert.False(t, s.PieceExists(bat.Spec()), "one damage breaks defense 1")

	err = s.DoAction(shriek(far.Spec()))
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "once per turn: %v", err)
}

func TestFadeBuffsSelf(t *testing.T) {
	s := newTestState(t)
	g := addPiece(t, s, "ghost", SideA, hex.Coord{Q: 1, R: 0})

	require.NoError(t, s.DoAction(PlayerAction{Kind: AbilityAction, Ability: "fade", Caster: g.Spec()}))
	assert.Equal(t, 6, g.Defense())
}

func TestUnknownAbilityRejected(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideA, hex.Coord{Q: 1, R: 0})

	err := s.DoAction(PlayerAction{Kind: AbilityAction, Ability: "shriek", Caster: z.Spec()})
	assert.True(t, IsKind(err, SpellOrAbilityIllegal), "got %v", err)
}
