package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

func TestMoveOneStep(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideA, hex.Coord{Q: -3, R: 0})

	require.NoError(t, s.DoAction(Movements(z.Spec(), hex.Coord{Q: -2, R: 0})))
	assert.Equal(t, hex.Coord{Q: -2, R: 0}, z.Loc)
	assert.True(t, z.Moved)
	assert.Equal(t, Moving(1), z.State)
	assert.Empty(t, s.ByLoc[hex.Coord{Q: -3, R: 0}])
}

func TestMoveIntoWaterIllegal(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideA, hex.Coord{Q: -1, R: 0})

	err := s.DoAction(Movements(z.Spec(), hex.Coord{Q: 0, R: 0}))
	assert.True(t, IsKind(err, MovementIllegal), "got %v", err)
}

func TestFlyingCrossesAndLandsOnWater(t *testing.T) {
	s := newTestState(t)
	b := addPiece(t, s, "bat", SideA, hex.Coord{Q: -1, R: 0})

	// Through the water at the origin onto ground beyond it.
	require.NoError(t, s.DoAction(Movements(b.Spec(), hex.Coord{Q: 0, R: 0}, hex.Coord{Q: 1, R: 0})))
	assert.Equal(t, hex.Coord{Q: 1, R: 0}, b.Loc)

	s2 := newTestState(t)
	b2 := addPiece(t, s2, "bat", SideA, hex.Coord{Q: -1, R: 0})
	require.NoError(t, s2.DoAction(Movements(b2.Spec(), hex.Coord{Q: 0, R: 0})))
	assert.Equal(t, hex.Coord{Q: 0, R: 0}, b2.Loc)
}

func TestPassThroughOnlyFriendly(t *testing.T) {
	s := newTestState(t)
	imp := addPiece(t, s, "imp", SideA, hex.Coord{Q: -3, R: 0})
	addPiece(t, s, "zombie", SideB, hex.Coord{Q: -2, R: 0})

	err := s.DoAction(Movements(imp.Spec(), hex.Coord{Q: -2, R: 0}, hex.Coord{Q: -1, R: 0}))
	assert.True(t, IsKind(err, MovementIllegal), "got %v", err)

	s2 := newTestState(t)
	imp2 := addPiece(t, s2, "imp", SideA, hex.Coord{Q: -3, R: 0})
	addPiece(t, s2, "zombie", SideA, hex.Coord{Q: -2, R: 0})
	require.NoError(t, s2.DoAction(Movements(imp2.Spec(), hex.Coord{Q: -2, R: 0}, hex.Coord{Q: -1, R: 0})))
	assert.Equal(t, hex.Coord{Q: -1, R: 0}, imp2.Loc)
}

func TestMoveRangeIsSpentAcrossActions(t *testing.T) {
	s := newTestState(t)
	imp := addPiece(t, s, "imp", SideA, hex.Coord{Q: -3, R: 0})

	require.NoError(t, s.DoAction(Movements(imp.Spec(), hex.Coord{Q: -2, R: 0})))
	require.NoError(t, s.DoAction(Movements(imp.Spec(), hex.Coord{Q: -1, R: 0})))
	assert.Equal(t, Moving(2), imp.State)

	err := s.DoAction(Movements(imp.Spec(), hex.Coord{Q: -1, R: 1}))
	assert.True(t, IsKind(err, MovementIllegal), "got %v", err)
}

func TestCannotMoveAfterAttacking(t *testing.T) {
	s := newTestState(t)
	sk := addPiece(t, s, "skeleton", SideA, hex.Coord{Q: 1, R: 0})
	tgt := addPiece(t, s, "ghoul", SideB, hex.Coord{Q: 2, R: 0})

	require.NoError(t, s.DoAction(Attack(sk.Spec(), tgt.Spec())))
	err := s.DoAction(Movements(sk.Spec(), hex.Coord{Q: 1, R: -1}))
	assert.True(t, IsKind(err, MovementIllegal), "got %v", err)
}

func TestLegalMovesDeterministicOrder(t *testing.T) {
	s := newTestState(t)

	// The side-A necromancer sits at the west edge; two of its six
	// neighbors are off the map.
	moves, err := s.LegalMoves(StartedTurnWithID(1))
	require.NoError(t, err)
	assert.Equal(t, []hex.Coord{{Q: -4, R: 1}, {Q: -3, R: -1}, {Q: -3, R: 0}}, moves)
}

func TestFindLegalMoveReturnsPath(t *testing.T) {
	s := newTestState(t)
	imp := addPiece(t, s, "imp", SideA, hex.Coord{Q: -3, R: 0})

	path, err := s.FindLegalMove(imp.Spec(), hex.Coord{Q: -1, R: 0}, nil)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, hex.Coord{Q: -1, R: 0}, path[1])
	assert.True(t, hex.Adjacent(hex.Coord{Q: -3, R: 0}, path[0]))

	_, err = s.FindLegalMove(imp.Spec(), hex.Coord{Q: 2, R: 0}, nil)
	assert.True(t, IsKind(err, MovementIllegal), "got %v", err)
}

func TestDoActionUnsafeSkipsLegality(t *testing.T) {
	s := newTestState(t)
	z := addPiece(t, s, "zombie", SideA, hex.Coord{Q: -3, R: 0})
	path := []hex.Coord{{Q: -2, R: 0}, {Q: -1, R: 0}, {Q: 0, R: -1}}

	err := s.DoAction(Movements(z.Spec(), path...))
	require.True(t, IsKind(err, MovementIllegal), "three steps exceed a zombie's range: %v", err)

	require.NoError(t, s.DoActionUnsafe(Movements(z.Spec(), path...)))
	p, ok := s.PieceBySpec(z.Spec())
	require.True(t, ok)
	assert.Equal(t, hex.Coord{Q: 0, R: -1}, p.Loc)
}

func TestMoveBiasDoesNotChangeLegalSet(t *testing.T) {
	s := newTestState(t)
	imp := addPiece(t, s, "imp", SideA, hex.Coord{Q: -3, R: 0})

	plain, err := s.LegalMoves(imp.Spec())
	require.NoError(t, err)
	for _, dest := range plain {
		bias := func(a, b hex.Coord) bool { return a.R > b.R }
		path, err := s.FindLegalMove(imp.Spec(), dest, bias)
		require.NoError(t, err)
		assert.Equal(t, dest, path[len(path)-1])
	}
}
