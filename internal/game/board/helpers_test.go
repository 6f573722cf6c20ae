package board

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathanpaulson/minions-sub000/internal/game/content"
	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

func newTestState(t *testing.T) *BoardState {
	t.Helper()
	s, err := NewBoardState("blackacre")
	require.NoError(t, err)
	return s
}

// addPiece drops a unit straight into the arena, bypassing spawn rules, and
// returns it. Used to set up mid-game positions.
func addPiece(t *testing.T, s *BoardState, name string, side Side, loc hex.Coord) *Piece {
	t.Helper()
	stats, ok := content.UnitByName(name)
	require.True(t, ok, "unknown unit %q", name)
	p := &Piece{
		ID:    s.nextPieceID,
		Side:  side,
		Stats: stats,
		Loc:   loc,
		State: Moving(0),
	}
	s.nextPieceID++
	s.Pieces[p.ID] = p
	s.ByLoc[loc] = append(s.ByLoc[loc], p.ID)
	return p
}

func addCard(s *BoardState, side Side, name string, id SpellID) {
	s.Hand[side] = append(s.Hand[side], SpellCard{ID: id, Name: name})
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard("blackacre")
	require.NoError(t, err)
	return b
}

// seedUnit places a unit into all three of a board's per-turn snapshots, as
// if it had been there since the start of the turn, and rebases the undo
// history on the seeded position.
func seedUnit(t *testing.T, b *Board, name string, side Side, loc hex.Coord) PieceSpec {
	t.Helper()
	var id PieceID
	for _, s := range []*BoardState{b.initial, b.moveAttack, b.spawn} {
		id = addPiece(t, s, name, side, loc).ID
	}
	b.history = []*BoardHistory{b.snapshotEntry(BoardAction{})}
	b.cursor = 0
	return StartedTurnWithID(id)
}

// fingerprint renders the observable state deterministically so two
// snapshots can be compared for equivalence.
func fingerprint(s *BoardState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn=%d side=%s mana=%v income=%v\n", s.Turn, s.SideToMove, s.Mana, s.Income)
	for side := SideA; side <= SideB; side++ {
		names := make([]string, 0, len(s.Reinforcements[side]))
		for name, n := range s.Reinforcements[side] {
			if n > 0 {
				names = append(names, fmt.Sprintf("%s:%d", name, n))
			}
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "reinf[%s]=%s hand=%d revealed=%d\n", side, strings.Join(names, ","), len(s.Hand[side]), len(s.Revealed[side]))
	}
	var lines []string
	for _, id := range s.sortedPieceIDs() {
		p := s.Pieces[id]
		lines = append(lines, fmt.Sprintf("%s %s@(%d,%d) dmg=%d st=%s", p.Side, p.Stats.Name, p.Loc.Q, p.Loc.R, p.Damage, p.State))
	}
	sb.WriteString(strings.Join(lines, "\n"))
	return sb.String()
}
