package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathanpaulson/minions-sub000/internal/game/board"
	hexgrid "github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

// EncodeSummary serializes a board summary for persistence or transmission.
// The summary is the sole replayable representation of a game: replaying its
// action list against a fresh board reconstructs the state exactly.
func EncodeSummary(s board.BoardSummary) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSummary deserializes a board summary produced by EncodeSummary.
func DecodeSummary(data []byte) (board.BoardSummary, error) {
	var s board.BoardSummary
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return board.BoardSummary{}, fmt.Errorf("decode summary: %w", err)
	}
	return s, nil
}

// StateChecksum computes a deterministic SHA-256 checksum of a snapshot's
// observable state. Two states with equal checksums are interchangeable to a
// player; replay-equality checks compare these rather than raw structures,
// which contain maps with no canonical iteration order.
func StateChecksum(s *board.BoardState) string {
	h := sha256.Sum256([]byte(canonicalState(s)))
	return hex.EncodeToString(h[:])
}

// canonicalState renders the snapshot as a sorted, deterministic string.
func canonicalState(s *board.BoardState) string {
	var buf bytes.Buffer

	winner := "-"
	if s.Winner != nil {
		winner = s.Winner.String()
	}
	fmt.Fprintf(&buf, "BOARD:%s|%d|%s|%s\n", s.Map.Name, s.Turn, s.SideToMove, winner)
	fmt.Fprintf(&buf, "MANA:%d,%d|INCOME:%d,%d\n", s.Mana[0], s.Mana[1], s.Income[0], s.Income[1])

	for side := board.SideA; side <= board.SideB; side++ {
		names := make([]string, 0, len(s.Reinforcements[side]))
		for name, n := range s.Reinforcements[side] {
			if n > 0 {
				names = append(names, fmt.Sprintf("%s=%d", name, n))
			}
		}
		sort.Strings(names)
		fmt.Fprintf(&buf, "REINF[%s]:%s\n", side, strings.Join(names, ","))
		fmt.Fprintf(&buf, "HAND[%s]:%s\n", side, cardList(s.Hand[side]))
		fmt.Fprintf(&buf, "REVEALED[%s]:%s\n", side, cardList(s.Revealed[side]))
	}

	// Pieces sorted by arena ID; IDs are assigned deterministically.
	ids := make([]int, 0, len(s.Pieces))
	for id := range s.Pieces {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		p := s.Pieces[board.PieceID(id)]
		fmt.Fprintf(&buf, "PIECE:%d|%s|%s|%d,%d|%d|%s|%t|%t%s\n",
			p.ID, p.Side, p.Stats.Name, p.Loc.Q, p.Loc.R,
			p.Damage, p.State, p.Moved, p.Attacked, modList(p.Mods))
	}

	// Only modded tiles matter; terrain is fixed by the map.
	var modded []hexgrid.Coord
	for c, t := range s.Tiles {
		if len(t.Mods) > 0 {
			modded = append(modded, c)
		}
	}
	sort.Slice(modded, func(i, j int) bool {
		if modded[i].Q != modded[j].Q {
			return modded[i].Q < modded[j].Q
		}
		return modded[i].R < modded[j].R
	})
	for _, c := range modded {
		fmt.Fprintf(&buf, "TILE:%d,%d%s\n", c.Q, c.R, modList(s.Tiles[c].Mods))
	}

	return buf.String()
}

func cardList(cards []board.SpellCard) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = fmt.Sprintf("%d:%s", c.ID, c.Name)
	}
	return strings.Join(parts, ",")
}

func modList(mods []board.Mod) string {
	if len(mods) == 0 {
		return ""
	}
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = fmt.Sprintf("%d:%d:%d", m.Kind, m.Amount, m.Turns)
	}
	return "|mods=" + strings.Join(parts, ",")
}
