package board

import (
	"sort"

	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

// MoveBias orders two frontier hexes during path search; returning true means
// a is expanded before b. A bias picks nicer paths without ever changing the
// set of legal destinations. nil keeps plain breadth-first order.
type MoveBias func(a, b hex.Coord) bool

// passThroughCheck reports whether p may walk through loc without stopping
// there: the tile must be passable and any occupants friendly, unless p flies.
func (s *BoardState) passThroughCheck(p *Piece, loc hex.Coord) bool {
	tile, ok := s.Tiles[loc]
	if !ok || !tile.passableBy(p.Stats) {
		return false
	}
	if p.Stats.Flying {
		return true
	}
	for _, q := range s.OccupantsAt(loc) {
		if q.Side != p.Side {
			return false
		}
	}
	return true
}

func (p *Piece) remainingMove() int {
	if p.State.Kind != ActMoving {
		return 0
	}
	r := p.MoveRange() - p.State.Used
	if r < 0 {
		return 0
	}
	return r
}

// floodFill runs a breadth-first search from p's location out to its
// remaining move range and returns the best known path to every reachable
// hex (paths exclude the start). Reachable means walkable-through; callers
// still apply destinationCheck before stopping anywhere.
func (s *BoardState) floodFill(p *Piece, bias MoveBias) map[hex.Coord][]hex.Coord {
	paths := map[hex.Coord][]hex.Coord{p.Loc: nil}
	frontier := []hex.Coord{p.Loc}
	for depth := 0; depth < p.remainingMove() && len(frontier) > 0; depth++ {
		if bias != nil {
			sort.SliceStable(frontier, func(i, j int) bool { return bias(frontier[i], frontier[j]) })
		}
		var next []hex.Coord
		for _, cur := range frontier {
			for _, n := range cur.Neighbors() {
				if _, seen := paths[n]; seen {
					continue
				}
				if !s.passThroughCheck(p, n) {
					continue
				}
				path := make([]hex.Coord, 0, len(paths[cur])+1)
				path = append(path, paths[cur]...)
				path = append(path, n)
				paths[n] = path
				next = append(next, n)
			}
		}
		frontier = next
	}
	delete(paths, p.Loc)
	return paths
}

// LegalMoves returns every hex the piece could legally stop on, in
// deterministic scanline order.
func (s *BoardState) LegalMoves(spec PieceSpec) ([]hex.Coord, error) {
	p, ok := s.PieceBySpec(spec)
	if !ok {
		return nil, illegalf(MovementIllegal, "no such piece %s", spec)
	}
	paths := s.floodFill(p, nil)
	out := make([]hex.Coord, 0, len(paths))
	for dest := range paths {
		if s.destinationCheck(MovementIllegal, p.Stats, p.Side, dest, p) == nil {
			out = append(out, dest)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Q != out[j].Q {
			return out[i].Q < out[j].Q
		}
		return out[i].R < out[j].R
	})
	return out, nil
}

// FindLegalMove returns a legal path from the piece's location to dest, or a
// MovementIllegal error if dest is unreachable. The bias only affects which
// of several equally-short paths is preferred.
func (s *BoardState) FindLegalMove(spec PieceSpec, dest hex.Coord, bias MoveBias) ([]hex.Coord, error) {
	p, ok := s.PieceBySpec(spec)
	if !ok {
		return nil, illegalf(MovementIllegal, "no such piece %s", spec)
	}
	if err := s.destinationCheck(MovementIllegal, p.Stats, p.Side, dest, p); err != nil {
		return nil, err
	}
	paths := s.floodFill(p, bias)
	path, ok := paths[dest]
	if !ok {
		return nil, illegalf(MovementIllegal, "%s cannot reach (%d,%d)", spec, dest.Q, dest.R)
	}
	return path, nil
}

// checkMovements validates a movement action: the piece must still be in its
// moving stage with enough range left, and every step must be an adjacent,
// walkable hex ending somewhere it may stop.
func (s *BoardState) checkMovements(a PlayerAction) (*Piece, error) {
	p, ok := s.PieceBySpec(a.Mover)
	if !ok {
		return nil, illegalf(MovementIllegal, "no such piece %s", a.Mover)
	}
	if p.Side != s.SideToMove {
		return nil, illegalf(MovementIllegal, "%s belongs to side %s", a.Mover, p.Side)
	}
	if len(a.Path) == 0 {
		return nil, illegalf(MovementIllegal, "empty path")
	}
	if p.State.Kind != ActMoving {
		return nil, illegalf(MovementIllegal, "%s has already acted (%s)", a.Mover, p.State)
	}
	if len(a.Path) > p.remainingMove() {
		return nil, illegalf(MovementIllegal, "%s has %d steps left, path needs %d", a.Mover, p.remainingMove(), len(a.Path))
	}
	prev := p.Loc
	for i, step := range a.Path {
		if !hex.Adjacent(prev, step) {
			return nil, illegalf(MovementIllegal, "step %d from (%d,%d) to (%d,%d) is not adjacent", i, prev.Q, prev.R, step.Q, step.R)
		}
		if i < len(a.Path)-1 {
			if !s.passThroughCheck(p, step) {
				return nil, illegalf(MovementIllegal, "%s cannot pass through (%d,%d)", a.Mover, step.Q, step.R)
			}
		}
		prev = step
	}
	dest := a.Path[len(a.Path)-1]
	if err := s.destinationCheck(MovementIllegal, p.Stats, p.Side, dest, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *BoardState) applyMovements(p *Piece, path []hex.Coord) {
	s.unplacePiece(p)
	s.placePiece(p, path[len(path)-1])
	p.Moved = true
	p.State = Moving(p.State.Used + len(path))
}
