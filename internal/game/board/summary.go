package board

// BoardSummary is the replayable representation of a game: the map the
// initial state is built from plus every surviving turn-level action in
// submission order. Undone actions never appear; local undo leaves only the
// filtered survivors.
type BoardSummary struct {
	Map     string
	Actions []BoardAction
}

// ReplaySummary reconstructs a board by submitting the summary's actions to a
// fresh board in order. The result is identical to the board the summary was
// taken from, including in-turn state.
func ReplaySummary(s BoardSummary) (*Board, error) {
	b, err := NewBoard(s.Map)
	if err != nil {
		return nil, err
	}
	for _, a := range s.Actions {
		if err := b.Submit(a); err != nil {
			return nil, invariantf("summary replay rejected %s: %v", a.Kind, err)
		}
	}
	return b, nil
}
