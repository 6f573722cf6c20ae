// Package game hosts the engine facade: a registry of live boards keyed by
// game ID, resource-manager hooks around undo/redo, and the serialized
// summary/checksum support used for replay-equality checks.
package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathanpaulson/minions-sub000/internal/game/board"
)

// ResourceHooks let an external resource manager react when a resource-
// touching action is undone or redone (refund mana, re-queue a spell draw).
// BeforeUndo fires with the action about to be reverted, AfterRedo with the
// action just reapplied. Either may be nil.
type ResourceHooks struct {
	BeforeUndo func(gameID string, a board.BoardAction)
	AfterRedo  func(gameID string, a board.BoardAction)
}

// Engine owns the live boards. The registry map is guarded by a mutex so
// games can be created and dropped from different connections; all access to
// any one board must still be serialized by its caller, as the board layer
// performs no locking of its own.
type Engine struct {
	logger *zap.Logger

	mu    sync.RWMutex
	games map[string]*board.Board

	hooks ResourceHooks
}

// NewEngine creates an engine. logger may be nil.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger,
		games:  make(map[string]*board.Board),
	}
}

// SetResourceHooks registers undo/redo hooks. Call before submitting actions.
func (e *Engine) SetResourceHooks(h ResourceHooks) {
	e.hooks = h
}

// NewGame creates a board for the named map and returns its game ID.
func (e *Engine) NewGame(mapName string) (string, error) {
	b, err := board.NewBoard(mapName)
	if err != nil {
		return "", fmt.Errorf("new game: %w", err)
	}
	gameID := uuid.New().String()
	e.mu.Lock()
	e.games[gameID] = b
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Info("game created",
			zap.String("game_id", gameID),
			zap.String("map", mapName),
		)
	}
	return gameID, nil
}

// Game returns the live board for a game ID.
func (e *Engine) Game(gameID string) (*board.Board, error) {
	e.mu.RLock()
	b, ok := e.games[gameID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no such game %q", gameID)
	}
	return b, nil
}

// NumGames reports how many games are currently live.
func (e *Engine) NumGames() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.games)
}

// DropGame removes a finished game from the registry.
func (e *Engine) DropGame(gameID string) {
	e.mu.Lock()
	delete(e.games, gameID)
	e.mu.Unlock()
	if e.logger != nil {
		e.logger.Info("game dropped", zap.String("game_id", gameID))
	}
}

// Submit dispatches a turn-level action to a game's board, firing resource
// hooks around undo and redo.
func (e *Engine) Submit(gameID string, a board.BoardAction) error {
	b, err := e.Game(gameID)
	if err != nil {
		return err
	}

	if a.Kind == board.UndoAction && e.hooks.BeforeUndo != nil {
		if prev, ok := b.PrevAction(); ok {
			e.hooks.BeforeUndo(gameID, prev)
		}
	}

	if err := b.Submit(a); err != nil {
		if e.logger != nil {
			e.logger.Debug("action rejected",
				zap.String("game_id", gameID),
				zap.Stringer("kind", a.Kind),
				zap.Error(err),
			)
		}
		return err
	}

	if a.Kind == board.RedoAction && e.hooks.AfterRedo != nil {
		if redone, ok := b.PrevAction(); ok {
			e.hooks.AfterRedo(gameID, redone)
		}
	}

	if e.logger != nil {
		e.logger.Debug("action applied",
			zap.String("game_id", gameID),
			zap.Stringer("kind", a.Kind),
		)
	}
	return nil
}

// EndTurn ends the current turn of a game.
func (e *Engine) EndTurn(gameID string) error {
	return e.Submit(gameID, board.BoardAction{Kind: board.EndTurnAction})
}

// Summary returns the replayable representation of a game.
func (e *Engine) Summary(gameID string) (board.BoardSummary, error) {
	b, err := e.Game(gameID)
	if err != nil {
		return board.BoardSummary{}, err
	}
	return b.Summary(), nil
}

// Checksum returns the deterministic state checksum of a game's current
// (spawn-phase) state.
func (e *Engine) Checksum(gameID string) (string, error) {
	b, err := e.Game(gameID)
	if err != nil {
		return "", err
	}
	return StateChecksum(b.CurrentState()), nil
}
