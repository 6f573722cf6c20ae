package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathanpaulson/minions-sub000/internal/config"
	"github.com/jonathanpaulson/minions-sub000/internal/game"
	"github.com/jonathanpaulson/minions-sub000/internal/game/board"
	hexgrid "github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

var configPath = flag.String("config", "", "path to configuration file")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // demo host, any origin
	},
}

// wsCommand is one JSON command from a client. Type selects the variant; the
// remaining fields are per-variant.
type wsCommand struct {
	Type    string      `json:"type"`
	Map     string      `json:"map,omitempty"`
	Actions []actionDTO `json:"actions,omitempty"`
	Unit    string      `json:"unit,omitempty"`
	Spell   string      `json:"spell,omitempty"`
	SpellID int         `json:"spell_id,omitempty"`
	Piece   *specDTO    `json:"piece,omitempty"`
}

type wsReply struct {
	Type     string     `json:"type"`
	Error    string     `json:"error,omitempty"`
	GameID   string     `json:"game_id,omitempty"`
	State    *stateView `json:"state,omitempty"`
	Checksum string     `json:"checksum,omitempty"`
	Summary  any        `json:"summary,omitempty"`
}

type coordDTO struct {
	Q int `json:"q"`
	R int `json:"r"`
}

type specDTO struct {
	ID   int       `json:"id,omitempty"`
	Name string    `json:"name,omitempty"`
	Loc  *coordDTO `json:"loc,omitempty"`
	Nth  int       `json:"nth,omitempty"`
}

type actionDTO struct {
	Type      string     `json:"type"` // move, attack, spawn, spell, ability
	Piece     *specDTO   `json:"piece,omitempty"`
	Target    *specDTO   `json:"target,omitempty"`
	Path      []coordDTO `json:"path,omitempty"`
	Unit      string     `json:"unit,omitempty"`
	Loc       *coordDTO  `json:"loc,omitempty"`
	Spell     int        `json:"spell,omitempty"`
	Discard   int        `json:"discard,omitempty"`
	Ability   string     `json:"ability,omitempty"`
	TargetLoc *coordDTO  `json:"target_loc,omitempty"`
}

type pieceView struct {
	Side     string   `json:"side"`
	Name     string   `json:"name"`
	Loc      coordDTO `json:"loc"`
	Damage   int      `json:"damage"`
	State    string   `json:"state"`
	Spec     specDTO  `json:"spec"`
	Moved    bool     `json:"moved"`
	Attacked bool     `json:"attacked"`
}

type stateView struct {
	Turn           int                  `json:"turn"`
	SideToMove     string               `json:"side_to_move"`
	Winner         string               `json:"winner,omitempty"`
	Mana           [2]int               `json:"mana"`
	Income         [2]int               `json:"income"`
	Reinforcements [2]map[string]int    `json:"reinforcements"`
	Hand           [2][]board.SpellCard `json:"hand"`
	Pieces         []pieceView          `json:"pieces"`
}

func toCoord(c coordDTO) hexgrid.Coord { return hexgrid.Coord{Q: c.Q, R: c.R} }

func toSpec(d *specDTO) board.PieceSpec {
	if d == nil {
		return board.PieceSpec{}
	}
	if d.ID != 0 {
		return board.StartedTurnWithID(board.PieceID(d.ID))
	}
	var loc hexgrid.Coord
	if d.Loc != nil {
		loc = toCoord(*d.Loc)
	}
	return board.SpawnedThisTurn(d.Name, loc, d.Nth)
}

func fromSpec(s board.PieceSpec) specDTO {
	if s.Kind == board.SpecStartedTurn {
		return specDTO{ID: int(s.ID)}
	}
	return specDTO{Name: s.Name, Loc: &coordDTO{Q: s.Loc.Q, R: s.Loc.R}, Nth: s.NthAtLoc}
}

func toPlayerAction(d actionDTO) (board.PlayerAction, error) {
	switch d.Type {
	case "move":
		path := make([]hexgrid.Coord, len(d.Path))
		for i, c := range d.Path {
			path[i] = toCoord(c)
		}
		return board.Movements(toSpec(d.Piece), path...), nil
	case "attack":
		return board.Attack(toSpec(d.Piece), toSpec(d.Target)), nil
	case "spawn":
		if d.Loc == nil {
			return board.PlayerAction{}, fmt.Errorf("spawn needs a loc")
		}
		return board.Spawn(d.Unit, toCoord(*d.Loc)), nil
	case "spell":
		a := board.PlayerAction{
			Kind:    board.SpellAction,
			Spell:   board.SpellID(d.Spell),
			Discard: board.SpellID(d.Discard),
		}
		if d.Target != nil {
			a.TargetPiece = toSpec(d.Target)
		}
		if d.TargetLoc != nil {
			a.TargetLoc = toCoord(*d.TargetLoc)
		}
		return a, nil
	case "ability":
		a := board.PlayerAction{
			Kind:    board.AbilityAction,
			Ability: d.Ability,
			Caster:  toSpec(d.Piece),
		}
		if d.Target != nil {
			a.TargetPiece = toSpec(d.Target)
		}
		return a, nil
	}
	return board.PlayerAction{}, fmt.Errorf("unknown action type %q", d.Type)
}

func viewState(s *board.BoardState) *stateView {
	v := &stateView{
		Turn:       s.Turn,
		SideToMove: s.SideToMove.String(),
		Mana:       s.Mana,
		Income:     s.Income,
		Hand:       s.Hand,
	}
	if s.Winner != nil {
		v.Winner = s.Winner.String()
	}
	for side := board.SideA; side <= board.SideB; side++ {
		v.Reinforcements[side] = s.Reinforcements[side]
	}
	for _, p := range s.SortedPieces() {
		v.Pieces = append(v.Pieces, pieceView{
			Side:     p.Side.String(),
			Name:     p.Stats.Name,
			Loc:      coordDTO{Q: p.Loc.Q, R: p.Loc.R},
			Damage:   p.Damage,
			State:    p.State.String(),
			Spec:     fromSpec(p.Spec()),
			Moved:    p.Moved,
			Attacked: p.Attacked,
		})
	}
	return v
}

// client serves one websocket connection driving one game. Commands are
// handled synchronously on the read loop, which is what serializes all
// access to the game's board.
type client struct {
	conn   *websocket.Conn
	engine *game.Engine
	cfg    *config.Config
	logger *zap.Logger
	gameID string
}

func (c *client) reply(r wsReply) {
	if err := c.conn.WriteJSON(r); err != nil {
		c.logger.Debug("write failed", zap.Error(err))
	}
}

func (c *client) fail(err error) {
	c.reply(wsReply{Type: "error", Error: err.Error()})
}

func (c *client) stateReply() {
	b, err := c.engine.Game(c.gameID)
	if err != nil {
		c.fail(err)
		return
	}
	sum, _ := c.engine.Checksum(c.gameID)
	c.reply(wsReply{
		Type:     "state",
		GameID:   c.gameID,
		State:    viewState(b.CurrentState()),
		Checksum: sum,
	})
}

func (c *client) submit(a board.BoardAction) {
	if err := c.engine.Submit(c.gameID, a); err != nil {
		c.fail(err)
		return
	}
	c.stateReply()
}

func (c *client) handle(cmd wsCommand) {
	if cmd.Type == "new_game" {
		if max := c.cfg.Game.MaxGames; max > 0 && c.gameID == "" && c.engine.NumGames() >= max {
			c.fail(fmt.Errorf("game limit reached (%d)", max))
			return
		}
		mapName := cmd.Map
		if mapName == "" {
			mapName = c.cfg.Game.DefaultMap
		}
		gameID, err := c.engine.NewGame(mapName)
		if err != nil {
			c.fail(err)
			return
		}
		if c.gameID != "" {
			c.engine.DropGame(c.gameID)
		}
		c.gameID = gameID
		c.stateReply()
		return
	}
	if c.gameID == "" {
		c.fail(fmt.Errorf("no game yet, send new_game first"))
		return
	}

	switch cmd.Type {
	case "actions":
		actions := make([]board.PlayerAction, 0, len(cmd.Actions))
		for _, d := range cmd.Actions {
			a, err := toPlayerAction(d)
			if err != nil {
				c.fail(err)
				return
			}
			actions = append(actions, a)
		}
		c.submit(board.BoardAction{Kind: board.PlayActions, Actions: actions})
	case "buy":
		c.submit(board.BoardAction{Kind: board.DoGeneralAction, General: board.BuyReinforcement(cmd.Unit)})
	case "gain_spell":
		c.submit(board.BoardAction{Kind: board.DoGeneralAction, General: board.GainSpell(cmd.Spell)})
	case "undo":
		c.submit(board.BoardAction{Kind: board.UndoAction})
	case "redo":
		c.submit(board.BoardAction{Kind: board.RedoAction})
	case "undo_piece":
		c.submit(board.BoardAction{Kind: board.LocalPieceUndoAction, Piece: toSpec(cmd.Piece)})
	case "undo_spell":
		c.submit(board.BoardAction{Kind: board.LocalSpellUndoAction, Spell: board.SpellID(cmd.SpellID)})
	case "undo_buy":
		c.submit(board.BoardAction{Kind: board.LocalGeneralUndoAction, General: board.BuyReinforcement(cmd.Unit)})
	case "undo_gain":
		c.submit(board.BoardAction{Kind: board.LocalGeneralUndoAction, General: board.GainSpell(cmd.Spell)})
	case "end_turn":
		c.submit(board.BoardAction{Kind: board.EndTurnAction})
	case "state":
		c.stateReply()
	case "summary":
		sum, err := c.engine.Summary(c.gameID)
		if err != nil {
			c.fail(err)
			return
		}
		c.reply(wsReply{Type: "summary", GameID: c.gameID, Summary: sum})
	default:
		c.fail(fmt.Errorf("unknown command %q", cmd.Type))
	}
}

func (c *client) readLoop() {
	defer func() {
		if c.gameID != "" {
			c.engine.DropGame(c.gameID)
		}
		c.conn.Close()
	}()
	for {
		var cmd wsCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			return
		}
		c.handle(cmd)
	}
}

func serveWS(engine *game.Engine, cfg *config.Config, logger *zap.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, engine: engine, cfg: cfg, logger: logger}
	go c.readLoop()
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	engine := game.NewEngine(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(engine, cfg, logger, w, r)
	})

	srv := &http.Server{Addr: cfg.Server.Address, Handler: mux}
	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(serveErr))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	srv.Close()
}

// initLogger builds the zap logger from configuration.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
