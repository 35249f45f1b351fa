package model

import (
	"sync"

	"github.com/benbeisheim/camelot-backend/internal/camelot"
	"github.com/benbeisheim/camelot-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

type GameStatus string

const (
	StatusWaiting   GameStatus = "waiting"
	StatusActive    GameStatus = "active"
	StatusCompleted GameStatus = "completed"
)

// Ways a game ends that the board does not decide.
const (
	Resignation camelot.WinReason = "resignation"
	Timeout     camelot.WinReason = "timeout"
)

const (
	soundMove    = "move"
	soundCapture = "capture"
	soundWin     = "win"
)

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID    string
	mu    sync.Mutex
	state GameState
	// board as it was when the current turn's piece was selected
	turnStart   camelot.BoardState
	connections *GameConnections
	timed       bool
	whiteClock  *Clock
	blackClock  *Clock

	sendMu   sync.Mutex
	lastSent int
}

type GameState struct {
	Version        int                 `json:"version"`
	Status         GameStatus          `json:"status"`
	Sound          string              `json:"sound"`
	Board          camelot.BoardState  `json:"boardState"`
	ToMove         camelot.Color       `json:"toMove"`
	MoveHistory    []TurnRecord        `json:"moveHistory"`
	Turn           *camelot.TurnState  `json:"turnState"`      // nil between turns
	SelectedSquare *camelot.Square     `json:"selectedSquare"` // nil between turns
	LegalMoves     []camelot.LegalMove `json:"legalMoves"`
	Message        string              `json:"message"`
	CastleMoves    CastleMoves         `json:"castleMoves"`
	Winner         camelot.Color       `json:"winner"`
	WinReason      camelot.WinReason   `json:"winReason"`
	Players        Players             `json:"players"`
}

func NewGame(id string, tc TimeControl) *Game {
	return &Game{
		ID:          id,
		state:       newGameState(),
		connections: NewGameConnections(),
		timed:       tc.Initial > 0,
		whiteClock:  NewClock(tc),
		blackClock:  NewClock(tc),
	}
}

func newGameState() GameState {
	return GameState{
		Status:      StatusWaiting,
		Board:       camelot.InitialBoardState(),
		ToMove:      camelot.White,
		MoveHistory: make([]TurnRecord, 0),
		LegalMoves:  make([]camelot.LegalMove, 0),
	}
}

// AddPlayer seats playerID, white first. A player already seated gets their color back.
func (g *Game) AddPlayer(playerID string) (camelot.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.state.Players.ColorOf(playerID); ok {
		return color, nil
	}

	var color camelot.Color
	switch {
	case g.state.Players.White.ID == "":
		color = camelot.White
		g.state.Players.White = ClientPlayer{ID: playerID, Color: color}
	case g.state.Players.Black.ID == "":
		color = camelot.Black
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: color}
	default:
		return "", ErrGameFull
	}
	log.Debugf("game %s: player %s seated as %s", g.ID, playerID, color)

	if g.state.Status == StatusWaiting && g.state.Players.full() {
		g.state.Status = StatusActive
		g.clockFor(camelot.White).Start()
	}
	g.broadcastLocked()
	return color, nil
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.state.Players.ColorOf(playerID)
	return ok
}

// History returns the notation of every submitted turn, oldest first.
func (g *Game) History() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]string, len(g.state.MoveHistory))
	for i, rec := range g.state.MoveHistory {
		out[i] = rec.Notation
	}
	return out
}

// PreviewMoves lists the first steps the piece on sq could take, without starting a turn.
func (g *Game) PreviewMoves(sq camelot.Square) ([]camelot.LegalMove, error) {
	if _, err := camelot.ParseSquare(sq); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	board := g.currentTurnStart()
	pc := board.At(sq)
	if pc == nil {
		return []camelot.LegalMove{}, nil
	}
	return camelot.GetInitialMoves(sq, board, pc.Color), nil
}

// SelectSquare starts a turn with the piece on sq. Until the first step is
// taken a different piece may be selected instead.
func (g *Game) SelectSquare(playerID string, sq camelot.Square) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, err := g.mover(playerID)
	if err != nil {
		return err
	}
	if g.state.Turn != nil && len(g.state.Turn.Moves) > 1 {
		return ErrTurnInProgress
	}
	if _, err := camelot.ParseSquare(sq); err != nil {
		return err
	}

	board := g.currentTurnStart()
	if pc := board.At(sq); pc == nil || pc.Color != color {
		return errors.Wrapf(ErrNotYourPiece, "%s", sq)
	}
	legal := camelot.GetInitialMoves(sq, board, color)
	if len(legal) == 0 {
		return errors.Wrapf(ErrNoLegalMoves, "%s", sq)
	}

	turn := camelot.NewTurnState(sq)
	g.turnStart = board
	g.state.Board = board
	g.state.Turn = &turn
	g.state.SelectedSquare = &sq
	g.state.LegalMoves = legal
	g.state.Message = ""
	g.state.Sound = ""
	g.broadcastLocked()
	return nil
}

// Step moves the selected piece to one of the offered legal moves.
func (g *Game) Step(playerID string, to camelot.Square) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, err := g.mover(playerID)
	if err != nil {
		return err
	}
	if g.state.Turn == nil {
		return ErrNoTurnInProgress
	}
	if !containsMove(g.state.LegalMoves, to) {
		return errors.Wrapf(ErrIllegalStep, "%s", to)
	}

	res, err := camelot.ExecuteStep(to, g.state.Board, *g.state.Turn, color, g.state.LegalMoves)
	if err != nil {
		return errors.WithMessagef(err, "step to %s", to)
	}

	g.state.Sound = soundMove
	if len(res.Turn.CapturedSquares) > len(g.state.Turn.CapturedSquares) {
		g.state.Sound = soundCapture
	}
	g.state.Board = res.Board
	g.state.Turn = &res.Turn
	g.state.SelectedSquare = &to
	g.state.LegalMoves = res.LegalNextMoves
	g.state.Message = res.Message
	g.broadcastLocked()
	return nil
}

// SubmitTurn ends the current turn once the engine allows it, records it
// and either decides the game or hands the move to the opponent.
func (g *Game) SubmitTurn(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, err := g.mover(playerID)
	if err != nil {
		return err
	}
	turn := g.state.Turn
	if turn == nil || len(turn.Moves) < 2 {
		return ErrNoTurnInProgress
	}
	if turn.MustContinue {
		return ErrTurnIncomplete
	}

	clock := g.clockFor(color)
	clock.Stop()
	if g.timed && clock.Expired() {
		g.state.Board = g.turnStart
		g.clearTurn()
		g.finish(color.Opponent(), Timeout)
		g.broadcastLocked()
		return errors.Wrap(ErrGameNotActive, "time ran out")
	}
	// no increment for the opening turn of the game
	if len(g.state.MoveHistory) > 0 {
		clock.AddIncrement()
	}

	record := newTurnRecord(len(g.state.MoveHistory)+1, color, *turn)
	g.state.MoveHistory = append(g.state.MoveHistory, record)
	for _, sq := range camelot.CastleOf(color.Opponent()) {
		if record.To == sq {
			g.state.CastleMoves.add(color)
		}
	}
	g.clearTurn()

	if reason := camelot.CheckWinCondition(g.state.Board, color); reason != camelot.NoWin {
		g.finish(color, reason)
	} else {
		g.state.ToMove = color.Opponent()
		g.clockFor(g.state.ToMove).Start()
	}
	log.Debugf("game %s: %s played %s", g.ID, color, record.Notation)

	g.broadcastLocked()
	return nil
}

// CancelTurn abandons the current turn and restores the board it started from.
func (g *Game) CancelTurn(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.mover(playerID); err != nil {
		return err
	}
	if g.state.Turn == nil {
		return ErrNoTurnInProgress
	}

	g.state.Board = g.turnStart
	g.clearTurn()
	g.state.Sound = ""
	g.broadcastLocked()
	return nil
}

func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.state.Players.ColorOf(playerID)
	if !ok {
		return ErrPlayerNotInGame
	}
	if g.state.Status != StatusActive {
		return ErrGameNotActive
	}

	if g.state.Turn != nil {
		g.state.Board = g.turnStart
		g.clearTurn()
	}
	g.finish(color.Opponent(), Resignation)
	g.broadcastLocked()
	return nil
}

// mover checks that playerID may act now and returns their color.
// A fallen flag is noticed here and ends the game.
func (g *Game) mover(playerID string) (camelot.Color, error) {
	color, ok := g.state.Players.ColorOf(playerID)
	if !ok {
		return "", ErrPlayerNotInGame
	}
	if g.flagFell() {
		g.broadcastLocked()
		return "", errors.Wrap(ErrGameNotActive, "time ran out")
	}
	if g.state.Status != StatusActive {
		return "", ErrGameNotActive
	}
	if color != g.state.ToMove {
		return "", ErrNotYourTurn
	}
	return color, nil
}

func (g *Game) flagFell() bool {
	if !g.timed || g.state.Status != StatusActive || !g.clockFor(g.state.ToMove).Expired() {
		return false
	}
	if g.state.Turn != nil {
		g.state.Board = g.turnStart
		g.clearTurn()
	}
	g.finish(g.state.ToMove.Opponent(), Timeout)
	return true
}

func (g *Game) finish(winner camelot.Color, reason camelot.WinReason) {
	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.state.Status = StatusCompleted
	g.state.Winner = winner
	g.state.WinReason = reason
	g.state.Sound = soundWin
	log.Infof("game %s: %s wins by %s", g.ID, winner, reason)
}

func (g *Game) clearTurn() {
	g.turnStart = nil
	g.state.Turn = nil
	g.state.SelectedSquare = nil
	g.state.LegalMoves = make([]camelot.LegalMove, 0)
	g.state.Message = ""
}

func (g *Game) currentTurnStart() camelot.BoardState {
	if g.turnStart != nil {
		return g.turnStart
	}
	return g.state.Board
}

func (g *Game) clockFor(color camelot.Color) *Clock {
	if color == camelot.Black {
		return g.blackClock
	}
	return g.whiteClock
}

// snapshot copies the state for readers outside the lock. Boards and turn
// states are replaced on every change and never written in place.
func (g *Game) snapshot() GameState {
	s := g.state
	s.MoveHistory = append([]TurnRecord{}, g.state.MoveHistory...)
	s.LegalMoves = append([]camelot.LegalMove{}, g.state.LegalMoves...)
	if g.timed {
		s.Players.White.TimeLeft = g.whiteClock.GetTimeLeft().Milliseconds()
		s.Players.Black.TimeLeft = g.blackClock.GetTimeLeft().Milliseconds()
	}
	return s
}

func containsMove(moves []camelot.LegalMove, sq camelot.Square) bool {
	for _, m := range moves {
		if m.To == sq {
			return true
		}
	}
	return false
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, isPlayer := g.state.Players.ColorOf(playerID)
	isAuthorized := isPlayer || !g.state.Players.full()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugf("game %s: registered connection for %s", g.ID, playerID)

	g.mu.Lock()
	g.broadcastLocked()
	g.mu.Unlock()
	return nil
}

// UnregisterConnection forgets conn unless playerID has since reconnected on another one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Debugf("game %s: unregistered connection for %s", g.ID, playerID)
	}
}

// Send writes msg to playerID's connection, in line with state broadcasts.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return errors.Errorf("game %s: no connection for %s", g.ID, playerID)
	}

	g.sendMu.Lock()
	defer g.sendMu.Unlock()
	return conn.WriteJSON(msg)
}

// Close closes every observer connection of the game.
func (g *Game) Close() error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	var result *multierror.Error
	for playerID, conn := range g.connections.connections {
		if err := conn.Close(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "closing connection for %s", playerID))
		}
		delete(g.connections.connections, playerID)
	}
	return result.ErrorOrNil()
}

// broadcastLocked stamps a new state version and sends it asynchronously.
// Callers hold g.mu.
func (g *Game) broadcastLocked() {
	g.state.Version++
	go g.broadcastState(g.snapshot())
}

func (g *Game) broadcastState(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.sendMu.Lock()
	defer g.sendMu.Unlock()
	// Broadcasts race each other out of the goroutine; drop any overtaken one.
	if state.Version <= g.lastSent {
		return
	}
	g.lastSent = state.Version

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	var failed []string
	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			failed = append(failed, playerID)
		}
	}
	if len(failed) == 0 {
		return
	}

	g.connections.mu.Lock()
	for _, playerID := range failed {
		if g.connections.connections[playerID] == active[playerID] {
			delete(g.connections.connections, playerID)
		}
	}
	g.connections.mu.Unlock()
}
