package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Engine owns a single game session and applies the rules to it.
// It is not safe for concurrent use; callers serialise moves.
type Engine struct {
	logger  *slog.Logger
	session entity.Session
}

func New(logger *slog.Logger) *Engine {
	return &Engine{
		logger:  logger.With("component", "engine"),
		session: entity.NewSession(),
	}
}

// Reset - discards the current session and starts a fresh one.
func (that *Engine) Reset() {
	that.session = entity.NewSession()
	that.logger.Debug("session reset")
}

// ApplyMove - places the current player's mark on the cell.
// Moves on occupied cells or finished games are rejected without changing state;
// only an out of range index is reported as an error.
func (that *Engine) ApplyMove(cell int) (entity.Outcome, error) {
	log := that.logger.With("method", "ApplyMove", "cell", cell)

	if err := validateCell(cell); err != nil {
		return entity.Outcome{}, err
	}

	if reason := that.rejectReason(cell); reason != nil {
		log.Debug("move rejected", "reason", reason)
		return entity.NewOutcome(that.session, cell, reason), nil
	}

	player := that.session.Turn
	that.session.Board[cell] = player
	that.updateGameStatus(player)

	log.Debug("move accepted", "player", player, "status", that.session.Status)

	return entity.NewOutcome(that.session, cell, nil), nil
}

// Restore - replaces the current session with a previously stored one.
func (that *Engine) Restore(session entity.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("could not restore session: %w", err)
	}

	that.session = session.Clone()

	return nil
}

func (that *Engine) Session() entity.Session {
	return that.session.Clone()
}

func (that *Engine) Board() entity.Board {
	return that.session.Board
}

func (that *Engine) Turn() entity.Mark {
	return that.session.Turn
}

func (that *Engine) Status() entity.Status {
	return that.session.Status
}

func (that *Engine) Winner() entity.Mark {
	return that.session.Winner
}

// WinningLine - the satisfied combo, or false while nobody has won.
func (that *Engine) WinningLine() ([3]int, bool) {
	if that.session.WinningLine == nil {
		return [3]int{}, false
	}

	return *that.session.WinningLine, true
}

func validateCell(cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	return nil
}

func (that *Engine) rejectReason(cell int) error {
	if err := that.session.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.session.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func (that *Engine) updateGameStatus(player entity.Mark) {
	status, winner, line := entity.DetermineGameResult(that.session.Board)

	switch status {
	case entity.StatusWon:
		that.session.Status = entity.StatusWon
		that.session.Winner = winner
		that.session.WinningLine = line
	case entity.StatusDraw:
		that.session.Status = entity.StatusDraw
	default:
		that.session.Turn = player.Opponent()
	}
}
