package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const BoardSize = 9

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// WinCombos - rows, columns, diagonals. Scanned in this order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [BoardSize]Mark

// Session - the whole state of a single game.
type Session struct {
	Board       Board   `json:"board"`
	Turn        Mark    `json:"player_turn"`
	Status      Status  `json:"status"`
	Winner      Mark    `json:"winner,omitempty"`
	WinningLine *[3]int `json:"winning_line,omitempty"`
}

func NewSession() Session {
	return Session{
		Turn:   PlayerX,
		Status: StatusInProgress,
	}
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// DetermineGameResult - checks the board against every win combo, then for a draw.
func DetermineGameResult(board Board) (Status, Mark, *[3]int) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			line := combo
			return StatusWon, a, &line
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return StatusInProgress, EmptyCell, nil
	}

	return StatusDraw, EmptyCell, nil
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusInProgress
}

func (that *Session) ConfirmOngoingState() error {
	switch that.Status {
	case StatusInProgress:
		return nil
	case StatusWon, StatusDraw:
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}

// Clone returns a deep copy; WinningLine is not shared.
func (that *Session) Clone() Session {
	clone := *that
	if that.WinningLine != nil {
		line := *that.WinningLine
		clone.WinningLine = &line
	}

	return clone
}

// Validate - checks that a session could have been produced by legal play.
func (that *Session) Validate() error {
	for i, cell := range that.Board {
		if cell != EmptyCell && !cell.IsPlayer() {
			return fmt.Errorf("%w: unknown mark %q in cell %d", apperror.ErrCorruptSession, cell, i)
		}
	}

	xCount, oCount := that.Board.Count(PlayerX), that.Board.Count(PlayerO)
	if xCount != oCount && xCount != oCount+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrCorruptSession, xCount, oCount)
	}

	status, winner, line := DetermineGameResult(that.Board)
	if status != that.Status || winner != that.Winner {
		return fmt.Errorf("%w: stored status %s does not match board", apperror.ErrCorruptSession, that.Status)
	}

	switch {
	case line == nil && that.WinningLine != nil,
		line != nil && (that.WinningLine == nil || *line != *that.WinningLine):
		return fmt.Errorf("%w: winning line does not match board", apperror.ErrCorruptSession)
	}

	// X moves first, so after X's move the counts differ by one
	lastMover := PlayerX
	if xCount == oCount {
		lastMover = PlayerO
	}

	if status == StatusWon && winner != lastMover {
		return fmt.Errorf("%w: winner %s did not make the last move", apperror.ErrCorruptSession, winner)
	}

	expectedTurn := lastMover.Opponent()
	if that.IsFinished() {
		expectedTurn = lastMover
	}

	if that.Turn != expectedTurn {
		return fmt.Errorf("%w: turn %q, expected %q", apperror.ErrCorruptSession, that.Turn, expectedTurn)
	}

	return nil
}
