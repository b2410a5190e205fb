package entity

// Outcome - result of a single move request, returned to the presentation layer.
type Outcome struct {
	Accepted bool `json:"accepted"`
	// Reason is set only for rejected moves: apperror.ErrCellOccupied or apperror.ErrGameFinished.
	Reason      error   `json:"-"`
	Cell        int     `json:"cell"`
	Board       Board   `json:"board"`
	Status      Status  `json:"status"`
	Winner      Mark    `json:"winner,omitempty"`
	Turn        Mark    `json:"player_turn"`
	WinningLine *[3]int `json:"winning_line,omitempty"`
}

func NewOutcome(session Session, cell int, reason error) Outcome {
	snapshot := session.Clone()

	return Outcome{
		Accepted:    reason == nil,
		Reason:      reason,
		Cell:        cell,
		Board:       snapshot.Board,
		Status:      snapshot.Status,
		Winner:      snapshot.Winner,
		Turn:        snapshot.Turn,
		WinningLine: snapshot.WinningLine,
	}
}

func (that *Outcome) IsTerminal() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}
