package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const boardWidth = 3

type gameManager interface {
	Move(ctx context.Context, cell int) (entity.Outcome, error)
	Restart(ctx context.Context) (entity.Session, error)
	Session() entity.Session
}

// Model is the Bubble Tea front-end for a single hot-seat game.
type Model struct {
	ctx     context.Context
	timeout time.Duration
	manager gameManager

	keys   keyMap
	help   help.Model
	styles styles

	session entity.Session
	cursor  int
	notice  string
	err     error

	width  int
	height int
}

// New creates the model from the manager's current session.
func New(ctx context.Context, manager gameManager, theme config.Theme, timeout time.Duration) Model {
	return Model{
		ctx:     ctx,
		timeout: timeout,
		manager: manager,
		keys:    newKeyMap(),
		help:    help.New(),
		styles:  newStyles(theme),
		session: manager.Session(),
		cursor:  4,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		return m.restart(), nil
	case key.Matches(msg, m.keys.Play):
		cell := int(msg.String()[0] - '1')
		m.cursor = cell
		return m.play(cell), nil
	case key.Matches(msg, m.keys.Select):
		return m.play(m.cursor), nil
	case key.Matches(msg, m.keys.Up):
		m.cursor = moveCursor(m.cursor, -1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = moveCursor(m.cursor, 1, 0)
	case key.Matches(msg, m.keys.Left):
		m.cursor = moveCursor(m.cursor, 0, -1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = moveCursor(m.cursor, 0, 1)
	}

	return m, nil
}

// moveCursor wraps around the board edges.
func moveCursor(cursor, dRow, dCol int) int {
	p := entity.CellPosition(cursor)
	row := (p.Row + dRow + boardWidth) % boardWidth
	col := (p.Col + dCol + boardWidth) % boardWidth

	return row*boardWidth + col
}

func (m Model) play(cell int) Model {
	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	m.notice = ""
	m.err = nil

	outcome, err := m.manager.Move(ctx, cell)
	if err != nil {
		m.err = err
	}

	// storage errors still come with the applied outcome
	if err == nil || outcome.Accepted {
		m.session = m.manager.Session()
	}

	if !outcome.Accepted && outcome.Reason != nil {
		m.notice = rejectNotice(cell, outcome.Reason)
	}

	return m
}

func (m Model) restart() Model {
	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	m.notice = ""
	m.err = nil

	session, err := m.manager.Restart(ctx)
	if err != nil {
		m.err = err
	}

	m.session = session
	m.cursor = 4

	return m
}

func rejectNotice(cell int, reason error) string {
	switch {
	case errors.Is(reason, apperror.ErrCellOccupied):
		return fmt.Sprintf("Cell %d is already taken", cell+1)
	case errors.Is(reason, apperror.ErrGameFinished):
		return "The game is over, press r to play again"
	default:
		return reason.Error()
	}
}

// StatusText is the one-line description of the game state.
func StatusText(session entity.Session) string {
	switch session.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Player %s Wins!", session.Winner)
	case entity.StatusDraw:
		return "It's a Draw!"
	default:
		return fmt.Sprintf("Player %s's turn", session.Turn)
	}
}

// View implements tea.Model
func (m Model) View() string {
	parts := []string{
		m.styles.title.Render("TIC TAC TOE"),
		"",
		m.renderBoard(),
		"",
		m.styles.status.Render(StatusText(m.session)),
	}

	if line := m.renderWinningLine(); line != "" {
		parts = append(parts, line)
	}

	if m.session.Status != entity.StatusInProgress {
		parts = append(parts, "", m.styles.banner.Render(StatusText(m.session)+"\n"+"press r to play again"))
	}

	if m.notice != "" {
		parts = append(parts, m.styles.notice.Render(m.notice))
	}

	if m.err != nil {
		parts = append(parts, m.styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	parts = append(parts, "", m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	return content
}

func (m Model) renderBoard() string {
	var geometry *entity.LineGeometry
	if m.session.WinningLine != nil {
		g := entity.NewLineGeometry(*m.session.WinningLine)
		geometry = &g
	}

	rows := make([]string, 0, boardWidth)
	for row := 0; row < boardWidth; row++ {
		cells := make([]string, 0, boardWidth)
		for col := 0; col < boardWidth; col++ {
			index := row*boardWidth + col
			cells = append(cells, m.renderCell(index, geometry))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(index int, geometry *entity.LineGeometry) string {
	var content string

	switch mark := m.session.Board[index]; {
	case geometry != nil && geometry.Contains(index):
		content = m.styles.line.Render(string(mark))
	case mark == entity.PlayerX:
		content = m.styles.markX.Render(string(mark))
	case mark == entity.PlayerO:
		content = m.styles.markO.Render(string(mark))
	default:
		content = m.styles.numbers.Render(fmt.Sprint(index + 1))
	}

	if index == m.cursor && m.session.Status == entity.StatusInProgress {
		return m.styles.cursor.Render(content)
	}

	return m.styles.cell.Render(content)
}

var lineGlyphs = map[entity.Direction]string{
	entity.DirectionHorizontal:   "───",
	entity.DirectionVertical:     "│",
	entity.DirectionDiagonal:     "╲",
	entity.DirectionAntiDiagonal: "╱",
}

func (m Model) renderWinningLine() string {
	if m.session.WinningLine == nil {
		return ""
	}

	geometry := entity.NewLineGeometry(*m.session.WinningLine)

	var sb strings.Builder
	sb.WriteString(lineGlyphs[geometry.Direction])
	fmt.Fprintf(&sb, " %s line from row %d col %d to row %d col %d",
		geometry.Direction,
		geometry.Start.Row+1, geometry.Start.Col+1,
		geometry.End.Row+1, geometry.End.Col+1,
	)

	return m.styles.line.Render(sb.String())
}

// Session returns what the model is currently showing.
func (m Model) Session() entity.Session {
	return m.session
}

// Cursor returns the highlighted cell index.
func (m Model) Cursor() int {
	return m.cursor
}
