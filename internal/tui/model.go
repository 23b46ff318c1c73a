package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"whiteboard/internal/controller"
	"whiteboard/internal/domain"
	"whiteboard/internal/service"
)

var (
	barFg    = lipgloss.Color("#E6E6E6")
	barBg    = lipgloss.Color("#243141")
	accentFg = lipgloss.Color("#7C3AED")
	dimFg    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	errFg    = lipgloss.Color("#EF4444")

	barStyle  = lipgloss.NewStyle().Foreground(barFg).Background(barBg)
	toolStyle = lipgloss.NewStyle().Foreground(accentFg).Background(barBg).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(dimFg).Background(barBg)
	errStyle  = lipgloss.NewStyle().Foreground(errFg).Background(barBg)
)

const helpText = "s l r p t n a o tools · ^z/^y undo/redo · c clear · q quit"

// toolKeys binds single keys to tools.
var toolKeys = map[string]domain.Tool{
	"s": domain.ToolSelection,
	"l": domain.ToolSegment,
	"r": domain.ToolRectangle,
	"p": domain.ToolFreehand,
	"t": domain.ToolText,
	"n": domain.ToolNotGate,
	"a": domain.ToolAndGate,
	"o": domain.ToolOrGate,
}

// Options configure the terminal UI.
type Options struct {
	Boards  *service.BoardService
	BoardID string
	// Events, when set, redraws the UI when another client changes the board.
	Events   *service.Broadcaster
	Settings *service.SettingsService

	CellWidth  float64
	CellHeight float64

	// Paste reads clipboard text. Defaults to the system clipboard.
	Paste func() (string, error)
}

type boardChangedMsg struct{}

// Model is the bubbletea model of one board.
type Model struct {
	boards   *service.BoardService
	settings *service.SettingsService
	boardID  string
	events   chan struct{}
	paste    func() (string, error)

	cellW, cellH  float64
	width, height int

	cursor  domain.Cursor
	editing bool
	buffer  []rune
	err     error
}

// New creates the model for opts.BoardID.
func New(opts Options) Model {
	m := Model{
		boards:   opts.Boards,
		settings: opts.Settings,
		boardID:  opts.BoardID,
		events:   make(chan struct{}, 1),
		paste:    opts.Paste,
		cellW:    opts.CellWidth,
		cellH:    opts.CellHeight,
		cursor:   domain.CursorDefault,
	}
	if m.paste == nil {
		m.paste = clipboard.ReadAll
	}
	if m.cellW <= 0 {
		m.cellW = 10
	}
	if m.cellH <= 0 {
		m.cellH = 20
	}
	if m.settings != nil {
		size := m.settings.LoadTerminalSize()
		m.width, m.height = size.Cols, size.Rows
	}

	if opts.Events != nil {
		events, id := m.events, opts.BoardID
		opts.Events.Subscribe(func(_ context.Context, event string, data any) {
			if event != service.EventBoardChanged {
				return
			}
			if d, ok := data.(map[string]string); ok && d["boardId"] != id {
				return
			}
			select {
			case events <- struct{}{}:
			default:
			}
		})
	}
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}

func waitForChange(events <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-events
		return boardChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case boardChangedMsg:
		return m, waitForChange(m.events)
	case tea.MouseMsg:
		m.handleMouse(ctx, msg)
	case tea.KeyMsg:
		return m.handleKey(ctx, msg)
	}
	return m, nil
}

// ── Input ──────────────────────────────────────────────────

func (m *Model) handleMouse(ctx context.Context, msg tea.MouseMsg) {
	if msg.Y >= m.grid().Rows {
		return
	}
	x, y := m.grid().World(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		// Clicking away from a text edit commits it.
		if m.editing {
			if m.err = m.blur(ctx); m.err != nil {
				return
			}
		}
		m.err = m.boards.PointerDown(ctx, m.boardID, x, y)
	case tea.MouseActionMotion:
		m.cursor, m.err = m.boards.PointerMove(ctx, m.boardID, x, y)
	case tea.MouseActionRelease:
		m.err = m.boards.PointerUp(ctx, m.boardID, x, y)
	}
	m.syncEditing()
}

func (m Model) handleKey(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, m.quit()
		case tea.KeyEnter, tea.KeyEsc:
			m.err = m.blur(ctx)
		case tea.KeyBackspace:
			if len(m.buffer) > 0 {
				m.buffer = m.buffer[:len(m.buffer)-1]
			}
		case tea.KeySpace:
			m.buffer = append(m.buffer, ' ')
		case tea.KeyCtrlV:
			text, err := m.paste()
			if err != nil {
				m.err = fmt.Errorf("paste: %w", err)
				break
			}
			m.buffer = append(m.buffer, []rune(singleLine(text))...)
		case tea.KeyRunes:
			m.buffer = append(m.buffer, msg.Runes...)
		}
		return m, nil
	}

	m.err = nil
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, m.quit()
	case "ctrl+z":
		_, m.err = m.boards.Shortcut(ctx, m.boardID, controller.Shortcut{Key: "z", Ctrl: true})
	case "ctrl+y":
		_, m.err = m.boards.Shortcut(ctx, m.boardID, controller.Shortcut{Key: "y", Ctrl: true})
	case "c":
		m.err = m.boards.Clear(ctx, m.boardID)
	default:
		tool, ok := toolKeys[key]
		if !ok {
			break
		}
		if m.err = m.boards.SetTool(ctx, m.boardID, tool); m.err == nil && m.settings != nil {
			if err := m.settings.SaveTool(tool); err != nil {
				log.Printf("tui: save tool: %v", err)
			}
		}
	}
	m.syncEditing()
	return m, nil
}

// blur commits the edit buffer to the element being written.
func (m *Model) blur(ctx context.Context) error {
	text := string(m.buffer)
	m.editing, m.buffer = false, nil
	_, err := m.boards.Blur(ctx, m.boardID, text)
	if errors.Is(err, service.ErrNotEditing) {
		// Another client ended the edit first.
		return nil
	}
	return err
}

// syncEditing opens the edit buffer when the board enters text editing. An
// existing text element starts with its current content.
func (m *Model) syncEditing() {
	st, err := m.boards.State(m.boardID)
	if err != nil {
		return
	}
	switch {
	case st.EditingID == nil:
		m.editing, m.buffer = false, nil
	case !m.editing:
		m.editing = true
		m.buffer = nil
		if els, err := m.boards.Elements(m.boardID); err == nil && els.Has(*st.EditingID) {
			m.buffer = []rune(els[*st.EditingID].Text)
		}
	}
}

func (m Model) quit() tea.Cmd {
	if m.settings != nil && m.width > 0 && m.height > 0 {
		if err := m.settings.SaveTerminalSize(m.width, m.height); err != nil {
			log.Printf("tui: save terminal size: %v", err)
		}
	}
	return tea.Quit
}

// singleLine flattens pasted text onto one line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ── View ───────────────────────────────────────────────────

func (m Model) grid() Grid {
	cols, rows := m.width, m.height-1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return Grid{Cols: cols, Rows: rows, CellW: m.cellW, CellH: m.cellH}
}

func (m Model) View() string {
	st, err := m.boards.State(m.boardID)
	if err != nil {
		return errStyle.Render(err.Error())
	}
	els, err := m.boards.Elements(m.boardID)
	if err != nil {
		return errStyle.Render(err.Error())
	}

	skip := -1
	if st.EditingID != nil {
		skip = *st.EditingID
	}
	g := m.grid()
	c, err := rasterize(els, skip, g)
	if err != nil {
		return errStyle.Render(err.Error())
	}
	if m.editing && els.Has(skip) {
		col, row := g.Cell(els[skip].X1, els[skip].Y1)
		c.text(col, row, string(m.buffer)+"▏")
	}
	return c.String() + "\n" + m.statusLine(st)
}

func (m Model) statusLine(st service.BoardState) string {
	parts := []string{
		toolStyle.Render(string(st.Tool)),
		barStyle.Render(string(st.Action)),
		dimStyle.Render(string(m.cursor)),
		barStyle.Render(fmt.Sprintf("history %d/%d", st.HistoryIndex+1, st.HistoryLen)),
	}
	if m.err != nil {
		parts = append(parts, errStyle.Render(m.err.Error()))
	} else {
		parts = append(parts, dimStyle.Render(helpText))
	}
	line := strings.Join(parts, barStyle.Render("  "))
	return barStyle.Width(m.width).Render(line)
}
