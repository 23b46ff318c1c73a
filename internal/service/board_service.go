package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"whiteboard/internal/controller"
	"whiteboard/internal/domain"
	"whiteboard/internal/geom"
	"whiteboard/internal/render"
	"whiteboard/internal/scene"
)

// ─────────────────────────────────────────────────────────────
// Board Service — whiteboards and their interaction controllers
// ─────────────────────────────────────────────────────────────

// EventBoardChanged is emitted after any event that changed a board's scene
// or interaction state. Data is map[string]string{"boardId": id}.
const EventBoardChanged = "board:changed"

// BoardInfo summarizes one board.
type BoardInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Elements  int       `json:"elements"`
}

// BoardState is the interaction state of a board.
type BoardState struct {
	ID           string        `json:"id"`
	Tool         domain.Tool   `json:"tool"`
	Action       domain.Action `json:"action"`
	EditingID    *int          `json:"editingId,omitempty"`
	Elements     int           `json:"elements"`
	HistoryIndex int           `json:"historyIndex"`
	HistoryLen   int           `json:"historyLen"`
}

// CanUndo reports whether an undo step is available.
func (s BoardState) CanUndo() bool { return s.HistoryIndex > 0 }

// CanRedo reports whether a redo step is available.
func (s BoardState) CanRedo() bool { return s.HistoryIndex < s.HistoryLen-1 }

// BoardOptions configure every board created by a BoardService.
type BoardOptions struct {
	Measurer     scene.Measurer
	Renderer     *render.Renderer
	DefaultTool  domain.Tool
	HistoryLimit int
}

type board struct {
	mu        sync.Mutex
	id        string
	name      string
	createdAt time.Time
	ctl       *controller.Controller
}

// BoardService owns the open boards. Each board's controller is guarded by its
// own mutex, so events for one board are applied one at a time.
type BoardService struct {
	opts    BoardOptions
	emitter EventEmitter

	mu     sync.RWMutex
	boards map[string]*board
	order  []string
}

// NewBoardService creates a BoardService.
func NewBoardService(opts BoardOptions, emitter EventEmitter) *BoardService {
	if opts.DefaultTool == "" {
		opts.DefaultTool = domain.ToolSelection
	}
	return &BoardService{
		opts:    opts,
		emitter: emitter,
		boards:  make(map[string]*board),
	}
}

// CreateBoard opens a new empty board.
func (s *BoardService) CreateBoard(name string) BoardInfo {
	if name == "" {
		name = "Untitled"
	}
	s.mu.RLock()
	opts := s.opts
	s.mu.RUnlock()

	b := &board{
		id:        uuid.New().String(),
		name:      name,
		createdAt: time.Now(),
		ctl: controller.New(opts.Measurer,
			controller.WithTool(opts.DefaultTool),
			controller.WithHistoryLimit(opts.HistoryLimit),
		),
	}

	s.mu.Lock()
	s.boards[b.id] = b
	s.order = append(s.order, b.id)
	s.mu.Unlock()

	log.Printf("board service: created board %s (%s)", b.id, name)
	return BoardInfo{ID: b.id, Name: b.name, CreatedAt: b.createdAt}
}

// SetBoardDefaults changes the tool and history limit of boards created from
// now on. Open boards keep theirs.
func (s *BoardService) SetBoardDefaults(tool domain.Tool, historyLimit int) error {
	if _, err := domain.ParseTool(string(tool)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.DefaultTool = tool
	s.opts.HistoryLimit = historyLimit
	return nil
}

// DeleteBoard closes a board and drops its history.
func (s *BoardService) DeleteBoard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[id]; !ok {
		return fmt.Errorf("delete board %s: %w", id, ErrBoardNotFound)
	}
	delete(s.boards, id)
	for i, bid := range s.order {
		if bid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListBoards returns every open board in creation order.
func (s *BoardService) ListBoards() []BoardInfo {
	s.mu.RLock()
	boards := make([]*board, 0, len(s.order))
	for _, id := range s.order {
		boards = append(boards, s.boards[id])
	}
	s.mu.RUnlock()

	infos := make([]BoardInfo, 0, len(boards))
	for _, b := range boards {
		b.mu.Lock()
		infos = append(infos, BoardInfo{
			ID:        b.id,
			Name:      b.name,
			CreatedAt: b.createdAt,
			Elements:  len(b.ctl.Scene()),
		})
		b.mu.Unlock()
	}
	return infos
}

// ── Events ─────────────────────────────────────────────────

// SetTool selects the tool used by the board's next pointer-down.
func (s *BoardService) SetTool(ctx context.Context, id string, tool domain.Tool) error {
	if _, err := domain.ParseTool(string(tool)); err != nil {
		return err
	}
	return s.update(ctx, id, func(c *controller.Controller) error {
		c.SetTool(tool)
		return nil
	})
}

// PointerDown forwards a pointer-down event.
func (s *BoardService) PointerDown(ctx context.Context, id string, x, y float64) error {
	return s.update(ctx, id, func(c *controller.Controller) error {
		return c.PointerDown(x, y)
	})
}

// PointerMove forwards a pointer-move event and returns the cursor to show.
func (s *BoardService) PointerMove(ctx context.Context, id string, x, y float64) (domain.Cursor, error) {
	cursor := domain.CursorDefault
	err := s.update(ctx, id, func(c *controller.Controller) error {
		var err error
		cursor, err = c.PointerMove(x, y)
		return err
	})
	return cursor, err
}

// PointerUp forwards a pointer-up event.
func (s *BoardService) PointerUp(ctx context.Context, id string, x, y float64) error {
	return s.update(ctx, id, func(c *controller.Controller) error {
		return c.PointerUp(x, y)
	})
}

// Blur commits the text being edited on the board and returns the committed
// element. It returns ErrNotEditing when no text edit is in progress.
func (s *BoardService) Blur(ctx context.Context, id, text string) (domain.Element, error) {
	var el domain.Element
	err := s.update(ctx, id, func(c *controller.Controller) error {
		eid, ok := c.EditingID()
		if !ok {
			return fmt.Errorf("board %s: %w", id, ErrNotEditing)
		}
		if err := c.Blur(text); err != nil {
			return err
		}
		cur := c.Scene()
		if !cur.Has(eid) {
			return fmt.Errorf("board %s: element %d: %w", id, eid, ErrNotEditing)
		}
		el = cur[eid]
		return nil
	})
	return el, err
}

// Undo steps the board's history back. It reports whether anything changed.
func (s *BoardService) Undo(ctx context.Context, id string) (bool, error) {
	var moved bool
	err := s.update(ctx, id, func(c *controller.Controller) error {
		moved = c.Undo()
		return nil
	})
	return moved, err
}

// Redo steps the board's history forward. It reports whether anything changed.
func (s *BoardService) Redo(ctx context.Context, id string) (bool, error) {
	var moved bool
	err := s.update(ctx, id, func(c *controller.Controller) error {
		moved = c.Redo()
		return nil
	})
	return moved, err
}

// Shortcut runs a keyboard shortcut against the board.
func (s *BoardService) Shortcut(ctx context.Context, id string, sc controller.Shortcut) (bool, error) {
	var handled bool
	err := s.update(ctx, id, func(c *controller.Controller) error {
		handled = c.HandleShortcut(sc)
		return nil
	})
	return handled, err
}

// Clear empties the board. The cleared state is itself undoable.
func (s *BoardService) Clear(ctx context.Context, id string) error {
	return s.update(ctx, id, func(c *controller.Controller) error {
		c.Clear()
		return nil
	})
}

// DrawShape creates one element with a complete gesture: pointer-down at
// (x1, y1), a move to (x2, y2) and pointer-up. Text elements are committed
// with text. The board's tool is restored afterwards.
func (s *BoardService) DrawShape(ctx context.Context, id string, tool domain.Tool, x1, y1, x2, y2 float64, text string) (domain.Element, error) {
	if _, ok := tool.Variant(); !ok {
		return domain.Element{}, fmt.Errorf("draw shape: %w: tool %q", domain.ErrUnrecognizedVariant, tool)
	}
	var el domain.Element
	err := s.update(ctx, id, func(c *controller.Controller) error {
		if c.Action() != domain.ActionNone {
			return fmt.Errorf("draw shape: board is busy (%s)", c.Action())
		}
		var err error
		el, err = drawGesture(c, tool, x1, y1, x2, y2, text)
		return err
	})
	return el, err
}

// DrawWire draws a segment between each pair of consecutive points. Every
// segment is its own undo step.
func (s *BoardService) DrawWire(ctx context.Context, id string, points []geom.Point) ([]domain.Element, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("draw wire: need at least 2 points, got %d", len(points))
	}
	var els []domain.Element
	err := s.update(ctx, id, func(c *controller.Controller) error {
		if c.Action() != domain.ActionNone {
			return fmt.Errorf("draw wire: board is busy (%s)", c.Action())
		}
		for i := 1; i < len(points); i++ {
			a, b := points[i-1], points[i]
			el, err := drawGesture(c, domain.ToolSegment, a.X, a.Y, b.X, b.Y, "")
			if err != nil {
				return err
			}
			els = append(els, el)
		}
		return nil
	})
	return els, err
}

// drawGesture performs one full drawing gesture with tool and returns the
// element it created.
func drawGesture(c *controller.Controller, tool domain.Tool, x1, y1, x2, y2 float64, text string) (domain.Element, error) {
	prev := c.Tool()
	c.SetTool(tool)
	defer c.SetTool(prev)

	if err := c.PointerDown(x1, y1); err != nil {
		return domain.Element{}, err
	}
	if tool == domain.ToolText {
		if err := c.Blur(text); err != nil {
			return domain.Element{}, err
		}
	} else {
		if _, err := c.PointerMove(x2, y2); err != nil {
			return domain.Element{}, err
		}
		if err := c.PointerUp(x2, y2); err != nil {
			return domain.Element{}, err
		}
	}
	cur := c.Scene()
	return cur[len(cur)-1], nil
}

// DrawStroke draws a freehand stroke through points as one gesture.
func (s *BoardService) DrawStroke(ctx context.Context, id string, points []geom.Point) (domain.Element, error) {
	if len(points) == 0 {
		return domain.Element{}, fmt.Errorf("draw stroke: no points")
	}
	var el domain.Element
	err := s.update(ctx, id, func(c *controller.Controller) error {
		if c.Action() != domain.ActionNone {
			return fmt.Errorf("draw stroke: board is busy (%s)", c.Action())
		}
		prev := c.Tool()
		c.SetTool(domain.ToolFreehand)
		defer c.SetTool(prev)

		if err := c.PointerDown(points[0].X, points[0].Y); err != nil {
			return err
		}
		for _, p := range points[1:] {
			if _, err := c.PointerMove(p.X, p.Y); err != nil {
				return err
			}
		}
		last := points[len(points)-1]
		if err := c.PointerUp(last.X, last.Y); err != nil {
			return err
		}
		cur := c.Scene()
		el = cur[len(cur)-1]
		return nil
	})
	return el, err
}

// ── Queries ────────────────────────────────────────────────

// Elements returns the board's current scene. The slice must not be modified.
func (s *BoardService) Elements(id string) (domain.Scene, error) {
	var sc domain.Scene
	err := s.view(id, func(c *controller.Controller) error {
		sc = c.Scene()
		return nil
	})
	return sc, err
}

// HitTest returns the element under (x, y), or nil.
func (s *BoardService) HitTest(id string, x, y float64) (*scene.Hit, error) {
	var hit *scene.Hit
	err := s.view(id, func(c *controller.Controller) error {
		h, ok, err := scene.ElementAt(x, y, c.Scene())
		if err != nil || !ok {
			return err
		}
		hit = &h
		return nil
	})
	return hit, err
}

// State returns the board's interaction state.
func (s *BoardService) State(id string) (BoardState, error) {
	var st BoardState
	err := s.view(id, func(c *controller.Controller) error {
		st = stateOf(id, c)
		return nil
	})
	return st, err
}

// Render rasterizes the board to PNG, leaving out the element under text edit.
func (s *BoardService) Render(id string) ([]byte, error) {
	if s.opts.Renderer == nil {
		return nil, fmt.Errorf("render board %s: no renderer configured", id)
	}
	var (
		sc   domain.Scene
		skip = render.NoSkip
	)
	err := s.view(id, func(c *controller.Controller) error {
		sc = c.Scene()
		if eid, ok := c.EditingID(); ok {
			skip = eid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Snapshots are immutable, so rendering can run outside the board lock.
	data, err := s.opts.Renderer.Render(sc, skip)
	if err != nil {
		return nil, fmt.Errorf("render board %s: %w", id, err)
	}
	return data, nil
}

// ── Helpers ────────────────────────────────────────────────

func (s *BoardService) get(id string) (*board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s: %w", id, ErrBoardNotFound)
	}
	return b, nil
}

func (s *BoardService) view(id string, fn func(*controller.Controller) error) error {
	b, err := s.get(id)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.ctl)
}

// update runs fn under the board lock and emits EventBoardChanged when the
// board's state moved.
func (s *BoardService) update(ctx context.Context, id string, fn func(*controller.Controller) error) error {
	b, err := s.get(id)
	if err != nil {
		return err
	}

	b.mu.Lock()
	before := stateOf(id, b.ctl)
	err = fn(b.ctl)
	after := stateOf(id, b.ctl)
	b.mu.Unlock()

	if changed(before, after) && s.emitter != nil {
		s.emitter.Emit(ctx, EventBoardChanged, map[string]string{"boardId": id})
	}
	return err
}

func stateOf(id string, c *controller.Controller) BoardState {
	index, length := c.HistoryIndex()
	st := BoardState{
		ID:           id,
		Tool:         c.Tool(),
		Action:       c.Action(),
		Elements:     len(c.Scene()),
		HistoryIndex: index,
		HistoryLen:   length,
	}
	if eid, ok := c.EditingID(); ok {
		st.EditingID = &eid
	}
	return st
}

// changed reports whether an event may have altered what is drawn. Frames of
// an active gesture overwrite the current snapshot without moving the index.
func changed(before, after BoardState) bool {
	return before.Action != domain.ActionNone ||
		after.Action != domain.ActionNone ||
		before.Tool != after.Tool ||
		before.HistoryIndex != after.HistoryIndex ||
		before.HistoryLen != after.HistoryLen
}
