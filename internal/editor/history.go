package editor

import (
	"image"

	"github.com/zyedidia/generic/stack"

	"github.com/udisondev/vitreous/internal/spatial"
)

// Action is a reversible edit.
type Action struct {
	Name string
	Do   func()
	Undo func()
}

// History keeps undo and redo stacks. Pushing a new action drops the redo
// stack.
type History struct {
	undo *stack.Stack[Action]
	redo *stack.Stack[Action]
}

func NewHistory() *History {
	return &History{undo: stack.New[Action](), redo: stack.New[Action]()}
}

func (h *History) Push(a Action) {
	h.undo.Push(a)
	h.redo = stack.New[Action]()
}

// Undo reverts the latest action. It returns false when there is nothing to undo.
func (h *History) Undo() (Action, bool) {
	if h.undo.Size() == 0 {
		return Action{}, false
	}
	a := h.undo.Pop()
	a.Undo()
	h.redo.Push(a)
	return a, true
}

// Redo reapplies the latest undone action.
func (h *History) Redo() (Action, bool) {
	if h.redo.Size() == 0 {
		return Action{}, false
	}
	a := h.redo.Pop()
	a.Do()
	h.undo.Push(a)
	return a, true
}

func (h *History) CanUndo() bool { return h.undo.Size() > 0 }
func (h *History) CanRedo() bool { return h.redo.Size() > 0 }

// AreaFrame applies the active tool to one area and records the edits.
type AreaFrame struct {
	Area    *spatial.Area
	History *History
	tool    Tool
}

func NewAreaFrame(a *spatial.Area) *AreaFrame {
	return &AreaFrame{Area: a, History: NewHistory()}
}

func (f *AreaFrame) Tool() Tool     { return f.tool }
func (f *AreaFrame) SetTool(t Tool) { f.tool = t }

// Apply runs the active tool at p. A changing edit is pushed onto the
// history and the tool is replaced by its successor.
func (f *AreaFrame) Apply(p image.Point) bool {
	if f.Area == nil || f.tool == nil {
		return false
	}
	if !f.tool.Edit(f.Area, p) {
		return false
	}
	tool, area := f.tool, f.Area
	f.History.Push(Action{
		Name: tool.Name(),
		Do:   func() { tool.Edit(area, p) },
		Undo: func() { tool.Restore(area, p) },
	})
	f.tool = tool.End()
	return true
}
