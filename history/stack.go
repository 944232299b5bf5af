package history

import (
	"errors"
	"fmt"

	"github.com/gogpu/pixelsort"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty undo side.
	ErrNothingToUndo = errors.New("history: nothing to undo")

	// ErrNothingToRedo is returned by Redo when no undone command remains.
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Stack is a linear undo history.
//
// Commands before the cursor have been applied; commands at or after it
// have been undone. Pushing a command discards everything after the
// cursor.
//
// Thread safety: Stack is not safe for concurrent use.
type Stack struct {
	cmds   []Command
	cursor int
	limit  int
}

// NewStack creates an empty stack.
func NewStack(opts ...Option) *Stack {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Stack{limit: o.limit}
}

// Push applies cmd with Redo and records it. If Redo fails the stack is
// left unchanged and the error returned.
func (s *Stack) Push(cmd Command) error {
	if err := cmd.Redo(); err != nil {
		return fmt.Errorf("history: %s: %w", cmd.Name(), err)
	}

	clear(s.cmds[s.cursor:])
	s.cmds = append(s.cmds[:s.cursor], cmd)
	s.cursor++

	if s.limit > 0 && len(s.cmds) > s.limit {
		drop := len(s.cmds) - s.limit
		clear(s.cmds[:drop])
		s.cmds = s.cmds[drop:]
		s.cursor -= drop
	}

	pixelsort.Logger().Info("history: applied", "command", cmd.Name(), "depth", s.cursor)
	return nil
}

// Undo reverts the most recently applied command.
func (s *Stack) Undo() error {
	if !s.CanUndo() {
		return ErrNothingToUndo
	}
	cmd := s.cmds[s.cursor-1]
	if err := cmd.Undo(); err != nil {
		return fmt.Errorf("history: undo %s: %w", cmd.Name(), err)
	}
	s.cursor--
	pixelsort.Logger().Info("history: undone", "command", cmd.Name(), "depth", s.cursor)
	return nil
}

// Redo re-applies the most recently undone command.
func (s *Stack) Redo() error {
	if !s.CanRedo() {
		return ErrNothingToRedo
	}
	cmd := s.cmds[s.cursor]
	if err := cmd.Redo(); err != nil {
		return fmt.Errorf("history: redo %s: %w", cmd.Name(), err)
	}
	s.cursor++
	pixelsort.Logger().Info("history: redone", "command", cmd.Name(), "depth", s.cursor)
	return nil
}

// CanUndo reports whether Undo has a command to revert.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether Redo has a command to re-apply.
func (s *Stack) CanRedo() bool { return s.cursor < len(s.cmds) }

// UndoName returns the name of the command Undo would revert, or "".
func (s *Stack) UndoName() string {
	if !s.CanUndo() {
		return ""
	}
	return s.cmds[s.cursor-1].Name()
}

// RedoName returns the name of the command Redo would re-apply, or "".
func (s *Stack) RedoName() string {
	if !s.CanRedo() {
		return ""
	}
	return s.cmds[s.cursor].Name()
}

// Len returns the number of recorded commands, applied or undone.
func (s *Stack) Len() int { return len(s.cmds) }

// Index returns the number of applied commands.
func (s *Stack) Index() int { return s.cursor }

// Clear forgets every command without undoing anything.
func (s *Stack) Clear() {
	clear(s.cmds)
	s.cmds = s.cmds[:0]
	s.cursor = 0
}
