package model

import (
	"io"

	"github.com/pkg/errors"
)

const clearScreenSeq = "\033[H\033[2J"

// TerminalRenderer writes generations to a terminal as plain text
type TerminalRenderer struct {
	w io.Writer
}

// NewTerminalRenderer returns a renderer writing to w
func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{w: w}
}

// Display renders the snapshot, Dead as ' ' and Alive as 'x'
func (r *TerminalRenderer) Display(s Snapshot) error {
	if _, err := io.WriteString(r.w, s.String()+"\n"); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}

// Clear clears the terminal screen and homes the cursor
func (r *TerminalRenderer) Clear() error {
	if _, err := io.WriteString(r.w, clearScreenSeq); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
