package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Terminal prints reminders as a styled line and rings the bell.
type Terminal struct {
	w     io.Writer
	title lipgloss.Style
	mu    sync.Mutex
	bell  bool
}

// NewTerminal returns a Terminal backend writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{
		w:    w,
		bell: true,
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}),
	}
}

// Notify writes one line.
func (t *Terminal) Notify(_ context.Context, title, body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	bell := ""
	if t.bell {
		bell = "\a"
	}
	_, err := fmt.Fprintf(t.w, "%s%s %s\n", bell, t.title.Render("["+title+"]"), body)
	return err
}
