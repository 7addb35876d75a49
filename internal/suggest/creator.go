package suggest

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lnk/internal/model"
)

// DefaultCreateTimeout bounds a single page creation.
const DefaultCreateTimeout = 10 * time.Second

// CreateResultMsg is delivered when a page creation started by Begin ends.
type CreateResultMsg struct {
	Seq  int
	Page model.Page
	Err  error
}

// Creator tracks one in-flight page creation. The zero value is idle.
type Creator struct {
	isCreating   bool
	errorMessage string
	seq          int
}

// IsCreating reports whether a creation is in flight.
func (c Creator) IsCreating() bool {
	return c.isCreating
}

// ErrorMessage returns the message of the last failed creation, if any.
func (c Creator) ErrorMessage() string {
	return c.errorMessage
}

// Begin marks a creation as started and returns the command that performs
// it. Retrying is left to the caller.
func (c Creator) Begin(p Provider, title string) (Creator, tea.Cmd) {
	c.seq++
	c.isCreating = true
	c.errorMessage = ""

	seq := c.seq
	cmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultCreateTimeout)
		defer cancel()

		page, err := p.CreatePage(ctx, title)
		return CreateResultMsg{Seq: seq, Page: page, Err: err}
	}
	return c, cmd
}

// Finish folds a result back in. Results of superseded creations are
// ignored and reported with ok=false.
func (c Creator) Finish(msg CreateResultMsg) (next Creator, ok bool) {
	if msg.Seq != c.seq || !c.isCreating {
		return c, false
	}

	c.isCreating = false
	if msg.Err != nil {
		c.errorMessage = errorText(msg.Err)
	}
	return c, true
}

func errorText(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Timed out while creating the page."
	case errors.Is(err, ErrEmptyTitle):
		return "A page needs a title."
	default:
		return err.Error()
	}
}
