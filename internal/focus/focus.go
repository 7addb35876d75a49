// Package focus locates focusable widgets inside a container and moves
// keyboard focus between them.
package focus

import tea "github.com/charmbracelet/bubbletea"

// Focusable is a widget that can hold keyboard focus.
// *textinput.Model satisfies it.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
	Focused() bool
}

// Container exposes its focusable descendants in tab order.
type Container interface {
	Focusables() []Focusable
}

// Manager finds the focusable descendants of a container.
type Manager interface {
	FindFocusableDescendants(c Container) []Focusable
}

// disabler is implemented by widgets that can be temporarily unfocusable.
type disabler interface {
	Disabled() bool
}

// Tabbable is the default Manager: descendants in tab order, minus disabled ones.
type Tabbable struct{}

// FindFocusableDescendants implements Manager.
func (Tabbable) FindFocusableDescendants(c Container) []Focusable {
	all := c.Focusables()
	out := make([]Focusable, 0, len(all))
	for _, f := range all {
		if f == nil {
			continue
		}
		if d, ok := f.(disabler); ok && d.Disabled() {
			continue
		}
		out = append(out, f)
	}
	return out
}

// MoveTo blurs every descendant except target and focuses target.
func MoveTo(descendants []Focusable, target Focusable) tea.Cmd {
	for _, f := range descendants {
		if f != target && f.Focused() {
			f.Blur()
		}
	}
	if target == nil {
		return nil
	}
	return target.Focus()
}

// IndexOf returns the index of the focused descendant, or -1.
func IndexOf(descendants []Focusable) int {
	for i, f := range descendants {
		if f.Focused() {
			return i
		}
	}
	return -1
}

// Cycle moves focus forward (delta 1) or backward (delta -1) with wrap-around.
// With nothing focused, forward starts at the first descendant and backward
// at the last.
func Cycle(m Manager, c Container, delta int) tea.Cmd {
	descendants := m.FindFocusableDescendants(c)
	if len(descendants) == 0 {
		return nil
	}

	idx := IndexOf(descendants)
	switch {
	case idx < 0 && delta >= 0:
		idx = 0
	case idx < 0:
		idx = len(descendants) - 1
	default:
		idx = (idx + delta + len(descendants)) % len(descendants)
	}
	return MoveTo(descendants, descendants[idx])
}

// Button is a focusable action with a label.
type Button struct {
	Label    string
	focused  bool
	disabled bool
}

// NewButton creates an unfocused button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// Focus implements Focusable.
func (b *Button) Focus() tea.Cmd {
	b.focused = true
	return nil
}

// Blur implements Focusable.
func (b *Button) Blur() {
	b.focused = false
}

// Focused implements Focusable.
func (b *Button) Focused() bool {
	return b.focused
}

// Disabled reports whether the button is skipped by Tabbable.
func (b *Button) Disabled() bool {
	return b.disabled
}

// SetDisabled toggles the disabled state. Disabling blurs the button.
func (b *Button) SetDisabled(disabled bool) {
	b.disabled = disabled
	if disabled {
		b.focused = false
	}
}

// Region is a focusable area without behaviour of its own, used as the
// fallback focus target of a container.
type Region struct {
	focused bool
}

// Focus implements Focusable.
func (r *Region) Focus() tea.Cmd {
	r.focused = true
	return nil
}

// Blur implements Focusable.
func (r *Region) Blur() {
	r.focused = false
}

// Focused implements Focusable.
func (r *Region) Focused() bool {
	return r.focused
}
