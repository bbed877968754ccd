package game

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyQueueSize bounds the number of unread keys.
const KeyQueueSize = 64

// Action is an engine command bound to one or more keys.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionSoftDrop
	ActionRotate
	ActionHardDrop
	ActionPause
)

// Key adapts a key name for key.Matches.
type Key string

func (k Key) String() string { return string(k) }

// KeyMap is the fixed set of game controls. It also satisfies help.KeyMap.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	SoftDrop key.Binding
	Rotate   key.Binding
	HardDrop key.Binding
	Pause    key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "A"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "D"),
			key.WithHelp("→/d", "move right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "s", "S"),
			key.WithHelp("↓/s", "soft drop"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "w", "W"),
			key.WithHelp("↑/w", "rotate"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "hard drop"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// Action returns the engine command bound to k. Quit is handled by the UI
// and maps to ActionNone.
func (m KeyMap) Action(k string) Action {
	msg := Key(k)
	switch {
	case key.Matches(msg, m.Left):
		return ActionLeft
	case key.Matches(msg, m.Right):
		return ActionRight
	case key.Matches(msg, m.SoftDrop):
		return ActionSoftDrop
	case key.Matches(msg, m.Rotate):
		return ActionRotate
	case key.Matches(msg, m.HardDrop):
		return ActionHardDrop
	case key.Matches(msg, m.Pause):
		return ActionPause
	}
	return ActionNone
}

func (m KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Left, m.Right, m.Rotate, m.HardDrop, m.Pause, m.Quit}
}

func (m KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Left, m.Right, m.SoftDrop},
		{m.Rotate, m.HardDrop},
		{m.Pause, m.Quit},
	}
}

// KeyQueue is a buffered InputSource fed by the UI. Keys pushed while the
// queue is full are dropped.
type KeyQueue struct {
	keys chan string
}

func NewKeyQueue() *KeyQueue {
	return &KeyQueue{keys: make(chan string, KeyQueueSize)}
}

// Push enqueues k without blocking and reports whether it was accepted.
func (q *KeyQueue) Push(k string) bool {
	select {
	case q.keys <- k:
		return true
	default:
		return false
	}
}

func (q *KeyQueue) Available() bool {
	return len(q.keys) > 0
}

// ReadKey returns the oldest key, or "" when the queue is empty.
func (q *KeyQueue) ReadKey() string {
	select {
	case k := <-q.keys:
		return k
	default:
		return ""
	}
}
