package binding

// Key identifies the keys a binding reacts to. Everything else is KeyOther
// and only reaches the host handler.
type Key int

const (
	KeyOther Key = iota
	KeyTab
	KeyArrowRight
	KeyEscape
)

// ParseKey maps DOM-style key names.
func ParseKey(name string) Key {
	switch name {
	case "Tab":
		return KeyTab
	case "ArrowRight", "Right":
		return KeyArrowRight
	case "Escape", "Esc":
		return KeyEscape
	default:
		return KeyOther
	}
}

// KeyEvent is a key press delivered to a field.
type KeyEvent struct {
	Key  Key
	Name string

	defaultPrevented bool
}

// NewKeyEvent builds an event from a DOM key name.
func NewKeyEvent(name string) *KeyEvent {
	return &KeyEvent{Key: ParseKey(name), Name: name}
}

// PreventDefault stops the host field from applying its own behavior.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// KeyHandler is the host's own key handler. Bindings always call it.
type KeyHandler func(ev *KeyEvent)
