package tool

import "fmt"

// KeyEventKind distinguishes the three keyboard event flavours.
type KeyEventKind uint8

const (
	KeyDown KeyEventKind = iota
	KeyUp
	KeyPress
)

func (k KeyEventKind) Valid() bool { return k <= KeyPress }

func (k KeyEventKind) String() string {
	switch k {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	case KeyPress:
		return "keypress"
	}
	return fmt.Sprintf("key-event(%d)", uint8(k))
}

// Modifier is the bit set of held modifier keys.
type Modifier int32

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// KeyEvent is a captured keyboard event attached to an action.
type KeyEvent struct {
	Code      int32        `yaml:"code"`
	Modifiers Modifier     `yaml:"modifiers"`
	Kind      KeyEventKind `yaml:"kind"`
}

func (e *KeyEvent) has(m Modifier) bool { return e != nil && e.Modifiers&m != 0 }

func (e *KeyEvent) Shift() bool { return e.has(ModShift) }
func (e *KeyEvent) Ctrl() bool  { return e.has(ModCtrl) }
func (e *KeyEvent) Alt() bool   { return e.has(ModAlt) }
