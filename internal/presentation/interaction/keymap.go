package interaction

// Action is a user intent decoded from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCycleUnit
	ActionCycleKind
	ActionShiftUp
	ActionShiftDown
	ActionWidthUp
	ActionWidthDown
	ActionReload
	ActionExport
	ActionHelp
)

// ActionFor maps a key event to an action.
func ActionFor(ev KeyEvent) Action {
	switch ev.Type {
	case KeyEscape:
		return ActionQuit
	case KeyRight:
		return ActionShiftUp
	case KeyLeft:
		return ActionShiftDown
	case KeyUp:
		return ActionWidthUp
	case KeyDown:
		return ActionWidthDown
	}

	switch ev.Key {
	case 'q', 'Q', 3:
		return ActionQuit
	case 'u', 'U':
		return ActionCycleUnit
	case 'k', 'K':
		return ActionCycleKind
	case '+', '=':
		return ActionShiftUp
	case '-', '_':
		return ActionShiftDown
	case ']':
		return ActionWidthUp
	case '[':
		return ActionWidthDown
	case 'r', 'R':
		return ActionReload
	case 'e', 'E':
		return ActionExport
	case 'h', 'H', '?':
		return ActionHelp
	}
	return ActionNone
}

// HelpText lists the key bindings.
const HelpText = "u unit  k kind  +/- shift  [/] width  r reload  e export png  q quit"
