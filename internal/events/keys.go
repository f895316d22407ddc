package events

import "github.com/gdamore/tcell/v2"

// EncodeKey translates a key press into the byte sequence forwarded
// to the focused PTY, matching the spec's exhaustive encoding table
// byte-for-byte. The second return value is false for keys that are
// dropped (no PTY byte sequence defined).
func EncodeKey(ev *tcell.EventKey) ([]byte, bool) {
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		if key := ev.Key(); key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
			return []byte{byte(key)}, true
		}
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		return []byte{0x0D}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7F}, true
	case tcell.KeyTab:
		return []byte{0x09}, true
	case tcell.KeyEscape:
		return []byte{0x1B}, true
	case tcell.KeyUp:
		return []byte{0x1B, '[', 'A'}, true
	case tcell.KeyDown:
		return []byte{0x1B, '[', 'B'}, true
	case tcell.KeyRight:
		return []byte{0x1B, '[', 'C'}, true
	case tcell.KeyLeft:
		return []byte{0x1B, '[', 'D'}, true
	case tcell.KeyHome:
		return []byte{0x1B, '[', 'H'}, true
	case tcell.KeyEnd:
		return []byte{0x1B, '[', 'F'}, true
	case tcell.KeyPgUp:
		return []byte("\x1b[5~"), true
	case tcell.KeyPgDn:
		return []byte("\x1b[6~"), true
	case tcell.KeyInsert:
		return []byte("\x1b[2~"), true
	case tcell.KeyDelete:
		return []byte("\x1b[3~"), true
	case tcell.KeyF1:
		return []byte("\x1bOP"), true
	case tcell.KeyF2:
		return []byte("\x1bOQ"), true
	case tcell.KeyF3:
		return []byte("\x1bOR"), true
	case tcell.KeyF4:
		return []byte("\x1bOS"), true
	case tcell.KeyF5:
		return []byte("\x1b[15~"), true
	case tcell.KeyF6:
		return []byte("\x1b[17~"), true
	case tcell.KeyF7:
		return []byte("\x1b[18~"), true
	case tcell.KeyF8:
		return []byte("\x1b[19~"), true
	case tcell.KeyF9:
		return []byte("\x1b[20~"), true
	case tcell.KeyF10:
		return []byte("\x1b[21~"), true
	case tcell.KeyF11:
		return []byte("\x1b[23~"), true
	case tcell.KeyF12:
		return []byte("\x1b[24~"), true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return nil, false
		}
		return []byte(string(ev.Rune())), true
	}

	return nil, false
}
