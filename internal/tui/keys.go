package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"browsershell/internal/input"
	"browsershell/internal/platform"
)

var keyNames = map[tea.KeyType]input.Key{
	tea.KeyEnter:     "Enter",
	tea.KeyBackspace: "Backspace",
	tea.KeyTab:       "Tab",
	tea.KeyEsc:       "Escape",
	tea.KeyUp:        "ArrowUp",
	tea.KeyDown:      "ArrowDown",
	tea.KeyLeft:      "ArrowLeft",
	tea.KeyRight:     "ArrowRight",
	tea.KeyHome:      "Home",
	tea.KeyEnd:       "End",
	tea.KeyPgUp:      "PageUp",
	tea.KeyPgDown:    "PageDown",
	tea.KeyDelete:    "Delete",
	tea.KeyInsert:    "Insert",
	tea.KeyF2:        "F2",
	tea.KeyF3:        "F3",
	tea.KeyF4:        "F4",
	tea.KeyF6:        "F6",
	tea.KeyF7:        "F7",
	tea.KeyF8:        "F8",
	tea.KeyF9:        "F9",
	tea.KeyF10:       "F10",
	tea.KeyF11:       "F11",
	tea.KeyF12:       "F12",
}

var shiftedKeys = map[tea.KeyType]input.Key{
	tea.KeyShiftTab:   "Tab",
	tea.KeyShiftUp:    "ArrowUp",
	tea.KeyShiftDown:  "ArrowDown",
	tea.KeyShiftLeft:  "ArrowLeft",
	tea.KeyShiftRight: "ArrowRight",
	tea.KeyShiftHome:  "Home",
	tea.KeyShiftEnd:   "End",
}

// pageKeys translates a key the shell does not bind into the events the page
// receives. Terminals only report presses. A paste yields one event per
// rune.
func pageKeys(msg tea.KeyMsg) []platform.KeyEvent {
	var mods input.Modifiers
	if msg.Alt {
		mods |= input.ModAlt
	}
	press := func(ch rune, k input.Key, m input.Modifiers) platform.KeyEvent {
		return platform.KeyEvent{Char: ch, Key: k, State: input.Pressed, Modifiers: m}
	}

	switch msg.Type {
	case tea.KeyRunes:
		out := make([]platform.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, press(r, "", mods))
		}
		return out
	case tea.KeySpace:
		return []platform.KeyEvent{press(' ', "", mods)}
	}
	if name, ok := keyNames[msg.Type]; ok {
		return []platform.KeyEvent{press(0, name, mods)}
	}
	if name, ok := shiftedKeys[msg.Type]; ok {
		return []platform.KeyEvent{press(0, name, mods|input.ModShift)}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		ch := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return []platform.KeyEvent{press(ch, "", mods|input.ModCtrl)}
	}
	return nil
}

// pageMouse translates a mouse event over the page area. Coordinates are
// made relative to the page; events over the chrome are dropped.
func pageMouse(msg tea.MouseMsg, g input.Geometry) []platform.SurfaceEvent {
	x, y := msg.X-g.X, msg.Y-g.Y
	if y < 0 || y >= g.Height {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return []platform.SurfaceEvent{wheel(0, 1)}
	case tea.MouseButtonWheelDown:
		return []platform.SurfaceEvent{wheel(0, -1)}
	case tea.MouseButtonWheelLeft:
		return []platform.SurfaceEvent{wheel(1, 0)}
	case tea.MouseButtonWheelRight:
		return []platform.SurfaceEvent{wheel(-1, 0)}
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		return []platform.SurfaceEvent{platform.MouseMoved{X: x, Y: y}}
	case tea.MouseActionPress, tea.MouseActionRelease:
		button, ok := mouseButton(msg.Button)
		if !ok {
			return nil
		}
		state := input.Pressed
		if msg.Action == tea.MouseActionRelease {
			state = input.Released
		}
		return []platform.SurfaceEvent{platform.MouseInput{State: state, Button: button, X: x, Y: y}}
	}
	return nil
}

func wheel(x, y float64) platform.MouseWheel {
	return platform.MouseWheel{
		Delta: input.ScrollDelta{Unit: input.LineDelta, X: x, Y: y},
		Phase: input.PhaseMoved,
	}
}

func mouseButton(b tea.MouseButton) (input.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return input.ButtonLeft, true
	case tea.MouseButtonRight:
		return input.ButtonRight, true
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle, true
	case tea.MouseButtonNone:
		// Some terminals report releases without a button.
		return input.ButtonLeft, true
	default:
		return 0, false
	}
}
