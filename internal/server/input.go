package server

import (
	"github.com/KazDragon/textray/internal/camera"

	"github.com/gdamore/tcell/v2"
)

// Action is what a key asks the session loop to do.
type Action uint8

const (
	ActionNone Action = iota
	ActionCommand
	ActionQuit
	ActionShutdown
)

// Keys are case sensitive: q rotates, Q quits.
var runeCommands = map[rune]camera.Command{
	'w': camera.CmdForward,
	's': camera.CmdBackward,
	'a': camera.CmdLeft,
	'd': camera.CmdRight,
	'q': camera.CmdRotateLeft,
	'e': camera.CmdRotateRight,
	'z': camera.CmdZoomIn,
	'x': camera.CmdZoomOut,
	'c': camera.CmdZoomReset,
}

// keyToAction decodes a key event. cmd is only meaningful for ActionCommand.
func keyToAction(ev *tcell.EventKey) (a Action, cmd camera.Command) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionCommand, camera.CmdForward
	case tcell.KeyDown:
		return ActionCommand, camera.CmdBackward
	case tcell.KeyLeft:
		return ActionCommand, camera.CmdRotateLeft
	case tcell.KeyRight:
		return ActionCommand, camera.CmdRotateRight
	case tcell.KeyCtrlC:
		return ActionQuit, camera.CmdNone
	case tcell.KeyRune:
	default:
		return ActionNone, camera.CmdNone
	}
	switch r := ev.Rune(); r {
	case 'Q':
		return ActionQuit, camera.CmdNone
	case 'P':
		return ActionShutdown, camera.CmdNone
	default:
		if cmd, ok := runeCommands[r]; ok {
			return ActionCommand, cmd
		}
	}
	return ActionNone, camera.CmdNone
}
