package game

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Action is one player command.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionMoveNE
	ActionMoveNW
	ActionMoveSE
	ActionMoveSW
	ActionWait
	ActionPivotLeft
	ActionPivotRight
	ActionToggleLight
	ActionToggleLantern
	ActionQuit
)

// keyBindings covers the named keys; runeBindings the letter keys, which
// match regardless of case.
var (
	keyBindings = map[tcell.Key]Action{
		tcell.KeyUp:     ActionMoveN,
		tcell.KeyDown:   ActionMoveS,
		tcell.KeyRight:  ActionMoveE,
		tcell.KeyLeft:   ActionMoveW,
		tcell.KeyEscape: ActionQuit,
	}
	runeBindings = map[rune]Action{
		'k': ActionMoveN, 'j': ActionMoveS, 'l': ActionMoveE, 'h': ActionMoveW,
		'y': ActionMoveNW, 'u': ActionMoveNE, 'b': ActionMoveSW, 'n': ActionMoveSE,
		'.': ActionWait,
		'[': ActionPivotLeft, ']': ActionPivotRight,
		'f': ActionToggleLight, 'g': ActionToggleLantern,
		'q': ActionQuit,
	}
)

// steps holds the tile offset of each movement action.
var steps = map[Action][2]int{
	ActionMoveN:  {0, -1},
	ActionMoveS:  {0, 1},
	ActionMoveE:  {1, 0},
	ActionMoveW:  {-1, 0},
	ActionMoveNE: {1, -1},
	ActionMoveNW: {-1, -1},
	ActionMoveSE: {1, 1},
	ActionMoveSW: {-1, 1},
}

// keyToAction maps a key event to an action; unbound keys give ActionNone.
func keyToAction(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return runeBindings[unicode.ToLower(ev.Rune())]
	}
	return keyBindings[ev.Key()]
}

// actionToDelta returns the step of a movement action, (0, 0) otherwise.
func actionToDelta(a Action) (int, int) {
	d := steps[a]
	return d[0], d[1]
}
