// Package terminal はゲームコアを tcell の端末画面に接続する薄いアダプタです。
// キー入力を論理アクションに変換し、スナップショットを描画するだけで、ゲームのルールは持ちません。
package terminal

import (
	"github.com/gdamore/tcell/v2"

	game "github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/services/tetris"
)

var specialKeys = map[tcell.Key]game.Action{
	tcell.KeyLeft:  game.ActionMoveLeft,
	tcell.KeyRight: game.ActionMoveRight,
	tcell.KeyDown:  game.ActionSoftDrop,
	tcell.KeyUp:    game.ActionRotateClockwise,
	tcell.KeyF2:    game.ActionToggleDebug,
}

var runeKeys = map[rune]game.Action{
	'h': game.ActionMoveLeft,
	'l': game.ActionMoveRight,
	'j': game.ActionSoftDrop,
	' ': game.ActionHardDrop,
	'x': game.ActionRotateClockwise,
	'z': game.ActionRotateCounterClockwise,
	'p': game.ActionPause,
	'r': game.ActionReset,

	// デバッグモード中のみ有効
	'n': game.ActionDebugStepFall,
	'c': game.ActionDebugCyclePiece,
	'[': game.ActionDebugRowUp,
	']': game.ActionDebugRowDown,
	'k': game.ActionDebugClearRow,
	'u': game.ActionDebugDeselectRow,
}

// KeyAction はキーイベントに対応するアクションを返します。
// 割り当てのないキーの場合は false を返します。
func KeyAction(ev *tcell.EventKey) (game.Action, bool) {
	if ev.Key() == tcell.KeyRune {
		a, ok := runeKeys[ev.Rune()]
		return a, ok
	}
	a, ok := specialKeys[ev.Key()]
	return a, ok
}

// IsQuitKey は Esc、Ctrl-C、q のいずれかであれば true を返します。
func IsQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
