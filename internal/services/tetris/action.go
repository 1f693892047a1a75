package tetris

// Action は入力層からゲームに渡される論理的な操作です。
type Action int

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionSoftDrop
	ActionRotateClockwise
	ActionRotateCounterClockwise
	ActionHardDrop
	ActionPause
	ActionReset
	ActionToggleDebug
	ActionDebugStepFall
	ActionDebugCyclePiece
	ActionDebugRowUp
	ActionDebugRowDown
	ActionDebugClearRow
	ActionDebugDeselectRow
)

var actionNames = map[Action]string{
	ActionMoveLeft:               "move_left",
	ActionMoveRight:              "move_right",
	ActionSoftDrop:               "soft_drop",
	ActionRotateClockwise:        "rotate",
	ActionRotateCounterClockwise: "rotate_left",
	ActionHardDrop:               "hard_drop",
	ActionPause:                  "pause",
	ActionReset:                  "reset",
	ActionToggleDebug:            "debug",
	ActionDebugStepFall:          "debug_step",
	ActionDebugCyclePiece:        "debug_cycle",
	ActionDebugRowUp:             "debug_row_up",
	ActionDebugRowDown:           "debug_row_down",
	ActionDebugClearRow:          "debug_clear_row",
	ActionDebugDeselectRow:       "debug_deselect_row",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// IsDebug はデバッグモード中のみ有効なアクションであればtrueを返します。
func (a Action) IsDebug() bool {
	return a >= ActionDebugStepFall && a <= ActionDebugDeselectRow
}
