package tetris

import (
	"time"

	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/config"
)

// GetFallInterval は現在のレベルに基づいた自動落下間隔を計算して返します。
// レベルに対して単調非増加で、MinFallInterval を下回ることはありません。
func GetFallInterval(level int, g config.GameplayConfig) time.Duration {
	interval := g.BaseFallInterval - time.Duration(level-1)*g.SpeedIncrease
	if interval < g.MinFallInterval {
		interval = g.MinFallInterval
	}
	return interval
}

// CalculateScore はラインクリア数とレベルからスコアを計算します。
// 基本点 + レベル × 基本点 を返します。5行以上は1ラインの基本点として扱います。
//
// Parameters:
//
//	clearedLines : クリアされたライン数
//	level        : 現在のレベル
//
// Returns:
//
//	int: 獲得スコア (0ラインなら0)
func CalculateScore(clearedLines, level int, g config.GameplayConfig) int {
	var base int
	switch clearedLines {
	case 0:
		return 0
	case 1: // Single
		base = g.SingleLineScore
	case 2: // Double
		base = g.DoubleLineScore
	case 3: // Triple
		base = g.TripleLineScore
	case 4: // Tetris
		base = g.TetrisScore
	default:
		base = g.SingleLineScore
	}
	return base + level*base
}

// LevelForLines は累計ライン数からレベルを求めます。
func LevelForLines(lines, linesPerLevel int) int {
	return lines/linesPerLevel + 1
}

// ApplyPlayerInput はプレイヤーの入力（アクション）に基づいてゲーム状態を更新します。
//
// Parameters:
//
//	state  : 更新するゲーム状態
//	action : プレイヤーが実行したアクション
//
// Returns:
//
//	bool: アクションが受け付けられた場合はtrue
func ApplyPlayerInput(state *GameState, action Action) bool {
	if action.IsDebug() {
		return applyDebugInput(state, action)
	}
	switch action {
	case ActionMoveLeft:
		return state.MovePiece(-1, 0)
	case ActionMoveRight:
		return state.MovePiece(1, 0)
	case ActionSoftDrop:
		return state.MovePiece(0, 1)
	case ActionRotateClockwise:
		return state.RotatePiece(true)
	case ActionRotateCounterClockwise:
		return state.RotatePiece(false)
	case ActionHardDrop:
		return state.HardDrop()
	case ActionPause:
		state.PauseGame()
		return true
	case ActionReset:
		state.ResetGame()
		return true
	case ActionToggleDebug:
		state.ToggleDebugMode()
		return true
	}
	return false
}

// applyDebugInput はデバッグ用アクションを処理します。デバッグモードでなければ何もせず false を返します。
func applyDebugInput(state *GameState, action Action) bool {
	dbg, ok := state.Debugger()
	if !ok {
		return false
	}
	switch action {
	case ActionDebugStepFall:
		return dbg.StepFall()
	case ActionDebugCyclePiece:
		return dbg.CycleActivePiece()
	case ActionDebugRowUp:
		return dbg.SelectRow(-1) >= 0
	case ActionDebugRowDown:
		return dbg.SelectRow(1) >= 0
	case ActionDebugClearRow:
		return dbg.ClearSelectedRow()
	case ActionDebugDeselectRow:
		_, selected := dbg.SelectedRow()
		dbg.DeselectRow()
		return selected
	}
	return false
}
