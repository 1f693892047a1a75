package tetris

import (
	"github.com/kamstrup/intmap"

	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/models/tetris"
)

// Debugger はデバッグモード中にだけ使える操作をまとめたものです。
// GameState.Debugger から取得します。
type Debugger struct {
	state *GameState
}

// DebugInfo は画面表示用のデバッグ情報です。
type DebugInfo struct {
	DebugMode      bool          `json:"debug_mode"`
	SelectedRow    *int          `json:"selected_row"`
	FallInterval   float64       `json:"fall_interval"` // 秒
	ActiveType     string        `json:"active_type,omitempty"`
	ActivePosition *tetris.Point `json:"active_pos,omitempty"`
	ActiveRotation int           `json:"active_rotation"`
	NextType       string        `json:"next_type,omitempty"`
	BoardWidth     int           `json:"board_width"`
	BoardHeight    int           `json:"board_height"`
	Games          int           `json:"games"`
}

// Info は現在のデバッグ情報を返します。
func (d *Debugger) Info() DebugInfo {
	s := d.state
	info := DebugInfo{
		DebugMode:    s.debugMode,
		FallInterval: s.fallInterval.Seconds(),
		BoardWidth:   s.board.Width(),
		BoardHeight:  s.board.Height(),
		Games:        s.games,
	}
	if row, ok := d.SelectedRow(); ok {
		info.SelectedRow = &row
	}
	if p := s.activePiece; p != nil {
		info.ActiveType = p.Type.String()
		info.ActivePosition = &tetris.Point{X: p.X, Y: p.Y}
		info.ActiveRotation = p.Rotation
	}
	if p := s.nextPiece; p != nil {
		info.NextType = p.Type.String()
	}
	return info
}

// StepFall はタイマーや一時停止に関係なく1回だけ落下処理を行います。
func (d *Debugger) StepFall() bool {
	s := d.state
	if s.gameOver || s.activePiece == nil {
		return false
	}
	s.fallPiece()
	return true
}

// CycleActivePiece は操作中のピースを宣言順で次の種類に切り替え、出現位置に置き直します。
// 出現位置が埋まっている場合は、意図しないゲームオーバーを避けるため切り替えません。
func (d *Debugger) CycleActivePiece() bool {
	s := d.state
	if s.gameOver {
		return false
	}
	next := tetris.TypeI
	if s.activePiece != nil {
		next = tetris.PieceType((int(s.activePiece.Type) + 1) % tetris.PieceTypeCount)
	}
	candidate := s.pieceFactory.CreatePiece(next)
	if !s.board.IsValidPosition(candidate, 0, 0) {
		return false
	}
	s.activePiece = candidate
	return true
}

// SelectRow は選択行を delta だけ動かし、[0, 高さ-1] に収めた結果を返します。
// 未選択の場合は0行目から動かします。ゲームオーバー中は-1を返します。
func (d *Debugger) SelectRow(delta int) int {
	s := d.state
	if s.gameOver {
		return -1
	}
	row := s.debugSelectedRow
	if row < 0 {
		row = 0
	}
	row += delta
	row = max(0, min(s.board.Height()-1, row))
	s.debugSelectedRow = row
	return row
}

// DeselectRow は行の選択を解除します。
func (d *Debugger) DeselectRow() {
	d.state.debugSelectedRow = -1
}

// SelectedRow は選択中の行を返します。
func (d *Debugger) SelectedRow() (int, bool) {
	row := d.state.debugSelectedRow
	return row, row >= 0
}

// ClearSelectedRow は選択中の行のマスをすべて空にします。
// 上の行は落ちず、スコアやライン数にも影響しません。
func (d *Debugger) ClearSelectedRow() bool {
	s := d.state
	row, ok := d.SelectedRow()
	if !ok || s.gameOver {
		return false
	}
	for x := 0; x < s.board.Width(); x++ {
		s.board.SetCell(x, row, tetris.EmptyCell)
	}
	return true
}

// ClearRegionAt は(x, y)から上下左右につながった同じ色の固定済みブロックを消します。
// 操作中のピースは対象外です。
//
// Returns:
//
//	bool: 1つ以上のマスを消した場合はtrue
func (d *Debugger) ClearRegionAt(x, y int) bool {
	s := d.state
	if s.gameOver {
		return false
	}
	b := s.board
	target, ok := b.Cell(x, y).Color()
	if !ok {
		return false
	}

	w, h := b.Width(), b.Height()
	visited := intmap.NewSet[int](w * h)
	stack := []tetris.Point{{X: x, Y: y}}
	cleared := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		key := p.Y*w + p.X
		if visited.Has(key) {
			continue
		}
		visited.Add(key)

		if c, ok := b.Cell(p.X, p.Y).Color(); !ok || c != target {
			continue
		}
		b.SetCell(p.X, p.Y, tetris.EmptyCell)
		cleared++

		stack = append(stack,
			tetris.Point{X: p.X - 1, Y: p.Y},
			tetris.Point{X: p.X + 1, Y: p.Y},
			tetris.Point{X: p.X, Y: p.Y - 1},
			tetris.Point{X: p.X, Y: p.Y + 1},
		)
	}
	return cleared > 0
}
