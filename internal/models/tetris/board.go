package tetris

import (
	"errors"
	"fmt"
)

const (
	DefaultBoardWidth  = 10 // テトリスボードの幅
	DefaultBoardHeight = 20 // テトリスボードの高さ
)

// ErrInvalidPlacement は既に埋まっているセルや範囲外へのピース固定を表します。
// IsValidPosition による事前チェックを怠った呼び出し側の契約違反です。
var ErrInvalidPlacement = errors.New("invalid piece placement")

// Cell はボード上の1マスです。空か、1つの色で埋まっているかのどちらかです。
// ゼロ値は空のマスです。
type Cell struct {
	filled bool
	color  Color
}

// EmptyCell は空のマスです。
var EmptyCell = Cell{}

// FilledCell は色cで埋まったマスを返します。
func FilledCell(c Color) Cell {
	return Cell{filled: true, color: c}
}

// IsEmpty はマスが空であればtrueを返します。
func (c Cell) IsEmpty() bool { return !c.filled }

// Color はマスの色を返します。空の場合はokがfalseになります。
func (c Cell) Color() (color Color, ok bool) {
	return c.color, c.filled
}

// Board はテトリスのゲームボードです。
// grid[x][y] でアクセスします。xは列、yは行で、y=0が最上段です。
// 生成後にサイズが変わることはありません。
type Board struct {
	width  int
	height int
	grid   [][]Cell
}

// NewBoard は新しい空のボードを初期化して返します。
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.grid = make([][]Cell, width)
	for x := range b.grid {
		b.grid[x] = make([]Cell, height)
	}
	return b
}

// Width はボードの列数を返します。
func (b *Board) Width() int { return b.width }

// Height はボードの行数を返します。
func (b *Board) Height() int { return b.height }

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// IsValidPosition は指定されたピースがオフセット (dx, dy) の位置に置けるかを判定します。
// ピースもボードも変更しません。
//
// Parameters:
//
//	p  : 判定するテトリミノ
//	dx : X軸方向のオフセット
//	dy : Y軸方向のオフセット
//
// Returns:
//
//	bool: すべてのセルが範囲内かつ空ならtrue
func (b *Board) IsValidPosition(p *Piece, dx, dy int) bool {
	for _, c := range p.cellsAt(dx, dy) {
		if !b.inBounds(c.X, c.Y) {
			return false
		}
		if b.grid[c.X][c.Y].filled {
			return false
		}
	}
	return true
}

// PlacePiece は落下したピースをボードに固定し、ピースの色でマスを埋めます。
// 固定先に埋まったマスや範囲外のマスがあれば ErrInvalidPlacement を返し、ボードは一切変更しません。
func (b *Board) PlacePiece(p *Piece) error {
	cells := p.Cells()
	for _, c := range cells {
		if !b.inBounds(c.X, c.Y) {
			return fmt.Errorf("place %s at (%d, %d): cell (%d, %d) out of bounds: %w", p.Type, p.X, p.Y, c.X, c.Y, ErrInvalidPlacement)
		}
		if b.grid[c.X][c.Y].filled {
			return fmt.Errorf("place %s at (%d, %d): cell (%d, %d) already filled: %w", p.Type, p.X, p.Y, c.X, c.Y, ErrInvalidPlacement)
		}
	}
	filled := FilledCell(p.Color())
	for _, c := range cells {
		b.grid[c.X][c.Y] = filled
	}
	return nil
}

// IsLineComplete は指定された行がすべて埋まっていればtrueを返します。範囲外の行はfalseです。
func (b *Board) IsLineComplete(row int) bool {
	if row < 0 || row >= b.height {
		return false
	}
	for x := 0; x < b.width; x++ {
		if !b.grid[x][row].filled {
			return false
		}
	}
	return true
}

// ClearCompletedLines は揃ったラインをクリアし、上のブロックを落とします。
// 揃った行を先にすべて集めてから列ごとに詰めるので、複数行（隣接していなくても）を1回で正しく処理できます。
//
// Returns:
//
//	int: クリアされたライン数
func (b *Board) ClearCompletedLines() int {
	complete := make(map[int]bool)
	for y := 0; y < b.height; y++ {
		if b.IsLineComplete(y) {
			complete[y] = true
		}
	}
	if len(complete) == 0 {
		return 0
	}

	for x := 0; x < b.width; x++ {
		column := make([]Cell, len(complete), b.height)
		for y, cell := range b.grid[x] {
			if !complete[y] {
				column = append(column, cell)
			}
		}
		b.grid[x] = column
	}
	return len(complete)
}

// Cell は(x, y)のマスを返します。範囲外は空のマスとして扱います。
func (b *Board) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return EmptyCell
	}
	return b.grid[x][y]
}

// SetCell は(x, y)のマスを書き換えます。範囲外の場合は何もしません。
func (b *Board) SetCell(x, y int, c Cell) {
	if b.inBounds(x, y) {
		b.grid[x][y] = c
	}
}

// IsGameOver は最上段に1つでもブロックがあればtrueを返します。
func (b *Board) IsGameOver() bool {
	if b.height == 0 {
		return false
	}
	for x := 0; x < b.width; x++ {
		if b.grid[x][0].filled {
			return true
		}
	}
	return false
}

// Clear はボードのすべてのマスを空にします。サイズは維持されます。
func (b *Board) Clear() {
	for x := range b.grid {
		clear(b.grid[x])
	}
}

// Clone はボードのディープコピーを返します。
func (b *Board) Clone() *Board {
	nb := &Board{width: b.width, height: b.height, grid: make([][]Cell, b.width)}
	for x := range b.grid {
		nb.grid[x] = append([]Cell(nil), b.grid[x]...)
	}
	return nb
}

// FilledCount は埋まっているマスの数を返します。
func (b *Board) FilledCount() int {
	n := 0
	for x := range b.grid {
		for _, c := range b.grid[x] {
			if c.filled {
				n++
			}
		}
	}
	return n
}
