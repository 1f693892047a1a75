package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/models/tetris"
	game "github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/services/tetris"
)

const (
	wellX     = 3 // ボード左端のマス (左枠の1つ右)
	wellY     = 1
	cellWidth = 2 // 1マスを2文字で描く
	panelGap  = 3
	blockRune = '█'
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDebug    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Dim(true)
)

// Renderer はスナップショットを tcell の画面に描画します。
type Renderer struct {
	screen        tcell.Screen
	width, height int // 直前に描画したボードの大きさ
}

// NewRenderer は screen に描画する Renderer を返します。
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw は画面をクリアして snap の内容を描画し、表示を更新します。
func (r *Renderer) Draw(snap game.Snapshot) {
	r.screen.Clear()
	if snap.Board == nil {
		r.screen.Show()
		return
	}
	r.width, r.height = snap.Board.Width(), snap.Board.Height()

	selected := -1
	if snap.Debug != nil && snap.Debug.SelectedRow != nil {
		selected = *snap.Debug.SelectedRow
	}
	r.drawWell(snap.Board, selected)
	if p := snap.ActivePiece; p != nil {
		for _, c := range p.Cells {
			r.drawCell(c.X, c.Y, p.Color)
		}
	}
	r.drawPanel(snap)
	r.screen.Show()
}

// BoardCellAt は画面座標をボードのマス座標に変換します。ボード外の場合は false を返します。
func (r *Renderer) BoardCellAt(sx, sy int) (x, y int, ok bool) {
	if sx < wellX || sy < wellY {
		return 0, 0, false
	}
	x, y = (sx-wellX)/cellWidth, sy-wellY
	if x >= r.width || y >= r.height {
		return 0, 0, false
	}
	return x, y, true
}

func (r *Renderer) drawWell(b *tetris.Board, selected int) {
	w, h := b.Width(), b.Height()
	left, right := wellX-1, wellX+w*cellWidth
	for y := 0; y < h; y++ {
		r.screen.SetContent(left, wellY+y, '│', nil, styleBorder)
		r.screen.SetContent(right, wellY+y, '│', nil, styleBorder)
		if y == selected {
			r.screen.SetContent(left-1, wellY+y, '▶', nil, styleDebug)
		}
		for x := 0; x < w; x++ {
			if color, ok := b.Cell(x, y).Color(); ok {
				r.drawCell(x, y, color)
			} else if y == selected {
				r.drawText(wellX+x*cellWidth, wellY+y, "··", styleSelected)
			}
		}
	}
	r.screen.SetContent(left, wellY+h, '└', nil, styleBorder)
	r.screen.SetContent(right, wellY+h, '┘', nil, styleBorder)
	for sx := left + 1; sx < right; sx++ {
		r.screen.SetContent(sx, wellY+h, '─', nil, styleBorder)
	}
}

func (r *Renderer) drawCell(x, y int, c tetris.Color) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	sx := wellX + x*cellWidth
	for i := 0; i < cellWidth; i++ {
		r.screen.SetContent(sx+i, wellY+y, blockRune, nil, style)
	}
}

func (r *Renderer) drawPanel(snap game.Snapshot) {
	px := wellX + r.width*cellWidth + panelGap
	y := wellY

	y = r.drawStat(px, y, "SCORE", fmt.Sprintf("%d", snap.Score))
	y = r.drawStat(px, y, "LEVEL", fmt.Sprintf("%d", snap.Level))
	y = r.drawStat(px, y, "LINES", fmt.Sprintf("%d", snap.LinesCleared))

	r.drawText(px, y, "NEXT", styleLabel)
	y++
	if p := snap.NextPiece; p != nil {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B)))
		for _, c := range p.Cells {
			sx := px + (c.X-p.X)*cellWidth
			sy := y + c.Y - p.Y
			r.screen.SetContent(sx, sy, blockRune, nil, style)
			r.screen.SetContent(sx+1, sy, blockRune, nil, style)
		}
	}
	y += 5

	switch {
	case snap.GameOver:
		r.drawText(px, y, "GAME OVER", styleAlert)
		r.drawText(px, y+1, "r: restart", styleText)
	case snap.Paused:
		r.drawText(px, y, "PAUSED", styleAlert)
	}
	y += 3

	if d := snap.Debug; d != nil {
		r.drawText(px, y, "DEBUG", styleDebug)
		row := "-"
		if d.SelectedRow != nil {
			row = fmt.Sprintf("%d", *d.SelectedRow)
		}
		lines := []string{
			"row   " + row,
			fmt.Sprintf("fall  %.2fs", d.FallInterval),
			fmt.Sprintf("piece %s r%d", d.ActiveType, d.ActiveRotation),
			"next  " + d.NextType,
			fmt.Sprintf("games %d", d.Games),
		}
		if d.ActivePosition != nil {
			lines = append(lines, fmt.Sprintf("pos   %d,%d", d.ActivePosition.X, d.ActivePosition.Y))
		}
		for i, l := range lines {
			r.drawText(px, y+1+i, l, styleDebug)
		}
	}

	r.drawText(1, wellY+r.height+2, "←→↓ move  ↑/x z rotate  space drop  p pause  r reset  q quit", styleText)
}

func (r *Renderer) drawStat(x, y int, label, value string) int {
	r.drawText(x, y, label, styleLabel)
	r.drawText(x, y+1, value, styleText)
	return y + 3
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
