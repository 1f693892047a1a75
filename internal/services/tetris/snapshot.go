package tetris

import (
	"time"

	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/models/tetris"
)

// PieceSnapshot は描画用のピース情報です。
type PieceSnapshot struct {
	Type     tetris.PieceType `json:"type"`
	X        int              `json:"x"`
	Y        int              `json:"y"`
	Rotation int              `json:"rotation"`
	Cells    []tetris.Point   `json:"cells"`
	Color    tetris.Color     `json:"color"`
}

func newPieceSnapshot(p *tetris.Piece) *PieceSnapshot {
	if p == nil {
		return nil
	}
	return &PieceSnapshot{
		Type:     p.Type,
		X:        p.X,
		Y:        p.Y,
		Rotation: p.Rotation,
		Cells:    p.Cells(),
		Color:    p.Color(),
	}
}

// Snapshot は描画・入力層に渡す読み取り専用のゲーム状態です。
// ボードを含めてすべてコピーなので、変更してもゲームには影響しません。
type Snapshot struct {
	ID           string         `json:"id"`
	Score        int            `json:"score"`
	Level        int            `json:"level"`
	LinesCleared int            `json:"lines_cleared"`
	GameOver     bool           `json:"is_game_over"`
	Paused       bool           `json:"paused"`
	FallInterval time.Duration  `json:"fall_interval"`
	ActivePiece  *PieceSnapshot `json:"current_piece"`
	NextPiece    *PieceSnapshot `json:"next_piece"`
	Board        *tetris.Board  `json:"-"`
	Debug        *DebugInfo     `json:"debug,omitempty"` // デバッグモード中のみ
}

// Snapshot は現在のゲーム状態のスナップショットを返します。
func (s *GameState) Snapshot() Snapshot {
	snap := Snapshot{
		ID:           s.id,
		Score:        s.score,
		Level:        s.level,
		LinesCleared: s.linesCleared,
		GameOver:     s.gameOver,
		Paused:       s.paused,
		FallInterval: s.fallInterval,
		ActivePiece:  newPieceSnapshot(s.activePiece),
		NextPiece:    newPieceSnapshot(s.nextPiece),
		Board:        s.board.Clone(),
	}
	if dbg, ok := s.Debugger(); ok {
		info := dbg.Info()
		snap.Debug = &info
	}
	return snap
}
