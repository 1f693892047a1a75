package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/config"
	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/models/tetris"
)

func newTestState(t *testing.T) *GameState {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 1
	return NewGameState(cfg)
}

func fillRow(b *tetris.Board, row int, skip ...int) {
	skipped := make(map[int]bool, len(skip))
	for _, x := range skip {
		skipped[x] = true
	}
	for x := 0; x < b.Width(); x++ {
		if !skipped[x] {
			b.SetCell(x, row, tetris.FilledCell(tetris.ColorWhite))
		}
	}
}

// blockSpawn はどの種類のピースも出現できないように出現位置周辺を埋めます。
func blockSpawn(s *GameState) {
	x, y := s.pieceFactory.SpawnPosition()
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			s.board.SetCell(x+dx, y+dy, tetris.FilledCell(tetris.ColorWhite))
		}
	}
}

func TestNewGameState(t *testing.T) {
	state := newTestState(t)

	assert.NotEmpty(t, state.ID())
	assert.Equal(t, 0, state.Score())
	assert.Equal(t, 1, state.Level())
	assert.Equal(t, 0, state.LinesCleared())
	assert.False(t, state.IsGameOver())
	assert.False(t, state.IsPaused())
	assert.Equal(t, time.Second, state.FallInterval())
	assert.NoError(t, state.Err())

	require.NotNil(t, state.ActivePiece())
	require.NotNil(t, state.NextPiece())
	assert.Equal(t, 5, state.ActivePiece().X)
	assert.Equal(t, 0, state.ActivePiece().Y)
	assert.Equal(t, 0, state.board.FilledCount())
}

func TestSessionIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, newTestState(t).ID(), newTestState(t).ID())
}

func TestSpawnNextPiece(t *testing.T) {
	state := newTestState(t)

	originalActive := state.activePiece
	originalNext := state.nextPiece
	state.spawnNextPiece()

	assert.Same(t, originalNext, state.activePiece)
	assert.NotSame(t, originalActive, state.activePiece)
	assert.NotSame(t, originalNext, state.nextPiece)
}

func TestAccessorsReturnCopies(t *testing.T) {
	state := newTestState(t)

	p := state.ActivePiece()
	p.Move(3, 3)
	assert.Equal(t, 5, state.activePiece.X)
	assert.Equal(t, 0, state.activePiece.Y)
}

func TestUpdateFallTiming(t *testing.T) {
	state := newTestState(t)
	startY := state.activePiece.Y

	state.Update(500 * time.Millisecond)
	assert.Equal(t, startY, state.activePiece.Y, "should not fall before the interval")

	state.Update(500 * time.Millisecond)
	assert.Equal(t, startY+1, state.activePiece.Y)

	// 1回の呼び出しで複数の間隔が経過した場合は、その回数分だけ落ちる
	state.Update(3 * time.Second)
	assert.Equal(t, startY+4, state.activePiece.Y)

	state.Update(-time.Second)
	assert.Equal(t, startY+4, state.activePiece.Y)
}

func TestPieceLandingAndPlacement(t *testing.T) {
	state := newTestState(t)
	state.activePiece = tetris.NewPiece(tetris.TypeO, 4, 18)
	next := state.nextPiece

	state.Update(time.Second)

	for _, c := range []tetris.Point{{X: 4, Y: 18}, {X: 5, Y: 18}, {X: 4, Y: 19}, {X: 5, Y: 19}} {
		color, ok := state.board.Cell(c.X, c.Y).Color()
		assert.True(t, ok, "cell %v", c)
		assert.Equal(t, tetris.ColorYellow, color)
	}
	assert.Same(t, next, state.activePiece)
	assert.False(t, state.IsGameOver())
}

func TestLineClearScoring(t *testing.T) {
	state := newTestState(t)
	fillRow(state.board, 19, 6, 7, 8, 9)
	fillRow(state.board, 18, 6, 7, 8, 9)
	state.board.SetCell(0, 17, tetris.FilledCell(tetris.ColorRed))
	state.activePiece = tetris.NewPiece(tetris.TypeI, 6, 0)

	require.True(t, state.HardDrop())

	assert.Equal(t, 1, state.LinesCleared())
	assert.Equal(t, 200, state.Score(), "single at level 1 is 100 + 1*100")
	// 消えた行より上は1行ずつ下がる
	assert.False(t, state.board.Cell(0, 18).IsEmpty())
	assert.True(t, state.board.Cell(1, 18).IsEmpty())
	assert.True(t, state.board.Cell(0, 17).IsEmpty())
	assert.False(t, state.board.IsLineComplete(19))
	assert.Equal(t, 7, state.board.FilledCount())
}

func TestTetrisScoring(t *testing.T) {
	state := newTestState(t)
	for row := 16; row < 20; row++ {
		fillRow(state.board, row, 0)
	}
	state.activePiece = tetris.NewPiece(tetris.TypeI, 0, 0)
	require.True(t, state.RotatePiece(true))

	require.True(t, state.HardDrop())

	assert.Equal(t, 4, state.LinesCleared())
	assert.Equal(t, 1600, state.Score(), "tetris at level 1 is 800 + 1*800")
	assert.Equal(t, 0, state.board.FilledCount())
}

func TestLevelProgression(t *testing.T) {
	state := newTestState(t)

	for i := 0; i < 9; i++ {
		state.handleLineClear(1)
	}
	assert.Equal(t, 1, state.Level())
	assert.Equal(t, time.Second, state.FallInterval())

	state.handleLineClear(1)
	assert.Equal(t, 10, state.LinesCleared())
	assert.Equal(t, 2, state.Level())
	assert.Equal(t, 900*time.Millisecond, state.FallInterval())

	// 2レベル目の得点は 100 + 2*100
	before := state.Score()
	state.handleLineClear(1)
	assert.Equal(t, before+300, state.Score())
}

func TestMovePieceValid(t *testing.T) {
	state := newTestState(t)
	x, y := state.activePiece.X, state.activePiece.Y

	assert.True(t, state.MovePiece(-1, 0))
	assert.Equal(t, x-1, state.activePiece.X)
	assert.True(t, state.MovePiece(0, 1))
	assert.Equal(t, y+1, state.activePiece.Y)
}

func TestMovePieceInvalid(t *testing.T) {
	state := newTestState(t)
	state.activePiece = tetris.NewPiece(tetris.TypeO, 0, 18)

	assert.False(t, state.MovePiece(-1, 0), "left wall")
	assert.False(t, state.MovePiece(0, 1), "floor")
	assert.Equal(t, 0, state.activePiece.X)
	assert.Equal(t, 18, state.activePiece.Y)
}

func TestRotatePieceValid(t *testing.T) {
	state := newTestState(t)
	state.activePiece = tetris.NewPiece(tetris.TypeT, 4, 5)

	assert.True(t, state.RotatePiece(true))
	assert.Equal(t, 1, state.activePiece.Rotation)
	assert.True(t, state.RotatePiece(false))
	assert.True(t, state.RotatePiece(false))
	assert.Equal(t, 3, state.activePiece.Rotation)
}

// TestRotatePieceInvalid は回転後の位置が無効な場合に、実際のピースが一切変化しないことを確認します。
func TestRotatePieceInvalid(t *testing.T) {
	state := newTestState(t)
	state.activePiece = tetris.NewPiece(tetris.TypeI, 0, 18)
	before := *state.activePiece

	assert.False(t, state.RotatePiece(true), "vertical I would poke through the floor")
	assert.Equal(t, before, *state.activePiece)

	// 重なりでも拒否される (壁蹴りはしない)
	state.activePiece = tetris.NewPiece(tetris.TypeI, 3, 5)
	state.board.SetCell(3, 7, tetris.FilledCell(tetris.ColorRed))
	assert.False(t, state.RotatePiece(false))
	assert.Equal(t, 0, state.activePiece.Rotation)
}

func TestHardDrop(t *testing.T) {
	state := newTestState(t)
	state.activePiece = tetris.NewPiece(tetris.TypeO, 5, 0)
	next := state.nextPiece

	assert.True(t, state.HardDrop())

	for _, c := range []tetris.Point{{X: 5, Y: 18}, {X: 6, Y: 18}, {X: 5, Y: 19}, {X: 6, Y: 19}} {
		assert.False(t, state.board.Cell(c.X, c.Y).IsEmpty(), "cell %v", c)
	}
	assert.Equal(t, 4, state.board.FilledCount())
	assert.Same(t, next, state.activePiece)
}

func TestHardDropWithoutMovementStillLocks(t *testing.T) {
	state := newTestState(t)
	state.activePiece = tetris.NewPiece(tetris.TypeO, 0, 18)

	assert.True(t, state.HardDrop())
	assert.False(t, state.board.Cell(0, 18).IsEmpty())
	assert.Equal(t, 4, state.board.FilledCount())
}

func TestActionsRejectedWhenGameOver(t *testing.T) {
	state := newTestState(t)
	state.gameOver = true
	before := *state.activePiece

	assert.False(t, state.MovePiece(1, 0))
	assert.False(t, state.RotatePiece(true))
	assert.False(t, state.HardDrop())
	state.Update(10 * time.Second)

	assert.Equal(t, before, *state.activePiece)
	assert.Equal(t, 0, state.board.FilledCount())
}

func TestActionsRejectedWhenPaused(t *testing.T) {
	state := newTestState(t)
	state.PauseGame()
	require.True(t, state.IsPaused())
	before := *state.activePiece

	assert.False(t, state.MovePiece(1, 0))
	assert.False(t, state.RotatePiece(false))
	assert.False(t, state.HardDrop())
	state.Update(10 * time.Second)

	assert.Equal(t, before, *state.activePiece)
	assert.Equal(t, 0, state.board.FilledCount())

	state.PauseGame()
	assert.False(t, state.IsPaused())
	// 一時停止中の経過時間は蓄積されていない
	state.Update(999 * time.Millisecond)
	assert.Equal(t, before.Y, state.activePiece.Y)
}

func TestResetGame(t *testing.T) {
	state := newTestState(t)
	id := state.ID()
	state.HardDrop()
	state.handleLineClear(10)
	state.PauseGame()
	state.gameOver = true

	state.ResetGame()

	assert.Equal(t, id, state.ID())
	assert.Equal(t, 0, state.Score())
	assert.Equal(t, 1, state.Level())
	assert.Equal(t, 0, state.LinesCleared())
	assert.False(t, state.IsGameOver())
	assert.False(t, state.IsPaused())
	assert.Equal(t, time.Second, state.FallInterval())
	assert.Equal(t, time.Duration(0), state.fallTimer)
	assert.Equal(t, 0, state.board.FilledCount())
	assert.NotNil(t, state.ActivePiece())
	assert.NotNil(t, state.NextPiece())
	assert.Equal(t, 2, state.games)
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	state := newTestState(t)
	blockSpawn(state)
	next := state.nextPiece

	state.spawnNextPiece()

	assert.True(t, state.IsGameOver())
	assert.Same(t, next, state.activePiece, "blocked piece stays for the final frame")
	assert.NoError(t, state.Err())
}

// TestUpdateStopsAtGameOver は落下ループの途中でゲームオーバーになった場合に、それ以上処理しないことを確認します。
func TestUpdateStopsAtGameOver(t *testing.T) {
	state := newTestState(t)
	blockSpawn(state)
	state.activePiece = tetris.NewPiece(tetris.TypeO, 0, 18)
	next := state.nextPiece
	filled := state.board.FilledCount()

	state.Update(10 * time.Second)

	assert.True(t, state.IsGameOver())
	assert.Same(t, next, state.activePiece)
	assert.Equal(t, filled+4, state.board.FilledCount())
}

func TestLockFailureIsReported(t *testing.T) {
	state := newTestState(t)
	state.activePiece = tetris.NewPiece(tetris.TypeO, 0, 0)
	state.board.SetCell(1, 1, tetris.FilledCell(tetris.ColorRed))

	state.lockPiece()

	assert.ErrorIs(t, state.Err(), tetris.ErrInvalidPlacement)
	assert.True(t, state.IsGameOver())
	assert.Equal(t, 1, state.board.FilledCount())
}

func TestSnapshotIsReadOnly(t *testing.T) {
	state := newTestState(t)
	snap := state.Snapshot()

	require.NotNil(t, snap.ActivePiece)
	require.NotNil(t, snap.NextPiece)
	assert.Equal(t, state.ID(), snap.ID)
	assert.Equal(t, state.activePiece.Cells(), snap.ActivePiece.Cells)
	assert.Equal(t, state.activePiece.Color(), snap.ActivePiece.Color)
	assert.Equal(t, 10, snap.Board.Width())
	assert.Equal(t, 20, snap.Board.Height())
	assert.Nil(t, snap.Debug)

	snap.Board.SetCell(0, 0, tetris.FilledCell(tetris.ColorRed))
	snap.ActivePiece.Cells[0] = tetris.Point{X: 99, Y: 99}
	assert.True(t, state.board.Cell(0, 0).IsEmpty())
	assert.NotContains(t, state.activePiece.Cells(), tetris.Point{X: 99, Y: 99})
}

func TestDeterministicSequence(t *testing.T) {
	a := newTestState(t)
	b := newTestState(t)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.activePiece.Type, b.activePiece.Type, "piece %d", i)
		a.spawnNextPiece()
		b.spawnNextPiece()
	}
}
