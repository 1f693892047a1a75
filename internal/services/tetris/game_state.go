package tetris

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/config"
	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/models/tetris"
)

// GameState は1回のゲームセッションの状態です。
// ボードとピースファクトリを所有し、落下タイマー、操作中/次のピース、スコア・レベル、
// 一時停止とゲームオーバーを管理します。
//
// GameState は単一の所有者から使われる前提で、同期は行いません。
// 複数のゴルーチンから使う場合は呼び出し側で直列化してください。
type GameState struct {
	id     string
	cfg    config.Config
	logger zerolog.Logger

	board        *tetris.Board
	pieceFactory *PieceFactory

	activePiece *tetris.Piece // 操作中のテトリミノ
	nextPiece   *tetris.Piece // 次に出現するテトリミノ

	score        int
	level        int
	linesCleared int
	games        int // このセッションで開始したゲーム数 (リセットで増える)

	fallInterval time.Duration
	fallTimer    time.Duration // 前回の落下から蓄積した経過時間

	gameOver bool
	paused   bool
	err      error // 契約違反が発生した場合のエラー

	debugMode        bool
	debugSelectedRow int // -1 は未選択
}

// Option は GameState の生成時オプションです。
type Option func(*GameState)

// WithLogger はゲームイベントの出力先ロガーを設定します。
func WithLogger(l zerolog.Logger) Option {
	return func(s *GameState) { s.logger = l }
}

// WithPieceFactory はピースファクトリを差し替えます。テストで出現順を固定するのに使います。
func WithPieceFactory(f *PieceFactory) Option {
	return func(s *GameState) { s.pieceFactory = f }
}

// NewGameState は新しいゲーム状態を初期化し、最初の2つのピースを生成して返します。
//
// Parameters:
//
//	cfg  : 検証済みの設定
//	opts : ロガーなどのオプション
//
// Returns:
//
//	*GameState: 初期化されたゲーム状態のポインタ
func NewGameState(cfg config.Config, opts ...Option) *GameState {
	s := &GameState{
		id:               uuid.NewString(),
		cfg:              cfg,
		logger:           zerolog.Nop(),
		board:            tetris.NewBoard(cfg.Board.Width, cfg.Board.Height),
		level:            1,
		games:            1,
		debugMode:        cfg.Debug,
		debugSelectedRow: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pieceFactory == nil {
		s.pieceFactory = NewPieceFactory(cfg.Board.Width, newRand(cfg.Seed))
	}
	s.logger = s.logger.With().Str("session_id", s.id).Logger()
	s.fallInterval = GetFallInterval(s.level, cfg.Gameplay)

	s.logger.Info().
		Int("width", cfg.Board.Width).
		Int("height", cfg.Board.Height).
		Dur("fall_interval", s.fallInterval).
		Msg("game session created")

	s.spawnNextPiece()
	return s
}

// ID はセッションIDを返します。
func (s *GameState) ID() string { return s.id }

func (s *GameState) Score() int        { return s.score }
func (s *GameState) Level() int        { return s.level }
func (s *GameState) LinesCleared() int { return s.linesCleared }
func (s *GameState) IsGameOver() bool  { return s.gameOver }
func (s *GameState) IsPaused() bool    { return s.paused }

// FallInterval は現在のレベルでの自動落下間隔を返します。
func (s *GameState) FallInterval() time.Duration { return s.fallInterval }

// Err はピース固定時に契約違反が起きていればそのエラーを返します。
func (s *GameState) Err() error { return s.err }

// ActivePiece は操作中のピースのコピーを返します。ない場合はnilです。
func (s *GameState) ActivePiece() *tetris.Piece { return clonePiece(s.activePiece) }

// NextPiece は次のピースのコピーを返します。
func (s *GameState) NextPiece() *tetris.Piece { return clonePiece(s.nextPiece) }

func clonePiece(p *tetris.Piece) *tetris.Piece {
	if p == nil {
		return nil
	}
	return p.Clone()
}

// spawnNextPiece は次のピースを操作中にし、新しい次のピースをファクトリから取得します。
// 最初の出現では両方を生成します。出現位置が既に埋まっていればゲームオーバーです。
func (s *GameState) spawnNextPiece() {
	if s.nextPiece == nil {
		s.activePiece = s.pieceFactory.CreateRandomPiece()
	} else {
		s.activePiece = s.nextPiece
	}
	s.nextPiece = s.pieceFactory.CreateRandomPiece()

	s.logger.Debug().
		Stringer("active", s.activePiece.Type).
		Stringer("next", s.nextPiece.Type).
		Msg("piece spawned")

	if !s.board.IsValidPosition(s.activePiece, 0, 0) {
		s.gameOver = true
		s.logger.Info().
			Int("score", s.score).
			Int("level", s.level).
			Int("lines", s.linesCleared).
			Msg("game over")
	}
}

// Update は経過時間を落下タイマーに加算し、落下間隔を超えた分だけ落下処理を行います。
// 1回の呼び出しで複数の落下間隔が経過していれば、その回数分落下します。
// ゲームオーバーまたは一時停止中は何もしません。
func (s *GameState) Update(elapsed time.Duration) {
	if s.gameOver || s.paused || s.fallInterval <= 0 {
		return
	}
	if elapsed > 0 {
		s.fallTimer += elapsed
	}
	for s.fallTimer >= s.fallInterval && !s.gameOver && !s.paused {
		s.fallPiece()
		s.fallTimer -= s.fallInterval
	}
}

// fallPiece は操作中のピースを1マス落とします。着地していればボードに固定します。
func (s *GameState) fallPiece() {
	if s.activePiece == nil {
		return
	}
	if s.board.IsValidPosition(s.activePiece, 0, 1) {
		s.activePiece.Move(0, 1)
		return
	}
	s.lockPiece()
}

// lockPiece はピースの固定、ライン消去、スコア加算、次のピースの出現をまとめて行います。
func (s *GameState) lockPiece() {
	if s.activePiece == nil {
		return
	}
	if err := s.board.PlacePiece(s.activePiece); err != nil {
		// IsValidPosition を通った位置でしか固定しないので、ここに来るのはバグ
		s.err = err
		s.gameOver = true
		s.logger.Error().Err(err).Msg("piece lock failed")
		return
	}

	if cleared := s.board.ClearCompletedLines(); cleared > 0 {
		s.handleLineClear(cleared)
	}
	s.spawnNextPiece()
}

// handleLineClear はクリアしたライン数に応じてスコアとレベルを更新します。
func (s *GameState) handleLineClear(cleared int) {
	g := s.cfg.Gameplay
	s.linesCleared += cleared
	points := CalculateScore(cleared, s.level, g)
	s.score += points

	s.logger.Debug().
		Int("lines", cleared).
		Int("points", points).
		Int("score", s.score).
		Msg("lines cleared")

	if newLevel := LevelForLines(s.linesCleared, g.LinesPerLevel); newLevel > s.level {
		s.level = newLevel
		s.fallInterval = GetFallInterval(s.level, g)
		s.logger.Info().
			Int("level", s.level).
			Dur("fall_interval", s.fallInterval).
			Msg("level up")
	}
}

func (s *GameState) canControl() bool {
	return s.activePiece != nil && !s.gameOver && !s.paused
}

// MovePiece は操作中のピースを(dx, dy)だけ移動させます。
//
// Returns:
//
//	bool: 移動できた場合はtrue。ゲームオーバー・一時停止中・衝突時はfalse
func (s *GameState) MovePiece(dx, dy int) bool {
	if !s.canControl() {
		return false
	}
	if !s.board.IsValidPosition(s.activePiece, dx, dy) {
		return false
	}
	s.activePiece.Move(dx, dy)
	return true
}

// RotatePiece は操作中のピースを回転させます。
// 回転はまずクローンに対して行い、その位置が有効な場合にのみ実際のピースに反映します。
// 壁蹴りは行いません。
func (s *GameState) RotatePiece(clockwise bool) bool {
	if !s.canControl() {
		return false
	}
	trial := s.activePiece.Clone()
	if clockwise {
		trial.RotateClockwise()
	} else {
		trial.RotateCounterClockwise()
	}
	if !s.board.IsValidPosition(trial, 0, 0) {
		return false
	}
	s.activePiece = trial
	return true
}

// HardDrop は操作中のピースを落とせる最も低い位置まで移動させ、即座に固定します。
func (s *GameState) HardDrop() bool {
	if !s.canControl() {
		return false
	}
	distance := 0
	for s.board.IsValidPosition(s.activePiece, 0, distance+1) {
		distance++
	}
	if distance > 0 {
		s.activePiece.Move(0, distance)
	}
	s.lockPiece()
	return true
}

// PauseGame は一時停止状態を切り替えます。
func (s *GameState) PauseGame() {
	s.paused = !s.paused
	s.logger.Info().Bool("paused", s.paused).Msg("pause toggled")
}

// ResetGame はボードとピース、スコアなどを初期状態に戻し、最初の2つのピースを再生成します。
// セッションIDは維持されます。
func (s *GameState) ResetGame() {
	s.board.Clear()
	s.activePiece = nil
	s.nextPiece = nil
	s.score = 0
	s.level = 1
	s.linesCleared = 0
	s.gameOver = false
	s.paused = false
	s.err = nil
	s.fallInterval = GetFallInterval(s.level, s.cfg.Gameplay)
	s.fallTimer = 0
	s.games++

	s.logger.Info().Int("game", s.games).Msg("game reset")
	s.spawnNextPiece()
}

// SetDebugMode はデバッグモードを設定します。
func (s *GameState) SetDebugMode(on bool) {
	s.debugMode = on
	if !on {
		s.debugSelectedRow = -1
	}
	s.logger.Info().Bool("debug", on).Msg("debug mode changed")
}

// ToggleDebugMode はデバッグモードを切り替えます。
func (s *GameState) ToggleDebugMode() {
	s.SetDebugMode(!s.debugMode)
}

// IsDebugMode はデバッグモード中であればtrueを返します。
func (s *GameState) IsDebugMode() bool { return s.debugMode }

// Debugger はデバッグモード中のみデバッグ操作を返します。
func (s *GameState) Debugger() (*Debugger, bool) {
	if !s.debugMode {
		return nil, false
	}
	return &Debugger{state: s}, true
}
