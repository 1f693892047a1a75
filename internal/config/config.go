// Package config はゲーム全体の設定値をまとめます。
// 設定は起動時に一度だけ構築され、値として各コンポーネントに渡されます。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig は設定値が不正な場合のエラーです。
var ErrInvalidConfig = errors.New("invalid config")

// BoardConfig はボードの大きさです。
type BoardConfig struct {
	Width  int
	Height int
}

// GameplayConfig は落下速度・レベル・スコアに関する定数です。
type GameplayConfig struct {
	BaseFallInterval time.Duration // レベル1の自動落下間隔
	SpeedIncrease    time.Duration // レベルが1上がるごとに短縮される時間
	MinFallInterval  time.Duration // 自動落下間隔の下限
	LinesPerLevel    int           // レベルアップに必要なライン数
	SingleLineScore  int
	DoubleLineScore  int
	TripleLineScore  int
	TetrisScore      int
}

// Config はアプリケーション全体の設定です。
type Config struct {
	Board    BoardConfig
	Gameplay GameplayConfig

	Seed     int64  // ピース生成の乱数シード (0なら時刻から生成)
	Debug    bool   // デバッグモードで開始するか
	FPS      int    // 端末フロントエンドの描画レート
	LogLevel string // zerologのレベル名
	LogFile  string // ログ出力先 (空ならログを捨てる)
}

// Default は標準的なテトリスの設定を返します。
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Gameplay: GameplayConfig{
			BaseFallInterval: time.Second,
			SpeedIncrease:    100 * time.Millisecond,
			MinFallInterval:  50 * time.Millisecond,
			LinesPerLevel:    10,
			SingleLineScore:  100,
			DoubleLineScore:  300,
			TripleLineScore:  500,
			TetrisScore:      800,
		},
		FPS:      60,
		LogLevel: "info",
	}
}

// Load は .env ファイル（存在すれば）と TETRIS_* 環境変数から設定を読み込みます。
// 環境変数が設定されていない項目は Default の値になります。
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Default()
	var errs []error
	intVar := func(name string, dst *int) {
		if v, ok := os.LookupEnv(name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	durationVar := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(name); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = d
		}
	}

	intVar("TETRIS_BOARD_WIDTH", &cfg.Board.Width)
	intVar("TETRIS_BOARD_HEIGHT", &cfg.Board.Height)
	durationVar("TETRIS_BASE_FALL_INTERVAL", &cfg.Gameplay.BaseFallInterval)
	durationVar("TETRIS_SPEED_INCREASE", &cfg.Gameplay.SpeedIncrease)
	durationVar("TETRIS_MIN_FALL_INTERVAL", &cfg.Gameplay.MinFallInterval)
	intVar("TETRIS_LINES_PER_LEVEL", &cfg.Gameplay.LinesPerLevel)
	intVar("TETRIS_FPS", &cfg.FPS)

	if v, ok := os.LookupEnv("TETRIS_SEED"); ok {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("TETRIS_SEED: %w", err))
		} else {
			cfg.Seed = seed
		}
	}
	if v, ok := os.LookupEnv("TETRIS_DEBUG"); ok {
		debug, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("TETRIS_DEBUG: %w", err))
		} else {
			cfg.Debug = debug
		}
	}
	if v := os.Getenv("TETRIS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TETRIS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate は設定値の整合性をチェックします。
func (c Config) Validate() error {
	var errs []error
	// 出現列 (幅/2) から横向きのIミノが収まる最小幅
	if c.Board.Width < 8 {
		errs = append(errs, fmt.Errorf("board width %d is smaller than 8", c.Board.Width))
	}
	if c.Board.Height < 4 {
		errs = append(errs, fmt.Errorf("board height %d is smaller than 4", c.Board.Height))
	}
	g := c.Gameplay
	if g.BaseFallInterval <= 0 {
		errs = append(errs, fmt.Errorf("base fall interval must be positive, got %s", g.BaseFallInterval))
	}
	if g.MinFallInterval <= 0 {
		errs = append(errs, fmt.Errorf("min fall interval must be positive, got %s", g.MinFallInterval))
	}
	if g.MinFallInterval > g.BaseFallInterval {
		errs = append(errs, fmt.Errorf("min fall interval %s exceeds base %s", g.MinFallInterval, g.BaseFallInterval))
	}
	if g.SpeedIncrease < 0 {
		errs = append(errs, fmt.Errorf("speed increase must not be negative, got %s", g.SpeedIncrease))
	}
	if g.LinesPerLevel < 1 {
		errs = append(errs, fmt.Errorf("lines per level must be at least 1, got %d", g.LinesPerLevel))
	}
	if g.SingleLineScore < 0 || g.DoubleLineScore < 0 || g.TripleLineScore < 0 || g.TetrisScore < 0 {
		errs = append(errs, errors.New("line clear scores must not be negative"))
	}
	if c.FPS < 1 {
		errs = append(errs, fmt.Errorf("fps must be at least 1, got %d", c.FPS))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
