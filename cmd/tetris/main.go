package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/config"
	game "github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/services/tetris"
	"github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/terminal"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tetris: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// .env と TETRIS_* 環境変数を読み込み、コマンドラインフラグで上書きする
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := parseFlags(&cfg, args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}

	state := game.NewGameState(cfg, game.WithLogger(logger))
	app := terminal.NewApp(screen, state, cfg.FPS, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("terminal exited")
		return err
	}
	fmt.Printf("score %d / level %d / lines %d\n", state.Score(), state.Level(), state.LinesCleared())
	return nil
}

func parseFlags(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tetris", flag.ContinueOnError)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "start with debug mode enabled")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for the piece bag (0 = time based)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	return fs.Parse(args)
}

// newLogger はログファイルに出力する zerolog.Logger を作ります。
// 画面は tcell が使うため、path が空の場合はログを捨てます。
func newLogger(level, path string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("%w: log level: %w", config.ErrInvalidConfig, err)
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), closeFn, nil
}
