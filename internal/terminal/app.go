package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	game "github.com/progate-hackathon-strawberry-flavor/gitris-core/internal/services/tetris"
)

// App はゲーム状態・画面・入力をつなぐメインループです。
// GameState は Run を実行しているゴルーチンだけが操作します。
type App struct {
	screen   tcell.Screen
	state    *game.GameState
	renderer *Renderer
	frame    time.Duration
	logger   zerolog.Logger
}

// NewApp は新しい App を返します。
//
// Parameters:
//
//	screen : 描画先の画面 (Run の中で初期化・終了します)
//	state  : 操作するゲーム状態
//	fps    : 1秒あたりの更新・描画回数
//	logger : 入力ログの出力先
func NewApp(screen tcell.Screen, state *game.GameState, fps int, logger zerolog.Logger) *App {
	if fps < 1 {
		fps = 60
	}
	return &App{
		screen:   screen,
		state:    state,
		renderer: NewRenderer(screen),
		frame:    time.Second / time.Duration(fps),
		logger:   logger,
	}
}

// Run は終了キーが押されるか ctx がキャンセルされるまでゲームを実行します。
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.EnableMouse()
	a.screen.HideCursor()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	a.logger.Info().Str("session_id", a.state.ID()).Msg("terminal started")
	last := time.Now()
	a.draw()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("terminal stopped by context")
			return nil

		case ev := <-events:
			if !a.handleEvent(ev) {
				a.logger.Info().Int("score", a.state.Score()).Msg("terminal quit")
				return nil
			}
			a.draw()

		case now := <-ticker.C:
			a.state.Update(now.Sub(last))
			last = now
			a.draw()
		}
	}
}

func (a *App) draw() {
	a.renderer.Draw(a.state.Snapshot())
}

// handleEvent はイベントを処理し、終了する場合は false を返します。
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			a.handleClick(x, y)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if IsQuitKey(ev) {
		return false
	}
	action, ok := KeyAction(ev)
	if !ok {
		return true
	}
	accepted := game.ApplyPlayerInput(a.state, action)
	a.logger.Debug().Stringer("action", action).Bool("accepted", accepted).Msg("input")
	return true
}

// handleClick はデバッグモード中にクリックされたマスの同色領域を消します。
func (a *App) handleClick(sx, sy int) {
	dbg, ok := a.state.Debugger()
	if !ok {
		return
	}
	x, y, ok := a.renderer.BoardCellAt(sx, sy)
	if !ok {
		return
	}
	if dbg.ClearRegionAt(x, y) {
		a.logger.Debug().Int("x", x).Int("y", y).Msg("region cleared")
	}
}
