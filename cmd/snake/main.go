package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snakeegg/internal/app"
	"snakeegg/internal/domain"
	"snakeegg/internal/ui/graphics"
	"snakeegg/internal/ui/graphics/screens"
	"snakeegg/internal/ui/graphics/sound"
	"snakeegg/internal/ui/terminal"
	termsound "snakeegg/internal/ui/terminal/sound"
	"snakeegg/internal/ui/types"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

var (
	uiFlag     = flag.String("ui", "window", "frontend: window or terminal")
	widthFlag  = flag.Int("width", 20, "grid width in cells")
	heightFlag = flag.Int("height", 20, "grid height in cells")
	pitchFlag  = flag.Int("pitch", 20, "cell pitch in pixels")
	delayFlag  = flag.Duration("delay", 150*time.Millisecond, "delay between ticks")
	seedFlag   = flag.Uint64("seed", 0, "food RNG seed, 0 for time based")
	muteFlag   = flag.Bool("mute", false, "disable sound")
	logFlag    = flag.String("log", "", "log file (terminal frontend logs nowhere by default)")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	if *uiFlag != "window" && *uiFlag != "terminal" {
		log.Fatalf("Unknown frontend %q, want window or terminal", *uiFlag)
	}

	cfg := gameConfigFromFlags()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Bad flags: %v", err)
	}

	if err := setupLogging(*uiFlag, *logFlag); err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}

	application, err := app.NewApp(app.Config{Game: cfg})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer application.Stop()

	if *uiFlag == "terminal" {
		err = runTerminal(ctx, application)
	} else {
		err = runWindow(ctx, cancel, application, cfg)
	}

	if err != nil {
		log.Printf("Exiting: %v", err)
		application.Stop()
		os.Exit(1)
	}
}

func gameConfigFromFlags() *domain.GameConfig {
	cfg := domain.DefaultGameConfig()
	cfg.Width = *widthFlag
	cfg.Height = *heightFlag
	cfg.CellPitch = *pitchFlag
	cfg.TickDelayMs = int(*delayFlag / time.Millisecond)
	cfg.Seed = *seedFlag
	cfg.Centre()
	return cfg
}

// setupLogging keeps log lines off the terminal the game is drawn on.
func setupLogging(ui, path string) error {
	if path == "" {
		if ui == "terminal" {
			log.SetOutput(io.Discard)
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}

// runWindow blocks in ebiten's loop on the main goroutine; the app and UI
// event pumps run beside it.
func runWindow(ctx context.Context, cancel context.CancelFunc, application *app.App, cfg *domain.GameConfig) error {
	window := graphics.NewWindow(sound.NewPlayer(*muteFlag))
	window.SetConfig(cfg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		handleAppEvents(gctx, application, window)
		return nil
	})

	g.Go(func() error {
		handleUIEvents(gctx, cancel, application, window)
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-application.Done():
		}
		log.Println("Shutting down...")
		window.Close()
		return nil
	})

	runErr := window.Run()
	cancel()

	if err := g.Wait(); err != nil {
		return err
	}
	return runErr
}

func handleAppEvents(ctx context.Context, application *app.App, window *graphics.Window) {
	for {
		var event app.AppEvent
		select {
		case <-ctx.Done():
			return
		case event = <-application.Events():
		}

		switch event.Type {
		case app.AppEventGameStarted:
			p := event.Payload.(app.StartedPayload)
			window.ShowGame(p.Session, p.Best)

		case app.AppEventScoreChanged:
			p := event.Payload.(app.ScorePayload)
			window.SetScore(p.Score, p.Best, p.Length)

		case app.AppEventGameOver:
			p := event.Payload.(app.GameOverPayload)
			window.ShowGameOver(screens.GameOverResult{
				Score:   p.Score,
				Best:    p.Best,
				Length:  p.Length,
				Reason:  p.Reason,
				NewBest: p.NewBest,
			})

		case app.AppEventGameClosed:
			window.ShowMenu()

		case app.AppEventError:
			p := event.Payload.(app.ErrorPayload)
			window.SetError(p.Message)
		}
	}
}

func handleUIEvents(ctx context.Context, cancel context.CancelFunc, application *app.App, window *graphics.Window) {
	game := window.Game()

	for {
		var event types.UIEvent
		select {
		case <-ctx.Done():
			return
		case event = <-window.Events():
		}

		switch event.Type {
		case types.UIEventStartGame:
			sendInput(ctx, application, app.InputEvent{
				Type:    app.InputNewGame,
				Payload: app.NewGameParams{Surface: game.Canvas(), Input: game.Keyboard()},
			})

		case types.UIEventRestartGame:
			sendInput(ctx, application, app.InputEvent{Type: app.InputRestart})

		case types.UIEventCloseGame:
			sendInput(ctx, application, app.InputEvent{Type: app.InputClose})

		case types.UIEventApplyConfig:
			data := event.Payload.(types.ApplyConfigData)
			if err := application.Configure(data.Config); err != nil {
				log.Printf("Failed to apply settings: %v", err)
				window.SetError(err.Error())
				continue
			}
			window.SetConfig(data.Config)
			window.ShowMenu()
			window.SetMessage("Settings applied")
			log.Printf("Settings applied: %dx%d, pitch=%d, delay=%v",
				data.Config.Width, data.Config.Height, data.Config.CellPitch, data.Config.TickDelay())

		case types.UIEventQuit:
			sendInput(ctx, application, app.InputEvent{Type: app.InputQuit})
			cancel()
			return
		}
	}
}

func sendInput(ctx context.Context, application *app.App, event app.InputEvent) {
	select {
	case application.Input() <- event:
	case <-ctx.Done():
	}
}

func runTerminal(ctx context.Context, application *app.App) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	beeper := termsound.NewManager(*muteFlag)
	if err := beeper.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v", err)
	}
	defer beeper.Close()

	term := terminal.New(screen, application, beeper)
	return term.Run(ctx)
}
