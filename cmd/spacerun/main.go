// cmd/spacerun/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-spacerun/pkg/audio"
	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/event"
	"github.com/opd-ai/go-spacerun/pkg/logging"
	"github.com/opd-ai/go-spacerun/pkg/render"
	engorender "github.com/opd-ai/go-spacerun/pkg/render/engo"
	"github.com/opd-ai/go-spacerun/pkg/render/terminal"
	"github.com/opd-ai/go-spacerun/pkg/spawn"
	"github.com/opd-ai/go-spacerun/pkg/trace"
)

// Renderer names accepted by -renderer
const (
	rendererTerminal = "terminal"
	rendererASCII    = "ascii"
	rendererEngo     = "engo"
	rendererNull     = "null"
)

type options struct {
	configPath string
	renderer   string
	tracePath  string
	logPath    string
	audio      bool
	seed       uint64
	fullscreen bool
}

func main() {
	var opts options
	createDefault := flag.Bool("default", false, "Create default configuration file")
	flag.StringVar(&opts.configPath, "config", "config.json", "Path to configuration file")
	flag.StringVar(&opts.renderer, "renderer", rendererTerminal, "Renderer type: 'terminal', 'ascii', 'engo' or 'null'")
	flag.StringVar(&opts.tracePath, "trace", "", "Record every frame to this msgpack file")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file")
	flag.BoolVar(&opts.audio, "audio", false, "Play sound effects")
	flag.Uint64Var(&opts.seed, "seed", 0, "Obstacle spawn seed (overrides config)")
	flag.BoolVar(&opts.fullscreen, "fullscreen", false, "Run in fullscreen mode (engo only)")
	flag.Parse()

	logger, closeLog, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spacerun: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx := logging.WithCorrelationID(context.Background(), "")

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", opts.configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", opts.configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, logger, opts)
	if err != nil {
		logger.Error(ctx, "Invalid configuration", err, "config_path", opts.configPath)
		fmt.Fprintf(os.Stderr, "spacerun: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Game stopped with error", err)
		fmt.Fprintf(os.Stderr, "spacerun: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the -log file when given. Without one the terminal
// client logs nowhere, since the screen owns the tty, and every other
// renderer logs to stderr.
func newLogger(opts options) (*logging.Logger, func(), error) {
	level := logging.LevelFromEnv()
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return logging.NewLoggerTo(f, level), func() { f.Close() }, nil
	}
	var w io.Writer = os.Stderr
	if opts.renderer == rendererTerminal {
		w = io.Discard
	}
	return logging.NewLoggerTo(w, level), func() {}, nil
}

func loadConfig(ctx context.Context, logger *logging.Logger, opts options) (*config.GameConfig, error) {
	var cfg *config.GameConfig
	if _, err := os.Stat(opts.configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", opts.configPath,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	if opts.seed != 0 {
		cfg.Spawn.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// controller lets clients be built before the game they drive
type controller struct {
	game *engine.Game
}

func (c *controller) Submit(intent engine.Intent) bool { return c.game.Submit(intent) }
func (c *controller) Restart() bool                    { return c.game.Restart() }

func run(ctx context.Context, cfg *config.GameConfig, opts options, logger *logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := event.NewEventBus()
	ctrl := &controller{}

	var display engine.Sink
	var front func(context.Context) error
	interactive := true

	switch opts.renderer {
	case rendererTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
		client := terminal.New(screen, ctrl, cfg.Field, logger)
		display = client
		front = client.Run
	case rendererEngo:
		d := engorender.NewDisplay()
		scene := engorender.NewGameScene(ctx, d, ctrl, cfg.Field, logger)
		display = d
		front = func(ctx context.Context) error {
			go func() {
				<-ctx.Done()
				engo.Exit()
			}()
			engo.Run(engo.RunOptions{
				Title:      "Spacerun",
				Width:      int(cfg.Field.Width),
				Height:     int(cfg.Field.Height),
				Fullscreen: opts.fullscreen,
				VSync:      true,
			}, scene)
			return nil
		}
	case rendererASCII:
		display = render.NewFrameSink(render.NewASCIIRenderer(os.Stdout, 80, 24, cfg.Field.Width, cfg.Field.Height))
		interactive = false
	case rendererNull:
		display = render.NewFrameSink(render.NewNullRenderer(logger))
		interactive = false
	default:
		return fmt.Errorf("unknown renderer %q", opts.renderer)
	}

	sinks := engine.MultiSink{
		render.NewBreakerSink(display, render.DefaultBreakerSettings(opts.renderer), logger),
	}

	if opts.tracePath != "" {
		recorder, err := trace.Create(opts.tracePath)
		if err != nil {
			return err
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				logger.Error(ctx, "Failed to close trace", err, "trace_path", opts.tracePath)
			}
		}()
		sinks = append(sinks, render.NewBreakerSink(recorder, render.DefaultBreakerSettings("trace"), logger))
	}

	if opts.audio {
		player, err := audio.NewSpeakerPlayer(logger)
		if err != nil {
			logger.Warn(ctx, "Audio disabled", "error", err.Error())
		} else {
			defer player.Close()
			cues := audio.Attach(bus, player)
			defer cues.Detach()
		}
	}

	// Without a way to restart, one game is the whole run
	if !interactive {
		sub := bus.Subscribe(event.GameEnded, func(event.Event) { cancel() })
		defer sub.Cancel()
	}

	seed := cfg.Spawn.Seed
	game := engine.NewGame(cfg, sinks,
		engine.WithLogger(logger),
		engine.WithEventBus(bus),
		engine.WithFeed(func() engine.Feed {
			spawnCfg := cfg.Spawn
			spawnCfg.Seed = seed
			seed++
			return spawn.NewField(spawnCfg, cfg.Field)
		}),
	)
	ctrl.game = game

	logger.Info(ctx, "Starting game",
		"renderer", opts.renderer,
		"field_width", cfg.Field.Width,
		"field_height", cfg.Field.Height,
		"seed", cfg.Spawn.Seed,
	)

	if front == nil {
		return game.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- game.Run(ctx) }()

	frontErr := front(ctx)
	cancel()
	gameErr := <-errCh

	logger.Info(ctx, "Game closed", "sessions", game.Sessions())
	if frontErr != nil {
		return frontErr
	}
	if errors.Is(gameErr, context.Canceled) {
		return nil
	}
	return gameErr
}
