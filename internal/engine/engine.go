// Package engine drives the tick loop: input, movement, collision scoring,
// config hot reload and frame rendering.
//
// An Engine is owned by a single goroutine. Front-ends either call Run, or
// call Start, Tick and Shutdown themselves from their own event loop.
package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tickrun/internal/config"
	"github.com/vovakirdan/tickrun/internal/core"
	"github.com/vovakirdan/tickrun/internal/events"
	"github.com/vovakirdan/tickrun/internal/locale"
	"github.com/vovakirdan/tickrun/internal/resource"
	"github.com/vovakirdan/tickrun/internal/storage"
)

// State is the lifecycle phase of an Engine.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Resource names held in the cache while running.
const (
	resourcePlayer   = "player"
	resourceObstacle = "obstacle"
)

// Engine is the runtime. Create it with New.
type Engine struct {
	opts   Options
	logger *log.Logger

	loader *config.Loader
	cache  *resource.Cache
	router *events.Router
	locale *locale.Table

	cfg       config.Config
	width     int
	height    int
	player    *core.Player
	obstacles []core.Rect

	spritePlayer   string
	spriteObstacle string

	score     int
	highScore int
	level     int
	targetFPS int
	ticks     int

	started bool
	running bool
	paused  bool
	stopped bool

	pending core.Action
	lastMod time.Time
}

// New creates an engine in the Uninitialized state.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		opts:   opts,
		logger: opts.Logger,
		loader: config.NewLoader(opts.Sink, opts.Logger),
		cache:  resource.NewCache(),
		router: events.NewRouter(opts.Sink, opts.Logger),
		locale: locale.New(opts.Logger),
		player: core.NewPlayer(PlayerName, config.DefaultStartX, config.DefaultStartY),
	}
}

// Start loads config, locale, resources and the high score, then enters Running.
func (e *Engine) Start() {
	e.started = true
	e.running = true
	e.stopped = false
	e.paused = false
	e.score = 0
	e.level = 1
	e.ticks = 0
	e.targetFPS = e.opts.TargetFPS
	e.pending = core.ActionNone
	e.player = core.NewPlayer(PlayerName, config.DefaultStartX, config.DefaultStartY)

	e.cfg = e.loader.Load(e.opts.ConfigPath)
	e.applyWorld(e.cfg)
	e.enforceValid("invalid; defaults")

	e.cache.Load(resourcePlayer, "P")
	e.cache.Load(resourceObstacle, "O")
	e.spritePlayer = e.cache.Get(resourcePlayer)
	e.spriteObstacle = e.cache.Get(resourceObstacle)
	if e.cfg.SpritePlayer != "" {
		e.spritePlayer = e.cfg.SpritePlayer
	}
	if e.cfg.SpriteObstacle != "" {
		e.spriteObstacle = e.cfg.SpriteObstacle
	}

	e.locale.Load(e.opts.LocaleDir, e.cfg.Lang)
	e.applyAudioMap(e.cfg.AudioMap)

	e.opts.Sink.Play("system", 1, "start")
	e.router.Emit("start", "")

	e.obstacles = append(e.obstacles, core.UnitRect(1, 1))

	high, err := e.opts.Scores.LoadHighScore()
	if err != nil {
		e.logger.Warn("cannot restore high score", "error", err)
		high = 0
	}
	e.highScore = high

	if mod, err := e.opts.Stat(e.opts.ConfigPath); err == nil {
		e.lastMod = mod
	} else {
		e.lastMod = time.Time{}
	}

	e.logger.Info("engine started",
		"width", e.width, "height", e.height,
		"obstacles", len(e.obstacles), "profile", e.cfg.Profile, "lang", e.locale.Lang(),
		"strings", e.locale.Len(), "routes", e.router.Len(), "resources", e.cache.Len())

	e.opts.Renderer.Render(e.locale.Get(locale.KeyStart))
	e.opts.Renderer.Render(e.locale.Get(locale.KeyVersion) + " " + e.opts.Version)
}

// applyWorld copies size, start position and obstacles from cfg.
func (e *Engine) applyWorld(cfg config.Config) {
	e.width = cfg.Width
	e.height = cfg.Height
	e.player.SetPosition(float64(cfg.StartX), float64(cfg.StartY))
	e.obstacles = append([]core.Rect(nil), cfg.Obstacles...)
}

// enforceValid resets size and start to safe values when the config fails validation.
func (e *Engine) enforceValid(notice string) {
	if config.Valid(e.cfg, e.logger) {
		return
	}
	e.width = config.DefaultWidth
	e.height = config.DefaultHeight
	e.player.SetPosition(config.DefaultStartX, config.DefaultStartY)
	e.opts.Sink.Play("config", 1, notice)
}

func (e *Engine) applyAudioMap(raw string) {
	for _, r := range config.ParseAudioMap(raw) {
		e.router.SetAudio(r.Event, r.Category, r.Priority)
	}
}

// HandleKey applies one key code. Unknown codes are ignored.
func (e *Engine) HandleKey(code byte) {
	action := core.ActionForKey(code)
	switch {
	case action == core.ActionPause:
		if e.running {
			e.paused = !e.paused
			e.logger.Debug("pause toggled", "paused", e.paused)
		}
	case action == core.ActionQuit:
		if e.running {
			e.logger.Info("quit requested", "tick", e.ticks)
		}
		e.running = false
	case action.IsMove():
		e.pending = action
	}
}

// Update advances the world by dt seconds.
// While paused nothing changes and queued movement is discarded.
func (e *Engine) Update(dt float64) {
	if !e.running {
		return
	}
	move := e.pending
	e.pending = core.ActionNone
	if e.paused {
		return
	}

	if dx, dy := move.Delta(); dx != 0 || dy != 0 {
		e.player.Move(dx, dy)
	}

	pr := e.player.Rect()
	for _, o := range e.obstacles {
		if !core.Collides(pr, o) {
			continue
		}
		e.score++
		if e.score > e.highScore {
			e.highScore = e.score
		}
		e.router.Emit("collision", "player")
		break
	}
}

// Tick runs one iteration of the loop.
func (e *Engine) Tick() {
	if !e.running {
		return
	}
	if code, ok := e.opts.Input.Poll(); ok {
		e.HandleKey(code)
	}
	e.Update(1.0 / float64(e.targetFPS))
	e.CheckReload()
	e.Draw()
	e.ticks++

	if e.opts.Sleep != nil {
		e.opts.Sleep(time.Second / time.Duration(e.targetFPS))
	}
}

// Done reports whether the loop should end.
func (e *Engine) Done() bool {
	if !e.running {
		return true
	}
	return e.opts.MaxTicks > 0 && e.ticks >= e.opts.MaxTicks
}

// Run starts the engine, ticks until it stops, the tick bound is hit or
// ctx is cancelled, then shuts down.
func (e *Engine) Run(ctx context.Context) {
	e.Start()
	defer e.Shutdown()

	for !e.Done() {
		select {
		case <-ctx.Done():
			e.logger.Info("run cancelled", "tick", e.ticks)
			return
		default:
		}
		e.Tick()
	}
}

// Shutdown releases resources, persists the high score and renders the end banner.
// Calling it more than once, or before Start, does nothing.
func (e *Engine) Shutdown() {
	if !e.started || e.stopped {
		return
	}

	e.cache.Release(resourcePlayer)
	e.cache.Release(resourceObstacle)

	if err := e.opts.Scores.SaveHighScore(e.highScore); err != nil {
		e.logger.Error("cannot persist high score", "error", err)
	}
	if rec, ok := e.opts.Scores.(storage.RunRecorder); ok {
		if err := rec.RecordRun(e.score); err != nil {
			e.logger.Error("cannot record run", "error", err)
		}
	}

	e.opts.Renderer.Render(e.locale.Get(locale.KeyEnd))

	e.running = false
	e.paused = false
	e.stopped = true
	e.logger.Info("engine stopped", "ticks", e.ticks, "score", e.score, "high", e.highScore,
		"resources", e.cache.Len())
}

// State returns the lifecycle phase.
func (e *Engine) State() State {
	switch {
	case !e.started:
		return StateUninitialized
	case e.stopped || !e.running:
		return StateStopped
	case e.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

func (e *Engine) Score() int     { return e.score }
func (e *Engine) HighScore() int { return e.highScore }
func (e *Engine) Level() int     { return e.level }
func (e *Engine) Paused() bool   { return e.paused }
func (e *Engine) Running() bool  { return e.running }
func (e *Engine) TargetFPS() int { return e.targetFPS }
func (e *Engine) Ticks() int     { return e.ticks }

func (e *Engine) Player() *core.Player      { return e.player }
func (e *Engine) Locale() *locale.Table     { return e.locale }
func (e *Engine) Router() *events.Router    { return e.router }
func (e *Engine) Cache() *resource.Cache    { return e.cache }
func (e *Engine) Config() config.Config     { return e.cfg }
func (e *Engine) Size() (width, height int) { return e.width, e.height }

// Obstacles returns a copy of the obstacle list in insertion order.
func (e *Engine) Obstacles() []core.Rect {
	return append([]core.Rect(nil), e.obstacles...)
}

// Sprites returns the player and obstacle sprite strings.
func (e *Engine) Sprites() (player, obstacle string) {
	return e.spritePlayer, e.spriteObstacle
}
