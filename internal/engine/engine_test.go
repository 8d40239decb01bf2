package engine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tickrun/internal/audio"
	"github.com/vovakirdan/tickrun/internal/core"
)

type frames struct {
	out []string
}

func (f *frames) Render(frame string) { f.out = append(f.out, frame) }

type scriptInput struct {
	keys []byte
}

func (s *scriptInput) Poll() (byte, bool) {
	if len(s.keys) == 0 {
		return 0, false
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, true
}

type memStore struct {
	high    int
	loadErr error
	saved   []int
	runs    []int
}

func (m *memStore) LoadHighScore() (int, error) { return m.high, m.loadErr }
func (m *memStore) SaveHighScore(high int) error {
	m.saved = append(m.saved, high)
	return nil
}
func (m *memStore) RecordRun(score int) error {
	m.runs = append(m.runs, score)
	return nil
}

type fakeStat struct {
	mod time.Time
	err error
}

func (f *fakeStat) stat(string) (time.Time, error) { return f.mod, f.err }

type harness struct {
	path   string
	sink   *audio.Recorder
	frames *frames
	input  *scriptInput
	store  *memStore
	stat   *fakeStat
	engine *Engine
}

func newHarness(t *testing.T, cfg string) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		path:   filepath.Join(dir, "config.toml"),
		sink:   &audio.Recorder{},
		frames: &frames{},
		input:  &scriptInput{},
		store:  &memStore{},
		stat:   &fakeStat{mod: time.Unix(1000, 0)},
	}
	if cfg != "" {
		h.write(t, cfg)
	}
	h.engine = New(Options{
		ConfigPath: h.path,
		Sink:       h.sink,
		Renderer:   h.frames,
		Input:      h.input,
		Scores:     h.store,
		Stat:       h.stat.stat,
		Version:    "v1",
	})
	return h
}

func (h *harness) write(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(h.path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func (h *harness) played(category string, priority int, message string) bool {
	for _, c := range h.sink.Calls() {
		if c.Category == category && c.Priority == priority && c.Message == message {
			return true
		}
	}
	return false
}

func TestStartWithoutConfig(t *testing.T) {
	h := newHarness(t, "")
	e := h.engine

	if e.State() != StateUninitialized {
		t.Errorf("State() = %v before Start, expected uninitialized", e.State())
	}
	e.Start()

	if e.State() != StateRunning {
		t.Errorf("State() = %v, expected running", e.State())
	}
	if w, hgt := e.Size(); w != 40 || hgt != 12 {
		t.Errorf("Size() = (%d, %d), expected (40, 12)", w, hgt)
	}
	if x, y := e.Player().Position(); x != 2 || y != 2 {
		t.Errorf("Player().Position() = (%v, %v), expected (2, 2)", x, y)
	}
	if e.Player().Name != PlayerName {
		t.Errorf("Player().Name = %q, expected %q", e.Player().Name, PlayerName)
	}
	if got := e.Obstacles(); !reflect.DeepEqual(got, []core.Rect{core.UnitRect(1, 1)}) {
		t.Errorf("Obstacles() = %v, expected only the fixed (1,1) obstacle", got)
	}
	if e.Score() != 0 || e.Level() != 1 || e.TargetFPS() != 60 {
		t.Errorf("score/level/fps = %d/%d/%d, expected 0/1/60", e.Score(), e.Level(), e.TargetFPS())
	}
	if p, o := e.Sprites(); p != "P" || o != "O" {
		t.Errorf("Sprites() = (%q, %q), expected (P, O)", p, o)
	}
	if e.Cache().Refs("player") != 1 || e.Cache().Refs("obstacle") != 1 {
		t.Error("Start should hold one reference to each sprite resource")
	}
	if !h.played("system", 1, "start") {
		t.Error("expected system start notice")
	}
	if !h.played("events", 5, "") {
		t.Error("expected start event on the default route")
	}

	expected := []string{"--- Start ---", "Versión actual: v1"}
	if !reflect.DeepEqual(h.frames.out, expected) {
		t.Errorf("banner = %q, expected %q", h.frames.out, expected)
	}
}

func TestStartAppliesConfig(t *testing.T) {
	h := newHarness(t, "width=30\nheight=10\nplayer_x=4\nplayer_y=3\nobstacles=7,7\nsprite_player=@\naudio_map=start:system:3\n")
	e := h.engine
	e.Start()

	if w, hgt := e.Size(); w != 30 || hgt != 10 {
		t.Errorf("Size() = (%d, %d), expected (30, 10)", w, hgt)
	}
	if x, y := e.Player().Position(); x != 4 || y != 3 {
		t.Errorf("Player().Position() = (%v, %v), expected (4, 3)", x, y)
	}
	expected := []core.Rect{core.UnitRect(7, 7), core.UnitRect(1, 1)}
	if got := e.Obstacles(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Obstacles() = %v, expected %v", got, expected)
	}
	if p, o := e.Sprites(); p != "@" || o != "O" {
		t.Errorf("Sprites() = (%q, %q), expected (@, O)", p, o)
	}
	if !h.played("system", 3, "") {
		t.Error("start event should follow the configured route")
	}
}

func TestStartInvalidConfigFallsBack(t *testing.T) {
	h := newHarness(t, "width=5\nheight=8\nplayer_x=1\nplayer_y=1\n")
	e := h.engine
	e.Start()

	if w, hgt := e.Size(); w != 40 || hgt != 12 {
		t.Errorf("Size() = (%d, %d), expected safe (40, 12)", w, hgt)
	}
	if x, y := e.Player().Position(); x != 2 || y != 2 {
		t.Errorf("Player().Position() = (%v, %v), expected (2, 2)", x, y)
	}
	if !h.played("config", 1, "invalid; defaults") {
		t.Error("expected invalid-config notice")
	}
	if e.State() != StateRunning {
		t.Errorf("State() = %v, expected running after fallback", e.State())
	}
}

func TestStartRestoresHighScore(t *testing.T) {
	tests := []struct {
		name     string
		store    memStore
		expected int
	}{
		{"stored value", memStore{high: 7}, 7},
		{"load error", memStore{high: 9, loadErr: errors.New("boom")}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, "")
			*h.store = tc.store
			h.engine.Start()
			if got := h.engine.HighScore(); got != tc.expected {
				t.Errorf("HighScore() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestOverlappingObstaclesScoreOnce(t *testing.T) {
	h := newHarness(t, "obstacles=3,2 3,2\naudio_map=collision:combat:9\n")
	e := h.engine
	e.Start()

	e.HandleKey('d')
	e.Update(1.0 / 60)

	if x, y := e.Player().Position(); x != 3 || y != 2 {
		t.Fatalf("Player().Position() = (%v, %v), expected (3, 2)", x, y)
	}
	if e.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", e.Score())
	}
	if e.HighScore() != 1 {
		t.Errorf("HighScore() = %d, expected 1", e.HighScore())
	}
	if n := h.sink.Count("combat"); n != 1 {
		t.Errorf("collision emissions = %d, expected 1", n)
	}
	if !h.played("combat", 9, "player") {
		t.Error("collision should play through its configured route")
	}

	// Still overlapping: scores again on the next update.
	e.Update(1.0 / 60)
	if e.Score() != 2 {
		t.Errorf("Score() = %d after second update, expected 2", e.Score())
	}
}

func TestNoCollisionNoScore(t *testing.T) {
	h := newHarness(t, "obstacles=10,10\n")
	e := h.engine
	e.Start()

	e.Update(1.0 / 60)
	if e.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", e.Score())
	}
	if n := h.sink.Count("events"); n != 1 {
		t.Errorf("events emissions = %d, expected only the start event", n)
	}
}

func TestHighScoreKeepsStoredBest(t *testing.T) {
	h := newHarness(t, "obstacles=2,2\n")
	h.store.high = 5
	e := h.engine
	e.Start()

	e.Update(1.0 / 60)
	if e.Score() != 1 || e.HighScore() != 5 {
		t.Errorf("score/high = %d/%d, expected 1/5", e.Score(), e.HighScore())
	}
}

func TestMovementKeys(t *testing.T) {
	tests := []struct {
		key    byte
		dx, dy float64
	}{
		{'w', 0, -1},
		{'s', 0, 1},
		{'a', -1, 0},
		{'d', 1, 0},
		{'D', 1, 0},
		{'x', 0, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			h := newHarness(t, "player_x=5\nplayer_y=5\n")
			e := h.engine
			e.Start()
			e.HandleKey(tc.key)
			e.Update(1.0 / 60)

			x, y := e.Player().Position()
			if x != 5+tc.dx || y != 5+tc.dy {
				t.Errorf("Position() = (%v, %v), expected (%v, %v)", x, y, 5+tc.dx, 5+tc.dy)
			}
		})
	}
}

func TestPauseToggle(t *testing.T) {
	h := newHarness(t, "")
	e := h.engine
	e.Start()

	e.HandleKey('p')
	if !e.Paused() || e.State() != StatePaused {
		t.Fatalf("State() = %v, expected paused", e.State())
	}

	e.HandleKey('d')
	e.Update(1.0 / 60)
	if x, _ := e.Player().Position(); x != 2 {
		t.Errorf("player moved to x=%v while paused", x)
	}

	e.HandleKey('p')
	if e.Paused() || e.State() != StateRunning {
		t.Fatalf("State() = %v, expected running", e.State())
	}

	// The move queued while paused was discarded.
	e.Update(1.0 / 60)
	if x, _ := e.Player().Position(); x != 2 {
		t.Errorf("discarded move applied after resume, x=%v", x)
	}
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t, "")
	e := h.engine
	e.Start()

	e.HandleKey('q')
	if e.Running() {
		t.Error("Running() = true after quit")
	}
	if !e.Done() {
		t.Error("Done() = false after quit")
	}
}

func TestFrame(t *testing.T) {
	h := newHarness(t, "width=10\nheight=5\nobstacles=5,1\n")
	h.store.high = 3
	e := h.engine
	e.Start()

	expected := strings.Join([]string{
		"..........",
		".O...O....",
		"..P.......",
		"..........",
		"..........",
		"Score 0 Level 1 High 3",
	}, "\n")

	if got := e.Frame(); got != expected {
		t.Errorf("Frame() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestFrameUsesSpriteGlyphs(t *testing.T) {
	h := newHarness(t, "width=10\nheight=5\nsprite_player=@@\nsprite_obstacle=█\n")
	e := h.engine
	e.Start()

	rows := strings.Split(e.Frame(), "\n")
	if rows[1] != ".█........" {
		t.Errorf("row 1 = %q, expected obstacle glyph", rows[1])
	}
	if rows[2] != "..@......." {
		t.Errorf("row 2 = %q, expected first rune of player sprite", rows[2])
	}
}

func TestFramePlayerDrawnOverObstacle(t *testing.T) {
	h := newHarness(t, "width=10\nheight=5\nplayer_x=1\nplayer_y=1\n")
	e := h.engine
	e.Start()

	if row := strings.Split(e.Frame(), "\n")[1]; row != ".P........" {
		t.Errorf("row 1 = %q, expected player on top", row)
	}
}

func TestFrameOutOfBoundsIgnored(t *testing.T) {
	h := newHarness(t, "width=10\nheight=5\nplayer_x=0\nplayer_y=0\n")
	e := h.engine
	e.Start()

	e.HandleKey('w')
	e.Update(1.0 / 60)
	if strings.ContainsRune(e.Frame(), 'P') {
		t.Error("off-grid player should not be drawn")
	}
}

func TestCheckReload(t *testing.T) {
	h := newHarness(t, "width=20\nheight=10\nobstacles=3,3\nlang=es\n")
	e := h.engine
	e.Start()

	if e.CheckReload() {
		t.Fatal("CheckReload() = true without a newer mod time")
	}

	h.write(t, "width=30\nheight=8\nplayer_x=6\nplayer_y=4\nobstacles=9,2\nsprite_player=@\nlang=en\naudio_map=collision:combat:8\n")
	h.stat.mod = h.stat.mod.Add(time.Second)

	if !e.CheckReload() {
		t.Fatal("CheckReload() = false after mod time advanced")
	}
	if w, hgt := e.Size(); w != 30 || hgt != 8 {
		t.Errorf("Size() = (%d, %d), expected (30, 8)", w, hgt)
	}
	if x, y := e.Player().Position(); x != 6 || y != 4 {
		t.Errorf("Player().Position() = (%v, %v), expected (6, 4)", x, y)
	}
	if got := e.Obstacles(); !reflect.DeepEqual(got, []core.Rect{core.UnitRect(9, 2)}) {
		t.Errorf("Obstacles() = %v, expected reloaded list only", got)
	}
	if p, o := e.Sprites(); p != "@" || o != "O" {
		t.Errorf("Sprites() = (%q, %q), expected (@, O)", p, o)
	}
	if e.Locale().Lang() != "en" {
		t.Errorf("Locale().Lang() = %q, expected en", e.Locale().Lang())
	}
	if rt := e.Router().Route("collision"); rt.Category != "combat" || rt.Priority != 8 {
		t.Errorf("Route(collision) = %+v, expected combat/8", rt)
	}
	if !h.played("config", 2, "reload") {
		t.Error("expected reload notice")
	}

	if e.CheckReload() {
		t.Error("CheckReload() = true twice for the same mod time")
	}
}

func TestCheckReloadKeepsSpritesWhenEmpty(t *testing.T) {
	h := newHarness(t, "sprite_player=@\n")
	e := h.engine
	e.Start()

	h.write(t, "width=20\n")
	h.stat.mod = h.stat.mod.Add(time.Second)
	e.CheckReload()

	if p, _ := e.Sprites(); p != "@" {
		t.Errorf("player sprite = %q, expected it kept", p)
	}
}

func TestCheckReloadInvalid(t *testing.T) {
	h := newHarness(t, "width=20\nheight=10\n")
	e := h.engine
	e.Start()

	h.write(t, "width=500\n")
	h.stat.mod = h.stat.mod.Add(time.Second)

	if !e.CheckReload() {
		t.Fatal("CheckReload() = false, expected reload")
	}
	if w, hgt := e.Size(); w != 40 || hgt != 12 {
		t.Errorf("Size() = (%d, %d), expected safe (40, 12)", w, hgt)
	}
	if !h.played("config", 1, "invalid reload; defaults") {
		t.Error("expected invalid-reload notice")
	}
	if !e.Running() {
		t.Error("an invalid reload must not stop the engine")
	}
}

func TestCheckReloadStatError(t *testing.T) {
	h := newHarness(t, "")
	e := h.engine
	e.Start()

	h.stat.err = errors.New("gone")
	h.stat.mod = h.stat.mod.Add(time.Hour)
	if e.CheckReload() {
		t.Error("CheckReload() = true on stat error")
	}
}

func TestRunBoundedTicks(t *testing.T) {
	h := newHarness(t, "obstacles=3,2\n")
	var slept []time.Duration
	e := New(Options{
		ConfigPath: h.path,
		Sink:       h.sink,
		Renderer:   h.frames,
		Input:      &scriptInput{keys: []byte{'d'}},
		Scores:     h.store,
		Stat:       h.stat.stat,
		Sleep:      func(d time.Duration) { slept = append(slept, d) },
		MaxTicks:   5,
	})

	e.Run(context.Background())

	if e.Ticks() != 5 {
		t.Errorf("Ticks() = %d, expected 5", e.Ticks())
	}
	if len(slept) != 5 {
		t.Fatalf("Sleep called %d times, expected 5", len(slept))
	}
	if slept[0] != time.Second/60 {
		t.Errorf("Sleep(%v), expected %v", slept[0], time.Second/60)
	}
	if e.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", e.State())
	}

	// 2 banner lines, 5 frames, 1 end line.
	if len(h.frames.out) != 8 {
		t.Fatalf("rendered %d blocks, expected 8", len(h.frames.out))
	}
	if last := h.frames.out[7]; last != "--- Fin Ejecución ---" {
		t.Errorf("last render = %q, expected end banner", last)
	}
	if !strings.HasSuffix(h.frames.out[6], "Score 5 Level 1 High 5") {
		t.Errorf("final frame status = %q", h.frames.out[6])
	}

	if !reflect.DeepEqual(h.store.saved, []int{5}) {
		t.Errorf("saved high scores = %v, expected [5]", h.store.saved)
	}
	if !reflect.DeepEqual(h.store.runs, []int{5}) {
		t.Errorf("recorded runs = %v, expected [5]", h.store.runs)
	}
}

func TestRunDefaultTickBound(t *testing.T) {
	h := newHarness(t, "")
	h.engine.Run(context.Background())

	if h.engine.Ticks() != DefaultMaxTicks {
		t.Errorf("Ticks() = %d, expected %d", h.engine.Ticks(), DefaultMaxTicks)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	h := newHarness(t, "")
	h.input.keys = []byte{'a', 'q', 'd'}
	h.engine.Run(context.Background())

	if h.engine.Ticks() != 2 {
		t.Errorf("Ticks() = %d, expected 2", h.engine.Ticks())
	}
	if x, _ := h.engine.Player().Position(); x != 1 {
		t.Errorf("player x = %v, expected 1", x)
	}
}

func TestRunCancelled(t *testing.T) {
	h := newHarness(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h.engine.Run(ctx)

	if h.engine.Ticks() != 0 {
		t.Errorf("Ticks() = %d, expected 0", h.engine.Ticks())
	}
	if h.engine.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", h.engine.State())
	}
	if len(h.store.saved) != 1 {
		t.Errorf("high score saved %d times, expected 1", len(h.store.saved))
	}
}

func TestShutdown(t *testing.T) {
	h := newHarness(t, "")
	e := h.engine

	e.Shutdown()
	if len(h.store.saved) != 0 {
		t.Error("Shutdown before Start should do nothing")
	}

	e.Start()
	e.Shutdown()
	e.Shutdown()

	if e.Cache().Len() != 0 {
		t.Errorf("Cache().Len() = %d, expected 0 after shutdown", e.Cache().Len())
	}
	if len(h.store.saved) != 1 {
		t.Errorf("high score saved %d times, expected 1", len(h.store.saved))
	}
	if e.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", e.State())
	}
}

func TestLifecycleLogsCounts(t *testing.T) {
	var buf bytes.Buffer
	h := newHarness(t, "audio_map = hit:sfx:2;start:ui:1\n")
	e := New(Options{
		ConfigPath: h.path,
		Sink:       h.sink,
		Renderer:   h.frames,
		Input:      h.input,
		Scores:     h.store,
		Stat:       h.stat.stat,
		Logger:     log.New(&buf),
	})

	e.Start()
	started := buf.String()
	for _, want := range []string{"engine started", "routes=2", "resources=2"} {
		if !strings.Contains(started, want) {
			t.Errorf("start log = %q, expected it to contain %q", started, want)
		}
	}

	buf.Reset()
	e.Shutdown()
	stopped := buf.String()
	for _, want := range []string{"engine stopped", "resources=0"} {
		if !strings.Contains(stopped, want) {
			t.Errorf("stop log = %q, expected it to contain %q", stopped, want)
		}
	}
}

func TestTickAfterStopIsNoop(t *testing.T) {
	h := newHarness(t, "")
	e := h.engine
	e.Start()
	e.Shutdown()

	rendered := len(h.frames.out)
	e.Tick()
	if e.Ticks() != 0 || len(h.frames.out) != rendered {
		t.Error("Tick() after Shutdown should do nothing")
	}
}

func TestLocaleFromConfigDir(t *testing.T) {
	h := newHarness(t, "lang=en\n")
	locale := filepath.Join(filepath.Dir(h.path), "strings_en.txt")
	if err := os.WriteFile(locale, []byte("start_label = >> go\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	h.engine.Start()
	if h.frames.out[0] != ">> go" {
		t.Errorf("start banner = %q, expected localized", h.frames.out[0])
	}
}
