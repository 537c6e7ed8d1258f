// Package app wires the formula engine, input handling, configuration,
// and the terminal screen into a running editor session.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/mathstorm/internal/codec"
	"github.com/dshills/mathstorm/internal/config"
	"github.com/dshills/mathstorm/internal/engine"
	"github.com/dshills/mathstorm/internal/input"
	"github.com/dshills/mathstorm/internal/render/latex"
	"github.com/dshills/mathstorm/internal/tui"
)

// ErrQuit signals a normal user-requested exit.
var ErrQuit = errors.New("quit")

// Options configures a session.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// DocPath is the formula document to open and save. A missing file
	// starts an empty document at that path.
	DocPath string

	// WatchConfig enables live reload of the config file.
	WatchConfig bool
}

// App is one editor session.
type App struct {
	id      string
	opts    Options
	eng     *engine.Engine
	handler *input.Handler
	screen  *tui.Screen
	watcher *config.Watcher

	mu  sync.Mutex
	cfg config.Config

	status string
}

// New creates a session: loads configuration, creates the engine, and
// opens the document if one exists at DocPath.
func New(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		id:      uuid.New().String(),
		opts:    opts,
		cfg:     cfg,
		eng:     engine.New(engine.WithMaxUndo(cfg.MaxUndo)),
		handler: input.NewHandler(nil),
	}

	if opts.DocPath != "" {
		if err := a.open(opts.DocPath); err != nil {
			return nil, err
		}
	}

	if opts.WatchConfig && cfgPath != "" {
		w, err := config.Watch(cfgPath, a.onConfigReload)
		if err == nil {
			a.watcher = w
		}
	}
	return a, nil
}

// ID returns the session identifier.
func (a *App) ID() string {
	return a.id
}

// Engine returns the session's formula engine.
func (a *App) Engine() *engine.Engine {
	return a.eng
}

// SetScreen attaches the terminal screen the session draws on.
func (a *App) SetScreen(s *tui.Screen) {
	a.screen = s
}

// onConfigReload swaps in a freshly loaded configuration. Load errors
// leave the current configuration in place.
func (a *App) onConfigReload(cfg config.Config, err error) {
	if err != nil {
		return
	}
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
}

// Config returns the current configuration.
func (a *App) Config() config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// open loads the document at path into the engine. A missing file leaves
// the engine empty.
func (a *App) open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if err := a.eng.Load(data); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}

// Save writes the document to DocPath (or the configured autosave path).
func (a *App) Save() error {
	path := a.opts.DocPath
	if path == "" {
		path = a.Config().AutosavePath
	}
	if path == "" {
		return nil
	}
	data, err := a.eng.Encode(codec.WithIndent())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Shutdown releases session resources.
func (a *App) Shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
}

// Run drives the edit loop until the user quits or an error occurs. A
// user-requested quit returns ErrQuit after a final save.
func (a *App) Run() error {
	if a.screen == nil {
		return errors.New("no screen attached")
	}
	if err := a.screen.Init(); err != nil {
		return err
	}
	defer a.screen.Fini()

	for {
		a.draw()

		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			continue
		case *tcell.EventKey:
			quit, err := a.handleKey(ev)
			if err != nil {
				a.status = err.Error()
				continue
			}
			if quit {
				if err := a.Save(); err != nil {
					return err
				}
				return ErrQuit
			}
		case nil:
			return nil
		}
	}
}

// handleKey dispatches one key event. It reports quit when the user asked
// to leave.
func (a *App) handleKey(ev *tcell.EventKey) (quit bool, err error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true, nil
	case tcell.KeyCtrlS:
		if err := a.Save(); err != nil {
			return false, err
		}
		a.status = "saved"
		return false, nil
	}

	iev, ok := ConvertKey(ev)
	if !ok {
		return false, nil
	}
	if _, err := a.handler.Handle(iev, a.eng); err != nil {
		return false, err
	}
	a.status = ""
	return false, nil
}

// ConvertKey maps a tcell key event onto an input event.
func ConvertKey(ev *tcell.EventKey) (input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return input.Event{Key: input.KeyRune, Rune: ev.Rune()}, true
	case tcell.KeyLeft:
		return input.Event{Key: input.KeyLeft}, true
	case tcell.KeyRight:
		return input.Event{Key: input.KeyRight}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Event{Key: input.KeyBackspace}, true
	case tcell.KeyCtrlZ:
		return input.Event{Key: input.KeyUndo}, true
	case tcell.KeyCtrlY:
		return input.Event{Key: input.KeyRedo}, true
	case tcell.KeyCtrlL:
		return input.Event{Key: input.KeyClear}, true
	default:
		return input.Event{}, false
	}
}

// draw renders the current document state.
func (a *App) draw() {
	cfg := a.Config()

	opts := []latex.Option{latex.WithCursorColor(cfg.CursorColor)}
	if cfg.HidePlaceholder {
		opts = append(opts, latex.WithoutPlaceholder())
	}
	formula, err := a.eng.Render(opts...)
	if err != nil {
		formula = ""
		a.status = err.Error()
	}

	status := a.status
	if status == "" {
		status = "←/→ move   ⌫ delete   ^Z undo   ^Y redo   ^S save   Esc quit"
	}
	a.screen.Draw(tui.View{
		Title:   fmt.Sprintf("mathstorm — %s", shortID(a.id)),
		Formula: formula,
		Status:  status,
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
