package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fwojciec/themepatch"
	"github.com/fwojciec/themepatch/bubbletea"
	"github.com/fwojciec/themepatch/chroma"
	"github.com/fwojciec/themepatch/clipboard"
	"github.com/fwojciec/themepatch/fs"
	"github.com/fwojciec/themepatch/jsonl"
	"github.com/fwojciec/themepatch/lipgloss"
	"github.com/fwojciec/themepatch/toml"
	"github.com/fwojciec/themepatch/udiff"
	"github.com/fwojciec/themepatch/zap"
	zaplib "go.uber.org/zap"
)

// version is set during build with -ldflags.
var version = "dev"

// ErrUnknownUITheme is returned for a --ui-theme other than dark, light or auto.
var ErrUnknownUITheme = errors.New("unknown ui theme")

// Editor runs the interactive editor over a session.
type Editor interface {
	Run(ctx context.Context, session *themepatch.Session, opts ...bubbletea.EditorOption) error
}

// App encapsulates the application wiring for testing. Nil fields are
// filled in by Setup.
type App struct {
	Stdout io.Writer

	Config      *themepatch.Config
	ConfigPath  string // Where Config was read from, empty for defaults
	ConfigStore themepatch.ConfigStore
	Store       themepatch.ThemeStore
	Journal     *jsonl.Journal
	Logger      *zaplib.Logger
	Differ      themepatch.Differ
	Editor      Editor
}

// Flags holds the global command line flags.
type Flags struct {
	ConfigPath string
	ThemesPath string
	StateDir   string
	Debug      bool
	UITheme    string
	Sort       string
	Output     string
}

// Setup loads the configuration and builds every collaborator left nil.
func (a *App) Setup(flags Flags) error {
	if a.Stdout == nil {
		a.Stdout = os.Stdout
	}
	if a.ConfigStore == nil {
		store, err := toml.NewConfigStore(flags.ConfigPath)
		if err != nil {
			return err
		}
		a.ConfigStore = store
	}
	if a.Config == nil {
		cfg, path, err := a.ConfigStore.Load()
		if err != nil {
			return err
		}
		a.Config, a.ConfigPath = cfg, path
	}
	if flags.ThemesPath != "" {
		a.Config.General.ThemesPath = flags.ThemesPath
	}
	if a.Store == nil {
		a.Store = fs.NewStore(a.Config.General.ThemesPath)
	}

	stateDir := flags.StateDir
	if stateDir == "" {
		stateDir = fs.DefaultStateDir()
	}
	if a.Logger == nil {
		if flags.Debug {
			logger, err := zap.NewLogger(filepath.Join(stateDir, zap.DefaultFileName))
			if err != nil {
				return err
			}
			a.Logger = logger
		} else {
			a.Logger = zap.Nop()
		}
	}
	if a.Journal == nil {
		a.Journal = jsonl.NewJournal(filepath.Join(stateDir, jsonl.DefaultFileName))
	}
	if a.Differ == nil {
		a.Differ = udiff.NewDiffer()
	}
	if a.Editor == nil {
		opts, err := editorOptions(flags)
		if err != nil {
			return err
		}
		a.Editor = bubbletea.NewEditor(append(opts, bubbletea.WithDiffer(a.Differ))...)
	}
	return nil
}

// NewSession returns a session over the app's store and configuration.
// Options are applied after the app's own.
func (a *App) NewSession(opts ...themepatch.SessionOption) *themepatch.Session {
	all := []themepatch.SessionOption{themepatch.WithLogger(a.Logger)}
	if a.Journal != nil {
		all = append(all, themepatch.WithJournal(a.Journal))
	}
	return themepatch.NewSession(a.Store, a.Config, append(all, opts...)...)
}

// RunEditor starts the interactive editor. A non-empty theme is opened on
// start.
func (a *App) RunEditor(ctx context.Context, theme string) error {
	a.Logger.Debug("starting editor",
		zaplib.String("themes_path", a.Config.General.ThemesPath),
		zaplib.String("config", a.ConfigPath),
		zaplib.String("theme", theme))
	var opts []bubbletea.EditorOption
	if theme != "" {
		opts = append(opts, bubbletea.WithInitialTheme(theme))
	}
	return a.Editor.Run(ctx, a.NewSession(), opts...)
}

func editorOptions(flags Flags) ([]bubbletea.EditorOption, error) {
	theme, ok := lipgloss.ThemeByName(flags.UITheme)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUITheme, flags.UITheme)
	}
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return nil, err
	}
	mode, err := parseSort(flags.Sort)
	if err != nil {
		return nil, err
	}
	opts := []bubbletea.EditorOption{
		bubbletea.WithTheme(theme),
		bubbletea.WithLanguageDetector(chroma.NewDetector()),
		bubbletea.WithTokenizer(tokenizer),
		bubbletea.WithSortMode(mode),
	}
	if cb := clipboard.NewSystem(); cb.Available() {
		opts = append(opts, bubbletea.WithClipboard(cb))
	}
	return opts, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &App{}
	defer func() {
		if app.Logger != nil {
			_ = app.Logger.Sync()
		}
	}()
	return NewRootCmd(app).ExecuteContext(ctx)
}
