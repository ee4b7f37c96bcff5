// Package commands implements the socialite console commands. Commands are
// the thin view layer over the state store: they dispatch operations, render
// slice state, and never mutate caches directly.
package commands

import (
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/config"
	"github.com/mathenaangeles/socialite/internal/state"
	"github.com/mathenaangeles/socialite/internal/state/persist"
)

// Globals are the top-level flags shared by every command.
type Globals struct {
	Debug    bool
	Version  string
	Server   string
	StateDir string
	Output   string
}

// ErrNotLoggedIn gates commands that need a session.
var ErrNotLoggedIn = errors.New("not logged in: run 'socialite login' first")

// app is the wired-up client a command runs against: config, store, and the
// output mode, with persisted state already restored.
type app struct {
	store  *state.Store
	cfg    config.Config
	output string
}

// newApp builds the client stack. Persisted state is restored before the
// command body runs; when requireUser is set, a missing session user fails
// with ErrNotLoggedIn instead of running the command.
func newApp(globals *Globals, requireUser bool) (*app, error) {
	setupLogging(globals.Debug)

	stateDir := globals.StateDir
	if stateDir == "" {
		dir, err := config.DefaultStateDir()
		if err != nil {
			return nil, err
		}
		stateDir = dir
	}

	cfg, err := config.Load(stateDir)
	if err != nil {
		return nil, err
	}
	if globals.Server != "" {
		cfg.ServerURL = globals.Server
	}
	if globals.Output != "" {
		cfg.Output = globals.Output
	}

	client, err := api.New(api.Config{
		BaseURL:  cfg.ServerURL,
		Timeout:  cfg.Timeout,
		StateDir: stateDir,
		CacheDir: cfg.CacheDir,
		Debug:    globals.Debug,
	})
	if err != nil {
		return nil, err
	}

	persister, err := persist.NewFileStore(stateDir)
	if err != nil {
		return nil, err
	}
	restored, err := persister.Restore()
	if err != nil {
		return nil, err
	}

	store := state.New(client, state.WithPersister(persister), state.WithInitial(restored))

	if requireUser && !restored.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	log.Debug().
		Str("server", cfg.ServerURL).
		Str("stateDir", stateDir).
		Bool("loggedIn", restored.LoggedIn()).
		Msg("console ready")

	return &app{store: store, cfg: cfg, output: cfg.Output}, nil
}

func setupLogging(debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}
