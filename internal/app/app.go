package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/five82/fledgling/internal/birds"
	"github.com/five82/fledgling/internal/config"
	"github.com/five82/fledgling/internal/prefs"
	"github.com/five82/fledgling/internal/state"
	"github.com/five82/fledgling/internal/telemetry"
	"github.com/five82/fledgling/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// Options configure the Fledgling application.
type Options struct {
	ConfigPath string
	PrefsPath  string    // empty uses default ~/.config/fledgling/prefs.toml
	APIBase    string    // overrides api_base from the config file
	Print      bool      // load once and print plain text instead of the TUI
	Debug      bool      // force debug logging
	Stdout     io.Writer // print mode output; nil uses os.Stdout
}

// Run boots Fledgling until the user quits, the context is cancelled or, in
// print mode, the single load settles.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if base := strings.TrimSpace(opts.APIBase); base != "" {
		cfg.APIBase = base
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid -api %q: %w", base, err)
		}
	}

	level := cfg.Level()
	if opts.Debug {
		level = hclog.Debug
	}
	logger, closeLog, err := newLogger(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer closeLog()

	tracing, err := telemetry.Setup(ctx, logger)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	client, err := birds.NewClient(cfg.APIBase,
		birds.WithCookies(cfg.Cookies),
		birds.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("init birds client: %w", err)
	}
	logger.Info("starting", "endpoint", client.Endpoint(), "print", opts.Print)

	store := &state.Store{}
	loader := state.NewLoader(store, client, logger)

	if opts.Print {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return printOnce(ctx, store, loader, out)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("using default prefs", "path", prefsPath, "error", err)
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Loader:    loader,
		Endpoint:  client.Endpoint(),
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		Logger:    logger,
	})
}

// printOnce performs a single load and writes the listing as plain text.
// A failed load is returned as an error carrying the banner message.
func printOnce(ctx context.Context, store *state.Store, loader *state.Loader, out io.Writer) error {
	loader.Load(ctx)

	snap := store.Snapshot()
	if snap.HasError() {
		return errors.New(snap.Err)
	}
	return ui.RenderPlain(out, birds.Classify(snap.Payload))
}
