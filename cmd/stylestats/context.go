package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylestats/config"
	"stylestats/misc"
	"stylestats/state"
)

// initializeAppContext loads configuration, prepares logs and debug report
// after command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// only help will be shown
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// secrets are hidden by Dump
		name := "config/default.yaml"
		if len(configFile) > 0 {
			name = "config/" + filepath.Base(configFile)
		}
		if data, err := config.Dump(env.Cfg); err == nil {
			env.Rpt.StoreData(name, data)
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}

	// bad patterns or sizes in configuration are reported before any work
	if err := env.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// log is synced after this and could be put into report, errors must be
	// reported directly to stderr from now on
	env.RestoreStdLog()

	if er := env.Rpt.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
	}

	// remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := env.Cfg.Logging.PanicLogName()
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// cli.Exit() is not used, subcommands return regular errors which are logged
// here once.
var errWasHandled bool

// exitErrHandler is called before appContext is destroyed, while log is
// still available.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// reported either by exitErrHandler or on exit directly to stderr
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}
