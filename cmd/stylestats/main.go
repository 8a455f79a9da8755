package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"stylestats/misc"
	"stylestats/state"
	"stylestats/stats"
)

func main() {

	// remote sources are fetched concurrently, interrupt cancels them
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "statistics and quality metrics for CSS",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything and produce report archive with analyzed CSS and metrics"},
		},
		Commands: []*cli.Command{
			stats.Command(usageErrorHandler),
			dumpConfigCommand(),
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// log is either not set yet (argument parsing) or already closed
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
