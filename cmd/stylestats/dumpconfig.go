package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylestats/config"
	"stylestats/state"
)

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Dumps either default or actual configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		OnUsageError: usageErrorHandler,
		Action:       outputConfiguration,
		ArgsUsage:    "DESTINATION",
		CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. Request headers are
never written out. To see default configuration embedded into the program use
--default flag.
`, cli.CommandHelpTemplate),
	}
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		kind = "actual"
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	var out io.Writer = os.Stdout
	fname := cmd.Args().Get(0)
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		out = f
	} else {
		fname = "STDOUT"
	}
	env.Log.Info("Writing configuration", zap.String("state", kind), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
