package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylestats/common"
	"stylestats/config"
	"stylestats/format"
	"stylestats/specs"
	"stylestats/state"
)

// ErrSpecsFailed is returned when some of the test specifications did not
// pass.
var ErrSpecsFailed = errors.New("specs failed")

// Run is the action of analyze command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("analyze")

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("no input source has been specified")
	}

	if err := env.Prepare(); err != nil {
		return fmt.Errorf("unable to prepare analysis: %w", err)
	}

	opts, err := outputOptions(cmd, env.Cfg, log)
	if err != nil {
		return err
	}

	var spec *specs.Spec
	if name := cmd.String("specs"); len(name) > 0 {
		if spec, err = specs.Load(name); err != nil {
			return err
		}
		env.Rpt.Store("specs/"+filepath.Base(name), name)
	}

	log.Info("Processing starting", zap.Strings("sources", args), zap.Stringer("format", opts.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, err := Process(ctx, args, Params{
		Options:   env.Options,
		Request:   env.Request,
		FileLimit: env.FileLimit,
	}, log)
	if err != nil {
		return err
	}

	if env.Rpt != nil {
		env.Rpt.StoreData("stylesheet.css", []byte(res.Collection.CSS()))
		if data, err := json.MarshalIndent(res.Record, "", "  "); err == nil {
			env.Rpt.StoreData("metrics.json", data)
		}
	}

	if spec != nil {
		report := specs.Run(res.Record, spec)
		if _, err := report.WriteTo(os.Stdout); err != nil {
			return fmt.Errorf("unable to write specs report: %w", err)
		}
		if n := report.Failed(); n > 0 {
			return fmt.Errorf("%d of %d: %w", n, len(report.Results), ErrSpecsFailed)
		}
		return nil
	}

	return writeReport(cmd.String("output"), args[0], res, opts, log)
}

func outputOptions(cmd *cli.Command, cfg *config.Config, log *zap.Logger) (format.Options, error) {
	opts := format.Options{
		Format:   cfg.Output.Format,
		Prettify: cfg.Output.Prettify || cmd.Bool("prettify"),
		Style:    cfg.Output.TableStyle,
	}
	if cmd.Bool("simple") {
		opts.Style = common.TableStyleCompact
	}

	tmpl := cfg.Output.Template
	if name := cmd.String("template"); len(name) > 0 {
		tmpl = name
		// template implies format unless explicitly requested
		if !cmd.IsSet("format") {
			opts.Format = common.OutputFmtTemplate
		}
	}
	if cmd.IsSet("format") {
		f, err := common.ParseOutputFmt(cmd.String("format"))
		if err != nil {
			log.Warn("Unknown output format requested, switching to table", zap.Error(err))
			f = common.OutputFmtTable
		}
		opts.Format = f
	}

	if opts.Format.NeedsTemplate() {
		if len(tmpl) == 0 {
			return opts, format.ErrNoTemplate
		}
		data, err := os.ReadFile(tmpl)
		if err != nil {
			return opts, fmt.Errorf("unable to read template: %w", err)
		}
		opts.Template = string(data)
	}
	return opts, nil
}

func writeReport(dst, first string, res *Result, opts format.Options, log *zap.Logger) (err error) {
	if len(dst) == 0 {
		opts.Color = config.EnableColorOutput(os.Stdout)
		return format.Render(os.Stdout, res.Record, opts)
	}

	if fi, er := os.Stat(dst); er == nil && fi.IsDir() {
		dst = filepath.Join(dst, OutputName(first, opts.Format))
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	log.Info("Writing report", zap.String("file", dst))
	return format.Render(f, res.Record, opts)
}
