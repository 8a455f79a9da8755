package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"stylestats/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// PanicLogName returns location of crash output file next to the file log.
func (conf *LoggingConfig) PanicLogName() string {
	return filepath.Join(filepath.Dir(conf.FileLogger.Destination), misc.GetAppName()+"-panic.log")
}

// Prepare returns our standard logger - configured zap logger for use by the program.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {

	// Console - info and warnings go to stdout, errors to stderr
	lowPriority, highPriority := consoleCores(conf.ConsoleLogger.Level)

	// File

	var (
		fileCore       = zapcore.NewNopCore()
		levelRequested = conf.FileLogger.Level
		modeRequested  = conf.FileLogger.Mode
	)

	if rpt != nil {
		// if report is requested always set maximum available logging level for file logger
		levelRequested = "debug"
		modeRequested = "overwrite"
	}

	var newName string
	if lvl, ok := fileLevel(levelRequested); ok {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())

		// capture panic log if possible
		var (
			ef  *os.File
			err error
		)
		if ef, err = openLog(conf.PanicLogName(), modeRequested); err == nil {
		} else if ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err == nil {
		} else {
			// just quietly ignore
			ef = nil
		}
		if ef != nil {
			debug.SetCrashOutput(ef, debug.CrashOptions{})
			rpt.Store("panic.log", ef.Name())
			ef.Close()
		}

		if f, err := openLog(conf.FileLogger.Destination, modeRequested); err == nil {
			fileCore = zapcore.NewCore(enc, zapcore.Lock(f), lvl)
			rpt.Store("final.log", f.Name())
		} else if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err == nil {
			newName = f.Name()
			fileCore = zapcore.NewCore(enc, zapcore.Lock(f), lvl)
			rpt.Store("final.log", newName)
		} else {
			return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
		}
	}

	log := zap.New(zapcore.NewTee(highPriority, lowPriority, fileCore), zap.AddCaller())
	if len(newName) != 0 {
		// log was redirected - we need to report this
		log.Warn("Log file was redirected to new location", zap.String("location", newName))
	}
	return log.Named(misc.GetAppName()), nil
}

func consoleCores(level string) (low, high zapcore.Core) {
	var floor zapcore.Level
	switch level {
	case "normal":
		floor = zapcore.InfoLevel
	case "debug":
		floor = zapcore.DebugLevel
	default:
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}
	low = zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return floor <= lvl && lvl < zapcore.ErrorLevel
		}))
	high = zapcore.NewCore(newEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return low, high
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func fileLevel(level string) (zap.AtomicLevel, bool) {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel), true
	case "normal":
		return zap.NewAtomicLevelAt(zap.InfoLevel), true
	}
	return zap.AtomicLevel{}, false
}

func openLog(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			// strip "errorVerbose", wrapped chains are visible in the file log
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
