package state

import (
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"stylestats/config"
	"stylestats/metrics"
)

func TestEnvFromContext(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil || env.start.IsZero() {
		t.Fatalf("EnvFromContext() = %+v", env)
	}
	if EnvFromContext(ctx) != env {
		t.Error("environment must be shared through context")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for context without environment")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Minute)}
	if up := env.Uptime(); up < time.Minute || up > 2*time.Minute {
		t.Errorf("Uptime() = %v", up)
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	log.Print("analyzing styles")
	env.RestoreStdLog()
	log.Print("not captured")

	entries := logs.All()
	if len(entries) != 1 || !strings.Contains(entries[0].Message, "analyzing styles") {
		t.Errorf("captured entries = %v", entries)
	}

	// without logger both calls are no-ops
	empty := &LocalEnv{}
	empty.RedirectStdLog()
	if empty.restoreStdLog != nil {
		t.Error("redirect without logger must not install restore function")
	}
	empty.RestoreStdLog()
}

func TestLocalEnv_Prepare(t *testing.T) {
	if err := (&LocalEnv{}).Prepare(); err == nil {
		t.Error("Prepare() without configuration must fail")
	}

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*config.Config) {}},
		{name: "bad pattern", modify: func(c *config.Config) { c.Metrics.JavascriptSpecificSelectors = "(unclosed" }, wantErr: true},
		{name: "unknown metric", modify: func(c *config.Config) { c.Metrics.Enabled["loudness"] = true }, wantErr: true},
		{name: "bad body size", modify: func(c *config.Config) { c.Request.MaxBodySize = "lots" }, wantErr: true},
		{name: "bad file size", modify: func(c *config.Config) { c.Request.MaxFileSize = "lots" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadConfiguration("")
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			tt.modify(cfg)

			env := &LocalEnv{Cfg: cfg}
			err = env.Prepare()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Prepare() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if env.Options == nil || !env.Options.Has(metrics.Size) || env.Options.Has(metrics.UserSpecifiedSelectors) {
				t.Error("metric options were not prepared from configuration")
			}
			if env.Request.Concurrency != cfg.Request.Concurrency || env.Request.MaxBodySize != 10_000_000 {
				t.Errorf("Request = %+v", env.Request)
			}
			if env.FileLimit != 10_000_000 {
				t.Errorf("FileLimit = %d", env.FileLimit)
			}
		})
	}
}
