package state

import (
	"errors"
	"fmt"
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// Prepare converts loaded configuration into analysis and request parameters,
// so configuration problems (bad patterns, sizes, metric names) are reported
// before any work starts.
func (e *LocalEnv) Prepare() (err error) {
	if e.Cfg == nil {
		return errors.New("configuration is not loaded")
	}
	if e.Options, err = e.Cfg.Metrics.Prepare(); err != nil {
		return err
	}
	if e.Request, err = e.Cfg.Request.Prepare(); err != nil {
		return fmt.Errorf("bad request configuration: %w", err)
	}
	if e.FileLimit, err = e.Cfg.Request.FileLimit(); err != nil {
		return fmt.Errorf("bad request configuration: %w", err)
	}
	return nil
}
