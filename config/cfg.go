package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"stylestats/analyzer"
	"stylestats/common"
	"stylestats/metrics"
	"stylestats/source"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	MetricsConfig struct {
		Enabled                     map[string]bool `yaml:"enabled"`
		PropertiesCount             int             `yaml:"properties_count" validate:"gte=0"`
		JavascriptSpecificSelectors string          `yaml:"javascript_specific_selectors"`
		UserSpecifiedSelectors      string          `yaml:"user_specified_selectors"`
	}

	RequestConfig struct {
		Timeout     time.Duration           `yaml:"timeout" validate:"gt=0"`
		Retries     int                     `yaml:"retries" validate:"gte=0"`
		Backoff     time.Duration           `yaml:"backoff" validate:"gte=0"`
		UserAgent   string                  `yaml:"user_agent"`
		Headers     map[string]SecretString `yaml:"headers,omitempty"`
		MaxBodySize string                  `yaml:"max_body_size" validate:"required"`
		MaxFileSize string                  `yaml:"max_file_size" validate:"required"`
		Concurrency int                     `yaml:"concurrency" validate:"min=1,max=64"`
		Charset     string                  `yaml:"charset,omitempty"`
	}

	OutputConfig struct {
		Format     common.OutputFmt  `yaml:"format"`
		TableStyle common.TableStyle `yaml:"table_style"`
		Prettify   bool              `yaml:"prettify"`
		Template   string            `yaml:"template,omitempty"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Metrics   MetricsConfig  `yaml:"metrics"`
		Request   RequestConfig  `yaml:"request"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Prepare converts metrics section to analysis options. Unknown metric names
// and invalid patterns are configuration errors.
func (conf *MetricsConfig) Prepare() (*analyzer.Options, error) {
	opts := []analyzer.Option{
		analyzer.WithPropertiesCount(conf.PropertiesCount),
		analyzer.WithJavascriptSpecificSelectors(conf.JavascriptSpecificSelectors),
		analyzer.WithUserSpecifiedSelectors(conf.UserSpecifiedSelectors),
	}
	// sorted to make errors reproducible
	for _, name := range slices.Sorted(maps.Keys(conf.Enabled)) {
		opts = append(opts, analyzer.WithMetric(metrics.Key(name), conf.Enabled[name]))
	}
	o, err := analyzer.NewOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("bad metrics configuration: %w", err)
	}
	return o, nil
}

// FileLimit returns maximum size of local stylesheet in bytes.
func (conf *RequestConfig) FileLimit() (int64, error) {
	n, err := humanize.ParseBytes(conf.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("bad max_file_size '%s': %w", conf.MaxFileSize, err)
	}
	return int64(n), nil
}

// Prepare converts request section to fetcher configuration.
func (conf *RequestConfig) Prepare() (source.FetcherConfig, error) {
	n, err := humanize.ParseBytes(conf.MaxBodySize)
	if err != nil {
		return source.FetcherConfig{}, fmt.Errorf("bad max_body_size '%s': %w", conf.MaxBodySize, err)
	}
	headers := make(map[string]string, len(conf.Headers))
	for k, v := range conf.Headers {
		headers[k] = v.Reveal()
	}
	return source.FetcherConfig{
		UserAgent:   conf.UserAgent,
		Headers:     headers,
		Timeout:     conf.Timeout,
		Retries:     conf.Retries,
		Backoff:     conf.Backoff,
		MaxBodySize: int64(n),
		Concurrency: conf.Concurrency,
		Charset:     conf.Charset,
	}, nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump returns actual configuration as YAML, secrets are hidden.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
