package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"moul.io/zapfilter"
)

// Config describes logger settings read from an optional yaml file.
// Filters use the zapfilter rule syntax, for example
// "debug:provider*,cache* info:*".
type Config struct {
	DefaultLevel string   `yaml:"defaultLevel"`
	Filters      []string `yaml:"filters"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading log config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing log config: %w", err)
	}
	return cfg, nil
}

// NewWithConfig creates a logger whose named sub loggers are filtered
// according to the config rules. Format is "json" or anything else for
// console output.
func NewWithConfig(cfg *Config, writer io.Writer, format string, opts ...Option) (*Logger, error) {
	level := InfoLevel
	if cfg.DefaultLevel != "" {
		var err error
		if level, err = ParseLevel(cfg.DefaultLevel); err != nil {
			return nil, fmt.Errorf("invalid defaultLevel %q: %w", cfg.DefaultLevel, err)
		}
	}
	if writer == nil {
		writer = os.Stderr
	}
	var enc zapcore.Encoder
	if format == "json" {
		enc = prodEncoder()
	} else {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(devCfg)
	}
	// filters may open up levels below the default, so the core itself
	// must accept everything and leave the decision to the filter
	core := zapcore.NewCore(enc, zapcore.AddSync(writer), DebugLevel)
	if len(cfg.Filters) > 0 {
		rules := ""
		for i, f := range cfg.Filters {
			if i > 0 {
				rules += " "
			}
			rules += f
		}
		filterFunc, err := zapfilter.ParseRules(rules)
		if err != nil {
			return nil, fmt.Errorf("invalid filter rules: %w", err)
		}
		core = zapfilter.NewFilteringCore(core, filterFunc)
	} else {
		core = zapcore.NewCore(enc, zapcore.AddSync(writer), level)
	}
	return wrap(core, level, opts...), nil
}
