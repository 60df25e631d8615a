// Package config loads the contact-mcp server settings.
//
// Settings come from three layers, each overriding the previous one:
// built-in defaults, an optional YAML file, and CONTACT_MCP_* environment
// variables. The environment name of a field is the prefix, the section's
// yaml key and the field's yaml key joined with underscores and upper-cased,
// for example CONTACT_MCP_RECOGNIZER_MODE or CONTACT_MCP_LOG_LEVEL.
package config

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/contact-extract-mcp/internal/contact"
	"github.com/ironsheep/contact-extract-mcp/internal/imaging"
	"github.com/ironsheep/contact-extract-mcp/internal/ocr"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CONTACT_MCP"

// Config is the complete server configuration.
type Config struct {
	Server     ServerConfig              `yaml:"server" json:"server"`
	Log        LogConfig                 `yaml:"log" json:"log"`
	Preprocess imaging.PreprocessOptions `yaml:"preprocess" json:"preprocess"`
	Recognizer ocr.Options               `yaml:"recognizer" json:"recognizer"`
	Parser     ParserConfig              `yaml:"parser" json:"parser"`
}

// ServerConfig controls request handling.
type ServerConfig struct {
	// MaxWorkers bounds how many images the batch tool parses at once.
	MaxWorkers int `yaml:"max_workers" json:"max_workers"`
}

// LogConfig controls the logger. Logs always go to stderr because stdout
// carries the protocol.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// ParserConfig holds contact parser defaults. Tool arguments override them
// per call.
type ParserConfig struct {
	RowMargin int `yaml:"row_margin" json:"row_margin"`
}

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			MaxWorkers: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
		Preprocess: imaging.DefaultPreprocessOptions(),
		Recognizer: ocr.DefaultOptions(),
		Parser: ParserConfig{
			RowMargin: contact.DefaultRowMargin,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	loader := NewLoader(EnvPrefix)
	if err := loader.Load(path, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.MaxWorkers < 1 {
		return eris.Errorf("server.max_workers must be at least 1, got %d", c.Server.MaxWorkers)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrapf(err, "log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return eris.Errorf("log.format must be %q or %q, got %q", FormatText, FormatJSON, c.Log.Format)
	}
	if c.Preprocess.DenoiseRadius < 0 {
		return eris.Errorf("preprocess.denoise_radius must not be negative, got %v", c.Preprocess.DenoiseRadius)
	}
	if c.Preprocess.MinWidth < 0 {
		return eris.Errorf("preprocess.min_width must not be negative, got %d", c.Preprocess.MinWidth)
	}
	if err := c.Recognizer.Validate(); err != nil {
		return eris.Wrap(err, "recognizer")
	}
	if c.Parser.RowMargin < 0 {
		return eris.Errorf("parser.row_margin must not be negative, got %d", c.Parser.RowMargin)
	}
	return nil
}

// NewLogger builds a logrus logger writing to w at the configured level
// and format.
func (c LogConfig) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse log level %q", c.Level)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	if strings.EqualFold(c.Format, FormatJSON) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
