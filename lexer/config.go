// SPDX-License-Identifier: MIT
package lexer

import (
	"io"

	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for the Lexer's operations.
	Config struct {
		// Logger for Lexer messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

// DefaultLabel names the outermost block when no label is supplied.
const DefaultLabel = "top"

// DefaultConfig obtains the package's Lexer default options.
func DefaultConfig() *Config {
	return &Config{
		Logger: logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}

// WithConfig configures the logger & debug options from a Config.
func WithConfig(cfg *Config) Option {
	return func(l *Lexer) {
		cfg.Validate()
		l.logger, l.debug = cfg.Logger, cfg.Debug
	}
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }
