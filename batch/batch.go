// SPDX-License-Identifier: MIT

// Package batch lexes many sources concurrently on a bounded worker pool.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/offside/lexer"
	"gitlab.com/fisherprime/offside/types"
)

type (
	// Source names a lexer input, opened once a worker picks it up.
	Source struct {
		Name string
		Open func() (io.ReadCloser, error)
	}

	// Result holds a Source's tokens, in input order.
	//
	// Err is set when the Source could not be read or lexing ended on an Err token, in which case
	// Tokens holds everything up to & including that token.
	Result struct {
		Name   string
		Tokens []lexer.Token
		Err    error
	}

	// Config defines configuration options for Lex.
	Config struct {
		// Logger for batch & lexer messages.
		Logger logrus.FieldLogger
		Debug  bool

		// Workers bounds the number of sources lexed at once.
		Workers int
		// Label names the outermost block of every source; the Source's Name when empty.
		Label string
	}

	// Stats summarizes a batch run.
	Stats struct {
		Sources, Tokens, Failures int
	}
)

// Batch errors.
var (
	ErrLexFailures = errors.New("failed to lex source(s)")
	ErrNoSources   = errors.New("no sources")
	ErrPanicked    = errors.New("recovery from panic")
)

// DefaultConfig obtains the package's default options.
func DefaultConfig() *Config {
	return &Config{
		Logger:  logrus.New(),
		Workers: runtime.NumCPU(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
}

// FileSource reads the file at path.
func FileSource(path string) Source {
	return Source{
		Name: path,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// StringSource reads text.
func StringSource(name, text string) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(text)), nil },
	}
}

// Lex tokenizes sources on a pool of cfg.Workers goroutines.
//
// Results are in the order of sources. The returned error wraps ErrLexFailures & every failed
// Source's error, or the context's error on cancellation.
func Lex(ctx context.Context, cfg *Config, sources []Source) (results []Result, stats Stats, err error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Validate()

	if len(sources) < 1 {
		err = ErrNoSources
		return
	}

	pool, err := ants.NewPool(cfg.Workers, ants.WithLogger(cfg.Logger))
	if err != nil {
		return
	}
	defer pool.Release()

	results = make([]Result, len(sources))
	done, errChan := make(chan bool, len(sources)), make(chan error, len(sources))
	tokenCount := new(types.SafeCounter)

	for index := range sources {
		index := index
		job := func() {
			res := Result{Name: sources[index].Name}

			// Every job reports exactly once, panicking or not.
			defer func() {
				if r := recover(); r != nil {
					cfg.Logger.WithField("source", res.Name).Errorf("batch worker panicked: %v", r)
					res.Err = fmt.Errorf("%s: %w: %v", res.Name, ErrPanicked, r)
				}

				results[index] = res
				tokenCount.Add(len(res.Tokens))

				if res.Err != nil {
					errChan <- res.Err
					return
				}
				done <- true
			}()

			res = lexSource(ctx, cfg, sources[index])
		}

		if err = pool.Submit(job); err != nil {
			// Earlier jobs are left to finish on release.
			err = fmt.Errorf("submit %q: %w", sources[index].Name, err)
			return nil, stats, err
		}
	}

	// Workers observe ctx themselves; waiting on all of them keeps results race free.
	err = types.MonitorChannels(context.Background(), len(sources), done, errChan, "source")
	stats = Stats{Sources: len(sources), Tokens: tokenCount.Value()}
	for index := range results {
		if results[index].Err != nil {
			stats.Failures++
		}
	}

	if cfg.Debug {
		cfg.Logger.WithFields(logrus.Fields{
			"sources":  stats.Sources,
			"tokens":   stats.Tokens,
			"failures": stats.Failures,
			"workers":  cfg.Workers,
		}).Debug("batch lexed")
	}

	switch {
	case err == nil:
	case ctx.Err() != nil:
		err = ctx.Err()
	default:
		err = fmt.Errorf("%w: %w", ErrLexFailures, err)
	}

	return
}

// lexSource drains a lexer over a Source, stopping on context cancellation.
func lexSource(ctx context.Context, cfg *Config, src Source) (res Result) {
	res.Name = src.Name

	rc, err := src.Open()
	if err != nil {
		res.Err = err
		return
	}
	defer rc.Close()

	label := cfg.Label
	if label == "" {
		label = src.Name
	}

	l := lexer.New(label,
		lexer.WithSource(bufio.NewReader(rc)),
		lexer.WithLogger(cfg.Logger.WithField("source", src.Name)),
		lexer.WithDebug(cfg.Debug),
	)

	for {
		if err = ctx.Err(); err != nil {
			res.Err = fmt.Errorf("%s: %w", src.Name, err)
			return
		}

		t, ok := l.Next()
		if !ok {
			return
		}
		res.Tokens = append(res.Tokens, t)

		if t.ID == lexer.TokenErr {
			res.Err = fmt.Errorf("%s: %w", src.Name, t.Err)
		}
	}
}
