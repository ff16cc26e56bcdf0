// SPDX-License-Identifier: MIT

// Command offside lexes layout-sensitive source: printing tokens & block outlines, checking files
// for lexical errors & lexing interactively.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/offside/lexer"
	"gitlab.com/fisherprime/offside/types"
)

type (
	// options holds the persistent flags shared by every subcommand.
	options struct {
		debug     bool
		logFormat string
		label     string
		workers   int

		logger *logrus.Logger
	}

	// input is a named source text.
	input struct {
		name, text string
	}
)

const stdinName = "-"

// CLI errors.
var (
	ErrUnknownLogFormat = errors.New("unknown log format")
	ErrCheckFailed      = errors.New("lexical errors found")
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{logger: logrus.New()}

	root := &cobra.Command{
		Use:          "offside",
		Short:        "Lex layout-sensitive source",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.configureLogger(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flags.StringVar(&opts.label, "label", lexer.DefaultLabel, "label of the outermost block")
	flags.IntVar(&opts.workers, "workers", runtime.NumCPU(), "files lexed concurrently")

	root.AddCommand(
		newLexCmd(opts),
		newCheckCmd(opts),
		newOutlineCmd(opts),
		newReplCmd(opts),
	)

	return root
}

func (o *options) configureLogger(w io.Writer) error {
	o.logger.SetOutput(w)

	switch o.logFormat {
	case "text":
		o.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		o.logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogFormat, o.logFormat)
	}

	if o.debug {
		o.logger.SetLevel(logrus.DebugLevel)
	}

	return nil
}

// lexerOptions configures a Lexer from the persistent flags.
func (o *options) lexerOptions() []lexer.Option {
	return []lexer.Option{lexer.WithConfig(&lexer.Config{Logger: o.logger, Debug: o.debug})}
}

// readInputs reads the named files, or the command's stdin when none are named.
//
// Duplicate names are read once.
func readInputs(cmd *cobra.Command, args []string) (inputs []input, err error) {
	var names types.StringSlice
	names.UniqueAppend(args...)

	if len(names) < 1 {
		names = types.StringSlice{stdinName}
	}

	for _, name := range names {
		var data []byte
		if name == stdinName {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, input{name: name, text: string(data)})
	}

	return
}

// describeError formats a failed Token as `name:line:col: error "text"`.
func describeError(name string, t lexer.Token) string {
	return fmt.Sprintf("%s:%s: %v %q", name, t.Err.Pos, t.Err.Unwrap(), t.Err.Text)
}
