// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/offside/batch"
	"gitlab.com/fisherprime/offside/lexer"
	"gitlab.com/fisherprime/offside/types"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Lex files concurrently, reporting lexical errors",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var names types.StringSlice
			names.UniqueAppend(args...)

			var sources []batch.Source
			if len(names) < 1 {
				var inputs []input
				if inputs, err = readInputs(cmd, nil); err != nil {
					return
				}
				sources = append(sources, batch.StringSource(inputs[0].name, inputs[0].text))
			}
			for _, name := range names {
				sources = append(sources, batch.FileSource(name))
			}

			cfg := &batch.Config{Logger: opts.logger, Debug: opts.debug, Workers: opts.workers, Label: opts.label}
			results, stats, err := batch.Lex(cmd.Context(), cfg, sources)
			if err != nil && !errors.Is(err, batch.ErrLexFailures) {
				return err
			}

			w := cmd.OutOrStdout()
			for _, res := range results {
				if res.Err == nil {
					continue
				}

				// A lexical error ends the token stream.
				if last := res.Tokens; len(last) > 0 && last[len(last)-1].ID == lexer.TokenErr {
					fmt.Fprintln(w, describeError(res.Name, last[len(last)-1]))
					continue
				}
				fmt.Fprintln(w, res.Err)
			}

			opts.logger.WithField("tokens", stats.Tokens).Infof("checked %d file(s), %d failed", stats.Sources, stats.Failures)
			if stats.Failures > 0 {
				return fmt.Errorf("%w in %d file(s)", ErrCheckFailed, stats.Failures)
			}

			return nil
		},
	}
}
