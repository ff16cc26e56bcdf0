// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/offside/internal/render"
	"gitlab.com/fisherprime/offside/lexer"
)

var ErrUnknownFormat = errors.New("unknown output format")

func newLexCmd(opts *options) *cobra.Command {
	var (
		color  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "lex [files...]",
		Short: "Print the tokens of each file, stdin when none are named",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			var theme render.Theme
			if color {
				theme = render.DefaultTheme()
			}

			w := cmd.OutOrStdout()
			for _, in := range inputs {
				if len(inputs) > 1 {
					fmt.Fprintf(w, "==> %s <==\n", in.name)
				}

				tokens := lexer.Tokenize(opts.label, in.text, opts.lexerOptions()...)
				switch format {
				case "tokens":
					err = render.Tokens(w, tokens, theme)
				case "indent":
					err = render.Indented(w, tokens, theme)
				case "highlight":
					err = render.Highlight(w, in.text, tokens, theme)
				default:
					err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
				}
				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&color, "color", false, "color the output")
	cmd.Flags().StringVarP(&format, "format", "f", "tokens", "output format: tokens, indent or highlight")

	return cmd
}
