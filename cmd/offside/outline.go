// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/offside/lexer"
	"gitlab.com/fisherprime/offside/outline"
)

func newOutlineCmd(opts *options) *cobra.Command {
	var serialize bool

	cmd := &cobra.Command{
		Use:   "outline [files...]",
		Short: "Print the layout blocks of each file",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			cfg := &outline.Config{Logger: opts.logger, Debug: opts.debug}
			w := cmd.OutOrStdout()
			for _, in := range inputs {
				tokens := lexer.Tokenize(opts.label, in.text, opts.lexerOptions()...)

				o, err := outline.Build(cmd.Context(), cfg, tokens)
				if err != nil {
					return fmt.Errorf("%s: %w", in.name, err)
				}

				if serialize {
					out, err := o.Serialize(cmd.Context())
					if err != nil {
						return fmt.Errorf("%s: %w", in.name, err)
					}
					fmt.Fprintf(w, "%s: %s\n", in.name, out)
					continue
				}

				if len(inputs) > 1 {
					fmt.Fprintf(w, "==> %s <==\n", in.name)
				}
				for _, b := range o.Blocks() {
					fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", b.Depth), b)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&serialize, "serialize", "s", false, "print the compact nested form of block IDs")

	return cmd
}
