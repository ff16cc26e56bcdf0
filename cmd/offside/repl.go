// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/offside/internal/render"
	"gitlab.com/fisherprime/offside/lexer"
)

const (
	historyFile = ".offside_history"

	promptMain = "offside> "
	promptCont = "...      "
)

func newReplCmd(opts *options) *cobra.Command {
	var color bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Lex entries interactively, an entry ends at a blank line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var theme render.Theme
			if color {
				theme = render.DefaultTheme()
			}

			return repl(cmd.OutOrStdout(), opts, theme)
		},
	}

	cmd.Flags().BoolVar(&color, "color", true, "color the output")

	return cmd
}

func repl(w io.Writer, opts *options, theme render.Theme) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)
	ln.SetCompleter(completeKeyword)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	format := "tokens"
	fmt.Fprintln(w, "offside: enter source, finish with a blank line; :format tokens|indent, :quit")

	for {
		entry, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(w)
			return nil
		}

		trimmed := strings.TrimSpace(entry)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit":
			return nil
		case strings.HasPrefix(trimmed, ":format "):
			format = strings.TrimSpace(strings.TrimPrefix(trimmed, ":format "))
			continue
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(w, "unknown command. Type :quit to exit.")
			continue
		}

		tokens := lexer.Tokenize(opts.label, entry, opts.lexerOptions()...)

		var err error
		switch format {
		case "indent":
			err = render.Indented(w, tokens, theme)
		default:
			err = render.Tokens(w, tokens, theme)
		}
		if err != nil {
			return err
		}

		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
	}
}

// readEntry prompts for lines until a blank one; commands are single line entries.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return b.String(), true
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if strings.TrimSpace(line) == "" {
			return b.String(), true
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// completeKeyword completes the last word of line with keywords.
func completeKeyword(line string) (completions []string) {
	cut := strings.LastIndexAny(line, " \t") + 1
	prefix, word := line[:cut], line[cut:]
	if word == "" {
		return
	}

	for _, keyword := range lexer.Keywords() {
		if strings.HasPrefix(keyword, word) {
			completions = append(completions, prefix+keyword)
		}
	}

	return
}
