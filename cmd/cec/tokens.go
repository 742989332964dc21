package main

import (
	"fmt"

	"github.com/packagefactory/componentengine/config"
	"github.com/packagefactory/componentengine/scanner"
	"github.com/spf13/cobra"
)

func newTokensCmd(flags *globalFlags) *cobra.Command {
	var trivia bool
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Display the list of tokens of a module",
		Long: "Display the list of tokens of a module with their positions.\n\n" +
			"The module is read from the standard input if no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(config.Default())
			if err != nil {
				return err
			}
			if trivia {
				opts.KeepTrivia = true
			}

			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			toks, err := scanner.Tokenize(src, opts.ScannerOptions()...)
			for _, t := range toks {
				fmt.Fprintf(
					cmd.OutOrStdout(),
					"LINE: %4d POS: %4d TYPE: %-20s %q\n",
					t.Range.Start.Line+1,
					t.Range.Start.Column+1,
					t.Type,
					t.Value,
				)
			}
			return emit(cmd.ErrOrStderr(), flags, opts, err)
		},
	}

	cmd.Flags().BoolVar(&trivia, "trivia", false, "Include whitespace and comments")
	return cmd
}
