// Command cec is a development tool for component modules. It can list the
// tokens of a module, print its syntax tree, check whole projects and
// evaluate the types of expressions interactively.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/packagefactory/componentengine/compile"
	"github.com/packagefactory/componentengine/config"
	"github.com/packagefactory/componentengine/report"
	"github.com/packagefactory/componentengine/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// errProblems is returned by commands after their problems were reported.
var errProblems = errors.New("problems found")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if err != errProblems {
			fmt.Fprintln(os.Stderr, "cec:", err)
		}
		os.Exit(1)
	}
}

type globalFlags struct {
	config     string
	maxDepth   int
	noColor    bool
	noWarnings bool
	hcl        bool
	width      uint
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:           "cec",
		Short:         "Inspect and check component modules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(
		&flags.config, "config", "", "YAML file with the compiler options")
	cmd.PersistentFlags().IntVar(
		&flags.maxDepth, "max-depth", 0, "Maximum nesting of expressions, tags and types")
	cmd.PersistentFlags().BoolVar(
		&flags.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(
		&flags.noWarnings, "no-warnings", false, "Do not show warnings")
	cmd.PersistentFlags().BoolVar(
		&flags.hcl, "hcl", false, "Write problems as HCL diagnostics")
	cmd.PersistentFlags().UintVar(
		&flags.width, "width", 80, "Width used to wrap HCL diagnostics")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(
		newTokensCmd(&flags),
		newParseCmd(&flags),
		newCheckCmd(&flags),
		newReplCmd(&flags),
	)
	return cmd
}

// options returns base with the options given in the command line on top.
func (f *globalFlags) options(base config.Options) (config.Options, error) {
	opts := base
	if f.config != "" {
		var err error
		if opts, err = config.Load(f.config); err != nil {
			return config.Options{}, err
		}
	}

	if f.maxDepth > 0 {
		opts.MaxDepth = f.maxDepth
	}
	if f.noColor {
		opts.Colors = false
	}
	if f.noWarnings {
		opts.Warnings = false
	}
	return opts, nil
}

// readSource reads the module in the file given as argument, or in the
// standard input if there is none or it is "-".
func readSource(cmd *cobra.Command, args []string) (*source.Source, error) {
	if len(args) == 0 || args[0] == "-" {
		contents, err := ioutil.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(err, "can't read standard input")
		}
		return source.NewSource("stdin", string(contents)), nil
	}

	contents, err := ioutil.ReadFile(args[0])
	if err != nil {
		return nil, errors.Wrapf(err, "can't read %s", args[0])
	}
	return source.NewSource(args[0], string(contents)), nil
}

// emit writes the problems in err. It returns errProblems if any of them is
// an error.
func emit(w io.Writer, flags *globalFlags, opts config.Options, err error) error {
	if err == nil {
		return nil
	}

	reports := compile.Reports(err)
	if flags.hcl {
		if err := report.WriteHCL(w, flags.width, opts.Colors, reports...); err != nil {
			return err
		}
	} else {
		r := report.NewReporter(report.Writer(w, opts.Warnings, opts.Colors))
		for _, rep := range reports {
			r.Report(rep)
		}
		if err := r.Emit(); err != nil {
			return err
		}
	}

	for _, rep := range reports {
		if rep.Type().IsError() {
			return errProblems
		}
	}
	return nil
}
