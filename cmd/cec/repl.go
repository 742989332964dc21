package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/packagefactory/componentengine/compile"
	"github.com/packagefactory/componentengine/config"
	"github.com/packagefactory/componentengine/parser"
	"github.com/packagefactory/componentengine/report"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/types"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const replHelp = `Write an expression to see its type. Expressions can span many lines.

  :load FILE  check the module in FILE and bring its names into scope
  :help       display this help
  :quit       exit
`

func newReplCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Display the types of expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(config.Default())
			if err != nil {
				return err
			}

			r := newRepl(cmd.OutOrStdout(), cmd.ErrOrStderr(), flags, opts)
			if isInteractive(cmd.InOrStdin()) {
				return r.runInteractive()
			}
			return r.run(cmd.InOrStdin())
		},
	}
}

type repl struct {
	out, errOut io.Writer
	flags       *globalFlags
	opts        config.Options
	session     *compile.Session
	scope       *types.Scope
	buffer      strings.Builder
	done        bool
}

func newRepl(out, errOut io.Writer, flags *globalFlags, opts config.Options) *repl {
	s := compile.NewSession(source.NewFsLoader("."), opts)
	return &repl{
		out:     out,
		errOut:  errOut,
		flags:   flags,
		opts:    opts,
		session: s,
		scope:   types.Universe(s.Registry),
	}
}

func (r *repl) prompt() string {
	if r.buffer.Len() > 0 {
		return "...> "
	}
	return "cec> "
}

// input handles a line. Lines are buffered until they form a whole
// expression.
func (r *repl) input(line string) {
	if r.buffer.Len() == 0 {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ":") {
			r.command(trimmed)
			return
		}
		if trimmed == "" {
			return
		}
	}

	r.buffer.WriteString(line)
	r.buffer.WriteString("\n")

	text := strings.TrimRightFunc(r.buffer.String(), unicode.IsSpace)
	src := source.NewSource("repl", text)
	expr, err := parser.ParseExpr(src, r.opts.ParserOptions()...)
	if err != nil && incomplete(err, len(text)) {
		return
	}

	r.buffer.Reset()
	if err != nil {
		r.problems(err)
		return
	}

	t, err := types.TypeOf(src, expr, r.scope, &types.Config{Registry: r.session.Registry})
	if err != nil {
		r.problems(err)
		return
	}
	fmt.Fprintln(r.out, t)
}

// incomplete reports whether err was found at the end of the input, so more
// input could fix it.
func incomplete(err error, end int) bool {
	rep, ok := err.(report.Report)
	return ok && rep.Type() == report.Syntax && rep.Range().Start.Offset >= end
}

func (r *repl) command(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		r.done = true
	case ":help", ":h":
		fmt.Fprint(r.out, replHelp)
	case ":load", ":l":
		if len(fields) != 2 {
			fmt.Fprintln(r.errOut, "usage: :load FILE")
			return
		}
		r.load(fields[1])
	default:
		fmt.Fprintf(r.errOut, "unknown command %s, try :help\n", fields[0])
	}
}

func (r *repl) load(path string) {
	units, err := r.session.CompileAll(filepath.Clean(path))
	if err != nil {
		r.problems(err)
		return
	}

	unit := units[len(units)-1]
	scope := types.NewScope(r.scope)
	for name, t := range unit.Info.Scope.Values {
		scope.Insert(name, t)
	}
	for name, t := range unit.Info.Scope.Types {
		scope.InsertType(name, t)
	}
	r.scope = scope
	fmt.Fprintf(r.out, "loaded %s: %s\n", unit.Path, strings.Join(localNames(scope), ", "))
}

// localNames returns the names bound in scope, without its parents.
func localNames(scope *types.Scope) []string {
	seen := make(map[string]bool)
	var names []string
	for n := range scope.Values {
		seen[n] = true
		names = append(names, n)
	}
	for n := range scope.Types {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func (r *repl) problems(err error) {
	if err := emit(r.errOut, r.flags, r.opts, err); err != nil && err != errProblems {
		fmt.Fprintln(r.errOut, err)
	}
}

// run reads the input line by line, for when it is not a terminal.
func (r *repl) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for !r.done && scanner.Scan() {
		r.input(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "can't read input")
	}

	if r.buffer.Len() > 0 {
		r.flush()
	}
	return nil
}

// flush reports the buffered input, which is not a whole expression.
func (r *repl) flush() {
	text := strings.TrimRightFunc(r.buffer.String(), unicode.IsSpace)
	r.buffer.Reset()
	if _, err := parser.ParseExpr(source.NewSource("repl", text), r.opts.ParserOptions()...); err != nil {
		r.problems(err)
	}
}

func (r *repl) runInteractive() error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	history := historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(history); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	fmt.Fprint(r.out, "Type :help for help.\n")
	for !r.done {
		line, err := state.Prompt(r.prompt())
		switch {
		case err == liner.ErrPromptAborted:
			r.buffer.Reset()
			continue
		case err == io.EOF:
			fmt.Fprintln(r.out)
			return nil
		case err != nil:
			return errors.Wrap(err, "can't read input")
		}

		if trimmed := strings.TrimSpace(line); trimmed != "" {
			state.AppendHistory(trimmed)
		}
		r.input(line)
	}
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".cec_history")
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
