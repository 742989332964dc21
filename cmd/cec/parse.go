package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/packagefactory/componentengine/ast"
	"github.com/packagefactory/componentengine/config"
	"github.com/packagefactory/componentengine/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(flags *globalFlags) *cobra.Command {
	var expr bool
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Display the syntax tree of a module",
		Long: "Display the syntax tree of a module.\n\n" +
			"The module is read from the standard input if no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(config.Default())
			if err != nil {
				return err
			}

			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			var node ast.Node
			if expr {
				node, err = parser.ParseExpr(src, opts.ParserOptions()...)
			} else {
				node, err = parser.ParseModule(src, opts.ParserOptions()...)
			}
			if err != nil {
				return emit(cmd.ErrOrStderr(), flags, opts, err)
			}

			color.NoColor = color.NoColor || !opts.Colors
			ast.Walk(&treePrinter{w: cmd.OutOrStdout()}, node)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expr, "expr", false, "Parse a single expression instead of a module")
	return cmd
}

// treePrinter prints every node it visits on its own line, indented by its
// depth in the tree.
type treePrinter struct {
	w     io.Writer
	depth int
}

func (p *treePrinter) Visit(node ast.Node) ast.Visitor {
	if node == nil {
		return nil
	}

	kind, detail := describe(node)
	fmt.Fprintf(
		p.w,
		"%s%s %s %s\n",
		strings.Repeat("  ", p.depth),
		color.YellowString(kind+":"),
		detail,
		color.CyanString(node.Range().String()),
	)
	return &treePrinter{p.w, p.depth + 1}
}

// describe returns the kind of the node and the details of it that are not
// in its children.
func describe(node ast.Node) (string, string) {
	switch n := node.(type) {
	case *ast.Module:
		return "Module", n.Path()
	case *ast.Identifier:
		return "Identifier", n.Name
	case *ast.NullLiteral:
		return "Null", "null"
	case *ast.BooleanLiteral:
		return "Boolean", fmt.Sprint(n.Value)
	case *ast.IntegerLiteral:
		return "Integer", fmt.Sprintf("%s (%s)", n.Raw, n.Base)
	case *ast.StringLiteral:
		return "String", fmt.Sprintf("%q", n.Value)
	case *ast.TemplateText:
		return "TemplateText", fmt.Sprintf("%q", n.Value)
	case *ast.Text:
		return "Text", fmt.Sprintf("%q", n.Value)
	case *ast.ValueReference:
		return "Reference", n.String()
	case *ast.BinaryOperation:
		return "Binary", n.Operator.String()
	case *ast.UnaryOperation:
		return "Unary", n.Operator.String()
	case *ast.MatchArm:
		if n.Default {
			return "Arm", "default"
		}
		return "Arm", ""
	case *ast.Tag:
		if n.SelfClosing {
			return "Tag", "self closing"
		}
		return "Tag", ""
	case *ast.EnumDeclaration:
		return "Enum", n.Kind.String()
	}

	kind := strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast.")
	return strings.TrimSuffix(kind, "Declaration"), ""
}
