package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
)

// Emitter emits the diagnostics of a file to the user.
type Emitter interface {
	Emit(file string, diagnostics []*Diagnostic) error
}

// Stderr returns an emitter writing to the standard error.
func Stderr(warnings, colors bool) Emitter {
	return Writer(os.Stderr, warnings, colors)
}

// Writer returns an emitter writing to w. Warnings and infos are only
// written if warnings is true.
func Writer(w io.Writer, warnings, colors bool) Emitter {
	return &writerEmitter{w, warnings, colors}
}

// Errors returns an emitter that returns the diagnostics of a file as an
// error, if there is any to show.
func Errors(warnings bool) Emitter {
	return &errorEmitter{warnings}
}

type errorEmitter struct {
	warnings bool
}

func (e *errorEmitter) Emit(file string, diagnostics []*Diagnostic) error {
	var buf bytes.Buffer
	if err := Writer(&buf, e.warnings, false).Emit(file, diagnostics); err != nil {
		return err
	}

	if buf.Len() == 0 {
		return nil
	}
	return fmt.Errorf("problems found at file: %s\n\n%s", file, buf.String())
}

type writerEmitter struct {
	w        io.Writer
	warnings bool
	colors   bool
}

func (e *writerEmitter) shown(diagnostics []*Diagnostic) []*Diagnostic {
	var result []*Diagnostic
	for _, d := range diagnostics {
		if e.warnings || d.Type.IsError() {
			result = append(result, d)
		}
	}
	return result
}

func (e *writerEmitter) Emit(file string, diagnostics []*Diagnostic) error {
	diagnostics = e.shown(diagnostics)
	if len(diagnostics) == 0 {
		return nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "I found problems at file: %s\n\n", file)

	var errs, warns int
	for _, d := range diagnostics {
		if d.Type.IsError() {
			errs++
		} else {
			warns++
		}
		e.write(&buf, file, d)
	}

	buf.WriteString(summary(errs, warns))
	buf.WriteString("\n\n")

	_, err := e.w.Write(buf.Bytes())
	return err
}

func (e *writerEmitter) write(buf *bytes.Buffer, file string, d *Diagnostic) {
	start := d.Range.Start
	fmt.Fprintf(
		buf,
		"%s:%d:%d: %s: %s\n",
		file, start.Line+1, start.Column+1,
		e.paint(d.Type, d.Type.String()),
		d.Message,
	)

	if d.Region != nil && len(d.Region.Lines) > 0 {
		e.writeRegion(buf, d.Type, d.Range, d.Region)
	}
	buf.WriteRune('\n')
}

// writeRegion writes the lines of the region with a gutter of line numbers,
// underlining the range in the line where it starts.
func (e *writerEmitter) writeRegion(buf *bytes.Buffer, typ ReportType, rng token.Range, region *source.Snippet) {
	width := len(fmt.Sprint(region.Start + len(region.Lines)))
	for i, line := range region.Lines {
		n := region.Start + i
		fmt.Fprintf(buf, "%*d | %s\n", width, n+1, line)
		if n != rng.Start.Line {
			continue
		}

		fmt.Fprintf(
			buf,
			"%*s | %s%s\n",
			width, "",
			indentation(line, rng.Start.Column),
			e.paint(typ, strings.Repeat("^", underlineLen(line, rng))),
		)
	}
}

func (e *writerEmitter) paint(typ ReportType, s string) string {
	if e.colors {
		return typ.Color()("%s", s)
	}
	return s
}

// indentation returns the blank space before column in line, keeping tabs
// so the underline stays aligned.
func indentation(line string, column int) string {
	if column > len(line) {
		return strings.Repeat(" ", column)
	}

	var sb strings.Builder
	for _, r := range line[:column] {
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

func underlineLen(line string, rng token.Range) int {
	n := len(line) - rng.Start.Column
	if rng.End.Line == rng.Start.Line {
		n = rng.End.Column - rng.Start.Column
	}
	if n < 1 {
		return 1
	}
	return n
}

func summary(errs, warns int) string {
	var parts []string
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	if warns > 0 {
		parts = append(parts, plural(warns, "warning"))
	}
	return strings.Join(parts, " and ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
