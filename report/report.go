package report

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
)

// ReportType is the kind of a report.
type ReportType byte

const (
	// OtherError is an error that does not come from any compilation stage.
	OtherError ReportType = iota
	// Lexical reports come from the scanner.
	Lexical
	// Syntax reports come from the parser and from AST construction.
	Syntax
	// Typing reports come from type resolution.
	Typing
	// Info is a report that does not prevent compilation.
	Info
	// Warning is a report that does not prevent compilation.
	Warning
)

func (t ReportType) String() string {
	switch t {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case Typing:
		return "type error"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Color returns the function used to paint reports of this type.
func (t ReportType) Color() func(string, ...interface{}) string {
	switch t {
	case Info:
		return color.CyanString
	case Warning:
		return color.YellowString
	default:
		return color.RedString
	}
}

// IsError reports whether reports of this type abort compilation.
func (t ReportType) IsError() bool {
	return t != Info && t != Warning
}

// Report is a problem found in a source. Every report is also an error.
type Report interface {
	error
	Type() ReportType
	Message() string
	Source() *source.Source
	Range() token.Range
	Location() source.Location
}

// BaseReport holds the data every report has.
type BaseReport struct {
	typ ReportType
	src *source.Source
	rng token.Range
	msg string
}

// NewBaseReport creates a new report of the given type.
func NewBaseReport(typ ReportType, src *source.Source, rng token.Range, msg string) BaseReport {
	return BaseReport{typ, src, rng, msg}
}

func (r BaseReport) Type() ReportType          { return r.typ }
func (r BaseReport) Message() string           { return r.msg }
func (r BaseReport) Source() *source.Source    { return r.src }
func (r BaseReport) Range() token.Range        { return r.rng }
func (r BaseReport) Location() source.Location { return source.Location{Source: r.src, Range: r.rng} }

func (r BaseReport) Error() string {
	return fmt.Sprintf("%s: %s: %s", r.Location(), r.typ, r.msg)
}

// Diagnostic is a report ready to be shown to the user.
type Diagnostic struct {
	Type    ReportType
	Message string
	Range   token.Range
	Region  *source.Snippet
}
