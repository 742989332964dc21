package report

import (
	"sort"

	"github.com/golang/glog"
	"github.com/packagefactory/componentengine/source"
	"github.com/packagefactory/componentengine/token"
)

// Reporter is in charge of reporting the diagnostics occurred during any of
// the compilation steps to the user.
type Reporter struct {
	emitter Emitter
	sources map[string]*source.Source
	reports map[string][]Report
}

// NewReporter creates a new reporter.
func NewReporter(emitter Emitter) *Reporter {
	return &Reporter{
		emitter,
		make(map[string]*source.Source),
		make(map[string][]Report),
	}
}

// IsOK returns true if there are no errors yet. Warnings and infos do not
// count.
func (r *Reporter) IsOK() bool {
	for _, reports := range r.reports {
		for _, rep := range reports {
			if rep.Type().IsError() {
				return false
			}
		}
	}
	return true
}

// Reports returns all reports of the given path, in the order they were
// added.
func (r *Reporter) Reports(path string) []Report {
	return r.reports[path]
}

// All returns all reports, sorted by path.
func (r *Reporter) All() []Report {
	var all []Report
	for _, path := range r.paths() {
		all = append(all, r.reports[path]...)
	}
	return all
}

// Report adds a new report. Reports without a source are kept under an empty
// path.
func (r *Reporter) Report(report Report) {
	var path string
	if src := report.Source(); src != nil {
		path = src.Path
		r.sources[path] = src
	}

	glog.V(3).Infof("report at %s: %s", report.Location(), report.Message())
	r.reports[path] = append(r.reports[path], report)
}

// Emit writes all the reports using the reporter's emitter, one file at a
// time, sorted by path.
func (r *Reporter) Emit() error {
	for _, path := range r.paths() {
		reports := r.reports[path]
		var ds = make([]*Diagnostic, 0, len(reports))
		for _, report := range reports {
			ds = append(ds, r.makeDiagnostic(path, report))
		}

		if err := r.emitter.Emit(path, ds); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) paths() []string {
	paths := make([]string, 0, len(r.reports))
	for p := range r.reports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// makeDiagnostic transforms a report into a diagnostic, with the affected
// snippet of code, if there is any.
func (r *Reporter) makeDiagnostic(path string, report Report) *Diagnostic {
	d := &Diagnostic{
		Type:    report.Type(),
		Message: report.Message(),
		Range:   report.Range(),
	}

	src := r.sources[path]
	if src == nil || report.Range() == (token.Range{}) {
		return d
	}

	d.Region = src.Region(report.Range())
	return d
}
