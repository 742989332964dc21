package report

import (
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/packagefactory/componentengine/token"
)

// HCL converts reports into HCL diagnostics so they can be consumed by tools
// that already understand them.
func HCL(reports ...Report) hcl.Diagnostics {
	diags := make(hcl.Diagnostics, 0, len(reports))
	for _, r := range reports {
		severity := hcl.DiagError
		if !r.Type().IsError() {
			severity = hcl.DiagWarning
		}

		rng := hclRange(r)
		diags = append(diags, &hcl.Diagnostic{
			Severity: severity,
			Summary:  r.Type().String(),
			Detail:   r.Message(),
			Subject:  &rng,
		})
	}
	return diags
}

func hclRange(r Report) hcl.Range {
	return hcl.Range{
		Filename: r.Location().Path(),
		Start:    hclPos(r.Range().Start),
		End:      hclPos(r.Range().End),
	}
}

func hclPos(p token.Position) hcl.Pos {
	return hcl.Pos{Line: p.Line + 1, Column: p.Column + 1, Byte: p.Offset}
}

// WriteHCL writes the reports with the HCL diagnostic text writer, which
// shows the source snippet of every report.
func WriteHCL(w io.Writer, width uint, colors bool, reports ...Report) error {
	files := make(map[string]*hcl.File)
	for _, r := range reports {
		if src := r.Source(); src != nil {
			files[src.Path] = &hcl.File{Bytes: []byte(src.Contents)}
		}
	}

	return hcl.NewDiagnosticTextWriter(w, files, width, colors).WriteDiagnostics(HCL(reports...))
}
