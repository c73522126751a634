package verify

import "fmt"

// Severity ranks a finding.
type Severity int

// Finding severities. Warnings flag conditions expected of a partial snapshot, such as
// references into tables the dump does not carry.
const (
	Warning Severity = iota
	Error
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Finding is one integrity violation located in the snapshot.
type Finding struct {
	Severity Severity
	// Table is the table the finding was detected in.
	Table string
	// Column is the offending column, when the check is column-scoped.
	Column string
	// RowID is the primary key of the offending row, 0 when not row-scoped.
	RowID int64
	// Detail is a human-readable description.
	Detail string
}

// String implements fmt.Stringer.
func (f Finding) String() string {
	loc := f.Table
	if f.Column != "" {
		loc += "." + f.Column
	}
	if f.RowID != 0 {
		loc += fmt.Sprintf("#%d", f.RowID)
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, loc, f.Detail)
}

// Report aggregates the findings of a verification run.
type Report struct {
	Findings []Finding
}

func (r *Report) add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// Errors returns the error-severity findings.
func (r *Report) Errors() []Finding {
	var errs []Finding
	for _, f := range r.Findings {
		if f.Severity == Error {
			errs = append(errs, f)
		}
	}
	return errs
}

// Warnings returns the warning-severity findings.
func (r *Report) Warnings() []Finding {
	var warns []Finding
	for _, f := range r.Findings {
		if f.Severity == Warning {
			warns = append(warns, f)
		}
	}
	return warns
}

// OK reports whether the run produced no errors. Warnings do not fail a report.
func (r *Report) OK() bool {
	return len(r.Errors()) == 0
}
