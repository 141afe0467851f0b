// Package bindcheck statically inspects binder.Bind declarations.
package bindcheck

import (
	"fmt"
	"go/token"
)

// Declaration represents a binder.Bind call found in source.
type Declaration struct {
	Position       token.Position `json:"-"`
	Location       string         `json:"location"`
	Package        string         `json:"package"`
	Func           string         `json:"func"`
	Contract       string         `json:"contract"`
	Implementation string         `json:"implementation"`
	Lifetime       string         `json:"lifetime"`
	Eager          bool           `json:"eager"`
	Service        bool           `json:"service"`

	// assignable is false when Implementation does not satisfy Contract.
	assignable bool
}

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a problem found in a declaration.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Position token.Position `json:"-"`
	Location string         `json:"location"`
	Message  string         `json:"message"`
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
}

// Report is the result of a check.
type Report struct {
	Declarations []*Declaration `json:"declarations"`
	Diagnostics  []*Diagnostic  `json:"diagnostics"`
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}
