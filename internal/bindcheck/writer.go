package bindcheck

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// WriteDiagnostics writes one line per diagnostic.
func WriteDiagnostics(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r.Diagnostics)
	case FormatText:
		for _, d := range r.Diagnostics {
			if _, err := fmt.Fprintln(w, d.String()); err != nil {
				return fmt.Errorf("write diagnostic: %w", err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteDeclarations writes the declarations of r as a table or JSON.
func WriteDeclarations(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r.Declarations)
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CONTRACT\tIMPLEMENTATION\tLIFETIME\tSERVICE\tEAGER\tFUNC\tLOCATION")
		for _, d := range r.Declarations {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\t%s\t%s\n",
				d.Contract, d.Implementation, d.Lifetime, d.Service, d.Eager, d.Func, d.Location)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("write declarations: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}
