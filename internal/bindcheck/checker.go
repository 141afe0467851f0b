package bindcheck

import (
	"fmt"
	"log/slog"

	"github.com/mazrean/binder/internal/pkg/collection"
	"golang.org/x/tools/go/packages"
)

// Checker handles the overall binding check process.
type Checker struct {
	parser *Parser
}

// NewChecker creates a new checker that resolves patterns relative to dir.
func NewChecker(dir string) *Checker {
	return &Checker{
		parser: NewParser(dir),
	}
}

// Check loads the packages matching patterns and inspects every
// binder.Bind declaration found in them.
func (c *Checker) Check(patterns ...string) (*Report, error) {
	pkgs, err := c.parser.Load(patterns...)
	if err != nil {
		return nil, fmt.Errorf("load %v: %w", patterns, err)
	}

	queue := collection.NewQueue(func(pkg *packages.Package) string {
		return pkg.ID
	})
	for _, pkg := range pkgs {
		queue.Push(pkg)
	}

	report := &Report{
		Declarations: []*Declaration{},
		Diagnostics:  []*Diagnostic{},
	}
	for pkg := range queue.Iter {
		slog.Debug("Processing package", "package", pkg.PkgPath)

		decls := c.parser.ParsePackage(pkg)
		if len(decls) == 0 {
			continue
		}

		slog.Info("Found bind declarations", "package", pkg.PkgPath, "count", len(decls))

		report.Declarations = append(report.Declarations, decls...)
		report.Diagnostics = append(report.Diagnostics, diagnose(decls)...)
	}

	return report, nil
}

// diagnose reports non-assignable implementations and contracts bound
// more than once in the same function.
func diagnose(decls []*Declaration) []*Diagnostic {
	var diags []*Diagnostic

	type scopeKey struct {
		pkg, fn, contract string
	}
	first := make(map[scopeKey]*Declaration)

	for _, d := range decls {
		if !d.assignable {
			diags = append(diags, &Diagnostic{
				Severity: SeverityError,
				Position: d.Position,
				Location: d.Location,
				Message:  fmt.Sprintf("%s does not implement %s", d.Implementation, d.Contract),
			})
		}

		key := scopeKey{pkg: d.Package, fn: d.Func, contract: d.Contract}
		if prev, ok := first[key]; ok {
			diags = append(diags, &Diagnostic{
				Severity: SeverityWarning,
				Position: d.Position,
				Location: d.Location,
				Message: fmt.Sprintf("%s is already bound to %s at %s; the later binding to %s wins",
					d.Contract, prev.Implementation, prev.Location, d.Implementation),
			})
			continue
		}
		first[key] = d
	}

	return diags
}
