package bindcheck

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"

	"golang.org/x/tools/go/packages"
)

// Parser loads Go packages and extracts binder.Bind declarations.
type Parser struct {
	fset *token.FileSet
	dir  string
}

// NewParser creates a new parser that resolves patterns relative to dir.
// An empty dir means the current working directory.
func NewParser(dir string) *Parser {
	return &Parser{
		fset: token.NewFileSet(),
		dir:  dir,
	}
}

// Load loads the packages matching patterns with syntax and type information.
func (p *Parser) Load(patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedTypes | packages.NeedTypesSizes |
			packages.NeedSyntax | packages.NeedTypesInfo,
		Fset: p.fset,
		Dir:  p.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	// Allow some errors but continue if we have valid packages
	errorCount := packages.PrintErrors(pkgs)
	if errorCount > 0 && len(pkgs) == 0 {
		return nil, errors.New("package loading errors occurred and no packages loaded")
	}

	return pkgs, nil
}

// ParsePackage finds all binder.Bind calls in pkg.
func (p *Parser) ParsePackage(pkg *packages.Package) []*Declaration {
	if pkg.Types == nil || pkg.TypesInfo == nil {
		slog.Warn("package has no type information", "package", pkg.PkgPath)
		return nil
	}

	if _, ok := pkg.Imports[binderPkgPath]; !ok && pkg.PkgPath != binderPkgPath {
		slog.Debug("binder package is not imported", "package", pkg.PkgPath)
		return nil
	}

	var decls []*Declaration
	for _, file := range pkg.Syntax {
		decls = append(decls, p.parseFile(pkg, file)...)
	}

	return decls
}

func (p *Parser) parseFile(pkg *packages.Package, file *ast.File) []*Declaration {
	info := pkg.TypesInfo
	qualifier := types.RelativeTo(pkg.Types)

	services := p.findServiceArgs(file, info)

	var decls []*Declaration
	for _, decl := range file.Decls {
		scopes := []string{packageScope}
		if fn, ok := decl.(*ast.FuncDecl); ok {
			scopes[0] = funcName(fn)
		}

		var (
			nodes    []ast.Node
			specName string
			lits     = make(map[string]int)
		)
		ast.Inspect(decl, func(n ast.Node) bool {
			if n == nil {
				if _, ok := nodes[len(nodes)-1].(*ast.FuncLit); ok {
					scopes = scopes[:len(scopes)-1]
				}
				nodes = nodes[:len(nodes)-1]
				return true
			}
			nodes = append(nodes, n)

			switch n := n.(type) {
			case *ast.ValueSpec:
				if len(n.Names) > 0 {
					specName = n.Names[0].Name
				}
			case *ast.FuncLit:
				base := scopes[0]
				if base == packageScope && specName != "" {
					base = specName
				}
				lits[base]++
				scopes = append(scopes, fmt.Sprintf("%s.func%d", base, lits[base]))
			case *ast.CallExpr:
				ident := calleeIdent(n.Fun)
				if !isBinderFunc(info, ident, bindFuncName) {
					return true
				}

				d, err := p.parseBindCall(info, qualifier, ident, n)
				if err != nil {
					slog.Warn("parseBindCall failed", "position", p.fset.Position(n.Pos()), "error", err)
					return true
				}

				d.Package = pkg.PkgPath
				d.Func = scopes[len(scopes)-1]
				_, d.Service = services[n]
				decls = append(decls, d)
			}

			return true
		})
	}

	return decls
}

// parseBindCall parses a binder.Bind call expression.
func (p *Parser) parseBindCall(info *types.Info, qualifier types.Qualifier, ident *ast.Ident, call *ast.CallExpr) (*Declaration, error) {
	inst, ok := info.Instances[ident]
	if !ok || inst.TypeArgs == nil || inst.TypeArgs.Len() < 2 {
		return nil, errors.New("binder.Bind type arguments could not be inferred")
	}

	contract := inst.TypeArgs.At(0)
	implementation := inst.TypeArgs.At(1)

	pos := p.fset.Position(call.Pos())
	d := &Declaration{
		Position:       pos,
		Location:       pos.String(),
		Contract:       types.TypeString(contract, qualifier),
		Implementation: types.TypeString(implementation, qualifier),
		Lifetime:       "singleton",
		assignable:     types.AssignableTo(implementation, contract),
	}

	if len(call.Args) > 1 {
		for _, arg := range call.Args[1:] {
			optCall, ok := arg.(*ast.CallExpr)
			if !ok {
				continue
			}

			optIdent := calleeIdent(optCall.Fun)
			switch {
			case isBinderFunc(info, optIdent, transientOptName):
				d.Lifetime = "transient"
			case isBinderFunc(info, optIdent, eagerOptName):
				d.Eager = true
			}
		}
	}

	return d, nil
}

// findServiceArgs collects call expressions passed directly to
// (*binder.Binder).BindServices.
func (p *Parser) findServiceArgs(file *ast.File, info *types.Info) map[*ast.CallExpr]struct{} {
	args := make(map[*ast.CallExpr]struct{})

	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		selection, ok := info.Selections[sel]
		if !ok || selection.Kind() != types.MethodVal {
			return true
		}

		fn, ok := selection.Obj().(*types.Func)
		if !ok || fn.Name() != bindServicesFuncName || fn.Pkg() == nil || fn.Pkg().Path() != binderPkgPath {
			return true
		}

		if !isBinderRecv(selection.Recv()) {
			return true
		}

		for _, arg := range call.Args {
			if argCall, ok := arg.(*ast.CallExpr); ok {
				args[argCall] = struct{}{}
			}
		}

		return true
	})

	return args
}

func isBinderRecv(t types.Type) bool {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == binderPkgPath && obj.Name() == binderTypeName
}

// calleeIdent returns the identifier naming the called function, looking
// through package selectors and explicit type arguments.
func calleeIdent(fun ast.Expr) *ast.Ident {
	switch f := fun.(type) {
	case *ast.IndexExpr:
		return calleeIdent(f.X)
	case *ast.IndexListExpr:
		return calleeIdent(f.X)
	case *ast.SelectorExpr:
		return f.Sel
	case *ast.Ident:
		return f
	default:
		return nil
	}
}

// isBinderFunc reports whether ident names the package-level function
// binder.<name>. Methods such as (*binder.Binder).Bind do not match.
func isBinderFunc(info *types.Info, ident *ast.Ident, name string) bool {
	if ident == nil {
		return false
	}

	fn, ok := info.Uses[ident].(*types.Func)
	if !ok {
		return false
	}

	if sig, ok := fn.Type().(*types.Signature); !ok || sig.Recv() != nil {
		return false
	}

	return fn.Pkg() != nil && fn.Pkg().Path() == binderPkgPath && fn.Name() == name
}

// funcName formats a function declaration as "Name" or "(Recv).Name".
func funcName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}

	return fmt.Sprintf("(%s).%s", recvString(fn.Recv.List[0].Type), fn.Name.Name)
}

func recvString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return "*" + recvString(e.X)
	case *ast.Ident:
		return e.Name
	case *ast.IndexExpr:
		return recvString(e.X)
	case *ast.IndexListExpr:
		return recvString(e.X)
	default:
		return "?"
	}
}
