package bindcheck

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

func mustParseCall(t *testing.T, src string) *ast.CallExpr {
	t.Helper()

	expr, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("%q is not a call expression", src)
	}

	return call
}

func mustParseFunc(t *testing.T, src string) *ast.FuncDecl {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "src.go", "package p\n\n"+src, 0)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			return fn
		}
	}

	t.Fatalf("%q has no function declaration", src)
	return nil
}
