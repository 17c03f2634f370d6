// Package opdoc generates a reference document for the standard operator
// set by combining the live registry (names and signatures) with the doc
// comments on internal/ops' own source, loaded statically via
// golang.org/x/tools/go/packages — the read half of the teacher's
// ext.Inspector, without the code-generation side.
package opdoc

import (
	"fmt"
	"go/ast"
	"go/doc"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/cartexpr/cartexpr/internal/ops"
)

// OperatorEntry is one row of the generated reference: an operator's name
// and its registry-reported call signature.
type OperatorEntry struct {
	Name      string
	Signature string
}

// FuncDoc is a top-level function's doc comment, as found in source.
type FuncDoc struct {
	Name string
	Doc  string
}

// Report is the full generated document: the live operator table plus
// whatever doc comments internal/ops' own source carries.
type Report struct {
	Operators []OperatorEntry
	Funcs     []FuncDoc
}

// Generate loads internal/ops via go/packages and builds a Report.
func Generate() (*Report, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedSyntax | packages.NeedFiles,
	}
	pkgs, err := packages.Load(cfg, "github.com/cartexpr/cartexpr/internal/ops")
	if err != nil {
		return nil, fmt.Errorf("loading internal/ops: %w", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("internal/ops has load errors")
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("internal/ops: no packages returned")
	}
	pkg := pkgs[0]

	files := make(map[string]*ast.File, len(pkg.Syntax))
	for i, f := range pkg.Syntax {
		name := pkg.CompiledGoFiles[i]
		files[name] = f
	}
	astPkg := &ast.Package{Name: pkg.Name, Files: files}
	docPkg := doc.New(astPkg, pkg.PkgPath, doc.AllDecls)

	funcs := make([]FuncDoc, 0, len(docPkg.Funcs))
	for _, f := range docPkg.Funcs {
		doc := strings.TrimSpace(f.Doc)
		if doc == "" {
			continue
		}
		funcs = append(funcs, FuncDoc{Name: f.Name, Doc: doc})
	}
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Name < funcs[j].Name })

	reg := ops.Standard()
	entries := make([]OperatorEntry, 0, len(reg.All()))
	for _, op := range reg.All() {
		entries = append(entries, OperatorEntry{Name: op.Name(), Signature: op.Signature().String()})
	}

	return &Report{Operators: entries, Funcs: funcs}, nil
}

// Markdown renders a Report as a Markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Operator reference\n\n")
	b.WriteString("| Name | Signature |\n|---|---|\n")
	for _, e := range r.Operators {
		b.WriteString(fmt.Sprintf("| `%s` | `%s` |\n", e.Name, e.Signature))
	}
	if len(r.Funcs) > 0 {
		b.WriteString("\n## Notes from internal/ops\n\n")
		for _, f := range r.Funcs {
			b.WriteString(fmt.Sprintf("**%s** — %s\n\n", f.Name, f.Doc))
		}
	}
	return b.String()
}
