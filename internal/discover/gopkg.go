package discover

import (
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"io/fs"
	"strings"

	"github.com/numdoc/numdoc/internal/errors"
)

// LoadPackage parses the Go package in dir and builds its
// documentation tree. Test files are ignored.
func LoadPackage(dir string) (*Object, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi fs.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	if err != nil {
		return nil, errors.Discoveryf("failed to parse package in %s: %v", dir, err)
	}

	var astPkg *ast.Package
	for name, p := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		astPkg = p
		break
	}
	if astPkg == nil {
		return nil, errors.Discoveryf("no Go package found in %s", dir)
	}

	docPkg := doc.New(astPkg, dir, 0)
	return buildPackage(fset, docPkg), nil
}

func buildPackage(fset *token.FileSet, docPkg *doc.Package) *Object {
	root := &Object{
		Name:     docPkg.Name,
		ID:       docPkg.ImportPath + ":package",
		Kind:     KindPackage,
		Doc:      docPkg.Doc,
		Filename: docPkg.ImportPath,
	}

	for _, v := range append(append([]*doc.Value{}, docPkg.Consts...), docPkg.Vars...) {
		if len(v.Names) == 0 {
			continue
		}
		root.Members = append(root.Members, &Object{
			Name:       docPkg.Name + "." + v.Names[0],
			ID:         docPkg.ImportPath + ":" + v.Names[0],
			Kind:       KindValue,
			Doc:        v.Doc,
			Filename:   position(fset, v.Decl.Pos()).Filename,
			Line:       position(fset, v.Decl.Pos()).Line,
			Deprecated: isDeprecated(v.Doc),
		})
	}

	for _, fn := range docPkg.Funcs {
		root.Members = append(root.Members, buildFunc(fset, docPkg, fn, ""))
	}

	types := map[string]*Object{}
	for _, t := range docPkg.Types {
		obj := &Object{
			Name:       docPkg.Name + "." + t.Name,
			ID:         docPkg.ImportPath + ":" + t.Name,
			Kind:       KindType,
			Doc:        t.Doc,
			Filename:   position(fset, t.Decl.Pos()).Filename,
			Line:       position(fset, t.Decl.Pos()).Line,
			Deprecated: isDeprecated(t.Doc),
		}
		for _, fn := range t.Funcs {
			obj.Members = append(obj.Members, buildFunc(fset, docPkg, fn, ""))
		}
		for _, m := range t.Methods {
			obj.Members = append(obj.Members, buildFunc(fset, docPkg, m, t.Name))
		}
		types[t.Name] = obj
		root.Members = append(root.Members, obj)
	}

	// embedded exported types within the package become bases
	for _, t := range docPkg.Types {
		obj := types[t.Name]
		for _, embedded := range embeddedNames(t) {
			if base, ok := types[embedded]; ok {
				obj.Bases = append(obj.Bases, base)
			}
		}
	}

	return root
}

func buildFunc(fset *token.FileSet, docPkg *doc.Package, fn *doc.Func, recv string) *Object {
	kind := KindFunc
	name := docPkg.Name + "." + fn.Name
	if recv != "" {
		kind = KindMethod
		name = docPkg.Name + "." + recv + "." + fn.Name
	}
	return &Object{
		Name:       name,
		ID:         docPkg.ImportPath + ":" + strings.TrimPrefix(name, docPkg.Name+"."),
		Kind:       kind,
		Doc:        fn.Doc,
		Filename:   position(fset, fn.Decl.Pos()).Filename,
		Line:       position(fset, fn.Decl.Pos()).Line,
		Deprecated: isDeprecated(fn.Doc),
	}
}

// embeddedNames lists the exported embedded field type names of a
// struct type declaration.
func embeddedNames(t *doc.Type) []string {
	var names []string
	for _, spec := range t.Decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			continue
		}
		for _, field := range st.Fields.List {
			if len(field.Names) > 0 {
				continue
			}
			if ident := embeddedIdent(field.Type); ident != "" && isExported(ident) {
				names = append(names, ident)
			}
		}
	}
	return names
}

func embeddedIdent(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.StarExpr:
		return embeddedIdent(x.X)
	}
	return ""
}

func position(fset *token.FileSet, pos token.Pos) token.Position {
	return fset.Position(pos)
}

func isDeprecated(docText string) bool {
	for _, para := range strings.Split(docText, "\n\n") {
		if strings.HasPrefix(strings.TrimSpace(para), "Deprecated:") {
			return true
		}
	}
	return false
}
