// Package source extracts and hashes the source text of strategies so that
// fingerprints are regenerated only when a strategy's code changes.
package source

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strings"

	"github.com/agbru/fingerprints/internal/game"
)

// ErrNoSource is returned when no text can be found to identify a player.
var ErrNoSource = errors.New("no source available")

// Definer is implemented by players whose identity is a data definition
// rather than code.
type Definer interface {
	Definition() string
}

// Introspector indexes the Go source of a set of files by type: each entry
// holds a type declaration followed by all of its methods, in file order.
type Introspector struct {
	types map[string]string // "pkg.Type" -> source text
}

// NewIntrospector parses every .go file at the root of fsys.
func NewIntrospector(fsys fs.FS) (*Introspector, error) {
	names, err := fs.Glob(fsys, "*.go")
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	sort.Strings(names)

	parts := make(map[string][]string)
	fset := token.NewFileSet()
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		file, err := parser.ParseFile(fset, name, data, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		pkg := file.Name.Name
		text := func(n ast.Node) string {
			return string(data[fset.Position(n.Pos()).Offset:fset.Position(n.End()).Offset])
		}
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					key := pkg + "." + ts.Name.Name
					parts[key] = append(parts[key], "type "+text(ts))
				}
			case *ast.FuncDecl:
				if recv := receiverName(d); recv != "" {
					key := pkg + "." + recv
					parts[key] = append(parts[key], text(d))
				}
			}
		}
	}

	in := &Introspector{types: make(map[string]string, len(parts))}
	for key, p := range parts {
		in.types[key] = strings.Join(p, "\n")
	}
	return in, nil
}

// receiverName returns the base type name of a method's receiver, or "" for
// plain functions.
func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.IndexListExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	}
	return ""
}

// TypeSource returns the indexed source of the concrete type of v.
func (in *Introspector) TypeSource(v any) (string, bool) {
	t := reflect.TypeOf(v)
	if t == nil {
		return "", false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "", false
	}
	src, ok := in.types[path.Base(t.PkgPath())+"."+t.Name()]
	return src, ok
}

// Len returns the number of indexed types.
func (in *Introspector) Len() int { return len(in.types) }

// Text returns the text that identifies p for change detection. It tries in
// order: the source of p's own type, the text of the player it wraps, its
// definition, and its original name.
func (in *Introspector) Text(p game.Player) (string, error) {
	if src, ok := in.TypeSource(p); ok {
		return src, nil
	}
	if u, ok := p.(game.Unwrapper); ok {
		return in.Text(u.Unwrap())
	}
	if d, ok := p.(Definer); ok {
		return d.Definition(), nil
	}
	if n, ok := p.(game.OriginalNamer); ok {
		return n.OriginalName(), nil
	}
	return "", fmt.Errorf("%s: %w", p.Name(), ErrNoSource)
}

// Signature returns the hash of p's identifying text.
func (in *Introspector) Signature(p game.Player) (string, error) {
	text, err := in.Text(p)
	if err != nil {
		return "", err
	}
	return Hash(text), nil
}

// Hash returns the lowercase hex MD5 digest of text.
func Hash(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
