// Command sqllint verifies that every inline SQL constant begins with a
// "--sql <uuid>" audit marker and that no marker is reused. Run it against
// internal/sqlinline before merging query changes.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	sqlKeyword = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with)\b`)
	marker     = regexp.MustCompile(`^--sql ([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})$`)
)

func main() {
	flag.Parse()
	targets := flag.Args()
	if len(targets) == 0 {
		targets = []string{"internal/sqlinline"}
	}

	var problems []string
	seen := map[string]string{}

	for _, target := range targets {
		err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Ext(path) != ".go" {
				return err
			}
			ps, lintErr := lintFile(path, seen)
			problems = append(problems, ps...)
			return lintErr
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
			os.Exit(1)
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		os.Exit(1)
	}
}

func lintFile(path string, seen map[string]string) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}

	var problems []string
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for _, value := range spec.Values {
			lit, ok := value.(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}
			text, err := unquote(lit.Value)
			if err != nil || !sqlKeyword.MatchString(text) {
				continue
			}
			where := fset.Position(lit.Pos())
			m := marker.FindStringSubmatch(firstLine(text))
			if m == nil {
				problems = append(problems,
					fmt.Sprintf("%s:%d: %s: missing --sql <uuid> marker", where.Filename, where.Line, specName(spec)))
				continue
			}
			if prev, dup := seen[m[1]]; dup {
				problems = append(problems,
					fmt.Sprintf("%s:%d: %s: marker %s already used by %s", where.Filename, where.Line, specName(spec), m[1], prev))
				continue
			}
			seen[m[1]] = specName(spec)
		}
		return true
	})
	return problems, nil
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if i := strings.IndexAny(s, "\n\r"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func specName(spec *ast.ValueSpec) string {
	if len(spec.Names) > 0 && spec.Names[0] != nil {
		return spec.Names[0].Name
	}
	return "_"
}

func unquote(v string) (string, error) {
	if strings.HasPrefix(v, "`") {
		return strings.Trim(v, "`"), nil
	}
	return strconv.Unquote(v)
}
