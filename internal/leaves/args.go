package leaves

import "github.com/funvibe/dj/internal/ast"

// stringArg returns the i-th argument as a string, or fallback if absent or
// of the wrong kind. Leaves are intentionally lenient about missing
// arguments (the resolver, not this package, is where arity would be
// enforced more strictly if DJ grew static per-leaf arity declarations).
func stringArg(args []ast.Arg, i int, fallback string) string {
	if i < 0 || i >= len(args) {
		return fallback
	}
	if s, ok := args[i].(ast.StringArg); ok {
		return s.Value
	}
	return fallback
}

func intArg(args []ast.Arg, i int, fallback int) int {
	if i < 0 || i >= len(args) {
		return fallback
	}
	if n, ok := args[i].(ast.IntArg); ok {
		return n.Value
	}
	return fallback
}

func listArg(args []ast.Arg, i int) []string {
	if i < 0 || i >= len(args) {
		return nil
	}
	if l, ok := args[i].(ast.ListArg); ok {
		return l.Values
	}
	return nil
}
