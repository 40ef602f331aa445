package evaluator

import "github.com/funvibe/dj/internal/ast"

// firstString returns the string value of args[0] if it is a StringArg,
// else fallback. Used by output-sink leaves (classify/write), whose single
// literal argument is always a string per spec §4.8.
func firstString(args []ast.Arg, fallback string) string {
	if len(args) == 0 {
		return fallback
	}
	if s, ok := args[0].(ast.StringArg); ok {
		return s.Value
	}
	return fallback
}

// argString/argInt read one Arg of the expected literal kind, used by
// combinator argument lists (ilist_concat's separator, ilist_max's N).
func argString(a ast.Arg, fallback string) string {
	if s, ok := a.(ast.StringArg); ok {
		return s.Value
	}
	return fallback
}

func argInt(a ast.Arg, fallback int) int {
	if n, ok := a.(ast.IntArg); ok {
		return n.Value
	}
	return fallback
}
