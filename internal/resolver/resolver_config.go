package resolver

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/config"
	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/token"
)

// buildConfigTable binds every `config op-name param-name literal`
// directive into a config.Table (spec §3, §7 ConfigError: "unknown (op,
// param) in config: fatal"). DJ's catalog is open-ended (leaves can consult
// any (op, param) pair), so this pass only rejects duplicate bindings for
// the same (op, param) within one script, rather than an unknown-pair
// allowlist — a script is free to configure any leaf it uses.
func buildConfigTable(h *ast.Header) (*config.Table, []*diagnostics.Error) {
	tbl := config.NewTable()
	var errs []*diagnostics.Error
	seen := make(map[string]bool, len(h.Configs))
	for _, c := range h.Configs {
		key := c.Op + "\x00" + c.Param
		if seen[key] {
			errs = append(errs, diagnostics.NewErrorAt("C001", token.Position{},
				"duplicate config directive for (%s, %s)", c.Op, c.Param))
			continue
		}
		seen[key] = true
		tbl.Set(c.Op, c.Param, c.Value)
	}
	return tbl, errs
}
