package localize

import (
	"log/slog"

	"github.com/google/cel-go/cel"
)

// evaluateGuard evaluates a rule's optional `when` CEL expression against
// the activation. Jurisdiction configs can scope a rewrite to e.g.
// `entity_type == "school_district"` without a bespoke mini-language. A
// malformed or non-boolean expression is treated as false and logged, never
// as a fatal error — a bad jurisdiction config degrades to "rule skipped",
// consistent with the localization failure-downgrade policy in §7.
func evaluateGuard(expr string, act Activation) bool {
	env, err := cel.NewEnv(
		cel.Variable("jurisdiction", cel.StringType),
		cel.Variable("entity_type", cel.StringType),
	)
	if err != nil {
		slog.Warn("localize: failed to build CEL environment", "error", err)
		return false
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		slog.Warn("localize: failed to compile rule guard", "expr", expr, "error", issues.Err())
		return false
	}

	program, err := env.Program(ast)
	if err != nil {
		slog.Warn("localize: failed to build rule guard program", "expr", expr, "error", err)
		return false
	}

	out, _, err := program.Eval(map[string]any{
		"jurisdiction": act.Jurisdiction,
		"entity_type":  act.EntityType,
	})
	if err != nil {
		slog.Warn("localize: rule guard evaluation failed", "expr", expr, "error", err)
		return false
	}

	result, ok := out.Value().(bool)
	return ok && result
}
