// Package transform maps unified requests to provider wire bodies and
// wire responses back to unified ones.
package transform

import (
	"fmt"

	"github.com/Knetic/govaluate"
)

// Body is a JSON-shaped request body under construction. Rules mutate
// it in place; map[string]any is the idiomatic Go stand-in for a
// free-form JSON value.
type Body map[string]any

// RangeMode controls what Range does to an out-of-bounds value.
type RangeMode string

const (
	RangeClamp RangeMode = "clamp"
	RangeDrop  RangeMode = "drop"
	RangeError RangeMode = "error"
)

// Rule is one step of the mapping-discipline rule engine. Only one of
// the constructors below populates a given Rule; Apply dispatches on
// which fields are set.
type Rule struct {
	kind string

	// Move
	from, to string

	// Drop
	dropField string

	// Range
	rangeField    string
	rangeMin      float64
	rangeMax      float64
	rangeMode     RangeMode

	// MaxLen
	maxLenField string
	maxLen      int

	// ForbidWhen / When
	condition string
	rules     []Rule
}

func Move(from, to string) Rule   { return Rule{kind: "move", from: from, to: to} }
func Drop(field string) Rule      { return Rule{kind: "drop", dropField: field} }

func Range(field string, min, max float64, mode RangeMode) Rule {
	return Rule{kind: "range", rangeField: field, rangeMin: min, rangeMax: max, rangeMode: mode}
}

func MaxLen(field string, max int) Rule {
	return Rule{kind: "maxlen", maxLenField: field, maxLen: max}
}

// ForbidWhen drops field when condition (a govaluate expression
// evaluated against the body) is true.
func ForbidWhen(field, condition string) Rule {
	return Rule{kind: "forbid_when", dropField: field, condition: condition}
}

// When applies rules only when condition evaluates truthy against the
// body. Used for per-model-prefix branches like "model id starts with
// o1-" (the OpenAI reasoning family).
func When(condition string, rules ...Rule) Rule {
	return Rule{kind: "when", condition: condition, rules: rules}
}

// Engine runs an ordered list of Rules against a Body. It never errors
// on a missing field — rules are no-ops when their field isn't present,
// so callers get "drop silently, never panic" behavior for free.
type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) *Engine { return &Engine{rules: rules} }

// Apply runs every rule against body in order, mutating it, and
// returns the first hard error encountered (only RangeError can
// produce one).
func (e *Engine) Apply(body Body) error {
	return applyRules(e.rules, body)
}

func applyRules(rules []Rule, body Body) error {
	for _, r := range rules {
		if err := applyRule(r, body); err != nil {
			return err
		}
	}
	return nil
}

func applyRule(r Rule, body Body) error {
	switch r.kind {
	case "move":
		if v, ok := body[r.from]; ok {
			body[r.to] = v
			delete(body, r.from)
		}
	case "drop":
		delete(body, r.dropField)
	case "range":
		v, ok := numericValue(body[r.rangeField])
		if !ok {
			return nil
		}
		if v >= r.rangeMin && v <= r.rangeMax {
			return nil
		}
		switch r.rangeMode {
		case RangeDrop:
			delete(body, r.rangeField)
		case RangeError:
			return fmt.Errorf("transform: field %q value %v out of range [%v, %v]", r.rangeField, v, r.rangeMin, r.rangeMax)
		default: // RangeClamp
			if v < r.rangeMin {
				body[r.rangeField] = r.rangeMin
			} else {
				body[r.rangeField] = r.rangeMax
			}
		}
	case "maxlen":
		switch arr := body[r.maxLenField].(type) {
		case []any:
			if len(arr) > r.maxLen {
				body[r.maxLenField] = arr[:r.maxLen]
			}
		case []Body:
			if len(arr) > r.maxLen {
				body[r.maxLenField] = arr[:r.maxLen]
			}
		}
	case "forbid_when":
		truthy, err := evalCondition(r.condition, body)
		if err != nil {
			return nil // a malformed condition never blocks the request
		}
		if truthy {
			delete(body, r.dropField)
		}
	case "when":
		truthy, err := evalCondition(r.condition, body)
		if err != nil || !truthy {
			return nil
		}
		return applyRules(r.rules, body)
	}
	return nil
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// evalCondition compiles and evaluates a small boolean expression (e.g.
// `strings.HasPrefix(model, "o1-")` is out of govaluate's vocabulary, so
// conditions use govaluate's own string functions: `model =~ "^o1-"`)
// against the body's fields.
func evalCondition(condition string, body Body) (bool, error) {
	expr, err := govaluate.NewEvaluableExpression(condition)
	if err != nil {
		return false, err
	}
	params := make(map[string]any, len(body))
	for k, v := range body {
		params[k] = v
	}
	result, err := expr.Evaluate(params)
	if err != nil {
		return false, err
	}
	truthy, _ := result.(bool)
	return truthy, nil
}
