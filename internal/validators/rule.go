package validators

import (
	"regexp"
	"strings"
)

// RuleKind selects the primary check a Rule performs.
type RuleKind string

const (
	KindRequired RuleKind = "required"
	KindString   RuleKind = "string"
	KindNumber   RuleKind = "number"
	KindEmail    RuleKind = "email"
	KindDate     RuleKind = "date"
	KindBoolean  RuleKind = "boolean"
	KindArray    RuleKind = "array"
	KindObject   RuleKind = "object"
)

// CustomFunc is a caller-supplied predicate. ok == true passes. Otherwise a
// non-empty message is reported verbatim; an empty one falls back to the
// rule's Message or the generic custom message.
type CustomFunc func(value any) (ok bool, message string)

// Rule is one declarative check. Build rules with the kind constructors
// (Required, String, ...) and refine them with the With* modifiers; every
// modifier returns a copy, so a Rule value is never changed after it has
// been handed to a schema.
type Rule struct {
	Kind    RuleKind
	Min     *float64
	Max     *float64
	Pattern *regexp.Regexp
	Message string
	Custom  CustomFunc

	// SkipUndefined turns the whole rule off for a nil value, which lets a
	// schema describe optional fields without tripping the type check.
	SkipUndefined bool
}

func newRule(kind RuleKind) Rule {
	return Rule{Kind: kind}
}

func Required() Rule { return newRule(KindRequired) }
func String() Rule   { return newRule(KindString) }
func Number() Rule   { return newRule(KindNumber) }
func Email() Rule    { return newRule(KindEmail) }
func Date() Rule     { return newRule(KindDate) }
func Boolean() Rule  { return newRule(KindBoolean) }
func Array() Rule    { return newRule(KindArray) }
func Object() Rule   { return newRule(KindObject) }

// WithMin sets a lower bound: minimum length for strings, minimum value for numbers.
func (r Rule) WithMin(min float64) Rule {
	r.Min = &min
	return r
}

// WithMax sets an upper bound: maximum length for strings, maximum value for numbers.
func (r Rule) WithMax(max float64) Rule {
	r.Max = &max
	return r
}

// WithPattern requires string values to match re.
func (r Rule) WithPattern(re *regexp.Regexp) Rule {
	r.Pattern = re
	return r
}

// WithMessage replaces every default message the rule would report.
func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

// WithCustom attaches a caller-supplied predicate.
func (r Rule) WithCustom(fn CustomFunc) Rule {
	r.Custom = fn
	return r
}

// Optional makes the rule a no-op when the value is undefined.
func (r Rule) Optional() Rule {
	r.SkipUndefined = true
	return r
}

// OneOf builds an anchored pattern accepting exactly the given values.
func OneOf[T ~string](values ...T) *regexp.Regexp {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, regexp.QuoteMeta(string(v)))
	}

	return regexp.MustCompile(`^(?:` + strings.Join(quoted, "|") + `)$`)
}
