package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-project-tracker/internal/utils"
)

// MsgValidationError replaces everything a rule would have reported once its
// evaluation panics.
const MsgValidationError = "Validation error occurred"

const (
	msgPattern = "Invalid format"
	msgCustom  = "Invalid value"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// typeChecks holds the primary predicate of every rule kind.
var typeChecks = map[RuleKind]func(value any) bool{
	KindRequired: isPresent,
	KindString:   isString,
	KindNumber:   isNumber,
	KindEmail:    isEmail,
	KindDate:     isDate,
	KindBoolean:  isBoolean,
	KindArray:    isArray,
	KindObject:   isObject,
}

var defaultMessages = map[RuleKind]string{
	KindRequired: "This field is required",
	KindString:   "Must be a string",
	KindNumber:   "Must be a number",
	KindEmail:    "Must be a valid email address",
	KindDate:     "Must be a valid date",
	KindBoolean:  "Must be a boolean",
	KindArray:    "Must be an array",
	KindObject:   "Must be an object",
}

// ValidateField evaluates rules against value in order and returns every
// violation message. Checks never short-circuit: a failed type check does not
// stop min, max, pattern or custom checks of the same rule, nor later rules.
func ValidateField(value any, rules []Rule) []string {
	var errs []string
	for _, rule := range rules {
		errs = append(errs, evaluateRule(value, rule)...)
	}

	return errs
}

func evaluateRule(value any, rule Rule) (errs []string) {
	defer func() {
		if recover() != nil {
			errs = append(errs, MsgValidationError)
		}
	}()

	if rule.SkipUndefined && value == nil {
		return nil
	}

	check, ok := typeChecks[rule.Kind]
	if !ok {
		panic(fmt.Sprintf("unknown rule kind %q", rule.Kind))
	}
	if !check(value) {
		errs = append(errs, rule.message(defaultMessages[rule.Kind]))
	}

	if rule.Min != nil {
		if msg, failed := checkBound(value, *rule.Min, rule, lessThan); failed {
			errs = append(errs, msg)
		}
	}

	if rule.Max != nil {
		if msg, failed := checkBound(value, *rule.Max, rule, greaterThan); failed {
			errs = append(errs, msg)
		}
	}

	if rule.Pattern != nil {
		if s, isStr := value.(string); isStr && !rule.Pattern.MatchString(s) {
			errs = append(errs, rule.message(msgPattern))
		}
	}

	if rule.Custom != nil {
		if passed, msg := rule.Custom(value); !passed {
			if msg == "" {
				msg = rule.message(msgCustom)
			}
			errs = append(errs, msg)
		}
	}

	return errs
}

func (r Rule) message(fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

type boundSide int

const (
	lessThan boundSide = iota
	greaterThan
)

// checkBound compares value with bound. Strings are measured by length and
// numbers by value; the branch follows the value's dynamic type only. Values
// of any other type are not bounded.
func checkBound(value any, bound float64, rule Rule, side boundSide) (string, bool) {
	var (
		measured float64
		unit     string
	)

	if s, ok := value.(string); ok {
		measured = float64(utf8.RuneCountInString(s))
		unit = " characters"
	} else if n, ok := toFloat(value); ok {
		measured = n
	} else {
		return "", false
	}

	limit := strconv.FormatFloat(bound, 'f', -1, 64)
	switch side {
	case lessThan:
		if measured < bound {
			return rule.message("Must be at least " + limit + unit), true
		}
	case greaterThan:
		if measured > bound {
			return rule.message("Must be at most " + limit + unit), true
		}
	}

	return "", false
}

func isPresent(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok && s == "" {
		return false
	}
	return true
}

func isString(value any) bool {
	_, ok := value.(string)
	return ok
}

func isNumber(value any) bool {
	n, ok := toFloat(value)
	return ok && !math.IsNaN(n)
}

func isEmail(value any) bool {
	s, ok := value.(string)
	return ok && emailPattern.MatchString(s)
}

func isBoolean(value any) bool {
	_, ok := value.(bool)
	return ok
}

func isDate(value any) bool {
	switch v := value.(type) {
	case time.Time:
		return !v.IsZero()
	case *time.Time:
		return v != nil && !v.IsZero()
	case string:
		t, err := utils.ParseDate(v)
		return err == nil && t != nil
	}

	// numbers are millisecond timestamps within ±100,000,000 days of the epoch
	n, ok := toFloat(value)
	return ok && !math.IsNaN(n) && math.Abs(n) <= maxTimestampMillis
}

const maxTimestampMillis = 8.64e15

func isArray(value any) bool {
	if value == nil {
		return false
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func isObject(value any) bool {
	if value == nil {
		return false
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if _, isTime := v.Interface().(time.Time); isTime {
		return false
	}
	return v.Kind() == reflect.Map || v.Kind() == reflect.Struct
}

// toFloat converts any Go numeric kind or json.Number to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
