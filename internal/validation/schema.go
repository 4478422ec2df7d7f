package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Field type names accepted in a Rule.
const (
	TypeInteger = "integer"
	TypeString  = "string"
)

// Rule constrains one field of an incoming JSON object.
// Checks run in order: required, type, regex, min. The first failing
// check produces the field's message and skips the remaining checks.
type Rule struct {
	Required bool
	Types    []string
	TypeList bool // type was declared as a list, changes the mismatch message
	Regex    string
	Min      int
	HasMin   bool
}

// Schema maps field names to their rules. Fields present in the input
// but absent from the schema are ignored.
type Schema map[string]Rule

// Validate checks in against schema and returns whether it passed plus
// one message per failing field, ordered by field name ascending.
func Validate(in any, schema Schema) (bool, []string) {
	data, ok := in.(map[string]any)
	if !ok {
		return false, []string{"The input data need to be a dictionary."}
	}

	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	var messages []string
	for _, name := range names {
		rule := schema[name]
		value, present := data[name]
		if !present {
			if rule.Required {
				messages = append(messages, fmt.Sprintf("Field %q required field.", name))
			}
			continue
		}
		if len(rule.Types) > 0 && !typeMatches(value, rule.Types) {
			messages = append(messages, fmt.Sprintf("Field %q must be of %s type.", name, renderTypes(rule)))
			continue
		}
		if rule.Regex != "" && !matchFromStart(rule.Regex, StringValue(value)) {
			messages = append(messages, fmt.Sprintf("Field %q value does not match regex '%s'.", name, rule.Regex))
			continue
		}
		if rule.HasMin {
			if n, ok := IntValue(value); ok && n < rule.Min {
				messages = append(messages, fmt.Sprintf("Field %q value is less than min %d.", name, rule.Min))
			}
		}
	}
	return len(messages) == 0, messages
}

func typeMatches(value any, types []string) bool {
	for _, t := range types {
		switch t {
		case TypeInteger:
			if isInteger(value) {
				return true
			}
		case TypeString:
			if _, ok := value.(string); ok {
				return true
			}
		}
	}
	return false
}

// renderTypes reproduces the schema's own type declaration in the
// mismatch message: a bare name for a scalar declaration, a bracketed
// quoted list for a list declaration.
func renderTypes(rule Rule) string {
	if !rule.TypeList {
		return rule.Types[0]
	}
	quoted := make([]string, len(rule.Types))
	for i, t := range rule.Types {
		quoted[i] = "'" + t + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// matchFromStart anchors the pattern at the beginning of the value and
// leaves the end open, so patterns carry their own "$" when they need one.
func matchFromStart(pattern, value string) bool {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int64:
		return true
	case json.Number:
		_, err := v.Int64()
		return err == nil
	}
	return false
}

// IntValue converts a validated integer-or-numeric-string value to int.
func IntValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// StringValue renders a scalar the way it appeared on the wire.
func StringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
