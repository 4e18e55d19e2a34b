// Package rules holds the declarative signature-change table: which function
// parameters used to be required, through which PHP version, and under what
// name. The table is pure data; all behavior beyond validation lives in the
// engine.
package rules

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"

	"github.com/codelintel/phpcompat/phpversion"
)

//go:embed table.yaml
var defaultTable []byte

// ParameterRule describes one parameter of one function. Offset is the
// 0-based positional slot the table holds the rule against; by convention it
// points at the last required positional slot, which may sit above the
// literally omitted parameter when several trailing parameters share the
// transition.
type ParameterRule struct {
	Offset  int
	Name    string
	History []phpversion.Requirement
}

// Table maps lowercased function names to their parameter rules, offsets
// ascending. Immutable after Load; safe for concurrent readers.
type Table struct {
	funcs map[string][]ParameterRule
}

// RulesFor returns the rules registered for a function name, or nil. Lookup
// is case-insensitive; keys were lowercased once at load time.
func (t *Table) RulesFor(name string) []ParameterRule {
	if t == nil {
		return nil
	}
	return t.funcs[strings.ToLower(name)]
}

// Len returns the number of functions in the table.
func (t *Table) Len() int {
	return len(t.funcs)
}

// VersionFormatError marks a table entry whose version string does not parse.
// Table integrity faults are fatal at construction: a bad version would
// corrupt every later comparison.
type VersionFormatError struct {
	Function string
	Raw      string
	Err      error
}

func (e *VersionFormatError) Error() string {
	return fmt.Sprintf("rule table: function %s: invalid version %q: %v", e.Function, e.Raw, e.Err)
}

func (e *VersionFormatError) Unwrap() error { return e.Err }

// OffsetError marks a negative or duplicate parameter offset.
type OffsetError struct {
	Function string
	Offset   int
	Reason   string
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("rule table: function %s: offset %d: %s", e.Function, e.Offset, e.Reason)
}

type yamlTable struct {
	Functions map[string][]yamlRule `yaml:"functions"`
}

type yamlRule struct {
	Offset  int        `yaml:"offset"`
	Name    string     `yaml:"name"`
	History []yamlStep `yaml:"history"`
}

type yamlStep struct {
	Version  string `yaml:"version"`
	Required bool   `yaml:"required"`
}

// Load builds a table from YAML data, lowercasing function names once and
// validating every entry. Any integrity fault fails the whole load.
func Load(data []byte) (*Table, error) {
	var raw yamlTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rule table: %w", err)
	}

	funcs := make(map[string][]ParameterRule, len(raw.Functions))
	for name, entries := range raw.Functions {
		lower := strings.ToLower(strings.TrimSpace(name))
		if lower == "" {
			return nil, fmt.Errorf("rule table: empty function name")
		}
		if _, ok := funcs[lower]; ok {
			return nil, fmt.Errorf("rule table: duplicate function %s", lower)
		}

		rules, err := buildRules(lower, entries)
		if err != nil {
			return nil, err
		}
		funcs[lower] = rules
	}

	return &Table{funcs: funcs}, nil
}

// LoadDefault returns the table compiled into the binary.
func LoadDefault() (*Table, error) {
	return Load(defaultTable)
}

func buildRules(function string, entries []yamlRule) ([]ParameterRule, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("rule table: function %s has no rules", function)
	}

	seen := make(map[int]struct{}, len(entries))
	rules := make([]ParameterRule, 0, len(entries))
	for _, entry := range entries {
		if entry.Offset < 0 {
			return nil, &OffsetError{Function: function, Offset: entry.Offset, Reason: "negative"}
		}
		if _, ok := seen[entry.Offset]; ok {
			return nil, &OffsetError{Function: function, Offset: entry.Offset, Reason: "duplicate"}
		}
		seen[entry.Offset] = struct{}{}

		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("rule table: function %s: offset %d has no parameter name", function, entry.Offset)
		}
		if len(entry.History) == 0 {
			return nil, fmt.Errorf("rule table: function %s: offset %d has no version history", function, entry.Offset)
		}

		history, err := buildHistory(function, entry.History)
		if err != nil {
			return nil, err
		}
		rules = append(rules, ParameterRule{
			Offset:  entry.Offset,
			Name:    entry.Name,
			History: history,
		})
	}

	// Diagnostics are emitted in ascending offset order; fix the order here
	// so the engine can just iterate.
	sort.Slice(rules, func(i, j int) bool { return rules[i].Offset < rules[j].Offset })
	return rules, nil
}

func buildHistory(function string, steps []yamlStep) ([]phpversion.Requirement, error) {
	history := make([]phpversion.Requirement, 0, len(steps))
	var prev *goversion.Version
	for _, step := range steps {
		v, err := goversion.NewVersion(step.Version)
		if err != nil {
			return nil, &VersionFormatError{Function: function, Raw: step.Version, Err: err}
		}
		if prev != nil && !v.GreaterThan(prev) {
			return nil, &VersionFormatError{
				Function: function,
				Raw:      step.Version,
				Err:      fmt.Errorf("history not in ascending version order"),
			}
		}
		prev = v
		history = append(history, phpversion.Requirement{Version: v, Required: step.Required})
	}
	return history, nil
}
