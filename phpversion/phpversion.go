// Package phpversion handles PHP version arithmetic for the rule engine:
// parsing version strings, the tested-version range supplied per analysis
// run, and deciding whether a parameter's requiredness history intersects
// that range. Comparison is numeric per dotted component ("7.10" > "7.9"),
// delegated to hashicorp/go-version.
package phpversion

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Requirement is one step in a parameter's history: at Version the parameter
// was (or was no longer) required.
type Requirement struct {
	Version  *goversion.Version
	Required bool
}

// SupportRange is the span of PHP versions an analysis run must guarantee
// compatibility with. A nil bound is open.
type SupportRange struct {
	From *goversion.Version
	To   *goversion.Version
}

// NewSupportRange parses the configured bounds. Empty strings leave the
// corresponding bound open.
func NewSupportRange(from, to string) (SupportRange, error) {
	var r SupportRange
	if from != "" {
		v, err := goversion.NewVersion(from)
		if err != nil {
			return SupportRange{}, fmt.Errorf("invalid lower bound %q: %w", from, err)
		}
		r.From = v
	}
	if to != "" {
		v, err := goversion.NewVersion(to)
		if err != nil {
			return SupportRange{}, fmt.Errorf("invalid upper bound %q: %w", to, err)
		}
		r.To = v
	}
	if r.From != nil && r.To != nil && r.From.GreaterThan(r.To) {
		return SupportRange{}, fmt.Errorf("lower bound %s is above upper bound %s", from, to)
	}
	return r, nil
}

func (r SupportRange) String() string {
	from, to := "", ""
	if r.From != nil {
		from = r.From.Original()
	}
	if r.To != nil {
		to = r.To.Original()
	}
	return from + "-" + to
}

// Evaluate decides whether a requiredness history fires inside the supported
// range. It returns the highest version at which the parameter was still
// required; when no entry is marked required the rule never fires.
func Evaluate(history []Requirement, r SupportRange) (bool, *goversion.Version) {
	var required *goversion.Version
	for _, step := range history {
		if step.Version == nil || !step.Required {
			continue
		}
		if required == nil || step.Version.GreaterThan(required) {
			required = step.Version
		}
	}
	if required == nil {
		return false, nil
	}
	if r.From != nil && r.From.GreaterThan(required) {
		return false, required
	}
	return true, required
}
