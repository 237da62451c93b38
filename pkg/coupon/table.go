package coupon

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// StaticRepository is a fixed in-memory coupon table. It is the
// injected stand-in for a real coupon backend; handlers and the cart
// engine only ever see the Repository interface.
type StaticRepository struct {
	rules map[string]Rule
}

// NewStaticRepository builds a table from the given rules. Codes are
// normalized; a duplicate code overwrites the earlier rule.
func NewStaticRepository(rules ...Rule) *StaticRepository {
	r := &StaticRepository{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		rule.Code = Normalize(rule.Code)
		if rule.Code == "" {
			continue
		}
		r.rules[rule.Code] = rule
	}
	return r
}

// FindByCode implements Repository.
func (r *StaticRepository) FindByCode(code string) (Rule, bool) {
	rule, ok := r.rules[Normalize(code)]
	return rule, ok
}

// Len reports the number of rules in the table.
func (r *StaticRepository) Len() int {
	return len(r.rules)
}

// LoadRules parses a YAML list of rules, e.g.:
//
//	- code: WELCOME10
//	  type: percentage
//	  value: 10
func LoadRules(src io.Reader) ([]Rule, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read coupon rules: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse coupon rules: %w", err)
	}

	for i, rule := range rules {
		if Normalize(rule.Code) == "" {
			return nil, fmt.Errorf("coupon rule %d has no code", i)
		}
		if rule.Type != TypePercentage && rule.Type != TypeFixed {
			return nil, fmt.Errorf("coupon %s has unknown type %q", rule.Code, rule.Type)
		}
		if rule.Value <= 0 {
			return nil, fmt.Errorf("coupon %s has non-positive value %d", rule.Code, rule.Value)
		}
		if rule.Type == TypePercentage && rule.Value > 100 {
			return nil, fmt.Errorf("coupon %s exceeds 100 percent", rule.Code)
		}
	}

	return rules, nil
}

// DefaultRules returns the built-in coupon table used when no table is
// configured.
func DefaultRules() []Rule {
	return []Rule{
		{Code: "WELCOME10", Type: TypePercentage, Value: 10, Description: "10% off your first order"},
		{Code: "LUXURY20", Type: TypePercentage, Value: 20, Description: "20% off"},
		{Code: "SAVE5000", Type: TypeFixed, Value: 5000, Description: "₦5,000 off"},
	}
}
