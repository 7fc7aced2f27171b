package dashboard

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// InsightsHeading titles the insights panel.
const InsightsHeading = "AI-Driven Health Insights:"

// Rule surfaces Message when any diagnosis contains Trigger.
type Rule struct {
	ID      string `yaml:"id" json:"id"`
	Trigger string `yaml:"trigger" json:"trigger"`
	Message string `yaml:"message" json:"message"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

//go:embed insights.yaml
var defaultRulesYAML []byte

// used when the embedded table cannot be parsed
var fallbackRules = []Rule{
	{ID: "hypertension", Trigger: "Hypertension", Message: "High blood pressure detected. Recommend increased monitoring."},
	{ID: "diabetes", Trigger: "Diabetes", Message: "High diabetes prevalence. Suggest regular blood sugar testing for at-risk age groups."},
}

var (
	defaultRulesOnce sync.Once
	defaultRules     []Rule
)

// DefaultRules returns the built-in rule table. The returned slice is a copy.
func DefaultRules() []Rule {
	defaultRulesOnce.Do(func() {
		rules, err := ParseRules(defaultRulesYAML)
		if err != nil {
			rules = fallbackRules
		}
		defaultRules = rules
	})
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// LoadRules reads a YAML rule table from path.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read insight rules %s: %w", path, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("insight rules %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(data []byte) ([]Rule, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := ValidateRules(f.Rules); err != nil {
		return nil, err
	}
	return f.Rules, nil
}

// ValidateRules rejects rules that could never be meaningful: an empty
// trigger matches every record and an empty message renders nothing.
func ValidateRules(rules []Rule) error {
	var errs []error
	for i, r := range rules {
		if r.Trigger == "" {
			errs = append(errs, fmt.Errorf("rule %d (%s): trigger is required", i, r.ID))
		}
		if strings.TrimSpace(r.Message) == "" {
			errs = append(errs, fmt.Errorf("rule %d (%s): message is required", i, r.ID))
		}
	}
	return errors.Join(errs...)
}

// EvaluateInsights returns the message of every rule whose trigger occurs in
// at least one diagnosis, in rule order. A rule fires at most once.
func EvaluateInsights(c patient.Collection, rules []Rule) []string {
	fired := FiredRules(c, rules)
	out := make([]string, len(fired))
	for i, rule := range fired {
		out[i] = rule.Message
	}
	return out
}

// FiredRules returns the rules that match at least one diagnosis, in rule
// order.
func FiredRules(c patient.Collection, rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if anyDiagnosisContains(c, rule.Trigger) {
			out = append(out, rule)
		}
	}
	return out
}

func anyDiagnosisContains(c patient.Collection, trigger string) bool {
	for _, r := range c {
		if strings.Contains(r.Diagnosis, trigger) {
			return true
		}
	}
	return false
}
