package contact

import "regexp"

// Rule identifies a named input pattern.
type Rule string

const (
	RuleName         Rule = "Name"
	RuleAge          Rule = "Age"
	RulePhoneNumber  Rule = "Phone Number"
	RuleEmail        Rule = "Email"
	RuleAddress      Rule = "Address"
	RuleDeleteChoice Rule = "Delete Choice"
	RuleMenu         Rule = "Menu"
)

// Patterns are anchored at both ends and matched case-sensitively.
var patterns = map[Rule]*regexp.Regexp{
	RuleName:         regexp.MustCompile(`^[A-Za-z]+([ '\-][A-Za-z]+)*$`),
	RuleAge:          regexp.MustCompile(`^[0-9]{1,3}$`),
	RulePhoneNumber:  regexp.MustCompile(`^(010|011|012|015)\d{8}$`),
	RuleEmail:        regexp.MustCompile(`^[\w.]+@[A-Za-z]+\.[A-Za-z]{2,}$`),
	RuleAddress:      regexp.MustCompile(`^[A-Za-z0-9\s,.\-]+$`),
	RuleDeleteChoice: regexp.MustCompile(`^[12]$`),
	RuleMenu:         regexp.MustCompile(`^[1-6]$`),
}

// Rules returns every known rule.
func Rules() []Rule {
	return []Rule{
		RuleName, RuleAge, RulePhoneNumber, RuleEmail, RuleAddress,
		RuleDeleteChoice, RuleMenu,
	}
}

// Known reports whether r is one of the defined rules.
func (r Rule) Known() bool {
	_, ok := patterns[r]
	return ok
}

// Match reports whether s fully matches the rule's pattern.
// Unknown rules match nothing.
func (r Rule) Match(s string) bool {
	re, ok := patterns[r]
	if !ok {
		return false
	}
	return re.MatchString(s)
}

// Pattern returns the rule's regular expression source, or "" if unknown.
func (r Rule) Pattern() string {
	re, ok := patterns[r]
	if !ok {
		return ""
	}
	return re.String()
}
