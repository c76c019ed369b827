// Package profiles evaluates an answered checklist into the set of active
// applicability profiles. The active set subsequently filters which test
// cases appear in counts and reports.
package profiles

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/casebook/pkg/types"
)

// DeriveActive walks every section and every answered question, unions the
// profiles of each satisfied mapping, and returns the result sorted and
// deduplicated. Unanswered questions contribute nothing regardless of
// their mappings, and malformed or empty sections are simply skipped;
// derivation never fails.
//
// DependsOn is deliberately not evaluated here. Dependent-question gating
// is enforced (if at all) by the UI upstream; derivation only reads the
// answer and the mappings.
func DeriveActive(cfg *types.ProfileConfiguration) []string {
	active := make(map[string]struct{})
	if cfg == nil {
		return []string{}
	}

	for _, section := range cfg.Sections {
		for _, q := range section.Questions {
			collectQuestion(q, active)
		}
	}

	out := make([]string, 0, len(active))
	for name := range active {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectQuestion(q types.Question, active map[string]struct{}) {
	// Legacy pathway: a direct profile list with a truthy simple value is
	// the flattened equivalent of an always-true mapping.
	if len(q.LegacyProfiles) > 0 && len(q.ProfileMappings) == 0 {
		if truthy(q.LegacyValue) {
			union(active, q.LegacyProfiles)
		}
		return
	}

	if !q.Answered() {
		return
	}
	for _, m := range q.ProfileMappings {
		if mappingSatisfied(q, m) {
			union(active, m.Profiles)
		}
	}
}

// mappingSatisfied checks the mapping condition against the current
// answer. Boolean questions compare the first answer value
// case-insensitively against "true"/"false"; choice and multi-choice
// questions are satisfied when the condition appears anywhere in the
// answer values.
func mappingSatisfied(q types.Question, m types.ProfileMapping) bool {
	switch q.Type {
	case types.QuestionBoolean:
		return strings.EqualFold(q.Answer.Values[0], m.Condition)
	case types.QuestionChoice, types.QuestionMultiChoice:
		for _, v := range q.Answer.Values {
			if v == m.Condition {
				return true
			}
		}
	}
	return false
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "no", "0":
		return false
	}
	return true
}

func union(active map[string]struct{}, names []string) {
	for _, n := range names {
		if n != "" {
			active[n] = struct{}{}
		}
	}
}
