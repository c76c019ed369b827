package types

// Profile filter modes for test-case visibility.
const (
	FilterModeOR  = "OR"
	FilterModeAND = "AND"
)

// Question types.
const (
	QuestionBoolean     = "boolean"
	QuestionChoice      = "choice"
	QuestionMultiChoice = "multi-choice"
)

// ProfileConfiguration is the per-instance checklist document. Its answered
// questions derive the set of active profiles that filters which test cases
// appear in counts and reports.
type ProfileConfiguration struct {
	Version   string
	Completed bool
	Metadata  ConfigMetadata
	Template  TemplateConfiguration
	Sections  []Section
	// Definitions is a catalog used purely for UI labeling; derivation
	// never consults it.
	Definitions []ProfileDefinition
}

// ConfigMetadata describes the product under test. All fields are free text
// and optional.
type ConfigMetadata struct {
	ProductName  string
	Manufacturer string
	Version      string
	Description  string
	TestDate     string
	Tester       string
}

// TemplateConfiguration carries template-level settings.
type TemplateConfiguration struct {
	ProfileFilterMode string // FilterModeOR, FilterModeAND, or "" when undeclared
}

// ProfileDefinition labels one profile for display, grouped by category
// when emitted to the wire.
type ProfileDefinition struct {
	ID          string
	Name        string
	Description string
	Category    string
}

// Section is one ordered group of checklist questions.
type Section struct {
	ID          string
	Title       string
	Description string
	Questions   []Question
}

// Question is one checklist item. The id is unique within the configuration
// and may be referenced by other questions' DependsOn conditions.
type Question struct {
	ID              string
	Text            string
	Type            string // QuestionBoolean, QuestionChoice or QuestionMultiChoice
	Required        bool
	HelpText        string
	Options         []string
	Answer          Answer
	ProfileMappings []ProfileMapping
	DependsOn       *DependsOn

	// LegacyProfiles and LegacyValue come from the flattened legacy wire
	// shape, where a question carried a direct profile list and a simple
	// value instead of mappings. A truthy LegacyValue activates
	// LegacyProfiles unconditionally.
	LegacyProfiles []string
	LegacyValue    string
}

// Answer holds the user's response to a question. Boolean answers are
// stored as the string "true" or "false" in a single-element Values list.
type Answer struct {
	Answered bool
	Values   []string
}

// Answered reports whether the question carries a usable answer.
func (q Question) Answered() bool {
	return q.Answer.Answered && len(q.Answer.Values) > 0
}

// ProfileMapping activates profiles when its condition matches the
// question's answer. For boolean questions the condition is "true" or
// "false"; for choice and multi-choice it is one of the option values.
type ProfileMapping struct {
	Condition string
	Profiles  []string
}

// DependsOn gates a question's visibility on other questions' answers.
// It is parsed and stored for completeness but intentionally not consulted
// by profile derivation; hiding dependent questions is a UI concern
// upstream of this core.
type DependsOn struct {
	Logic      string // FilterModeOR or FilterModeAND semantics over Conditions
	Conditions []Condition
}

// Condition names another question and the answer values that satisfy it.
type Condition struct {
	QuestionID string
	Values     []string
}
