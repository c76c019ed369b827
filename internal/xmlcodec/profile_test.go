package xmlcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/casebook/pkg/types"
)

func sampleConfig() *types.ProfileConfiguration {
	return &types.ProfileConfiguration{
		Version:   "2.0",
		Completed: true,
		Metadata: types.ConfigMetadata{
			ProductName:  "Widget",
			Manufacturer: "Acme",
			Version:      "3.1",
			TestDate:     "2024-05-02",
			Tester:       "jo",
		},
		Template: types.TemplateConfiguration{ProfileFilterMode: types.FilterModeAND},
		Sections: []types.Section{
			{
				ID:    "s1",
				Title: "Transport",
				Questions: []types.Question{
					{
						ID:       "q1",
						Text:     "Does the device support export?",
						Type:     types.QuestionBoolean,
						Required: true,
						Options:  []string{},
						Answer:   types.Answer{Answered: true, Values: []string{"true"}},
						ProfileMappings: []types.ProfileMapping{
							{Condition: "true", Profiles: []string{"P1"}},
						},
					},
					{
						ID:      "q2",
						Text:    "Which transports are supported?",
						Type:    types.QuestionMultiChoice,
						Options: []string{"usb", "network"},
						Answer:  types.Answer{Answered: true, Values: []string{"usb", "network"}},
						ProfileMappings: []types.ProfileMapping{
							{Condition: "usb", Profiles: []string{"P2"}},
							{Condition: "network", Profiles: []string{"P3"}},
						},
						DependsOn: &types.DependsOn{
							Logic: types.FilterModeOR,
							Conditions: []types.Condition{
								{QuestionID: "q1", Values: []string{"true"}},
							},
						},
					},
				},
			},
		},
		Definitions: []types.ProfileDefinition{
			{ID: "P1", Name: "Export", Category: "Core Features"},
			{ID: "P2", Name: "USB", Category: "Transport Layer"},
			{ID: "P3", Name: "Network", Category: "Transport Layer"},
		},
	}
}

func TestProfileConfigurationRoundTrip(t *testing.T) {
	original := sampleConfig()

	data, err := MarshalProfileConfiguration(original)
	require.NoError(t, err)

	parsed, err := ParseProfileConfiguration(data, "roundtrip")
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestMarshalGroupsDefinitionsByCategory(t *testing.T) {
	data, err := MarshalProfileConfiguration(sampleConfig())
	require.NoError(t, err)
	s := string(data)

	assert.Contains(t, s, `<ProfileCategory id="core_features" name="Core Features">`)
	assert.Contains(t, s, `<ProfileCategory id="transport_layer" name="Transport Layer">`)
	// Two definitions share a category, so only two category blocks exist.
	assert.Equal(t, 2, countOccurrences(s, "<ProfileCategory "))
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}

func TestParseLegacyFlatShape(t *testing.T) {
	doc := `<?xml version="1.0"?>
<ProfileConfiguration completed="false">
  <TemplateConfiguration><ProfileFilterMode>or</ProfileFilterMode></TemplateConfiguration>
  <ChecklistSections>
    <Section id="s1">
      <Title>Legacy</Title>
      <Item id="q1" type="boolean">
        <Text>Supports export?</Text>
        <Value>true</Value>
        <Profiles>
          <Profile>P1</Profile>
          <Profile>P2</Profile>
        </Profiles>
        <Dependencies logic="OR">
          <Dependency itemId="q0" requiredValue="yes"/>
        </Dependencies>
      </Item>
    </Section>
  </ChecklistSections>
</ProfileConfiguration>`

	cfg, err := ParseProfileConfiguration([]byte(doc), "legacy.xml")
	require.NoError(t, err)

	assert.False(t, cfg.Completed)
	assert.Equal(t, types.FilterModeOR, cfg.Template.ProfileFilterMode)
	require.Len(t, cfg.Sections, 1)
	require.Len(t, cfg.Sections[0].Questions, 1)

	q := cfg.Sections[0].Questions[0]
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "true", q.LegacyValue)
	assert.Equal(t, []string{"P1", "P2"}, q.LegacyProfiles)
	// The legacy value backfills the answer.
	assert.True(t, q.Answered())
	assert.Equal(t, []string{"true"}, q.Answer.Values)

	require.NotNil(t, q.DependsOn)
	assert.Equal(t, types.FilterModeOR, q.DependsOn.Logic)
	require.Len(t, q.DependsOn.Conditions, 1)
	assert.Equal(t, "q0", q.DependsOn.Conditions[0].QuestionID)
	assert.Equal(t, []string{"yes"}, q.DependsOn.Conditions[0].Values)
}

func TestLegacyShapeNeverWritten(t *testing.T) {
	cfg := &types.ProfileConfiguration{
		Sections: []types.Section{{
			ID: "s1",
			Questions: []types.Question{{
				ID:             "q1",
				Type:           types.QuestionBoolean,
				LegacyValue:    "true",
				LegacyProfiles: []string{"P1"},
				Answer:         types.Answer{Answered: true, Values: []string{"true"}},
			}},
		}},
	}

	data, err := MarshalProfileConfiguration(cfg)
	require.NoError(t, err)
	s := string(data)

	assert.NotContains(t, s, "<Item")
	assert.NotContains(t, s, "<Dependencies")
	// Direct legacy profiles come back as an always-true mapping.
	assert.Contains(t, s, `<ProfileMapping condition="true">`)
	assert.Contains(t, s, "<Profile>P1</Profile>")
}

func TestParseProfileConfigurationDefaults(t *testing.T) {
	cfg, err := ParseProfileConfiguration([]byte(`<ProfileConfiguration/>`), "empty.xml")
	require.NoError(t, err)
	// An undeclared mode stays empty; the effective default is the
	// caller's concern, not the codec's.
	assert.Equal(t, "", cfg.Template.ProfileFilterMode)
	assert.Empty(t, cfg.Sections)
	assert.Empty(t, cfg.Definitions)
	assert.False(t, cfg.Completed)
}

func TestParseProfileConfigurationFilterMode(t *testing.T) {
	tests := []struct {
		name string
		wire string
		want string
	}{
		{"empty element stays empty", "", ""},
		{"whitespace stays empty", "  ", ""},
		{"lowercase and", "and", types.FilterModeAND},
		{"uppercase or", "OR", types.FilterModeOR},
		{"unknown value falls back to OR", "xor", types.FilterModeOR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<ProfileConfiguration><TemplateConfiguration><ProfileFilterMode>` +
				tt.wire + `</ProfileFilterMode></TemplateConfiguration></ProfileConfiguration>`
			cfg, err := ParseProfileConfiguration([]byte(doc), "mode.xml")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Template.ProfileFilterMode)
		})
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Transport Layer", "transport_layer"},
		{"multi-word-label", "multi_word_label"},
		{"  Mixed Case-Thing ", "mixed_case_thing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLabel(tt.in))
	}
}
