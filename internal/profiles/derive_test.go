package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/casebook/pkg/types"
)

func configWith(questions ...types.Question) *types.ProfileConfiguration {
	return &types.ProfileConfiguration{
		Sections: []types.Section{{ID: "s1", Questions: questions}},
	}
}

func TestDeriveActive(t *testing.T) {
	tests := []struct {
		name string
		cfg  *types.ProfileConfiguration
		want []string
	}{
		{
			name: "nil configuration",
			cfg:  nil,
			want: []string{},
		},
		{
			name: "boolean true activates mapping",
			cfg: configWith(types.Question{
				Type:   types.QuestionBoolean,
				Answer: types.Answer{Answered: true, Values: []string{"true"}},
				ProfileMappings: []types.ProfileMapping{
					{Condition: "true", Profiles: []string{"P1"}},
				},
			}),
			want: []string{"P1"},
		},
		{
			name: "boolean comparison is case insensitive",
			cfg: configWith(types.Question{
				Type:   types.QuestionBoolean,
				Answer: types.Answer{Answered: true, Values: []string{"True"}},
				ProfileMappings: []types.ProfileMapping{
					{Condition: "true", Profiles: []string{"P1"}},
					{Condition: "false", Profiles: []string{"P2"}},
				},
			}),
			want: []string{"P1"},
		},
		{
			name: "unanswered question contributes nothing",
			cfg: configWith(types.Question{
				Type: types.QuestionBoolean,
				ProfileMappings: []types.ProfileMapping{
					{Condition: "true", Profiles: []string{"P1"}},
				},
			}),
			want: []string{},
		},
		{
			name: "multi choice matches any selected value",
			cfg: configWith(types.Question{
				Type:   types.QuestionMultiChoice,
				Answer: types.Answer{Answered: true, Values: []string{"usb", "network"}},
				ProfileMappings: []types.ProfileMapping{
					{Condition: "usb", Profiles: []string{"P_USB"}},
					{Condition: "network", Profiles: []string{"P_NET"}},
					{Condition: "serial", Profiles: []string{"P_SER"}},
				},
			}),
			want: []string{"P_NET", "P_USB"},
		},
		{
			name: "choice matches exactly one",
			cfg: configWith(types.Question{
				Type:   types.QuestionChoice,
				Answer: types.Answer{Answered: true, Values: []string{"network"}},
				ProfileMappings: []types.ProfileMapping{
					{Condition: "usb", Profiles: []string{"P_USB"}},
					{Condition: "network", Profiles: []string{"P_NET"}},
				},
			}),
			want: []string{"P_NET"},
		},
		{
			name: "result is deduplicated and sorted",
			cfg: configWith(
				types.Question{
					Type:   types.QuestionBoolean,
					Answer: types.Answer{Answered: true, Values: []string{"true"}},
					ProfileMappings: []types.ProfileMapping{
						{Condition: "true", Profiles: []string{"B", "A"}},
					},
				},
				types.Question{
					Type:   types.QuestionBoolean,
					Answer: types.Answer{Answered: true, Values: []string{"true"}},
					ProfileMappings: []types.ProfileMapping{
						{Condition: "true", Profiles: []string{"A", "C"}},
					},
				},
			),
			want: []string{"A", "B", "C"},
		},
		{
			name: "legacy truthy value activates direct profiles",
			cfg: configWith(types.Question{
				Type:           types.QuestionBoolean,
				LegacyValue:    "true",
				LegacyProfiles: []string{"P_LEGACY"},
			}),
			want: []string{"P_LEGACY"},
		},
		{
			name: "legacy falsy value contributes nothing",
			cfg: configWith(types.Question{
				Type:           types.QuestionBoolean,
				LegacyValue:    "false",
				LegacyProfiles: []string{"P_LEGACY"},
			}),
			want: []string{},
		},
		{
			name: "depends on is not evaluated",
			cfg: configWith(types.Question{
				Type:   types.QuestionBoolean,
				Answer: types.Answer{Answered: true, Values: []string{"true"}},
				ProfileMappings: []types.ProfileMapping{
					{Condition: "true", Profiles: []string{"P1"}},
				},
				DependsOn: &types.DependsOn{
					Logic: types.FilterModeAND,
					Conditions: []types.Condition{
						{QuestionID: "missing", Values: []string{"never"}},
					},
				},
			}),
			want: []string{"P1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveActive(tt.cfg))
		})
	}
}
