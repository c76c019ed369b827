package xmlcodec

import (
	"encoding/xml"
	"strings"

	"github.com/mesh-intelligence/casebook/pkg/types"
)

// ProfileConfigNamespace is the xmlns written on emitted profile
// configurations.
const ProfileConfigNamespace = "urn:casebook:profiles:1"

// Wire shape of a profile configuration. Two read paths feed the same
// canonical model: the current shape (Questions, Answer.Values,
// ProfileMappings, DependsOn.Conditions) and an older flat shape (Items,
// Value, Profiles, Dependencies with itemId/requiredValue). Only the
// current shape is ever written.
type profileConfigXML struct {
	XMLName   xml.Name `xml:"ProfileConfiguration"`
	Xmlns     string   `xml:"xmlns,attr,omitempty"`
	Version   string   `xml:"version,attr,omitempty"`
	Completed bool     `xml:"completed,attr"`

	Metadata    metadataXML       `xml:"Metadata"`
	Template    templateConfigXML `xml:"TemplateConfiguration"`
	Definitions profileDefsXML    `xml:"ProfileDefinitions"`

	Sections     sectionsXML  `xml:"ChecklistSections"`
	BareSections []sectionXML `xml:"Section"`
}

type metadataXML struct {
	ProductName  string `xml:"ProductName,omitempty"`
	Manufacturer string `xml:"Manufacturer,omitempty"`
	Version      string `xml:"Version,omitempty"`
	Description  string `xml:"Description,omitempty"`
	TestDate     string `xml:"TestDate,omitempty"`
	Tester       string `xml:"Tester,omitempty"`
}

type templateConfigXML struct {
	ProfileFilterMode string `xml:"ProfileFilterMode,omitempty"`
}

type profileDefsXML struct {
	Categories []profileCategoryXML `xml:"ProfileCategory"`
}

type profileCategoryXML struct {
	ID       string          `xml:"id,attr,omitempty"`
	Name     string          `xml:"name,attr,omitempty"`
	Profiles []profileDefXML `xml:"Profile"`
}

type profileDefXML struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr,omitempty"`
	Description string `xml:"Description,omitempty"`
}

type sectionsXML struct {
	Items []sectionXML `xml:"Section"`
}

type sectionXML struct {
	ID          string    `xml:"id,attr,omitempty"`
	Title       textNode  `xml:"Title"`
	Description *textNode `xml:"Description"`

	Questions     questionsXML  `xml:"Questions"`
	BareQuestions []questionXML `xml:"Question"`
	// LegacyItems is the flat-shape spelling of Questions.
	LegacyItems []questionXML `xml:"Item"`
}

type questionsXML struct {
	Items []questionXML `xml:"Question"`
}

type questionXML struct {
	ID       string `xml:"id,attr,omitempty"`
	Type     string `xml:"type,attr,omitempty"`
	Required bool   `xml:"required,attr,omitempty"`

	Text     textNode  `xml:"Text"`
	HelpText *textNode `xml:"HelpText"`

	Options     optionsXML `xml:"Options"`
	BareOptions []textNode `xml:"Option"`

	Answer *answerXML `xml:"Answer"`

	Mappings     mappingsXML  `xml:"ProfileMappings"`
	BareMappings []mappingXML `xml:"ProfileMapping"`

	DependsOn *dependsOnXML `xml:"DependsOn"`

	// Flat-shape fallbacks: a direct value, a direct profile list, and
	// dependencies keyed by itemId/requiredValue.
	LegacyValue    *textNode        `xml:"Value"`
	LegacyProfiles *profilesXML     `xml:"Profiles"`
	LegacyDeps     *dependenciesXML `xml:"Dependencies"`
}

type optionsXML struct {
	Items []textNode `xml:"Option"`
}

type answerXML struct {
	Answered bool       `xml:"answered,attr"`
	Values   []textNode `xml:"Value"`
}

type mappingsXML struct {
	Items []mappingXML `xml:"ProfileMapping"`
}

type mappingXML struct {
	Condition string     `xml:"condition,attr"`
	Profiles  []textNode `xml:"Profile"`
}

type dependsOnXML struct {
	Logic      string         `xml:"logic,attr,omitempty"`
	Conditions []conditionXML `xml:"Condition"`
}

type conditionXML struct {
	QuestionID string     `xml:"questionId,attr"`
	Values     []textNode `xml:"Value"`
}

type dependenciesXML struct {
	Logic string          `xml:"logic,attr,omitempty"`
	Items []dependencyXML `xml:"Dependency"`
}

type dependencyXML struct {
	ItemID        string `xml:"itemId,attr"`
	RequiredValue string `xml:"requiredValue,attr,omitempty"`
}

// ParseProfileConfiguration decodes a profile configuration, accepting
// both the current and the legacy flat wire shape. The filter mode
// defaults to OR when absent.
func ParseProfileConfiguration(data []byte, source string) (*types.ProfileConfiguration, error) {
	var doc profileConfigXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &types.ParseError{Source: source, Err: err}
	}

	cfg := &types.ProfileConfiguration{
		Version:   doc.Version,
		Completed: doc.Completed,
		Metadata: types.ConfigMetadata{
			ProductName:  doc.Metadata.ProductName,
			Manufacturer: doc.Metadata.Manufacturer,
			Version:      doc.Metadata.Version,
			Description:  doc.Metadata.Description,
			TestDate:     doc.Metadata.TestDate,
			Tester:       doc.Metadata.Tester,
		},
		Template: types.TemplateConfiguration{
			ProfileFilterMode: normalizeFilterMode(doc.Template.ProfileFilterMode),
		},
		Sections:    []types.Section{},
		Definitions: []types.ProfileDefinition{},
	}

	for _, cat := range doc.Definitions.Categories {
		label := cat.Name
		if label == "" {
			label = cat.ID
		}
		for _, p := range cat.Profiles {
			cfg.Definitions = append(cfg.Definitions, types.ProfileDefinition{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Category:    label,
			})
		}
	}

	for _, s := range append(doc.Sections.Items, doc.BareSections...) {
		section := types.Section{
			ID:        s.ID,
			Title:     s.Title.text(),
			Questions: []types.Question{},
		}
		if s.Description != nil {
			section.Description = s.Description.text()
		}
		raw := append(append(s.Questions.Items, s.BareQuestions...), s.LegacyItems...)
		for _, q := range raw {
			section.Questions = append(section.Questions, normalizeQuestion(q))
		}
		cfg.Sections = append(cfg.Sections, section)
	}
	return cfg, nil
}

// normalizeQuestion folds one wire question, current or legacy shape, into
// the canonical model.
func normalizeQuestion(q questionXML) types.Question {
	out := types.Question{
		ID:       q.ID,
		Text:     q.Text.text(),
		Type:     q.Type,
		Required: q.Required,
		Options:  textList(q.Options.Items, q.BareOptions),
	}
	if out.Type == "" {
		out.Type = types.QuestionBoolean
	}
	if q.HelpText != nil {
		out.HelpText = q.HelpText.text()
	}

	if q.Answer != nil {
		out.Answer = types.Answer{
			Answered: q.Answer.Answered,
			Values:   textList(q.Answer.Values, nil),
		}
	}

	for _, m := range append(q.Mappings.Items, q.BareMappings...) {
		out.ProfileMappings = append(out.ProfileMappings, types.ProfileMapping{
			Condition: m.Condition,
			Profiles:  textList(m.Profiles, nil),
		})
	}

	if q.DependsOn != nil {
		out.DependsOn = normalizeDependsOn(q.DependsOn.Logic, q.DependsOn.Conditions, nil)
	} else if q.LegacyDeps != nil {
		out.DependsOn = normalizeDependsOn(q.LegacyDeps.Logic, nil, q.LegacyDeps.Items)
	}

	// Flat legacy shape: a bare value plus a direct profile list. The
	// value also backfills the answer so counting and completeness checks
	// see legacy documents the same way as current ones.
	if q.LegacyValue != nil {
		out.LegacyValue = q.LegacyValue.text()
		if !out.Answer.Answered && out.LegacyValue != "" {
			out.Answer = types.Answer{Answered: true, Values: []string{out.LegacyValue}}
		}
	}
	if q.LegacyProfiles != nil {
		out.LegacyProfiles = textList(q.LegacyProfiles.Items, nil)
	}
	return out
}

func normalizeDependsOn(logic string, conds []conditionXML, legacy []dependencyXML) *types.DependsOn {
	dep := &types.DependsOn{Logic: strings.ToUpper(logic)}
	if dep.Logic == "" {
		dep.Logic = types.FilterModeAND
	}
	for _, c := range conds {
		dep.Conditions = append(dep.Conditions, types.Condition{
			QuestionID: c.QuestionID,
			Values:     textList(c.Values, nil),
		})
	}
	for _, d := range legacy {
		dep.Conditions = append(dep.Conditions, types.Condition{
			QuestionID: d.ItemID,
			Values:     []string{d.RequiredValue},
		})
	}
	return dep
}

// normalizeFilterMode canonicalizes the case of a declared mode. An
// absent mode stays empty so callers can distinguish "the checklist said
// OR" from "the checklist said nothing" and apply their own fallback.
func normalizeFilterMode(mode string) string {
	mode = strings.TrimSpace(mode)
	if mode == "" {
		return ""
	}
	if strings.EqualFold(mode, types.FilterModeAND) {
		return types.FilterModeAND
	}
	return types.FilterModeOR
}

// MarshalProfileConfiguration emits the current wire shape only. Profile
// definitions are grouped by category label, with the category id derived
// by sanitizing the label, not stored.
func MarshalProfileConfiguration(cfg *types.ProfileConfiguration) ([]byte, error) {
	doc := profileConfigXML{
		Xmlns:     ProfileConfigNamespace,
		Version:   cfg.Version,
		Completed: cfg.Completed,
		Metadata: metadataXML{
			ProductName:  cfg.Metadata.ProductName,
			Manufacturer: cfg.Metadata.Manufacturer,
			Version:      cfg.Metadata.Version,
			Description:  cfg.Metadata.Description,
			TestDate:     cfg.Metadata.TestDate,
			Tester:       cfg.Metadata.Tester,
		},
		Template: templateConfigXML{
			ProfileFilterMode: normalizeFilterMode(cfg.Template.ProfileFilterMode),
		},
		Definitions: groupDefinitions(cfg.Definitions),
	}

	for _, section := range cfg.Sections {
		sx := sectionXML{
			ID:    section.ID,
			Title: textNode{Body: section.Title},
		}
		if section.Description != "" {
			sx.Description = &textNode{Body: section.Description}
		}
		for _, q := range section.Questions {
			sx.Questions.Items = append(sx.Questions.Items, marshalQuestion(q))
		}
		doc.Sections.Items = append(doc.Sections.Items, sx)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func marshalQuestion(q types.Question) questionXML {
	qx := questionXML{
		ID:       q.ID,
		Type:     q.Type,
		Required: q.Required,
		Text:     textNode{Body: q.Text},
		Options:  optionsXML{Items: toTextNodes(q.Options)},
	}
	if q.HelpText != "" {
		qx.HelpText = &textNode{Body: q.HelpText}
	}
	if q.Answer.Answered || len(q.Answer.Values) > 0 {
		qx.Answer = &answerXML{
			Answered: q.Answer.Answered,
			Values:   toTextNodes(q.Answer.Values),
		}
	}
	for _, m := range q.ProfileMappings {
		qx.Mappings.Items = append(qx.Mappings.Items, mappingXML{
			Condition: m.Condition,
			Profiles:  toTextNodes(m.Profiles),
		})
	}
	// Legacy direct profiles are re-expressed as an always-true mapping so
	// the flat shape never survives a write.
	if len(q.LegacyProfiles) > 0 && len(q.ProfileMappings) == 0 {
		qx.Mappings.Items = append(qx.Mappings.Items, mappingXML{
			Condition: "true",
			Profiles:  toTextNodes(q.LegacyProfiles),
		})
	}
	if q.DependsOn != nil {
		dx := &dependsOnXML{Logic: q.DependsOn.Logic}
		for _, c := range q.DependsOn.Conditions {
			dx.Conditions = append(dx.Conditions, conditionXML{
				QuestionID: c.QuestionID,
				Values:     toTextNodes(c.Values),
			})
		}
		qx.DependsOn = dx
	}
	return qx
}

// groupDefinitions buckets profile definitions by category label in
// first-seen order for catalog emission.
func groupDefinitions(defs []types.ProfileDefinition) profileDefsXML {
	var out profileDefsXML
	index := make(map[string]int)
	for _, d := range defs {
		i, ok := index[d.Category]
		if !ok {
			i = len(out.Categories)
			index[d.Category] = i
			out.Categories = append(out.Categories, profileCategoryXML{
				ID:   sanitizeLabel(d.Category),
				Name: d.Category,
			})
		}
		out.Categories[i].Profiles = append(out.Categories[i].Profiles, profileDefXML{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
		})
	}
	return out
}
