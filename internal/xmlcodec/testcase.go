package xmlcodec

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/casebook/pkg/types"
)

// TestCaseNamespace is the xmlns written on every emitted test-case
// document. Documents without a namespace are still accepted on read.
const TestCaseNamespace = "urn:casebook:testcase:1"

// Wire shape of a test-case document. Every repeatable group has a wrapped
// container field (the canonical shape) and a bare fallback field for
// documents that emitted the children directly under the parent; both are
// merged during normalization. Legacy* fields are read-only fallbacks and
// never populated on write.
type testCaseXML struct {
	XMLName xml.Name `xml:"TestCase"`
	Xmlns   string   `xml:"xmlns,attr,omitempty"`
	ID      string   `xml:"id,attr"`
	Status  string   `xml:"status,attr,omitempty"`
	Version string   `xml:"version,attr,omitempty"`

	Title        textNode  `xml:"Title"`
	Purpose      textNode  `xml:"Purpose"`
	LegacyStatus *textNode `xml:"Status"`

	Preconditions     preconditionsXML `xml:"Preconditions"`
	BarePreconditions []textNode       `xml:"Precondition"`
	Profiles          profilesXML      `xml:"Profiles"`
	BareProfiles      []textNode       `xml:"Profile"`
	References        referencesXML    `xml:"References"`
	BareReferences    []textNode       `xml:"Reference"`
	RefFunctions      refFunctionsXML  `xml:"RefFunctions"`
	BareRefFunctions  []textNode       `xml:"RefFunction"`
	RefUsers          refUsersXML      `xml:"RefUsers"`
	BareRefUsers      []textNode       `xml:"RefUser"`

	Steps     testStepsXML  `xml:"TestSteps"`
	BareSteps []testStepXML `xml:"TestStep"`

	Notes       *notesXML       `xml:"Notes"`
	Attachments *attachmentsXML `xml:"Attachments"`
	Result      *resultXML      `xml:"Result"`
}

type preconditionsXML struct {
	Items []textNode `xml:"Precondition"`
}

type profilesXML struct {
	Items []textNode `xml:"Profile"`
}

type referencesXML struct {
	Items []textNode `xml:"Reference"`
}

type refFunctionsXML struct {
	Items []textNode `xml:"RefFunction"`
}

type refUsersXML struct {
	Items []textNode `xml:"RefUser"`
}

type testStepsXML struct {
	Items []testStepXML `xml:"TestStep"`
}

type testStepXML struct {
	ID     string `xml:"id,attr,omitempty"`
	Status string `xml:"status,attr,omitempty"`

	Command      textNode  `xml:"Command"`
	ErrorMessage *textNode `xml:"ErrorMessage"`

	ExpectedResults     expectedResultsXML  `xml:"ExpectedResults"`
	BareExpectedResults []expectedResultXML `xml:"ExpectedResult"`

	RefFunctions     refFunctionsXML `xml:"RefFunctions"`
	BareRefFunctions []textNode      `xml:"RefFunction"`
	RefUsers         refUsersXML     `xml:"RefUsers"`
	BareRefUsers     []textNode      `xml:"RefUser"`
}

type expectedResultsXML struct {
	Items []expectedResultXML `xml:"ExpectedResult"`
}

type expectedResultXML struct {
	Status       string    `xml:"status,attr,omitempty"`
	Text         textNode  `xml:"Text"`
	ActualResult *textNode `xml:"ActualResult"`
	Variables    string    `xml:"Variables,omitempty"`
}

type notesXML struct {
	Items []noteXML `xml:"Note"`
}

type noteXML struct {
	Author    string   `xml:"author,attr,omitempty"`
	Timestamp string   `xml:"timestamp,attr,omitempty"`
	Text      textNode `xml:"Text"`
	// Body catches legacy notes whose text was the element body itself.
	Body string `xml:",chardata"`
}

type attachmentsXML struct {
	Items []attachmentXML `xml:"Attachment"`
}

type attachmentXML struct {
	StoredFilename   string   `xml:"storedFilename,attr"`
	OriginalFilename string   `xml:"originalFilename,attr,omitempty"`
	Timestamp        string   `xml:"timestamp,attr,omitempty"`
	MimeType         string   `xml:"mimeType,attr,omitempty"`
	Size             int64    `xml:"size,attr,omitempty"`
	Description      textNode `xml:"Description"`
}

type resultXML struct {
	Status   string `xml:"status,attr,omitempty"`
	Summary  string `xml:"Summary,omitempty"`
	Tester   string `xml:"Tester,omitempty"`
	Date     string `xml:"Date,omitempty"`
	Comments string `xml:"Comments,omitempty"`
}

// ParseTestCase decodes one test-case document. source identifies the
// document in errors, typically its file path. Missing optional sections
// become empty collections and a missing status means the case is open.
func ParseTestCase(data []byte, source string) (*types.TestCase, error) {
	var doc testCaseXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &types.ParseError{Source: source, Err: err}
	}
	if doc.ID == "" {
		return nil, &types.ParseError{Source: source, Err: fmt.Errorf("TestCase root has no id attribute")}
	}

	status := doc.Status
	if status == "" && doc.LegacyStatus != nil {
		status = doc.LegacyStatus.text()
	}

	tc := &types.TestCase{
		ID:            doc.ID,
		Version:       doc.Version,
		Status:        status,
		Title:         doc.Title.text(),
		Purpose:       doc.Purpose.text(),
		Preconditions: textList(doc.Preconditions.Items, doc.BarePreconditions),
		Profiles:      textList(doc.Profiles.Items, doc.BareProfiles),
		References:    textList(doc.References.Items, doc.BareReferences),
		RefFunctions:  textList(doc.RefFunctions.Items, doc.BareRefFunctions),
		RefUsers:      textList(doc.RefUsers.Items, doc.BareRefUsers),
		Steps:         normalizeSteps(append(doc.Steps.Items, doc.BareSteps...)),
		Notes:         []types.Note{},
		Attachments:   []types.Attachment{},
	}

	if doc.Notes != nil {
		for _, n := range doc.Notes.Items {
			text := n.Text.text()
			if text == "" {
				text = strings.TrimSpace(n.Body)
			}
			tc.Notes = append(tc.Notes, types.Note{
				Text:      text,
				Timestamp: parseTimestamp(n.Timestamp),
				Author:    n.Author,
			})
		}
	}
	if doc.Attachments != nil {
		for _, a := range doc.Attachments.Items {
			tc.Attachments = append(tc.Attachments, types.Attachment{
				StoredFilename:   a.StoredFilename,
				OriginalFilename: a.OriginalFilename,
				Timestamp:        parseTimestamp(a.Timestamp),
				Description:      a.Description.text(),
				MimeType:         a.MimeType,
				Size:             a.Size,
			})
		}
	}
	if doc.Result != nil {
		tc.Result = types.Result{
			Status:   doc.Result.Status,
			Summary:  doc.Result.Summary,
			Tester:   doc.Result.Tester,
			Date:     doc.Result.Date,
			Comments: doc.Result.Comments,
		}
	}
	return tc, nil
}

func normalizeSteps(raw []testStepXML) []types.TestStep {
	steps := make([]types.TestStep, len(raw))
	for i, s := range raw {
		step := types.TestStep{
			ID:           s.ID,
			Command:      s.Command.text(),
			Status:       s.Status,
			RefFunctions: textList(s.RefFunctions.Items, s.BareRefFunctions),
			RefUsers:     textList(s.RefUsers.Items, s.BareRefUsers),
		}
		if s.ErrorMessage != nil {
			step.ErrorMessage = s.ErrorMessage.text()
		}
		results := append(s.ExpectedResults.Items, s.BareExpectedResults...)
		step.ExpectedResults = make([]types.ExpectedResult, len(results))
		for j, r := range results {
			er := types.ExpectedResult{
				Text:      r.Text.text(),
				Status:    r.Status,
				Variables: parseVariables(r.Variables),
			}
			if r.ActualResult != nil {
				er.ActualResult = r.ActualResult.text()
			}
			step.ExpectedResults[j] = er
		}
		steps[i] = step
	}
	return steps
}

// MarshalTestCase encodes the canonical wire shape: repeatable groups are
// always written through their container elements, empty optional blocks
// (Result, Notes, Attachments) are omitted entirely, and expected-result
// variables are re-joined from non-empty entries only.
func MarshalTestCase(tc *types.TestCase) ([]byte, error) {
	doc := testCaseXML{
		Xmlns:         TestCaseNamespace,
		ID:            tc.ID,
		Status:        tc.Status,
		Version:       tc.Version,
		Title:         textNode{Body: tc.Title},
		Purpose:       textNode{Body: tc.Purpose},
		Preconditions: preconditionsXML{Items: toTextNodes(tc.Preconditions)},
		Profiles:      profilesXML{Items: toTextNodes(tc.Profiles)},
		References:    referencesXML{Items: toTextNodes(tc.References)},
		RefFunctions:  refFunctionsXML{Items: toTextNodes(tc.RefFunctions)},
		RefUsers:      refUsersXML{Items: toTextNodes(tc.RefUsers)},
	}

	doc.Steps.Items = make([]testStepXML, len(tc.Steps))
	for i, step := range tc.Steps {
		sx := testStepXML{
			ID:           step.ID,
			Status:       step.Status,
			Command:      textNode{Body: step.Command},
			RefFunctions: refFunctionsXML{Items: toTextNodes(step.RefFunctions)},
			RefUsers:     refUsersXML{Items: toTextNodes(step.RefUsers)},
		}
		if step.ErrorMessage != "" {
			sx.ErrorMessage = &textNode{Body: step.ErrorMessage}
		}
		sx.ExpectedResults.Items = make([]expectedResultXML, len(step.ExpectedResults))
		for j, er := range step.ExpectedResults {
			rx := expectedResultXML{
				Status:    er.Status,
				Text:      textNode{Body: er.Text},
				Variables: joinVariables(er.Variables),
			}
			if er.ActualResult != "" {
				rx.ActualResult = &textNode{Body: er.ActualResult}
			}
			sx.ExpectedResults.Items[j] = rx
		}
		doc.Steps.Items[i] = sx
	}

	if len(tc.Notes) > 0 {
		doc.Notes = &notesXML{}
		for _, n := range tc.Notes {
			doc.Notes.Items = append(doc.Notes.Items, noteXML{
				Author:    n.Author,
				Timestamp: formatTimestamp(n.Timestamp),
				Text:      textNode{Body: n.Text},
			})
		}
	}
	if len(tc.Attachments) > 0 {
		doc.Attachments = &attachmentsXML{}
		for _, a := range tc.Attachments {
			doc.Attachments.Items = append(doc.Attachments.Items, attachmentXML{
				StoredFilename:   a.StoredFilename,
				OriginalFilename: a.OriginalFilename,
				Timestamp:        formatTimestamp(a.Timestamp),
				MimeType:         a.MimeType,
				Size:             a.Size,
				Description:      textNode{Body: a.Description},
			})
		}
	}
	if !tc.Result.IsZero() {
		doc.Result = &resultXML{
			Status:   tc.Result.Status,
			Summary:  tc.Result.Summary,
			Tester:   tc.Result.Tester,
			Date:     tc.Result.Date,
			Comments: tc.Result.Comments,
		}
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// ExpectedResultID synthesizes the positional identifier of an expected
// result. Positions are 1-based; the id is never persisted.
func ExpectedResultID(stepIndex, resultIndex int) string {
	return fmt.Sprintf("er-%d-%d", stepIndex, resultIndex)
}
