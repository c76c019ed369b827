package types

import "time"

// Test-case and step statuses. The empty string means the case is still open.
const (
	StatusPassed  = "PASSED"
	StatusFailed  = "FAILED"
	StatusSkipped = "SKIPPED"
	StatusOpen    = ""
)

// TestCase is one compliance test document. One XML file holds exactly one
// instance; the identifier is unique within its category folder and
// immutable once assigned.
type TestCase struct {
	ID            string // pattern PREFIX_NN or PREFIX_NN_LETTERS
	Version       string
	Status        string // StatusPassed, StatusFailed, StatusSkipped or StatusOpen
	Title         string
	Purpose       string
	Preconditions []string
	Profiles      []string // applicability tags; treated as a set when filtering
	References    []string
	RefFunctions  []string // case-scoped function tags
	RefUsers      []string // case-scoped user tags
	Steps         []TestStep
	Notes         []Note
	Attachments   []Attachment
	Result        Result
}

// TestStep is one ordered step of a test case. Position is 1-based and
// significant; steps are owned exclusively by their TestCase.
type TestStep struct {
	ID              string
	Command         string
	ExpectedResults []ExpectedResult
	Status          string
	ErrorMessage    string
	RefFunctions    []string // step-scoped, independent of the case-scoped list
	RefUsers        []string
}

// ExpectedResult is one expected outcome of a step. Its identifier is
// synthesized positionally by the codec (er-<step>-<result>), never stored.
type ExpectedResult struct {
	Text         string
	Status       string
	ActualResult string
	Variables    map[string]string // name -> value; empty values are not persisted
}

// Note is a free-text annotation on a test case. Notes form an append-only
// list; removal is positional.
type Note struct {
	Text      string
	Timestamp time.Time
	Author    string
}

// Attachment carries metadata for a payload file stored outside the
// document, under the instance's _attachments area.
type Attachment struct {
	StoredFilename   string // disk-safe, time-prefixed
	OriginalFilename string
	Timestamp        time.Time
	Description      string
	MimeType         string
	Size             int64
}

// Result records the overall outcome of a test case. All fields optional.
type Result struct {
	Status   string
	Summary  string
	Tester   string
	Date     string
	Comments string
}

// IsZero reports whether the result carries no information, in which case
// the codec omits the block entirely on write.
func (r Result) IsZero() bool {
	return r == Result{}
}

// AddNote appends a note to the test case. Empty text is rejected with a
// ValidationError. A zero timestamp is defaulted to the current time.
func (tc *TestCase) AddNote(n Note) error {
	if n.Text == "" {
		return &ValidationError{Message: "note text must not be empty"}
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	tc.Notes = append(tc.Notes, n)
	return nil
}

// RemoveNote deletes the note at the given zero-based index.
// Returns a ValidationError when the index is out of range.
func (tc *TestCase) RemoveNote(index int) error {
	if index < 0 || index >= len(tc.Notes) {
		return &ValidationError{Message: "note index out of range"}
	}
	tc.Notes = append(tc.Notes[:index], tc.Notes[index+1:]...)
	return nil
}

// RemoveAttachment deletes the attachment entry with the given stored
// filename and reports whether an entry was found. The caller is
// responsible for deleting the backing payload file as well.
func (tc *TestCase) RemoveAttachment(storedFilename string) bool {
	for i, a := range tc.Attachments {
		if a.StoredFilename == storedFilename {
			tc.Attachments = append(tc.Attachments[:i], tc.Attachments[i+1:]...)
			return true
		}
	}
	return false
}
