// Package xmlcodec translates between the canonical document model in
// pkg/types and the XML wire format, in both directions.
//
// Reads are tolerant: every repeatable field accepts both the wrapped
// (container element) and the bare repeated encoding, textual leaves accept
// both bare strings and attributed nodes, and the profile configuration
// additionally accepts a legacy flat field naming. Writes always emit one
// canonical shape. Shape coercion happens here, at the ingress boundary,
// so business logic only ever sees the canonical model.
package xmlcodec

import (
	"sort"
	"strings"
	"time"
)

// textNode absorbs both leaf encodings seen in stored documents: a bare
// string body and a node whose text was moved into a value attribute.
// The attribute wins only when the body is empty.
type textNode struct {
	Value string `xml:"value,attr,omitempty"`
	Body  string `xml:",chardata"`
}

// text returns the effective string of the node.
func (t textNode) text() string {
	if s := strings.TrimSpace(t.Body); s != "" {
		return s
	}
	return strings.TrimSpace(t.Value)
}

// textList coerces wrapped and bare repeated text nodes into one string
// slice. Older writers emitted the elements directly under the parent,
// newer ones wrap them in a container; both may appear and are
// concatenated in document order within each group.
func textList(wrapped, bare []textNode) []string {
	out := make([]string, 0, len(wrapped)+len(bare))
	for _, n := range wrapped {
		out = append(out, n.text())
	}
	for _, n := range bare {
		out = append(out, n.text())
	}
	return out
}

// toTextNodes converts plain strings to canonical bare-body nodes for
// emission.
func toTextNodes(values []string) []textNode {
	out := make([]textNode, len(values))
	for i, v := range values {
		out[i] = textNode{Body: v}
	}
	return out
}

// parseVariables decodes the single comma-joined key=value encoding used
// for expected-result variables. Entries without an equals sign or with an
// empty key are dropped.
func parseVariables(s string) map[string]string {
	vars := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return vars
}

// joinVariables re-derives the wire string from the variable map. Only
// entries with non-empty values are emitted, in sorted key order so output
// is deterministic.
func joinVariables(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k, v := range vars {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + vars[k]
	}
	return strings.Join(pairs, ",")
}

// parseTimestamp reads an ISO-8601 timestamp, tolerating the date-only
// form some older documents carry. Unparseable input yields the zero time.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts
	}
	return time.Time{}
}

// formatTimestamp writes the canonical ISO-8601 form, empty for the zero
// time.
func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

// parseBool accepts the boolean spellings seen on the wire.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// sanitizeLabel turns a display label into an identifier-safe XML
// attribute value: lowercase, with spaces and hyphens replaced by
// underscores.
func sanitizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
