package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want ParsedID
	}{
		{
			name: "base identifier",
			id:   "II_EXF_01",
			want: ParsedID{Prefix: "II_EXF_", Number: 1, BaseID: "II_EXF_01"},
		},
		{
			name: "variant identifier",
			id:   "II_EXF_01_A",
			want: ParsedID{Prefix: "II_EXF_", Number: 1, Variant: "A", BaseID: "II_EXF_1", HasVariant: true},
		},
		{
			name: "two letter variant",
			id:   "II_EXF_03_AB",
			want: ParsedID{Prefix: "II_EXF_", Number: 3, Variant: "AB", BaseID: "II_EXF_3", HasVariant: true},
		},
		{
			name: "unpadded base number",
			id:   "CASE_123",
			want: ParsedID{Prefix: "CASE_", Number: 123, BaseID: "CASE_123"},
		},
		{
			name: "unstructured identifier",
			id:   "README",
			want: ParsedID{Prefix: "README", BaseID: "README"},
		},
		{
			name: "lowercase letters are not variants",
			id:   "II_EXF_01_a",
			want: ParsedID{Prefix: "II_EXF_01_a", BaseID: "II_EXF_01_a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.id))
		})
	}
}

func TestVariantNumber(t *testing.T) {
	tests := []struct {
		letters string
		want    int
	}{
		{"A", 1},
		{"B", 2},
		{"Z", 26},
		{"AA", 27},
		{"AB", 28},
		{"AZ", 52},
		{"BA", 53},
		{"ZZ", 702},
		{"AAA", 703},
		{"", 0},
		{"1", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VariantNumber(tt.letters), "letters %q", tt.letters)
	}
}

func TestNumberToVariant(t *testing.T) {
	assert.Equal(t, "", NumberToVariant(0))
	assert.Equal(t, "", NumberToVariant(-5))
	assert.Equal(t, "A", NumberToVariant(1))
	assert.Equal(t, "Z", NumberToVariant(26))
	assert.Equal(t, "AA", NumberToVariant(27))
	assert.Equal(t, "ZZ", NumberToVariant(702))
	assert.Equal(t, "AAA", NumberToVariant(703))
}

// Round-trips the whole one- and two-letter range plus the first three-letter
// values.
func TestVariantRoundTrip(t *testing.T) {
	for n := 1; n <= 705; n++ {
		assert.Equal(t, n, VariantNumber(NumberToVariant(n)), "n=%d", n)
	}
}
